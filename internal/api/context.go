package api

import (
	"context"
	"net/http"
	"strings"
)

// StudentHeader identifies the viewing student. It scopes listings and is
// not an authentication mechanism.
const StudentHeader = "X-Student-ID"

type contextKey string

const studentContextKey contextKey = "student_id"

// StudentFromContext extracts the viewing student ID from context
func StudentFromContext(ctx context.Context) string {
	id, _ := ctx.Value(studentContextKey).(string)
	return id
}

// ContextWithStudent adds the viewing student ID to context
func ContextWithStudent(ctx context.Context, studentID string) context.Context {
	return context.WithValue(ctx, studentContextKey, studentID)
}

// viewerMiddleware resolves the viewing student from the request header,
// falling back to the configured default student
func (s *Server) viewerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(StudentHeader))
		if id == "" {
			id = s.defaultStudent
		}
		next.ServeHTTP(w, r.WithContext(ContextWithStudent(r.Context(), id)))
	})
}
