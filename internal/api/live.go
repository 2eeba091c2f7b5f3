package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/terra-clan/extension-portal/internal/catalog"
	"github.com/terra-clan/extension-portal/internal/metrics"
	"github.com/terra-clan/extension-portal/internal/models"
)

const (
	liveWriteTimeout = 10 * time.Second
	liveReadLimit    = 8 << 10
)

func (s *Server) newUpgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
}

// checkOrigin applies the CORS origin list to websocket upgrades. Requests
// without an Origin header come from non-browser clients and are accepted,
// as are same-host pages.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.config.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}

// LiveRequest asks for one listing filtered by Query. Query uses the same
// keys as the listing's query string.
type LiveRequest struct {
	ID    string            `json:"id,omitempty"` // Echoed back so clients can drop stale replies
	Type  string            `json:"type"`         // projects, enrollments or certificates
	Query map[string]string `json:"query,omitempty"`
}

// LiveMessage is sent back for every request
type LiveMessage struct {
	ID    string      `json:"id,omitempty"`
	Type  string      `json:"type"` // connected, result or error
	Kind  string      `json:"kind,omitempty"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// handleLive filters listings as the student types: each message carries the
// current criteria and is answered with the matching result.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	viewer := StudentFromContext(r.Context())

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("failed to upgrade to websocket", "error", err, "origin", r.Header.Get("Origin"))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(liveReadLimit)

	metrics.LiveConnections.Inc()
	defer metrics.LiveConnections.Dec()

	slog.Info("live websocket connected", "student_id", viewer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.sendLiveMessage(conn, LiveMessage{Type: "connected"}); err != nil {
		return
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("websocket read error", "error", err)
			}
			break
		}

		var req LiveRequest
		if err := json.Unmarshal(message, &req); err != nil {
			slog.Debug("invalid message format", "error", err)
			if s.sendLiveMessage(conn, LiveMessage{Type: "error", Error: "invalid message format"}) != nil {
				break
			}
			continue
		}

		reply := s.answerLive(ctx, viewer, req)
		if err := s.sendLiveMessage(conn, reply); err != nil {
			break
		}
	}

	slog.Info("live websocket disconnected", "student_id", viewer)
}

func (s *Server) answerLive(ctx context.Context, viewer string, req LiveRequest) LiveMessage {
	q := make(url.Values, len(req.Query))
	for k, v := range req.Query {
		q.Set(k, v)
	}

	var (
		data interface{}
		err  error
	)
	switch req.Type {
	case "projects":
		criteria, perr := projectCriteria(q)
		if err = perr; err == nil {
			var result catalog.Result[models.Project]
			if result, err = s.portal.Projects(ctx, criteria); err == nil {
				data = catalog.DescribeProjects(result)
			}
		}
	case "enrollments":
		criteria, perr := enrollmentCriteria(q)
		if err = perr; err == nil {
			var result catalog.Result[models.EnrollmentView]
			if result, err = s.portal.Enrollments(ctx, viewer, criteria); err == nil {
				data = catalog.DescribeEnrollments(result)
			}
		}
	case "certificates":
		criteria, perr := certificateCriteria(q)
		if err = perr; err == nil {
			data, err = s.portal.Certificates(ctx, viewer, criteria)
		}
	default:
		return LiveMessage{ID: req.ID, Type: "error", Error: "unknown request type: " + req.Type}
	}

	if err != nil {
		return LiveMessage{ID: req.ID, Type: "error", Kind: req.Type, Error: err.Error()}
	}
	return LiveMessage{ID: req.ID, Type: "result", Kind: req.Type, Data: data}
}

func (s *Server) sendLiveMessage(conn *websocket.Conn, msg LiveMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal live message", "error", err)
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Debug("failed to send live message", "error", err)
		return err
	}
	return nil
}
