package enrollment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/terra-clan/extension-portal/internal/metrics"
	"github.com/terra-clan/extension-portal/internal/models"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrEnrollmentClosed = errors.New("project is not open for enrollment")
	ErrProjectFull      = errors.New("project has no available slots")
)

// ProjectLookup resolves a project by ID
type ProjectLookup interface {
	Project(id string) (models.Project, bool)
}

// SubmissionRecorder persists submissions for audit
type SubmissionRecorder interface {
	RecordSubmission(ctx context.Context, s *models.Submission) error
}

// Options configures a Service
type Options struct {
	EnforceCapacity bool
	Recorder        SubmissionRecorder // Optional
	Now             func() time.Time   // Defaults to time.Now
}

// Service accepts enrollment requests
type Service struct {
	projects ProjectLookup
	opts     Options
}

// NewService creates a submission service over projects
func NewService(projects ProjectLookup, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{projects: projects, opts: opts}
}

// Receipt acknowledges an accepted submission
type Receipt struct {
	ID          string                  `json:"id"`
	ProjectID   string                  `json:"projectId"`
	ProjectName string                  `json:"projectName"`
	Date        models.Date             `json:"date"`
	Status      models.EnrollmentStatus `json:"status"`
	Display     models.StatusDescriptor `json:"display"`
	Message     string                  `json:"message"`
	Progress    []Progress              `json:"progress"`
}

// Submit validates req against its project and acknowledges it. The
// enrollment collection is left untouched; the submission is only logged and,
// when a recorder is configured, stored for audit.
func (s *Service) Submit(ctx context.Context, req Request) (*Receipt, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		metrics.Submissions.WithLabelValues("invalid").Inc()
		return nil, err
	}

	project, ok := s.projects.Project(req.ProjectID)
	if !ok {
		metrics.Submissions.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, req.ProjectID)
	}
	if !project.IsOpen() {
		metrics.Submissions.WithLabelValues("closed").Inc()
		return nil, fmt.Errorf("%w: %s is %s", ErrEnrollmentClosed, project.ID, project.Status)
	}
	if s.opts.EnforceCapacity && project.IsFull() {
		metrics.Submissions.WithLabelValues("full").Inc()
		return nil, fmt.Errorf("%w: %s has %d of %d participants",
			ErrProjectFull, project.ID, project.CurrentParticipants, project.MaxParticipants)
	}

	now := s.opts.Now()
	sub := &models.Submission{
		ID:          uuid.NewString(),
		ProjectID:   project.ID,
		StudentID:   req.StudentID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Course:      req.Course,
		Period:      req.Period,
		Motivation:  req.Motivation,
		SubmittedAt: now.UTC(),
	}

	slog.Info("enrollment submitted",
		"submission_id", sub.ID,
		"project_id", sub.ProjectID,
		"student_id", sub.StudentID,
		"course", sub.Course,
		"period", sub.Period,
	)

	if s.opts.Recorder != nil {
		if err := s.opts.Recorder.RecordSubmission(ctx, sub); err != nil {
			metrics.Submissions.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("failed to record submission: %w", err)
		}
	}

	metrics.Submissions.WithLabelValues("accepted").Inc()

	w := NewWizard()
	w.GoTo(StepDone)
	message := fmt.Sprintf("Sua inscrição no projeto \"%s\" foi enviada e está sendo analisada pelo coordenador.",
		project.Name)

	return &Receipt{
		ID:          sub.ID,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Date:        models.DateOf(now),
		Status:      models.EnrollmentPending,
		Display:     models.DescribeEnrollmentStatus(models.EnrollmentPending),
		Message:     message,
		Progress:    w.Progress(),
	}, nil
}
