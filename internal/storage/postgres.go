package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/terra-clan/extension-portal/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 10
	}

	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	} else {
		poolConfig.MinConns = 2
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Pool exposes the underlying pool for migrations
func (r *PostgresRepository) Pool() *pgxpool.Pool {
	return r.pool
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// LoadDataset reads the four collections in their stored order.
// Rows with an unknown status are skipped with a warning, the same way the
// fixture loader treats invalid records.
func (r *PostgresRepository) LoadDataset(ctx context.Context) (models.Dataset, error) {
	var ds models.Dataset
	var err error

	if ds.Projects, err = r.loadProjects(ctx); err != nil {
		return models.Dataset{}, err
	}
	if ds.Enrollments, err = r.loadEnrollments(ctx); err != nil {
		return models.Dataset{}, err
	}
	if ds.Certificates, err = r.loadCertificates(ctx); err != nil {
		return models.Dataset{}, err
	}
	if ds.Students, err = r.loadStudents(ctx); err != nil {
		return models.Dataset{}, err
	}

	return ds, nil
}

func (r *PostgresRepository) loadProjects(ctx context.Context) ([]models.Project, error) {
	query := `
		SELECT id, name, area, description, total_hours, weekly_hours, start_date, end_date,
		       courses, coordinator, status, max_participants, current_participants
		FROM projects
		ORDER BY position, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		var p models.Project
		var status string
		var start, end pgtype.Date

		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Area,
			&p.Description,
			&p.TotalHours,
			&p.WeeklyHours,
			&start,
			&end,
			&p.Courses,
			&p.Coordinator,
			&status,
			&p.MaxParticipants,
			&p.CurrentParticipants,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}

		p.Status = models.ProjectStatus(status)
		if !p.Status.IsValid() {
			slog.Warn("skipping project with unknown status", "id", p.ID, "status", status)
			continue
		}
		p.StartDate = dateFrom(start)
		p.EndDate = dateFrom(end)
		if p.Courses == nil {
			p.Courses = []string{}
		}

		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

func (r *PostgresRepository) loadEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	query := `
		SELECT id, project_id, student_id, status, enrollment_date, motivation
		FROM enrollments
		ORDER BY position, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := make([]models.Enrollment, 0)
	for rows.Next() {
		var e models.Enrollment
		var status string
		var date pgtype.Date

		if err := rows.Scan(&e.ID, &e.ProjectID, &e.StudentID, &status, &date, &e.Motivation); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}

		e.Status = models.EnrollmentStatus(status)
		if !e.Status.IsValid() {
			slog.Warn("skipping enrollment with unknown status", "id", e.ID, "status", status)
			continue
		}
		e.EnrollmentDate = dateFrom(date)

		enrollments = append(enrollments, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollments: %w", err)
	}

	return enrollments, nil
}

func (r *PostgresRepository) loadCertificates(ctx context.Context) ([]models.Certificate, error) {
	query := `
		SELECT id, project_id, student_name, project_name, coordinator, total_hours, completion_date, issue_date
		FROM certificates
		ORDER BY position, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	defer rows.Close()

	certificates := make([]models.Certificate, 0)
	for rows.Next() {
		var c models.Certificate
		var completed, issued pgtype.Date

		err := rows.Scan(
			&c.ID,
			&c.ProjectID,
			&c.StudentName,
			&c.ProjectName,
			&c.Coordinator,
			&c.TotalHours,
			&completed,
			&issued,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan certificate: %w", err)
		}

		c.CompletionDate = dateFrom(completed)
		c.IssueDate = dateFrom(issued)
		certificates = append(certificates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating certificates: %w", err)
	}

	return certificates, nil
}

func (r *PostgresRepository) loadStudents(ctx context.Context) ([]models.Student, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, course, period, phone
		FROM students
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	students, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Student, error) {
		var s models.Student
		err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Course, &s.Period, &s.Phone)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan students: %w", err)
	}

	return students, nil
}

// SeedDataset replaces the stored collections with ds in a single transaction.
// Collection order is kept in the position column.
func (r *PostgresRepository) SeedDataset(ctx context.Context, ds models.Dataset) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE projects, enrollments, certificates, students`); err != nil {
		return fmt.Errorf("failed to clear collections: %w", err)
	}

	batch := &pgx.Batch{}

	for i, p := range ds.Projects {
		batch.Queue(`
			INSERT INTO projects (id, position, name, area, description, total_hours, weekly_hours, start_date, end_date,
			                      courses, coordinator, status, max_participants, current_participants)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			p.ID, i, p.Name, p.Area, p.Description, p.TotalHours, p.WeeklyHours,
			nullDate(p.StartDate), nullDate(p.EndDate), courses(p.Courses), p.Coordinator,
			string(p.Status), p.MaxParticipants, p.CurrentParticipants,
		)
	}

	for i, e := range ds.Enrollments {
		batch.Queue(`
			INSERT INTO enrollments (id, position, project_id, student_id, status, enrollment_date, motivation)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			e.ID, i, e.ProjectID, e.StudentID, string(e.Status), nullDate(e.EnrollmentDate), e.Motivation,
		)
	}

	for i, c := range ds.Certificates {
		batch.Queue(`
			INSERT INTO certificates (id, position, project_id, student_name, project_name, coordinator,
			                          total_hours, completion_date, issue_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			c.ID, i, c.ProjectID, c.StudentName, c.ProjectName, c.Coordinator,
			c.TotalHours, nullDate(c.CompletionDate), nullDate(c.IssueDate),
		)
	}

	for i, s := range ds.Students {
		batch.Queue(`
			INSERT INTO students (id, position, name, email, course, period, phone)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			s.ID, i, s.Name, s.Email, s.Course, s.Period, s.Phone,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert collections: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	slog.Info("dataset seeded",
		"projects", len(ds.Projects),
		"enrollments", len(ds.Enrollments),
		"certificates", len(ds.Certificates),
		"students", len(ds.Students))
	return nil
}

// RecordSubmission appends an enrollment request to the audit table
func (r *PostgresRepository) RecordSubmission(ctx context.Context, s *models.Submission) error {
	query := `
		INSERT INTO enrollment_submissions (id, project_id, student_id, name, email, phone, course, period, motivation, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		s.ID,
		s.ProjectID,
		nullString(s.StudentID),
		s.Name,
		s.Email,
		nullString(s.Phone),
		s.Course,
		s.Period,
		nullString(s.Motivation),
		s.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}

	return nil
}

// ListSubmissions returns recorded submissions, newest first.
// An empty projectID lists submissions for every project.
func (r *PostgresRepository) ListSubmissions(ctx context.Context, projectID string, limit int) ([]models.Submission, error) {
	query := `
		SELECT id::text, project_id, student_id, name, email, phone, course, period, motivation, submitted_at
		FROM enrollment_submissions
		WHERE 1=1
	`
	args := make([]interface{}, 0)
	argNum := 1

	if projectID != "" {
		query += fmt.Sprintf(" AND project_id = $%d", argNum)
		args = append(args, projectID)
		argNum++
	}

	query += " ORDER BY submitted_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]models.Submission, 0)
	for rows.Next() {
		var s models.Submission
		var studentID, phone, motivation sql.NullString

		err := rows.Scan(
			&s.ID,
			&s.ProjectID,
			&studentID,
			&s.Name,
			&s.Email,
			&phone,
			&s.Course,
			&s.Period,
			&motivation,
			&s.SubmittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}

		s.StudentID = studentID.String
		s.Phone = phone.String
		s.Motivation = motivation.String
		submissions = append(submissions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}

	return submissions, nil
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullDate(d models.Date) pgtype.Date {
	if d.IsZero() {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.Time(), Valid: true}
}

func dateFrom(d pgtype.Date) models.Date {
	if !d.Valid {
		return models.Date{}
	}
	return models.DateOf(d.Time)
}

func courses(c []string) []string {
	if c == nil {
		return []string{}
	}
	return c
}
