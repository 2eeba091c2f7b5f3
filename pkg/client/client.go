package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/terra-clan/extension-portal/internal/catalog"
	"github.com/terra-clan/extension-portal/internal/enrollment"
	"github.com/terra-clan/extension-portal/internal/models"
	"github.com/terra-clan/extension-portal/internal/portal"
)

// Client is a Go SDK for the extension-portal API
type Client struct {
	baseURL    string
	studentID  string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithStudent sends every request on behalf of studentID. Without it the
// server's default student is used.
func WithStudent(studentID string) Option {
	return func(c *Client) {
		c.studentID = studentID
	}
}

// NewClient creates a new extension-portal client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is an error reported by the API
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Field      string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("API error %d: %s - %s (%s)", e.StatusCode, e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("API error %d: %s - %s", e.StatusCode, e.Code, e.Message)
}

// ProjectQuery narrows ListProjects. Empty fields are unrestricted.
type ProjectQuery struct {
	Search string
	Area   string
	Status string
	Course string
	Sort   string
}

// EnrollmentQuery narrows ListEnrollments
type EnrollmentQuery struct {
	Search string
	Status string
	Year   string
}

// CertificateQuery narrows ListCertificates
type CertificateQuery struct {
	Search string
	Year   string
}

// Project is a project with its display metadata
type Project = models.ProjectView

// Enrollment is an enrollment joined with its project and display metadata
type Enrollment = models.EnrollmentDetails

// ListProjects lists the projects matching q
func (c *Client) ListProjects(ctx context.Context, q ProjectQuery) (*catalog.Result[Project], error) {
	v := query(map[string]string{
		"search": q.Search,
		"area":   q.Area,
		"status": q.Status,
		"course": q.Course,
		"sort":   q.Sort,
	})
	return call[catalog.Result[Project]](ctx, c, http.MethodGet, "/api/v1/projects"+v, nil)
}

// GetProject retrieves a project by ID
func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	return call[Project](ctx, c, http.MethodGet, "/api/v1/projects/"+url.PathEscape(id), nil)
}

// GetCertificate retrieves the student's certificate for a project
func (c *Client) GetCertificate(ctx context.Context, projectID string) (*models.Certificate, error) {
	return call[models.Certificate](ctx, c, http.MethodGet, "/api/v1/projects/"+url.PathEscape(projectID)+"/certificate", nil)
}

// Enroll submits an enrollment request for req.ProjectID
func (c *Client) Enroll(ctx context.Context, req enrollment.Request) (*enrollment.Receipt, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	path := "/api/v1/projects/" + url.PathEscape(req.ProjectID) + "/enrollments"
	return call[enrollment.Receipt](ctx, c, http.MethodPost, path, bytes.NewReader(body))
}

// ListEnrollments lists the student's enrollments matching q
func (c *Client) ListEnrollments(ctx context.Context, q EnrollmentQuery) (*catalog.Result[Enrollment], error) {
	v := query(map[string]string{
		"search": q.Search,
		"status": q.Status,
		"year":   q.Year,
	})
	return call[catalog.Result[Enrollment]](ctx, c, http.MethodGet, "/api/v1/enrollments"+v, nil)
}

// History retrieves the student's participation summary
func (c *Client) History(ctx context.Context) (*catalog.HistorySummary, error) {
	return call[catalog.HistorySummary](ctx, c, http.MethodGet, "/api/v1/enrollments/history", nil)
}

// MyProjects retrieves the student's approved and pending projects
func (c *Client) MyProjects(ctx context.Context) (*catalog.MyProjectsDetails, error) {
	return call[catalog.MyProjectsDetails](ctx, c, http.MethodGet, "/api/v1/my-projects", nil)
}

// ListCertificates lists the student's certificates matching q
func (c *Client) ListCertificates(ctx context.Context, q CertificateQuery) (*catalog.Result[models.Certificate], error) {
	v := query(map[string]string{
		"search": q.Search,
		"year":   q.Year,
	})
	return call[catalog.Result[models.Certificate]](ctx, c, http.MethodGet, "/api/v1/certificates"+v, nil)
}

// CertificateSummary retrieves the student's certificate figures
func (c *Client) CertificateSummary(ctx context.Context) (*catalog.CertificateSummary, error) {
	return call[catalog.CertificateSummary](ctx, c, http.MethodGet, "/api/v1/certificates/summary", nil)
}

// Filters retrieves the values each listing can be narrowed by
func (c *Client) Filters(ctx context.Context) (*portal.Filters, error) {
	return call[portal.Filters](ctx, c, http.MethodGet, "/api/v1/filters", nil)
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	return err
}

func query(params map[string]string) string {
	v := url.Values{}
	for k, val := range params {
		if val != "" {
			v.Set(k, val)
		}
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

type envelope[T any] struct {
	Success bool `json:"success"`
	Data    *T   `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"error"`
}

// call performs a request and unwraps the response envelope
func call[T any](ctx context.Context, c *Client, method, path string, body io.Reader) (*T, error) {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	var result envelope[T]
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success || result.Data == nil {
		return nil, fmt.Errorf("API error: unexpected response to %s %s", method, path)
	}

	return result.Data, nil
}

// doRequest performs an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.studentID != "" {
		req.Header.Set("X-Student-ID", c.studentID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var result envelope[json.RawMessage]
		if json.Unmarshal(respBody, &result) == nil && result.Error != nil {
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Code:       result.Error.Code,
				Message:    result.Error.Message,
				Field:      result.Error.Field,
			}
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
