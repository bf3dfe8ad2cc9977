// Package hrclient is a typed client for the HR records REST API.
package hrclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/locvowork/hr_records/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Client talks to one API base URL. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      func() string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithTokenSource sends the returned session marker as a bearer token when non-empty.
// The server does not verify it.
func WithTokenSource(fn func() string) Option {
	return func(c *Client) {
		c.token = fn
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known statuses onto the domain sentinels.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest:
		return domain.ErrValidation
	}
	return nil
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// ==================== EMPLOYEES ====================

func (c *Client) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	if err := c.do(ctx, http.MethodGet, "/employees", nil, &out); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return out, nil
}

func (c *Client) CreateEmployee(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	var out domain.Employee
	if err := c.do(ctx, http.MethodPost, "/employees", in, &out); err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, "/employees/"+strconv.FormatInt(id, 10), nil, nil); err != nil {
		return fmt.Errorf("delete employee %d: %w", id, err)
	}
	return nil
}

func (c *Client) SearchEmployees(ctx context.Context, q string, limit int) ([]domain.Employee, error) {
	params := url.Values{"q": {q}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var out []domain.Employee
	if err := c.do(ctx, http.MethodGet, "/employees/search?"+params.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}
	return out, nil
}

// ==================== RECORDS ====================

func (c *Client) ListPayroll(ctx context.Context) ([]domain.PayrollRecord, error) {
	var out []domain.PayrollRecord
	if err := c.do(ctx, http.MethodGet, "/payroll", nil, &out); err != nil {
		return nil, fmt.Errorf("list payroll: %w", err)
	}
	return out, nil
}

func (c *Client) ListAttendance(ctx context.Context) ([]domain.AttendanceRecord, error) {
	var out []domain.AttendanceRecord
	if err := c.do(ctx, http.MethodGet, "/attendance", nil, &out); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return out, nil
}

// ExportPayroll streams the payroll workbook into w.
func (c *Client) ExportPayroll(ctx context.Context, w io.Writer) (int64, error) {
	return c.download(ctx, "/payroll/export", w)
}

// ExportAttendance streams the attendance workbook into w.
func (c *Client) ExportAttendance(ctx context.Context, w io.Writer) (int64, error) {
	return c.download(ctx, "/attendance/export", w)
}

// ==================== LEAVE ====================

func (c *Client) ListLeaveRequests(ctx context.Context) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	if err := c.do(ctx, http.MethodGet, "/leave-requests", nil, &out); err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	return out, nil
}

func (c *Client) CreateLeaveRequest(ctx context.Context, in domain.LeaveRequestInput) (*domain.LeaveRequest, error) {
	var out domain.LeaveRequest
	if err := c.do(ctx, http.MethodPost, "/leave-requests", in, &out); err != nil {
		return nil, fmt.Errorf("create leave request: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateLeaveStatus(ctx context.Context, id int64, status domain.LeaveStatus) (*domain.LeaveRequest, error) {
	var out domain.LeaveRequest
	path := "/leave-requests/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodPatch, path, domain.LeaveStatusInput{Status: status}, &out); err != nil {
		return nil, fmt.Errorf("update leave request %d: %w", id, err)
	}
	return &out, nil
}

// ==================== REVIEWS ====================

func (c *Client) ListReviews(ctx context.Context) ([]domain.PerformanceReview, error) {
	var out []domain.PerformanceReview
	if err := c.do(ctx, http.MethodGet, "/performance-reviews", nil, &out); err != nil {
		return nil, fmt.Errorf("list performance reviews: %w", err)
	}
	return out, nil
}

func (c *Client) CreateReview(ctx context.Context, in domain.ReviewInput) (*domain.PerformanceReview, error) {
	var out domain.PerformanceReview
	if err := c.do(ctx, http.MethodPost, "/performance-reviews", in, &out); err != nil {
		return nil, fmt.Errorf("create performance review: %w", err)
	}
	return &out, nil
}

// ==================== SESSION ====================

// Login returns the session marker and user. A rejected login is reported as
// domain.ErrUserNotFound or domain.ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	var out domain.LoginResult
	if err := c.do(ctx, http.MethodPost, "/login", creds, &out); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !out.Success {
		if out.Message == domain.MsgUserNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.ErrInvalidCredentials
	}
	return &out, nil
}

// Health pings the API and its database.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// ==================== TRANSPORT ====================

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) download(ctx context.Context, path string, w io.Writer) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Del("Accept")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("download %s: %w", path, readAPIError(resp))
	}
	return io.Copy(w, resp.Body)
}

// readAPIError pulls the message from {"error":...} or {"message":...} bodies.
func readAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err == nil {
		for _, key := range []string{"error", "message"} {
			if msg, ok := payload[key].(string); ok && strings.TrimSpace(msg) != "" {
				apiErr.Message = msg
				break
			}
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
