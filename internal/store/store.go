// Package store is the client-side cache of HR records.
//
// A Store holds the five record collections and the session flag in memory,
// mediates every mutation through a Gateway and shadows leave requests,
// attendance, reviews and the session into a mirror.Mirror so that a restart
// can restore them without a network call. The mirror is read only in New.
//
// The mutex guards memory only. Gateway calls run outside it, so two
// overlapping operations on the same collection may interleave their
// optimistic changes and their round trips. Callers needing call-order
// results must wait for each operation before starting the next.
package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/logger"
	"github.com/locvowork/hr_records/internal/mirror"
)

// Gateway is the remote side of the store. *hrclient.Client implements it.
type Gateway interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	CreateEmployee(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
	ListPayroll(ctx context.Context) ([]domain.PayrollRecord, error)
	ListAttendance(ctx context.Context) ([]domain.AttendanceRecord, error)
	ListLeaveRequests(ctx context.Context) ([]domain.LeaveRequest, error)
	CreateLeaveRequest(ctx context.Context, in domain.LeaveRequestInput) (*domain.LeaveRequest, error)
	UpdateLeaveStatus(ctx context.Context, id int64, status domain.LeaveStatus) (*domain.LeaveRequest, error)
	ListReviews(ctx context.Context) ([]domain.PerformanceReview, error)
	CreateReview(ctx context.Context, in domain.ReviewInput) (*domain.PerformanceReview, error)
	Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error)
}

// Resource names a cached collection.
type Resource string

const (
	Employees     Resource = "employees"
	Payroll       Resource = "payroll"
	Attendance    Resource = "attendance"
	LeaveRequests Resource = "leaveRequests"
	Reviews       Resource = "reviews"
	Session       Resource = "session"
)

// EventKind tells observers what changed.
type EventKind string

const (
	EventLoading    EventKind = "loading"
	EventReplaced   EventKind = "replaced"
	EventAdded      EventKind = "added"
	EventCommitted  EventKind = "committed"
	EventUpdated    EventKind = "updated"
	EventRemoved    EventKind = "removed"
	EventRolledBack EventKind = "rolled_back"
	EventResynced   EventKind = "resynced"
	EventFailed     EventKind = "failed"
	EventSession    EventKind = "session"
)

// Event is delivered to subscribers after the state change is applied.
// ID is set for single-record events.
type Event struct {
	Kind     EventKind
	Resource Resource
	ID       int64
}

// Defaults is the bundled dataset used for mirrored collections absent from the mirror.
type Defaults struct {
	LeaveRequests     []domain.LeaveRequest      `json:"leaveRequests"`
	AttendanceRecords []domain.AttendanceRecord  `json:"attendanceRecords"`
	Reviews           []domain.PerformanceReview `json:"reviews"`
}

//go:embed defaults.json
var bundledDefaults []byte

// BundledDefaults returns the dataset shipped with the binary.
func BundledDefaults() Defaults {
	var d Defaults
	if err := json.Unmarshal(bundledDefaults, &d); err != nil {
		panic(err)
	}
	return d
}

type Option func(*Store)

// WithDefaults replaces the bundled default dataset.
func WithDefaults(d Defaults) Option {
	return func(s *Store) {
		s.defaults = d
	}
}

type Store struct {
	gw     Gateway
	mirror mirror.Mirror

	mu            sync.Mutex
	employees     []domain.Employee
	payroll       []domain.PayrollRecord
	attendance    []domain.AttendanceRecord
	leaveRequests []domain.LeaveRequest
	reviews       []domain.PerformanceReview
	authenticated bool
	token         string
	user          *domain.User
	loading       bool
	errs          map[Resource]string
	tempSeq       int64

	defaults    Defaults
	subMu       sync.Mutex
	subscribers map[int]func(Event)
	nextSub     int
}

// New builds a store and hydrates the mirrored collections and session from
// m, falling back to the default dataset. A nil m keeps state in memory only.
func New(ctx context.Context, gw Gateway, m mirror.Mirror, opts ...Option) *Store {
	if m == nil {
		m = mirror.NewMemoryMirror(0)
	}
	s := &Store{
		gw:          gw,
		mirror:      m,
		errs:        make(map[Resource]string),
		defaults:    BundledDefaults(),
		subscribers: make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.leaveRequests = hydrate(ctx, m, mirror.KeyLeaveRequests, s.defaults.LeaveRequests)
	s.attendance = hydrate(ctx, m, mirror.KeyAttendance, s.defaults.AttendanceRecords)
	s.reviews = hydrate(ctx, m, mirror.KeyReviews, s.defaults.Reviews)

	if v, ok, err := m.Get(ctx, mirror.KeyAuth); err != nil {
		logger.WarnLog(ctx, "Failed to read %s from mirror: %v", mirror.KeyAuth, err)
	} else if ok {
		s.authenticated = v == mirror.AuthTrue
	}
	if v, ok, err := m.Get(ctx, mirror.KeyToken); err != nil {
		logger.WarnLog(ctx, "Failed to read %s from mirror: %v", mirror.KeyToken, err)
	} else if ok {
		s.token = v
	}

	return s
}

func hydrate[T any](ctx context.Context, m mirror.Mirror, key string, fallback []T) []T {
	raw, ok, err := m.Get(ctx, key)
	if err != nil {
		logger.WarnLog(ctx, "Failed to read %s from mirror, using defaults: %v", key, err)
		return cloneSlice(fallback)
	}
	if !ok {
		return cloneSlice(fallback)
	}

	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.WarnLog(ctx, "Mirror entry %s is not valid JSON, using defaults: %v", key, err)
		return cloneSlice(fallback)
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// ---- snapshots ---------------------------------------

func (s *Store) Employees() []domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.employees)
}

func (s *Store) Payroll() []domain.PayrollRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.payroll)
}

func (s *Store) Attendance() []domain.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.attendance)
}

func (s *Store) LeaveRequests() []domain.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.leaveRequests)
}

func (s *Store) Reviews() []domain.PerformanceReview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.reviews)
}

// ReviewsByEmployee filters the cached reviews.
func (s *Store) ReviewsByEmployee(employeeID int64) []domain.PerformanceReview {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.PerformanceReview
	for _, r := range s.reviews {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last error message recorded for r, or "".
func (s *Store) Err(r Resource) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs[r]
}

// Authenticated is the opaque session flag.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Token returns the session marker. It is never parsed or verified.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the logged-in user of this process, if any. It is not mirrored.
func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// ---- observers ---------------------------------------

// Subscribe registers fn for every state change and returns a function that
// removes it. fn runs on the goroutine that made the change and must not block.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) notify(ev Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// ---- internals ---------------------------------------

// nextTempID must be called with mu held.
func (s *Store) nextTempID() int64 {
	s.tempSeq--
	return s.tempSeq
}

// setErr must be called with mu held.
func (s *Store) setErr(r Resource, msg string) {
	if msg == "" {
		delete(s.errs, r)
		return
	}
	s.errs[r] = msg
}

// persist writes value under key. Failures are logged and dropped.
func (s *Store) persist(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.WarnLog(ctx, "Failed to encode %s for mirror: %v", key, err)
		return
	}
	if err := s.mirror.Set(ctx, key, string(raw)); err != nil {
		logger.WarnLog(ctx, "Failed to write %s to mirror: %v", key, err)
	}
}

func (s *Store) removeMirrored(ctx context.Context, key string) {
	if err := s.mirror.Remove(ctx, key); err != nil {
		logger.WarnLog(ctx, "Failed to remove %s from mirror: %v", key, err)
	}
}
