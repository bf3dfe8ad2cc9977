package store

import (
	"context"
	"errors"
	"sync"

	"github.com/locvowork/hr_records/internal/domain"
)

var errNetworkDown = errors.New("dial tcp: connection refused")

// fakeGateway keeps server-side state in memory. Error fields fail the
// matching call; gates block a call until closed.
type fakeGateway struct {
	mu sync.Mutex

	employees  []domain.Employee
	payroll    []domain.PayrollRecord
	attendance []domain.AttendanceRecord
	leave      []domain.LeaveRequest
	reviews    []domain.PerformanceReview
	nextID     int64

	createErr error
	deleteErr map[int64]error
	listErr   error
	leaveErr  error
	reviewErr error
	panicList bool

	createGate chan struct{}
	deleteGate map[int64]chan struct{}
	listGate   chan struct{}
	entered    chan string
}

func newFakeGateway(employees ...domain.Employee) *fakeGateway {
	g := &fakeGateway{
		employees:  employees,
		nextID:     100,
		deleteErr:  make(map[int64]error),
		deleteGate: make(map[int64]chan struct{}),
		entered:    make(chan string, 16),
	}
	return g
}

func (g *fakeGateway) signal(name string) {
	select {
	case g.entered <- name:
	default:
	}
}

func (g *fakeGateway) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	g.signal("list")
	if g.listGate != nil {
		<-g.listGate
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listErr != nil {
		return nil, g.listErr
	}
	return cloneSlice(g.employees), nil
}

func (g *fakeGateway) CreateEmployee(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	g.signal("create")
	if g.createGate != nil {
		<-g.createGate
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	e := in.ToEmployee(g.nextID)
	g.nextID++
	g.employees = append(g.employees, e)
	return &e, nil
}

func (g *fakeGateway) DeleteEmployee(ctx context.Context, id int64) error {
	g.signal("delete")
	g.mu.Lock()
	gate := g.deleteGate[id]
	g.mu.Unlock()
	if gate != nil {
		<-gate
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.deleteErr[id]; err != nil {
		return err
	}
	for i, e := range g.employees {
		if e.ID == id {
			g.employees = append(g.employees[:i:i], g.employees[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (g *fakeGateway) ListPayroll(ctx context.Context) ([]domain.PayrollRecord, error) {
	g.signal("payroll")
	if g.listGate != nil {
		<-g.listGate
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listErr != nil {
		return nil, g.listErr
	}
	return cloneSlice(g.payroll), nil
}

func (g *fakeGateway) ListAttendance(ctx context.Context) ([]domain.AttendanceRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listErr != nil {
		return nil, g.listErr
	}
	return cloneSlice(g.attendance), nil
}

func (g *fakeGateway) ListLeaveRequests(ctx context.Context) ([]domain.LeaveRequest, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listErr != nil {
		return nil, g.listErr
	}
	return cloneSlice(g.leave), nil
}

func (g *fakeGateway) CreateLeaveRequest(ctx context.Context, in domain.LeaveRequestInput) (*domain.LeaveRequest, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.leaveErr != nil {
		return nil, g.leaveErr
	}
	status := in.Status
	if status == "" {
		status = domain.LeavePending
	}
	l := domain.LeaveRequest{ID: g.nextID, EmployeeID: in.EmployeeID, Name: g.nameOf(in.EmployeeID), Date: in.Date, Reason: in.Reason, Status: status}
	g.nextID++
	g.leave = append(g.leave, l)
	return &l, nil
}

func (g *fakeGateway) UpdateLeaveStatus(ctx context.Context, id int64, status domain.LeaveStatus) (*domain.LeaveRequest, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.leaveErr != nil {
		return nil, g.leaveErr
	}
	for i := range g.leave {
		if g.leave[i].ID == id {
			g.leave[i].Status = status
			g.leave[i].Name = g.nameOf(g.leave[i].EmployeeID)
			l := g.leave[i]
			return &l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (g *fakeGateway) ListReviews(ctx context.Context) ([]domain.PerformanceReview, error) {
	if g.panicList {
		panic("gateway exploded")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listErr != nil {
		return nil, g.listErr
	}
	return cloneSlice(g.reviews), nil
}

func (g *fakeGateway) CreateReview(ctx context.Context, in domain.ReviewInput) (*domain.PerformanceReview, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.reviewErr != nil {
		return nil, g.reviewErr
	}
	r := domain.PerformanceReview{ID: g.nextID, EmployeeID: in.EmployeeID, Rating: in.Rating, Comments: in.Comments, Date: in.Date}
	g.nextID++
	g.reviews = append(g.reviews, r)
	return &r, nil
}

func (g *fakeGateway) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	if creds.Email != "admin@example.com" {
		return nil, domain.ErrUserNotFound
	}
	if creds.Password != "admin123" {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.LoginResult{Success: true, Token: "session_test", User: &domain.User{ID: 1, Email: creds.Email}}, nil
}

// nameOf must be called with mu held.
func (g *fakeGateway) nameOf(employeeID int64) string {
	for _, e := range g.employees {
		if e.ID == employeeID {
			return e.Name
		}
	}
	return ""
}

func (g *fakeGateway) serverEmployees() []domain.Employee {
	g.mu.Lock()
	defer g.mu.Unlock()
	return cloneSlice(g.employees)
}
