package domain

import "context"

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, in EmployeeInput) (*Employee, error)
	Delete(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, query string, limit int) ([]Employee, error)
}

// PayrollRepository is read-only: payroll rows are maintained outside this system.
type PayrollRepository interface {
	List(ctx context.Context) ([]PayrollRecord, error)
}

// AttendanceRepository is read-only on the server side.
type AttendanceRepository interface {
	List(ctx context.Context) ([]AttendanceRecord, error)
}

// LeaveRepository defines leave request data access. Status is the only mutable field.
type LeaveRepository interface {
	List(ctx context.Context) ([]LeaveRequest, error)
	Create(ctx context.Context, in LeaveRequestInput) (*LeaveRequest, error)
	UpdateStatus(ctx context.Context, id int64, status LeaveStatus) (*LeaveRequest, error)
}

// ReviewRepository is append-only.
type ReviewRepository interface {
	List(ctx context.Context) ([]PerformanceReview, error)
	Create(ctx context.Context, in ReviewInput) (*PerformanceReview, error)
}

// UserRepository is used only for login lookups.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}
