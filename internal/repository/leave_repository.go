package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/repository/builder"
)

var leaveWriteColumns = []string{"id", "employee_id", "date", "reason", "status"}

// withEmployeeName wraps a data-modifying statement in a CTE joined to
// employees, so the joined representation comes back from one statement.
func withEmployeeName(stmt string) string {
	return `WITH w AS (` + stmt + `)
		SELECT w.id, w.employee_id, COALESCE(e.name, ''), w.date, w.reason, w.status
		FROM w
		LEFT JOIN employees e ON w.employee_id = e.id`
}

type leaveRepository struct {
	db *sql.DB
}

// NewLeaveRepository creates a new instance of LeaveRepository
func NewLeaveRepository(db *sql.DB) domain.LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) List(ctx context.Context) ([]domain.LeaveRequest, error) {
	query, args := builder.NewSQLBuilder().
		Select("l.id", "l.employee_id", "e.name", "l.date", "l.reason", "l.status").
		From("leave_requests l").
		Join("INNER", "employees e", "l.employee_id = e.id").
		OrderBy("l.id ASC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.LeaveRequest{}
	for rows.Next() {
		l, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return requests, nil
}

func (r *leaveRepository) Create(ctx context.Context, in domain.LeaveRequestInput) (*domain.LeaveRequest, error) {
	stmt, args := builder.NewSQLBuilder().
		Insert("leave_requests", "employee_id", "reason", "date", "status").
		Values(in.EmployeeID, in.Reason, in.Date, string(in.Status)).
		Returning(leaveWriteColumns...).
		Build()

	row := r.db.QueryRowContext(ctx, withEmployeeName(stmt), args...)
	l, err := scanLeaveRequest(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", translateError(err))
	}
	return &l, nil
}

func (r *leaveRepository) UpdateStatus(ctx context.Context, id int64, status domain.LeaveStatus) (*domain.LeaveRequest, error) {
	stmt, args := builder.NewSQLBuilder().
		Update("leave_requests").
		Set("status", string(status)).
		Where("id = ?", id).
		Returning(leaveWriteColumns...).
		Build()

	row := r.db.QueryRowContext(ctx, withEmployeeName(stmt), args...)
	l, err := scanLeaveRequest(row)
	if err != nil {
		return nil, fmt.Errorf("leave request %d: %w", id, translateError(err))
	}
	return &l, nil
}

func scanLeaveRequest(row rowScanner) (domain.LeaveRequest, error) {
	var (
		l      domain.LeaveRequest
		reason sql.NullString
	)
	if err := row.Scan(&l.ID, &l.EmployeeID, &l.Name, &l.Date, &reason, &l.Status); err != nil {
		return domain.LeaveRequest{}, err
	}
	l.Reason = reason.String
	return l, nil
}
