package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/repository/builder"
)

// PayrollRepository reads payroll rows joined with employee names
type PayrollRepository struct {
	db *sql.DB
}

// NewPayrollRepository creates a new repository
func NewPayrollRepository(db *sql.DB) *PayrollRepository {
	return &PayrollRepository{db: db}
}

// List retrieves all payroll rows
func (r *PayrollRepository) List(ctx context.Context) ([]domain.PayrollRecord, error) {
	query, args := builder.NewSQLBuilder().
		Select("p.id", "p.employee_id", "e.name", "p.salary", "p.hours_worked", "p.leave_deductions", "p.final_salary").
		From("payroll p").
		Join("INNER", "employees e", "p.employee_id = e.id").
		OrderBy("p.id ASC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll: %w", err)
	}
	defer rows.Close()

	records := []domain.PayrollRecord{}
	for rows.Next() {
		var p domain.PayrollRecord
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.Name, &p.Salary, &p.HoursWorked, &p.LeaveDeductions, &p.FinalSalary); err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return records, nil
}

// AttendanceRepository reads attendance rows joined with employee names
type AttendanceRepository struct {
	db *sql.DB
}

// NewAttendanceRepository creates a new repository
func NewAttendanceRepository(db *sql.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// List retrieves all attendance rows, most recent first
func (r *AttendanceRepository) List(ctx context.Context) ([]domain.AttendanceRecord, error) {
	query, args := builder.NewSQLBuilder().
		Select("a.id", "a.employee_id", "e.name", "a.date", "a.status").
		From("attendance a").
		Join("INNER", "employees e", "a.employee_id = e.id").
		OrderBy("a.date DESC").
		OrderBy("a.id ASC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	records := []domain.AttendanceRecord{}
	for rows.Next() {
		var a domain.AttendanceRecord
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Name, &a.Date, &a.Status); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return records, nil
}
