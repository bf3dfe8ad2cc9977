package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/repository/builder"
)

var employeeColumns = []string{"id", "name", "position", "department", "employment_history", "contact"}

type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository
func NewEmployeeRepository(db *sql.DB) domain.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	query, args := builder.NewSQLBuilder().
		Select(employeeColumns...).
		From("employees").
		OrderBy("id ASC").
		Build()

	return r.queryEmployees(ctx, query, args...)
}

func (r *employeeRepository) Create(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	query, args := builder.NewSQLBuilder().
		Insert("employees", "name", "position", "department", "employment_history", "contact").
		Values(in.Name, in.Position, in.Department, in.EmploymentHistory, in.Contact).
		Returning("id").
		Build()

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", translateError(err))
	}

	e := in.ToEmployee(id)
	return &e, nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	query, args := builder.NewSQLBuilder().
		Delete("employees").
		Where("id = ?", id).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, translateError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *employeeRepository) SearchByName(ctx context.Context, q string, limit int) ([]domain.Employee, error) {
	b := builder.NewSQLBuilder().
		Select(employeeColumns...).
		From("employees").
		Where("name ILIKE ?", "%"+q+"%").
		OrderBy("name ASC")
	if limit > 0 {
		b.Limit(limit)
	}

	query, args := b.Build()
	return r.queryEmployees(ctx, query, args...)
}

func (r *employeeRepository) queryEmployees(ctx context.Context, query string, args ...interface{}) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return employees, nil
}

func scanEmployee(row rowScanner) (domain.Employee, error) {
	var (
		e          domain.Employee
		position   sql.NullString
		department sql.NullString
		history    sql.NullString
		contact    sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Name, &position, &department, &history, &contact); err != nil {
		return domain.Employee{}, err
	}
	e.Position = position.String
	e.Department = department.String
	e.EmploymentHistory = history.String
	e.Contact = contact.String
	return e, nil
}
