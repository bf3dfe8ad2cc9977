package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/locvowork/hr_records/internal/database"
	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/logger"
	"github.com/locvowork/hr_records/internal/metrics"
)

const defaultSearchLimit = 20

// EmployeeIndex is the search side of employees. *database.ElasticSearchClient implements it.
type EmployeeIndex interface {
	IndexEmployee(ctx context.Context, doc database.EmployeeDoc) error
	DeleteEmployee(ctx context.Context, id int64) error
	SearchEmployees(ctx context.Context, q string, limit int) ([]database.EmployeeDoc, error)
}

type EmployeeService interface {
	List(ctx context.Context) ([]domain.Employee, error)
	Create(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, limit int) ([]domain.Employee, error)
}

type employeeService struct {
	repo  domain.EmployeeRepository
	index EmployeeIndex
}

// NewEmployeeService wires the repository and an optional search index.
func NewEmployeeService(repo domain.EmployeeRepository, index EmployeeIndex) EmployeeService {
	return &employeeService{repo: repo, index: index}
}

func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.repo.List(ctx)
}

func (s *employeeService) Create(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("%w: employee name is required", domain.ErrValidation)
	}

	emp, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	if s.index != nil {
		if err := s.index.IndexEmployee(ctx, database.NewEmployeeDoc(*emp)); err != nil {
			metrics.SearchIndexFailures.Inc()
			logger.WarnLog(ctx, "Employee %d was created but not indexed: %v", emp.ID, err)
		}
	}
	return emp, nil
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.index != nil {
		if err := s.index.DeleteEmployee(ctx, id); err != nil {
			metrics.SearchIndexFailures.Inc()
			logger.WarnLog(ctx, "Employee %d was deleted but is still indexed: %v", id, err)
		}
	}
	return nil
}

// Search prefers the search index and falls back to a name match in SQL.
func (s *employeeService) Search(ctx context.Context, q string, limit int) ([]domain.Employee, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: search query is required", domain.ErrValidation)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	if s.index != nil {
		docs, err := s.index.SearchEmployees(ctx, q, limit)
		if err == nil {
			employees := make([]domain.Employee, len(docs))
			for i, d := range docs {
				employees[i] = domain.Employee{
					ID:         d.ID,
					Name:       d.Name,
					Position:   d.Position,
					Department: d.Department,
					Contact:    d.Contact,
				}
			}
			return employees, nil
		}
		metrics.SearchFallbacks.Inc()
		logger.WarnLog(ctx, "Search index unavailable, falling back to SQL: %v", err)
	}

	return s.repo.SearchByName(ctx, q, limit)
}
