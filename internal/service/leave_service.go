package service

import (
	"context"
	"fmt"

	"github.com/locvowork/hr_records/internal/domain"
)

type LeaveService interface {
	List(ctx context.Context) ([]domain.LeaveRequest, error)
	Create(ctx context.Context, in domain.LeaveRequestInput) (*domain.LeaveRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.LeaveStatus) (*domain.LeaveRequest, error)
}

type leaveService struct {
	repo domain.LeaveRepository
}

func NewLeaveService(repo domain.LeaveRepository) LeaveService {
	return &leaveService{repo: repo}
}

func (s *leaveService) List(ctx context.Context) ([]domain.LeaveRequest, error) {
	return s.repo.List(ctx)
}

// Create stores a leave request. A missing status defaults to Pending.
func (s *leaveService) Create(ctx context.Context, in domain.LeaveRequestInput) (*domain.LeaveRequest, error) {
	if in.EmployeeID <= 0 {
		return nil, fmt.Errorf("%w: employee_id is required", domain.ErrValidation)
	}
	if in.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if in.Status == "" {
		in.Status = domain.LeavePending
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
	}

	return s.repo.Create(ctx, in)
}

// UpdateStatus accepts any transition within the status set; no workflow is enforced.
func (s *leaveService) UpdateStatus(ctx context.Context, id int64, status domain.LeaveStatus) (*domain.LeaveRequest, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
