package service

import (
	"context"
	"fmt"
	"time"

	"github.com/locvowork/hr_records/internal/domain"
)

const (
	minRating = 1
	maxRating = 5
)

type ReviewService interface {
	List(ctx context.Context) ([]domain.PerformanceReview, error)
	Create(ctx context.Context, in domain.ReviewInput) (*domain.PerformanceReview, error)
}

type reviewService struct {
	repo domain.ReviewRepository
	now  func() time.Time
}

func NewReviewService(repo domain.ReviewRepository) ReviewService {
	return &reviewService{repo: repo, now: time.Now}
}

func (s *reviewService) List(ctx context.Context) ([]domain.PerformanceReview, error) {
	return s.repo.List(ctx)
}

// Create appends a review. A missing date is today's date.
func (s *reviewService) Create(ctx context.Context, in domain.ReviewInput) (*domain.PerformanceReview, error) {
	if in.EmployeeID <= 0 {
		return nil, fmt.Errorf("%w: employee_id is required", domain.ErrValidation)
	}
	if in.Rating < minRating || in.Rating > maxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", domain.ErrValidation, minRating, maxRating)
	}
	if in.Date.IsZero() {
		in.Date = domain.NewDate(s.now())
	}

	return s.repo.Create(ctx, in)
}
