package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/repository/builder"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new instance of ReviewRepository
func NewReviewRepository(db *sql.DB) domain.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) List(ctx context.Context) ([]domain.PerformanceReview, error) {
	query, args := builder.NewSQLBuilder().
		Select("id", "employee_id", "rating", "comments", "date").
		From("performance_reviews").
		OrderBy("id ASC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.PerformanceReview{}
	for rows.Next() {
		var (
			pr       domain.PerformanceReview
			comments sql.NullString
		)
		if err := rows.Scan(&pr.ID, &pr.EmployeeID, &pr.Rating, &comments, &pr.Date); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		pr.Comments = comments.String
		reviews = append(reviews, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) Create(ctx context.Context, in domain.ReviewInput) (*domain.PerformanceReview, error) {
	query, args := builder.NewSQLBuilder().
		Insert("performance_reviews", "employee_id", "rating", "comments", "date").
		Values(in.EmployeeID, in.Rating, in.Comments, in.Date).
		Returning("id").
		Build()

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", translateError(err))
	}

	return &domain.PerformanceReview{
		ID:         id,
		EmployeeID: in.EmployeeID,
		Rating:     in.Rating,
		Comments:   in.Comments,
		Date:       in.Date,
	}, nil
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query, args := builder.NewSQLBuilder().
		Select("id", "email", "password").
		From("users").
		Where("email = ?", email).
		Limit(1).
		Build()

	var u domain.User
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Email, &u.Password); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}
