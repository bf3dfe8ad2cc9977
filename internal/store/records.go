package store

import (
	"context"
	"fmt"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/logger"
	"github.com/locvowork/hr_records/internal/mirror"
)

const (
	msgSubmitLeaveFailed = "Failed to submit leave request"
	msgUpdateLeaveFailed = "Failed to update leave request"
	msgAddReviewFailed   = "Failed to add review"
)

// AddLeaveRequest creates the request on the server and appends the returned
// record, which carries the server id and default status. On failure the
// collection is untouched.
func (s *Store) AddLeaveRequest(ctx context.Context, in domain.LeaveRequestInput) (domain.LeaveRequest, error) {
	created, err := s.gw.CreateLeaveRequest(ctx, in)
	if err != nil {
		s.fail(ctx, LeaveRequests, msgSubmitLeaveFailed, err)
		return domain.LeaveRequest{}, err
	}

	s.mu.Lock()
	s.leaveRequests = append(s.leaveRequests, *created)
	snapshot := cloneSlice(s.leaveRequests)
	s.mu.Unlock()

	s.persist(ctx, mirror.KeyLeaveRequests, snapshot)
	s.notify(Event{Kind: EventAdded, Resource: LeaveRequests, ID: created.ID})
	return *created, nil
}

// UpdateLeaveStatus sets the status on the server and replaces the matching
// cached record with the server's representation. No other record changes.
func (s *Store) UpdateLeaveStatus(ctx context.Context, id int64, status domain.LeaveStatus) (domain.LeaveRequest, error) {
	updated, err := s.gw.UpdateLeaveStatus(ctx, id, status)
	if err != nil {
		s.fail(ctx, LeaveRequests, msgUpdateLeaveFailed, err)
		return domain.LeaveRequest{}, err
	}

	s.mu.Lock()
	replaced := false
	for i := range s.leaveRequests {
		if s.leaveRequests[i].ID == id {
			s.leaveRequests[i] = *updated
			replaced = true
			break
		}
	}
	snapshot := cloneSlice(s.leaveRequests)
	s.mu.Unlock()

	if !replaced {
		logger.DebugLog(ctx, "Leave request %d updated on the server but not cached", id)
		return *updated, nil
	}
	s.persist(ctx, mirror.KeyLeaveRequests, snapshot)
	s.notify(Event{Kind: EventUpdated, Resource: LeaveRequests, ID: id})
	return *updated, nil
}

// AddReview creates the review on the server and appends the returned record.
func (s *Store) AddReview(ctx context.Context, in domain.ReviewInput) (domain.PerformanceReview, error) {
	created, err := s.gw.CreateReview(ctx, in)
	if err != nil {
		s.fail(ctx, Reviews, msgAddReviewFailed, err)
		return domain.PerformanceReview{}, err
	}

	s.mu.Lock()
	s.reviews = append(s.reviews, *created)
	snapshot := cloneSlice(s.reviews)
	s.mu.Unlock()

	s.persist(ctx, mirror.KeyReviews, snapshot)
	s.notify(Event{Kind: EventAdded, Resource: Reviews, ID: created.ID})
	return *created, nil
}

// AddAttendance records attendance locally only; the API has no create
// endpoint for it. The record keeps a temporary id and is dropped by the
// next attendance fetch.
func (s *Store) AddAttendance(ctx context.Context, rec domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	if !rec.Status.Valid() {
		return domain.AttendanceRecord{}, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, rec.Status)
	}
	if rec.EmployeeID <= 0 {
		return domain.AttendanceRecord{}, fmt.Errorf("%w: employee id is required", domain.ErrValidation)
	}
	if rec.Date.IsZero() {
		return domain.AttendanceRecord{}, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	s.mu.Lock()
	rec.ID = s.nextTempID()
	if rec.Name == "" {
		if i := indexEmployee(s.employees, rec.EmployeeID); i >= 0 {
			rec.Name = s.employees[i].Name
		}
	}
	s.attendance = append(s.attendance, rec)
	snapshot := cloneSlice(s.attendance)
	s.mu.Unlock()

	s.persist(ctx, mirror.KeyAttendance, snapshot)
	s.notify(Event{Kind: EventAdded, Resource: Attendance, ID: rec.ID})
	return rec, nil
}

func (s *Store) fail(ctx context.Context, r Resource, msg string, err error) {
	logger.ErrorLog(ctx, "%s: %v", msg, err)
	s.mu.Lock()
	s.setErr(r, msg)
	s.mu.Unlock()
	s.notify(Event{Kind: EventFailed, Resource: r})
}
