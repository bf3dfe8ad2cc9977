package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/locvowork/hr_records/internal/logger"
	"github.com/locvowork/hr_records/internal/mirror"
)

var fetchErrMessages = map[Resource]string{
	Employees:     "Failed to load employees",
	Payroll:       "Failed to load payroll",
	Attendance:    "Failed to load attendance",
	LeaveRequests: "Failed to load leave requests",
	Reviews:       "Failed to load reviews",
}

// Fetch replaces the cached collection r with the server's copy. The loading
// flag is set for the duration of the call and cleared on every exit path.
// On failure the cached collection is kept and a message is recorded under r.
func (s *Store) Fetch(ctx context.Context, r Resource) (err error) {
	msg, ok := fetchErrMessages[r]
	if !ok {
		return fmt.Errorf("cannot fetch %q", r)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	if err = s.fetch(ctx, r); err != nil {
		logger.ErrorLog(ctx, "%s: %v", msg, err)
		s.mu.Lock()
		s.setErr(r, msg)
		s.mu.Unlock()
		s.notify(Event{Kind: EventFailed, Resource: r})
		return err
	}

	s.mu.Lock()
	s.setErr(r, "")
	s.mu.Unlock()
	s.notify(Event{Kind: EventReplaced, Resource: r})
	return nil
}

// FetchAll fetches every collection in turn and joins the failures.
func (s *Store) FetchAll(ctx context.Context) error {
	var errs []error
	for _, r := range []Resource{Employees, Payroll, Attendance, LeaveRequests, Reviews} {
		if err := s.Fetch(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
	s.notify(Event{Kind: EventLoading})
}

func (s *Store) fetch(ctx context.Context, r Resource) error {
	switch r {
	case Employees:
		rows, err := s.gw.ListEmployees(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.employees = cloneSlice(rows)
		s.mu.Unlock()

	case Payroll:
		rows, err := s.gw.ListPayroll(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.payroll = cloneSlice(rows)
		s.mu.Unlock()

	case Attendance:
		rows, err := s.gw.ListAttendance(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.attendance = cloneSlice(rows)
		s.mu.Unlock()
		s.persist(ctx, mirror.KeyAttendance, cloneSlice(rows))

	case LeaveRequests:
		rows, err := s.gw.ListLeaveRequests(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.leaveRequests = cloneSlice(rows)
		s.mu.Unlock()
		s.persist(ctx, mirror.KeyLeaveRequests, cloneSlice(rows))

	case Reviews:
		rows, err := s.gw.ListReviews(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.reviews = cloneSlice(rows)
		s.mu.Unlock()
		s.persist(ctx, mirror.KeyReviews, cloneSlice(rows))
	}
	return nil
}
