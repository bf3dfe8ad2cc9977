package store

import (
	"context"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/logger"
)

const (
	msgAddEmployeeFailed    = "Failed to add employee"
	msgDeleteEmployeeFailed = "Failed to delete employee"
)

// AddEmployee inserts draft optimistically and waits for the server.
func (s *Store) AddEmployee(ctx context.Context, draft domain.EmployeeInput) OpResult[domain.Employee] {
	_, done := s.AddEmployeeAsync(ctx, draft)
	return <-done
}

// AddEmployeeAsync inserts a provisional record under a temporary id and
// returns it as Pending. The final result arrives on done: Committed with the
// server id swapped in place, or RolledBack with the provisional record removed.
func (s *Store) AddEmployeeAsync(ctx context.Context, draft domain.EmployeeInput) (OpResult[domain.Employee], <-chan OpResult[domain.Employee]) {
	s.mu.Lock()
	provisional := draft.ToEmployee(s.nextTempID())
	s.employees = append(s.employees, provisional)
	s.mu.Unlock()
	s.notify(Event{Kind: EventAdded, Resource: Employees, ID: provisional.ID})

	done := make(chan OpResult[domain.Employee], 1)
	go func() {
		done <- s.commitEmployee(ctx, draft, provisional)
	}()
	return OpResult[domain.Employee]{State: Pending, Record: provisional}, done
}

func (s *Store) commitEmployee(ctx context.Context, draft domain.EmployeeInput, provisional domain.Employee) OpResult[domain.Employee] {
	created, err := s.gw.CreateEmployee(ctx, draft)
	if err != nil {
		s.mu.Lock()
		s.employees = removeEmployee(s.employees, provisional.ID)
		s.setErr(Employees, msgAddEmployeeFailed)
		s.mu.Unlock()

		logger.WarnLog(ctx, "Rolled back provisional employee %d: %v", provisional.ID, err)
		s.notify(Event{Kind: EventRolledBack, Resource: Employees, ID: provisional.ID})
		return OpResult[domain.Employee]{State: RolledBack, Record: provisional, Err: err}
	}

	s.mu.Lock()
	record := provisional
	record.ID = created.ID
	if i := indexEmployee(s.employees, provisional.ID); i >= 0 {
		s.employees[i].ID = created.ID
		record = s.employees[i]
	} else if indexEmployee(s.employees, created.ID) < 0 {
		// a concurrent fetch replaced the collection before the create landed
		s.employees = append(s.employees, record)
	}
	s.setErr(Employees, "")
	s.mu.Unlock()

	s.notify(Event{Kind: EventCommitted, Resource: Employees, ID: created.ID})
	return OpResult[domain.Employee]{State: Committed, Record: record}
}

// DeleteEmployee removes id optimistically. When the server rejects the
// delete, the collection is re-fetched and the delete error returned. When
// the re-fetch fails as well, only the removed record is put back, at its old
// position and only if it is still absent, and a *DesyncError carrying both
// failures is returned.
func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	s.mu.Lock()
	idx := indexEmployee(s.employees, id)
	var removed domain.Employee
	if idx >= 0 {
		removed = s.employees[idx]
	}
	s.employees = removeEmployee(s.employees, id)
	s.mu.Unlock()
	s.notify(Event{Kind: EventRemoved, Resource: Employees, ID: id})

	deleteErr := s.gw.DeleteEmployee(ctx, id)
	if deleteErr == nil {
		s.mu.Lock()
		s.setErr(Employees, "")
		s.mu.Unlock()
		return nil
	}
	logger.WarnLog(ctx, "Delete of employee %d failed, resyncing: %v", id, deleteErr)

	rows, resyncErr := s.gw.ListEmployees(ctx)
	if resyncErr != nil {
		logger.ErrorLog(ctx, "Resync after failed delete of employee %d failed: %v (delete error: %v)", id, resyncErr, deleteErr)
		s.mu.Lock()
		if idx >= 0 && indexEmployee(s.employees, id) < 0 {
			s.employees = insertEmployee(s.employees, idx, removed)
		}
		s.setErr(Employees, msgDeleteEmployeeFailed)
		s.mu.Unlock()
		s.notify(Event{Kind: EventRolledBack, Resource: Employees, ID: id})
		return &DesyncError{DeleteErr: deleteErr, ResyncErr: resyncErr}
	}

	s.mu.Lock()
	s.employees = cloneSlice(rows)
	s.setErr(Employees, msgDeleteEmployeeFailed)
	s.mu.Unlock()
	s.notify(Event{Kind: EventResynced, Resource: Employees, ID: id})
	return deleteErr
}

func indexEmployee(list []domain.Employee, id int64) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// removeEmployee returns a new slice without id, keeping order.
func removeEmployee(list []domain.Employee, id int64) []domain.Employee {
	out := make([]domain.Employee, 0, len(list))
	for _, e := range list {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// insertEmployee returns a new slice with e at position i, clamped to the end.
func insertEmployee(list []domain.Employee, i int, e domain.Employee) []domain.Employee {
	if i > len(list) {
		i = len(list)
	}
	out := make([]domain.Employee, 0, len(list)+1)
	out = append(out, list[:i]...)
	out = append(out, e)
	return append(out, list[i:]...)
}
