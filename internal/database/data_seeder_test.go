package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPresetConfig(t *testing.T) {
	assert.Equal(t, 5, GetPresetConfig(PresetSmall).Employees)
	assert.Equal(t, 200, GetPresetConfig(PresetLarge).Employees)
	assert.Equal(t, GetPresetConfig(PresetMedium), GetPresetConfig("unknown"))
}

func TestDataSeeder(t *testing.T) {
	ctx := context.Background()

	t.Run("SeedData writes every table in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO employees").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectPrepare("INSERT INTO attendance").
			ExpectExec().
			WithArgs(int64(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO payroll").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO leave_requests").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO performance_reviews").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO users").
			WithArgs(AdminEmail, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		seeder := NewDataSeeder(db, nil, 42)
		stats, err := seeder.SeedData(ctx, SeedSize{Employees: 1, AttendanceDays: 1, LeavePerEmp: 1, ReviewsPerEmp: 1})
		require.NoError(t, err)
		assert.Equal(t, SeedStats{Employees: 1, Payroll: 1, Attendance: 1, Leave: 1, Reviews: 1}, stats)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed insert rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO employees").WillReturnError(assert.AnError)
		mock.ExpectRollback()

		_, err = NewDataSeeder(db, nil, 1).SeedData(ctx, SeedSize{Employees: 3})
		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ClearData truncates through the cascade", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("TRUNCATE employees, users RESTART IDENTITY CASCADE").
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, NewDataSeeder(db, nil, 1).ClearData(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Reindex needs a search index", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		_, err = NewDataSeeder(db, nil, 1).Reindex(ctx)
		assert.Error(t, err)
	})

	t.Run("Reindex streams rows in batches", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "position", "department", "contact"}).
			AddRow(1, "John Doe", "Engineer", "Engineering", nil).
			AddRow(2, "Jane Smith", nil, "Finance", "jane@example.com")
		mock.ExpectQuery("SELECT id, name, position, department, contact FROM employees").WillReturnRows(rows)

		idx := &fakeIndexer{failures: 1}
		seeder := NewDataSeeder(db, nil, 1)
		seeder.search = idx
		seeder.retryBackoff = time.Millisecond

		n, err := seeder.Reindex(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []EmployeeDoc{
			{ID: 1, Name: "John Doe", Position: "Engineer", Department: "Engineering"},
			{ID: 2, Name: "Jane Smith", Department: "Finance", Contact: "jane@example.com"},
		}, idx.docs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Reindex reports a failing index", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT id, name").WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "position", "department", "contact"}).AddRow(1, "John Doe", nil, nil, nil))

		seeder := NewDataSeeder(db, nil, 1)
		seeder.search = &fakeIndexer{failures: 10}
		seeder.retryBackoff = time.Millisecond

		n, err := seeder.Reindex(ctx)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Zero(t, n)
	})

	t.Run("Reindex reports a failing query", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT id, name").WillReturnError(assert.AnError)

		seeder := NewDataSeeder(db, nil, 1)
		seeder.search = &fakeIndexer{}
		_, err = seeder.Reindex(ctx)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

type fakeIndexer struct {
	mu       sync.Mutex
	failures int
	docs     []EmployeeDoc
}

func (f *fakeIndexer) BulkIndexEmployees(_ context.Context, docs []EmployeeDoc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return assert.AnError
	}
	f.docs = append(f.docs, docs...)
	return nil
}
