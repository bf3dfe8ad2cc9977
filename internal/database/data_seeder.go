package database

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/jaswdr/faker"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/logger"
	"github.com/locvowork/hr_records/internal/security"
	"github.com/locvowork/hr_records/pkg/dataflow"
)

// Default administrator created by every seed run.
const (
	AdminEmail           = "admin@example.com"
	DefaultAdminPassword = "admin123"
)

var (
	departments     = []string{"Engineering", "Finance", "Human Resources", "Operations", "Sales", "Support"}
	attendanceSet   = []domain.AttendanceStatus{domain.AttendancePresent, domain.AttendancePresent, domain.AttendancePresent, domain.AttendanceLate, domain.AttendanceAbsent, domain.AttendanceLeave}
	leaveStatusSet  = []domain.LeaveStatus{domain.LeavePending, domain.LeaveApproved, domain.LeaveRejected}
	leaveReasons    = []string{"Vacation", "Sick leave", "Family event", "Medical appointment", "Personal matters"}
	reviewComments  = []string{"Exceeds expectations", "Consistent delivery", "Needs support on deadlines", "Strong collaboration", "Great ownership"}
	hourlyDeduction = 25.0
)

// SeedPreset names a dataset size.
type SeedPreset string

const (
	PresetSmall  SeedPreset = "small"
	PresetMedium SeedPreset = "medium"
	PresetLarge  SeedPreset = "large"
)

// SeedSize controls how many rows a seed run produces.
type SeedSize struct {
	Employees      int
	AttendanceDays int
	LeavePerEmp    int
	ReviewsPerEmp  int
}

// GetPresetConfig returns configuration for a preset
func GetPresetConfig(preset SeedPreset) SeedSize {
	switch preset {
	case PresetSmall:
		return SeedSize{Employees: 5, AttendanceDays: 5, LeavePerEmp: 1, ReviewsPerEmp: 1}
	case PresetLarge:
		return SeedSize{Employees: 200, AttendanceDays: 60, LeavePerEmp: 4, ReviewsPerEmp: 4}
	default:
		return SeedSize{Employees: 25, AttendanceDays: 20, LeavePerEmp: 2, ReviewsPerEmp: 2}
	}
}

// SeedStats summarises a seed run.
type SeedStats struct {
	Employees  int
	Payroll    int
	Attendance int
	Leave      int
	Reviews    int
	Indexed    int
}

const (
	reindexBatchSize = 500
	reindexWorkers   = 2
)

type employeeIndexer interface {
	BulkIndexEmployees(ctx context.Context, docs []EmployeeDoc) error
}

type DataSeeder struct {
	db            *sql.DB
	search        employeeIndexer
	fake          faker.Faker
	rnd           *rand.Rand
	adminPassword string
	retryBackoff  time.Duration
}

// NewDataSeeder creates a seeder. search may be nil. The same seed produces the same dataset.
func NewDataSeeder(db *sql.DB, search *ElasticSearchClient, seed int64) *DataSeeder {
	src := rand.NewSource(seed)
	ds := &DataSeeder{
		db:   db,
		fake: faker.NewWithSeed(src),
		rnd:  rand.New(rand.NewSource(seed)),

		adminPassword: DefaultAdminPassword,
		retryBackoff:  200 * time.Millisecond,
	}
	if search != nil {
		ds.search = search
	}
	return ds
}

// WithAdminPassword overrides the seeded administrator password. Empty keeps the default.
func (ds *DataSeeder) WithAdminPassword(password string) *DataSeeder {
	if password != "" {
		ds.adminPassword = password
	}
	return ds
}

// SeedData inserts a generated dataset in one transaction.
func (ds *DataSeeder) SeedData(ctx context.Context, size SeedSize) (SeedStats, error) {
	start := time.Now()
	var stats SeedStats

	tx, err := ds.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	employees := make([]domain.Employee, 0, size.Employees)
	for i := 0; i < size.Employees; i++ {
		e, err := ds.insertEmployee(ctx, tx)
		if err != nil {
			return stats, err
		}
		employees = append(employees, e)
	}
	stats.Employees = len(employees)

	today := domain.NewDate(time.Now())
	for _, e := range employees {
		n, err := ds.insertAttendance(ctx, tx, e.ID, today, size.AttendanceDays)
		if err != nil {
			return stats, err
		}
		stats.Attendance += n

		if err := ds.insertPayroll(ctx, tx, e.ID); err != nil {
			return stats, err
		}
		stats.Payroll++

		n, err = ds.insertLeave(ctx, tx, e.ID, today, size.LeavePerEmp)
		if err != nil {
			return stats, err
		}
		stats.Leave += n

		n, err = ds.insertReviews(ctx, tx, e.ID, today, size.ReviewsPerEmp)
		if err != nil {
			return stats, err
		}
		stats.Reviews += n
	}

	if err := ds.upsertAdmin(ctx, tx); err != nil {
		return stats, err
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("failed to commit seed: %w", err)
	}

	if ds.search != nil {
		docs := make([]EmployeeDoc, len(employees))
		for i, e := range employees {
			docs[i] = NewEmployeeDoc(e)
		}
		if err := ds.search.BulkIndexEmployees(ctx, docs); err != nil {
			logger.WarnLog(ctx, "Seeded rows were not indexed: %v", err)
		} else {
			stats.Indexed = len(docs)
		}
	}

	logger.InfoLog(ctx, "Seeded %d employees in %v", stats.Employees, time.Since(start))
	return stats, nil
}

func (ds *DataSeeder) insertEmployee(ctx context.Context, tx *sql.Tx) (domain.Employee, error) {
	p := ds.fake.Person()
	e := domain.Employee{
		Name:              p.Name(),
		Position:          ds.fake.Company().JobTitle(),
		Department:        departments[ds.rnd.Intn(len(departments))],
		EmploymentHistory: fmt.Sprintf("Joined %d", 2010+ds.rnd.Intn(15)),
		Contact:           ds.fake.Internet().Email(),
	}

	err := tx.QueryRowContext(ctx, `
		INSERT INTO employees (name, position, department, employment_history, contact)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, e.Name, e.Position, e.Department, e.EmploymentHistory, e.Contact).Scan(&e.ID)
	if err != nil {
		return e, fmt.Errorf("failed to insert employee: %w", err)
	}
	return e, nil
}

func (ds *DataSeeder) insertAttendance(ctx context.Context, tx *sql.Tx, employeeID int64, today domain.Date, days int) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO attendance (employee_id, date, status) VALUES ($1, $2, $3)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for d := 0; d < days; d++ {
		day := domain.NewDate(today.AddDate(0, 0, -d))
		status := attendanceSet[ds.rnd.Intn(len(attendanceSet))]
		if _, err := stmt.ExecContext(ctx, employeeID, day, string(status)); err != nil {
			return d, fmt.Errorf("failed to insert attendance: %w", err)
		}
	}
	return days, nil
}

func (ds *DataSeeder) insertPayroll(ctx context.Context, tx *sql.Tx, employeeID int64) error {
	salary := float64(3000 + ds.rnd.Intn(7000))
	hours := float64(140 + ds.rnd.Intn(40))
	deductions := float64(ds.rnd.Intn(4)) * 8 * hourlyDeduction

	_, err := tx.ExecContext(ctx, `
		INSERT INTO payroll (employee_id, salary, hours_worked, leave_deductions, final_salary)
		VALUES ($1, $2, $3, $4, $5)
	`, employeeID, salary, hours, deductions, salary-deductions)
	if err != nil {
		return fmt.Errorf("failed to insert payroll: %w", err)
	}
	return nil
}

func (ds *DataSeeder) insertLeave(ctx context.Context, tx *sql.Tx, employeeID int64, today domain.Date, n int) (int, error) {
	for i := 0; i < n; i++ {
		day := domain.NewDate(today.AddDate(0, 0, ds.rnd.Intn(60)-30))
		status := leaveStatusSet[ds.rnd.Intn(len(leaveStatusSet))]
		reason := leaveReasons[ds.rnd.Intn(len(leaveReasons))]
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO leave_requests (employee_id, date, reason, status) VALUES ($1, $2, $3, $4)`,
			employeeID, day, reason, string(status)); err != nil {
			return i, fmt.Errorf("failed to insert leave request: %w", err)
		}
	}
	return n, nil
}

func (ds *DataSeeder) insertReviews(ctx context.Context, tx *sql.Tx, employeeID int64, today domain.Date, n int) (int, error) {
	for i := 0; i < n; i++ {
		day := domain.NewDate(today.AddDate(0, -3*(i+1), 0))
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO performance_reviews (employee_id, rating, comments, date) VALUES ($1, $2, $3, $4)`,
			employeeID, 1+ds.rnd.Intn(5), reviewComments[ds.rnd.Intn(len(reviewComments))], day); err != nil {
			return i, fmt.Errorf("failed to insert review: %w", err)
		}
	}
	return n, nil
}

func (ds *DataSeeder) upsertAdmin(ctx context.Context, tx *sql.Tx) error {
	hash, err := security.HashPassword(ds.adminPassword)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (email, password) VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET password = EXCLUDED.password
	`, AdminEmail, hash)
	if err != nil {
		return fmt.Errorf("failed to upsert admin user: %w", err)
	}
	return nil
}

// ClearData removes every row. Child tables go with employees through ON DELETE CASCADE.
func (ds *DataSeeder) ClearData(ctx context.Context) error {
	if _, err := ds.db.ExecContext(ctx, "TRUNCATE employees, users RESTART IDENTITY CASCADE"); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	logger.InfoLog(ctx, "Cleared all HR records")
	return nil
}

// Reindex streams every employee row into the search index in bulk batches.
func (ds *DataSeeder) Reindex(ctx context.Context) (int, error) {
	if ds.search == nil {
		return 0, fmt.Errorf("search index is not configured")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	docs, wait := dataflow.Generate(ctx, func(emit func(EmployeeDoc) bool) error {
		rows, err := ds.db.QueryContext(ctx, `SELECT id, name, position, department, contact FROM employees ORDER BY id`)
		if err != nil {
			return fmt.Errorf("failed to read employees: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var doc EmployeeDoc
			var position, department, contact sql.NullString
			if err := rows.Scan(&doc.ID, &doc.Name, &position, &department, &contact); err != nil {
				return fmt.Errorf("failed to scan employee: %w", err)
			}
			doc.Position, doc.Department, doc.Contact = position.String, department.String, contact.String
			if !emit(doc) {
				return ctx.Err()
			}
		}
		return rows.Err()
	}, dataflow.WithBufferSize(reindexBatchSize))

	var indexed int64
	err := dataflow.ForEach(ctx, dataflow.Batch(ctx, docs, reindexBatchSize), func(batch []EmployeeDoc) error {
		if err := ds.search.BulkIndexEmployees(ctx, batch); err != nil {
			return err
		}
		n := atomic.AddInt64(&indexed, int64(len(batch)))
		logger.DebugLog(ctx, "Indexed %d employees", n)
		return nil
	}, dataflow.WithWorkers(reindexWorkers), dataflow.WithRetry(2, dataflow.ExponentialBackoff(ds.retryBackoff)))
	if err != nil {
		cancel()
		_ = wait()
		return int(atomic.LoadInt64(&indexed)), err
	}
	if err := wait(); err != nil {
		return int(indexed), err
	}
	return int(indexed), nil
}
