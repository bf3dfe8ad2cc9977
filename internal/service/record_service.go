package service

import (
	"context"
	_ "embed"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/pkg/xlsxreport"
)

var (
	//go:embed templates/payroll.yaml
	payrollTemplateYAML []byte
	//go:embed templates/attendance.yaml
	attendanceTemplateYAML []byte

	payrollTemplate    = xlsxreport.MustParseTemplate(payrollTemplateYAML)
	attendanceTemplate = xlsxreport.MustParseTemplate(attendanceTemplateYAML)
)

// RecordService serves the read-only payroll and attendance collections.
type RecordService interface {
	ListPayroll(ctx context.Context) ([]domain.PayrollRecord, error)
	ListAttendance(ctx context.Context) ([]domain.AttendanceRecord, error)
	ExportPayroll(ctx context.Context) (*xlsxreport.Exporter, error)
	ExportAttendance(ctx context.Context) (*xlsxreport.Exporter, error)
}

type recordService struct {
	payroll    domain.PayrollRepository
	attendance domain.AttendanceRepository
}

func NewRecordService(payroll domain.PayrollRepository, attendance domain.AttendanceRepository) RecordService {
	return &recordService{payroll: payroll, attendance: attendance}
}

func (s *recordService) ListPayroll(ctx context.Context) ([]domain.PayrollRecord, error) {
	return s.payroll.List(ctx)
}

func (s *recordService) ListAttendance(ctx context.Context) ([]domain.AttendanceRecord, error) {
	return s.attendance.List(ctx)
}

// ExportPayroll loads payroll rows and binds them to the payroll workbook.
func (s *recordService) ExportPayroll(ctx context.Context) (*xlsxreport.Exporter, error) {
	rows, err := s.payroll.List(ctx)
	if err != nil {
		return nil, err
	}
	return xlsxreport.NewExporter(payrollTemplate).Bind("payroll", rows), nil
}

// ExportAttendance loads attendance rows and binds them to the attendance workbook.
func (s *recordService) ExportAttendance(ctx context.Context) (*xlsxreport.Exporter, error) {
	rows, err := s.attendance.List(ctx)
	if err != nil {
		return nil, err
	}
	return xlsxreport.NewExporter(attendanceTemplate).Bind("attendance", rows), nil
}
