package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hr_records/internal/logger"
	"github.com/locvowork/hr_records/internal/service"
	"github.com/locvowork/hr_records/internal/service/serviceutils"
	"github.com/locvowork/hr_records/pkg/xlsxreport"
)

// RecordHandler serves payroll and attendance, read-only.
type RecordHandler struct {
	svc service.RecordService
}

func NewRecordHandler(svc service.RecordService) *RecordHandler {
	return &RecordHandler{svc: svc}
}

func (h *RecordHandler) PayrollHandler(c echo.Context) error {
	records, err := h.svc.ListPayroll(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to fetch payroll", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Payroll listed successfully", records)
}

func (h *RecordHandler) AttendanceHandler(c echo.Context) error {
	records, err := h.svc.ListAttendance(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to fetch attendance", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Attendance listed successfully", records)
}

func (h *RecordHandler) ExportPayrollHandler(c echo.Context) error {
	exporter, err := h.svc.ExportPayroll(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to export payroll", err)
	}
	return writeWorkbook(c, exporter, "payroll")
}

func (h *RecordHandler) ExportAttendanceHandler(c echo.Context) error {
	exporter, err := h.svc.ExportAttendance(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to export attendance", err)
	}
	return writeWorkbook(c, exporter, "attendance")
}

func writeWorkbook(c echo.Context, exporter *xlsxreport.Exporter, name string) error {
	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("20060102"))
	if err := exporter.WriteResponse(c.Response(), filename); err != nil {
		// headers are already sent
		logger.ErrorLog(c.Request().Context(), "Failed to write %s: %v", filename, err)
	}
	return nil
}
