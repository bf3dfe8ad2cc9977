package command

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/store"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	return t
}

func formatID(id int64) string {
	if store.IsTemporaryID(id) {
		return fmt.Sprintf("%d (local)", id)
	}
	return strconv.FormatInt(id, 10)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func renderEmployees(w io.Writer, rows []domain.Employee) {
	t := newTable(w, "ID", "Name", "Position", "Department", "Contact")
	for _, e := range rows {
		t.Append([]string{formatID(e.ID), e.Name, e.Position, e.Department, e.Contact})
	}
	t.Render()
}

func renderPayroll(w io.Writer, rows []domain.PayrollRecord) {
	t := newTable(w, "ID", "Employee", "Name", "Salary", "Hours", "Deductions", "Final")
	for _, p := range rows {
		t.Append([]string{
			formatID(p.ID),
			strconv.FormatInt(p.EmployeeID, 10),
			p.Name,
			formatMoney(p.Salary),
			strconv.FormatFloat(p.HoursWorked, 'f', -1, 64),
			formatMoney(p.LeaveDeductions),
			formatMoney(p.FinalSalary),
		})
	}
	t.Render()
}

func renderAttendance(w io.Writer, rows []domain.AttendanceRecord) {
	t := newTable(w, "ID", "Employee", "Name", "Date", "Status")
	for _, a := range rows {
		t.Append([]string{formatID(a.ID), strconv.FormatInt(a.EmployeeID, 10), a.Name, a.Date.String(), string(a.Status)})
	}
	t.Render()
}

func renderLeave(w io.Writer, rows []domain.LeaveRequest) {
	t := newTable(w, "ID", "Employee", "Name", "Date", "Reason", "Status")
	for _, l := range rows {
		t.Append([]string{formatID(l.ID), strconv.FormatInt(l.EmployeeID, 10), l.Name, l.Date.String(), l.Reason, string(l.Status)})
	}
	t.Render()
}

func renderReviews(w io.Writer, rows []domain.PerformanceReview) {
	t := newTable(w, "ID", "Employee", "Rating", "Comments", "Date")
	for _, r := range rows {
		t.Append([]string{formatID(r.ID), strconv.FormatInt(r.EmployeeID, 10), strconv.Itoa(r.Rating), r.Comments, r.Date.String()})
	}
	t.Render()
}
