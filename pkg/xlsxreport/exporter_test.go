package xlsxreport

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type status string

type day struct{ s string }

func (d day) String() string { return d.s }

type row struct {
	Name   string
	Amount float64
	Status status
	Date   day
}

const testTemplate = `
sheets:
  - name: Payroll
    sections:
      - id: rows
        title: Monthly payroll
        show_header: true
        locked: true
        title_style:
          font: {bold: true, color: "#FFFFFF"}
          fill: {color: "#1F4E78"}
        columns:
          - {field_name: Name, header: Employee, width: 24}
          - {field_name: Amount, header: Amount, num_fmt: 4}
          - {field_name: Status, header: Status}
          - {field_name: Date, header: Date}
  - name: Notes
    sections:
      - id: notes
        show_header: true
        columns:
          - {field_name: text, header: Text}
`

func readBack(t *testing.T, e *Exporter) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	_, err := e.WriteTo(&buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestExporterRendersBoundSections(t *testing.T) {
	tmpl, err := ParseTemplate(strings.NewReader(testTemplate))
	require.NoError(t, err)

	e := NewExporter(tmpl).
		Bind("rows", []row{
			{Name: "Alice", Amount: 4900, Status: "Approved", Date: day{"2024-03-01"}},
			{Name: "Bob", Amount: 3100.5, Status: "Pending", Date: day{"2024-03-02"}},
		}).
		Bind("notes", []map[string]interface{}{{"text": "generated"}})

	f := readBack(t, e)
	assert.Equal(t, []string{"Payroll", "Notes"}, f.GetSheetList())

	rows, err := f.GetRows("Payroll")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Monthly payroll", rows[0][0])
	assert.Equal(t, []string{"Employee", "Amount", "Status", "Date"}, rows[1])
	assert.Equal(t, "Alice", rows[2][0])
	assert.Equal(t, "Approved", rows[2][2])
	assert.Equal(t, "2024-03-02", rows[3][3])

	raw, err := f.GetCellValue("Payroll", "B3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "4900", raw)

	notes, err := f.GetRows("Notes")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Text"}, {"generated"}}, notes)
}

func TestExporterUnboundSectionWritesHeaderOnly(t *testing.T) {
	f := readBack(t, NewExporter(MustParseTemplate([]byte(testTemplate))))

	rows, err := f.GetRows("Payroll")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestExporterRejectsNonSliceData(t *testing.T) {
	e := NewExporter(MustParseTemplate([]byte(testTemplate))).Bind("rows", row{Name: "x"})

	_, err := e.WriteTo(&bytes.Buffer{})
	assert.ErrorContains(t, err, "must be a slice")
}

func TestWriteResponseSetsHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	e := NewExporter(MustParseTemplate([]byte(testTemplate)))

	require.NoError(t, e.WriteResponse(rec, "payroll.xlsx"))
	assert.Equal(t, ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payroll.xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestParseTemplateErrors(t *testing.T) {
	_, err := ParseTemplate(strings.NewReader("sheets: []"))
	assert.Error(t, err)

	_, err = ParseTemplate(strings.NewReader("sheets:\n  - sections: []"))
	assert.Error(t, err)

	_, err = ParseTemplate(strings.NewReader("sheets: ["))
	assert.Error(t, err)
}
