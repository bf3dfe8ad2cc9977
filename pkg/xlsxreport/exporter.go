package xlsxreport

import (
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of xlsx workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Exporter renders a ReportTemplate with bound section data.
type Exporter struct {
	template *ReportTemplate
	data     map[string]interface{}
}

// NewExporter returns an exporter for tmpl. The template is not modified.
func NewExporter(tmpl *ReportTemplate) *Exporter {
	return &Exporter{
		template: tmpl,
		data:     make(map[string]interface{}),
	}
}

// Bind attaches a slice of structs or maps to the section with the given ID.
func (e *Exporter) Bind(id string, data interface{}) *Exporter {
	e.data[id] = data
	return e
}

// WriteTo renders the workbook into w.
func (e *Exporter) WriteTo(w io.Writer) (int64, error) {
	f, err := e.build()
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return f.WriteTo(w)
}

// WriteResponse streams the workbook as an attachment.
func (e *Exporter) WriteResponse(w http.ResponseWriter, filename string) error {
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, err := e.WriteTo(w)
	return err
}

func (e *Exporter) build() (*excelize.File, error) {
	f := excelize.NewFile()

	for i, sheet := range e.template.Sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			f.Close()
			return nil, err
		}

		if err := e.renderSheet(f, sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("render sheet %q: %w", sheet.Name, err)
		}
	}
	return f, nil
}

func (e *Exporter) renderSheet(f *excelize.File, sheet SheetTemplate) error {
	nextRow := 1
	nextColHorizontal := 1
	locked := false

	for _, sec := range sheet.Sections {
		locked = locked || sec.Locked

		startCol, startRow := 1, nextRow
		if sec.Direction == SectionDirectionHorizontal {
			startCol, startRow = nextColHorizontal, 1
		}
		if sec.Position != "" {
			c, r, err := excelize.CellNameToCoordinates(sec.Position)
			if err != nil {
				return fmt.Errorf("section %q: %w", sec.ID, err)
			}
			startCol, startRow = c, r
		}

		row, err := e.renderSection(f, sheet.Name, sec, startCol, startRow)
		if err != nil {
			return fmt.Errorf("section %q: %w", sec.ID, err)
		}

		if row+1 > nextRow {
			nextRow = row + 1
		}
		nextColHorizontal = startCol + len(sec.Columns) + 1
	}

	if locked {
		return f.ProtectSheet(sheet.Name, &excelize.SheetProtectionOptions{
			SelectLockedCells:   true,
			SelectUnlockedCells: true,
		})
	}
	return nil
}

// renderSection writes one section and returns the next free row.
func (e *Exporter) renderSection(f *excelize.File, sheet string, sec SectionConfig, col, row int) (int, error) {
	if sec.Title != "" {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		if err := f.SetCellValue(sheet, cell, sec.Title); err != nil {
			return row, err
		}
		styleID, err := newStyle(f, sec.TitleStyle, sec.Locked, 0)
		if err != nil {
			return row, err
		}
		end := cell
		if len(sec.Columns) > 1 {
			end, _ = excelize.CoordinatesToCellName(col+len(sec.Columns)-1, row)
			if err := f.MergeCell(sheet, cell, end); err != nil {
				return row, err
			}
		}
		if err := f.SetCellStyle(sheet, cell, end, styleID); err != nil {
			return row, err
		}
		row++
	}

	if sec.ShowHeader {
		styleID, err := newStyle(f, sec.HeaderStyle, sec.Locked, 0)
		if err != nil {
			return row, err
		}
		for i, c := range sec.Columns {
			cell, _ := excelize.CoordinatesToCellName(col+i, row)
			if err := f.SetCellValue(sheet, cell, c.Header); err != nil {
				return row, err
			}
			if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
				return row, err
			}
			if c.Width > 0 {
				name, _ := excelize.ColumnNumberToName(col + i)
				if err := f.SetColWidth(sheet, name, name, c.Width); err != nil {
					return row, err
				}
			}
		}
		row++
	}

	data, ok := e.data[sec.ID]
	if !ok || data == nil {
		return row, nil
	}
	items := reflect.ValueOf(data)
	if items.Kind() != reflect.Slice {
		return row, fmt.Errorf("bound data must be a slice, got %s", items.Kind())
	}

	columnStyles := make([]int, len(sec.Columns))
	for i, c := range sec.Columns {
		styleID, err := newStyle(f, nil, sec.Locked, c.NumFmt)
		if err != nil {
			return row, err
		}
		columnStyles[i] = styleID
	}

	for i := 0; i < items.Len(); i++ {
		item := items.Index(i)
		for j, c := range sec.Columns {
			cell, _ := excelize.CoordinatesToCellName(col+j, row)
			if err := f.SetCellValue(sheet, cell, extractValue(item, c.FieldName)); err != nil {
				return row, err
			}
			if err := f.SetCellStyle(sheet, cell, cell, columnStyles[j]); err != nil {
				return row, err
			}
		}
		row++
	}
	return row, nil
}

// extractValue reads a struct field or map key. Named types that implement
// fmt.Stringer, such as dates and status enums, are written as text.
func extractValue(item reflect.Value, fieldName string) interface{} {
	for item.Kind() == reflect.Ptr || item.Kind() == reflect.Interface {
		if item.IsNil() {
			return ""
		}
		item = item.Elem()
	}

	var v reflect.Value
	switch item.Kind() {
	case reflect.Struct:
		v = item.FieldByName(fieldName)
	case reflect.Map:
		v = item.MapIndex(reflect.ValueOf(fieldName))
	}
	if !v.IsValid() {
		return ""
	}

	val := v.Interface()
	if s, ok := val.(fmt.Stringer); ok {
		return s.String()
	}
	if v.Kind() == reflect.String {
		return v.String()
	}
	return val
}

func newStyle(f *excelize.File, tmpl *StyleTemplate, locked bool, numFmt int) (int, error) {
	style := &excelize.Style{
		Protection: &excelize.Protection{Locked: locked},
		NumFmt:     numFmt,
	}
	if tmpl != nil && tmpl.Font != nil {
		style.Font = &excelize.Font{
			Bold:  tmpl.Font.Bold,
			Color: strings.TrimPrefix(tmpl.Font.Color, "#"),
		}
	}
	if tmpl != nil && tmpl.Fill != nil {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(tmpl.Fill.Color, "#")},
			Pattern: 1,
		}
	}
	return f.NewStyle(style)
}
