package xlsxreport

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	SectionDirectionHorizontal = "horizontal"
	SectionDirectionVertical   = "vertical"
)

// ReportTemplate is the root of a YAML report definition.
type ReportTemplate struct {
	Sheets []SheetTemplate `yaml:"sheets"`
}

// SheetTemplate lays out the sections of one worksheet.
type SheetTemplate struct {
	Name     string          `yaml:"name"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig is a block of rows. Its data is bound at export time by ID.
type SectionConfig struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Locked      bool           `yaml:"locked"`
	ShowHeader  bool           `yaml:"show_header"`
	Direction   string         `yaml:"direction"`
	Position    string         `yaml:"position"`
	TitleStyle  *StyleTemplate `yaml:"title_style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	Columns     []ColumnConfig `yaml:"columns"`
}

// ColumnConfig maps one struct field or map key onto a column.
type ColumnConfig struct {
	FieldName string  `yaml:"field_name"`
	Header    string  `yaml:"header"`
	Width     float64 `yaml:"width"`
	// NumFmt is an excelize built-in number format id, e.g. 4 for "#,##0.00".
	NumFmt int `yaml:"num_fmt"`
}

type StyleTemplate struct {
	Font *FontTemplate `yaml:"font"`
	Fill *FillTemplate `yaml:"fill"`
}

type FontTemplate struct {
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"`
}

type FillTemplate struct {
	Color string `yaml:"color"`
}

// ParseTemplate decodes a YAML report definition.
func ParseTemplate(r io.Reader) (*ReportTemplate, error) {
	var tmpl ReportTemplate
	if err := yaml.NewDecoder(r).Decode(&tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(tmpl.Sheets) == 0 {
		return nil, fmt.Errorf("template defines no sheets")
	}
	for _, sheet := range tmpl.Sheets {
		if sheet.Name == "" {
			return nil, fmt.Errorf("template sheet without a name")
		}
	}
	return &tmpl, nil
}

// MustParseTemplate parses an embedded template and panics on error.
func MustParseTemplate(raw []byte) *ReportTemplate {
	tmpl, err := ParseTemplate(bytes.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return tmpl
}
