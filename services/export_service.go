package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// EmptyCell is the placeholder written for missing values so no exported cell
// is ever blank or a stringified nil.
const EmptyCell = "-"

// Column maps one export column header to a value extractor
type Column[T any] struct {
	Header string
	Value  func(row T) interface{}
}

// Cell stringifies one extracted value with the EmptyCell fallback for nil,
// empty strings and nil typed pointers.
func Cell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return EmptyCell
	case string:
		if t == "" {
			return EmptyCell
		}
		return t
	case *string:
		if t == nil || *t == "" {
			return EmptyCell
		}
		return *t
	case *uint:
		if t == nil {
			return EmptyCell
		}
		return fmt.Sprintf("%d", *t)
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case time.Time:
		if t.IsZero() {
			return EmptyCell
		}
		return t.Format("02-01-2006")
	case *time.Time:
		if t == nil || t.IsZero() {
			return EmptyCell
		}
		return t.Format("02-01-2006")
	case float64:
		return fmt.Sprintf("%.2f", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// BuildRows flattens rows into a header line plus one stringified line per
// row. Formatting only: every transformation beyond lookup/format belongs to
// the filter stage upstream.
func BuildRows[T any](rows []T, columns []Column[T]) [][]string {
	out := make([][]string, 0, len(rows)+1)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	out = append(out, header)

	for _, row := range rows {
		line := make([]string, len(columns))
		for i, col := range columns {
			line[i] = Cell(col.Value(row))
		}
		out = append(out, line)
	}

	return out
}

// ExportService renders flattened tables as CSV, XLSX or PDF documents
type ExportService struct {
	institution string
}

// NewExportService creates a new export service
func NewExportService(institution string) *ExportService {
	return &ExportService{institution: institution}
}

// WriteCSV renders the table as CSV bytes
func (s *ExportService) WriteCSV(table [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(table); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteXLSX renders the table as a single-sheet Excel workbook
func (s *ExportService) WriteXLSX(sheetName string, table [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for rowIdx, line := range table {
		for colIdx, value := range line {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePDF renders the table as a landscape A4 report with an institution
// header, in the registrar-document style.
func (s *ExportService) WritePDF(title string, table [][]string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 8, s.institution)
	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 7, title)
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 8)
	pdf.Cell(0, 5, "Generated on "+time.Now().Format("02-01-2006 15:04"))
	pdf.Ln(8)

	if len(table) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(0, 8, "No data")
	} else {
		pageW, _ := pdf.GetPageSize()
		left, _, right, _ := pdf.GetMargins()
		colW := (pageW - left - right) / float64(len(table[0]))

		// Header row
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range table[0] {
			pdf.CellFormat(colW, 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, line := range table[1:] {
			for _, value := range line {
				pdf.CellFormat(colW, 6, value, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
