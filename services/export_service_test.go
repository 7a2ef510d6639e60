package services

import (
	"strings"
	"testing"
	"time"

	"github.com/campuscore/erp-api/model"
)

func TestCellFallbacks(t *testing.T) {
	var nilStr *string
	var nilID *uint
	var nilTime *time.Time

	cases := []struct {
		in   interface{}
		want string
	}{
		{nil, "-"},
		{"", "-"},
		{nilStr, "-"},
		{nilID, "-"},
		{nilTime, "-"},
		{time.Time{}, "-"},
		{"CSE", "CSE"},
		{true, "Yes"},
		{false, "No"},
		{7.5, "7.50"},
		{42, "42"},
	}
	for _, c := range cases {
		if got := Cell(c.in); got != c.want {
			t.Errorf("Cell(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBuildRowsNeverEmitsEmptyCell(t *testing.T) {
	type exportRow struct {
		Name   string
		Hostel *string
	}

	columns := []Column[exportRow]{
		{Header: "Name", Value: func(r exportRow) interface{} { return r.Name }},
		{Header: "Hostel", Value: func(r exportRow) interface{} { return r.Hostel }},
	}

	table := BuildRows([]exportRow{{Name: "Arun"}}, columns)
	if len(table) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(table))
	}
	if table[0][0] != "Name" || table[0][1] != "Hostel" {
		t.Fatalf("bad header: %v", table[0])
	}
	if table[1][1] != "-" {
		t.Fatalf("nil field exported as %q, want \"-\"", table[1][1])
	}
	for _, line := range table {
		for _, cell := range line {
			if cell == "" {
				t.Fatal("export contains an empty cell")
			}
		}
	}
}

func TestBuildRowsWithLookupColumns(t *testing.T) {
	students := []model.Student{
		{Name: "Bhavna", RollNo: "21CS002", DeptID: 1, ClassID: 2},
		{Name: "Chetan", RollNo: "21XX003", DeptID: 99, ClassID: 99}, // ids outside the lookup
	}

	columns := []Column[model.Student]{
		{Header: "Roll No", Value: func(s model.Student) interface{} { return s.RollNo }},
		{Header: "Department", Value: func(s model.Student) interface{} { return model.DeptLabel(s.DeptID) }},
		{Header: "Class", Value: func(s model.Student) interface{} { return model.ClassLabel(s.ClassID) }},
	}

	table := BuildRows(students, columns)
	if table[1][1] != "Computer Science" || table[1][2] != "Second Year" {
		t.Fatalf("lookup labels wrong: %v", table[1])
	}
	if table[2][1] != "-" || table[2][2] != "-" {
		t.Fatalf("unknown lookup ids must fall back to \"-\": %v", table[2])
	}
}

func TestWriteCSV(t *testing.T) {
	svc := NewExportService("Test Institute")
	out, err := svc.WriteCSV([][]string{{"a", "b"}, {"1", "-"}})
	if err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "a,b") || !strings.Contains(text, "1,-") {
		t.Fatalf("unexpected csv output: %q", text)
	}
}

func TestWriteXLSXProducesWorkbook(t *testing.T) {
	svc := NewExportService("Test Institute")
	out, err := svc.WriteXLSX("Students", [][]string{{"Name"}, {"Arun"}})
	if err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}
	// XLSX files are zip archives.
	if len(out) < 4 || out[0] != 'P' || out[1] != 'K' {
		t.Fatal("output is not a zip-based workbook")
	}
}

func TestWritePDFProducesDocument(t *testing.T) {
	svc := NewExportService("Test Institute")
	out, err := svc.WritePDF("Attendance Report", [][]string{{"Roll", "Status"}, {"21CS001", "Present"}})
	if err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF") {
		t.Fatal("output is not a PDF document")
	}
}
