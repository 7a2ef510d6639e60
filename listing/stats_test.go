package listing

import (
	"testing"

	"github.com/campuscore/erp-api/model"
)

func TestSummarizeAttendanceEmpty(t *testing.T) {
	got := SummarizeAttendance(nil)
	if got.Total != 0 || got.Present != 0 || got.Absent != 0 {
		t.Fatalf("empty summary has non-zero counts: %+v", got)
	}
	if got.Percentage != "0.0" {
		t.Fatalf("empty summary percentage must be \"0.0\", got %q", got.Percentage)
	}
}

func TestSummarizeAttendanceFifteenOfTwenty(t *testing.T) {
	rows := make([]model.AttendanceRow, 0, 20)
	for i := 0; i < 20; i++ {
		status := model.AttendancePresent
		if i >= 15 {
			status = model.AttendanceAbsent
		}
		rows = append(rows, model.AttendanceRow{Status: status})
	}

	got := SummarizeAttendance(rows)
	if got.Total != 20 || got.Present != 15 || got.Absent != 5 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.Percentage != "75.0" {
		t.Fatalf("percentage = %q, want \"75.0\"", got.Percentage)
	}
}

func TestPercentageRounding(t *testing.T) {
	cases := []struct {
		part, total int
		want        string
	}{
		{0, 0, "0.0"},
		{1, 3, "33.3"},
		{2, 3, "66.7"},
		{20, 20, "100.0"},
	}
	for _, c := range cases {
		if got := Percentage(c.part, c.total); got != c.want {
			t.Errorf("Percentage(%d,%d) = %q, want %q", c.part, c.total, got, c.want)
		}
	}
}

func TestCountWilling(t *testing.T) {
	students := []model.Student{
		{WillingForPlacement: true},
		{WillingForPlacement: false},
		{WillingForPlacement: true},
	}
	if got := CountWilling(students); got != 2 {
		t.Fatalf("CountWilling = %d, want 2", got)
	}
}

func TestCountBy(t *testing.T) {
	students := []model.Student{
		{DeptID: 1}, {DeptID: 1}, {DeptID: 2},
	}
	counts := CountBy(students, func(s model.Student) uint { return s.DeptID })
	if counts[1] != 2 || counts[2] != 1 {
		t.Fatalf("CountBy = %v", counts)
	}
}
