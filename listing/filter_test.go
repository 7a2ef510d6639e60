package listing

import (
	"reflect"
	"testing"
	"time"

	"github.com/campuscore/erp-api/model"
)

func sampleStudents() []model.Student {
	students := make([]model.Student, 0, 10)
	for i := 0; i < 10; i++ {
		dept := uint(2)
		if i < 6 {
			dept = 1
		}
		students = append(students, model.Student{
			ID:     uint(i + 1),
			Name:   "Student",
			RollNo: "R00" + string(rune('0'+i)),
			DeptID: dept,
		})
	}
	return students
}

func studentTagMatch(s model.Student, tag string) bool {
	switch tag {
	case "Jain":
		return s.IsJain
	case "Non-Jain":
		return !s.IsJain
	case "Hostel":
		return s.IsHostel
	case "DayScholar":
		return !s.IsHostel
	case "Bus":
		return s.UsesBus
	case "NoBus":
		return !s.UsesBus
	}
	return false
}

func TestApplyDeptEquality(t *testing.T) {
	rows := sampleStudents()
	dept := uint(1)

	got := Apply(rows, EqualsID(&dept, func(s model.Student) uint { return s.DeptID }))
	if len(got) != 6 {
		t.Fatalf("expected 6 students in dept 1, got %d", len(got))
	}
	for _, s := range got {
		if s.DeptID != 1 {
			t.Errorf("student %d leaked through dept filter with dept %d", s.ID, s.DeptID)
		}
	}
}

func TestApplyUnsetFiltersPassAll(t *testing.T) {
	rows := sampleStudents()
	got := Apply(rows,
		EqualsID[model.Student](nil, func(s model.Student) uint { return s.DeptID }),
		EqualsString("", func(s model.Student) string { return s.Gender }),
		Substring("", func(s model.Student) string { return s.Name }),
	)
	if len(got) != len(rows) {
		t.Fatalf("unset filters must pass all rows, got %d of %d", len(got), len(rows))
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	rows := sampleStudents()
	dept := uint(1)
	preds := []Predicate[model.Student]{
		EqualsID(&dept, func(s model.Student) uint { return s.DeptID }),
		Substring("student", func(s model.Student) string { return s.Name }),
	}

	once := Apply(rows, preds...)
	twice := Apply(once, preds...)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("Apply is not idempotent: %v vs %v", once, twice)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	rows := sampleStudents()
	snapshot := make([]model.Student, len(rows))
	copy(snapshot, rows)

	dept := uint(2)
	Apply(rows, EqualsID(&dept, func(s model.Student) uint { return s.DeptID }))

	if !reflect.DeepEqual(rows, snapshot) {
		t.Fatal("Apply mutated its input slice")
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	rows := sampleStudents()
	got := Apply(rows, func(model.Student) bool { return true })
	for i := 1; i < len(got); i++ {
		if got[i].ID < got[i-1].ID {
			t.Fatal("Apply reordered rows")
		}
	}
}

func TestSubstringCaseInsensitiveAndTrimmed(t *testing.T) {
	rows := []model.Student{
		{Name: "Arun Kumar", RollNo: "21CS001"},
		{Name: "Bhavna", RollNo: "21EC014"},
	}
	pred := Substring("  aRuN ",
		func(s model.Student) string { return s.Name },
		func(s model.Student) string { return s.RollNo },
	)
	got := Apply(rows, pred)
	if len(got) != 1 || got[0].Name != "Arun Kumar" {
		t.Fatalf("expected Arun Kumar only, got %v", got)
	}

	byRoll := Apply(rows, Substring("21ec",
		func(s model.Student) string { return s.Name },
		func(s model.Student) string { return s.RollNo },
	))
	if len(byRoll) != 1 || byRoll[0].Name != "Bhavna" {
		t.Fatalf("roll-no search failed, got %v", byRoll)
	}
}

func TestMutuallyExclusiveTagsYieldEmpty(t *testing.T) {
	rows := []model.Student{
		{ID: 1, IsJain: true},
		{ID: 2, IsJain: false},
		{ID: 3, IsJain: true, IsHostel: true},
	}

	// AND semantics: no student is both Jain and Non-Jain.
	got := Apply(rows, AllTags([]string{"Jain", "Non-Jain"}, studentTagMatch))
	if len(got) != 0 {
		t.Fatalf("Jain+Non-Jain must match nothing, got %d rows", len(got))
	}
}

func TestTagsCombineWithAnd(t *testing.T) {
	rows := []model.Student{
		{ID: 1, IsJain: true, IsHostel: true},
		{ID: 2, IsJain: true, IsHostel: false},
		{ID: 3, IsJain: false, IsHostel: true},
	}

	got := Apply(rows, AllTags([]string{"Jain", "Hostel"}, studentTagMatch))
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only student 1, got %v", got)
	}

	none := Apply(rows, AllTags(nil, studentTagMatch))
	if len(none) != len(rows) {
		t.Fatalf("no selected tags must pass all rows, got %d", len(none))
	}
}

func TestDateBetweenInclusiveBounds(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC) }
	rows := []model.AttendanceRow{
		{RollNo: "A", Date: day(1)},
		{RollNo: "B", Date: day(5)},
		{RollNo: "C", Date: day(9)},
	}

	from, to := day(1), day(5)
	got := Apply(rows, DateBetween(&from, &to, func(r model.AttendanceRow) time.Time { return r.Date }))
	if len(got) != 2 {
		t.Fatalf("inclusive range should keep both bounds, got %d rows", len(got))
	}

	// Absent bounds skip that side of the check.
	open := Apply(rows, DateBetween[model.AttendanceRow](nil, nil, func(r model.AttendanceRow) time.Time { return r.Date }))
	if len(open) != 3 {
		t.Fatalf("open range should pass all, got %d", len(open))
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		in   interface{}
		want bool
	}{
		{true, true},
		{false, false},
		{1, true},
		{0, false},
		{int64(1), true},
		{float64(1), true},
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"0", false},
		{"", false},
		{nil, false},
	}
	for _, c := range cases {
		if got := Truthy(c.in); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseID(t *testing.T) {
	if got := ParseID(""); got != nil {
		t.Errorf("empty id must be unset, got %v", *got)
	}
	if got := ParseID("abc"); got != nil {
		t.Errorf("non-numeric id must be unset, got %v", *got)
	}
	if got := ParseID("42"); got == nil || *got != 42 {
		t.Errorf("ParseID(42) = %v", got)
	}
}

func TestParseDate(t *testing.T) {
	if got := ParseDate("not-a-date"); got != nil {
		t.Errorf("malformed date must be unset, got %v", got)
	}
	got := ParseDate("2026-08-28")
	if got == nil || got.Year() != 2026 || got.Month() != time.August || got.Day() != 28 {
		t.Errorf("ParseDate = %v", got)
	}
}
