package model

import (
	"reflect"
	"strings"
	"testing"
)

// Departments share the 1-4 class ids, so two departments can hold the same
// class+day+period slot. The unique index must therefore span dept_id too.
func TestTimetableSlotIndexIncludesDepartment(t *testing.T) {
	want := map[string]bool{
		"DeptID":    true,
		"ClassID":   true,
		"DayOfWeek": true,
		"Period":    true,
	}

	got := make(map[string]bool)
	typ := reflect.TypeOf(TimetableEntry{})
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("gorm")
		if strings.Contains(tag, "idx_timetable_slot") {
			if !strings.Contains(tag, "unique") {
				t.Errorf("field %s: idx_timetable_slot is not unique", field.Name)
			}
			got[field.Name] = true
		}
	}

	for name := range want {
		if !got[name] {
			t.Errorf("field %s missing from idx_timetable_slot", name)
		}
	}
	for name := range got {
		if !want[name] {
			t.Errorf("unexpected field %s in idx_timetable_slot", name)
		}
	}
}
