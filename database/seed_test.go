package database

import (
	"testing"

	"github.com/campuscore/erp-api/model"
)

func TestDefaultClassGroupsMatchClassMap(t *testing.T) {
	groups := defaultClassGroups()

	if len(groups) != len(model.ClassMap) {
		t.Fatalf("expected %d class groups, got %d", len(model.ClassMap), len(groups))
	}

	for i, class := range groups {
		wantID := uint(i + 1)
		if class.ID != wantID {
			t.Errorf("group %d: expected id %d, got %d", i, wantID, class.ID)
		}
		if class.Year != int(wantID) {
			t.Errorf("group %d: expected year %d, got %d", i, wantID, class.Year)
		}
		if want := model.ClassMap[wantID]; class.Name != want {
			t.Errorf("group %d: expected name %q, got %q", i, want, class.Name)
		}
		if got := model.ClassLabel(class.ID); got != class.Name {
			t.Errorf("ClassLabel(%d): expected %q, got %q", class.ID, class.Name, got)
		}
	}
}

func TestDefaultDepartmentsMatchDeptMap(t *testing.T) {
	depts := defaultDepartments()

	if len(depts) != len(model.DeptMap) {
		t.Fatalf("expected %d departments, got %d", len(model.DeptMap), len(depts))
	}

	for i, dept := range depts {
		wantID := uint(i + 1)
		if dept.ID != wantID {
			t.Errorf("dept %d: expected id %d, got %d", i, wantID, dept.ID)
		}
		if want := model.DeptMap[wantID]; dept.Name != want {
			t.Errorf("dept %d: expected name %q, got %q", i, want, dept.Name)
		}
		if dept.Code == "" {
			t.Errorf("dept %d: missing code", i)
		}
	}
}
