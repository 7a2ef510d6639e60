package scope

import (
	"testing"

	"github.com/campuscore/erp-api/model"
)

func uintPtr(v uint) *uint { return &v }

func TestResolveCA(t *testing.T) {
	user := &model.User{Role: model.RoleCA, DeptID: uintPtr(2), ClassID: uintPtr(3)}
	got := Resolve(model.RoleCA, user)

	if got.Dept.Editable || got.Dept.Value == nil || *got.Dept.Value != 2 {
		t.Fatalf("CA dept scope = %+v, want fixed 2", got.Dept)
	}
	if got.Class.Editable || got.Class.Value == nil || *got.Class.Value != 3 {
		t.Fatalf("CA class scope = %+v, want fixed 3", got.Class)
	}
}

func TestResolvePrincipalIgnoresUserFields(t *testing.T) {
	user := &model.User{Role: model.RolePrincipal, DeptID: uintPtr(4), ClassID: uintPtr(1)}
	got := Resolve(model.RolePrincipal, user)

	if !got.Dept.Editable || got.Dept.Value != nil {
		t.Fatalf("principal dept scope = %+v, want editable default All", got.Dept)
	}
	if !got.Class.Editable || got.Class.Value != nil {
		t.Fatalf("principal class scope = %+v, want editable default All", got.Class)
	}
}

func TestResolveHOD(t *testing.T) {
	user := &model.User{Role: model.RoleHOD, DeptID: uintPtr(1)}
	got := Resolve(model.RoleHOD, user)

	if got.Dept.Editable || got.Dept.Value == nil || *got.Dept.Value != 1 {
		t.Fatalf("HOD dept scope = %+v, want fixed 1", got.Dept)
	}
	if !got.Class.Editable {
		t.Fatalf("HOD class scope = %+v, want editable", got.Class)
	}
}

func TestResolveUnrecognizedRoleNeverDenies(t *testing.T) {
	user := &model.User{Role: "parent"}
	got := Resolve("parent", user)

	if !got.Dept.Editable || !got.Class.Editable {
		t.Fatalf("unrecognized role must stay fully editable, got %+v", got)
	}
	if got.Dept.Value != nil || got.Class.Value != nil {
		t.Fatalf("unrecognized role must have no preset, got %+v", got)
	}
}

func TestClampOverridesFixedFields(t *testing.T) {
	user := &model.User{Role: model.RoleCA, DeptID: uintPtr(2), ClassID: uintPtr(3)}
	s := Resolve(model.RoleCA, user)

	// Client asks for another department; the fixed scope wins.
	requestedDept, requestedClass := uintPtr(5), uintPtr(9)
	dept, class := s.Clamp(requestedDept, requestedClass)
	if dept == nil || *dept != 2 {
		t.Fatalf("clamped dept = %v, want 2", dept)
	}
	if class == nil || *class != 3 {
		t.Fatalf("clamped class = %v, want 3", class)
	}

	// Editable scope passes the request through untouched.
	open := Resolve(model.RolePrincipal, user)
	dept, class = open.Clamp(requestedDept, requestedClass)
	if dept != requestedDept || class != requestedClass {
		t.Fatal("editable scope must not rewrite client filters")
	}
}
