// Package scope decides which listing filters a user may edit and which are
// pinned to their own department/class, based on their role.
package scope

import (
	"github.com/campuscore/erp-api/model"
)

// FieldScope describes one filter field: either editable (optionally with a
// default) or fixed to a value the user cannot change. A nil Value on an
// editable field means "All".
type FieldScope struct {
	Editable bool  `json:"editable"`
	Value    *uint `json:"value,omitempty"`
}

// Scope is the resolved department/class filter policy for one user
type Scope struct {
	Dept  FieldScope `json:"dept"`
	Class FieldScope `json:"class"`
}

func editable() FieldScope {
	return FieldScope{Editable: true}
}

func fixed(v *uint) FieldScope {
	return FieldScope{Editable: false, Value: v}
}

// Resolve maps a role to its filter policy:
//
//	principal        -> both editable, default All
//	hod              -> dept fixed to own, class editable
//	ca               -> both fixed to own dept+class
//	staff/trainer    -> both editable
//
// An unrecognized role resolves to fully editable with no preset; access is
// never silently denied at this layer.
func Resolve(role string, user *model.User) Scope {
	switch role {
	case model.RolePrincipal, model.RoleAdmin:
		return Scope{Dept: editable(), Class: editable()}
	case model.RoleHOD:
		return Scope{Dept: fixed(user.DeptID), Class: editable()}
	case model.RoleCA:
		return Scope{Dept: fixed(user.DeptID), Class: fixed(user.ClassID)}
	case model.RoleStaff, model.RoleTrainer:
		return Scope{Dept: editable(), Class: editable()}
	default:
		return Scope{Dept: editable(), Class: editable()}
	}
}

// Clamp applies the scope to client-supplied filter values: a fixed field
// overrides whatever the client sent, an editable field passes through.
func (s Scope) Clamp(deptID, classID *uint) (dept, class *uint) {
	dept, class = deptID, classID
	if !s.Dept.Editable {
		dept = s.Dept.Value
	}
	if !s.Class.Editable {
		class = s.Class.Value
	}
	return dept, class
}
