package validation

import (
	"errors"
	"testing"
)

func TestFormatValidationErrorsPerField(t *testing.T) {
	type signup struct {
		Name     string `validate:"required"`
		Email    string `validate:"required,email"`
		Role     string `validate:"oneof=admin student"`
		Password string `validate:"min=8"`
	}

	v := NewValidator()
	err := v.ValidateStruct(signup{
		Email:    "not-an-email",
		Role:     "guest",
		Password: "short",
	})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	fields := FormatValidationErrors(err)

	want := map[string]string{
		"name":     "Name is required",
		"email":    "Invalid email format",
		"role":     "Role must be one of: admin student",
		"password": "Password must be at least 8 characters",
	}
	for field, msg := range want {
		if fields[field] != msg {
			t.Errorf("field %q: expected %q, got %q", field, msg, fields[field])
		}
	}
	if len(fields) != len(want) {
		t.Errorf("expected %d fields, got %d: %v", len(want), len(fields), fields)
	}
}

func TestFormatValidationErrorsNonValidatorError(t *testing.T) {
	fields := FormatValidationErrors(errors.New("boom"))
	if len(fields) != 0 {
		t.Errorf("expected no fields for a plain error, got %v", fields)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
		reasons  int
	}{
		{"valid", "secret123", true, 0},
		{"too short", "abc", false, 1},
		{"no letters", "12345678", false, 1},
		{"short and no letters", "1234", false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reasons := ValidatePassword(tt.password)
			if ok != tt.ok {
				t.Errorf("expected ok=%v, got %v", tt.ok, ok)
			}
			if len(reasons) != tt.reasons {
				t.Errorf("expected %d reasons, got %d: %v", tt.reasons, len(reasons), reasons)
			}
		})
	}
}

func TestValidateRollNo(t *testing.T) {
	valid := []string{"21CS001", "22ece104", " 23IT0456 "}
	for _, roll := range valid {
		if !ValidateRollNo(roll) {
			t.Errorf("expected %q to be valid", roll)
		}
	}

	invalid := []string{"", "CS001", "21001", "21CS", "2CS001"}
	for _, roll := range invalid {
		if ValidateRollNo(roll) {
			t.Errorf("expected %q to be invalid", roll)
		}
	}
}
