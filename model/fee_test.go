package model

import "testing"

func TestRecalculateStatus(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		paid   float64
		want   string
	}{
		{"nothing paid", 1000, 0, FeeStatusPending},
		{"partial payment", 1000, 400, FeeStatusPartial},
		{"exact payment", 1000, 1000, FeeStatusPaid},
		{"overpayment", 1000, 1200, FeeStatusPaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := FeeRecord{Amount: tc.amount, PaidAmount: tc.paid}
			f.RecalculateStatus()
			if f.Status != tc.want {
				t.Errorf("amount=%.0f paid=%.0f: expected %q, got %q",
					tc.amount, tc.paid, tc.want, f.Status)
			}
		})
	}
}

func TestLookupLabelsFallBackToDash(t *testing.T) {
	if got := DeptLabel(1); got != "Computer Science" {
		t.Errorf("expected Computer Science, got %q", got)
	}
	if got := DeptLabel(99); got != "-" {
		t.Errorf("expected dash for unknown dept, got %q", got)
	}
	if got := ClassLabel(42); got != "-" {
		t.Errorf("expected dash for unknown class, got %q", got)
	}
}
