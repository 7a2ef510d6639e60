package student

import (
	"testing"

	"github.com/campuscore/erp-api/listing"
	"github.com/campuscore/erp-api/model"
)

func roster() []model.Student {
	return []model.Student{
		{Name: "Asha Rao", RollNo: "CS2101", DeptID: 1, ClassID: 1, Gender: "female", IsJain: true, IsHostel: true},
		{Name: "Bharath K", RollNo: "CS2102", DeptID: 1, ClassID: 1, Gender: "male", UsesBus: true},
		{Name: "Chitra M", RollNo: "CS2203", DeptID: 1, ClassID: 2, Gender: "female", IsJain: true},
		{Name: "Deepak S", RollNo: "EC2104", DeptID: 2, ClassID: 1, Gender: "male", IsHostel: true},
		{Name: "Esha V", RollNo: "EC2205", DeptID: 2, ClassID: 2, Gender: "female", UsesBus: true},
	}
}

func TestPredicatesDeptAndClass(t *testing.T) {
	dept := uint(1)
	class := uint(1)
	got := listing.Apply(roster(), Predicates(listing.FilterSet{DeptID: &dept, ClassID: &class})...)

	if len(got) != 2 {
		t.Fatalf("expected 2 students, got %d", len(got))
	}
	for _, s := range got {
		if s.DeptID != 1 || s.ClassID != 1 {
			t.Errorf("student %s outside dept 1 class 1", s.RollNo)
		}
	}
}

func TestPredicatesSearchMatchesNameAndRollNo(t *testing.T) {
	cases := []struct {
		search string
		want   int
	}{
		{"asha", 1},
		{"CS21", 2},
		{"ec2", 2},
		{"nobody", 0},
	}

	for _, tc := range cases {
		got := listing.Apply(roster(), Predicates(listing.FilterSet{Search: tc.search})...)
		if len(got) != tc.want {
			t.Errorf("search %q: expected %d rows, got %d", tc.search, tc.want, len(got))
		}
	}
}

func TestPredicatesTagsAreConjunctive(t *testing.T) {
	got := listing.Apply(roster(), Predicates(listing.FilterSet{Tags: []string{"jain", "hostel"}})...)
	if len(got) != 1 || got[0].RollNo != "CS2101" {
		t.Fatalf("expected only CS2101, got %v", got)
	}

	// Complementary tags can never both hold, so the result is empty
	got = listing.Apply(roster(), Predicates(listing.FilterSet{Tags: []string{"jain", "non-jain"}})...)
	if len(got) != 0 {
		t.Fatalf("expected empty result for contradictory tags, got %d rows", len(got))
	}
}

func TestMatchTagUnknownTagMatchesNothing(t *testing.T) {
	for _, s := range roster() {
		if matchTag(s, "wizard") {
			t.Fatalf("unknown tag matched student %s", s.RollNo)
		}
	}
}
