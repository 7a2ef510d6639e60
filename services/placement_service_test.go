package services

import (
	"testing"

	"gorm.io/datatypes"

	"github.com/campuscore/erp-api/model"
)

func openDrive() model.PlacementDrive {
	return model.PlacementDrive{
		Company:           "Acme Corp",
		MinCGPA:           7.0,
		MinTenthPercent:   60,
		MinTwelfthPercent: 60,
		MaxActiveArrears:  0,
		MaxHistoryArrears: -1, // no limit
	}
}

func strongStudent() model.Student {
	return model.Student{
		DeptID: 1, ClassID: 4,
		CGPA: 8.2, TenthPercentage: 85, TwelfthPercentage: 80,
		ActiveArrears: 0, HistoryArrears: 2,
		WillingForPlacement: true,
	}
}

func TestEvaluateClearsOpenDrive(t *testing.T) {
	drive := openDrive()
	student := strongStudent()

	got := Evaluate(&drive, &student)
	if !got.Eligible {
		t.Fatalf("student should be eligible, reasons: %v", got.Reasons)
	}
}

func TestEvaluateCutoffFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.Student)
	}{
		{"low cgpa", func(s *model.Student) { s.CGPA = 6.5 }},
		{"low tenth", func(s *model.Student) { s.TenthPercentage = 55 }},
		{"low twelfth", func(s *model.Student) { s.TwelfthPercentage = 40 }},
		{"active arrears", func(s *model.Student) { s.ActiveArrears = 1 }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			drive := openDrive()
			student := strongStudent()
			c.mutate(&student)

			got := Evaluate(&drive, &student)
			if got.Eligible {
				t.Fatal("student should fail the cutoff")
			}
			if len(got.Reasons) == 0 {
				t.Fatal("failure must carry a reason")
			}
		})
	}
}

func TestEvaluateHistoryArrearsLimit(t *testing.T) {
	drive := openDrive()
	drive.MaxHistoryArrears = 1
	student := strongStudent() // has 2 history arrears

	if Evaluate(&drive, &student).Eligible {
		t.Fatal("history arrears limit not enforced")
	}

	drive.MaxHistoryArrears = -1
	if !Evaluate(&drive, &student).Eligible {
		t.Fatal("-1 must mean no history arrears limit")
	}
}

func TestEvaluateTargetAudience(t *testing.T) {
	drive := openDrive()
	drive.TargetDepts = datatypes.JSON([]byte(`[2,3]`))
	drive.TargetClasses = datatypes.JSON([]byte(`[4]`))
	student := strongStudent() // dept 1, class 4

	got := Evaluate(&drive, &student)
	if got.Eligible {
		t.Fatal("student outside target departments must not be eligible")
	}

	drive.TargetDepts = datatypes.JSON([]byte(`[1,2]`))
	if !Evaluate(&drive, &student).Eligible {
		t.Fatal("student inside target audience should be eligible")
	}

	// Empty target lists mean the drive is open to everyone.
	drive.TargetDepts = datatypes.JSON([]byte(`[]`))
	drive.TargetClasses = nil
	if !Evaluate(&drive, &student).Eligible {
		t.Fatal("empty audience must mean open drive")
	}
}
