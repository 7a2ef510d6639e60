package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/campuscore/erp-api/model"
)

// PlacementService handles drive eligibility evaluation and applications
type PlacementService struct {
	db *gorm.DB
}

// NewPlacementService creates a new placement service
func NewPlacementService(db *gorm.DB) *PlacementService {
	return &PlacementService{db: db}
}

// EligibilityResult explains whether a student clears a drive's cutoffs
type EligibilityResult struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons,omitempty"`
}

func decodeIDList(raw json.RawMessage) []uint {
	if len(raw) == 0 {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil
	}
	return ids
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Evaluate checks a student against a drive's cutoffs and target audience.
// An empty target list means the drive is open to every dept/class.
func Evaluate(drive *model.PlacementDrive, student *model.Student) EligibilityResult {
	result := EligibilityResult{Eligible: true}
	fail := func(reason string) {
		result.Eligible = false
		result.Reasons = append(result.Reasons, reason)
	}

	if targetDepts := decodeIDList(json.RawMessage(drive.TargetDepts)); len(targetDepts) > 0 && !containsID(targetDepts, student.DeptID) {
		fail("department not targeted by this drive")
	}
	if targetClasses := decodeIDList(json.RawMessage(drive.TargetClasses)); len(targetClasses) > 0 && !containsID(targetClasses, student.ClassID) {
		fail("class not targeted by this drive")
	}
	if student.CGPA < drive.MinCGPA {
		fail(fmt.Sprintf("CGPA %.2f below cutoff %.2f", student.CGPA, drive.MinCGPA))
	}
	if student.TenthPercentage < drive.MinTenthPercent {
		fail(fmt.Sprintf("10th percentage %.1f below cutoff %.1f", student.TenthPercentage, drive.MinTenthPercent))
	}
	if student.TwelfthPercentage < drive.MinTwelfthPercent {
		fail(fmt.Sprintf("12th percentage %.1f below cutoff %.1f", student.TwelfthPercentage, drive.MinTwelfthPercent))
	}
	if student.ActiveArrears > drive.MaxActiveArrears {
		fail(fmt.Sprintf("%d active arrears exceed limit %d", student.ActiveArrears, drive.MaxActiveArrears))
	}
	if drive.MaxHistoryArrears >= 0 && student.HistoryArrears > drive.MaxHistoryArrears {
		fail(fmt.Sprintf("%d history arrears exceed limit %d", student.HistoryArrears, drive.MaxHistoryArrears))
	}

	return result
}

// Apply registers a student on a drive after re-checking eligibility. The
// unique drive+student index backs up the duplicate check.
func (s *PlacementService) Apply(ctx context.Context, driveID, studentID uint) (*model.PlacementApplication, error) {
	var drive model.PlacementDrive
	if err := s.db.WithContext(ctx).First(&drive, driveID).Error; err != nil {
		return nil, err
	}
	if !drive.IsActive {
		return nil, fmt.Errorf("drive is closed for applications")
	}

	var student model.Student
	if err := s.db.WithContext(ctx).First(&student, studentID).Error; err != nil {
		return nil, err
	}
	if !student.WillingForPlacement {
		return nil, fmt.Errorf("student has opted out of placements")
	}

	if result := Evaluate(&drive, &student); !result.Eligible {
		return nil, fmt.Errorf("student not eligible: %v", result.Reasons)
	}

	var existing model.PlacementApplication
	err := s.db.WithContext(ctx).
		Where("drive_id = ? AND student_id = ?", driveID, studentID).
		First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("student already applied to this drive")
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	application := &model.PlacementApplication{
		DriveID:   driveID,
		StudentID: studentID,
		Status:    model.ApplicationApplied,
	}
	if err := s.db.WithContext(ctx).Create(application).Error; err != nil {
		return nil, err
	}

	return application, nil
}

// UpdateStatus moves an application through the Applied/Selected/Rejected enum
func (s *PlacementService) UpdateStatus(ctx context.Context, applicationID uint, status string) error {
	switch status {
	case model.ApplicationApplied, model.ApplicationSelected, model.ApplicationRejected:
	default:
		return fmt.Errorf("unknown application status %q", status)
	}

	result := s.db.WithContext(ctx).
		Model(&model.PlacementApplication{}).
		Where("id = ?", applicationID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// EligibleStudents lists the students who clear a drive's cutoffs
func (s *PlacementService) EligibleStudents(ctx context.Context, driveID uint) ([]model.Student, error) {
	var drive model.PlacementDrive
	if err := s.db.WithContext(ctx).First(&drive, driveID).Error; err != nil {
		return nil, err
	}

	var students []model.Student
	if err := s.db.WithContext(ctx).
		Where("willing_for_placement = ?", true).
		Find(&students).Error; err != nil {
		return nil, err
	}

	eligible := make([]model.Student, 0, len(students))
	for i := range students {
		if Evaluate(&drive, &students[i]).Eligible {
			eligible = append(eligible, students[i])
		}
	}
	return eligible, nil
}
