package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campuscore/erp-api/database"
	"github.com/campuscore/erp-api/listing"
	"github.com/campuscore/erp-api/model"
	"github.com/campuscore/erp-api/utils/cache"
)

const summaryCacheTTL = 5 * time.Minute

// AttendanceService handles attendance marking, reads and cached summaries
type AttendanceService struct {
	db        *gorm.DB
	reporting *database.ReportingStore
	cache     *cache.RedisCache
	guard     listing.RefreshGuard
}

// NewAttendanceService creates a new attendance service. Reporting store and
// cache are optional; summaries fall back to direct reads when absent.
func NewAttendanceService(db *gorm.DB, reporting *database.ReportingStore, redisCache *cache.RedisCache) *AttendanceService {
	return &AttendanceService{
		db:        db,
		reporting: reporting,
		cache:     redisCache,
	}
}

// MarkRequest is one student's status within a bulk marking call
type MarkRequest struct {
	StudentID uint   `json:"student_id" validate:"required,min=1"`
	Status    string `json:"status" validate:"required,oneof=Present Absent"`
}

// MarkBulk upserts attendance for a class on one date. Re-marking the same
// student+date overwrites the previous status rather than duplicating rows.
func (s *AttendanceService) MarkBulk(ctx context.Context, deptID, classID uint, date time.Time, markedBy uint, marks []MarkRequest) error {
	if len(marks) == 0 {
		return fmt.Errorf("no attendance rows supplied")
	}

	records := make([]model.AttendanceRecord, 0, len(marks))
	for _, m := range marks {
		records = append(records, model.AttendanceRecord{
			StudentID: m.StudentID,
			Date:      date,
			Status:    m.Status,
			DeptID:    deptID,
			ClassID:   classID,
			MarkedBy:  markedBy,
		})
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by", "updated_at"}),
		}).
		Create(&records).Error
	if err != nil {
		return err
	}

	s.invalidateSummaries(ctx, deptID, classID)
	return nil
}

// List returns the flattened attendance rows for a class/date window
func (s *AttendanceService) List(ctx context.Context, deptID, classID *uint, from, to *time.Time) ([]model.AttendanceRow, error) {
	query := s.db.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Select("students.name AS student_name, students.roll_no, attendance_records.date, attendance_records.status").
		Joins("JOIN students ON students.id = attendance_records.student_id")

	if deptID != nil {
		query = query.Where("attendance_records.dept_id = ?", *deptID)
	}
	if classID != nil {
		query = query.Where("attendance_records.class_id = ?", *classID)
	}
	if from != nil {
		query = query.Where("attendance_records.date >= ?", *from)
	}
	if to != nil {
		query = query.Where("attendance_records.date <= ?", *to)
	}

	var rows []model.AttendanceRow
	if err := query.Order("attendance_records.date, students.roll_no").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func summaryCacheKey(deptID, classID *uint, from, to *time.Time) string {
	key := "attendance:summary"
	if deptID != nil {
		key += fmt.Sprintf(":d%d", *deptID)
	}
	if classID != nil {
		key += fmt.Sprintf(":c%d", *classID)
	}
	if from != nil {
		key += ":" + from.Format("2006-01-02")
	}
	if to != nil {
		key += ":" + to.Format("2006-01-02")
	}
	return key
}

// Summary computes the stat-pill summary for a window, served from cache when
// fresh. Concurrent refreshes of the same key race safely: a superseded
// refresh is discarded by the guard instead of overwriting newer data.
func (s *AttendanceService) Summary(ctx context.Context, deptID, classID *uint, from, to *time.Time) (listing.AttendanceSummary, error) {
	key := summaryCacheKey(deptID, classID, from, to)

	if s.cache != nil {
		var cached listing.AttendanceSummary
		if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	token := s.guard.Begin()

	rows, err := s.List(ctx, deptID, classID, from, to)
	if err != nil {
		return listing.AttendanceSummary{}, err
	}
	summary := listing.SummarizeAttendance(rows)

	if s.cache != nil && s.guard.Commit(token) {
		if err := s.cache.SetJSON(ctx, key, summary, summaryCacheTTL); err != nil {
			log.Printf("Warning: failed to cache attendance summary: %v", err)
		}
	}

	return summary, nil
}

// DailyRollup serves the per-class per-day report through the raw reporting
// store, falling back to an in-memory rollup when it is unavailable.
func (s *AttendanceService) DailyRollup(ctx context.Context, from, to time.Time) ([]database.DailyAttendanceCount, error) {
	if s.reporting != nil {
		return s.reporting.AttendanceDailyRollup(from, to)
	}

	var records []model.AttendanceRecord
	if err := s.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date").
		Find(&records).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		date            time.Time
		dept, class     uint
		present, absent int
	}
	index := map[string]*bucket{}
	order := []string{}
	for _, r := range records {
		key := fmt.Sprintf("%s|%d|%d", r.Date.Format("2006-01-02"), r.DeptID, r.ClassID)
		b, ok := index[key]
		if !ok {
			b = &bucket{date: r.Date, dept: r.DeptID, class: r.ClassID}
			index[key] = b
			order = append(order, key)
		}
		if r.Status == model.AttendancePresent {
			b.present++
		} else {
			b.absent++
		}
	}

	counts := make([]database.DailyAttendanceCount, 0, len(order))
	for _, key := range order {
		b := index[key]
		counts = append(counts, database.DailyAttendanceCount{
			Date: b.date, DeptID: b.dept, ClassID: b.class,
			Present: b.present, Absent: b.absent,
		})
	}
	return counts, nil
}

func (s *AttendanceService) invalidateSummaries(ctx context.Context, deptID, classID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "attendance:summary*"); err != nil {
		log.Printf("Warning: failed to invalidate attendance summaries: %v", err)
	}
}
