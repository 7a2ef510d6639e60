package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"

	"github.com/campuscore/erp-api/config"
)

// ReportingStore runs the aggregate report queries over a plain database/sql
// connection. GORM carries the CRUD surface; the GROUP BY rollups stay on raw
// SQL where the shape of the result never matches a model.
type ReportingStore struct {
	db *sql.DB
}

// StartReporting opens the raw PostgreSQL connection for report queries
func StartReporting() (*ReportingStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	connectStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv.DB_HOST, getEnv.DB_PORT, getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD, getEnv.DB_NAME, getEnv.DB_SSL_MODE,
	)

	db, err := sql.Open("postgres", connectStr)
	if err != nil {
		log.Println("Unable to open reporting connection:", err)
		return nil, err
	}

	return &ReportingStore{db: db}, nil
}

// Close closes the reporting connection
func (s *ReportingStore) Close() error {
	return s.db.Close()
}

// DailyAttendanceCount is one class-day rollup row
type DailyAttendanceCount struct {
	Date    time.Time `json:"date"`
	DeptID  uint      `json:"dept_id"`
	ClassID uint      `json:"class_id"`
	Present int       `json:"present"`
	Absent  int       `json:"absent"`
}

// AttendanceDailyRollup aggregates present/absent counts per class per day in
// the inclusive [from, to] window.
func (s *ReportingStore) AttendanceDailyRollup(from, to time.Time) ([]DailyAttendanceCount, error) {
	query := `
		SELECT date, dept_id, class_id,
		       COUNT(*) FILTER (WHERE status = 'Present') AS present,
		       COUNT(*) FILTER (WHERE status = 'Absent')  AS absent
		FROM attendance_records
		WHERE deleted_at IS NULL AND date BETWEEN $1 AND $2
		GROUP BY date, dept_id, class_id
		ORDER BY date, dept_id, class_id;
	`
	rows, err := s.db.Query(query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []DailyAttendanceCount{}
	for rows.Next() {
		var c DailyAttendanceCount
		if err := rows.Scan(&c.Date, &c.DeptID, &c.ClassID, &c.Present, &c.Absent); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// FeeCollectionSummary is the per-category collection rollup
type FeeCollectionSummary struct {
	Category  string  `json:"category"`
	Demanded  float64 `json:"demanded"`
	Collected float64 `json:"collected"`
	Pending   float64 `json:"pending"`
}

// FeeCollectionByCategory aggregates demanded vs collected per fee category,
// optionally restricted to one department.
func (s *ReportingStore) FeeCollectionByCategory(deptID *uint) ([]FeeCollectionSummary, error) {
	query := `
		SELECT f.category,
		       COALESCE(SUM(f.amount), 0)      AS demanded,
		       COALESCE(SUM(f.paid_amount), 0) AS collected
		FROM fee_records f
		JOIN students st ON st.id = f.student_id
		WHERE f.deleted_at IS NULL AND ($1::bigint IS NULL OR st.dept_id = $1)
		GROUP BY f.category
		ORDER BY f.category;
	`

	var arg interface{}
	if deptID != nil {
		arg = int64(*deptID)
	}

	rows, err := s.db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []FeeCollectionSummary{}
	for rows.Next() {
		var sum FeeCollectionSummary
		if err := rows.Scan(&sum.Category, &sum.Demanded, &sum.Collected); err != nil {
			return nil, err
		}
		sum.Pending = sum.Demanded - sum.Collected
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// PlacementStatusCount is one status bucket for a drive
type PlacementStatusCount struct {
	DriveID uint   `json:"drive_id"`
	Company string `json:"company"`
	Status  string `json:"status"`
	Count   int    `json:"count"`
}

// PlacementFunnel counts applications per drive per status.
func (s *ReportingStore) PlacementFunnel() ([]PlacementStatusCount, error) {
	query := `
		SELECT a.drive_id, d.company, a.status, COUNT(*)
		FROM placement_applications a
		JOIN placement_drives d ON d.id = a.drive_id
		WHERE a.deleted_at IS NULL
		GROUP BY a.drive_id, d.company, a.status
		ORDER BY a.drive_id, a.status;
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []PlacementStatusCount{}
	for rows.Next() {
		var c PlacementStatusCount
		if err := rows.Scan(&c.DriveID, &c.Company, &c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}
