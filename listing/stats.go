package listing

import (
	"fmt"

	"github.com/campuscore/erp-api/model"
)

// AttendanceSummary is the stat-pill payload for an attendance listing
type AttendanceSummary struct {
	Total      int    `json:"total"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	Percentage string `json:"percentage"` // one decimal, "0.0" when total is zero
}

// SummarizeAttendance computes present/absent counts and the present
// percentage in one pass. Division by zero is guarded: an empty input yields
// "0.0", never NaN.
func SummarizeAttendance(rows []model.AttendanceRow) AttendanceSummary {
	s := AttendanceSummary{Total: len(rows)}
	for _, row := range rows {
		if row.Status == model.AttendancePresent {
			s.Present++
		}
	}
	s.Absent = s.Total - s.Present
	s.Percentage = Percentage(s.Present, s.Total)
	return s
}

// Percentage formats part/total as a one-decimal string with a "0.0"
// zero-total fallback.
func Percentage(part, total int) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
}

// CountBy counts rows per key, preserving nothing but the totals.
func CountBy[T any, K comparable](rows []T, key func(T) K) map[K]int {
	counts := make(map[K]int, len(rows))
	for _, row := range rows {
		counts[key(row)]++
	}
	return counts
}

// Count returns how many rows satisfy the predicate.
func Count[T any](rows []T, pred Predicate[T]) int {
	n := 0
	for _, row := range rows {
		if pred(row) {
			n++
		}
	}
	return n
}

// CountWilling counts students flagged willing for placement.
func CountWilling(students []model.Student) int {
	return Count(students, func(s model.Student) bool { return s.WillingForPlacement })
}
