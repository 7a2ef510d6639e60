package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/campuscore/erp-api/model"
)

// runLogged executes a job and records its lifecycle in cron_job_logs.
func (m *CronManager) runLogged(jobName string, job func() (string, error)) {
	started := time.Now()
	log.Printf("[CRON] Starting job: %s at %s", jobName, started.Format(time.RFC3339))

	cronLog := model.CronJobLog{
		JobName:   jobName,
		Status:    "started",
		StartedAt: started,
	}
	m.db.Create(&cronLog)

	message, err := job()

	completed := time.Now()
	updates := map[string]interface{}{
		"completed_at": completed,
		"duration":     int(completed.Sub(started).Milliseconds()),
	}
	if err != nil {
		log.Printf("[CRON] Error in job: %s - %v", jobName, err)
		updates["status"] = "failed"
		updates["error_msg"] = err.Error()
	} else {
		log.Printf("[CRON] Completed job: %s - %s", jobName, message)
		updates["status"] = "completed"
		updates["message"] = message
	}
	m.db.Model(&model.CronJobLog{}).Where("id = ?", cronLog.ID).Updates(updates)
}

// ExpirePasses flips IsValid on passes whose validity window has ended.
// Runs daily shortly after midnight so expired passes stop scanning.
func (m *CronManager) ExpirePasses() (string, error) {
	result := m.db.Model(&model.Pass{}).
		Where("is_valid = ? AND valid_till < ?", true, time.Now()).
		Update("is_valid", false)
	if result.Error != nil {
		return "", fmt.Errorf("failed to expire passes: %w", result.Error)
	}
	return fmt.Sprintf("Invalidated %d expired passes", result.RowsAffected), nil
}

// LogAttendanceRollup computes yesterday's attendance rollup and logs it.
// The rollup query lives in the reporting store; this job keeps a daily
// record so the numbers survive in cron logs even without a dashboard.
func (m *CronManager) LogAttendanceRollup() (string, error) {
	if m.reporting == nil {
		return "Reporting store not configured, skipped", nil
	}

	yesterday := time.Now().AddDate(0, 0, -1)
	from := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, yesterday.Location())
	to := from.AddDate(0, 0, 1)

	counts, err := m.reporting.AttendanceDailyRollup(from, to)
	if err != nil {
		return "", fmt.Errorf("failed to roll up attendance: %w", err)
	}
	if len(counts) == 0 {
		return "No attendance recorded yesterday", nil
	}

	present, absent := 0, 0
	for _, c := range counts {
		present += c.Present
		absent += c.Absent
	}
	return fmt.Sprintf("%s: %d present, %d absent across %d classes",
		from.Format("2006-01-02"), present, absent, len(counts)), nil
}

// CleanupTokenBlacklist removes blacklist rows whose tokens have expired.
// Expired tokens fail signature validation anyway, so the rows are dead weight.
func (m *CronManager) CleanupTokenBlacklist() (string, error) {
	result := m.db.Unscoped().
		Where("expires_at < ?", time.Now()).
		Delete(&model.JWTTokenBlacklist{})
	if result.Error != nil {
		return "", fmt.Errorf("failed to clean token blacklist: %w", result.Error)
	}
	return fmt.Sprintf("Removed %d expired blacklist entries", result.RowsAffected), nil
}

// CleanupOldData removes aged rows to keep the database lean.
func (m *CronManager) CleanupOldData() (string, error) {
	totalCleaned := 0

	// 1. Cron job logs older than 90 days
	cutoffLogs := time.Now().Add(-90 * 24 * time.Hour)
	result := m.db.Unscoped().Where("created_at < ?", cutoffLogs).Delete(&model.CronJobLog{})
	if result.Error != nil {
		log.Printf("[CRON] Failed to clean cron logs: %v", result.Error)
	} else {
		totalCleaned += int(result.RowsAffected)
	}

	// 2. Read notifications older than 60 days
	cutoffNotifs := time.Now().Add(-60 * 24 * time.Hour)
	result = m.db.Unscoped().
		Where("read = ? AND created_at < ?", true, cutoffNotifs).
		Delete(&model.UserNotification{})
	if result.Error != nil {
		log.Printf("[CRON] Failed to clean notifications: %v", result.Error)
	} else {
		totalCleaned += int(result.RowsAffected)
	}

	return fmt.Sprintf("Cleaned %d old rows", totalCleaned), nil
}
