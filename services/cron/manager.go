package cron

import (
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/campuscore/erp-api/database"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron      *cron.Cron
	db        *gorm.DB
	reporting *database.ReportingStore
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, reporting *database.ReportingStore) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:      c,
		db:        db,
		reporting: reporting,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// 1. Daily at 00:10: invalidate passes whose validity window has ended
	_, err := m.cron.AddFunc("0 10 0 * * *", func() {
		m.runLogged("expire_passes", m.ExpirePasses)
	})
	if err != nil {
		return err
	}

	// 2. Daily at 01:00: roll up yesterday's attendance into the report log
	_, err = m.cron.AddFunc("0 0 1 * * *", func() {
		m.runLogged("attendance_daily_rollup", m.LogAttendanceRollup)
	})
	if err != nil {
		return err
	}

	// 3. Daily at 02:00: purge expired blacklist entries
	_, err = m.cron.AddFunc("0 0 2 * * *", func() {
		m.runLogged("cleanup_token_blacklist", m.CleanupTokenBlacklist)
	})
	if err != nil {
		return err
	}

	// 4. Weekly on Sunday at 03:00: purge old logs and read notifications
	_, err = m.cron.AddFunc("0 0 3 * * 0", func() {
		m.runLogged("cleanup_old_data", m.CleanupOldData)
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}
