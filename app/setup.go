package app

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/campuscore/erp-api/api"
	"github.com/campuscore/erp-api/config"
	"github.com/campuscore/erp-api/database"
	"github.com/campuscore/erp-api/router"
	"github.com/campuscore/erp-api/services/cron"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return fmt.Errorf("failed to get database connection")
	}

	// Seed lookup tables and the bootstrap admin account
	seeder := database.NewSeeder(db)
	if err := seeder.SeedAll(); err != nil {
		log.Printf("Warning: seeding failed: %v", err)
	}

	// Raw SQL connection for report rollups; the API degrades without it
	reporting, err := database.StartReporting()
	if err != nil {
		log.Printf("Warning: reporting store unavailable: %v", err)
		reporting = nil
	}

	// Cron jobs (enabled unless CRON_ENABLED=false)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" {
		cronManager = cron.NewCronManager(db, reporting)
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: failed to start cron jobs: %v", err)
		}
	}

	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if reporting != nil {
			reporting.Close()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach Middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Setup Routes
	router.SetupRoutes(app, store, reporting)

	// Get the PORT & Start the Server
	return server.Run()
}
