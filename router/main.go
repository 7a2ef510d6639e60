package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuscore/erp-api/config"
	"github.com/campuscore/erp-api/database"
	"github.com/campuscore/erp-api/handlers"
	access_handlers "github.com/campuscore/erp-api/handlers/access"
	announcement_handlers "github.com/campuscore/erp-api/handlers/announcement"
	attendance_handlers "github.com/campuscore/erp-api/handlers/attendance"
	auth_handlers "github.com/campuscore/erp-api/handlers/auth"
	export_handlers "github.com/campuscore/erp-api/handlers/export"
	faculty_handlers "github.com/campuscore/erp-api/handlers/faculty"
	fee_handlers "github.com/campuscore/erp-api/handlers/fee"
	pass_handlers "github.com/campuscore/erp-api/handlers/pass"
	placement_handlers "github.com/campuscore/erp-api/handlers/placement"
	student_handlers "github.com/campuscore/erp-api/handlers/student"
	timetable_handlers "github.com/campuscore/erp-api/handlers/timetable"
	"github.com/campuscore/erp-api/model"
	"github.com/campuscore/erp-api/services"
	"github.com/campuscore/erp-api/utils/auth"
	"github.com/campuscore/erp-api/utils/cache"
	"github.com/campuscore/erp-api/utils/middleware"
)

func SetupRoutes(app *fiber.App, store database.Storage, reporting *database.ReportingStore) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	jwtSecret := getEnv.JWT_SECRET
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "campuscore-erp-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        jwtIssuer,
	})

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Redis backs brute force protection and the attendance summary cache.
	// The API stays up without it.
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection and summary caching will be disabled.", err)
		redisCache = nil
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Services
	attendanceService := services.NewAttendanceService(db, reporting, redisCache)
	passService := services.NewPassService(db)
	placementService := services.NewPlacementService(db)
	announcementService := services.NewAnnouncementService(db)
	exportService := services.NewExportService(getEnv.INSTITUTION_NAME)

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	studentHandler := student_handlers.NewStudentHandler(db)
	facultyHandler := faculty_handlers.NewFacultyHandler(db)
	grantHandler := access_handlers.NewGrantHandler(db)
	attendanceHandler := attendance_handlers.NewAttendanceHandler(attendanceService)
	feeHandler := fee_handlers.NewFeeHandler(db, reporting)
	passHandler := pass_handlers.NewPassHandler(passService)
	placementHandler := placement_handlers.NewPlacementHandler(db, placementService, reporting)
	announcementHandler := announcement_handlers.NewAnnouncementHandler(db, announcementService)
	timetableHandler := timetable_handlers.NewTimetableHandler(db)
	exportHandler := export_handlers.NewExportHandler(db, attendanceService, exportService)

	// Security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:5173"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint (public)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return handlers.HandleCheckHealth(c, store)
	})

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Post("/logout-all", authMiddleware.Required(), authHandler.LogoutAll)
	authGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Get("/", authHandler.GetProfile)
	profileGroup.Put("/", authHandler.UpdateProfile)

	managerRoles := []string{model.RoleAdmin, model.RolePrincipal, model.RoleHOD, model.RoleCA}

	// Student roster routes
	students := api.Group("/students", authMiddleware.Required())
	students.Get("/", authMiddleware.RequireStaff(), studentHandler.ListStudents)
	students.Get("/:id", authMiddleware.RequireStaff(), studentHandler.GetStudent)
	students.Post("/", authMiddleware.RequireRole(managerRoles...), studentHandler.CreateStudent)
	students.Put("/:id", authMiddleware.RequireRole(managerRoles...), studentHandler.UpdateStudent)
	students.Delete("/:id", authMiddleware.RequireRole(model.RoleAdmin, model.RolePrincipal), studentHandler.DeleteStudent)

	// Faculty directory routes
	faculty := api.Group("/faculty", authMiddleware.Required(), authMiddleware.RequireStaff())
	faculty.Get("/", facultyHandler.ListFaculty)
	faculty.Get("/:id", facultyHandler.GetFaculty)
	faculty.Put("/:id", authMiddleware.RequireRole(model.RoleAdmin, model.RolePrincipal), facultyHandler.UpdateFaculty)
	faculty.Delete("/:id", authMiddleware.RequireRole(model.RoleAdmin, model.RolePrincipal), facultyHandler.DeleteFaculty)

	// Access grant routes
	grants := api.Group("/access-grants", authMiddleware.Required(),
		authMiddleware.RequireRole(model.RoleAdmin, model.RolePrincipal, model.RoleHOD))
	grants.Get("/", grantHandler.ListGrants)
	grants.Post("/", grantHandler.CreateGrant)
	grants.Delete("/:id", grantHandler.DeleteGrant)

	// Attendance routes
	attendance := api.Group("/attendance", authMiddleware.Required(), authMiddleware.RequireStaff())
	attendance.Post("/", attendanceHandler.MarkAttendance)
	attendance.Get("/", attendanceHandler.ListAttendance)
	attendance.Get("/summary", attendanceHandler.GetSummary)
	attendance.Get("/report", attendanceHandler.GetDailyReport)

	// Fee routes
	fees := api.Group("/fees", authMiddleware.Required(), authMiddleware.RequireStaff())
	fees.Get("/", feeHandler.ListFees)
	fees.Get("/summary", feeHandler.GetCollectionSummary)
	fees.Post("/", authMiddleware.RequireRole(managerRoles...), feeHandler.CreateFee)
	fees.Post("/:id/payments", feeHandler.RecordPayment)

	// Pass routes
	passes := api.Group("/passes", authMiddleware.Required())
	passes.Get("/me", passHandler.ListMyPasses)
	passes.Get("/user/:id", authMiddleware.RequireStaff(), passHandler.ListUserPasses)
	passes.Get("/:id/qr", passHandler.GetPassQR)
	passes.Post("/", authMiddleware.RequireStaff(), passHandler.IssuePass)
	passes.Post("/verify", authMiddleware.RequireStaff(), passHandler.VerifyPass)
	passes.Post("/:id/revoke", authMiddleware.RequireStaff(), passHandler.RevokePass)

	// Placement routes
	placements := api.Group("/placements", authMiddleware.Required())
	placements.Get("/drives", placementHandler.ListDrives)
	placements.Get("/drives/:id", placementHandler.GetDrive)
	placements.Post("/drives", authMiddleware.RequireRole(model.RoleAdmin, model.RolePrincipal, model.RoleTrainer), placementHandler.CreateDrive)
	placements.Post("/drives/:id/close", authMiddleware.RequireRole(model.RoleAdmin, model.RolePrincipal, model.RoleTrainer), placementHandler.CloseDrive)
	placements.Get("/drives/:id/eligible", authMiddleware.RequireStaff(), placementHandler.GetEligibleStudents)
	placements.Get("/drives/:id/eligibility/:studentId", placementHandler.CheckEligibility)
	placements.Post("/drives/:id/apply", placementHandler.Apply)
	placements.Put("/applications/:id", authMiddleware.RequireRole(model.RoleAdmin, model.RolePrincipal, model.RoleTrainer), placementHandler.UpdateApplication)
	placements.Get("/funnel", authMiddleware.RequireStaff(), placementHandler.GetFunnel)

	// Announcement and notification routes
	announcements := api.Group("/announcements", authMiddleware.Required())
	announcements.Get("/", announcementHandler.ListAnnouncements)
	announcements.Post("/", authMiddleware.RequireStaff(), announcementHandler.Publish)

	notifications := api.Group("/notifications", authMiddleware.Required())
	notifications.Get("/", announcementHandler.GetFeed)
	notifications.Post("/:id/read", announcementHandler.MarkRead)

	// Timetable routes
	timetable := api.Group("/timetable", authMiddleware.Required())
	timetable.Get("/", timetableHandler.GetTimetable)
	timetable.Get("/faculty/:id", authMiddleware.RequireStaff(), timetableHandler.GetFacultySchedule)
	timetable.Put("/", authMiddleware.RequireRole(managerRoles...), timetableHandler.UpsertEntry)
	timetable.Delete("/:id", authMiddleware.RequireRole(managerRoles...), timetableHandler.DeleteEntry)

	// Export routes
	exports := api.Group("/exports", authMiddleware.Required(), authMiddleware.RequireStaff())
	exports.Get("/students", exportHandler.ExportStudents)
	exports.Get("/attendance", exportHandler.ExportAttendance)
	exports.Get("/fees", exportHandler.ExportFees)
}
