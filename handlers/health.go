package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campuscore/erp-api/database"
)

// HandleCheckHealth reports liveness plus database reachability
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	status := "ok"
	dbStatus := "up"
	if err := store.HealthCheck(); err != nil {
		status = "degraded"
		dbStatus = "down"
	}

	return c.JSON(fiber.Map{
		"status":   status,
		"database": dbStatus,
	})
}
