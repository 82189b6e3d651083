package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"devapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// snapSvc may be nil, in which case the export route is not mounted.
func RegisterRoutes(app *fiber.App, db *sql.DB, devSvc service.DeveloperService, snapSvc service.SnapshotService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/developers", ListDevelopers(devSvc))
	app.Post("/developers", CreateDeveloper(devSvc))
	app.Get("/developers/:id", GetDeveloper(devSvc))
	app.Put("/developers/:id", UpdateDeveloper(devSvc))
	app.Patch("/developers/:id", UpdateDeveloper(devSvc))
	app.Delete("/developers/:id", DeleteDeveloper(devSvc))

	if snapSvc != nil {
		app.Post("/exports/developers", ExportDevelopers(snapSvc))
	}
}
