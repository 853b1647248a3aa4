package assessments

import (
	"database/sql"

	"healy-academy/app/models"
	"healy-academy/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAssessmentsRoutes sets up all assessment-related routes
func SetupAssessmentsRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/assessments")
	api.Use(auth.AuthMiddleware)

	api.Get("/batches", func(c *fiber.Ctx) error { return GetBatches(c, db) })
	api.Get("/batches/detail", func(c *fiber.Ctx) error { return GetBatchDetail(c, db) })
	api.Post("/batches", func(c *fiber.Ctx) error { return CreateBatch(c, db) })
	api.Put("/batches", func(c *fiber.Ctx) error { return EditBatch(c, db) })
	api.Delete("/batches", func(c *fiber.Ctx) error { return DeleteBatch(c, db) })
	api.Post("/batches/bulk-delete", func(c *fiber.Ctx) error { return BulkDeleteBatches(c, db) })
	api.Get("/batches/export/csv", func(c *fiber.Ctx) error { return ExportBatchCSV(c, db) })
	api.Get("/batches/export/document", func(c *fiber.Ctx) error { return ExportBatchDocument(c, db) })

	// Page routes
	app.Get("/assessments", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("assessments/index", fiber.Map{
			"Title":       "Skill Assessments",
			"CurrentPage": "assessments",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"Email":       user.Email,
			"user":        user,
		})
	})

	app.Get("/assessments/batch", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		caps := auth.GetCapabilities(c)
		return c.Render("assessments/batch", fiber.Map{
			"Title":       "Assessment Batch",
			"CurrentPage": "assessments",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"Email":       user.Email,
			"user":        user,
			"batchTitle":  c.Query("title"),
			"batchDate":   c.Query("date"),
			"CanEdit":     caps.CanEditAssessments,
			"CanDelete":   caps.CanDeleteAssessments,
		})
	})
}
