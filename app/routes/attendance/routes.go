package attendance

import (
	"healy-academy/app/models"
	"healy-academy/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAttendanceRoutes(app *fiber.App) {
	attendance := app.Group("/attendance")
	attendance.Use(auth.AuthMiddleware)
	attendance.Get("/", AttendancePage)

	api := app.Group("/api/attendance")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetAttendanceAPI)
	api.Get("/student/:id", GetStudentAttendanceAPI)
	api.Post("/", MarkAttendanceAPI)
}

func AttendancePage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.Render("attendance/index", fiber.Map{
		"Title":       "Attendance - Healy Academy",
		"CurrentPage": "attendance",
		"user":        user,
		"FirstName":   user.FirstName,
		"LastName":    user.LastName,
		"Email":       user.Email,
	})
}
