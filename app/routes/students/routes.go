package students

import (
	"healy-academy/app/config"
	"healy-academy/app/database"
	"healy-academy/app/models"
	"healy-academy/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupStudentsRoutes(app *fiber.App) {
	students := app.Group("/students")
	students.Use(auth.AuthMiddleware)

	students.Get("/", StudentsPage)
	students.Get("/:id", StudentViewPage)

	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetStudentsAPI)
	api.Get("/:id", GetStudentByIDAPI)
	api.Post("/", CreateStudentAPI)
	api.Post("/import", ImportStudentsAPI)
	api.Put("/:id", UpdateStudentAPI)
	api.Delete("/:id", DeleteStudentAPI)
}

func StudentsPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	caps := auth.GetCapabilities(c)
	return c.Render("students/index", fiber.Map{
		"Title":       "Students - Healy Academy",
		"CurrentPage": "students",
		"user":        user,
		"FirstName":   user.FirstName,
		"LastName":    user.LastName,
		"Email":       user.Email,
		"CanManage":   caps.CanManageStudents,
	})
}

func StudentViewPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	studentID := c.Params("id")

	student, _ := database.GetStudentByID(config.GetDB(), studentID)

	title := "Student Profile - Healy Academy"
	if student != nil {
		title = student.FullName() + " - Profile"
	}

	return c.Render("students/view", fiber.Map{
		"Title":       title,
		"CurrentPage": "students",
		"studentID":   studentID,
		"student":     student,
		"user":        user,
		"FirstName":   user.FirstName,
		"LastName":    user.LastName,
		"Email":       user.Email,
	})
}
