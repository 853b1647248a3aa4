package coaches

import (
	"healy-academy/app/models"
	"healy-academy/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupCoachesRoutes(app *fiber.App) {
	coaches := app.Group("/coaches")
	coaches.Use(auth.AuthMiddleware)
	coaches.Get("/", CoachesPage)

	api := app.Group("/api/coaches")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetCoachesAPI)
	api.Post("/", auth.RoleMiddleware("admin", "head_coach"), CreateCoachAPI)
	api.Put("/:id", auth.RoleMiddleware("admin", "head_coach"), UpdateCoachAPI)
	api.Delete("/:id", auth.RoleMiddleware("admin"), DeleteCoachAPI)
}

func CoachesPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.Render("coaches/index", fiber.Map{
		"Title":       "Coaches - Healy Academy",
		"CurrentPage": "coaches",
		"user":        user,
		"FirstName":   user.FirstName,
		"LastName":    user.LastName,
		"Email":       user.Email,
	})
}
