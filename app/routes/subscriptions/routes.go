package subscriptions

import (
	"healy-academy/app/models"
	"healy-academy/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupSubscriptionsRoutes(app *fiber.App) {
	subscriptions := app.Group("/subscriptions")
	subscriptions.Use(auth.AuthMiddleware)
	subscriptions.Get("/", SubscriptionsPage)

	api := app.Group("/api/subscriptions")
	api.Use(auth.AuthMiddleware)
	api.Get("/plans", GetPlansAPI)
	api.Post("/plans", CreatePlanAPI)
	api.Get("/student/:id", GetStudentSubscriptionsAPI)
	api.Post("/", CreateSubscriptionAPI)
	api.Put("/:id/status", UpdateSubscriptionStatusAPI)
}

func SubscriptionsPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	caps := auth.GetCapabilities(c)
	return c.Render("subscriptions/index", fiber.Map{
		"Title":       "Subscriptions - Healy Academy",
		"CurrentPage": "subscriptions",
		"user":        user,
		"FirstName":   user.FirstName,
		"LastName":    user.LastName,
		"Email":       user.Email,
		"CanManage":   caps.CanManageBilling,
	})
}
