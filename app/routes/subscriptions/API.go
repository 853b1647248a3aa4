package subscriptions

import (
	"time"

	"healy-academy/app/config"
	"healy-academy/app/database"
	"healy-academy/app/models"
	"healy-academy/app/routes/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetPlansAPI(c *fiber.Ctx) error {
	plans, err := database.GetAllPlans(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch plans"})
	}

	return c.JSON(fiber.Map{
		"plans": plans,
		"count": len(plans),
	})
}

func CreatePlanAPI(c *fiber.Ctx) error {
	caps := auth.GetCapabilities(c)
	if !caps.CanManageBilling {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	type CreatePlanRequest struct {
		Name            string  `json:"name" validate:"required"`
		Price           float64 `json:"price" validate:"gte=0"`
		Currency        string  `json:"currency"`
		SessionsPerWeek int     `json:"sessions_per_week" validate:"gte=1"`
		DurationDays    int     `json:"duration_days" validate:"gt=0"`
	}

	var req CreatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}

	plan := &models.Plan{
		Name:            req.Name,
		Price:           req.Price,
		Currency:        req.Currency,
		SessionsPerWeek: req.SessionsPerWeek,
		DurationDays:    req.DurationDays,
		IsActive:        true,
	}

	if err := database.CreatePlan(config.GetDB(), plan); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create plan"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Plan created successfully",
		"plan":    plan,
	})
}

func GetStudentSubscriptionsAPI(c *fiber.Ctx) error {
	subs, err := database.GetStudentSubscriptions(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch subscriptions"})
	}

	return c.JSON(fiber.Map{
		"subscriptions": subs,
		"count":         len(subs),
	})
}

// CreateSubscriptionAPI starts a membership period. The end date is derived
// from the plan's duration when the request leaves it empty.
func CreateSubscriptionAPI(c *fiber.Ctx) error {
	caps := auth.GetCapabilities(c)
	if !caps.CanManageBilling {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	type CreateSubscriptionRequest struct {
		StudentID  string  `json:"student_id" validate:"required,uuid"`
		PlanID     string  `json:"plan_id" validate:"required,uuid"`
		StartDate  string  `json:"start_date" validate:"required,datetime=2006-01-02"`
		EndDate    string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
		AmountPaid float64 `json:"amount_paid" validate:"gte=0"`
	}

	var req CreateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)

	var end time.Time
	if req.EndDate != "" {
		end, _ = time.Parse("2006-01-02", req.EndDate)
	} else {
		plans, err := database.GetAllPlans(config.GetDB())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch plan"})
		}
		for _, plan := range plans {
			if plan.ID == req.PlanID {
				end = start.AddDate(0, 0, plan.DurationDays)
				break
			}
		}
		if end.IsZero() {
			return c.Status(400).JSON(fiber.Map{"error": "Unknown plan"})
		}
	}

	if end.Before(start) {
		return c.Status(400).JSON(fiber.Map{"error": "End date must not precede start date"})
	}

	sub := &models.Subscription{
		StudentID:  req.StudentID,
		PlanID:     req.PlanID,
		StartDate:  start,
		EndDate:    end,
		Status:     models.SubscriptionActive,
		AmountPaid: req.AmountPaid,
	}

	if err := database.CreateSubscription(config.GetDB(), sub); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create subscription"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":      "Subscription created successfully",
		"subscription": sub,
	})
}

func UpdateSubscriptionStatusAPI(c *fiber.Ctx) error {
	caps := auth.GetCapabilities(c)
	if !caps.CanManageBilling {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	type StatusRequest struct {
		Status string `json:"status" validate:"required,oneof=active paused expired cancelled"`
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	err := database.UpdateSubscriptionStatus(config.GetDB(), c.Params("id"), models.SubscriptionStatus(req.Status))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Subscription not found"})
	}

	return c.JSON(fiber.Map{"message": "Subscription updated"})
}
