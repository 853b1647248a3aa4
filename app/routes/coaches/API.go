package coaches

import (
	"healy-academy/app/config"
	"healy-academy/app/database"
	"healy-academy/app/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetCoachesAPI(c *fiber.Ctx) error {
	coaches, err := database.GetAllCoaches(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch coaches"})
	}

	return c.JSON(fiber.Map{
		"coaches": coaches,
		"count":   len(coaches),
	})
}

func CreateCoachAPI(c *fiber.Ctx) error {
	type CreateCoachRequest struct {
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=8"`
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Phone     string `json:"phone"`
		Specialty string `json:"specialty"`
		HeadCoach bool   `json:"head_coach"`
	}

	var req CreateCoachRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	user := &models.User{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Specialty: req.Specialty,
	}

	if err := database.CreateCoach(config.GetDB(), user); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create coach"})
	}

	role := "coach"
	if req.HeadCoach {
		role = "head_coach"
	}
	if err := database.AssignUserRole(config.GetDB(), user.ID, role); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to assign role"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Coach created successfully",
		"coach":   user,
	})
}

func UpdateCoachAPI(c *fiber.Ctx) error {
	type UpdateCoachRequest struct {
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Phone     string `json:"phone"`
		Specialty string `json:"specialty"`
	}

	var req UpdateCoachRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	user := &models.User{
		ID:        c.Params("id"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Specialty: req.Specialty,
	}

	if err := database.UpdateCoach(config.GetDB(), user); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update coach"})
	}

	return c.JSON(fiber.Map{
		"message": "Coach updated successfully",
		"coach":   user,
	})
}

func DeleteCoachAPI(c *fiber.Ctx) error {
	if err := database.DeleteCoach(config.GetDB(), c.Params("id")); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Coach not found"})
	}

	return c.JSON(fiber.Map{"message": "Coach deleted successfully"})
}
