package attendance

import (
	"time"

	"healy-academy/app/config"
	"healy-academy/app/database"
	"healy-academy/app/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// GetAttendanceAPI returns the attendance sheet for one day (?date=YYYY-MM-DD,
// defaulting to today).
func GetAttendanceAPI(c *fiber.Ctx) error {
	day := time.Now().Truncate(24 * time.Hour)
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
		}
		day = parsed
	}

	records, err := database.GetAttendanceByDate(config.GetDB(), day)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(fiber.Map{
		"date":       day.Format("2006-01-02"),
		"attendance": records,
		"count":      len(records),
	})
}

func GetStudentAttendanceAPI(c *fiber.Ctx) error {
	records, err := database.GetStudentAttendance(config.GetDB(), c.Params("id"), c.QueryInt("limit", 30))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(fiber.Map{
		"attendance": records,
		"count":      len(records),
	})
}

// MarkAttendanceAPI records one or more attendance marks for a day. Marks for
// a (student, date) pair that already exists are overwritten.
func MarkAttendanceAPI(c *fiber.Ctx) error {
	type Mark struct {
		StudentID string `json:"student_id" validate:"required,uuid"`
		Status    string `json:"status" validate:"required,oneof=present absent late excused"`
		Notes     string `json:"notes"`
	}
	type MarkRequest struct {
		Date  string `json:"date" validate:"required,datetime=2006-01-02"`
		Marks []Mark `json:"marks" validate:"required,min=1,dive"`
	}

	var req MarkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	markedBy := c.Locals("user_id").(string)

	marked := 0
	for _, mark := range req.Marks {
		record := &models.Attendance{
			StudentID: mark.StudentID,
			Date:      date,
			Status:    models.AttendanceStatus(mark.Status),
			MarkedBy:  &markedBy,
			Notes:     mark.Notes,
		}
		if err := database.MarkAttendance(config.GetDB(), record); err != nil {
			return c.Status(500).JSON(fiber.Map{
				"error":  "Failed to mark attendance",
				"marked": marked,
			})
		}
		marked++
	}

	return c.JSON(fiber.Map{
		"message": "Attendance marked",
		"marked":  marked,
	})
}
