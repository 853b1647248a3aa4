package students

import (
	"encoding/csv"
	"io"
	"time"

	"healy-academy/app/config"
	"healy-academy/app/database"
	"healy-academy/app/models"
	"healy-academy/app/routes/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetStudentsAPI(c *fiber.Ctx) error {
	filters := database.StudentFilters{
		Search:  c.Query("search"),
		CoachID: c.Query("coach_id"),
		Gender:  c.Query("gender"),
		Status:  c.Query("status"),
		Limit:   c.QueryInt("limit", 0),
		Offset:  c.QueryInt("offset", 0),
	}

	students, total, err := database.GetStudents(config.GetDB(), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"students":    students,
		"count":       len(students),
		"total_count": total,
	})
}

func GetStudentByIDAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	if student == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}

	return c.JSON(fiber.Map{"student": student})
}

type studentRequest struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Gender       string `json:"gender" validate:"omitempty,oneof=male female"`
	DateOfBirth  string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	GuardianName string `json:"guardian_name"`
	Phone        string `json:"phone"`
	CoachID      string `json:"coach_id" validate:"omitempty,uuid"`
}

func (r *studentRequest) apply(student *models.Student) {
	student.FirstName = r.FirstName
	student.LastName = r.LastName
	student.Gender = models.Gender(r.Gender)
	student.GuardianName = r.GuardianName
	student.Phone = r.Phone
	if r.DateOfBirth != "" {
		if dob, err := time.Parse("2006-01-02", r.DateOfBirth); err == nil {
			student.DateOfBirth = &dob
		}
	}
	if r.CoachID != "" {
		student.CoachID = &r.CoachID
	} else {
		student.CoachID = nil
	}
}

func CreateStudentAPI(c *fiber.Ctx) error {
	caps := auth.GetCapabilities(c)
	if !caps.CanManageStudents {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	registration, err := database.GenerateStudentID(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate student ID"})
	}

	student := &models.Student{StudentID: registration, IsActive: true}
	req.apply(student)

	if err := database.CreateStudent(config.GetDB(), student); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create student"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Student created successfully",
		"student": student,
	})
}

// ImportStudentsAPI bulk-creates students from an uploaded CSV. Expected
// columns: first_name, last_name, gender, date_of_birth, guardian_name,
// phone. Bad rows are skipped and reported, not fatal.
func ImportStudentsAPI(c *fiber.Ctx) error {
	caps := auth.GetCapabilities(c)
	if !caps.CanManageStudents {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "CSV file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to open uploaded file"})
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to read CSV header"})
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	if _, ok := col["first_name"]; !ok {
		return c.Status(400).JSON(fiber.Map{"error": "CSV must have first_name and last_name columns"})
	}
	if _, ok := col["last_name"]; !ok {
		return c.Status(400).JSON(fiber.Map{"error": "CSV must have first_name and last_name columns"})
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	created := 0
	var skipped []int
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped = append(skipped, line)
			continue
		}

		req := studentRequest{
			FirstName:    field(row, "first_name"),
			LastName:     field(row, "last_name"),
			Gender:       field(row, "gender"),
			DateOfBirth:  field(row, "date_of_birth"),
			GuardianName: field(row, "guardian_name"),
			Phone:        field(row, "phone"),
		}
		if err := validate.Struct(req); err != nil {
			skipped = append(skipped, line)
			continue
		}

		registration, err := database.GenerateStudentID(config.GetDB())
		if err != nil {
			skipped = append(skipped, line)
			continue
		}

		student := &models.Student{StudentID: registration, IsActive: true}
		req.apply(student)

		if err := database.CreateStudent(config.GetDB(), student); err != nil {
			skipped = append(skipped, line)
			continue
		}
		created++
	}

	return c.JSON(fiber.Map{
		"message":       "Import complete",
		"created":       created,
		"skipped_lines": skipped,
	})
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	caps := auth.GetCapabilities(c)
	if !caps.CanManageStudents {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	if student == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}

	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	req.apply(student)

	if err := database.UpdateStudent(config.GetDB(), student); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update student"})
	}

	return c.JSON(fiber.Map{
		"message": "Student updated successfully",
		"student": student,
	})
}

func DeleteStudentAPI(c *fiber.Ctx) error {
	caps := auth.GetCapabilities(c)
	if !caps.CanManageStudents {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	if err := database.DeleteStudent(config.GetDB(), c.Params("id")); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}

	return c.JSON(fiber.Map{"message": "Student deleted successfully"})
}
