package assessments

import (
	"bytes"
	"database/sql"
	"fmt"
	"time"

	"healy-academy/app/assessment"
	"healy-academy/app/database"
	"healy-academy/app/export"
	"healy-academy/app/models"
	"healy-academy/app/routes/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func parseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}

// batchKeyFromQuery reads the (title, date) pair every batch endpoint is
// keyed by.
func batchKeyFromQuery(c *fiber.Ctx) (string, time.Time, error) {
	title := c.Query("title")
	if title == "" {
		return "", time.Time{}, fmt.Errorf("title is required")
	}
	date, err := parseDate(c.Query("date"))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("date must be YYYY-MM-DD")
	}
	return title, date, nil
}

// GetBatches returns all assessment batches as grouped summaries. An optional
// coach_id narrows the list to batches assessed by that coach; the filter is
// applied to the in-memory summaries, not re-queried.
func GetBatches(c *fiber.Ctx, db *sql.DB) error {
	store := database.NewAssessmentStore(db)

	records, err := store.QueryRecords(assessment.RecordFilter{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch assessments",
		})
	}

	summaries := assessment.GroupRecords(records)
	summaries = assessment.FilterByAssessingCoach(summaries, c.Query("coach_id"))

	return c.JSON(fiber.Map{"batches": summaries})
}

// batchRecordView is one member record as the batch detail screen needs it:
// the stored total plus the display total with the absent rule applied.
type batchRecordView struct {
	*models.AssessmentRecord
	DisplayTotal float64 `json:"display_total"`
	StudentName  string  `json:"student_name"`
}

// GetBatchDetail returns one batch's member records and the derived skill
// schema. A batch with no members is an empty state, not an error.
func GetBatchDetail(c *fiber.Ctx, db *sql.DB) error {
	title, date, err := batchKeyFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	detail, err := assessment.LoadBatch(database.NewAssessmentStore(db), title, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load batch",
		})
	}
	if detail == nil {
		return c.JSON(fiber.Map{"found": false, "records": []batchRecordView{}})
	}

	views := make([]batchRecordView, len(detail.Records))
	for i, record := range detail.Records {
		name := record.StudentID
		if record.Student != nil {
			name = record.Student.FullName()
		}
		views[i] = batchRecordView{
			AssessmentRecord: record,
			DisplayTotal:     record.DisplayTotal(),
			StudentName:      name,
		}
	}

	return c.JSON(fiber.Map{
		"found":   true,
		"title":   detail.Title,
		"date":    detail.Date.Format("2006-01-02"),
		"schema":  detail.Schema,
		"records": views,
	})
}

// CreateBatch creates one assessment record per student, all sharing the
// batch's title, date and skill list, with zero scores.
func CreateBatch(c *fiber.Ctx, db *sql.DB) error {
	caps := auth.GetCapabilities(c)
	if !caps.CanEditAssessments {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not permitted"})
	}

	var request struct {
		Title  string `json:"title" validate:"required"`
		Date   string `json:"date" validate:"required"`
		Skills []struct {
			Name     string  `json:"name" validate:"required"`
			MaxScore float64 `json:"max_score" validate:"gt=0"`
		} `json:"skills" validate:"required,min=1,dive"`
		Students []struct {
			StudentID string `json:"student_id" validate:"required,uuid"`
			Status    string `json:"status" validate:"omitempty,oneof=normal absent"`
		} `json:"students" validate:"required,min=1,dive"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	date, err := parseDate(request.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}

	seen := make(map[string]bool, len(request.Skills))
	skills := make([]models.SkillScore, 0, len(request.Skills))
	for _, s := range request.Skills {
		if seen[s.Name] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("duplicate skill %q", s.Name),
			})
		}
		seen[s.Name] = true
		skills = append(skills, models.SkillScore{Name: s.Name, MaxScore: s.MaxScore})
	}

	coachID := c.Locals("user_id").(string)
	created := 0
	for _, s := range request.Students {
		status := models.AssessmentStatus(s.Status)
		if status == "" {
			status = models.AssessmentNormal
		}
		record := &models.AssessmentRecord{
			StudentID: s.StudentID,
			CoachID:   coachID,
			Title:     request.Title,
			Date:      date,
			Status:    status,
			Skills:    append([]models.SkillScore(nil), skills...),
		}
		if err := database.CreateAssessmentRecord(db, record); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create assessment records",
				"created": created,
			})
		}
		created++
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Batch created",
		"created": created,
	})
}

// editOperation is one structural edit applied to a batch's working copy.
type editOperation struct {
	Op       string  `json:"op"` // set_score, add_skill, remove_skill
	RecordID string  `json:"record_id,omitempty"`
	Skill    string  `json:"skill,omitempty"`
	Value    string  `json:"value,omitempty"`
	MaxScore float64 `json:"max_score,omitempty"`
}

// EditBatch loads a batch into an edit session, applies the submitted
// operations, and commits the working copy. Validation failures reject the
// whole request before anything is persisted; commit failures return the
// exact committed/failed record split.
func EditBatch(c *fiber.Ctx, db *sql.DB) error {
	caps := auth.GetCapabilities(c)
	if !caps.CanEditAssessments {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not permitted"})
	}

	var request struct {
		Title      string          `json:"title"`
		Date       string          `json:"date"`
		Operations []editOperation `json:"operations"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if request.Title == "" || request.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title and date are required"})
	}
	date, err := parseDate(request.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}

	store := database.NewAssessmentStore(db)
	detail, err := assessment.LoadBatch(store, request.Title, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load batch"})
	}
	if detail == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Batch not found"})
	}

	session := assessment.NewEditSession(detail)
	for i, op := range request.Operations {
		var opErr error
		switch op.Op {
		case "set_score":
			opErr = session.SetScore(op.RecordID, op.Skill, op.Value)
		case "add_skill":
			opErr = session.AddSkill(op.Skill, op.MaxScore)
		case "remove_skill":
			opErr = session.RemoveSkill(op.Skill)
		default:
			opErr = fmt.Errorf("unknown operation %q", op.Op)
		}
		if opErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":     opErr.Error(),
				"operation": i,
			})
		}
	}

	outcome, err := session.Commit(store)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	if !outcome.Success() {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success":   false,
			"committed": outcome.Committed,
			"failed":    outcome.Failed,
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"committed": outcome.Committed,
	})
}

// DeleteBatch removes every record of one batch.
func DeleteBatch(c *fiber.Ctx, db *sql.DB) error {
	title, date, err := batchKeyFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	caps := auth.GetCapabilities(c)
	coordinator := &assessment.DeletionCoordinator{Store: database.NewAssessmentStore(db)}

	err = coordinator.DeleteBatch(assessment.BatchKey{Title: title, Date: date}, caps.CanDeleteAssessments)
	if err == assessment.ErrNotPermitted {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not permitted"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete batch"})
	}

	return c.JSON(fiber.Map{"message": "Batch deleted"})
}

// BulkDeleteBatches removes several batches, attempting every key and
// reporting each key's outcome.
func BulkDeleteBatches(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		Keys []struct {
			Title string `json:"title"`
			Date  string `json:"date"`
		} `json:"keys"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(request.Keys) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "keys is required"})
	}

	keys := make([]assessment.BatchKey, 0, len(request.Keys))
	for _, k := range request.Keys {
		date, err := parseDate(k.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("invalid date %q", k.Date),
			})
		}
		keys = append(keys, assessment.BatchKey{Title: k.Title, Date: date})
	}

	caps := auth.GetCapabilities(c)
	coordinator := &assessment.DeletionCoordinator{Store: database.NewAssessmentStore(db)}

	outcome, err := coordinator.DeleteBatches(keys, caps.CanDeleteAssessments)
	if err == assessment.ErrNotPermitted {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not permitted"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Bulk delete failed"})
	}

	status := fiber.StatusOK
	if !outcome.Success() {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{
		"success": outcome.Success(),
		"results": outcome.Results,
		"failed":  outcome.Failed,
	})
}

// ExportBatchCSV streams the batch's tabular form. Stored scores are used
// throughout, including for absent records.
func ExportBatchCSV(c *fiber.Ctx, db *sql.DB) error {
	title, date, err := batchKeyFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	detail, err := assessment.LoadBatch(database.NewAssessmentStore(db), title, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load batch"})
	}
	if detail == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Batch not found"})
	}

	var buf bytes.Buffer
	if err := assessment.WriteCSV(&buf, detail.Records, detail.Schema); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build export"})
	}

	filename := fmt.Sprintf("%s-%s.csv", title, date.Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(buf.Bytes())
}

// ExportBatchDocument renders the batch table to an image and wraps it in a
// single-page document sized to the image, landscape when wider than tall.
func ExportBatchDocument(c *fiber.Ctx, db *sql.DB) error {
	title, date, err := batchKeyFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	detail, err := assessment.LoadBatch(database.NewAssessmentStore(db), title, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load batch"})
	}
	if detail == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Batch not found"})
	}

	renderer, err := export.NewTableRenderer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Export renderer unavailable"})
	}

	img, err := renderer.Render(assessment.TableRows(detail.Records, detail.Schema))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to render export"})
	}

	doc := export.NewDocument(img)
	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to encode export"})
	}

	filename := fmt.Sprintf("%s-%s.png", title, date.Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Set("X-Document-Orientation", string(doc.Orientation))
	return c.Send(buf.Bytes())
}
