package assessment

import (
	"encoding/csv"
	"fmt"
	"io"

	"healy-academy/app/models"
)

// TableRows serializes a batch into tabular form: a header row
// [Student, <skill names...>, Total] followed by one row per record in loaded
// order. Export uses stored scores throughout — absent records keep their
// true stored values rather than the zeroed-out display total. A record
// missing a schema skill contributes an empty cell.
func TableRows(records []*models.AssessmentRecord, schema SkillSchema) [][]string {
	header := make([]string, 0, len(schema.Names)+2)
	header = append(header, "Student")
	header = append(header, schema.Names...)
	header = append(header, "Total")

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, header)

	for _, record := range records {
		scores := make(map[string]float64, len(record.Skills))
		for _, skill := range record.Skills {
			scores[skill.Name] = skill.Score
		}

		row := make([]string, 0, len(header))
		row = append(row, studentName(record))
		for _, name := range schema.Names {
			if score, ok := scores[name]; ok {
				row = append(row, formatScore(score))
			} else {
				row = append(row, "")
			}
		}
		row = append(row, formatScore(record.TotalScore))
		rows = append(rows, row)
	}

	return rows
}

// WriteCSV writes the batch's tabular form to w.
func WriteCSV(w io.Writer, records []*models.AssessmentRecord, schema SkillSchema) error {
	writer := csv.NewWriter(w)
	for _, row := range TableRows(records, schema) {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func studentName(record *models.AssessmentRecord) string {
	if record.Student != nil {
		return record.Student.FullName()
	}
	return record.StudentID
}

func formatScore(score float64) string {
	if score == float64(int64(score)) {
		return fmt.Sprintf("%d", int64(score))
	}
	return fmt.Sprintf("%.2f", score)
}
