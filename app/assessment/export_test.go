package assessment_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healy-academy/app/assessment"
	"healy-academy/app/models"
)

func TestTableRows_HeaderAndOrder(t *testing.T) {
	_, detail := springBatch(t)

	rows := assessment.TableRows(detail.Records, detail.Schema)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Student", "tumbling", "vault", "Total"}, rows[0])
	assert.Equal(t, []string{"Amira Test", "8", "4", "12"}, rows[1])
	assert.Equal(t, []string{"Ben Test", "6", "3", "9"}, rows[2])
}

func TestTableRows_AbsentKeepsStoredValues(t *testing.T) {
	// Export uses stored scores; the zero-out-if-absent rule is a display
	// concern only.
	absent := record("a", "Amira", "Spring Eval", "2024-03-01", models.AssessmentAbsent,
		skill("tumbling", 8, 10))
	require.Equal(t, 0.0, absent.DisplayTotal())

	rows := assessment.TableRows(
		[]*models.AssessmentRecord{absent},
		assessment.DeriveSchema([]*models.AssessmentRecord{absent}),
	)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Amira Test", "8", "8"}, rows[1])
}

func TestTableRows_MissingSkillLeavesEmptyCell(t *testing.T) {
	records := []*models.AssessmentRecord{
		record("a", "Amira", "Spring Eval", "2024-03-01", models.AssessmentNormal,
			skill("tumbling", 8, 10)),
		record("b", "Ben", "Spring Eval", "2024-03-01", models.AssessmentNormal,
			skill("tumbling", 6, 10), skill("beam", 3, 5)),
	}
	schema := assessment.DeriveSchema(records)

	rows := assessment.TableRows(records, schema)
	assert.Equal(t, []string{"Amira Test", "8", "", "8"}, rows[1])
	assert.Equal(t, []string{"Ben Test", "6", "3", "9"}, rows[2])
}

func TestWriteCSV(t *testing.T) {
	_, detail := springBatch(t)

	var buf bytes.Buffer
	require.NoError(t, assessment.WriteCSV(&buf, detail.Records, detail.Schema))

	assert.Equal(t,
		"Student,tumbling,vault,Total\nAmira Test,8,4,12\nBen Test,6,3,9\n",
		buf.String())
}

func TestFormatScoreFractions(t *testing.T) {
	rec := record("a", "Amira", "Spring Eval", "2024-03-01", models.AssessmentNormal,
		skill("tumbling", 7.5, 10))

	rows := assessment.TableRows([]*models.AssessmentRecord{rec},
		assessment.DeriveSchema([]*models.AssessmentRecord{rec}))
	assert.Equal(t, []string{"Amira Test", "7.50", "7.50"}, rows[1])
}
