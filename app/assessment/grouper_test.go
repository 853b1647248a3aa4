package assessment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healy-academy/app/assessment"
	"healy-academy/app/models"
)

func TestGroupRecords_GroupsByTitleAndDate(t *testing.T) {
	records := []*models.AssessmentRecord{
		record("a", "Amira", "Spring Eval", "2024-03-01", models.AssessmentNormal, skill("tumbling", 8, 10)),
		record("b", "Ben", "Spring Eval", "2024-03-01", models.AssessmentNormal, skill("tumbling", 6, 10)),
		record("c", "Cleo", "Winter Eval", "2024-01-15", models.AssessmentNormal, skill("tumbling", 5, 10)),
	}

	summaries := assessment.GroupRecords(records)
	require.Len(t, summaries, 2)

	spring := summaries[0] // newest first
	assert.Equal(t, "Spring Eval-2024-03-01", spring.Key)
	assert.Equal(t, 2, spring.RecordCount)
	assert.Equal(t, 14.0, spring.TotalScoreSum)
	assert.Equal(t, 7.0, spring.AverageScore)
	assert.Equal(t, []string{"a", "b"}, spring.RecordIDs)
	assert.Equal(t, "Dana Reyes", spring.AssessingCoach)

	winter := summaries[1]
	assert.Equal(t, 1, winter.RecordCount)
	assert.Equal(t, 5.0, winter.TotalScoreSum)
}

func TestGroupRecords_OrderIndependent(t *testing.T) {
	a := record("a", "Amira", "Spring Eval", "2024-03-01", models.AssessmentNormal, skill("tumbling", 8, 10))
	b := record("b", "Ben", "Spring Eval", "2024-03-01", models.AssessmentNormal, skill("tumbling", 6, 10))
	c := record("c", "Cleo", "Spring Eval", "2024-03-01", models.AssessmentNormal, skill("tumbling", 4, 10))

	forward := assessment.GroupRecords([]*models.AssessmentRecord{a, b, c})
	reversed := assessment.GroupRecords([]*models.AssessmentRecord{c, b, a})

	require.Len(t, forward, 1)
	require.Len(t, reversed, 1)
	// Records are sorted by id before grouping, so first-record derived
	// fields are deterministic regardless of input order.
	assert.Equal(t, forward[0], reversed[0])
	assert.Equal(t, []string{"a", "b", "c"}, reversed[0].RecordIDs)
}

func TestGroupRecords_AbsentExcludedFromAggregates(t *testing.T) {
	records := []*models.AssessmentRecord{
		record("a", "Amira", "Spring Eval", "2024-03-01", models.AssessmentNormal, skill("tumbling", 8, 10)),
		record("b", "Ben", "Spring Eval", "2024-03-01", models.AssessmentAbsent, skill("tumbling", 6, 10)),
	}

	summaries := assessment.GroupRecords(records)
	require.Len(t, summaries, 1)

	// Absent members still count toward membership but not toward scores.
	assert.Equal(t, 2, summaries[0].RecordCount)
	assert.Equal(t, 8.0, summaries[0].TotalScoreSum)
	assert.Equal(t, 8.0, summaries[0].AverageScore)
}

func TestGroupRecords_ResponsibleCoachRetained(t *testing.T) {
	a := record("a", "Amira", "Spring Eval", "2024-03-01", models.AssessmentNormal, skill("tumbling", 8, 10))
	a.Student.Coach = &models.User{ID: "coach-2", FirstName: "Lena", LastName: "Okafor"}

	summaries := assessment.GroupRecords([]*models.AssessmentRecord{a})
	require.Len(t, summaries, 1)
	assert.Equal(t, "Dana Reyes", summaries[0].AssessingCoach)
	assert.Equal(t, "Lena Okafor", summaries[0].ResponsibleCoach)
}

func TestFilterByAssessingCoach(t *testing.T) {
	a := record("a", "Amira", "Spring Eval", "2024-03-01", models.AssessmentNormal, skill("tumbling", 8, 10))
	b := record("b", "Ben", "Winter Eval", "2024-01-15", models.AssessmentNormal, skill("tumbling", 6, 10))
	b.CoachID = "coach-9"

	summaries := assessment.GroupRecords([]*models.AssessmentRecord{a, b})
	require.Len(t, summaries, 2)

	filtered := assessment.FilterByAssessingCoach(summaries, "coach-9")
	require.Len(t, filtered, 1)
	assert.Equal(t, "Winter Eval", filtered[0].Title)

	// Empty coach id means no filtering.
	assert.Len(t, assessment.FilterByAssessingCoach(summaries, ""), 2)
}
