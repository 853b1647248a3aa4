package assessment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healy-academy/app/assessment"
	"healy-academy/app/models"
)

func TestLoadBatch_EmptyResultIsNotFound(t *testing.T) {
	store := &fakeStore{}

	detail, err := assessment.LoadBatch(store, "Nonexistent", day("2024-03-01"))
	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestLoadBatch_DerivesSchemaFromMembers(t *testing.T) {
	store := &fakeStore{records: []*models.AssessmentRecord{
		record("a", "Amira", "Spring Eval", "2024-03-01", models.AssessmentNormal,
			skill("tumbling", 8, 10), skill("vault", 4, 5)),
		record("b", "Ben", "Spring Eval", "2024-03-01", models.AssessmentNormal,
			skill("tumbling", 6, 10), skill("vault", 3, 5)),
	}}

	detail, err := assessment.LoadBatch(store, "Spring Eval", day("2024-03-01"))
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.Equal(t, []string{"tumbling", "vault"}, detail.Schema.Names)
	assert.Equal(t, 10.0, detail.Schema.MaxScores["tumbling"])
	assert.Equal(t, 5.0, detail.Schema.MaxScores["vault"])
	assert.Len(t, detail.Records, 2)
}

func TestLoadBatch_DivergentMembersWidenSchema(t *testing.T) {
	// Member b carries a skill the first record lacks; the schema is the
	// union, first record's order first.
	store := &fakeStore{records: []*models.AssessmentRecord{
		record("a", "Amira", "Spring Eval", "2024-03-01", models.AssessmentNormal,
			skill("tumbling", 8, 10)),
		record("b", "Ben", "Spring Eval", "2024-03-01", models.AssessmentNormal,
			skill("tumbling", 6, 10), skill("beam", 3, 5)),
	}}

	detail, err := assessment.LoadBatch(store, "Spring Eval", day("2024-03-01"))
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.Equal(t, []string{"tumbling", "beam"}, detail.Schema.Names)
	assert.Equal(t, 5.0, detail.Schema.MaxScores["beam"])
}

func TestDeriveSchema_FirstOccurrenceWinsMaxScore(t *testing.T) {
	records := []*models.AssessmentRecord{
		record("a", "Amira", "Spring Eval", "2024-03-01", models.AssessmentNormal, skill("vault", 4, 5)),
		record("b", "Ben", "Spring Eval", "2024-03-01", models.AssessmentNormal, skill("vault", 4, 10)),
	}

	schema := assessment.DeriveSchema(records)
	assert.Equal(t, 5.0, schema.MaxScores["vault"])
}
