package assessment_test

import (
	"fmt"
	"time"

	"healy-academy/app/assessment"
	"healy-academy/app/models"
)

// fakeStore is an in-memory RecordStore for engine tests.
type fakeStore struct {
	records []*models.AssessmentRecord

	// updateErrs fails UpdateRecordSkills for the given record ids.
	updateErrs map[string]error
	// deleteErrs fails DeleteRecords for the given batch titles.
	deleteErrs map[string]error

	updated []string
	deleted []string
}

func (f *fakeStore) QueryRecords(filter assessment.RecordFilter) ([]*models.AssessmentRecord, error) {
	var out []*models.AssessmentRecord
	for _, r := range f.records {
		if filter.Title != nil && r.Title != *filter.Title {
			continue
		}
		if filter.Date != nil && !r.Date.Equal(*filter.Date) {
			continue
		}
		if filter.AssessingCoachID != nil && r.CoachID != *filter.AssessingCoachID {
			continue
		}
		if filter.StudentID != nil && r.StudentID != *filter.StudentID {
			continue
		}
		out = append(out, r.Clone())
	}
	return out, nil
}

func (f *fakeStore) UpdateRecordSkills(id string, skills []models.SkillScore, totalScore float64) error {
	if err, ok := f.updateErrs[id]; ok {
		return err
	}
	for _, r := range f.records {
		if r.ID == id {
			r.Skills = make([]models.SkillScore, len(skills))
			copy(r.Skills, skills)
			r.TotalScore = totalScore
			f.updated = append(f.updated, id)
			return nil
		}
	}
	return fmt.Errorf("record %s not found", id)
}

func (f *fakeStore) DeleteRecords(filter assessment.RecordFilter) error {
	if filter.Title != nil {
		if err, ok := f.deleteErrs[*filter.Title]; ok {
			return err
		}
	}
	var kept []*models.AssessmentRecord
	for _, r := range f.records {
		if filter.Title != nil && r.Title == *filter.Title &&
			(filter.Date == nil || r.Date.Equal(*filter.Date)) {
			f.deleted = append(f.deleted, r.ID)
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return nil
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func skill(name string, score, max float64) models.SkillScore {
	return models.SkillScore{Name: name, Score: score, MaxScore: max}
}

func record(id, studentName, title, date string, status models.AssessmentStatus, skills ...models.SkillScore) *models.AssessmentRecord {
	r := &models.AssessmentRecord{
		ID:        id,
		StudentID: "student-" + id,
		CoachID:   "coach-1",
		Title:     title,
		Date:      day(date),
		Status:    status,
		Skills:    skills,
		Student: &models.Student{
			ID:        "student-" + id,
			FirstName: studentName,
			LastName:  "Test",
		},
		Coach: &models.User{ID: "coach-1", FirstName: "Dana", LastName: "Reyes"},
	}
	r.TotalScore = r.SumSkills()
	return r
}
