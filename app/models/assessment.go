package models

import "time"

// SkillScore is one evaluated skill inside an assessment record.
// Name is unique within a record and is the join key across the records of a
// batch; order is display order.
type SkillScore struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
}

// AssessmentRecord stores one student's performance on one assessment occasion.
// Records sharing the same (title, date) pair form a batch; the batch has no
// stored identity of its own.
type AssessmentRecord struct {
	ID         string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID  string           `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CoachID    string           `json:"coach_id" gorm:"not null;index;type:uuid" validate:"required,uuid"` // assessing coach
	Title      string           `json:"title" gorm:"not null;index" validate:"required"`
	Date       time.Time        `json:"date" gorm:"not null;index;type:date" validate:"required"`
	Status     AssessmentStatus `json:"status" gorm:"not null;type:varchar(10);default:'normal'" validate:"required,oneof=normal absent"`
	Skills     []SkillScore     `json:"skills" gorm:"type:jsonb"`
	TotalScore float64          `json:"total_score" gorm:"not null;type:decimal(7,2)"`
	CreatedAt  time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt  *time.Time       `json:"deleted_at,omitempty" gorm:"index"`
	Student    *Student         `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Coach      *User            `json:"coach,omitempty" gorm:"foreignKey:CoachID;references:ID"`
}

// SumSkills returns the sum of the record's skill scores. TotalScore must
// equal this value after every mutation.
func (r *AssessmentRecord) SumSkills() float64 {
	var total float64
	for _, s := range r.Skills {
		total += s.Score
	}
	return total
}

// DisplayTotal returns the total shown on screen: absent records always
// display zero regardless of the stored value.
func (r *AssessmentRecord) DisplayTotal() float64 {
	if r.Status == AssessmentAbsent {
		return 0
	}
	return r.TotalScore
}

// Clone returns a deep copy of the record, including its skills slice.
// Relation pointers are shared; the engine never mutates them.
func (r *AssessmentRecord) Clone() *AssessmentRecord {
	cp := *r
	cp.Skills = make([]SkillScore, len(r.Skills))
	copy(cp.Skills, r.Skills)
	return &cp
}
