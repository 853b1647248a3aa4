package models

import "time"

// Student represents an enrolled academy member.
// CoachID points at the coach permanently responsible for the student,
// independent of who assesses them on any given occasion.
type Student struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID    string     `json:"student_id" gorm:"uniqueIndex;not null"` // human-readable registration number
	FirstName    string     `json:"first_name" gorm:"not null" validate:"required"`
	LastName     string     `json:"last_name" gorm:"not null" validate:"required"`
	Gender       Gender     `json:"gender" gorm:"type:varchar(10)" validate:"omitempty,oneof=male female"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty" gorm:"type:date"`
	GuardianName string     `json:"guardian_name,omitempty"`
	Phone        string     `json:"phone,omitempty" gorm:"type:varchar(20)"`
	CoachID      *string    `json:"coach_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Coach        *User      `json:"coach,omitempty" gorm:"foreignKey:CoachID;references:ID"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
