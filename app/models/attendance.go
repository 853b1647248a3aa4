package models

import "time"

// Attendance represents a student's attendance for a training day
type Attendance struct {
	ID        string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID string           `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Date      time.Time        `json:"date" gorm:"not null;index;type:date" validate:"required"`
	Status    AttendanceStatus `json:"status" gorm:"not null;type:varchar(10)" validate:"required,oneof=present absent late excused"`
	MarkedBy  *string          `json:"marked_by,omitempty" gorm:"type:uuid"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time       `json:"deleted_at,omitempty" gorm:"index"`
	Student   *Student         `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}
