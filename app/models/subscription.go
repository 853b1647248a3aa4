package models

import "time"

// Plan represents a membership plan students subscribe to.
type Plan struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name           string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Price          float64    `json:"price" gorm:"not null;type:numeric" validate:"gte=0"`
	Currency       string     `json:"currency" gorm:"not null;default:'USD'"`
	SessionsPerWeek int       `json:"sessions_per_week" gorm:"default:2"`
	DurationDays   int        `json:"duration_days" gorm:"not null;default:30" validate:"gt=0"`
	IsActive       bool       `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time  `json:"created_at" gorm:"default:now()"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"default:now()"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

// Subscription represents an actual membership period for a student.
type Subscription struct {
	ID        string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	StudentID string             `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	PlanID    string             `json:"plan_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	StartDate time.Time          `json:"start_date" gorm:"not null;type:date" validate:"required"`
	EndDate   time.Time          `json:"end_date" gorm:"not null;type:date" validate:"required"`
	Status    SubscriptionStatus `json:"status" gorm:"not null;type:varchar(12);default:'active'"`
	AmountPaid float64           `json:"amount_paid" gorm:"type:numeric;default:0"`
	CreatedAt time.Time          `json:"created_at" gorm:"default:now()"`
	UpdatedAt time.Time          `json:"updated_at" gorm:"default:now()"`
	DeletedAt *time.Time         `json:"deleted_at,omitempty" gorm:"index"`
	Student   *Student           `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Plan      *Plan              `json:"plan,omitempty" gorm:"foreignKey:PlanID;references:ID"`
}

// IsCurrent reports whether the subscription covers the given day.
func (s *Subscription) IsCurrent(day time.Time) bool {
	return s.Status == SubscriptionActive && !day.Before(s.StartDate) && !day.After(s.EndDate)
}
