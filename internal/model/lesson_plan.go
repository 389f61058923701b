package model

import (
	"time"

	"gorm.io/gorm"
)

// LessonPlan is a generated lesson plan saved to a teacher's library.
type LessonPlan struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          string         `json:"user_id" gorm:"type:uuid;not null;index"`
	Title           string         `json:"title" gorm:"not null"`
	Subject         string         `json:"subject" gorm:"not null"`
	GradeLevel      string         `json:"grade_level" gorm:"not null"`
	Topic           string         `json:"topic"`
	DurationMinutes int            `json:"duration_minutes"`
	Objectives      string         `json:"objectives" gorm:"type:text"`
	Content         string         `json:"content" gorm:"type:text;not null"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
