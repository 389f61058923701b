package model

import (
	"time"

	"gorm.io/gorm"
)

// Question is a generated exam question saved to a teacher's library.
type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        string         `json:"user_id" gorm:"type:uuid;not null;index"`
	Subject       string         `json:"subject" gorm:"not null"`
	GradeLevel    string         `json:"grade_level" gorm:"not null"`
	Topic         string         `json:"topic"`
	Type          string         `json:"type" gorm:"not null"` // "multiple_choice", "short_answer", "true_false", "essay"
	QuestionText  string         `json:"question_text" gorm:"type:text;not null"`
	Options       *string        `json:"options,omitempty" gorm:"type:jsonb"` // JSON array for multiple_choice
	CorrectAnswer string         `json:"correct_answer" gorm:"type:text"`
	Explanation   string         `json:"explanation" gorm:"type:text"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
