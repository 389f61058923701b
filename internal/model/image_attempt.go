package model

import (
	"time"
)

// Accuracy feedback values a teacher can attach to an attempt.
const (
	AccuracyCorrect          = "correct"
	AccuracyPartiallyCorrect = "partially_correct"
	AccuracyIncorrect        = "incorrect"
)

// ImageAttempt is one generated-or-uploaded image for a placement. Attempts in
// the same group share either a PromptID (legacy schema) or a direct
// (QuestionID, PlacementType) pair (new schema). At most one attempt per group
// is selected for display at a time; attempts are deselected, never deleted,
// in normal operation.
type ImageAttempt struct {
	ID               uint         `gorm:"primarykey" json:"id"`
	PromptID         *uint        `json:"prompt_id,omitempty" gorm:"index"`
	Prompt           *ImagePrompt `json:"-" gorm:"foreignKey:PromptID"`
	QuestionID       *uint        `json:"question_id,omitempty" gorm:"index:idx_image_attempts_group"`
	PlacementType    *string      `json:"placement_type,omitempty" gorm:"index:idx_image_attempts_group"`
	ImageURL         string       `json:"image_url" gorm:"type:text;not null"`
	PromptUsed       string       `json:"prompt_used" gorm:"type:text"`
	AltText          string       `json:"alt_text" gorm:"type:text"`
	AttemptNumber    int          `json:"attempt_number" gorm:"not null"`
	IsSelected       bool         `json:"is_selected" gorm:"default:false"`
	UserRating       *int         `json:"user_rating,omitempty"`
	AccuracyFeedback *string      `json:"accuracy_feedback,omitempty"`
	GeneratedAt      time.Time    `json:"generated_at" gorm:"autoCreateTime"`
	UserID           string       `json:"user_id" gorm:"type:uuid;index"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}
