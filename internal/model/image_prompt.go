package model

import (
	"time"

	"gorm.io/gorm"
)

// ImagePrompt is a generation request for an illustrative image. Under the
// legacy schema it is the grouping key for attempts; newer attempts carry
// (question_id, placement_type) directly and may leave PromptID unset.
type ImagePrompt struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	QuestionID         *uint          `json:"question_id,omitempty" gorm:"index"`
	PlacementType      string         `json:"placement_type" gorm:"index"` // e.g. "question", "option_a"
	PromptText         string         `json:"prompt_text" gorm:"type:text;not null"`
	GenerationComplete bool           `json:"generation_complete" gorm:"default:false"`
	UserID             string         `json:"user_id" gorm:"type:uuid;index"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
