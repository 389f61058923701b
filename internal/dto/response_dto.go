package dto

import "time"

// APIResponse is the envelope returned by every endpoint.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

func Fail(message string) APIResponse {
	return APIResponse{Success: false, Error: message}
}

// SelectImageResponse confirms which attempt is now selected for the group.
type SelectImageResponse struct {
	Success         bool `json:"success"`
	SelectedImageID uint `json:"selected_image_id"`
}

// ImageAttemptResponse mirrors a stored attempt row.
type ImageAttemptResponse struct {
	ID               uint      `json:"id"`
	PromptID         *uint     `json:"prompt_id,omitempty"`
	QuestionID       *uint     `json:"question_id,omitempty"`
	PlacementType    *string   `json:"placement_type,omitempty"`
	ImageURL         string    `json:"image_url"`
	PromptUsed       string    `json:"prompt_used,omitempty"`
	AltText          string    `json:"alt_text,omitempty"`
	AttemptNumber    int       `json:"attempt_number"`
	IsSelected       bool      `json:"is_selected"`
	UserRating       *int      `json:"user_rating,omitempty"`
	AccuracyFeedback *string   `json:"accuracy_feedback,omitempty"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// GeneratedQuestionDTO is one question as returned by the LLM, before the
// teacher decides to save it.
type GeneratedQuestionDTO struct {
	QuestionText  string   `json:"question_text"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// GeneratedLessonPlanDTO is a lesson plan as returned by the LLM.
type GeneratedLessonPlanDTO struct {
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
	Objectives      string `json:"objectives"`
	Content         string `json:"content"`
}

// QuestionResponse is a library question.
type QuestionResponse struct {
	ID            uint      `json:"id"`
	Subject       string    `json:"subject"`
	GradeLevel    string    `json:"grade_level"`
	Topic         string    `json:"topic,omitempty"`
	Type          string    `json:"type"`
	QuestionText  string    `json:"question_text"`
	Options       *string   `json:"options,omitempty"`
	CorrectAnswer string    `json:"correct_answer,omitempty"`
	Explanation   string    `json:"explanation,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LessonPlanResponse is a library lesson plan.
type LessonPlanResponse struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Subject         string    `json:"subject"`
	GradeLevel      string    `json:"grade_level"`
	Topic           string    `json:"topic,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	Objectives      string    `json:"objectives,omitempty"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
