package dto

// GenerateQuestionsRequest asks Gemini for a batch of exam questions.
type GenerateQuestionsRequest struct {
	Subject         string `json:"subject" binding:"required"`
	GradeLevel      string `json:"grade_level" binding:"required"`
	Topic           string `json:"topic" binding:"required"`
	Type            string `json:"type" binding:"required,oneof=multiple_choice short_answer true_false essay"`
	Count           int    `json:"count" binding:"required,min=1,max=10"`
	AdditionalNotes string `json:"additional_notes"`
}

// GenerateLessonPlanRequest asks Gemini for a lesson plan.
type GenerateLessonPlanRequest struct {
	Subject         string `json:"subject" binding:"required"`
	GradeLevel      string `json:"grade_level" binding:"required"`
	Topic           string `json:"topic" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=10,max=240"`
	Objectives      string `json:"objectives"`
}

// SaveQuestionRequest stores a question in the caller's library.
type SaveQuestionRequest struct {
	Subject       string  `json:"subject" binding:"required"`
	GradeLevel    string  `json:"grade_level" binding:"required"`
	Topic         string  `json:"topic"`
	Type          string  `json:"type" binding:"required,oneof=multiple_choice short_answer true_false essay"`
	QuestionText  string  `json:"question_text" binding:"required"`
	Options       *string `json:"options"` // JSON array for multiple_choice
	CorrectAnswer string  `json:"correct_answer"`
	Explanation   string  `json:"explanation"`
}

// SaveLessonPlanRequest stores a lesson plan in the caller's library.
type SaveLessonPlanRequest struct {
	Title           string `json:"title" binding:"required"`
	Subject         string `json:"subject" binding:"required"`
	GradeLevel      string `json:"grade_level" binding:"required"`
	Topic           string `json:"topic"`
	DurationMinutes int    `json:"duration_minutes"`
	Objectives      string `json:"objectives"`
	Content         string `json:"content" binding:"required"`
}

// GenerateImageRequest creates an image prompt, generates an image for it and
// records the result as a new (selected) attempt.
type GenerateImageRequest struct {
	QuestionID    *uint  `json:"question_id"`
	PlacementType string `json:"placement_type" binding:"required"`
	Description   string `json:"description" binding:"required"`
}

// RecordAttemptRequest records an externally produced image as a new attempt.
// The group is addressed by prompt_id (legacy) or (question_id, placement_type).
type RecordAttemptRequest struct {
	PromptID            *uint   `json:"prompt_id"`
	QuestionID          *uint   `json:"question_id"`
	PlacementType       *string `json:"placement_type"`
	ImageURL            string  `json:"image_url" binding:"required"`
	PromptUsed          string  `json:"prompt_used"`
	OriginalDescription string  `json:"original_description"`
}

// SelectImageRequest marks one attempt as the group's selected image.
type SelectImageRequest struct {
	ImageID       uint    `json:"image_id" binding:"required"`
	PromptID      *uint   `json:"prompt_id"`
	QuestionID    *uint   `json:"question_id"`
	PlacementType *string `json:"placement_type"`
}

// DeselectImagesRequest clears the selection for a whole group.
type DeselectImagesRequest struct {
	PromptID      *uint   `json:"prompt_id"`
	QuestionID    *uint   `json:"question_id"`
	PlacementType *string `json:"placement_type"`
}

// RateImageRequest attaches a rating and optional accuracy feedback to an
// attempt.
type RateImageRequest struct {
	ImageID          uint    `json:"image_id" binding:"required"`
	Rating           int     `json:"rating" binding:"required,min=1,max=5"`
	AccuracyFeedback *string `json:"accuracy_feedback" binding:"omitempty,oneof=correct partially_correct incorrect"`
}
