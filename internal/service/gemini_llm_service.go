package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lnthach/Margay/config"
	"github.com/lnthach/Margay/internal/apperr"
	"github.com/lnthach/Margay/internal/dto"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GeminiLLMService generates exam questions and lesson plans from a
// subject/grade/topic specification.
type GeminiLLMService interface {
	GenerateQuestions(ctx context.Context, req dto.GenerateQuestionsRequest) ([]dto.GeneratedQuestionDTO, error)
	GenerateLessonPlan(ctx context.Context, req dto.GenerateLessonPlanRequest) (*dto.GeneratedLessonPlanDTO, error)
}

type geminiLLMService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &geminiLLMService{client: model, cfg: cfg}, nil
}

func (s *geminiLLMService) GenerateQuestions(ctx context.Context, req dto.GenerateQuestionsRequest) ([]dto.GeneratedQuestionDTO, error) {
	if s.client == nil {
		return nil, apperr.Store(nil, "AI service is unavailable (client not initialized)")
	}

	prompt := buildQuestionPrompt(req)
	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Str("subject", req.Subject).Str("topic", req.Topic).Msg("Gemini API error during question generation")
		return nil, apperr.Store(err, "question generation failed")
	}

	raw := extractText(resp)
	if raw == "" {
		return nil, apperr.Store(nil, "Gemini returned no text content")
	}

	questions, err := parseGeneratedQuestions(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse generated questions")
		return nil, apperr.Store(err, "could not parse AI response")
	}
	return questions, nil
}

func (s *geminiLLMService) GenerateLessonPlan(ctx context.Context, req dto.GenerateLessonPlanRequest) (*dto.GeneratedLessonPlanDTO, error) {
	if s.client == nil {
		return nil, apperr.Store(nil, "AI service is unavailable (client not initialized)")
	}

	prompt := buildLessonPlanPrompt(req)
	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Str("subject", req.Subject).Str("topic", req.Topic).Msg("Gemini API error during lesson plan generation")
		return nil, apperr.Store(err, "lesson plan generation failed")
	}

	raw := extractText(resp)
	if raw == "" {
		return nil, apperr.Store(nil, "Gemini returned no text content")
	}

	plan, err := parseGeneratedLessonPlan(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse generated lesson plan")
		return nil, apperr.Store(err, "could not parse AI response")
	}
	return plan, nil
}

func buildQuestionPrompt(req dto.GenerateQuestionsRequest) string {
	var b strings.Builder
	b.WriteString("You are an experienced teacher writing exam questions.\n")
	b.WriteString(fmt.Sprintf("Write %d %s question(s) for %s students on the subject %q, topic %q.\n", req.Count, strings.ReplaceAll(req.Type, "_", " "), req.GradeLevel, req.Subject, req.Topic))
	if req.AdditionalNotes != "" {
		b.WriteString("Additional instructions: ")
		b.WriteString(req.AdditionalNotes)
		b.WriteString("\n")
	}
	b.WriteString("\nRespond with ONLY a JSON array, no prose, no markdown fences. Each element:\n")
	b.WriteString(`{"question_text": "...", "type": "` + req.Type + `", "options": ["..."], "correct_answer": "...", "explanation": "..."}` + "\n")
	if req.Type == "multiple_choice" {
		b.WriteString("Each question must have exactly 4 options and correct_answer must match one of them verbatim.\n")
	} else {
		b.WriteString("Omit the options field for this question type.\n")
	}
	return b.String()
}

func buildLessonPlanPrompt(req dto.GenerateLessonPlanRequest) string {
	var b strings.Builder
	b.WriteString("You are an experienced teacher writing a lesson plan.\n")
	b.WriteString(fmt.Sprintf("Write a %d-minute lesson plan for %s students on the subject %q, topic %q.\n", req.DurationMinutes, req.GradeLevel, req.Subject, req.Topic))
	if req.Objectives != "" {
		b.WriteString("Learning objectives to cover: ")
		b.WriteString(req.Objectives)
		b.WriteString("\n")
	}
	b.WriteString("\nRespond with ONLY a JSON object, no prose, no markdown fences:\n")
	b.WriteString(`{"title": "...", "duration_minutes": ` + fmt.Sprintf("%d", req.DurationMinutes) + `, "objectives": "...", "content": "..."}` + "\n")
	b.WriteString("The content field holds the full plan (warm-up, instruction, activities, assessment, closure) as markdown text.\n")
	return b.String()
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

// stripCodeFence removes a surrounding markdown code fence, which Gemini adds
// despite instructions often enough to handle here.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func parseGeneratedQuestions(raw string) ([]dto.GeneratedQuestionDTO, error) {
	cleaned := stripCodeFence(raw)
	var questions []dto.GeneratedQuestionDTO
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, fmt.Errorf("response is not a JSON question array: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("response contains no questions")
	}
	for i, q := range questions {
		if strings.TrimSpace(q.QuestionText) == "" {
			return nil, fmt.Errorf("question %d has empty question_text", i+1)
		}
		if q.Type == "multiple_choice" {
			if len(q.Options) < 2 {
				return nil, fmt.Errorf("question %d has %d options, need at least 2", i+1, len(q.Options))
			}
			found := false
			for _, opt := range q.Options {
				if opt == q.CorrectAnswer {
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("question %d correct_answer does not match any option", i+1)
			}
		}
	}
	return questions, nil
}

func parseGeneratedLessonPlan(raw string) (*dto.GeneratedLessonPlanDTO, error) {
	cleaned := stripCodeFence(raw)
	var plan dto.GeneratedLessonPlanDTO
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return nil, fmt.Errorf("response is not a JSON lesson plan: %w", err)
	}
	if strings.TrimSpace(plan.Content) == "" {
		return nil, fmt.Errorf("lesson plan has empty content")
	}
	if strings.TrimSpace(plan.Title) == "" {
		return nil, fmt.Errorf("lesson plan has empty title")
	}
	return &plan, nil
}
