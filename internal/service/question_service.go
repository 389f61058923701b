package service

import (
	"context"
	"errors"

	"github.com/jinzhu/copier"
	"github.com/lnthach/Margay/internal/apperr"
	"github.com/lnthach/Margay/internal/dto"
	"github.com/lnthach/Margay/internal/model"
	"github.com/lnthach/Margay/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuestionService generates exam questions and manages the caller's question
// library.
type QuestionService interface {
	Generate(ctx context.Context, req dto.GenerateQuestionsRequest) ([]dto.GeneratedQuestionDTO, error)
	Save(req dto.SaveQuestionRequest, userID string) (*dto.QuestionResponse, error)
	List(userID string) ([]dto.QuestionResponse, error)
	Get(id uint, userID string) (*dto.QuestionResponse, error)
	Delete(id uint, userID string) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
	llm          GeminiLLMService
}

func NewQuestionService(questionRepo repository.QuestionRepository, llm GeminiLLMService) QuestionService {
	return &questionService{questionRepo: questionRepo, llm: llm}
}

func (s *questionService) Generate(ctx context.Context, req dto.GenerateQuestionsRequest) ([]dto.GeneratedQuestionDTO, error) {
	return s.llm.GenerateQuestions(ctx, req)
}

func (s *questionService) Save(req dto.SaveQuestionRequest, userID string) (*dto.QuestionResponse, error) {
	question := model.Question{
		UserID:        userID,
		Subject:       req.Subject,
		GradeLevel:    req.GradeLevel,
		Topic:         req.Topic,
		Type:          req.Type,
		QuestionText:  req.QuestionText,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Msg("Save: failed to create question")
		return nil, apperr.Store(err, "failed to save question")
	}

	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, &question); err != nil {
		return nil, apperr.Store(err, "error preparing response")
	}
	return &resp, nil
}

func (s *questionService) List(userID string) ([]dto.QuestionResponse, error) {
	questions, err := s.questionRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Msg("List: failed to load questions")
		return nil, apperr.Store(err, "failed to load question library")
	}

	responses := make([]dto.QuestionResponse, len(questions))
	for i := range questions {
		if err := copier.Copy(&responses[i], &questions[i]); err != nil {
			return nil, apperr.Store(err, "error preparing response")
		}
	}
	return responses, nil
}

func (s *questionService) Get(id uint, userID string) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("question %d not found", id)
		}
		return nil, apperr.Store(err, "failed to load question")
	}

	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, question); err != nil {
		return nil, apperr.Store(err, "error preparing response")
	}
	return &resp, nil
}

func (s *questionService) Delete(id uint, userID string) error {
	if err := s.questionRepo.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("question %d not found", id)
		}
		return apperr.Store(err, "failed to delete question")
	}
	return nil
}
