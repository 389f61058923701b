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

// LessonPlanService generates lesson plans and manages the caller's lesson
// plan library.
type LessonPlanService interface {
	Generate(ctx context.Context, req dto.GenerateLessonPlanRequest) (*dto.GeneratedLessonPlanDTO, error)
	Save(req dto.SaveLessonPlanRequest, userID string) (*dto.LessonPlanResponse, error)
	List(userID string) ([]dto.LessonPlanResponse, error)
	Get(id uint, userID string) (*dto.LessonPlanResponse, error)
	Delete(id uint, userID string) error
}

type lessonPlanService struct {
	planRepo repository.LessonPlanRepository
	llm      GeminiLLMService
}

func NewLessonPlanService(planRepo repository.LessonPlanRepository, llm GeminiLLMService) LessonPlanService {
	return &lessonPlanService{planRepo: planRepo, llm: llm}
}

func (s *lessonPlanService) Generate(ctx context.Context, req dto.GenerateLessonPlanRequest) (*dto.GeneratedLessonPlanDTO, error) {
	return s.llm.GenerateLessonPlan(ctx, req)
}

func (s *lessonPlanService) Save(req dto.SaveLessonPlanRequest, userID string) (*dto.LessonPlanResponse, error) {
	plan := model.LessonPlan{
		UserID:          userID,
		Title:           req.Title,
		Subject:         req.Subject,
		GradeLevel:      req.GradeLevel,
		Topic:           req.Topic,
		DurationMinutes: req.DurationMinutes,
		Objectives:      req.Objectives,
		Content:         req.Content,
	}
	if err := s.planRepo.Create(&plan); err != nil {
		log.Error().Err(err).Msg("Save: failed to create lesson plan")
		return nil, apperr.Store(err, "failed to save lesson plan")
	}

	var resp dto.LessonPlanResponse
	if err := copier.Copy(&resp, &plan); err != nil {
		return nil, apperr.Store(err, "error preparing response")
	}
	return &resp, nil
}

func (s *lessonPlanService) List(userID string) ([]dto.LessonPlanResponse, error) {
	plans, err := s.planRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Msg("List: failed to load lesson plans")
		return nil, apperr.Store(err, "failed to load lesson plan library")
	}

	responses := make([]dto.LessonPlanResponse, len(plans))
	for i := range plans {
		if err := copier.Copy(&responses[i], &plans[i]); err != nil {
			return nil, apperr.Store(err, "error preparing response")
		}
	}
	return responses, nil
}

func (s *lessonPlanService) Get(id uint, userID string) (*dto.LessonPlanResponse, error) {
	plan, err := s.planRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("lesson plan %d not found", id)
		}
		return nil, apperr.Store(err, "failed to load lesson plan")
	}

	var resp dto.LessonPlanResponse
	if err := copier.Copy(&resp, plan); err != nil {
		return nil, apperr.Store(err, "error preparing response")
	}
	return &resp, nil
}

func (s *lessonPlanService) Delete(id uint, userID string) error {
	if err := s.planRepo.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("lesson plan %d not found", id)
		}
		return apperr.Store(err, "failed to delete lesson plan")
	}
	return nil
}
