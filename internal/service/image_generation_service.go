package service

import (
	"context"

	"github.com/lnthach/Margay/internal/apperr"
	"github.com/lnthach/Margay/internal/dto"
	"github.com/lnthach/Margay/internal/model"
	"github.com/lnthach/Margay/internal/repository"
	"github.com/rs/zerolog/log"
)

// ImageGenerationService ties the pieces of the generation flow together:
// create the prompt record, generate the image, and hand the result to the
// selection coordinator as the group's new selected attempt.
type ImageGenerationService interface {
	GenerateAndRecord(ctx context.Context, req dto.GenerateImageRequest, userID string) (*dto.ImageAttemptResponse, error)
}

type imageGenerationService struct {
	promptRepo repository.ImagePromptRepository
	generator  ImageGeneratorService
	selection  ImageSelectionService
}

func NewImageGenerationService(
	promptRepo repository.ImagePromptRepository,
	generator ImageGeneratorService,
	selection ImageSelectionService,
) ImageGenerationService {
	return &imageGenerationService{
		promptRepo: promptRepo,
		generator:  generator,
		selection:  selection,
	}
}

func (s *imageGenerationService) GenerateAndRecord(ctx context.Context, req dto.GenerateImageRequest, userID string) (*dto.ImageAttemptResponse, error) {
	prompt := model.ImagePrompt{
		QuestionID:    req.QuestionID,
		PlacementType: req.PlacementType,
		PromptText:    req.Description,
		UserID:        userID,
	}
	if err := s.promptRepo.Create(&prompt); err != nil {
		log.Error().Err(err).Msg("GenerateAndRecord: failed to create image prompt")
		return nil, apperr.Store(err, "failed to create image prompt")
	}

	imageURL, err := s.generator.GenerateImage(ctx, req.Description)
	if err != nil {
		return nil, err
	}

	// New-schema groups are addressed directly; prompts without a question fall
	// back to legacy addressing through the prompt itself.
	ref := model.LegacyRef(prompt.ID)
	if req.QuestionID != nil {
		ref = model.DirectRef(*req.QuestionID, req.PlacementType)
	}

	attempt, err := s.selection.RecordNewAttempt(ref, imageURL, req.Description, req.Description, userID)
	if err != nil {
		return nil, err
	}

	if err := s.promptRepo.MarkGenerationComplete(prompt.ID); err != nil {
		log.Warn().Err(err).Uint("promptID", prompt.ID).Msg("GenerateAndRecord: failed to mark prompt complete")
	}
	return attempt, nil
}
