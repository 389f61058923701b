package service

import (
	"errors"

	"github.com/jinzhu/copier"
	"github.com/lnthach/Margay/internal/apperr"
	"github.com/lnthach/Margay/internal/dto"
	"github.com/lnthach/Margay/internal/model"
	"github.com/lnthach/Margay/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ImageSelectionService enforces the single rule of the attempt store: at most
// one attempt per group is selected at any time. It is the only writer of the
// is_selected flag; every selection change goes through one repository
// transaction.
type ImageSelectionService interface {
	RecordNewAttempt(ref model.AttemptGroupRef, imageURL, promptUsed, altText, userID string) (*dto.ImageAttemptResponse, error)
	SelectAttempt(ref model.AttemptGroupRef, attemptID uint, userID string) error
	DeselectGroup(ref model.AttemptGroupRef, userID string) error
	GetSelected(ref model.AttemptGroupRef, userID string) ([]dto.ImageAttemptResponse, error)
	GetSelectedForQuestion(questionID uint, userID string) ([]dto.ImageAttemptResponse, error)
	RateAttempt(attemptID uint, userID string, rating int, accuracyFeedback *string) error
}

type imageSelectionService struct {
	attemptRepo repository.ImageAttemptRepository
	promptRepo  repository.ImagePromptRepository
}

func NewImageSelectionService(attemptRepo repository.ImageAttemptRepository, promptRepo repository.ImagePromptRepository) ImageSelectionService {
	return &imageSelectionService{attemptRepo: attemptRepo, promptRepo: promptRepo}
}

// ResolveGroupRef maps the optional request fields onto a group reference.
// Direct (question, placement) addressing wins over the legacy prompt id when
// both are present.
func ResolveGroupRef(promptID, questionID *uint, placementType *string) (model.AttemptGroupRef, error) {
	if questionID != nil && placementType != nil && *placementType != "" {
		return model.DirectRef(*questionID, *placementType), nil
	}
	if promptID != nil {
		return model.LegacyRef(*promptID), nil
	}
	return model.AttemptGroupRef{}, apperr.Validation("either prompt_id or (question_id, placement_type) is required")
}

// RecordNewAttempt inserts the next attempt for the group as its selected
// image. The repository assigns max(attempt_number)+1 and deselects siblings
// within the same transaction.
func (s *imageSelectionService) RecordNewAttempt(ref model.AttemptGroupRef, imageURL, promptUsed, altText, userID string) (*dto.ImageAttemptResponse, error) {
	if imageURL == "" {
		return nil, apperr.Validation("image_url is required")
	}

	attempt := model.ImageAttempt{
		ImageURL:   imageURL,
		PromptUsed: promptUsed,
		AltText:    altText,
		UserID:     userID,
	}
	switch ref.Kind {
	case model.GroupLegacy:
		promptID := ref.PromptID
		attempt.PromptID = &promptID
	case model.GroupDirect:
		questionID := ref.QuestionID
		placement := ref.PlacementType
		attempt.QuestionID = &questionID
		attempt.PlacementType = &placement
	}

	if err := s.attemptRepo.CreateSelected(&attempt, ref); err != nil {
		log.Error().Err(err).Str("group", ref.Key()).Msg("RecordNewAttempt: failed to create attempt")
		return nil, apperr.Store(err, "failed to record image attempt")
	}

	if ref.Kind == model.GroupLegacy {
		if err := s.promptRepo.MarkGenerationComplete(ref.PromptID); err != nil {
			// The attempt is already committed; completion is advisory.
			log.Warn().Err(err).Uint("promptID", ref.PromptID).Msg("RecordNewAttempt: failed to mark prompt generation complete")
		}
	}

	return toAttemptResponse(&attempt), nil
}

// SelectAttempt makes attemptID the group's selected image. The attempt must
// exist in the group and belong to the caller.
func (s *imageSelectionService) SelectAttempt(ref model.AttemptGroupRef, attemptID uint, userID string) error {
	if err := s.attemptRepo.SelectExclusive(ref, attemptID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("image attempt %d not found in group %s", attemptID, ref.Key())
		}
		log.Error().Err(err).Uint("attemptID", attemptID).Str("group", ref.Key()).Msg("SelectAttempt: selection update failed")
		return apperr.Store(err, "failed to select image attempt")
	}
	return nil
}

// DeselectGroup clears the selection so the placement shows no default image.
func (s *imageSelectionService) DeselectGroup(ref model.AttemptGroupRef, userID string) error {
	if err := s.attemptRepo.DeselectGroup(ref, userID); err != nil {
		log.Error().Err(err).Str("group", ref.Key()).Msg("DeselectGroup: update failed")
		return apperr.Store(err, "failed to deselect image attempts")
	}
	return nil
}

// GetSelected returns the group's selected attempt, or falls back to the most
// recently generated one when nothing is marked. The fallback is a read-time
// policy; it does not write a selected flag. An empty group yields an empty
// slice.
func (s *imageSelectionService) GetSelected(ref model.AttemptGroupRef, userID string) ([]dto.ImageAttemptResponse, error) {
	attempts, err := s.attemptRepo.FindByGroup(ref, userID)
	if err != nil {
		log.Error().Err(err).Str("group", ref.Key()).Msg("GetSelected: query failed")
		return nil, apperr.Store(err, "failed to load image attempts")
	}
	if len(attempts) == 0 {
		return []dto.ImageAttemptResponse{}, nil
	}

	// attempts arrive ordered by generated_at descending; index 0 is the
	// fallback.
	chosen := &attempts[0]
	for i := range attempts {
		if attempts[i].IsSelected {
			chosen = &attempts[i]
			break
		}
	}
	return []dto.ImageAttemptResponse{*toAttemptResponse(chosen)}, nil
}

// GetSelectedForQuestion returns one attempt per placement of the question,
// applying the same selected-or-latest policy as GetSelected.
func (s *imageSelectionService) GetSelectedForQuestion(questionID uint, userID string) ([]dto.ImageAttemptResponse, error) {
	attempts, err := s.attemptRepo.FindByQuestion(questionID, userID)
	if err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("GetSelectedForQuestion: query failed")
		return nil, apperr.Store(err, "failed to load image attempts")
	}

	// Rows arrive ordered by generated_at descending, so the first attempt
	// seen per placement is already the fallback candidate.
	chosenByPlacement := make(map[string]*model.ImageAttempt)
	var placements []string
	for i := range attempts {
		placement := ""
		if attempts[i].PlacementType != nil {
			placement = *attempts[i].PlacementType
		}
		current, seen := chosenByPlacement[placement]
		if !seen {
			chosenByPlacement[placement] = &attempts[i]
			placements = append(placements, placement)
			continue
		}
		if attempts[i].IsSelected && !current.IsSelected {
			chosenByPlacement[placement] = &attempts[i]
		}
	}

	responses := make([]dto.ImageAttemptResponse, 0, len(placements))
	for _, placement := range placements {
		responses = append(responses, *toAttemptResponse(chosenByPlacement[placement]))
	}
	return responses, nil
}

// RateAttempt records the teacher's rating and optional accuracy feedback.
func (s *imageSelectionService) RateAttempt(attemptID uint, userID string, rating int, accuracyFeedback *string) error {
	if rating < 1 || rating > 5 {
		return apperr.Validation("rating must be between 1 and 5")
	}
	if accuracyFeedback != nil {
		switch *accuracyFeedback {
		case model.AccuracyCorrect, model.AccuracyPartiallyCorrect, model.AccuracyIncorrect:
		default:
			return apperr.Validation("accuracy_feedback must be one of correct, partially_correct, incorrect")
		}
	}

	if err := s.attemptRepo.UpdateRating(attemptID, userID, rating, accuracyFeedback); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("image attempt %d not found", attemptID)
		}
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("RateAttempt: update failed")
		return apperr.Store(err, "failed to save rating")
	}
	return nil
}

func toAttemptResponse(attempt *model.ImageAttempt) *dto.ImageAttemptResponse {
	var resp dto.ImageAttemptResponse
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to copy attempt to DTO")
	}
	return &resp
}
