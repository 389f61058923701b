package repository

import (
	"github.com/lnthach/Margay/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ImageAttemptRepository is the attempt store. The selection-changing methods
// run as single transactions so a group never ends up with two selected rows.
type ImageAttemptRepository interface {
	CreateSelected(attempt *model.ImageAttempt, ref model.AttemptGroupRef) error
	SelectExclusive(ref model.AttemptGroupRef, attemptID uint, userID string) error
	DeselectGroup(ref model.AttemptGroupRef, userID string) error
	FindByGroup(ref model.AttemptGroupRef, userID string) ([]model.ImageAttempt, error)
	FindByQuestion(questionID uint, userID string) ([]model.ImageAttempt, error)
	FindByID(id uint) (*model.ImageAttempt, error)
	UpdateRating(id uint, userID string, rating int, accuracyFeedback *string) error
}

type imageAttemptRepository struct {
	db *gorm.DB
}

func NewImageAttemptRepository(db *gorm.DB) ImageAttemptRepository {
	return &imageAttemptRepository{db: db}
}

// groupScope resolves an AttemptGroupRef to its query predicate. This is the
// only place the two addressing schemas meet SQL.
func groupScope(db *gorm.DB, ref model.AttemptGroupRef) *gorm.DB {
	if ref.Kind == model.GroupLegacy {
		return db.Where("prompt_id = ?", ref.PromptID)
	}
	return db.Where("question_id = ? AND placement_type = ?", ref.QuestionID, ref.PlacementType)
}

// CreateSelected inserts a new attempt as the group's selected image and
// deselects every sibling, all in one transaction. Sibling rows are locked
// first so attempt numbering stays gapless under concurrent writers.
func (r *imageAttemptRepository) CreateSelected(attempt *model.ImageAttempt, ref model.AttemptGroupRef) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var siblings []model.ImageAttempt
		if err := groupScope(tx.Clauses(clause.Locking{Strength: "UPDATE"}), ref).Find(&siblings).Error; err != nil {
			return err
		}

		next := 1
		for _, sibling := range siblings {
			if sibling.AttemptNumber >= next {
				next = sibling.AttemptNumber + 1
			}
		}
		attempt.AttemptNumber = next
		attempt.IsSelected = true

		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		return groupScope(tx.Model(&model.ImageAttempt{}), ref).
			Where("id <> ?", attempt.ID).
			Update("is_selected", false).Error
	})
}

// SelectExclusive marks one attempt selected and deselects the rest of its
// group. Returns gorm.ErrRecordNotFound when the attempt is not in the group
// or not owned by the caller.
func (r *imageAttemptRepository) SelectExclusive(ref model.AttemptGroupRef, attemptID uint, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var attempt model.ImageAttempt
		if err := groupScope(tx.Clauses(clause.Locking{Strength: "UPDATE"}), ref).
			Where("id = ? AND user_id = ?", attemptID, userID).
			First(&attempt).Error; err != nil {
			return err
		}

		if err := groupScope(tx.Model(&model.ImageAttempt{}), ref).
			Where("id <> ?", attemptID).
			Update("is_selected", false).Error; err != nil {
			return err
		}
		return tx.Model(&attempt).Update("is_selected", true).Error
	})
}

func (r *imageAttemptRepository) DeselectGroup(ref model.AttemptGroupRef, userID string) error {
	return groupScope(r.db.Model(&model.ImageAttempt{}), ref).
		Where("user_id = ?", userID).
		Update("is_selected", false).Error
}

func (r *imageAttemptRepository) FindByGroup(ref model.AttemptGroupRef, userID string) ([]model.ImageAttempt, error) {
	var attempts []model.ImageAttempt
	err := groupScope(r.db, ref).
		Where("user_id = ?", userID).
		Order("generated_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *imageAttemptRepository) FindByQuestion(questionID uint, userID string) ([]model.ImageAttempt, error) {
	var attempts []model.ImageAttempt
	err := r.db.
		Where("question_id = ? AND user_id = ?", questionID, userID).
		Order("generated_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *imageAttemptRepository) FindByID(id uint) (*model.ImageAttempt, error) {
	var attempt model.ImageAttempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *imageAttemptRepository) UpdateRating(id uint, userID string, rating int, accuracyFeedback *string) error {
	result := r.db.Model(&model.ImageAttempt{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"user_rating":       rating,
			"accuracy_feedback": accuracyFeedback,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
