package repository

import (
	"errors"
	"time"

	"github.com/lnthach/Margay/internal/model"
	"gorm.io/gorm"
)

// LegacyAttemptRow is an attempt still addressed only through its prompt,
// joined to the prompt's (question, placement) so the migrator can resolve the
// new-schema group.
type LegacyAttemptRow struct {
	AttemptID     uint      `gorm:"column:attempt_id"`
	PromptID      uint      `gorm:"column:prompt_id"`
	QuestionID    *uint     `gorm:"column:question_id"`
	PlacementType string    `gorm:"column:placement_type"`
	IsSelected    bool      `gorm:"column:is_selected"`
	GeneratedAt   time.Time `gorm:"column:generated_at"`
}

// MigrationPatch stamps one attempt with its resolved direct addressing and
// final selection state.
type MigrationPatch struct {
	AttemptID     uint
	QuestionID    uint
	PlacementType string
	IsSelected    bool
}

// GroupSelectionCount reports a (question, placement) group holding more than
// one selected attempt.
type GroupSelectionCount struct {
	QuestionID    uint   `gorm:"column:question_id"`
	PlacementType string `gorm:"column:placement_type"`
	SelectedCount int    `gorm:"column:selected_count"`
}

// ImageMigrationRepository is the privileged batch-writer surface used by the
// schema migrator. Nothing in the request path touches these methods.
type ImageMigrationRepository interface {
	AcquireLock(name string) (bool, error)
	ReleaseLock(name string) error
	FindLegacyAttempts() ([]LegacyAttemptRow, error)
	ApplyPatches(patches []MigrationPatch) error
	ClearDirectFields() (int64, error)
	FindAttemptsMissingGroupKeys() ([]uint, error)
	FindGroupsWithMultipleSelected() ([]GroupSelectionCount, error)
	FindAttemptsWithMissingQuestion() ([]uint, error)
}

type imageMigrationRepository struct {
	db *gorm.DB
}

func NewImageMigrationRepository(db *gorm.DB) ImageMigrationRepository {
	return &imageMigrationRepository{db: db}
}

// AcquireLock inserts the named marker row. A second caller hits the unique
// index and gets (false, nil).
func (r *imageMigrationRepository) AcquireLock(name string) (bool, error) {
	err := r.db.Create(&model.MigrationLock{Name: name}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *imageMigrationRepository) ReleaseLock(name string) error {
	return r.db.Unscoped().Where("name = ?", name).Delete(&model.MigrationLock{}).Error
}

func (r *imageMigrationRepository) FindLegacyAttempts() ([]LegacyAttemptRow, error) {
	var rows []LegacyAttemptRow
	err := r.db.Table("image_attempts").
		Select("image_attempts.id AS attempt_id, image_attempts.prompt_id, image_prompts.question_id, image_prompts.placement_type, image_attempts.is_selected, image_attempts.generated_at").
		Joins("JOIN image_prompts ON image_prompts.id = image_attempts.prompt_id").
		Where("image_attempts.question_id IS NULL").
		Scan(&rows).Error
	return rows, err
}

// ApplyPatches applies one group's patches in a single transaction, so a
// partially migrated group is never committed.
func (r *imageMigrationRepository) ApplyPatches(patches []MigrationPatch) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, patch := range patches {
			err := tx.Model(&model.ImageAttempt{}).
				Where("id = ?", patch.AttemptID).
				Updates(map[string]any{
					"question_id":    patch.QuestionID,
					"placement_type": patch.PlacementType,
					"is_selected":    patch.IsSelected,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ClearDirectFields reverts migrated attempts to legacy-only addressing.
// Attempts born under the new schema (no prompt_id) are left untouched; they
// would otherwise become unaddressable.
func (r *imageMigrationRepository) ClearDirectFields() (int64, error) {
	result := r.db.Model(&model.ImageAttempt{}).
		Where("prompt_id IS NOT NULL AND question_id IS NOT NULL").
		Updates(map[string]any{
			"question_id":    nil,
			"placement_type": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *imageMigrationRepository) FindAttemptsMissingGroupKeys() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.ImageAttempt{}).
		Where("prompt_id IS NULL AND (question_id IS NULL OR placement_type IS NULL)").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *imageMigrationRepository) FindGroupsWithMultipleSelected() ([]GroupSelectionCount, error) {
	var rows []GroupSelectionCount
	err := r.db.Model(&model.ImageAttempt{}).
		Select("question_id, placement_type, COUNT(*) AS selected_count").
		Where("is_selected = ? AND question_id IS NOT NULL", true).
		Group("question_id, placement_type").
		Having("COUNT(*) > 1").
		Scan(&rows).Error
	return rows, err
}

func (r *imageMigrationRepository) FindAttemptsWithMissingQuestion() ([]uint, error) {
	var ids []uint
	err := r.db.Table("image_attempts").
		Select("image_attempts.id").
		Joins("LEFT JOIN questions ON questions.id = image_attempts.question_id").
		Where("image_attempts.question_id IS NOT NULL AND questions.id IS NULL").
		Scan(&ids).Error
	return ids, err
}
