package repository

import (
	"github.com/lnthach/Margay/internal/model"
	"gorm.io/gorm"
)

type ImagePromptRepository interface {
	Create(prompt *model.ImagePrompt) error
	FindByID(id uint) (*model.ImagePrompt, error)
	MarkGenerationComplete(id uint) error
}

type imagePromptRepository struct {
	db *gorm.DB
}

func NewImagePromptRepository(db *gorm.DB) ImagePromptRepository {
	return &imagePromptRepository{db: db}
}

func (r *imagePromptRepository) Create(prompt *model.ImagePrompt) error {
	return r.db.Create(prompt).Error
}

func (r *imagePromptRepository) FindByID(id uint) (*model.ImagePrompt, error) {
	var prompt model.ImagePrompt
	if err := r.db.First(&prompt, id).Error; err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (r *imagePromptRepository) MarkGenerationComplete(id uint) error {
	return r.db.Model(&model.ImagePrompt{}).
		Where("id = ?", id).
		Update("generation_complete", true).Error
}
