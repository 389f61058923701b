package repository

import (
	"github.com/lnthach/Margay/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint, userID string) (*model.Question, error)
	FindAllByUser(userID string) ([]model.Question, error)
	Delete(id uint, userID string) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint, userID string) (*model.Question, error) {
	var question model.Question
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindAllByUser(userID string) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Delete(id uint, userID string) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Question{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
