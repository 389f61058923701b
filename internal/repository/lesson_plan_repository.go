package repository

import (
	"github.com/lnthach/Margay/internal/model"
	"gorm.io/gorm"
)

type LessonPlanRepository interface {
	Create(plan *model.LessonPlan) error
	FindByID(id uint, userID string) (*model.LessonPlan, error)
	FindAllByUser(userID string) ([]model.LessonPlan, error)
	Delete(id uint, userID string) error
}

type lessonPlanRepository struct {
	db *gorm.DB
}

func NewLessonPlanRepository(db *gorm.DB) LessonPlanRepository {
	return &lessonPlanRepository{db: db}
}

func (r *lessonPlanRepository) Create(plan *model.LessonPlan) error {
	return r.db.Create(plan).Error
}

func (r *lessonPlanRepository) FindByID(id uint, userID string) (*model.LessonPlan, error) {
	var plan model.LessonPlan
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *lessonPlanRepository) FindAllByUser(userID string) ([]model.LessonPlan, error) {
	var plans []model.LessonPlan
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *lessonPlanRepository) Delete(id uint, userID string) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.LessonPlan{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
