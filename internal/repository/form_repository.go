package repository

import (
	"peer_eval_backend/internal/model"

	"gorm.io/gorm"
)

type FormRepository struct {
	DB *gorm.DB
}

func NewFormRepository(db *gorm.DB) *FormRepository {
	return &FormRepository{DB: db}
}

func (r *FormRepository) List() ([]model.EvaluationForm, error) {
	var forms []model.EvaluationForm
	err := r.DB.Order("created_at desc").Find(&forms).Error
	return forms, err
}

func (r *FormRepository) FindByFormID(formID string) (*model.EvaluationForm, error) {
	var f model.EvaluationForm
	err := r.DB.Where("form_id = ?", formID).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FindActive 返回当前激活的表单，没有则返回 gorm.ErrRecordNotFound
func (r *FormRepository) FindActive() (*model.EvaluationForm, error) {
	var f model.EvaluationForm
	err := r.DB.Where("active = ?", true).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FormRepository) Create(form *model.EvaluationForm) error {
	return r.DB.Create(form).Error
}

func (r *FormRepository) Save(form *model.EvaluationForm) error {
	return r.DB.Save(form).Error
}

// Activate 单事务内先全部取消激活再激活目标表单，
// 避免两次独立写入之间出现双激活窗口
func (r *FormRepository) Activate(formID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var f model.EvaluationForm
		if err := tx.Where("form_id = ?", formID).First(&f).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.EvaluationForm{}).Where("active = ?", true).Update("active", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.EvaluationForm{}).Where("form_id = ?", formID).Update("active", true).Error
	})
}
