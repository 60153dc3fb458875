package repository

import (
	"strings"

	"peer_eval_backend/internal/model"

	"gorm.io/gorm"
)

type EvaluationRepository struct {
	DB *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{DB: db}
}

func (r *EvaluationRepository) List() ([]model.Evaluation, error) {
	var evals []model.Evaluation
	err := r.DB.Order("created_at asc").Find(&evals).Error
	return evals, err
}

func (r *EvaluationRepository) ListByFormID(formID string) ([]model.Evaluation, error) {
	var evals []model.Evaluation
	err := r.DB.Where("form_id = ?", formID).Order("created_at asc").Find(&evals).Error
	return evals, err
}

// Exists 判断 (student, project, form) 三元组是否已有评价
func (r *EvaluationRepository) Exists(studentID, projectID, formID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Evaluation{}).
		Where("student_id = ? AND project_id = ? AND form_id = ?", studentID, projectID, formID).
		Count(&count).Error
	return count > 0, err
}

func (r *EvaluationRepository) ExistsForForm(formID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Evaluation{}).Where("form_id = ?", formID).Count(&count).Error
	return count > 0, err
}

// Create 写入评价。并发下重复提交由 idx_eval_unique 唯一索引兜底，
// 冲突通过 IsDuplicateErr 识别。
func (r *EvaluationRepository) Create(evaluation *model.Evaluation) error {
	return r.DB.Create(evaluation).Error
}

// IsDuplicateErr 识别唯一索引冲突（MySQL 1062）
func IsDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "1062")
}
