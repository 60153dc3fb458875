package repository

import (
	"peer_eval_backend/internal/model"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	DB *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func (r *ProjectRepository) List() ([]model.Project, error) {
	var projects []model.Project
	err := r.DB.Order("created_at asc").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) FindByProjectID(projectID string) (*model.Project, error) {
	var p model.Project
	err := r.DB.Where("project_id = ?", projectID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Create(project *model.Project) error {
	return r.DB.Create(project).Error
}

func (r *ProjectRepository) Rename(projectID, name string) (*model.Project, error) {
	p, err := r.FindByProjectID(projectID)
	if err != nil {
		return nil, err
	}
	p.Name = name
	if err := r.DB.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Delete 删除项目组。引用它的历史评价保留不动（孤儿引用由聚合端容忍）。
func (r *ProjectRepository) Delete(projectID string) error {
	result := r.DB.Where("project_id = ?", projectID).Delete(&model.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
