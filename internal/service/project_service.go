package service

import (
	"fmt"
	"strings"
	"time"

	"peer_eval_backend/internal/model"
	"peer_eval_backend/internal/repository"
	"peer_eval_backend/internal/util"
)

type ProjectService struct {
	ProjectRepo *repository.ProjectRepository
}

func NewProjectService(projectRepo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{ProjectRepo: projectRepo}
}

func (s *ProjectService) List() ([]model.Project, error) {
	return s.ProjectRepo.List()
}

func (s *ProjectService) Create(name string) (*model.Project, *util.APIError, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, util.NewAPIError("MISSING_FIELDS", "group name must not be empty"), nil
	}

	project := &model.Project{
		ProjectID: fmt.Sprintf("group%d", time.Now().UnixMilli()),
		Name:      name,
	}
	if err := s.ProjectRepo.Create(project); err != nil {
		return nil, nil, err
	}
	return project, nil, nil
}

func (s *ProjectService) Rename(projectID, name string) (*model.Project, *util.APIError, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, util.NewAPIError("MISSING_FIELDS", "group name must not be empty"), nil
	}
	p, err := s.ProjectRepo.Rename(projectID, name)
	if err != nil {
		return nil, nil, err
	}
	return p, nil, nil
}

// Delete 删除项目组，引用它的评价保留（见聚合端的孤儿引用容忍）
func (s *ProjectService) Delete(projectID string) error {
	return s.ProjectRepo.Delete(projectID)
}
