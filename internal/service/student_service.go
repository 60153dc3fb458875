package service

import (
	"peer_eval_backend/internal/model"
	"peer_eval_backend/internal/repository"
	"peer_eval_backend/internal/util"
	"peer_eval_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StudentService struct {
	StudentRepo *repository.StudentRepository
}

func NewStudentService(studentRepo *repository.StudentRepository) *StudentService {
	return &StudentService{StudentRepo: studentRepo}
}

type RegisterStudentRequest struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Year      int    `json:"year"`
	OwnGroup  string `json:"own_group"`
}

// Register 学生注册。已注册的学生重新注册只改写所在组
// （换届/换组场景），已评列表保持不变。
func (s *StudentService) Register(req RegisterStudentRequest) (*model.Student, bool, *util.APIError, error) {
	if req.StudentID == "" || req.Name == "" || req.Year == 0 || req.OwnGroup == "" {
		return nil, false, util.NewAPIError("MISSING_FIELDS", "student_id, name, year and own_group are required"), nil
	}

	existing, err := s.StudentRepo.FindByStudentID(req.StudentID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, false, nil, err
	}

	if existing != nil {
		existing.OwnGroup = req.OwnGroup
		if err := s.StudentRepo.Upsert(existing); err != nil {
			return nil, false, nil, err
		}
		return existing, false, nil, nil
	}

	student := &model.Student{
		StudentID:         req.StudentID,
		Name:              req.Name,
		Year:              req.Year,
		OwnGroup:          req.OwnGroup,
		EvaluatedProjects: model.StringList{},
	}
	if err := s.StudentRepo.Upsert(student); err != nil {
		return nil, false, nil, err
	}

	logger.Log.Info("student registered",
		zap.String("student_id", req.StudentID), zap.String("own_group", req.OwnGroup))
	return student, true, nil, nil
}

func (s *StudentService) List() ([]model.Student, error) {
	return s.StudentRepo.List()
}
