package repository

import (
	"peer_eval_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) List() ([]model.Student, error) {
	var students []model.Student
	err := r.DB.Order("created_at asc").Find(&students).Error
	return students, err
}

func (r *StudentRepository) FindByStudentID(studentID string) (*model.Student, error) {
	var s model.Student
	err := r.DB.Where("student_id = ?", studentID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert 按学号幂等写入
func (r *StudentRepository) Upsert(student *model.Student) error {
	var existing model.Student
	err := r.DB.Where("student_id = ?", student.StudentID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(student).Error
	}
	if err != nil {
		return err
	}
	student.ID = existing.ID
	student.CreatedAt = existing.CreatedAt
	return r.DB.Save(student).Error
}
