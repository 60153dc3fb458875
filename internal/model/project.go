package model

// Project 项目组（学生的评价对象）
// swagger:model Project
type Project struct {
	BaseModel
	ProjectID string `gorm:"size:64;uniqueIndex;not null" json:"id"`
	Name      string `gorm:"size:255;not null" json:"name"`
}

func (Project) TableName() string {
	return "projects"
}
