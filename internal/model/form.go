package model

import "time"

// Scale 评分范围，闭区间 [Min, Max]
type Scale struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Question 表单内的评价题目。Active=false 表示软删除：
// 已被历史评价引用的题目只能停用，不能从题目列表中物理移除。
type Question struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Order  int    `json:"order"`
	Active bool   `json:"active"`
}

// QuestionList 以 JSON 列存储的题目列表
type QuestionList []Question

// EvaluationForm 评价表单（量表）。全局同时只允许一个表单处于激活状态，
// 由 FormRepository.Activate 的事务保证。
// swagger:model EvaluationForm
type EvaluationForm struct {
	BaseModel
	FormID    string       `gorm:"size:64;uniqueIndex;not null" json:"form_id"`
	Title     string       `gorm:"size:255;not null" json:"title"`
	Active    bool         `gorm:"default:false;index" json:"active"`
	Scale     Scale        `gorm:"type:json;serializer:json" json:"scale"`
	Deadline  *time.Time   `json:"deadline"`
	Questions QuestionList `gorm:"type:json;serializer:json" json:"questions"`
}

func (EvaluationForm) TableName() string {
	return "evaluation_forms"
}

// ActiveQuestions 返回当前启用的题目
func (f *EvaluationForm) ActiveQuestions() []Question {
	var qs []Question
	for _, q := range f.Questions {
		if q.Active {
			qs = append(qs, q)
		}
	}
	return qs
}

// FindQuestion 按题目 id 查找，未找到返回 nil
func (f *EvaluationForm) FindQuestion(id string) *Question {
	for i := range f.Questions {
		if f.Questions[i].ID == id {
			return &f.Questions[i]
		}
	}
	return nil
}
