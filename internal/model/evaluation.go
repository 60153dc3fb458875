package model

import "time"

// AnswerMap 题目 id 到分数的映射，以 JSON 列存储
type AnswerMap map[string]int

// Evaluation 一条已提交的评价，创建后不可修改。
// (student_id, project_id, form_id) 上的唯一索引是防止并发重复提交的
// 最终保证，服务层的预检查只是为了给出友好的错误提示。
// swagger:model Evaluation
type Evaluation struct {
	BaseModel
	EvaluationID string    `gorm:"size:36;uniqueIndex;not null" json:"evaluation_id"`
	FormID       string    `gorm:"size:64;uniqueIndex:idx_eval_unique;not null" json:"form_id"`
	StudentID    string    `gorm:"size:64;uniqueIndex:idx_eval_unique;not null" json:"student_id"`
	ProjectID    string    `gorm:"size:64;uniqueIndex:idx_eval_unique;not null" json:"project_id"`
	Answers      AnswerMap `gorm:"type:json;serializer:json" json:"answers"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}
