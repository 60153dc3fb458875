package model

// StringList 以 JSON 列存储的字符串数组
type StringList []string

// Student 参与互评的学生。学生不是登录用户，仅凭学号识别。
//
// EvaluatedProjects 只按项目组记录、不区分表单，仅供前端展示进度；
// 防重复提交的最终保证是 evaluations 表上的复合唯一索引。
// swagger:model Student
type Student struct {
	BaseModel
	StudentID         string     `gorm:"size:64;uniqueIndex;not null" json:"student_id"`
	Name              string     `gorm:"size:255;not null" json:"name"`
	Year              int        `gorm:"default:0" json:"year"`
	OwnGroup          string     `gorm:"size:64;not null" json:"own_group"`
	EvaluatedProjects StringList `gorm:"type:json;serializer:json" json:"evaluated_projects"`
}

func (Student) TableName() string {
	return "students"
}

// HasEvaluated 判断学生端展示用的已评记录中是否包含该项目组
func (s *Student) HasEvaluated(projectID string) bool {
	for _, p := range s.EvaluatedProjects {
		if p == projectID {
			return true
		}
	}
	return false
}
