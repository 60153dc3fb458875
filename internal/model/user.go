package model

type UserRole string

const (
	Staff UserRole = "staff"
	Admin UserRole = "admin"
)

// User 后台账号（教师/管理员），学生端无需登录
// swagger:model User
type User struct {
	BaseModel
	Username string   `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('staff','admin');default:'staff'" json:"role"`
}

func (User) TableName() string {
	return "users"
}
