package util

import "fmt"

// APIError 业务可见的失败结果：错误码 + 提示信息。
// 属于预期内、可恢复的拒绝，不是系统故障，控制器层统一映射为 400。
type APIError struct {
	Code    string `json:"errorCode"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// 提交评价的拒绝原因，顺序与校验流水线一致
var (
	ErrMissingFields = NewAPIError("MISSING_FIELDS", "student_id, project_id and answers are required")
	ErrNoActiveForm  = NewAPIError("NO_ACTIVE_FORM", "no evaluation form is currently active")
	ErrDeadline      = NewAPIError("DEADLINE_PASSED", "the evaluation deadline has passed")
	ErrStudentFound  = NewAPIError("STUDENT_NOT_FOUND", "student is not registered")
	ErrSelfEval      = NewAPIError("SELF_EVALUATION_FORBIDDEN", "students cannot evaluate their own group")
	ErrDuplicate     = NewAPIError("DUPLICATE_EVALUATION", "this group has already been evaluated")
	ErrIncomplete    = NewAPIError("INCOMPLETE_ANSWERS", "every active question must be answered")
)

// ErrScoreOutOfRange 带上量表边界，便于前端直接展示
func ErrScoreOutOfRange(min, max int) *APIError {
	return NewAPIError("SCORE_OUT_OF_RANGE", fmt.Sprintf("scores must be between %d and %d", min, max))
}
