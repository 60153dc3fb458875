package service

import (
	"time"

	"peer_eval_backend/internal/model"
	"peer_eval_backend/internal/repository"
	"peer_eval_backend/internal/stats"
	"peer_eval_backend/internal/util"
	"peer_eval_backend/pkg/logger"
	"peer_eval_backend/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EvaluationService struct {
	EvalRepo    *repository.EvaluationRepository
	StudentRepo *repository.StudentRepository
	FormRepo    *repository.FormRepository
	Stats       *StatsService
}

func NewEvaluationService(evalRepo *repository.EvaluationRepository, studentRepo *repository.StudentRepository, formRepo *repository.FormRepository, statsService *StatsService) *EvaluationService {
	return &EvaluationService{
		EvalRepo:    evalRepo,
		StudentRepo: studentRepo,
		FormRepo:    formRepo,
		Stats:       statsService,
	}
}

// SubmitRequest 学生提交的原始载荷。answers 的值类型不做约束，
// 数字和数字字符串都接受，由校验阶段统一强转。
type SubmitRequest struct {
	StudentID string                 `json:"student_id"`
	ProjectID string                 `json:"project_id"`
	Answers   map[string]interface{} `json:"answers"`
}

// validateSubmission 按固定顺序执行提交校验，第一条不通过即返回，
// 后面的检查默认前面的已通过（例如分数范围检查默认表单已找到）。
// 校验顺序：
//  1. 字段齐全  2. 存在激活表单  3. 未过截止时间  4. 学生已注册
//  5. 非自评    6. 未重复提交    7. 启用题目全部作答  8. 分数在量表范围内
//
// 通过后返回只含启用题目、已强转为整数的答案集，多余的键被丢弃。
func validateSubmission(req SubmitRequest, form *model.EvaluationForm, student *model.Student, duplicate bool, now time.Time) (model.AnswerMap, *util.APIError) {
	if req.StudentID == "" || req.ProjectID == "" || req.Answers == nil {
		return nil, util.ErrMissingFields
	}
	if form == nil {
		return nil, util.ErrNoActiveForm
	}
	if stats.DeadlinePassed(form, now) {
		return nil, util.ErrDeadline
	}
	if student == nil {
		return nil, util.ErrStudentFound
	}
	if student.OwnGroup == req.ProjectID {
		return nil, util.ErrSelfEval
	}
	if duplicate {
		return nil, util.ErrDuplicate
	}

	activeQuestions := form.ActiveQuestions()
	for _, q := range activeQuestions {
		if v, ok := req.Answers[q.ID]; !ok || v == nil {
			return nil, util.ErrIncomplete
		}
	}

	answers := make(model.AnswerMap, len(activeQuestions))
	for _, q := range activeQuestions {
		score, ok := util.ToScore(req.Answers[q.ID])
		if !ok || score < float64(form.Scale.Min) || score > float64(form.Scale.Max) {
			return nil, util.ErrScoreOutOfRange(form.Scale.Min, form.Scale.Max)
		}
		answers[q.ID] = int(score)
	}
	return answers, nil
}

// Submit 执行完整提交流程：校验、落库、回写学生已评列表、失效统计缓存。
// 返回 (*Evaluation, nil) 或 (nil, *APIError)；存储层异常单独走 error。
func (s *EvaluationService) Submit(req SubmitRequest) (*model.Evaluation, *util.APIError, error) {
	form, err := s.FormRepo.FindActive()
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, nil, err
	}

	var student *model.Student
	if req.StudentID != "" {
		student, err = s.StudentRepo.FindByStudentID(req.StudentID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, nil, err
		}
	}

	duplicate := false
	if form != nil && student != nil {
		duplicate, err = s.EvalRepo.Exists(req.StudentID, req.ProjectID, form.FormID)
		if err != nil {
			return nil, nil, err
		}
	}

	answers, rejection := validateSubmission(req, form, student, duplicate, time.Now())
	if rejection != nil {
		monitoring.EvaluationCounter.WithLabelValues(rejection.Code).Inc()
		return nil, rejection, nil
	}

	evaluation := &model.Evaluation{
		EvaluationID: uuid.New().String(),
		FormID:       form.FormID,
		StudentID:    req.StudentID,
		ProjectID:    req.ProjectID,
		Answers:      answers,
		SubmittedAt:  time.Now(),
	}

	if err := s.EvalRepo.Create(evaluation); err != nil {
		// 并发窗口内的重复提交由唯一索引兜底
		if repository.IsDuplicateErr(err) {
			monitoring.EvaluationCounter.WithLabelValues(util.ErrDuplicate.Code).Inc()
			return nil, util.ErrDuplicate, nil
		}
		return nil, nil, err
	}

	// 追加到学生已评列表（仅供前端展示，重复由第 6 步保证不会发生）
	student.EvaluatedProjects = append(student.EvaluatedProjects, req.ProjectID)
	if err := s.StudentRepo.Upsert(student); err != nil {
		logger.Log.Error("failed to update evaluated_projects",
			zap.String("student_id", req.StudentID), zap.Error(err))
	}

	s.Stats.InvalidateCache(form.FormID)
	monitoring.EvaluationCounter.WithLabelValues("success").Inc()

	logger.Log.Info("evaluation submitted",
		zap.String("form_id", form.FormID),
		zap.String("student_id", req.StudentID),
		zap.String("project_id", req.ProjectID))

	return evaluation, nil, nil
}
