package service

import (
	"fmt"
	"strconv"
	"time"

	"peer_eval_backend/internal/model"
	"peer_eval_backend/internal/repository"
	"peer_eval_backend/internal/util"
	"peer_eval_backend/pkg/logger"

	"go.uber.org/zap"
)

type FormService struct {
	FormRepo *repository.FormRepository
	EvalRepo *repository.EvaluationRepository
}

func NewFormService(formRepo *repository.FormRepository, evalRepo *repository.EvaluationRepository) *FormService {
	return &FormService{FormRepo: formRepo, EvalRepo: evalRepo}
}

type QuestionInput struct {
	ID     string  `json:"id"`
	Text   *string `json:"text"`
	Order  *int    `json:"order"`
	Active *bool   `json:"active"`
}

type CreateFormRequest struct {
	Title     string          `json:"title"`
	Scale     *model.Scale    `json:"scale"`
	Deadline  *time.Time      `json:"deadline"`
	Questions []QuestionInput `json:"questions"`
}

type UpdateFormRequest struct {
	Title     *string          `json:"title"`
	Scale     *model.Scale     `json:"scale"`
	Deadline  *time.Time       `json:"deadline"`
	Questions *[]QuestionInput `json:"questions"`
}

func newFormID() string {
	return fmt.Sprintf("form_%d", time.Now().UnixMilli())
}

func (s *FormService) List() ([]model.EvaluationForm, error) {
	return s.FormRepo.List()
}

func (s *FormService) Get(formID string) (*model.EvaluationForm, error) {
	return s.FormRepo.FindByFormID(formID)
}

func (s *FormService) GetActive() (*model.EvaluationForm, error) {
	return s.FormRepo.FindActive()
}

func (s *FormService) Create(req CreateFormRequest) (*model.EvaluationForm, *util.APIError, error) {
	if req.Title == "" || req.Scale == nil || req.Questions == nil {
		return nil, util.NewAPIError("MISSING_FIELDS", "title, scale and questions are required"), nil
	}
	if req.Scale.Min >= req.Scale.Max {
		return nil, util.NewAPIError("INVALID_SCALE", "scale.min must be less than scale.max"), nil
	}

	questions := make(model.QuestionList, 0, len(req.Questions))
	for i, q := range req.Questions {
		id := q.ID
		if id == "" {
			id = "q" + strconv.Itoa(i+1)
		}
		text := ""
		if q.Text != nil {
			text = *q.Text
		}
		order := i + 1
		if q.Order != nil {
			order = *q.Order
		}
		active := true
		if q.Active != nil {
			active = *q.Active
		}
		questions = append(questions, model.Question{ID: id, Text: text, Order: order, Active: active})
	}

	form := &model.EvaluationForm{
		FormID:    newFormID(),
		Title:     req.Title,
		Active:    false,
		Scale:     *req.Scale,
		Deadline:  req.Deadline,
		Questions: questions,
	}
	if err := s.FormRepo.Create(form); err != nil {
		return nil, nil, err
	}
	return form, nil, nil
}

// Clone 复制表单：新 form_id、active=false，题目深拷贝，
// 修改副本不会影响源表单。
func (s *FormService) Clone(formID, title string) (*model.EvaluationForm, error) {
	source, err := s.FormRepo.FindByFormID(formID)
	if err != nil {
		return nil, err
	}

	cloned := buildClone(source, title)
	if err := s.FormRepo.Create(cloned); err != nil {
		return nil, err
	}
	return cloned, nil
}

func buildClone(source *model.EvaluationForm, title string) *model.EvaluationForm {
	if title == "" {
		title = source.Title + " (copy)"
	}

	questions := make(model.QuestionList, len(source.Questions))
	copy(questions, source.Questions)

	return &model.EvaluationForm{
		FormID:    newFormID(),
		Title:     title,
		Active:    false,
		Scale:     source.Scale,
		Deadline:  source.Deadline,
		Questions: questions,
	}
}

func (s *FormService) Activate(formID string) (*model.EvaluationForm, error) {
	if err := s.FormRepo.Activate(formID); err != nil {
		return nil, err
	}
	logger.Log.Info("form activated", zap.String("form_id", formID))
	return s.FormRepo.FindByFormID(formID)
}

// Update 更新表单。title/deadline 无条件替换；scale 仅在该表单
// 尚无评价时允许修改，已有评价则静默忽略（沿用线上既有行为，
// 改了量表会让历史分数失去解释意义）；题目列表走 reconcileQuestions。
func (s *FormService) Update(formID string, req UpdateFormRequest) (*model.EvaluationForm, error) {
	form, err := s.FormRepo.FindByFormID(formID)
	if err != nil {
		return nil, err
	}

	hasEvaluations, err := s.EvalRepo.ExistsForForm(formID)
	if err != nil {
		return nil, err
	}

	var evaluations []model.Evaluation
	if req.Questions != nil {
		evaluations, err = s.EvalRepo.ListByFormID(formID)
		if err != nil {
			return nil, err
		}
	}

	applyFormUpdate(form, req, hasEvaluations, evaluations)

	if err := s.FormRepo.Save(form); err != nil {
		return nil, err
	}
	return form, nil
}

// applyFormUpdate 把更新请求合并到表单上。scale 在已有评价时被
// 静默忽略而不是报错，调用方可以从返回的表单上看到未变的量表。
func applyFormUpdate(form *model.EvaluationForm, req UpdateFormRequest, hasEvaluations bool, evaluations []model.Evaluation) {
	if req.Title != nil {
		form.Title = *req.Title
	}
	if req.Deadline != nil {
		form.Deadline = req.Deadline
	}
	if req.Scale != nil && !hasEvaluations {
		form.Scale = *req.Scale
	}
	if req.Questions != nil {
		form.Questions = reconcileQuestions(form.Questions, *req.Questions, evaluations)
	}
}

// reconcileQuestions 用调用方给出的题目列表对账现有列表，构造一个
// 全新的切片（不在原地改动）：
//   - 请求中出现的 id 在现有题目上合并 text/order/active，id 不变；
//   - 未知 id 视为新题目；
//   - 现有题目被请求遗漏时，只要有任一历史答卷引用过它，就强制
//     以 active=false 追加回列表（软删除），否则才真正丢弃。
func reconcileQuestions(current model.QuestionList, incoming []QuestionInput, evaluations []model.Evaluation) model.QuestionList {
	incomingIDs := make(map[string]bool, len(incoming))
	for _, q := range incoming {
		incomingIDs[q.ID] = true
	}

	currentByID := make(map[string]model.Question, len(current))
	for _, q := range current {
		currentByID[q.ID] = q
	}

	next := make(model.QuestionList, 0, len(incoming))
	for _, in := range incoming {
		if existing, ok := currentByID[in.ID]; ok {
			merged := existing
			if in.Text != nil {
				merged.Text = *in.Text
			}
			if in.Order != nil {
				merged.Order = *in.Order
			}
			if in.Active != nil {
				merged.Active = *in.Active
			}
			next = append(next, merged)
			continue
		}
		q := model.Question{ID: in.ID, Active: true}
		if in.Text != nil {
			q.Text = *in.Text
		}
		if in.Order != nil {
			q.Order = *in.Order
		}
		if in.Active != nil {
			q.Active = *in.Active
		}
		next = append(next, q)
	}

	for _, q := range current {
		if incomingIDs[q.ID] {
			continue
		}
		if questionReferenced(q.ID, evaluations) {
			retained := q
			retained.Active = false
			next = append(next, retained)
		}
	}
	return next
}

func questionReferenced(questionID string, evaluations []model.Evaluation) bool {
	for _, e := range evaluations {
		if _, ok := e.Answers[questionID]; ok {
			return true
		}
	}
	return false
}
