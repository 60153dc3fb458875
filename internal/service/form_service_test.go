package service

import (
	"testing"

	"peer_eval_backend/internal/model"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func baseQuestions() model.QuestionList {
	return model.QuestionList{
		{ID: "q1", Text: "内容质量", Order: 1, Active: true},
		{ID: "q2", Text: "展示表现", Order: 2, Active: true},
	}
}

func evalReferencing(qids ...string) model.Evaluation {
	answers := make(model.AnswerMap, len(qids))
	for _, q := range qids {
		answers[q] = 3
	}
	return model.Evaluation{FormID: "form_1", StudentID: "s1", ProjectID: "p1", Answers: answers}
}

func TestReconcileSoftDeletesReferencedQuestion(t *testing.T) {
	// q1 被历史答卷引用，请求里却没带它：必须以 active=false 保留
	current := baseQuestions()
	incoming := []QuestionInput{{ID: "q2", Text: strPtr("展示表现"), Order: intPtr(1), Active: boolPtr(true)}}
	evals := []model.Evaluation{evalReferencing("q1", "q2")}

	next := reconcileQuestions(current, incoming, evals)

	if len(next) != 2 {
		t.Fatalf("expected q2 + soft-deleted q1, got %+v", next)
	}
	var q1 *model.Question
	for i := range next {
		if next[i].ID == "q1" {
			q1 = &next[i]
		}
	}
	if q1 == nil {
		t.Fatal("referenced question q1 was hard-deleted")
	}
	if q1.Active {
		t.Fatal("retained question must come back inactive")
	}
	if q1.Text != "内容质量" {
		t.Fatalf("retained question lost its text: %+v", q1)
	}
}

func TestReconcileDropsUnreferencedQuestion(t *testing.T) {
	current := baseQuestions()
	incoming := []QuestionInput{{ID: "q2"}}
	// 没有任何答卷引用 q1
	next := reconcileQuestions(current, incoming, nil)

	if len(next) != 1 || next[0].ID != "q2" {
		t.Fatalf("unreferenced omitted question must be dropped, got %+v", next)
	}
}

func TestReconcileMergesAndCreates(t *testing.T) {
	current := baseQuestions()
	incoming := []QuestionInput{
		{ID: "q1", Text: strPtr("内容与正确性"), Order: intPtr(2)},
		{ID: "q2"}, // 不带字段则保留原值
		{ID: "q9", Text: strPtr("新题目"), Order: intPtr(3)},
	}
	next := reconcileQuestions(current, incoming, nil)

	if len(next) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(next))
	}
	if next[0].Text != "内容与正确性" || next[0].Order != 2 || !next[0].Active {
		t.Fatalf("merge over existing failed: %+v", next[0])
	}
	if next[1].Text != "展示表现" || next[1].Order != 2 {
		t.Fatalf("omitted fields must keep existing values: %+v", next[1])
	}
	if next[2].ID != "q9" || !next[2].Active {
		t.Fatalf("unknown id must become a new active question: %+v", next[2])
	}
}

func TestReconcileDoesNotMutateCurrent(t *testing.T) {
	current := baseQuestions()
	incoming := []QuestionInput{{ID: "q1", Active: boolPtr(false)}}
	_ = reconcileQuestions(current, incoming, nil)

	if !current[0].Active || len(current) != 2 {
		t.Fatalf("reconcile must build a new list, input was mutated: %+v", current)
	}
}

func TestApplyFormUpdateScaleFrozenAfterEvaluations(t *testing.T) {
	form := &model.EvaluationForm{
		FormID:    "form_1",
		Title:     "原标题",
		Scale:     model.Scale{Min: 1, Max: 5},
		Questions: baseQuestions(),
	}
	req := UpdateFormRequest{
		Title: strPtr("新标题"),
		Scale: &model.Scale{Min: 0, Max: 10},
	}

	applyFormUpdate(form, req, true, nil)

	if form.Title != "新标题" {
		t.Fatal("title must be unconditionally replaceable")
	}
	// 已有评价时 scale 修改被静默忽略，不报错
	if form.Scale.Min != 1 || form.Scale.Max != 5 {
		t.Fatalf("scale must stay frozen once evaluations exist, got %+v", form.Scale)
	}
}

func TestApplyFormUpdateScaleChangeableBeforeEvaluations(t *testing.T) {
	form := &model.EvaluationForm{
		FormID: "form_1",
		Scale:  model.Scale{Min: 1, Max: 5},
	}
	req := UpdateFormRequest{Scale: &model.Scale{Min: 1, Max: 7}}

	applyFormUpdate(form, req, false, nil)

	if form.Scale.Max != 7 {
		t.Fatalf("scale must be changeable while no evaluations exist, got %+v", form.Scale)
	}
}

func TestBuildCloneDeepCopiesQuestions(t *testing.T) {
	source := &model.EvaluationForm{
		FormID:    "form_1",
		Title:     "期末互评",
		Active:    true,
		Scale:     model.Scale{Min: 1, Max: 5},
		Questions: baseQuestions(),
	}

	cloned := buildClone(source, "")

	if cloned.FormID == source.FormID {
		t.Fatal("clone must get a fresh form_id")
	}
	if cloned.Active {
		t.Fatal("clone must start inactive")
	}
	if cloned.Title != "期末互评 (copy)" {
		t.Fatalf("default clone title unexpected: %q", cloned.Title)
	}

	cloned.Questions[0].Text = "改掉"
	if source.Questions[0].Text != "内容质量" {
		t.Fatal("mutating the clone's questions must not affect the source form")
	}
}
