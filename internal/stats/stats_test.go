package stats

import (
	"testing"
	"time"

	"peer_eval_backend/internal/model"
)

func testForm() *model.EvaluationForm {
	return &model.EvaluationForm{
		FormID: "form_1",
		Title:  "项目互评量表",
		Scale:  model.Scale{Min: 1, Max: 5},
		Questions: model.QuestionList{
			{ID: "q1", Text: "内容质量", Order: 1, Active: true},
			{ID: "q2", Text: "展示表现", Order: 2, Active: true},
		},
	}
}

func eval(formID, studentID, projectID string, answers model.AnswerMap) model.Evaluation {
	return model.Evaluation{
		EvaluationID: model.GenerateUUID(),
		FormID:       formID,
		StudentID:    studentID,
		ProjectID:    projectID,
		Answers:      answers,
	}
}

func TestMeanAndSDEmpty(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Fatalf("Mean(nil)=%v, want 0", got)
	}
	if got := SD(nil); got != 0 {
		t.Fatalf("SD(nil)=%v, want 0", got)
	}
}

func TestSDIsPopulation(t *testing.T) {
	// 样本标准差(除以 N-1)为 1，总体标准差(除以 N)为 sqrt(2/3)≈0.8165
	values := []float64{1, 2, 3}
	got := SD(values)
	want := 0.816496580927726
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("SD(%v)=%v, want %v (population)", values, got, want)
	}
}

func TestAllProjectStatsZeroEvaluations(t *testing.T) {
	projects := []model.Project{{ProjectID: "p1", Name: "Group 1"}}
	got := AllProjectStats(testForm(), projects, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 project stat, got %d", len(got))
	}
	s := got[0]
	if s.EvaluatorCount != 0 || s.OverallMean != 0 || s.OverallSD != 0 {
		t.Fatalf("zero evaluations must yield zeros, got %+v", s)
	}
	if len(s.PerQuestion) != 0 {
		t.Fatalf("expected no per-question rows, got %d", len(s.PerQuestion))
	}
}

func TestAllProjectStatsPooledOverall(t *testing.T) {
	projects := []model.Project{{ProjectID: "p1", Name: "Group 1"}}
	evals := []model.Evaluation{
		eval("form_1", "s1", "p1", model.AnswerMap{"q1": 5, "q2": 3}),
		eval("form_1", "s2", "p1", model.AnswerMap{"q1": 4, "q2": 4}),
	}
	got := AllProjectStats(testForm(), projects, evals)[0]

	if got.EvaluatorCount != 2 {
		t.Fatalf("evaluator_count=%d, want 2", got.EvaluatorCount)
	}
	// pooled: mean(5,3,4,4)=4.00, sd=sqrt(0.5)=0.71
	if got.OverallMean != 4.00 {
		t.Fatalf("overall_mean=%v, want 4.00", got.OverallMean)
	}
	if got.OverallSD != 0.71 {
		t.Fatalf("overall_sd=%v, want 0.71 (rounded)", got.OverallSD)
	}
	if len(got.PerQuestion) != 2 {
		t.Fatalf("expected 2 per-question rows, got %d", len(got.PerQuestion))
	}
	q1 := got.PerQuestion[0]
	if q1.QuestionID != "q1" || q1.Mean != 4.5 || q1.SD != 0.5 || q1.Count != 2 {
		t.Fatalf("q1 stat unexpected: %+v", q1)
	}
}

func TestAllProjectStatsIgnoresOtherFormsAndProjects(t *testing.T) {
	projects := []model.Project{{ProjectID: "p1", Name: "Group 1"}}
	evals := []model.Evaluation{
		eval("form_1", "s1", "p1", model.AnswerMap{"q1": 5}),
		eval("form_2", "s2", "p1", model.AnswerMap{"q1": 1}),
		eval("form_1", "s3", "p9", model.AnswerMap{"q1": 1}),
	}
	got := AllProjectStats(testForm(), projects, evals)[0]
	if got.EvaluatorCount != 1 || got.OverallMean != 5.00 {
		t.Fatalf("cross-form/project evaluations leaked into stats: %+v", got)
	}
}

func TestAllProjectStatsKeepsRetiredQuestionsLast(t *testing.T) {
	// qX 已不在表单定义中（哨兵序号），但历史答卷仍引用它
	projects := []model.Project{{ProjectID: "p1", Name: "Group 1"}}
	evals := []model.Evaluation{
		eval("form_1", "s1", "p1", model.AnswerMap{"qX": 2, "q1": 5}),
	}
	got := AllProjectStats(testForm(), projects, evals)[0]
	if len(got.PerQuestion) != 2 {
		t.Fatalf("retired question dropped from report: %+v", got.PerQuestion)
	}
	if got.PerQuestion[0].QuestionID != "q1" || got.PerQuestion[1].QuestionID != "qX" {
		t.Fatalf("unknown question must sort last, got %+v", got.PerQuestion)
	}
	if got.PerQuestion[1].QuestionText != "qX" {
		t.Fatalf("unknown question falls back to id as text, got %q", got.PerQuestion[1].QuestionText)
	}
}

func TestRanking(t *testing.T) {
	input := []ProjectStat{
		{ProjectID: "p1", OverallMean: 3.5},
		{ProjectID: "p2", OverallMean: 4.2},
		{ProjectID: "p3", OverallMean: 3.5},
		{ProjectID: "p4", OverallMean: 1.0},
	}
	ranked := Ranking(input)

	if len(ranked) != len(input) {
		t.Fatalf("ranking length %d != input length %d", len(ranked), len(input))
	}
	for i, r := range ranked {
		if r.Rank != i+1 {
			t.Fatalf("ranks must be contiguous 1..N, got rank %d at index %d", r.Rank, i)
		}
	}
	wantOrder := []string{"p2", "p1", "p3", "p4"}
	for i, want := range wantOrder {
		if ranked[i].ProjectID != want {
			t.Fatalf("rank %d = %s, want %s (ties keep input order)", i+1, ranked[i].ProjectID, want)
		}
	}
	// 输入切片不被改动
	if input[0].ProjectID != "p1" {
		t.Fatal("Ranking must not mutate its input")
	}
}

func TestMonitor(t *testing.T) {
	students := []model.Student{
		{StudentID: "s1", Name: "A", OwnGroup: "p1"},
		{StudentID: "s2", Name: "B", OwnGroup: "p9"}, // own group 不在项目列表中
	}
	evals := []model.Evaluation{
		eval("form_1", "s1", "p2", model.AnswerMap{"q1": 4}),
		eval("form_1", "s1", "p3", model.AnswerMap{"q1": 4}),
		eval("form_2", "s1", "p4", model.AnswerMap{"q1": 4}),
	}
	got := Monitor("form_1", students, evals, 3)
	if len(got) != 2 {
		t.Fatalf("monitor must cover every registered student, got %d", len(got))
	}
	s1 := got[0]
	if s1.EvaluatedCount != 2 || s1.TotalToEvaluate != 2 || !s1.Complete {
		t.Fatalf("s1 monitor unexpected: %+v", s1)
	}
	// 分母始终是 totalProjects-1，不管 own_group 在不在列表里
	s2 := got[1]
	if s2.EvaluatedCount != 0 || s2.TotalToEvaluate != 2 || s2.Complete {
		t.Fatalf("s2 monitor unexpected: %+v", s2)
	}
}

func TestMonitorDegenerateZeroProjects(t *testing.T) {
	students := []model.Student{{StudentID: "s1", OwnGroup: "p1"}}
	got := Monitor("form_1", students, nil, 0)
	if got[0].TotalToEvaluate != -1 || !got[0].Complete {
		t.Fatalf("degenerate input handling changed: %+v", got[0])
	}
}

func TestDeadlinePassed(t *testing.T) {
	now := time.Now()
	form := testForm()
	if DeadlinePassed(form, now) {
		t.Fatal("nil deadline must never pass")
	}
	past := now.Add(-time.Hour)
	form.Deadline = &past
	if !DeadlinePassed(form, now) {
		t.Fatal("deadline in the past must be reported as passed")
	}
	form.Deadline = &now
	if DeadlinePassed(form, now) {
		t.Fatal("comparison is strict, now == deadline must not pass")
	}
}

func TestEndToEndExample(t *testing.T) {
	form := &model.EvaluationForm{
		FormID: "form_1",
		Scale:  model.Scale{Min: 1, Max: 5},
		Questions: model.QuestionList{
			{ID: "q1", Order: 1, Active: true},
		},
	}
	projects := []model.Project{
		{ProjectID: "p1", Name: "Group 1"},
		{ProjectID: "p2", Name: "Group 2"},
	}
	evals := []model.Evaluation{
		eval("form_1", "s1", "p2", model.AnswerMap{"q1": 4}),
	}

	statsByProject := AllProjectStats(form, projects, evals)
	p2 := statsByProject[1]
	if p2.EvaluatorCount != 1 || p2.OverallMean != 4.00 || p2.OverallSD != 0.00 {
		t.Fatalf("p2 stats unexpected: %+v", p2)
	}
}
