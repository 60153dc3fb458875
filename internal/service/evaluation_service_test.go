package service

import (
	"testing"
	"time"

	"peer_eval_backend/internal/model"
	"peer_eval_backend/internal/util"
)

func activeForm() *model.EvaluationForm {
	return &model.EvaluationForm{
		FormID: "form_1",
		Active: true,
		Scale:  model.Scale{Min: 1, Max: 5},
		Questions: model.QuestionList{
			{ID: "q1", Text: "内容质量", Order: 1, Active: true},
			{ID: "q2", Text: "展示表现", Order: 2, Active: true},
			{ID: "q3", Text: "旧题目", Order: 3, Active: false},
		},
	}
}

func registeredStudent() *model.Student {
	return &model.Student{StudentID: "s1", Name: "A", OwnGroup: "p1"}
}

func validRequest() SubmitRequest {
	return SubmitRequest{
		StudentID: "s1",
		ProjectID: "p2",
		Answers:   map[string]interface{}{"q1": float64(4), "q2": float64(5)},
	}
}

func TestValidateSubmissionOrderedRejections(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	expiredForm := activeForm()
	expiredForm.Deadline = &past

	cases := []struct {
		name      string
		req       SubmitRequest
		form      *model.EvaluationForm
		student   *model.Student
		duplicate bool
		wantCode  string
	}{
		{"missing student_id", SubmitRequest{ProjectID: "p2", Answers: map[string]interface{}{}}, activeForm(), registeredStudent(), false, "MISSING_FIELDS"},
		{"missing answers", SubmitRequest{StudentID: "s1", ProjectID: "p2"}, activeForm(), registeredStudent(), false, "MISSING_FIELDS"},
		{"no active form", validRequest(), nil, registeredStudent(), false, "NO_ACTIVE_FORM"},
		{"deadline passed", validRequest(), expiredForm, registeredStudent(), false, "DEADLINE_PASSED"},
		{"student not registered", validRequest(), activeForm(), nil, false, "STUDENT_NOT_FOUND"},
		{"self evaluation", SubmitRequest{StudentID: "s1", ProjectID: "p1", Answers: map[string]interface{}{"q1": 4.0, "q2": 5.0}}, activeForm(), registeredStudent(), false, "SELF_EVALUATION_FORBIDDEN"},
		{"duplicate", validRequest(), activeForm(), registeredStudent(), true, "DUPLICATE_EVALUATION"},
		{"incomplete answers", SubmitRequest{StudentID: "s1", ProjectID: "p2", Answers: map[string]interface{}{"q1": 4.0}}, activeForm(), registeredStudent(), false, "INCOMPLETE_ANSWERS"},
		{"score above max", SubmitRequest{StudentID: "s1", ProjectID: "p2", Answers: map[string]interface{}{"q1": 6.0, "q2": 5.0}}, activeForm(), registeredStudent(), false, "SCORE_OUT_OF_RANGE"},
		{"score below min", SubmitRequest{StudentID: "s1", ProjectID: "p2", Answers: map[string]interface{}{"q1": 0.0, "q2": 5.0}}, activeForm(), registeredStudent(), false, "SCORE_OUT_OF_RANGE"},
		{"score not numeric", SubmitRequest{StudentID: "s1", ProjectID: "p2", Answers: map[string]interface{}{"q1": "abc", "q2": 5.0}}, activeForm(), registeredStudent(), false, "SCORE_OUT_OF_RANGE"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, rejection := validateSubmission(c.req, c.form, c.student, c.duplicate, now)
			if rejection == nil {
				t.Fatalf("expected rejection %s, got success", c.wantCode)
			}
			if rejection.Code != c.wantCode {
				t.Fatalf("rejection code = %s, want %s", rejection.Code, c.wantCode)
			}
		})
	}
}

// 截止检查排在学生查找之前：表单已过期时即便学生未注册也应报 DEADLINE_PASSED
func TestValidateSubmissionCheckOrder(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	form := activeForm()
	form.Deadline = &past

	_, rejection := validateSubmission(validRequest(), form, nil, true, now)
	if rejection == nil || rejection.Code != "DEADLINE_PASSED" {
		t.Fatalf("expected DEADLINE_PASSED to win over later checks, got %+v", rejection)
	}
}

func TestValidateSubmissionBoundaryScores(t *testing.T) {
	now := time.Now()
	req := SubmitRequest{
		StudentID: "s1",
		ProjectID: "p2",
		Answers:   map[string]interface{}{"q1": 1.0, "q2": 5.0},
	}
	answers, rejection := validateSubmission(req, activeForm(), registeredStudent(), false, now)
	if rejection != nil {
		t.Fatalf("boundary scores must be accepted, got %v", rejection)
	}
	if answers["q1"] != 1 || answers["q2"] != 5 {
		t.Fatalf("answers coerced incorrectly: %+v", answers)
	}
}

func TestValidateSubmissionDropsExtraneousKeys(t *testing.T) {
	now := time.Now()
	req := validRequest()
	req.Answers["q3"] = 4.0     // inactive：不要求也不接受
	req.Answers["bogus"] = 99.0 // 未知键直接丢弃
	answers, rejection := validateSubmission(req, activeForm(), registeredStudent(), false, now)
	if rejection != nil {
		t.Fatalf("unexpected rejection: %v", rejection)
	}
	if len(answers) != 2 {
		t.Fatalf("only active-question answers should be kept, got %+v", answers)
	}
	if _, ok := answers["q3"]; ok {
		t.Fatal("inactive question answer must be dropped")
	}
}

func TestValidateSubmissionCoercesStringScores(t *testing.T) {
	now := time.Now()
	req := SubmitRequest{
		StudentID: "s1",
		ProjectID: "p2",
		Answers:   map[string]interface{}{"q1": "4", "q2": "5"},
	}
	answers, rejection := validateSubmission(req, activeForm(), registeredStudent(), false, now)
	if rejection != nil {
		t.Fatalf("numeric strings must be accepted, got %v", rejection)
	}
	if answers["q1"] != 4 || answers["q2"] != 5 {
		t.Fatalf("string coercion wrong: %+v", answers)
	}
}

func TestValidateSubmissionScoreMessageIncludesBounds(t *testing.T) {
	now := time.Now()
	req := SubmitRequest{
		StudentID: "s1",
		ProjectID: "p2",
		Answers:   map[string]interface{}{"q1": 6.0, "q2": 5.0},
	}
	_, rejection := validateSubmission(req, activeForm(), registeredStudent(), false, now)
	want := util.ErrScoreOutOfRange(1, 5)
	if rejection.Code != want.Code || rejection.Message != want.Message {
		t.Fatalf("rejection = %+v, want %+v", rejection, want)
	}
}
