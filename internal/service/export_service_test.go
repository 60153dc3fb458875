package service

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"peer_eval_backend/internal/model"
	"peer_eval_backend/internal/stats"
)

func TestBuildStatsCSV(t *testing.T) {
	form := &model.EvaluationForm{
		FormID: "form_1",
		Scale:  model.Scale{Min: 1, Max: 5},
		Questions: model.QuestionList{
			{ID: "q2", Text: "展示表现", Order: 2, Active: true},
			{ID: "q1", Text: "内容质量", Order: 1, Active: true},
			{ID: "q0", Text: "停用题", Order: 0, Active: false},
		},
	}
	ranked := []stats.RankedProject{
		{
			Rank: 1,
			ProjectStat: stats.ProjectStat{
				ProjectID:      "p1",
				ProjectName:    "Group 1",
				EvaluatorCount: 2,
				OverallMean:    4.5,
				OverallSD:      0.5,
				PerQuestion: []stats.QuestionStat{
					{QuestionID: "q1", Mean: 5, SD: 0, Count: 2},
				},
			},
		},
	}

	data := BuildStatsCSV(form, ranked)

	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("CSV must start with a UTF-8 BOM for Excel")
	}

	r := csv.NewReader(strings.NewReader(string(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))))
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("generated CSV does not parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}

	// 停用题不出现在表头，启用题按题序排列
	wantHeader := []string{"Rank", "Group", "Evaluators", "Overall Mean", "Overall SD", "Mean q1", "Mean q2", "SD q1", "SD q2"}
	for i, h := range wantHeader {
		if rows[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}

	row := rows[1]
	if row[0] != "1" || row[1] != "Group 1" || row[2] != "2" || row[3] != "4.50" || row[4] != "0.50" {
		t.Fatalf("row values unexpected: %v", row)
	}
	// q2 没有统计数据时补 0.00
	if row[5] != "5.00" || row[6] != "0.00" || row[7] != "0.00" || row[8] != "0.00" {
		t.Fatalf("per-question columns unexpected: %v", row)
	}
}
