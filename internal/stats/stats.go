// Package stats 聚合引擎：对一个表单下的全部评价计算项目统计、排名
// 与学生完成度。所有函数都是纯函数，数据由调用方一次性传入，
// 空输入一律退化为零值，不会返回错误。
package stats

import (
	"math"
	"sort"
	"time"

	"peer_eval_backend/internal/model"
)

// orderSentinel 表单上已不存在定义的题目排到最后
const orderSentinel = 999

type QuestionStat struct {
	QuestionID   string  `json:"question_id"`
	QuestionText string  `json:"question_text"`
	Mean         float64 `json:"mean"`
	SD           float64 `json:"sd"`
	Count        int     `json:"count"`
}

type ProjectStat struct {
	ProjectID      string         `json:"project_id"`
	ProjectName    string         `json:"project_name"`
	EvaluatorCount int            `json:"evaluator_count"`
	OverallMean    float64        `json:"overall_mean"`
	OverallSD      float64        `json:"overall_sd"`
	PerQuestion    []QuestionStat `json:"per_question"`
}

type RankedProject struct {
	ProjectStat
	Rank int `json:"rank"`
}

type StudentMonitor struct {
	StudentID       string `json:"student_id"`
	Name            string `json:"name"`
	OwnGroup        string `json:"own_group"`
	EvaluatedCount  int    `json:"evaluated_count"`
	TotalToEvaluate int    `json:"total_to_evaluate"`
	Complete        bool   `json:"complete"`
}

// Mean 均值，空集约定为 0
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SD 总体标准差（除以 N，不做贝塞尔校正），空集约定为 0
func SD(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	avg := Mean(values)
	var sum float64
	for _, v := range values {
		d := v - avg
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AllProjectStats 对每个项目组计算评价人数、逐题均值/标准差以及
// 全部原始分数合并后的总体均值/标准差（pooled，而非均值的均值）。
// 逐题统计覆盖所有在答卷中出现过的题目 id，包括已停用的题目，
// 历史数据不会在报表中被静默丢弃。
func AllProjectStats(form *model.EvaluationForm, projects []model.Project, evaluations []model.Evaluation) []ProjectStat {
	formEvals := make([]model.Evaluation, 0, len(evaluations))
	for _, e := range evaluations {
		if e.FormID == form.FormID {
			formEvals = append(formEvals, e)
		}
	}

	result := make([]ProjectStat, 0, len(projects))
	for _, project := range projects {
		var evals []model.Evaluation
		for _, e := range formEvals {
			if e.ProjectID == project.ProjectID {
				evals = append(evals, e)
			}
		}

		seen := make(map[string]bool)
		var questionIDs []string
		for _, e := range evals {
			for qid := range e.Answers {
				if !seen[qid] {
					seen[qid] = true
					questionIDs = append(questionIDs, qid)
				}
			}
		}
		// map 迭代顺序不定，先按 id 排一次保证确定性，再按表单题序排
		sort.Strings(questionIDs)
		sort.SliceStable(questionIDs, func(i, j int) bool {
			return questionOrder(form, questionIDs[i]) < questionOrder(form, questionIDs[j])
		})

		perQuestion := make([]QuestionStat, 0, len(questionIDs))
		for _, qid := range questionIDs {
			var scores []float64
			for _, e := range evals {
				if v, ok := e.Answers[qid]; ok {
					scores = append(scores, float64(v))
				}
			}
			text := qid
			if q := form.FindQuestion(qid); q != nil {
				text = q.Text
			}
			perQuestion = append(perQuestion, QuestionStat{
				QuestionID:   qid,
				QuestionText: text,
				Mean:         round2(Mean(scores)),
				SD:           round2(SD(scores)),
				Count:        len(scores),
			})
		}

		var allScores []float64
		for _, e := range evals {
			for _, v := range e.Answers {
				allScores = append(allScores, float64(v))
			}
		}

		result = append(result, ProjectStat{
			ProjectID:      project.ProjectID,
			ProjectName:    project.Name,
			EvaluatorCount: len(evals),
			OverallMean:    round2(Mean(allScores)),
			OverallSD:      round2(SD(allScores)),
			PerQuestion:    perQuestion,
		})
	}
	return result
}

func questionOrder(form *model.EvaluationForm, qid string) int {
	if q := form.FindQuestion(qid); q != nil {
		return q.Order
	}
	return orderSentinel
}

// Ranking 按总体均值降序稳定排序并标注 1 起始名次。
// 同分时保持输入（项目列表）中的先后顺序。
func Ranking(projectStats []ProjectStat) []RankedProject {
	sorted := make([]ProjectStat, len(projectStats))
	copy(sorted, projectStats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OverallMean > sorted[j].OverallMean
	})

	ranked := make([]RankedProject, len(sorted))
	for i, s := range sorted {
		ranked[i] = RankedProject{ProjectStat: s, Rank: i + 1}
	}
	return ranked
}

// Monitor 统计每个已注册学生在该表单下的完成进度。
// 每人应评数 = 项目组总数 - 1（扣除自己所在组，无论该组是否仍在列表中）。
func Monitor(formID string, students []model.Student, evaluations []model.Evaluation, totalProjects int) []StudentMonitor {
	var formEvals []model.Evaluation
	for _, e := range evaluations {
		if e.FormID == formID {
			formEvals = append(formEvals, e)
		}
	}

	result := make([]StudentMonitor, 0, len(students))
	for _, student := range students {
		count := 0
		for _, e := range formEvals {
			if e.StudentID == student.StudentID {
				count++
			}
		}
		toEvaluate := totalProjects - 1
		result = append(result, StudentMonitor{
			StudentID:       student.StudentID,
			Name:            student.Name,
			OwnGroup:        student.OwnGroup,
			EvaluatedCount:  count,
			TotalToEvaluate: toEvaluate,
			Complete:        count >= toEvaluate,
		})
	}
	return result
}

// DeadlinePassed 截止判断，未设置截止时间视为未过期，比较为严格大于
func DeadlinePassed(form *model.EvaluationForm, now time.Time) bool {
	if form.Deadline == nil {
		return false
	}
	return now.After(*form.Deadline)
}
