package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"

	"peer_eval_backend/internal/model"
	"peer_eval_backend/internal/repository"
	"peer_eval_backend/internal/stats"
)

// utf8BOM Excel 打开 UTF-8 CSV 需要的字节序标记
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type ExportService struct {
	FormRepo    *repository.FormRepository
	ProjectRepo *repository.ProjectRepository
	EvalRepo    *repository.EvaluationRepository
	Storage     *StorageService
}

func NewExportService(formRepo *repository.FormRepository, projectRepo *repository.ProjectRepository, evalRepo *repository.EvaluationRepository, storage *StorageService) *ExportService {
	return &ExportService{
		FormRepo:    formRepo,
		ProjectRepo: projectRepo,
		EvalRepo:    evalRepo,
		Storage:     storage,
	}
}

// ExportCSV 生成一个表单的排名 CSV 并异步归档一份副本
func (s *ExportService) ExportCSV(formID string) (string, []byte, error) {
	form, err := s.FormRepo.FindByFormID(formID)
	if err != nil {
		return "", nil, err
	}
	projects, err := s.ProjectRepo.List()
	if err != nil {
		return "", nil, err
	}
	evaluations, err := s.EvalRepo.ListByFormID(formID)
	if err != nil {
		return "", nil, err
	}

	projectStats := stats.AllProjectStats(form, projects, evaluations)
	ranked := stats.Ranking(projectStats)

	data := BuildStatsCSV(form, ranked)
	filename := fmt.Sprintf("stats_%s.csv", formID)

	go s.Storage.Archive(filename, data, "text/csv; charset=utf-8")

	return filename, data, nil
}

// BuildStatsCSV 组装排名 CSV：排名、组名、评价人数、总体均值/标准差，
// 之后是每道启用题目（按题序）的均值列和标准差列，数值统一两位小数。
func BuildStatsCSV(form *model.EvaluationForm, ranked []stats.RankedProject) []byte {
	activeQuestions := form.ActiveQuestions()
	sort.SliceStable(activeQuestions, func(i, j int) bool {
		return activeQuestions[i].Order < activeQuestions[j].Order
	})

	header := []string{"Rank", "Group", "Evaluators", "Overall Mean", "Overall SD"}
	for _, q := range activeQuestions {
		header = append(header, "Mean "+q.ID)
	}
	for _, q := range activeQuestions {
		header = append(header, "SD "+q.ID)
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	w.Write(header)

	for _, r := range ranked {
		byQuestion := make(map[string]stats.QuestionStat, len(r.PerQuestion))
		for _, qs := range r.PerQuestion {
			byQuestion[qs.QuestionID] = qs
		}

		row := []string{
			strconv.Itoa(r.Rank),
			r.ProjectName,
			strconv.Itoa(r.EvaluatorCount),
			fmt.Sprintf("%.2f", r.OverallMean),
			fmt.Sprintf("%.2f", r.OverallSD),
		}
		for _, q := range activeQuestions {
			if qs, ok := byQuestion[q.ID]; ok {
				row = append(row, fmt.Sprintf("%.2f", qs.Mean))
			} else {
				row = append(row, "0.00")
			}
		}
		for _, q := range activeQuestions {
			if qs, ok := byQuestion[q.ID]; ok {
				row = append(row, fmt.Sprintf("%.2f", qs.SD))
			} else {
				row = append(row, "0.00")
			}
		}
		w.Write(row)
	}
	w.Flush()

	return buf.Bytes()
}
