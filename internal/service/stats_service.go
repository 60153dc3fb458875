package service

import (
	"context"
	"encoding/json"
	"time"

	"peer_eval_backend/internal/repository"
	"peer_eval_backend/internal/stats"
	"peer_eval_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	statsCacheKeyPrefix = "peer_eval:stats:"
	statsCacheTTL       = 5 * time.Minute
)

type StatsService struct {
	FormRepo    *repository.FormRepository
	ProjectRepo *repository.ProjectRepository
	StudentRepo *repository.StudentRepository
	EvalRepo    *repository.EvaluationRepository
	Redis       *redis.Client
}

func NewStatsService(formRepo *repository.FormRepository, projectRepo *repository.ProjectRepository, studentRepo *repository.StudentRepository, evalRepo *repository.EvaluationRepository, rdb *redis.Client) *StatsService {
	return &StatsService{
		FormRepo:    formRepo,
		ProjectRepo: projectRepo,
		StudentRepo: studentRepo,
		EvalRepo:    evalRepo,
		Redis:       rdb,
	}
}

// StatsResult 对应 GET /api/stats 的响应体
type StatsResult struct {
	FormID         string                 `json:"form_id"`
	FormTitle      string                 `json:"form_title"`
	ProjectStats   []stats.ProjectStat    `json:"project_stats"`
	Ranking        []stats.RankedProject  `json:"ranking"`
	StudentMonitor []stats.StudentMonitor `json:"student_monitor"`
}

// ComputeStats 拉取表单相关集合后交给纯函数聚合。
// 结果短暂缓存在 Redis，提交新评价时失效。
func (s *StatsService) ComputeStats(formID string) (*StatsResult, error) {
	ctx := context.Background()
	cacheKey := statsCacheKeyPrefix + formID

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached StatsResult
			if json.Unmarshal([]byte(val), &cached) == nil {
				return &cached, nil
			}
		}
	}

	form, err := s.FormRepo.FindByFormID(formID)
	if err != nil {
		return nil, err
	}
	projects, err := s.ProjectRepo.List()
	if err != nil {
		return nil, err
	}
	students, err := s.StudentRepo.List()
	if err != nil {
		return nil, err
	}
	evaluations, err := s.EvalRepo.ListByFormID(formID)
	if err != nil {
		return nil, err
	}

	projectStats := stats.AllProjectStats(form, projects, evaluations)
	result := &StatsResult{
		FormID:         formID,
		FormTitle:      form.Title,
		ProjectStats:   projectStats,
		Ranking:        stats.Ranking(projectStats),
		StudentMonitor: stats.Monitor(formID, students, evaluations, len(projects)),
	}

	if s.Redis != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, statsCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache stats", zap.String("form_id", formID), zap.Error(err))
			}
		}
	}
	return result, nil
}

// InvalidateCache 新评价提交后调用
func (s *StatsService) InvalidateCache(formID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), statsCacheKeyPrefix+formID).Err(); err != nil {
		logger.Log.Warn("failed to invalidate stats cache", zap.String("form_id", formID), zap.Error(err))
	}
}
