package controller

import (
	"peer_eval_backend/internal/service"
	"peer_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StatsController struct {
	Service *service.StatsService
}

func NewStatsController(svc *service.StatsService) *StatsController {
	return &StatsController{Service: svc}
}

// @Summary 查看表单的项目统计、排名与学生完成度
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param form_id query string true "表单ID"
// @Success 200 {object} util.Response
// @Router /api/stats [get]
func (c *StatsController) GetStats(ctx *gin.Context) {
	formID := ctx.Query("form_id")
	if formID == "" {
		util.BadRequest(ctx, "form_id is required")
		return
	}

	result, err := c.Service.ComputeStats(formID)
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
