package controller

import (
	"fmt"
	"net/http"

	"peer_eval_backend/internal/service"
	"peer_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExportController struct {
	Service *service.ExportService
}

func NewExportController(svc *service.ExportService) *ExportController {
	return &ExportController{Service: svc}
}

// @Summary 导出表单排名 CSV
// @Tags 统计
// @Produce text/csv
// @Security BearerAuth
// @Param form_id query string true "表单ID"
// @Success 200 {string} string "CSV 文件"
// @Router /api/export [get]
func (c *ExportController) ExportCSV(ctx *gin.Context) {
	formID := ctx.Query("form_id")
	if formID == "" {
		util.BadRequest(ctx, "form_id is required")
		return
	}

	filename, data, err := c.Service.ExportCSV(formID)
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
