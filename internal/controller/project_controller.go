package controller

import (
	"peer_eval_backend/internal/service"
	"peer_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectController struct {
	Service *service.ProjectService
}

func NewProjectController(svc *service.ProjectService) *ProjectController {
	return &ProjectController{Service: svc}
}

// @Summary 项目组列表
// @Tags 项目组
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/projects [get]
func (c *ProjectController) List(ctx *gin.Context) {
	projects, err := c.Service.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"projects": projects})
}

// @Summary 新建项目组
// @Tags 项目组
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response
// @Router /api/projects [post]
func (c *ProjectController) Create(ctx *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	project, rejection, err := c.Service.Create(body.Name)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if rejection != nil {
		util.Reject(ctx, rejection)
		return
	}
	util.Created(ctx, gin.H{"project": project})
}

// @Summary 重命名项目组
// @Tags 项目组
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目组ID"
// @Success 200 {object} util.Response
// @Router /api/projects/{id} [put]
func (c *ProjectController) Rename(ctx *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	project, rejection, err := c.Service.Rename(ctx.Param("id"), body.Name)
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if rejection != nil {
		util.Reject(ctx, rejection)
		return
	}
	util.Success(ctx, gin.H{"project": project})
}

// @Summary 删除项目组（不级联删除历史评价）
// @Tags 项目组
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目组ID"
// @Success 200 {object} util.Response
// @Router /api/projects/{id} [delete]
func (c *ProjectController) Delete(ctx *gin.Context) {
	err := c.Service.Delete(ctx.Param("id"))
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"success": true})
}
