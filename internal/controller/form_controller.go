package controller

import (
	"peer_eval_backend/internal/service"
	"peer_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FormController struct {
	Service *service.FormService
}

func NewFormController(svc *service.FormService) *FormController {
	return &FormController{Service: svc}
}

// @Summary 表单列表
// @Tags 表单
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/forms [get]
func (c *FormController) List(ctx *gin.Context) {
	forms, err := c.Service.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"forms": forms})
}

// @Summary 表单详情
// @Tags 表单
// @Produce json
// @Security BearerAuth
// @Param id path string true "表单ID"
// @Success 200 {object} util.Response
// @Router /api/forms/{id} [get]
func (c *FormController) Get(ctx *gin.Context) {
	form, err := c.Service.Get(ctx.Param("id"))
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"form": form})
}

// @Summary 当前激活的表单（学生端）
// @Tags 表单
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/active-form [get]
func (c *FormController) GetActive(ctx *gin.Context) {
	form, err := c.Service.GetActive()
	if err == gorm.ErrRecordNotFound {
		util.Success(ctx, gin.H{"form": nil})
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"form": form})
}

// @Summary 创建表单
// @Tags 表单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateFormRequest true "表单定义"
// @Success 201 {object} util.Response
// @Router /api/forms [post]
func (c *FormController) Create(ctx *gin.Context) {
	var req service.CreateFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	form, rejection, err := c.Service.Create(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if rejection != nil {
		util.Reject(ctx, rejection)
		return
	}
	util.Created(ctx, gin.H{"form": form})
}

// @Summary 更新表单（题目软删除规则见服务层）
// @Tags 表单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "表单ID"
// @Param body body service.UpdateFormRequest true "更新内容"
// @Success 200 {object} util.Response
// @Router /api/forms/{id} [put]
func (c *FormController) Update(ctx *gin.Context) {
	var req service.UpdateFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	form, err := c.Service.Update(ctx.Param("id"), req)
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"form": form})
}

// @Summary 克隆表单
// @Tags 表单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "源表单ID"
// @Success 201 {object} util.Response
// @Router /api/forms/{id}/clone [post]
func (c *FormController) Clone(ctx *gin.Context) {
	var body struct {
		Title string `json:"title"`
	}
	// body 可为空，title 缺省时自动加 (copy) 后缀
	_ = ctx.ShouldBindJSON(&body)

	form, err := c.Service.Clone(ctx.Param("id"), body.Title)
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"form": form})
}

// @Summary 激活表单（同时只允许一个激活）
// @Tags 表单
// @Produce json
// @Security BearerAuth
// @Param id path string true "表单ID"
// @Success 200 {object} util.Response
// @Router /api/forms/{id}/activate [post]
func (c *FormController) Activate(ctx *gin.Context) {
	form, err := c.Service.Activate(ctx.Param("id"))
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"form": form})
}
