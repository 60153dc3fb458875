package controller

import (
	"peer_eval_backend/internal/model"
	"peer_eval_backend/internal/service"
	"peer_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

type credentialsRequest struct {
	Username string         `json:"username" binding:"required"`
	Password string         `json:"password" binding:"required"`
	Role     model.UserRole `json:"role"`
}

// @Summary 后台账号登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body credentialsRequest true "账号密码"
// @Success 200 {object} util.Response
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.Service.Login(req.Username, req.Password)
	if err != nil {
		util.Error(ctx, 401, err.Error())
		return
	}

	util.Success(ctx, gin.H{
		"token":    token,
		"username": user.Username,
		"role":     user.Role,
	})
}

// @Summary 创建后台账号（首次部署开放，此后仅限管理员）
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body credentialsRequest true "账号信息"
// @Success 200 {object} util.Response
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	caller := util.GetUserFromContext(ctx)
	if err := c.Service.Register(req.Username, req.Password, req.Role, caller); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"ok": true})
}

// @Summary 当前登录账号
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := c.Service.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, gin.H{"username": user.Username, "role": user.Role})
}
