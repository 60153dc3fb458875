package controller

import (
	"peer_eval_backend/internal/service"
	"peer_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	Service *service.StudentService
}

func NewStudentController(svc *service.StudentService) *StudentController {
	return &StudentController{Service: svc}
}

// @Summary 学生注册（重复注册只改写所在组）
// @Tags 学生
// @Accept json
// @Produce json
// @Param body body service.RegisterStudentRequest true "学生信息"
// @Success 201 {object} util.Response
// @Router /api/register [post]
func (c *StudentController) Register(ctx *gin.Context) {
	var req service.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, created, rejection, err := c.Service.Register(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if rejection != nil {
		util.Reject(ctx, rejection)
		return
	}
	if created {
		util.Created(ctx, gin.H{"student": student})
		return
	}
	util.Success(ctx, gin.H{"student": student})
}

// @Summary 学生列表
// @Tags 学生
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/students [get]
func (c *StudentController) List(ctx *gin.Context) {
	students, err := c.Service.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"students": students})
}
