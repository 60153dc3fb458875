package controller

import (
	"peer_eval_backend/internal/service"
	"peer_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EvaluationController struct {
	Service *service.EvaluationService
}

func NewEvaluationController(svc *service.EvaluationService) *EvaluationController {
	return &EvaluationController{Service: svc}
}

// @Summary 提交互评
// @Tags 评价
// @Accept json
// @Produce json
// @Param body body service.SubmitRequest true "评价内容"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/evaluate [post]
func (c *EvaluationController) Submit(ctx *gin.Context) {
	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	evaluation, rejection, err := c.Service.Submit(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if rejection != nil {
		util.Reject(ctx, rejection)
		return
	}

	util.Created(ctx, gin.H{"evaluation": evaluation})
}
