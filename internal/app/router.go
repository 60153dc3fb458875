package app

import (
	"peer_eval_backend/docs"
	"peer_eval_backend/internal/config"
	"peer_eval_backend/internal/middleware"
	"peer_eval_backend/internal/model"
	"peer_eval_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 学生端无需登录
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/login", c.auth.Login)
		// 首次部署时开放，之后在控制器内要求管理员身份
		public.POST("/auth/register", middleware.TryAuthMiddleware(cfg), c.auth.Register)

		public.POST("/register", c.student.Register)
		public.GET("/projects", c.project.List)
		public.GET("/active-form", c.form.GetActive)
		public.POST("/evaluate", c.evaluation.Submit)
	}

	// 教师/管理员接口
	staff := router.Group("/api")
	staff.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Staff))
	{
		staff.GET("/auth/me", c.auth.Me)

		staff.GET("/stats", c.stats.GetStats)
		staff.GET("/export", c.export.ExportCSV)
		staff.GET("/students", c.student.List)

		staff.POST("/projects", c.project.Create)
		staff.PUT("/projects/:id", c.project.Rename)
		staff.DELETE("/projects/:id", c.project.Delete)

		staff.GET("/forms", c.form.List)
		staff.POST("/forms", c.form.Create)
		staff.GET("/forms/:id", c.form.Get)
		staff.PUT("/forms/:id", c.form.Update)
		staff.POST("/forms/:id/clone", c.form.Clone)
		staff.POST("/forms/:id/activate", c.form.Activate)
	}
}
