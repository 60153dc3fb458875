package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peer_eval_backend/internal/config"
	"peer_eval_backend/internal/controller"
	"peer_eval_backend/internal/repository"
	"peer_eval_backend/internal/service"
	"peer_eval_backend/pkg/database"
	"peer_eval_backend/pkg/logger"
	"peer_eval_backend/pkg/monitoring"
	"peer_eval_backend/pkg/security"
	"peer_eval_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user       *repository.UserRepository
	project    *repository.ProjectRepository
	student    *repository.StudentRepository
	form       *repository.FormRepository
	evaluation *repository.EvaluationRepository
}

type services struct {
	auth       *service.AuthService
	project    *service.ProjectService
	student    *service.StudentService
	form       *service.FormService
	stats      *service.StatsService
	evaluation *service.EvaluationService
	storage    *service.StorageService
	export     *service.ExportService
}

type controllers struct {
	auth       *controller.AuthController
	project    *controller.ProjectController
	student    *controller.StudentController
	form       *controller.FormController
	stats      *controller.StatsController
	evaluation *controller.EvaluationController
	export     *controller.ExportController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		project:    repository.NewProjectRepository(db),
		student:    repository.NewStudentRepository(db),
		form:       repository.NewFormRepository(db),
		evaluation: repository.NewEvaluationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.project = service.NewProjectService(repos.project)
	s.student = service.NewStudentService(repos.student)
	s.form = service.NewFormService(repos.form, repos.evaluation)
	s.stats = service.NewStatsService(repos.form, repos.project, repos.student, repos.evaluation, rdb)
	s.evaluation = service.NewEvaluationService(repos.evaluation, repos.student, repos.form, s.stats)
	s.storage = service.NewStorageService(cfg)
	s.export = service.NewExportService(repos.form, repos.project, repos.evaluation, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		project:    controller.NewProjectController(s.project),
		student:    controller.NewStudentController(s.student),
		form:       controller.NewFormController(s.form),
		stats:      controller.NewStatsController(s.stats),
		evaluation: controller.NewEvaluationController(s.evaluation),
		export:     controller.NewExportController(s.export),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests == 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window == 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 统计缓存是可选的，Redis 不可用时直接降级为每次重算
		logger.Log.Warn("Redis unavailable, stats caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("peer-eval-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
