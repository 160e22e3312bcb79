package app

import (
	"context"
	"log"
	"net/http"
	"online_course_backend/internal/config"
	"online_course_backend/internal/controller"
	"online_course_backend/internal/repository"
	"online_course_backend/internal/service"
	"online_course_backend/pkg/configwatcher"
	"online_course_backend/pkg/database"
	"online_course_backend/pkg/logger"
	"online_course_backend/pkg/monitoring"
	"online_course_backend/pkg/security"
	"online_course_backend/pkg/tracing"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	course     *repository.CourseRepository
	enrollment *repository.EnrollmentRepository
	progress   *repository.LessonProgressRepository
	quiz       *repository.QuizRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	hierarchy  *service.HierarchyService
	access     *service.AccessService
	progress   *service.ProgressService
	quiz       *service.QuizService
	course     *service.CourseService
	enrollment *service.EnrollmentService
	content    *service.ContentService
}

type controllers struct {
	auth       *controller.AuthController
	course     *controller.CourseController
	enrollment *controller.EnrollmentController
	learning   *controller.LearningController
	content    *controller.ContentController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		course:     repository.NewCourseRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		progress:   repository.NewLessonProgressRepository(db),
		quiz:       repository.NewQuizRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.hierarchy = service.NewHierarchyService(repos.course)
	s.access = service.NewAccessService(repos.course, repos.enrollment)
	s.progress = service.NewProgressService(repos.progress, repos.enrollment, repos.course, s.hierarchy, s.access, rdb)
	s.quiz = service.NewQuizService(repos.quiz, repos.course, s.access)
	s.course = service.NewCourseService(repos.course, repos.quiz, repos.progress, s.hierarchy, s.progress)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, s.progress)
	s.content = service.NewContentService(repos.course, s.access, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		course:     controller.NewCourseController(s.course),
		enrollment: controller.NewEnrollmentController(s.enrollment),
		learning:   controller.NewLearningController(s.progress, s.quiz),
		content:    controller.NewContentController(s.content, s.access),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("course-platform", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 配置热更新：config.yaml 被修改后重新加载并通知各订阅方
	go configwatcher.WatchConfig("configs/config.yaml", a.Config, func(newCfg interface{}) {
		reloaded, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		logger.Log.Info("Config reloaded")
		for _, callback := range a.configCallbacks {
			callback(reloaded)
		}
	})

	// 启动服务器
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

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
