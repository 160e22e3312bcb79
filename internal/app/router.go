package app

import (
	"online_course_backend/internal/config"
	"online_course_backend/internal/middleware"
	"online_course_backend/internal/model"
	"online_course_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes 注册全部路由
func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	// Swagger文档
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus指标
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")

	// 公开接口
	public := api.Group("")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/courses", c.course.ListCourses)
	}

	// 可选认证：游客可访问免费试看内容，登录后叠加完成状态
	optional := api.Group("")
	optional.Use(middleware.TryAuthMiddleware(cfg))
	{
		optional.GET("/courses/:id", c.course.GetCourse)
		optional.GET("/courses/:id/access", c.content.CheckAccess)
		optional.GET("/courses/:id/lessons/:lessonId/content", c.content.GetLessonContent)
	}

	// 登录后接口
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(cfg))
	{
		auth.GET("/profile", c.auth.GetProfile)

		auth.POST("/courses/:id/enroll", c.enrollment.Enroll)
		auth.GET("/my/courses", c.enrollment.MyCourses)
		auth.GET("/my/stats", c.learning.GetStats)

		auth.GET("/courses/:id/progress", c.learning.GetCourseProgress)
		auth.POST("/courses/:id/lessons/:lessonId/completion/toggle", c.learning.ToggleCompletion)
		auth.PUT("/courses/:id/lessons/:lessonId/completion", c.learning.SetCompletion)

		auth.POST("/courses/:id/lessons/:lessonId/quiz", c.learning.SubmitQuiz)
		auth.GET("/lessons/:lessonId/quiz/attempt", c.learning.GetQuizAttempt)
	}

	// 讲师接口
	instructor := api.Group("/instructor")
	instructor.Use(middleware.AuthMiddleware(cfg))
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.GET("/courses", c.course.MyTeaching)
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.PUT("/courses/:id", c.course.UpdateCourse)
		instructor.POST("/courses/:id/publish", c.course.PublishCourse)
		instructor.POST("/courses/:id/sections", c.course.AddSection)
		instructor.POST("/sections/:sectionId/lessons", c.course.AddLesson)
		instructor.POST("/lessons/:lessonId/questions", c.course.AddQuestion)
	}
}
