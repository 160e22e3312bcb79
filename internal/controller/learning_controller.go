package controller

import (
	"online_course_backend/internal/service"
	"online_course_backend/internal/util"
	"online_course_backend/pkg/logger"
	"online_course_backend/pkg/monitoring"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LearningController 学习进度与测验入口
type LearningController struct {
	ProgressService *service.ProgressService
	QuizService     *service.QuizService
}

func NewLearningController(progressService *service.ProgressService, quizService *service.QuizService) *LearningController {
	return &LearningController{
		ProgressService: progressService,
		QuizService:     quizService,
	}
}

type SetCompletionRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// @Summary 翻转课时完成状态
// @Description 首次调用标记完成，再次调用取消
// @Tags 学习
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param lessonId path int true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/lessons/{lessonId}/completion/toggle [post]
func (c *LearningController) ToggleCompletion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid course ID")
		return
	}
	lessonID, err := strconv.Atoi(ctx.Param("lessonId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid lesson ID")
		return
	}

	progress, err := c.ProgressService.ToggleCompletion(user.UserID, uint(lessonID), uint(courseID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 设置课时完成状态
// @Tags 学习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param lessonId path int true "课时ID"
// @Param body body SetCompletionRequest true "完成状态"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/lessons/{lessonId}/completion [put]
func (c *LearningController) SetCompletion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid course ID")
		return
	}
	lessonID, err := strconv.Atoi(ctx.Param("lessonId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid lesson ID")
		return
	}

	var req SetCompletionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.SetCompletion(user.UserID, uint(lessonID), uint(courseID), *req.Completed)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 课程学习进度
// @Tags 学习
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/progress [get]
func (c *LearningController) GetCourseProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid course ID")
		return
	}

	progress, err := c.ProgressService.CourseProgress(user.UserID, uint(courseID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 学习总览
// @Description 全部报名课程的汇总统计
// @Tags 学习
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/my/stats [get]
func (c *LearningController) GetStats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.ProgressService.AggregateStats(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// @Summary 提交测验答案
// @Description 评分并覆盖写入当前成绩；通过后顺带标记课时完成
// @Tags 学习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param lessonId path int true "课时ID"
// @Param answers body service.QuizSubmission true "答卷"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/lessons/{lessonId}/quiz [post]
func (c *LearningController) SubmitQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid course ID")
		return
	}
	lessonID, err := strconv.Atoi(ctx.Param("lessonId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid lesson ID")
		return
	}

	var submission service.QuizSubmission
	if err := ctx.ShouldBindJSON(&submission); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.QuizService.SubmitAttempt(user.UserID, uint(courseID), uint(lessonID), submission.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}

	monitoring.QuizSubmissions.WithLabelValues(strconv.FormatBool(attempt.Passed)).Inc()

	// 通过测验即视为完成该课时，由调用方落账
	if attempt.Passed {
		if _, err := c.ProgressService.SetCompletion(user.UserID, uint(lessonID), uint(courseID), true); err != nil {
			logger.Log.Error("mark lesson complete after passed quiz", zap.Error(err))
		}
	}

	util.Success(ctx, attempt)
}

// @Summary 当前测验成绩
// @Tags 学习
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{lessonId}/quiz/attempt [get]
func (c *LearningController) GetQuizAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID, err := strconv.Atoi(ctx.Param("lessonId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid lesson ID")
		return
	}

	attempt, err := c.QuizService.CurrentAttempt(user.UserID, uint(lessonID))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, attempt)
}
