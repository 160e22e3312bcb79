package controller

import (
	"online_course_backend/internal/service"
	"online_course_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// @Summary 课程目录
// @Description 分页列出已发布课程
// @Tags 课程
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	courses, total, err := c.CourseService.ListPublished(page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  courses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 课程详情
// @Description 目录树，登录用户附带完成状态与进度
// @Tags 课程
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid course ID")
		return
	}

	var userID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	detail, err := c.CourseService.Detail(userID, uint(courseID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// @Summary 创建课程
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param course body service.CourseRequest true "课程信息"
// @Success 201 {object} util.Response
// @Router /api/instructor/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(user.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// @Summary 更新课程
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param course body service.CourseRequest true "课程信息"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
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

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(user.UserID, uint(courseID), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// @Summary 发布课程
// @Description 发布后课程进入目录，免费试看课时对游客可见
// @Tags 课程管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id}/publish [post]
func (c *CourseController) PublishCourse(ctx *gin.Context) {
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

	course, err := c.CourseService.PublishCourse(user.UserID, uint(courseID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// @Summary 我的教学课程
// @Tags 课程管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/courses [get]
func (c *CourseController) MyTeaching(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.ListByInstructor(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, courses)
}

// @Summary 新增小节
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param section body service.SectionRequest true "小节信息"
// @Success 201 {object} util.Response
// @Router /api/instructor/courses/{id}/sections [post]
func (c *CourseController) AddSection(ctx *gin.Context) {
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

	var req service.SectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	section, err := c.CourseService.AddSection(user.UserID, uint(courseID), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, section)
}

// @Summary 新增课时
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param sectionId path int true "小节ID"
// @Param lesson body service.LessonRequest true "课时信息"
// @Success 201 {object} util.Response
// @Router /api/instructor/sections/{sectionId}/lessons [post]
func (c *CourseController) AddLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	sectionID, err := strconv.Atoi(ctx.Param("sectionId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid section ID")
		return
	}

	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CourseService.AddLesson(user.UserID, uint(sectionID), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, lesson)
}

// @Summary 新增测验题目
// @Description 题目连同选项创建，要求恰好一个正确选项
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "课时ID"
// @Param question body service.QuizQuestionRequest true "题目信息"
// @Success 201 {object} util.Response
// @Router /api/instructor/lessons/{lessonId}/questions [post]
func (c *CourseController) AddQuestion(ctx *gin.Context) {
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

	var req service.QuizQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.CourseService.AddQuestion(user.UserID, uint(lessonID), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, question)
}
