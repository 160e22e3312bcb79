package controller

import (
	"online_course_backend/internal/service"
	"online_course_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// @Summary 报名课程
// @Description 报名已发布课程，重复报名返回409
// @Tags 报名
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 201 {object} util.Response
// @Router /api/courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
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

	enrollment, err := c.EnrollmentService.Enroll(user.UserID, uint(courseID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, enrollment)
}

// @Summary 我的课程
// @Description 列出全部 ACTIVE 报名及各课程进度
// @Tags 报名
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/my/courses [get]
func (c *EnrollmentController) MyCourses(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.EnrollmentService.MyCourses(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, courses)
}
