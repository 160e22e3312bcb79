package controller

import (
	"errors"
	"online_course_backend/internal/service"
	"online_course_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
	AccessService  *service.AccessService
}

func NewContentController(contentService *service.ContentService, accessService *service.AccessService) *ContentController {
	return &ContentController{
		ContentService: contentService,
		AccessService:  accessService,
	}
}

// @Summary 课时内容
// @Description 免费试看课时无需登录；其余需要报名或归属权。未登录401，无权限403，不存在404
// @Tags 内容
// @Produce json
// @Param id path int true "课程ID"
// @Param lessonId path int true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/lessons/{lessonId}/content [get]
func (c *ContentController) GetLessonContent(ctx *gin.Context) {
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

	claims := util.GetUserFromContext(ctx)
	var userID uint
	if claims != nil {
		userID = claims.UserID
	}

	content, err := c.ContentService.LessonContentURL(ctx.Request.Context(), userID, uint(courseID), uint(lessonID))
	if err != nil {
		// 游客被拒按未认证处理
		if errors.Is(err, util.ErrAccessDenied) && claims == nil {
			util.Unauthorized(ctx)
			return
		}
		respondError(ctx, err)
		return
	}

	util.Success(ctx, content)
}

// @Summary 访问权限查询
// @Description 返回判定结果与原因（FREE_PREVIEW/OWNER/ENROLLED/DENIED），无权限不是错误
// @Tags 内容
// @Produce json
// @Param id path int true "课程ID"
// @Param lessonId query int false "课时ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/access [get]
func (c *ContentController) CheckAccess(ctx *gin.Context) {
	courseID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid course ID")
		return
	}

	lessonID := 0
	if raw := ctx.Query("lessonId"); raw != "" {
		lessonID, err = strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "Invalid lesson ID")
			return
		}
	}

	var userID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	decision, err := c.AccessService.ResolveAccess(userID, uint(courseID), uint(lessonID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, decision)
}
