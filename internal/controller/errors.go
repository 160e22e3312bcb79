package controller

import (
	"errors"
	"online_course_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError 服务层错误到HTTP状态码的统一映射
// 存储层错误不吞掉，记录后以500返回
func respondError(ctx *gin.Context, err error) {
	switch {
	case util.IsNotFound(err):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAccessDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrAlreadyEnrolled):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrAnswerNotInQuiz),
		errors.Is(err, util.ErrCourseNotOpen),
		errors.Is(err, util.ErrOneCorrectOption),
		errors.Is(err, util.ErrEmailRegistered):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
