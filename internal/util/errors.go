package util

import "errors"

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrCourseNotFound   = errors.New("course not found")
	ErrSectionNotFound  = errors.New("section not found")
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAccessDenied     = errors.New("access denied")
	ErrAlreadyEnrolled  = errors.New("already enrolled in this course")
	ErrCourseNotOpen    = errors.New("course not published")
	ErrAnswerNotInQuiz  = errors.New("answer references a question outside this lesson")
	ErrOneCorrectOption = errors.New("question must have exactly one correct option")
	ErrUnauthorized     = errors.New("unauthorized")
)

// IsNotFound 判断是否为“资源不存在”类错误
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrSectionNotFound) ||
		errors.Is(err, ErrLessonNotFound) ||
		errors.Is(err, ErrQuestionNotFound)
}
