package service

import (
	"errors"
	"online_course_backend/internal/model"
	"online_course_backend/internal/repository"
	"online_course_backend/internal/util"

	"gorm.io/gorm"
)

type AccessReason string

const (
	AccessFreePreview AccessReason = "FREE_PREVIEW"
	AccessOwner       AccessReason = "OWNER"
	AccessEnrolled    AccessReason = "ENROLLED"
	AccessDeniedRes   AccessReason = "DENIED"
)

type AccessDecision struct {
	Granted bool         `json:"granted"`
	Reason  AccessReason `json:"reason"`
}

// AccessService 判定 (用户, 课程, 课时) 的内容访问权限
// 所有进度/测验写入和内容下发都必须先经过这里
type AccessService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewAccessService(courseRepo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository) *AccessService {
	return &AccessService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

// ResolveAccess 按固定优先级判定，命中即返回：
//  1. 指定课时 且 免费试看 且 课程已发布 → FREE_PREVIEW（无需登录）
//  2. 课程归属者 → OWNER（讲师始终可见自己的课，含草稿）
//  3. 存在 ACTIVE 报名 → ENROLLED
//  4. 其余 → DENIED
//
// lessonID 为 0 表示课程级判定。无权限是正常结果，不是错误；
// 只有课程/课时不存在才返回错误
func (s *AccessService) ResolveAccess(userID, courseID, lessonID uint) (*AccessDecision, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}

	if lessonID != 0 {
		lesson, err := s.CourseRepo.FindLessonByID(lessonID)
		if err != nil {
			return nil, err
		}
		if lesson.CourseID != courseID {
			return nil, util.ErrLessonNotFound
		}

		if lesson.IsPreviewFree && course.Status == model.CoursePublished {
			return &AccessDecision{Granted: true, Reason: AccessFreePreview}, nil
		}
	}

	if userID != 0 && course.InstructorID == userID {
		return &AccessDecision{Granted: true, Reason: AccessOwner}, nil
	}

	if userID != 0 {
		has, err := s.EnrollmentRepo.HasActive(userID, courseID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if has {
			return &AccessDecision{Granted: true, Reason: AccessEnrolled}, nil
		}
	}

	return &AccessDecision{Granted: false, Reason: AccessDeniedRes}, nil
}

// RequireAccess 守卫写入口：未授权时返回 ErrAccessDenied
func (s *AccessService) RequireAccess(userID, courseID, lessonID uint) error {
	decision, err := s.ResolveAccess(userID, courseID, lessonID)
	if err != nil {
		return err
	}
	if !decision.Granted {
		return util.ErrAccessDenied
	}
	return nil
}
