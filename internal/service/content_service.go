package service

import (
	"context"
	"online_course_backend/internal/model"
	"online_course_backend/internal/repository"
	"online_course_backend/internal/util"
)

// ContentService 课时内容下发边界：先走访问解析，再换取内容URL
type ContentService struct {
	CourseRepo *repository.CourseRepository
	Access     *AccessService
	Storage    *StorageService
}

func NewContentService(courseRepo *repository.CourseRepository, access *AccessService, storage *StorageService) *ContentService {
	return &ContentService{
		CourseRepo: courseRepo,
		Access:     access,
		Storage:    storage,
	}
}

type LessonContent struct {
	LessonID    uint                    `json:"lessonId"`
	ContentType model.LessonContentType `json:"contentType"`
	URL         string                  `json:"url,omitempty"`
	Reason      AccessReason            `json:"reason"`
}

// LessonContentURL 仅在解析通过后签发内容URL，未授权返回 ErrAccessDenied
func (s *ContentService) LessonContentURL(ctx context.Context, userID, courseID, lessonID uint) (*LessonContent, error) {
	decision, err := s.Access.ResolveAccess(userID, courseID, lessonID)
	if err != nil {
		return nil, err
	}
	if !decision.Granted {
		return nil, util.ErrAccessDenied
	}

	lesson, err := s.CourseRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, err
	}

	content := &LessonContent{
		LessonID:    lesson.ID,
		ContentType: lesson.ContentType,
		Reason:      decision.Reason,
	}

	// 测验类课时没有存储对象，题目走测验接口
	if lesson.ContentKey != "" {
		url, err := s.Storage.ContentURL(ctx, lesson.ContentKey)
		if err != nil {
			return nil, err
		}
		content.URL = url
	}

	return content, nil
}
