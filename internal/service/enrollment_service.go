package service

import (
	"errors"
	"online_course_backend/internal/model"
	"online_course_backend/internal/repository"
	"online_course_backend/internal/util"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	Progress       *ProgressService
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	progress *ProgressService,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		Progress:       progress,
	}
}

// Enroll 报名已发布课程，(user_id, course_id) 唯一索引兜底防止重复报名
func (s *EnrollmentService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course.Status != model.CoursePublished {
		return nil, util.ErrCourseNotOpen
	}

	_, err = s.EnrollmentRepo.FindActive(userID, courseID)
	if err == nil {
		return nil, util.ErrAlreadyEnrolled
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   model.EnrollmentActive,
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

type EnrolledCourse struct {
	Enrollment model.Enrollment `json:"enrollment"`
	Progress   *CourseProgress  `json:"progress"`
}

// MyCourses 我的课程列表，附带各课程进度
func (s *EnrollmentService) MyCourses(userID uint) ([]EnrolledCourse, error) {
	enrollments, err := s.EnrollmentRepo.ListActiveByUser(userID)
	if err != nil {
		return nil, err
	}

	result := make([]EnrolledCourse, len(enrollments))
	for i, enrollment := range enrollments {
		progress, err := s.Progress.CourseProgress(userID, enrollment.CourseID)
		if err != nil {
			return nil, err
		}
		result[i] = EnrolledCourse{
			Enrollment: enrollment,
			Progress:   progress,
		}
	}
	return result, nil
}
