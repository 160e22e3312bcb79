package service

import (
	"online_course_backend/internal/model"
	"online_course_backend/internal/repository"
)

// HierarchyService 构建课程的 小节→课时 有序索引
// 纯读投影，无副作用，可并发重复调用
type HierarchyService struct {
	CourseRepo *repository.CourseRepository
}

func NewHierarchyService(courseRepo *repository.CourseRepository) *HierarchyService {
	return &HierarchyService{CourseRepo: courseRepo}
}

type CourseIndex struct {
	CourseID         uint                    `json:"courseId"`
	Sections         []model.Section         `json:"sections"`
	LessonsBySection map[uint][]model.Lesson `json:"lessonsBySection"`
	TotalLessons     int                     `json:"totalLessons"`
}

// BuildIndex 小节按 order 升序，小节内课时同样升序
// 没有小节的空课程是合法的，返回零课时索引；课程不存在才报错
func (s *HierarchyService) BuildIndex(courseID uint) (*CourseIndex, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, err
	}

	sections, err := s.CourseRepo.SectionsByCourse(courseID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.CourseRepo.LessonsByCourse(courseID)
	if err != nil {
		return nil, err
	}

	bySection := make(map[uint][]model.Lesson, len(sections))
	for _, lesson := range lessons {
		bySection[lesson.SectionID] = append(bySection[lesson.SectionID], lesson)
	}

	return &CourseIndex{
		CourseID:         courseID,
		Sections:         sections,
		LessonsBySection: bySection,
		TotalLessons:     len(lessons),
	}, nil
}
