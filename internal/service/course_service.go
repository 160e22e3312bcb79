package service

import (
	"fmt"
	"online_course_backend/internal/model"
	"online_course_backend/internal/repository"
	"online_course_backend/internal/util"
)

// CourseService 课程编辑与目录查询，围绕核心引擎的简单CRUD封装
type CourseService struct {
	CourseRepo   *repository.CourseRepository
	QuizRepo     *repository.QuizRepository
	ProgressRepo *repository.LessonProgressRepository
	Hierarchy    *HierarchyService
	Progress     *ProgressService
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	quizRepo *repository.QuizRepository,
	progressRepo *repository.LessonProgressRepository,
	hierarchy *HierarchyService,
	progress *ProgressService,
) *CourseService {
	return &CourseService{
		CourseRepo:   courseRepo,
		QuizRepo:     quizRepo,
		ProgressRepo: progressRepo,
		Hierarchy:    hierarchy,
		Progress:     progress,
	}
}

type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type SectionRequest struct {
	Title string `json:"title" binding:"required"`
	Order int    `json:"order"`
}

type LessonRequest struct {
	Title         string                  `json:"title" binding:"required"`
	Order         int                     `json:"order"`
	ContentType   model.LessonContentType `json:"contentType"`
	IsPreviewFree bool                    `json:"isPreviewFree"`
}

type QuizOptionRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
	Order     int    `json:"order"`
}

type QuizQuestionRequest struct {
	Text    string              `json:"text" binding:"required"`
	Order   int                 `json:"order"`
	Options []QuizOptionRequest `json:"options" binding:"required,min=2"`
}

func (s *CourseService) CreateCourse(instructorID uint, req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: instructorID,
		Status:       model.CourseDraft,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

// ownedCourse 归属校验：非课程归属者的编辑操作一律拒绝
func (s *CourseService) ownedCourse(instructorID, courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, util.ErrAccessDenied
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(instructorID, courseID uint, req CourseRequest) (*model.Course, error) {
	course, err := s.ownedCourse(instructorID, courseID)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) PublishCourse(instructorID, courseID uint) (*model.Course, error) {
	course, err := s.ownedCourse(instructorID, courseID)
	if err != nil {
		return nil, err
	}

	course.Status = model.CoursePublished
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) AddSection(instructorID, courseID uint, req SectionRequest) (*model.Section, error) {
	if _, err := s.ownedCourse(instructorID, courseID); err != nil {
		return nil, err
	}

	section := &model.Section{
		CourseID: courseID,
		Title:    req.Title,
		Order:    req.Order,
	}
	if err := s.CourseRepo.CreateSection(section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *CourseService) AddLesson(instructorID, sectionID uint, req LessonRequest) (*model.Lesson, error) {
	section, err := s.CourseRepo.FindSectionByID(sectionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(instructorID, section.CourseID); err != nil {
		return nil, err
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = model.LessonVideo
	}

	lesson := &model.Lesson{
		SectionID:     sectionID,
		CourseID:      section.CourseID,
		Title:         req.Title,
		Order:         req.Order,
		ContentType:   contentType,
		IsPreviewFree: req.IsPreviewFree,
		ContentKey:    fmt.Sprintf("lessons/%s", model.GenerateUUID()),
	}
	if err := s.CourseRepo.CreateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// AddQuestion 题目连同选项一并创建，要求恰好一个正确选项
func (s *CourseService) AddQuestion(instructorID, lessonID uint, req QuizQuestionRequest) (*model.QuizQuestion, error) {
	lesson, err := s.CourseRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(instructorID, lesson.CourseID); err != nil {
		return nil, err
	}

	correct := 0
	for _, option := range req.Options {
		if option.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return nil, util.ErrOneCorrectOption
	}

	question := &model.QuizQuestion{
		LessonID: lessonID,
		Text:     req.Text,
		Order:    req.Order,
	}
	if err := s.QuizRepo.CreateQuestion(question); err != nil {
		return nil, err
	}

	for _, optionReq := range req.Options {
		option := &model.QuizOption{
			QuestionID: question.ID,
			Text:       optionReq.Text,
			IsCorrect:  optionReq.IsCorrect,
			Order:      optionReq.Order,
		}
		if err := s.QuizRepo.CreateOption(option); err != nil {
			return nil, err
		}
		question.Options = append(question.Options, *option)
	}

	return question, nil
}

func (s *CourseService) ListPublished(page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.ListPublished(page, limit)
}

func (s *CourseService) ListByInstructor(instructorID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByInstructor(instructorID)
}

type LessonDetail struct {
	model.Lesson
	Completed bool `json:"completed"`
}

type SectionDetail struct {
	model.Section
	Lessons []LessonDetail `json:"lessons"`
}

type CourseDetail struct {
	Course   *model.Course   `json:"course"`
	Sections []SectionDetail `json:"sections"`
	Progress *CourseProgress `json:"progress,omitempty"`
}

// Detail 课程详情：目录树 + 登录用户的完成状态叠加
// 草稿课程仅归属讲师可见
func (s *CourseService) Detail(userID, courseID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course.Status != model.CoursePublished && course.InstructorID != userID {
		return nil, util.ErrCourseNotFound
	}

	index, err := s.Hierarchy.BuildIndex(courseID)
	if err != nil {
		return nil, err
	}

	var completion map[uint]bool
	detail := &CourseDetail{Course: course}

	if userID != 0 {
		completion, err = s.ProgressRepo.CompletionByCourse(userID, courseID)
		if err != nil {
			return nil, err
		}

		progress, err := s.Progress.CourseProgress(userID, courseID)
		if err != nil {
			return nil, err
		}
		detail.Progress = progress
	}

	detail.Sections = make([]SectionDetail, len(index.Sections))
	for i, section := range index.Sections {
		sectionDetail := SectionDetail{Section: section}
		for _, lesson := range index.LessonsBySection[section.ID] {
			sectionDetail.Lessons = append(sectionDetail.Lessons, LessonDetail{
				Lesson:    lesson,
				Completed: completion[lesson.ID],
			})
		}
		detail.Sections[i] = sectionDetail
	}

	return detail, nil
}
