package repository

import (
	"errors"
	"online_course_backend/internal/model"
	"online_course_backend/internal/util"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return &course, err
}

func (r *CourseRepository) ListPublished(page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	q := r.DB.Model(&model.Course{}).Where("status = ?", model.CoursePublished)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) ListByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("instructor_id = ?", instructorID).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) CreateSection(section *model.Section) error {
	return r.DB.Create(section).Error
}

func (r *CourseRepository) FindSectionByID(id uint) (*model.Section, error) {
	var section model.Section
	err := r.DB.First(&section, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSectionNotFound
	}
	return &section, err
}

// SectionsByCourse 按 sort_order 升序返回课程的全部小节
func (r *CourseRepository) SectionsByCourse(courseID uint) ([]model.Section, error) {
	var sections []model.Section
	err := r.DB.Where("course_id = ?", courseID).Order("sort_order ASC").Find(&sections).Error
	return sections, err
}

func (r *CourseRepository) CreateLesson(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *CourseRepository) FindLessonByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	return &lesson, err
}

// LessonsByCourse 按小节内 sort_order 升序返回课程的全部课时
func (r *CourseRepository) LessonsByCourse(courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("course_id = ?", courseID).Order("section_id ASC, sort_order ASC").Find(&lessons).Error
	return lessons, err
}

func (r *CourseRepository) CountLessons(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
