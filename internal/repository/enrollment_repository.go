package repository

import (
	"online_course_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// Create 依赖 (user_id, course_id) 唯一索引，重复报名由存储层拒绝
func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindActive(userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, model.EnrollmentActive).
		First(&enrollment).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) HasActive(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, model.EnrollmentActive).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentRepository) ListActiveByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("user_id = ? AND status = ?", userID, model.EnrollmentActive).
		Preload("Course").
		Order("created_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}
