package repository

import (
	"online_course_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LessonProgressRepository struct {
	DB *gorm.DB
}

func NewLessonProgressRepository(db *gorm.DB) *LessonProgressRepository {
	return &LessonProgressRepository{DB: db}
}

func (r *LessonProgressRepository) FindOne(userID, lessonID uint) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Upsert 以 (user_id, lesson_id) 为键的原子插入或更新
// 唯一索引保证并发调用不会产生重复行，后写覆盖先写
func (r *LessonProgressRepository) Upsert(progress *model.LessonProgress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"completed", "completed_at", "updated_at",
		}),
	}).Create(progress).Error
}

func (r *LessonProgressRepository) CountCompleted(userID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND course_id = ? AND completed = ?", userID, courseID, true).
		Count(&count).Error
	return count, err
}

// CompletionByCourse 返回课程内该用户 lesson_id -> 是否完成 的映射
func (r *LessonProgressRepository) CompletionByCourse(userID, courseID uint) (map[uint]bool, error) {
	var rows []model.LessonProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	statusMap := make(map[uint]bool, len(rows))
	for _, row := range rows {
		statusMap[row.LessonID] = row.Completed
	}
	return statusMap, nil
}
