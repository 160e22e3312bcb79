package repository

import (
	"online_course_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) CreateQuestion(question *model.QuizQuestion) error {
	return r.DB.Create(question).Error
}

func (r *QuizRepository) CreateOption(option *model.QuizOption) error {
	return r.DB.Create(option).Error
}

// QuestionsByLesson 按题目和选项的 sort_order 升序返回课时的全部题目
func (r *QuizRepository) QuestionsByLesson(lessonID uint) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.DB.Where("lesson_id = ?", lessonID).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("sort_order ASC").
		Find(&questions).Error
	return questions, err
}

// UpsertAttempt 以 (user_id, lesson_id) 为键覆盖当前成绩，重做不保留历史
func (r *QuizRepository) UpsertAttempt(attempt *model.QuizAttempt) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score", "total_questions", "passed", "completed_at", "updated_at",
		}),
	}).Create(attempt).Error
}

func (r *QuizRepository) FindAttempt(userID, lessonID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
