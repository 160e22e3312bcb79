package model

import (
	"time"
)

// QuizQuestion 课时内的单选题
type QuizQuestion struct {
	BaseModel
	LessonID uint         `gorm:"index;not null" json:"lessonId"`
	Text     string       `gorm:"type:text;not null" json:"text"`
	Order    int          `gorm:"column:sort_order;default:0" json:"order"`
	Options  []QuizOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizOption 选项，同一题目的未删除选项中应恰有一个 is_correct
type QuizOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
	Order      int    `gorm:"column:sort_order;default:0" json:"order"`
}

func (QuizOption) TableName() string {
	return "quiz_options"
}

// QuizAttempt 用户对课时测验的当前成绩，重做直接覆盖，不保留历史
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	UserID         uint      `gorm:"index:idx_user_lesson_attempt,unique;not null" json:"userId"`
	LessonID       uint      `gorm:"index:idx_user_lesson_attempt,unique;not null" json:"lessonId"`
	Score          int       `gorm:"not null" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"totalQuestions"`
	Passed         bool      `gorm:"default:false" json:"passed"`
	CompletedAt    time.Time `json:"completedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
