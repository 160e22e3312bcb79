package model

import (
	"time"
)

// LessonProgress 记录用户对课时的完成状态
// completed=true 当且仅当 completed_at 非空
// swagger:model LessonProgress
type LessonProgress struct {
	BaseModel
	UserID      uint       `gorm:"index:idx_user_lesson,unique;not null" json:"userId"`
	LessonID    uint       `gorm:"index:idx_user_lesson,unique;not null" json:"lessonId"`
	CourseID    uint       `gorm:"index;not null" json:"courseId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
