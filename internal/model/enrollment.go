package model

type EnrollmentStatus string

const (
	EnrollmentActive EnrollmentStatus = "ACTIVE"
)

// Enrollment 报名记录，同一用户对同一课程至多一条 ACTIVE 记录
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID   uint             `gorm:"index:idx_user_course,unique;not null" json:"userId"`
	CourseID uint             `gorm:"index:idx_user_course,unique;not null" json:"courseId"`
	Status   EnrollmentStatus `gorm:"size:20;default:'ACTIVE'" json:"status"`
	Course   *Course          `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
