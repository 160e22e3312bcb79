package model

type CourseStatus string

const (
	CourseDraft     CourseStatus = "DRAFT"
	CoursePublished CourseStatus = "PUBLISHED"
)

type LessonContentType string

const (
	LessonVideo   LessonContentType = "video"
	LessonArticle LessonContentType = "article"
	LessonQuiz    LessonContentType = "quiz"
)

// Course 课程，由小节组成，归属于一位讲师
// swagger:model Course
type Course struct {
	BaseModel
	Title        string       `gorm:"size:255;not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	InstructorID uint         `gorm:"index;not null" json:"instructorId"`
	Status       CourseStatus `gorm:"size:20;default:'DRAFT'" json:"status"`
	Sections     []Section    `gorm:"foreignKey:CourseID" json:"sections,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// Section 小节，order 在同一课程内唯一（不要求连续）
type Section struct {
	BaseModel
	CourseID uint     `gorm:"index:idx_section_course_order,unique;not null" json:"courseId"`
	Title    string   `gorm:"size:255;not null" json:"title"`
	Order    int      `gorm:"column:sort_order;index:idx_section_course_order,unique;default:0" json:"order"`
	Lessons  []Lesson `gorm:"foreignKey:SectionID" json:"lessons,omitempty"`
}

func (Section) TableName() string {
	return "sections"
}

// Lesson 课时，严格属于一个小节；CourseID 冗余存储，便于按课程范围校验
type Lesson struct {
	BaseModel
	SectionID     uint              `gorm:"index:idx_lesson_section_order,unique;not null" json:"sectionId"`
	CourseID      uint              `gorm:"index;not null" json:"courseId"`
	Title         string            `gorm:"size:255;not null" json:"title"`
	Order         int               `gorm:"column:sort_order;index:idx_lesson_section_order,unique;default:0" json:"order"`
	ContentType   LessonContentType `gorm:"size:20;default:'video'" json:"contentType"`
	IsPreviewFree bool              `gorm:"default:false" json:"isPreviewFree"`
	// 存储对象键，由内容服务换取访问URL
	ContentKey string `gorm:"size:255" json:"-"`
}

func (Lesson) TableName() string {
	return "lessons"
}
