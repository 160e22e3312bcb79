// 手动灌入演示数据脚本
//
// 建一位讲师、一门已发布课程（两个小节、五个课时，其中一个免费试看、
// 一个随堂测验）和一位已报名的学员，方便本地联调前端。
//
// 用法: go run scripts/seed_demo.go

package main

import (
	"log"
	"online_course_backend/internal/config"
	"online_course_backend/internal/model"
	"online_course_backend/pkg/database"
	"online_course_backend/pkg/logger"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo123456"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("生成密码失败: %v", err)
	}

	instructor := &model.User{
		Name:     "演示讲师",
		Email:    "instructor@demo.local",
		Password: string(hashed),
		Role:     model.Instructor,
	}
	if err := db.Where("email = ?", instructor.Email).FirstOrCreate(instructor).Error; err != nil {
		log.Fatalf("创建讲师失败: %v", err)
	}

	student := &model.User{
		Name:     "演示学员",
		Email:    "student@demo.local",
		Password: string(hashed),
		Role:     model.Student,
	}
	if err := db.Where("email = ?", student.Email).FirstOrCreate(student).Error; err != nil {
		log.Fatalf("创建学员失败: %v", err)
	}

	course := &model.Course{
		Title:        "Go 后端开发入门",
		Description:  "从零开始的 Go Web 后端课程",
		InstructorID: instructor.ID,
		Status:       model.CoursePublished,
	}
	if err := db.Where("title = ? AND instructor_id = ?", course.Title, instructor.ID).
		FirstOrCreate(course).Error; err != nil {
		log.Fatalf("创建课程失败: %v", err)
	}

	sections := []struct {
		title   string
		order   int
		lessons []model.Lesson
	}{
		{
			title: "第一章 环境与基础", order: 1,
			lessons: []model.Lesson{
				{Title: "课程介绍", Order: 1, ContentType: model.LessonVideo, IsPreviewFree: true},
				{Title: "开发环境搭建", Order: 2, ContentType: model.LessonVideo},
				{Title: "语法速览", Order: 3, ContentType: model.LessonArticle},
			},
		},
		{
			title: "第二章 Web 服务", order: 2,
			lessons: []model.Lesson{
				{Title: "第一个 HTTP 服务", Order: 1, ContentType: model.LessonVideo},
				{Title: "第一章测验", Order: 2, ContentType: model.LessonQuiz},
			},
		},
	}

	for _, item := range sections {
		section := &model.Section{CourseID: course.ID, Title: item.title, Order: item.order}
		if err := db.Where("course_id = ? AND sort_order = ?", course.ID, item.order).
			FirstOrCreate(section).Error; err != nil {
			log.Fatalf("创建小节失败: %v", err)
		}

		for _, lesson := range item.lessons {
			lesson.SectionID = section.ID
			lesson.CourseID = course.ID
			lesson.ContentKey = "lessons/" + model.GenerateUUID()
			if err := db.Where("section_id = ? AND sort_order = ?", section.ID, lesson.Order).
				FirstOrCreate(&lesson).Error; err != nil {
				log.Fatalf("创建课时失败: %v", err)
			}

			if lesson.ContentType == model.LessonQuiz {
				seedQuiz(db, lesson.ID)
			}
		}
	}

	enrollment := &model.Enrollment{UserID: student.ID, CourseID: course.ID, Status: model.EnrollmentActive}
	if err := db.Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		FirstOrCreate(enrollment).Error; err != nil {
		log.Fatalf("创建报名失败: %v", err)
	}

	log.Println("演示数据灌入完成")
}

func seedQuiz(db *gorm.DB, lessonID uint) {
	questions := []struct {
		text    string
		options []model.QuizOption
	}{
		{
			text: "Go 的入口函数是？",
			options: []model.QuizOption{
				{Text: "main", IsCorrect: true, Order: 1},
				{Text: "init", Order: 2},
				{Text: "start", Order: 3},
			},
		},
		{
			text: "声明变量用哪个关键字？",
			options: []model.QuizOption{
				{Text: "var", IsCorrect: true, Order: 1},
				{Text: "let", Order: 2},
				{Text: "def", Order: 3},
			},
		},
	}

	for i, item := range questions {
		question := &model.QuizQuestion{LessonID: lessonID, Text: item.text, Order: i + 1}
		if err := db.Where("lesson_id = ? AND sort_order = ?", lessonID, i+1).
			FirstOrCreate(question).Error; err != nil {
			log.Fatalf("创建题目失败: %v", err)
		}

		for _, option := range item.options {
			option.QuestionID = question.ID
			if err := db.Where("question_id = ? AND sort_order = ?", question.ID, option.Order).
				FirstOrCreate(&option).Error; err != nil {
				log.Fatalf("创建选项失败: %v", err)
			}
		}
	}
}
