package service

import (
	"fmt"
	"online_course_backend/internal/model"
	"online_course_backend/internal/repository"
	"online_course_backend/pkg/database"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// testEnv 测试用服务组合，不挂 Redis
type testEnv struct {
	db         *gorm.DB
	userRepo   *repository.UserRepository
	courseRepo *repository.CourseRepository
	enrollRepo *repository.EnrollmentRepository
	progRepo   *repository.LessonProgressRepository
	quizRepo   *repository.QuizRepository

	hierarchy *HierarchyService
	access    *AccessService
	progress  *ProgressService
	quiz      *QuizService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{
		db:         db,
		userRepo:   repository.NewUserRepository(db),
		courseRepo: repository.NewCourseRepository(db),
		enrollRepo: repository.NewEnrollmentRepository(db),
		progRepo:   repository.NewLessonProgressRepository(db),
		quizRepo:   repository.NewQuizRepository(db),
	}

	env.hierarchy = NewHierarchyService(env.courseRepo)
	env.access = NewAccessService(env.courseRepo, env.enrollRepo)
	env.progress = NewProgressService(env.progRepo, env.enrollRepo, env.courseRepo, env.hierarchy, env.access, nil)
	env.quiz = NewQuizService(env.quizRepo, env.courseRepo, env.access)

	return env
}

func (e *testEnv) createUser(t *testing.T, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Name:     "测试用户",
		Email:    fmt.Sprintf("user%s@test.local", model.GenerateUUID()),
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createCourse(t *testing.T, instructorID uint, status model.CourseStatus) *model.Course {
	t.Helper()
	course := &model.Course{
		Title:        "Go 后端实战",
		InstructorID: instructorID,
		Status:       status,
	}
	require.NoError(t, e.db.Create(course).Error)
	return course
}

func (e *testEnv) createSection(t *testing.T, courseID uint, order int) *model.Section {
	t.Helper()
	section := &model.Section{
		CourseID: courseID,
		Title:    fmt.Sprintf("第 %d 章", order),
		Order:    order,
	}
	require.NoError(t, e.db.Create(section).Error)
	return section
}

func (e *testEnv) createLesson(t *testing.T, courseID, sectionID uint, order int, previewFree bool) *model.Lesson {
	t.Helper()
	lesson := &model.Lesson{
		SectionID:     sectionID,
		CourseID:      courseID,
		Title:         fmt.Sprintf("课时 %d", order),
		Order:         order,
		ContentType:   model.LessonVideo,
		IsPreviewFree: previewFree,
		ContentKey:    "lessons/" + model.GenerateUUID(),
	}
	require.NoError(t, e.db.Create(lesson).Error)
	return lesson
}

func (e *testEnv) enroll(t *testing.T, userID, courseID uint) *model.Enrollment {
	t.Helper()
	enrollment := &model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   model.EnrollmentActive,
	}
	require.NoError(t, e.db.Create(enrollment).Error)
	return enrollment
}

// createQuestion 建一道单选题，correctIdx 指定正确选项下标，传 -1 表示没有正确选项
func (e *testEnv) createQuestion(t *testing.T, lessonID uint, order int, optionCount, correctIdx int) *model.QuizQuestion {
	t.Helper()
	question := &model.QuizQuestion{
		LessonID: lessonID,
		Text:     fmt.Sprintf("题目 %d", order),
		Order:    order,
	}
	require.NoError(t, e.db.Create(question).Error)

	for i := 0; i < optionCount; i++ {
		option := &model.QuizOption{
			QuestionID: question.ID,
			Text:       fmt.Sprintf("选项 %d", i),
			IsCorrect:  i == correctIdx,
			Order:      i,
		}
		require.NoError(t, e.db.Create(option).Error)
		question.Options = append(question.Options, *option)
	}
	return question
}

// correctOption 取题目的正确选项ID
func correctOption(t *testing.T, question *model.QuizQuestion) uint {
	t.Helper()
	for _, option := range question.Options {
		if option.IsCorrect {
			return option.ID
		}
	}
	t.Fatalf("question %d has no correct option", question.ID)
	return 0
}

// wrongOption 取题目的任意错误选项ID
func wrongOption(t *testing.T, question *model.QuizQuestion) uint {
	t.Helper()
	for _, option := range question.Options {
		if !option.IsCorrect {
			return option.ID
		}
	}
	t.Fatalf("question %d has no wrong option", question.ID)
	return 0
}
