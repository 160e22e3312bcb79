package database

import (
	"fmt"
	"log"
	"online_course_backend/internal/config"
	"online_course_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate 建表及复合唯一索引：
// enrollments(user_id, course_id)、lesson_progress(user_id, lesson_id)、
// quiz_attempts(user_id, lesson_id) 的唯一性由索引在存储层保证
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Section{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.QuizQuestion{},
		&model.QuizOption{},
		&model.QuizAttempt{},
	)
}
