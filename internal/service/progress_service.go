package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"online_course_backend/internal/model"
	"online_course_backend/internal/repository"
	"online_course_backend/internal/util"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	courseProgressKeyPrefix = "course_progress:"
	courseProgressCacheTTL  = 5 * time.Minute
)

// ProgressService 记录课时完成状态并聚合为百分比进度
type ProgressService struct {
	ProgressRepo   *repository.LessonProgressRepository
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	Hierarchy      *HierarchyService
	Access         *AccessService
	Redis          *redis.Client
}

func NewProgressService(
	progressRepo *repository.LessonProgressRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	hierarchy *HierarchyService,
	access *AccessService,
	rdb *redis.Client,
) *ProgressService {
	return &ProgressService{
		ProgressRepo:   progressRepo,
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		Hierarchy:      hierarchy,
		Access:         access,
		Redis:          rdb,
	}
}

type CourseProgress struct {
	TotalLessons     int `json:"totalLessons"`
	CompletedLessons int `json:"completedLessons"`
	Percentage       int `json:"percentage"`
}

type AggregateStats struct {
	TotalCourses      int     `json:"totalCourses"`
	CompletedCourses  int     `json:"completedCourses"`
	InProgressCourses int     `json:"inProgressCourses"`
	AverageProgress   float64 `json:"averageProgress"`
}

// ToggleCompletion 翻转用户对课时的完成状态
// 首次操作即标记完成（未完成的缺省状态是“无记录”，没有创建为未完成的路径）
func (s *ProgressService) ToggleCompletion(userID, lessonID, courseID uint) (*model.LessonProgress, error) {
	existing, err := s.ProgressRepo.FindOne(userID, lessonID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return s.SetCompletion(userID, lessonID, courseID, true)
	}
	return s.SetCompletion(userID, lessonID, courseID, !existing.Completed)
}

// SetCompletion 以 (user_id, lesson_id) 为键原子写入完成状态
// 并发竞争由唯一索引兜底，结果为后写者胜
func (s *ProgressService) SetCompletion(userID, lessonID, courseID uint, completed bool) (*model.LessonProgress, error) {
	if err := s.Access.RequireAccess(userID, courseID, lessonID); err != nil {
		return nil, err
	}

	lesson, err := s.CourseRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.CourseID != courseID {
		return nil, util.ErrLessonNotFound
	}

	progress := &model.LessonProgress{
		UserID:    userID,
		LessonID:  lessonID,
		CourseID:  courseID,
		Completed: completed,
	}
	if completed {
		now := time.Now()
		progress.CompletedAt = &now
	}

	if err := s.ProgressRepo.Upsert(progress); err != nil {
		return nil, err
	}

	s.invalidateProgressCache(userID, courseID)

	return progress, nil
}

// CourseProgress 单课程进度：percentage = round(完成数/总数*100)，空课程恒为 0
func (s *ProgressService) CourseProgress(userID, courseID uint) (*CourseProgress, error) {
	if cached := s.cachedProgress(userID, courseID); cached != nil {
		return cached, nil
	}

	index, err := s.Hierarchy.BuildIndex(courseID)
	if err != nil {
		return nil, err
	}

	completed, err := s.ProgressRepo.CountCompleted(userID, courseID)
	if err != nil {
		return nil, err
	}

	progress := &CourseProgress{
		TotalLessons:     index.TotalLessons,
		CompletedLessons: int(completed),
	}
	if progress.TotalLessons > 0 {
		ratio := float64(progress.CompletedLessons) / float64(progress.TotalLessons)
		progress.Percentage = int(math.Round(ratio * 100))
	}

	s.cacheProgress(userID, courseID, progress)

	return progress, nil
}

// AggregateStats 汇总用户全部 ACTIVE 报名的学习情况
// 零课时课程不计入完成数、进行中数，也不进入平均值的分母
func (s *ProgressService) AggregateStats(userID uint) (*AggregateStats, error) {
	enrollments, err := s.EnrollmentRepo.ListActiveByUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &AggregateStats{TotalCourses: len(enrollments)}

	sum := 0
	counted := 0
	for _, enrollment := range enrollments {
		progress, err := s.CourseProgress(userID, enrollment.CourseID)
		if err != nil {
			return nil, err
		}

		if progress.TotalLessons == 0 {
			continue
		}

		sum += progress.Percentage
		counted++

		switch {
		case progress.CompletedLessons == progress.TotalLessons:
			stats.CompletedCourses++
		case progress.CompletedLessons > 0:
			stats.InProgressCourses++
		}
	}

	if counted > 0 {
		stats.AverageProgress = float64(sum) / float64(counted)
	}

	return stats, nil
}

func progressCacheKey(userID, courseID uint) string {
	return fmt.Sprintf("%s%d:%d", courseProgressKeyPrefix, userID, courseID)
}

func (s *ProgressService) cachedProgress(userID, courseID uint) *CourseProgress {
	if s.Redis == nil {
		return nil
	}

	data, err := s.Redis.Get(context.Background(), progressCacheKey(userID, courseID)).Bytes()
	if err != nil {
		return nil
	}

	var progress CourseProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil
	}
	return &progress
}

func (s *ProgressService) cacheProgress(userID, courseID uint, progress *CourseProgress) {
	if s.Redis == nil {
		return
	}

	data, err := json.Marshal(progress)
	if err != nil {
		return
	}
	s.Redis.Set(context.Background(), progressCacheKey(userID, courseID), data, courseProgressCacheTTL)
}

func (s *ProgressService) invalidateProgressCache(userID, courseID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(context.Background(), progressCacheKey(userID, courseID))
}
