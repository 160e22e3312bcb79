package service

import (
	"math"
	"online_course_backend/internal/model"
	"online_course_backend/internal/repository"
	"online_course_backend/internal/util"
	"time"
)

// QuizService 按课时题库给答卷评分并保存当前成绩
// 同一 (用户, 课时) 只保留一条成绩，重做直接覆盖
type QuizService struct {
	QuizRepo   *repository.QuizRepository
	CourseRepo *repository.CourseRepository
	Access     *AccessService
}

func NewQuizService(quizRepo *repository.QuizRepository, courseRepo *repository.CourseRepository, access *AccessService) *QuizService {
	return &QuizService{
		QuizRepo:   quizRepo,
		CourseRepo: courseRepo,
		Access:     access,
	}
}

type QuizScore struct {
	Score  int  `json:"score"`
	Total  int  `json:"total"`
	Passed bool `json:"passed"`
}

// QuizSubmission questionID -> 所选 optionID
type QuizSubmission struct {
	Answers map[uint]uint `json:"answers" binding:"required"`
}

// Score 对照正确选项逐题计分：
//   - 未作答的题计入 total、不计入 score（部分提交按缺题判错，不整卷拒绝）
//   - 没有正确选项的题视为不可得分，不会命中任何答案
//   - 及格线：score >= ceil(total * 0.7)，零题测验永不及格
func (s *QuizService) Score(lessonID uint, answers map[uint]uint) (*QuizScore, error) {
	questions, err := s.QuizRepo.QuestionsByLesson(lessonID)
	if err != nil {
		return nil, err
	}

	inLesson := make(map[uint]bool, len(questions))
	for _, question := range questions {
		inLesson[question.ID] = true
	}
	for questionID := range answers {
		if !inLesson[questionID] {
			return nil, util.ErrAnswerNotInQuiz
		}
	}

	score := 0
	for _, question := range questions {
		selected, answered := answers[question.ID]
		if !answered {
			continue
		}
		for _, option := range question.Options {
			if option.IsCorrect && option.ID == selected {
				score++
				break
			}
		}
	}

	total := len(questions)
	threshold := int(math.Ceil(float64(total) * util.QuizPassThreshold))

	return &QuizScore{
		Score:  score,
		Total:  total,
		Passed: total > 0 && score >= threshold,
	}, nil
}

// SubmitAttempt 评分并覆盖写入当前成绩
// 先过访问解析，未授权的直接写入会被拒绝
func (s *QuizService) SubmitAttempt(userID, courseID, lessonID uint, answers map[uint]uint) (*model.QuizAttempt, error) {
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

	result, err := s.Score(lessonID, answers)
	if err != nil {
		return nil, err
	}

	attempt := &model.QuizAttempt{
		UserID:         userID,
		LessonID:       lessonID,
		Score:          result.Score,
		TotalQuestions: result.Total,
		Passed:         result.Passed,
		CompletedAt:    time.Now(),
	}

	if err := s.QuizRepo.UpsertAttempt(attempt); err != nil {
		return nil, err
	}

	return attempt, nil
}

func (s *QuizService) CurrentAttempt(userID, lessonID uint) (*model.QuizAttempt, error) {
	return s.QuizRepo.FindAttempt(userID, lessonID)
}
