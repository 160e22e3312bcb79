package service

import (
	"online_course_backend/internal/model"
	"online_course_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleCompletionIsItsOwnInverse(t *testing.T) {
	env := newTestEnv(t)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CoursePublished)
	section := env.createSection(t, course.ID, 1)
	lesson := env.createLesson(t, course.ID, section.ID, 1, false)

	student := env.createUser(t, model.Student)
	env.enroll(t, student.ID, course.ID)

	// 首次翻转 = 标记完成
	progress, err := env.progress.ToggleCompletion(student.ID, lesson.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, progress.Completed)
	require.NotNil(t, progress.CompletedAt)

	// 再次翻转 = 取消完成
	progress, err = env.progress.ToggleCompletion(student.ID, lesson.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, progress.Completed)
	assert.Nil(t, progress.CompletedAt)

	// 第三次回到完成，且始终只有一条记录
	progress, err = env.progress.ToggleCompletion(student.ID, lesson.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, progress.Completed)

	var count int64
	require.NoError(t, env.db.Model(&model.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ?", student.ID, lesson.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSetCompletionIdempotentUpsert(t *testing.T) {
	env := newTestEnv(t)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CoursePublished)
	section := env.createSection(t, course.ID, 1)
	lesson := env.createLesson(t, course.ID, section.ID, 1, false)

	student := env.createUser(t, model.Student)
	env.enroll(t, student.ID, course.ID)

	for i := 0; i < 3; i++ {
		_, err := env.progress.SetCompletion(student.ID, lesson.ID, course.ID, true)
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, env.db.Model(&model.LessonProgress{}).
		Where("user_id = ?", student.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	progress, err := env.progress.CourseProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.CompletedLessons)
}

func TestSetCompletionGuardedByAccess(t *testing.T) {
	env := newTestEnv(t)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CoursePublished)
	section := env.createSection(t, course.ID, 1)
	lesson := env.createLesson(t, course.ID, section.ID, 1, false)

	stranger := env.createUser(t, model.Student)

	_, err := env.progress.SetCompletion(stranger.ID, lesson.ID, course.ID, true)
	assert.ErrorIs(t, err, util.ErrAccessDenied)

	// 课时不属于该课程时按不存在处理
	other := env.createCourse(t, instructor.ID, model.CoursePublished)
	_, err = env.progress.SetCompletion(instructor.ID, lesson.ID, other.ID, true)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestCourseProgressPercentageRounding(t *testing.T) {
	env := newTestEnv(t)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CoursePublished)

	// 两个小节：3 + 2 共 5 个课时
	s1 := env.createSection(t, course.ID, 1)
	s2 := env.createSection(t, course.ID, 2)
	lessons := []*model.Lesson{
		env.createLesson(t, course.ID, s1.ID, 1, false),
		env.createLesson(t, course.ID, s1.ID, 2, false),
		env.createLesson(t, course.ID, s1.ID, 3, false),
		env.createLesson(t, course.ID, s2.ID, 1, false),
		env.createLesson(t, course.ID, s2.ID, 2, false),
	}

	student := env.createUser(t, model.Student)
	env.enroll(t, student.ID, course.ID)

	progress, err := env.progress.CourseProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, progress.TotalLessons)
	assert.Equal(t, 0, progress.CompletedLessons)
	assert.Equal(t, 0, progress.Percentage)

	// 1/3 → 33，2/3 → 67 四舍五入；此处 4/5 → 80
	for _, lesson := range lessons[:4] {
		_, err := env.progress.SetCompletion(student.ID, lesson.ID, course.ID, true)
		require.NoError(t, err)
	}

	progress, err = env.progress.CourseProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, progress.CompletedLessons)
	assert.Equal(t, 80, progress.Percentage)

	_, err = env.progress.SetCompletion(student.ID, lessons[4].ID, course.ID, true)
	require.NoError(t, err)

	progress, err = env.progress.CourseProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, progress.Percentage)
}

func TestCourseProgressRoundsHalfUp(t *testing.T) {
	env := newTestEnv(t)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CoursePublished)
	section := env.createSection(t, course.ID, 1)

	var lessons []*model.Lesson
	for i := 1; i <= 3; i++ {
		lessons = append(lessons, env.createLesson(t, course.ID, section.ID, i, false))
	}

	student := env.createUser(t, model.Student)
	env.enroll(t, student.ID, course.ID)

	_, err := env.progress.SetCompletion(student.ID, lessons[0].ID, course.ID, true)
	require.NoError(t, err)

	// 1/3 = 33.33 → 33
	progress, err := env.progress.CourseProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, progress.Percentage)

	_, err = env.progress.SetCompletion(student.ID, lessons[1].ID, course.ID, true)
	require.NoError(t, err)

	// 2/3 = 66.67 → 67
	progress, err = env.progress.CourseProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 67, progress.Percentage)
}

func TestCourseProgressEmptyCourseIsZero(t *testing.T) {
	env := newTestEnv(t)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CoursePublished)

	student := env.createUser(t, model.Student)
	env.enroll(t, student.ID, course.ID)

	progress, err := env.progress.CourseProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.TotalLessons)
	assert.Equal(t, 0, progress.Percentage)
}

func TestAggregateStatsSkipsEmptyCourses(t *testing.T) {
	env := newTestEnv(t)

	instructor := env.createUser(t, model.Instructor)
	student := env.createUser(t, model.Student)

	// 课程A：2 课时，全部完成
	courseA := env.createCourse(t, instructor.ID, model.CoursePublished)
	sa := env.createSection(t, courseA.ID, 1)
	la1 := env.createLesson(t, courseA.ID, sa.ID, 1, false)
	la2 := env.createLesson(t, courseA.ID, sa.ID, 2, false)

	// 课程B：2 课时，完成一半
	courseB := env.createCourse(t, instructor.ID, model.CoursePublished)
	sb := env.createSection(t, courseB.ID, 1)
	lb1 := env.createLesson(t, courseB.ID, sb.ID, 1, false)
	env.createLesson(t, courseB.ID, sb.ID, 2, false)

	// 课程C：零课时，不进入任何计数
	courseC := env.createCourse(t, instructor.ID, model.CoursePublished)

	env.enroll(t, student.ID, courseA.ID)
	env.enroll(t, student.ID, courseB.ID)
	env.enroll(t, student.ID, courseC.ID)

	for _, lesson := range []*model.Lesson{la1, la2} {
		_, err := env.progress.SetCompletion(student.ID, lesson.ID, courseA.ID, true)
		require.NoError(t, err)
	}
	_, err := env.progress.SetCompletion(student.ID, lb1.ID, courseB.ID, true)
	require.NoError(t, err)

	stats, err := env.progress.AggregateStats(student.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalCourses)
	assert.Equal(t, 1, stats.CompletedCourses)
	assert.Equal(t, 1, stats.InProgressCourses)
	// (100 + 50) / 2，零课时课程不进分母
	assert.InDelta(t, 75.0, stats.AverageProgress, 0.001)
}

func TestAggregateStatsNoEnrollments(t *testing.T) {
	env := newTestEnv(t)

	student := env.createUser(t, model.Student)

	stats, err := env.progress.AggregateStats(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalCourses)
	assert.Equal(t, 0.0, stats.AverageProgress)
}
