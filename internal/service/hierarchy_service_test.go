package service

import (
	"online_course_backend/internal/model"
	"online_course_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndexOrdersSectionsAndLessons(t *testing.T) {
	env := newTestEnv(t)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CoursePublished)

	// 故意乱序插入，order 也不连续
	second := env.createSection(t, course.ID, 20)
	first := env.createSection(t, course.ID, 5)

	l3 := env.createLesson(t, course.ID, first.ID, 30, false)
	l1 := env.createLesson(t, course.ID, first.ID, 10, false)
	l2 := env.createLesson(t, course.ID, second.ID, 1, false)

	index, err := env.hierarchy.BuildIndex(course.ID)
	require.NoError(t, err)

	assert.Equal(t, course.ID, index.CourseID)
	assert.Equal(t, 3, index.TotalLessons)

	require.Len(t, index.Sections, 2)
	assert.Equal(t, first.ID, index.Sections[0].ID)
	assert.Equal(t, second.ID, index.Sections[1].ID)

	require.Len(t, index.LessonsBySection[first.ID], 2)
	assert.Equal(t, l1.ID, index.LessonsBySection[first.ID][0].ID)
	assert.Equal(t, l3.ID, index.LessonsBySection[first.ID][1].ID)

	require.Len(t, index.LessonsBySection[second.ID], 1)
	assert.Equal(t, l2.ID, index.LessonsBySection[second.ID][0].ID)
}

func TestBuildIndexEmptyCourse(t *testing.T) {
	env := newTestEnv(t)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CourseDraft)

	// 没有小节的空课程合法，零课时
	index, err := env.hierarchy.BuildIndex(course.ID)
	require.NoError(t, err)
	assert.Empty(t, index.Sections)
	assert.Equal(t, 0, index.TotalLessons)

	// 有小节但没课时，同样零课时
	env.createSection(t, course.ID, 1)
	index, err = env.hierarchy.BuildIndex(course.ID)
	require.NoError(t, err)
	assert.Len(t, index.Sections, 1)
	assert.Equal(t, 0, index.TotalLessons)
}

func TestBuildIndexUnknownCourse(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.hierarchy.BuildIndex(4242)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}
