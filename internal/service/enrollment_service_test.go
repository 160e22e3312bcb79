package service

import (
	"online_course_backend/internal/model"
	"online_course_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnrollmentService(env *testEnv) *EnrollmentService {
	return NewEnrollmentService(env.enrollRepo, env.courseRepo, env.progress)
}

func TestEnrollPublishedCourse(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CoursePublished)
	student := env.createUser(t, model.Student)

	enrollment, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentActive, enrollment.Status)

	// 报名后获得 ENROLLED 访问权
	decision, err := env.access.ResolveAccess(student.ID, course.ID, 0)
	require.NoError(t, err)
	assert.True(t, decision.Granted)
	assert.Equal(t, AccessEnrolled, decision.Reason)
}

func TestEnrollDuplicateReturnsConflict(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CoursePublished)
	student := env.createUser(t, model.Student)

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(student.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
}

func TestEnrollRejectsDraftAndMissingCourse(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	instructor := env.createUser(t, model.Instructor)
	draft := env.createCourse(t, instructor.ID, model.CourseDraft)
	student := env.createUser(t, model.Student)

	_, err := svc.Enroll(student.ID, draft.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotOpen)

	_, err = svc.Enroll(student.ID, 9999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestMyCoursesIncludesProgress(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CoursePublished)
	section := env.createSection(t, course.ID, 1)
	l1 := env.createLesson(t, course.ID, section.ID, 1, false)
	env.createLesson(t, course.ID, section.ID, 2, false)

	student := env.createUser(t, model.Student)
	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	_, err = env.progress.SetCompletion(student.ID, l1.ID, course.ID, true)
	require.NoError(t, err)

	courses, err := svc.MyCourses(student.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, course.ID, courses[0].Enrollment.CourseID)
	require.NotNil(t, courses[0].Progress)
	assert.Equal(t, 2, courses[0].Progress.TotalLessons)
	assert.Equal(t, 50, courses[0].Progress.Percentage)
}
