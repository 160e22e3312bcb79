package service

import (
	"online_course_backend/internal/model"
	"online_course_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAccessFreePreviewBeatsEverything(t *testing.T) {
	env := newTestEnv(t)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CoursePublished)
	section := env.createSection(t, course.ID, 1)
	preview := env.createLesson(t, course.ID, section.ID, 1, true)

	// 游客（userID=0）也能看免费试看课时
	decision, err := env.access.ResolveAccess(0, course.ID, preview.ID)
	require.NoError(t, err)
	assert.True(t, decision.Granted)
	assert.Equal(t, AccessFreePreview, decision.Reason)

	// 已报名用户命中的仍是 FREE_PREVIEW，而非 ENROLLED
	student := env.createUser(t, model.Student)
	env.enroll(t, student.ID, course.ID)

	decision, err = env.access.ResolveAccess(student.ID, course.ID, preview.ID)
	require.NoError(t, err)
	assert.Equal(t, AccessFreePreview, decision.Reason)

	// 讲师本人同理
	decision, err = env.access.ResolveAccess(instructor.ID, course.ID, preview.ID)
	require.NoError(t, err)
	assert.Equal(t, AccessFreePreview, decision.Reason)
}

func TestResolveAccessPreviewRequiresPublishedCourse(t *testing.T) {
	env := newTestEnv(t)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CourseDraft)
	section := env.createSection(t, course.ID, 1)
	preview := env.createLesson(t, course.ID, section.ID, 1, true)

	// 草稿课程的免费试看对游客不生效
	decision, err := env.access.ResolveAccess(0, course.ID, preview.ID)
	require.NoError(t, err)
	assert.False(t, decision.Granted)
	assert.Equal(t, AccessDeniedRes, decision.Reason)

	// 归属者照常可见自己的草稿
	decision, err = env.access.ResolveAccess(instructor.ID, course.ID, preview.ID)
	require.NoError(t, err)
	assert.True(t, decision.Granted)
	assert.Equal(t, AccessOwner, decision.Reason)
}

func TestResolveAccessOwnerBeatsEnrolled(t *testing.T) {
	env := newTestEnv(t)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CoursePublished)

	// 归属者即使也报名了自己的课，原因仍是 OWNER
	env.enroll(t, instructor.ID, course.ID)

	decision, err := env.access.ResolveAccess(instructor.ID, course.ID, 0)
	require.NoError(t, err)
	assert.True(t, decision.Granted)
	assert.Equal(t, AccessOwner, decision.Reason)
}

func TestResolveAccessEnrolledAndDenied(t *testing.T) {
	env := newTestEnv(t)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CoursePublished)
	section := env.createSection(t, course.ID, 1)
	lesson := env.createLesson(t, course.ID, section.ID, 1, false)

	enrolled := env.createUser(t, model.Student)
	env.enroll(t, enrolled.ID, course.ID)
	stranger := env.createUser(t, model.Student)

	decision, err := env.access.ResolveAccess(enrolled.ID, course.ID, lesson.ID)
	require.NoError(t, err)
	assert.True(t, decision.Granted)
	assert.Equal(t, AccessEnrolled, decision.Reason)

	// 未报名：正常返回 DENIED，不是错误
	decision, err = env.access.ResolveAccess(stranger.ID, course.ID, lesson.ID)
	require.NoError(t, err)
	assert.False(t, decision.Granted)
	assert.Equal(t, AccessDeniedRes, decision.Reason)

	// 游客对非试看课时同样 DENIED
	decision, err = env.access.ResolveAccess(0, course.ID, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, AccessDeniedRes, decision.Reason)
}

func TestResolveAccessUnknownTargetsAreErrors(t *testing.T) {
	env := newTestEnv(t)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CoursePublished)
	other := env.createCourse(t, instructor.ID, model.CoursePublished)
	section := env.createSection(t, other.ID, 1)
	foreign := env.createLesson(t, other.ID, section.ID, 1, false)

	_, err := env.access.ResolveAccess(0, 9999, 0)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	_, err = env.access.ResolveAccess(0, course.ID, 9999)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)

	// 课时存在但不属于该课程，同样按不存在处理
	_, err = env.access.ResolveAccess(0, course.ID, foreign.ID)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestRequireAccessDeniedSentinel(t *testing.T) {
	env := newTestEnv(t)

	instructor := env.createUser(t, model.Instructor)
	course := env.createCourse(t, instructor.ID, model.CoursePublished)
	stranger := env.createUser(t, model.Student)

	err := env.access.RequireAccess(stranger.ID, course.ID, 0)
	assert.ErrorIs(t, err, util.ErrAccessDenied)

	require.NoError(t, env.access.RequireAccess(instructor.ID, course.ID, 0))
}
