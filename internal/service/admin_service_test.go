package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-api/internal/dto"
	"github.com/noah-isme/afterschool-api/internal/models"
	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
)

func courseStatus(status string) dto.CourseStatusRequest {
	return dto.CourseStatusRequest{Status: status}
}

func newAdminFixture(t *testing.T) (*memStore, *AdminService, *recordingNotifier) {
	t.Helper()
	store := newMemStore()
	store.addUser(1, models.RoleAdmin, "Admin")
	store.addUser(2, models.RoleTeacher, "Sari")
	store.addUser(3, models.RoleStudent, "Ana")
	notifier := &recordingNotifier{}
	svc := NewAdminService(memUsers{store}, memCourses{store}, memEnrollments{store}, notifier, nil, store, nil, zap.NewNop())
	svc.now = fixedClock(time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))
	return store, svc, notifier
}

func TestAdminUpdateCourseStatusTransitions(t *testing.T) {
	store, svc, notifier := newAdminFixture(t)
	store.addCourse(models.Course{ID: 7, TeacherID: 2, Name: "Robotics", Status: models.CourseStatusPending})
	admin := principal(1, models.RoleAdmin)
	ctx := context.Background()

	item, err := svc.UpdateCourseStatus(ctx, admin, 7, courseStatus("approved"))
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", item.Status)
	require.Len(t, notifier.courses, 1)
	assert.Equal(t, models.CourseStatusApproved, notifier.courses[0].Status)
	assert.Contains(t, store.auditActions(), models.AuditActionCourseStatus)

	_, err = svc.UpdateCourseStatus(ctx, admin, 7, courseStatus("REJECTED"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErrors.FromError(err).Code)

	_, err = svc.UpdateCourseStatus(ctx, admin, 7, courseStatus("ARCHIVED"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.UpdateCourseStatus(ctx, principal(2, models.RoleTeacher), 7, courseStatus("REJECTED"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestAdminEndCourse(t *testing.T) {
	store, svc, _ := newAdminFixture(t)
	past := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	future := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	store.addCourse(models.Course{ID: 1, TeacherID: 2, Status: models.CourseStatusApproved, EndDate: &past})
	store.addCourse(models.Course{ID: 2, TeacherID: 2, Status: models.CourseStatusApproved, EndDate: &future})
	store.addCourse(models.Course{ID: 3, TeacherID: 2, Status: models.CourseStatusPending, EndDate: &past})
	store.addCourse(models.Course{ID: 4, TeacherID: 2, Status: models.CourseStatusApproved})
	admin := principal(1, models.RoleAdmin)
	ctx := context.Background()

	item, err := svc.EndCourse(ctx, admin, 1)
	require.NoError(t, err)
	assert.True(t, item.Ended)
	require.NotNil(t, item.EndedAt)

	item, err = svc.EndCourse(ctx, admin, 4)
	require.NoError(t, err, "a course without an end date can be ended")
	assert.True(t, item.Ended)

	for _, id := range []int64{1, 2, 3, 4} {
		_, err := svc.EndCourse(ctx, admin, id)
		require.Error(t, err, "course %d", id)
		assert.Equal(t, appErrors.ErrInvalidState.Code, appErrors.FromError(err).Code, "course %d", id)
	}
}

func TestAdminEndCourseComparesCalendarDays(t *testing.T) {
	store, svc, _ := newAdminFixture(t)
	endDate := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	store.addCourse(models.Course{ID: 1, TeacherID: 2, Status: models.CourseStatusApproved, EndDate: &endDate})
	store.addCourse(models.Course{ID: 2, TeacherID: 2, Status: models.CourseStatusApproved, EndDate: &endDate})
	admin := principal(1, models.RoleAdmin)
	ctx := context.Background()

	svc.now = fixedClock(time.Date(2026, 5, 31, 20, 0, 0, 0, time.FixedZone("EST", -5*3600)))
	_, err := svc.EndCourse(ctx, admin, 1)
	require.Error(t, err, "evening before the end date")
	assert.Equal(t, "course end date has not been reached", appErrors.FromError(err).Message)

	svc.now = fixedClock(time.Date(2026, 6, 1, 8, 0, 0, 0, time.FixedZone("KST", 9*3600)))
	_, err = svc.EndCourse(ctx, admin, 1)
	require.NoError(t, err, "morning of the end date")

	svc.now = fixedClock(time.Date(2026, 6, 1, 23, 59, 0, 0, time.UTC))
	_, err = svc.EndCourse(ctx, admin, 2)
	require.NoError(t, err)
}

func TestAdminEnrollStudentSkipsEligibility(t *testing.T) {
	store, svc, _ := newAdminFixture(t)
	store.addCourse(models.Course{ID: 5, TeacherID: 2, Status: models.CourseStatusApproved})
	store.addCourse(models.Course{ID: 7, TeacherID: 2, Status: models.CourseStatusApproved, Capacity: 1})
	store.addEnrollment(50, 3, 5)
	store.mark(50, "2026-03-02", models.AttendanceAbsent)
	admin := principal(1, models.RoleAdmin)
	ctx := context.Background()

	item, err := svc.EnrollStudent(ctx, admin, 7, dto.AdminEnrollRequest{StudentID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(3), item.StudentID)

	store.addUser(4, models.RoleStudent, "Budi")
	_, err = svc.EnrollStudent(ctx, admin, 7, dto.AdminEnrollRequest{StudentID: 4})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrCourseFull.Code, appErrors.FromError(err).Code)

	_, err = svc.EnrollStudent(ctx, admin, 5, dto.AdminEnrollRequest{StudentID: 2})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "user is not a student", appErr.Details["studentId"])

	store.addCourse(models.Course{ID: 8, TeacherID: 2, Status: models.CourseStatusPending})
	store.addCourse(models.Course{ID: 9, TeacherID: 2, Status: models.CourseStatusApproved, Ended: true})
	for _, id := range []int64{8, 9} {
		_, err = svc.EnrollStudent(ctx, admin, id, dto.AdminEnrollRequest{StudentID: 3})
		require.Error(t, err, "course %d", id)
		assert.Equal(t, appErrors.ErrInvalidState.Code, appErrors.FromError(err).Code, "course %d", id)
	}

	require.NoError(t, svc.UnenrollStudent(ctx, admin, 7, 3))
	err = svc.UnenrollStudent(ctx, admin, 7, 3)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Contains(t, store.auditActions(), models.AuditActionAdminUnenroll)
}

func TestAdminUserManagement(t *testing.T) {
	store, svc, _ := newAdminFixture(t)
	admin := principal(1, models.RoleAdmin)
	ctx := context.Background()

	users, err := svc.ListUsers(ctx, admin, dto.UserFilterQuery{Role: "student"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ana", users[0].Name)

	_, err = svc.ListUsers(ctx, admin, dto.UserFilterQuery{Role: "janitor"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	info, err := svc.UpdateUserRole(ctx, admin, 3, dto.RoleUpdateRequest{Role: "TEACHER"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, info.Role)
	assert.Equal(t, models.RoleTeacher, store.users[3].Role)

	_, err = svc.UpdateUserRole(ctx, admin, 1, dto.RoleUpdateRequest{Role: "STUDENT"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErrors.FromError(err).Code)

	err = svc.DeleteUser(ctx, admin, 1)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.DeleteUser(ctx, admin, 3))
	err = svc.DeleteUser(ctx, admin, 3)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAdminCourseListings(t *testing.T) {
	store, svc, _ := newAdminFixture(t)
	store.addCourse(models.Course{ID: 5, TeacherID: 2, Status: models.CourseStatusApproved})
	store.addCourse(models.Course{ID: 6, TeacherID: 2, Status: models.CourseStatusPending})
	admin := principal(1, models.RoleAdmin)

	pending, err := svc.PendingCourses(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(6), pending[0].CourseID)

	all, err := svc.AllCourses(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
