package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/afterschool-api/internal/dto"
	"github.com/noah-isme/afterschool-api/internal/models"
	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
)

type fakeStudentSrv struct {
	keyword, category string
	courseID          int64
	enrollErr         error
	cancelled         bool
}

func (f *fakeStudentSrv) ListCourses(_ context.Context, _ models.Principal, keyword, category string) ([]dto.CourseItem, error) {
	f.keyword, f.category = keyword, category
	return []dto.CourseItem{{CourseID: 7, Name: "Robotics"}, {CourseID: 8, Name: "Chess"}}, nil
}

func (f *fakeStudentSrv) GetCourse(_ context.Context, _ models.Principal, courseID int64) (*dto.CourseDetail, error) {
	f.courseID = courseID
	return nil, appErrors.ErrNotFound
}

func (f *fakeStudentSrv) Enroll(_ context.Context, p models.Principal, courseID int64) (*dto.EnrollmentItem, error) {
	f.courseID = courseID
	if f.enrollErr != nil {
		return nil, f.enrollErr
	}
	return &dto.EnrollmentItem{EnrollmentID: 1, CourseID: courseID, StudentID: p.UserID, Status: "ACTIVE"}, nil
}

func (f *fakeStudentSrv) Cancel(_ context.Context, _ models.Principal, courseID int64) error {
	f.courseID = courseID
	f.cancelled = true
	return nil
}

func (f *fakeStudentSrv) MyCourses(context.Context, models.Principal) (*dto.MyCoursesResponse, error) {
	return &dto.MyCoursesResponse{OverallAttendanceRate: 40}, nil
}

type fakeStudentSurveySrv struct {
	submitted dto.SubmitSurveyRequest
	surveyID  int64
	submitErr error
}

func (f *fakeStudentSurveySrv) ListAvailable(context.Context, models.Principal) ([]dto.SurveyItem, error) {
	return []dto.SurveyItem{{SurveyID: 9}}, nil
}

func (f *fakeStudentSurveySrv) Get(_ context.Context, _ models.Principal, surveyID int64) (*dto.SurveyDetail, error) {
	return &dto.SurveyDetail{SurveyID: surveyID}, nil
}

func (f *fakeStudentSurveySrv) Submit(_ context.Context, _ models.Principal, surveyID int64, req dto.SubmitSurveyRequest) error {
	f.surveyID, f.submitted = surveyID, req
	return f.submitErr
}

func TestStudentHandlerListCoursesForwardsFilters(t *testing.T) {
	srv := &fakeStudentSrv{}
	handler := NewStudentHandler(srv, &fakeStudentSurveySrv{})
	c, rec := newTestContext(http.MethodGet, "/students/courses?keyword=robot&category=STEM", nil, studentClaims())

	handler.ListCourses(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "robot", srv.keyword)
	assert.Equal(t, "STEM", srv.category)
	assert.Equal(t, float64(2), decode(t, rec).Meta["total"])
}

func TestStudentHandlerRequiresPrincipal(t *testing.T) {
	handler := NewStudentHandler(&fakeStudentSrv{}, &fakeStudentSurveySrv{})
	c, rec := newTestContext(http.MethodGet, "/students/my-courses", nil, nil)

	handler.MyCourses(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStudentHandlerEnroll(t *testing.T) {
	srv := &fakeStudentSrv{}
	handler := NewStudentHandler(srv, &fakeStudentSurveySrv{})

	c, rec := newTestContext(http.MethodPost, "/students/courses/abc/enroll", nil, studentClaims(), param("courseId", "abc"))
	handler.Enroll(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Error.Details, "courseId")

	c, rec = newTestContext(http.MethodPost, "/students/courses/7/enroll", nil, studentClaims(), param("courseId", "7"))
	handler.Enroll(c)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), srv.courseID)

	srv.enrollErr = appErrors.ErrIneligible
	c, rec = newTestContext(http.MethodPost, "/students/courses/7/enroll", nil, studentClaims(), param("courseId", "7"))
	handler.Enroll(c)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, appErrors.ErrIneligible.Code, decode(t, rec).Error.Code)

	srv.enrollErr = appErrors.ErrCourseFull
	c, rec = newTestContext(http.MethodPost, "/students/courses/7/enroll", nil, studentClaims(), param("courseId", "7"))
	handler.Enroll(c)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStudentHandlerCancelAndDetail(t *testing.T) {
	srv := &fakeStudentSrv{}
	handler := NewStudentHandler(srv, &fakeStudentSurveySrv{})

	c, rec := newTestContext(http.MethodDelete, "/students/courses/7/enroll", nil, studentClaims(), param("courseId", "7"))
	handler.Cancel(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, srv.cancelled)

	c, rec = newTestContext(http.MethodGet, "/students/courses/99", nil, studentClaims(), param("courseId", "99"))
	handler.GetCourse(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, int64(99), srv.courseID)
}

func TestStudentHandlerSubmitSurvey(t *testing.T) {
	surveys := &fakeStudentSurveySrv{}
	handler := NewStudentHandler(&fakeStudentSrv{}, surveys)
	body := map[string]interface{}{"responses": []map[string]interface{}{{"questionId": 4, "content": "Right"}}}

	c, rec := newTestContext(http.MethodPost, "/students/surveys/9/responses", body, studentClaims(), param("surveyId", "9"))
	handler.SubmitSurvey(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(9), surveys.surveyID)
	require.Len(t, surveys.submitted.Responses, 1)
	assert.Equal(t, int64(4), surveys.submitted.Responses[0].QuestionID)

	surveys.submitErr = appErrors.Clone(appErrors.ErrInvalidState, "survey already submitted")
	c, rec = newTestContext(http.MethodPost, "/students/surveys/9/responses", body, studentClaims(), param("surveyId", "9"))
	handler.SubmitSurvey(c)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
