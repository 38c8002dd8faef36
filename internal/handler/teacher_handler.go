package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/afterschool-api/internal/dto"
	"github.com/noah-isme/afterschool-api/internal/models"
	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
	"github.com/noah-isme/afterschool-api/pkg/response"
)

type teacherCourseService interface {
	CreateCourse(ctx context.Context, p models.Principal, req dto.CourseRequest) (*dto.CourseItem, error)
	MyCourses(ctx context.Context, p models.Principal) ([]dto.CourseItem, error)
	UpdateCourse(ctx context.Context, p models.Principal, courseID int64, req dto.CourseRequest) (*dto.CourseItem, error)
	EnrolledStudents(ctx context.Context, p models.Principal, courseID int64) ([]dto.EnrolledStudentItem, error)
}

type attendanceService interface {
	Sheet(ctx context.Context, p models.Principal, courseID int64, rawDate string) ([]dto.AttendanceItem, error)
	Record(ctx context.Context, p models.Principal, courseID int64, req dto.RecordAttendanceRequest) error
	Export(ctx context.Context, p models.Principal, courseID int64, rawFormat string) (*dto.AttendanceExport, error)
}

type courseNoticeService interface {
	ListCourseNotices(ctx context.Context, p models.Principal, courseID int64) ([]dto.NoticeItem, error)
	CreateCourseNotice(ctx context.Context, p models.Principal, courseID int64, req dto.NoticeRequest) (*dto.NoticeItem, error)
	UpdateCourseNotice(ctx context.Context, p models.Principal, courseID, noticeID int64, req dto.NoticeRequest) (*dto.NoticeItem, error)
	DeleteCourseNotice(ctx context.Context, p models.Principal, courseID, noticeID int64) error
}

type courseSurveyService interface {
	ListCourseSurveys(ctx context.Context, p models.Principal, courseID int64) ([]dto.SurveyItem, error)
	CreateCourseSurvey(ctx context.Context, p models.Principal, courseID int64, req dto.SurveyRequest) (*dto.SurveyDetail, error)
	CourseSurveyResults(ctx context.Context, p models.Principal, courseID, surveyID int64) (*dto.SurveyResults, error)
}

// TeacherHandler serves course management for the owning teacher.
type TeacherHandler struct {
	courses    teacherCourseService
	attendance attendanceService
	notices    courseNoticeService
	surveys    courseSurveyService
}

// NewTeacherHandler constructs a TeacherHandler.
func NewTeacherHandler(courses teacherCourseService, attendance attendanceService, notices courseNoticeService, surveys courseSurveyService) *TeacherHandler {
	return &TeacherHandler{courses: courses, attendance: attendance, notices: notices, surveys: surveys}
}

// CreateCourse godoc
// @Summary Propose a course
// @Description New courses start PENDING until an administrator approves them
// @Tags Teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /teachers/courses [post]
func (h *TeacherHandler) CreateCourse(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid course payload"))
		return
	}

	course, err := h.courses.CreateCourse(c.Request.Context(), p, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// MyCourses godoc
// @Summary Courses owned by the caller
// @Tags Teachers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /teachers/courses/my-courses [get]
func (h *TeacherHandler) MyCourses(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	courses, err := h.courses.MyCourses(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courses)
}

// UpdateCourse godoc
// @Summary Edit a course
// @Tags Teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param payload body dto.CourseRequest true "Course payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /teachers/courses/{courseId} [put]
func (h *TeacherHandler) UpdateCourse(c *gin.Context) {
	p, courseID, ok := courseScope(c)
	if !ok {
		return
	}
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid course payload"))
		return
	}

	course, err := h.courses.UpdateCourse(c.Request.Context(), p, courseID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, course)
}

// Students godoc
// @Summary Students enrolled in a course
// @Tags Teachers
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/courses/{courseId}/students [get]
func (h *TeacherHandler) Students(c *gin.Context) {
	p, courseID, ok := courseScope(c)
	if !ok {
		return
	}

	students, err := h.courses.EnrolledStudents(c.Request.Context(), p, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, students)
}

// AttendanceSheet godoc
// @Summary Attendance sheet for one class date
// @Description Defaults to today; students without a record are reported as NONE
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param date query string false "Class date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /teachers/courses/{courseId}/attendance [get]
func (h *TeacherHandler) AttendanceSheet(c *gin.Context) {
	p, courseID, ok := courseScope(c)
	if !ok {
		return
	}

	sheet, err := h.attendance.Sheet(c.Request.Context(), p, courseID, c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sheet)
}

// RecordAttendance godoc
// @Summary Record attendance
// @Description Upserts one status per enrollment for the class date
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param payload body dto.RecordAttendanceRequest true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /teachers/courses/{courseId}/attendance [post]
func (h *TeacherHandler) RecordAttendance(c *gin.Context) {
	p, courseID, ok := courseScope(c)
	if !ok {
		return
	}
	var req dto.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid attendance payload"))
		return
	}

	if err := h.attendance.Record(c.Request.Context(), p, courseID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Done(c, "attendance recorded")
}

// ExportAttendance godoc
// @Summary Export attendance totals
// @Tags Attendance
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /teachers/courses/{courseId}/attendance/export [get]
func (h *TeacherHandler) ExportAttendance(c *gin.Context) {
	p, courseID, ok := courseScope(c)
	if !ok {
		return
	}

	export, err := h.attendance.Export(c.Request.Context(), p, courseID, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, export.Filename, export.ContentType, export.Body)
}

// ListNotices godoc
// @Summary Course notices
// @Tags Notices
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/courses/{courseId}/notices [get]
func (h *TeacherHandler) ListNotices(c *gin.Context) {
	p, courseID, ok := courseScope(c)
	if !ok {
		return
	}

	notices, err := h.notices.ListCourseNotices(c.Request.Context(), p, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, notices)
}

// CreateNotice godoc
// @Summary Publish a course notice
// @Tags Notices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param payload body dto.NoticeRequest true "Notice payload"
// @Success 201 {object} response.Envelope
// @Router /teachers/courses/{courseId}/notices [post]
func (h *TeacherHandler) CreateNotice(c *gin.Context) {
	p, courseID, ok := courseScope(c)
	if !ok {
		return
	}
	var req dto.NoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid notice payload"))
		return
	}

	notice, err := h.notices.CreateCourseNotice(c.Request.Context(), p, courseID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, notice)
}

// UpdateNotice godoc
// @Summary Edit a course notice
// @Tags Notices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param noticeId path int true "Notice ID"
// @Param payload body dto.NoticeRequest true "Notice payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teachers/courses/{courseId}/notices/{noticeId} [put]
func (h *TeacherHandler) UpdateNotice(c *gin.Context) {
	p, courseID, ok := courseScope(c)
	if !ok {
		return
	}
	noticeID, err := idParam(c, "noticeId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.NoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid notice payload"))
		return
	}

	notice, err := h.notices.UpdateCourseNotice(c.Request.Context(), p, courseID, noticeID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, notice)
}

// DeleteNotice godoc
// @Summary Remove a course notice
// @Tags Notices
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param noticeId path int true "Notice ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /teachers/courses/{courseId}/notices/{noticeId} [delete]
func (h *TeacherHandler) DeleteNotice(c *gin.Context) {
	p, courseID, ok := courseScope(c)
	if !ok {
		return
	}
	noticeID, err := idParam(c, "noticeId")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.notices.DeleteCourseNotice(c.Request.Context(), p, courseID, noticeID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListSurveys godoc
// @Summary Course surveys
// @Tags Surveys
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/courses/{courseId}/surveys [get]
func (h *TeacherHandler) ListSurveys(c *gin.Context) {
	p, courseID, ok := courseScope(c)
	if !ok {
		return
	}

	surveys, err := h.surveys.ListCourseSurveys(c.Request.Context(), p, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, surveys)
}

// CreateSurvey godoc
// @Summary Create a course survey
// @Tags Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param payload body dto.SurveyRequest true "Survey payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /teachers/courses/{courseId}/surveys [post]
func (h *TeacherHandler) CreateSurvey(c *gin.Context) {
	p, courseID, ok := courseScope(c)
	if !ok {
		return
	}
	var req dto.SurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid survey payload"))
		return
	}

	survey, err := h.surveys.CreateCourseSurvey(c.Request.Context(), p, courseID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, survey)
}

// SurveyResults godoc
// @Summary Aggregated survey answers
// @Tags Surveys
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param surveyId path int true "Survey ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teachers/courses/{courseId}/surveys/{surveyId}/results [get]
func (h *TeacherHandler) SurveyResults(c *gin.Context) {
	p, courseID, ok := courseScope(c)
	if !ok {
		return
	}
	surveyID, err := idParam(c, "surveyId")
	if err != nil {
		response.Error(c, err)
		return
	}

	results, err := h.surveys.CourseSurveyResults(c.Request.Context(), p, courseID, surveyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, results)
}
