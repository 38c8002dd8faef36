package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/afterschool-api/internal/dto"
	"github.com/noah-isme/afterschool-api/internal/models"
	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
	"github.com/noah-isme/afterschool-api/pkg/response"
)

type adminService interface {
	ListUsers(ctx context.Context, p models.Principal, query dto.UserFilterQuery) ([]models.UserInfo, error)
	UpdateUserRole(ctx context.Context, p models.Principal, userID int64, req dto.RoleUpdateRequest) (*models.UserInfo, error)
	DeleteUser(ctx context.Context, p models.Principal, userID int64) error
	PendingCourses(ctx context.Context, p models.Principal) ([]dto.CourseItem, error)
	AllCourses(ctx context.Context, p models.Principal) ([]dto.CourseItem, error)
	UpdateCourseStatus(ctx context.Context, p models.Principal, courseID int64, req dto.CourseStatusRequest) (*dto.CourseItem, error)
	EndCourse(ctx context.Context, p models.Principal, courseID int64) (*dto.CourseItem, error)
	EnrollStudent(ctx context.Context, p models.Principal, courseID int64, req dto.AdminEnrollRequest) (*dto.EnrollmentItem, error)
	UnenrollStudent(ctx context.Context, p models.Principal, courseID, studentID int64) error
}

type globalNoticeService interface {
	ListGlobal(ctx context.Context, p models.Principal) ([]dto.NoticeItem, error)
	CreateGlobal(ctx context.Context, p models.Principal, req dto.NoticeRequest) (*dto.NoticeItem, error)
	UpdateGlobal(ctx context.Context, p models.Principal, noticeID int64, req dto.NoticeRequest) (*dto.NoticeItem, error)
	DeleteGlobal(ctx context.Context, p models.Principal, noticeID int64) error
}

type globalSurveyService interface {
	ListGlobal(ctx context.Context, p models.Principal) ([]dto.SurveyItem, error)
	CreateGlobal(ctx context.Context, p models.Principal, req dto.SurveyRequest) (*dto.SurveyDetail, error)
	Results(ctx context.Context, p models.Principal, surveyID int64) (*dto.SurveyResults, error)
}

// AdminHandler exposes user, course and school-wide content administration.
type AdminHandler struct {
	admin   adminService
	notices globalNoticeService
	surveys globalSurveyService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(admin adminService, notices globalNoticeService, surveys globalSurveyService) *AdminHandler {
	return &AdminHandler{admin: admin, notices: notices, surveys: surveys}
}

// ListUsers godoc
// @Summary List users
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "STUDENT, TEACHER or ADMIN"
// @Param name query string false "Name contains"
// @Success 200 {object} response.Envelope
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var query dto.UserFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err, "invalid query parameters"))
		return
	}

	users, err := h.admin.ListUsers(c.Request.Context(), p, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users, map[string]interface{}{"total": len(users)})
}

// UpdateUserRole godoc
// @Summary Change a user's role
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param payload body dto.RoleUpdateRequest true "Role payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/users/{userId}/role [put]
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	p, userID, ok := scopedID(c, "userId")
	if !ok {
		return
	}
	var req dto.RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid role payload"))
		return
	}

	user, err := h.admin.UpdateUserRole(c.Request.Context(), p, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags Admin
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/users/{userId} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	p, userID, ok := scopedID(c, "userId")
	if !ok {
		return
	}

	if err := h.admin.DeleteUser(c.Request.Context(), p, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListCourses godoc
// @Summary List every course
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/courses [get]
func (h *AdminHandler) ListCourses(c *gin.Context) {
	h.listCourses(c, h.admin.AllCourses)
}

// PendingCourses godoc
// @Summary Courses awaiting approval
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/courses/pending [get]
func (h *AdminHandler) PendingCourses(c *gin.Context) {
	h.listCourses(c, h.admin.PendingCourses)
}

func (h *AdminHandler) listCourses(c *gin.Context, list func(context.Context, models.Principal) ([]dto.CourseItem, error)) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	courses, err := list(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, map[string]interface{}{"total": len(courses)})
}

// UpdateCourseStatus godoc
// @Summary Approve or reject a pending course
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param payload body dto.CourseStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/courses/{courseId}/status [put]
func (h *AdminHandler) UpdateCourseStatus(c *gin.Context) {
	p, courseID, ok := courseScope(c)
	if !ok {
		return
	}
	var req dto.CourseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid status payload"))
		return
	}

	course, err := h.admin.UpdateCourseStatus(c.Request.Context(), p, courseID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, course)
}

// EndCourse godoc
// @Summary Mark a course as ended
// @Description Only approved courses whose end date has been reached
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/courses/{courseId}/end [post]
func (h *AdminHandler) EndCourse(c *gin.Context) {
	p, courseID, ok := courseScope(c)
	if !ok {
		return
	}

	course, err := h.admin.EndCourse(c.Request.Context(), p, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, course)
}

// EnrollStudent godoc
// @Summary Enroll a student on their behalf
// @Description Skips the attendance eligibility gate but still respects capacity
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param payload body dto.AdminEnrollRequest true "Student"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/courses/{courseId}/enroll [post]
func (h *AdminHandler) EnrollStudent(c *gin.Context) {
	p, courseID, ok := courseScope(c)
	if !ok {
		return
	}
	var req dto.AdminEnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid enrollment payload"))
		return
	}

	enrollment, err := h.admin.EnrollStudent(c.Request.Context(), p, courseID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// UnenrollStudent godoc
// @Summary Remove a student from a course
// @Tags Admin
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param studentId path int true "Student user ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/courses/{courseId}/unenroll/{studentId} [delete]
func (h *AdminHandler) UnenrollStudent(c *gin.Context) {
	p, courseID, ok := courseScope(c)
	if !ok {
		return
	}
	studentID, err := idParam(c, "studentId")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.admin.UnenrollStudent(c.Request.Context(), p, courseID, studentID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListNotices godoc
// @Summary School-wide notices
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/notices [get]
func (h *AdminHandler) ListNotices(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	notices, err := h.notices.ListGlobal(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, notices)
}

// CreateNotice godoc
// @Summary Publish a school-wide notice
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.NoticeRequest true "Notice payload"
// @Success 201 {object} response.Envelope
// @Router /admin/notices [post]
func (h *AdminHandler) CreateNotice(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.NoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid notice payload"))
		return
	}

	notice, err := h.notices.CreateGlobal(c.Request.Context(), p, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, notice)
}

// UpdateNotice godoc
// @Summary Edit a school-wide notice
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param noticeId path int true "Notice ID"
// @Param payload body dto.NoticeRequest true "Notice payload"
// @Success 200 {object} response.Envelope
// @Router /admin/notices/{noticeId} [put]
func (h *AdminHandler) UpdateNotice(c *gin.Context) {
	p, noticeID, ok := scopedID(c, "noticeId")
	if !ok {
		return
	}
	var req dto.NoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid notice payload"))
		return
	}

	notice, err := h.notices.UpdateGlobal(c.Request.Context(), p, noticeID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, notice)
}

// DeleteNotice godoc
// @Summary Remove a school-wide notice
// @Tags Admin
// @Security BearerAuth
// @Param noticeId path int true "Notice ID"
// @Success 204
// @Router /admin/notices/{noticeId} [delete]
func (h *AdminHandler) DeleteNotice(c *gin.Context) {
	p, noticeID, ok := scopedID(c, "noticeId")
	if !ok {
		return
	}

	if err := h.notices.DeleteGlobal(c.Request.Context(), p, noticeID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListSurveys godoc
// @Summary School-wide surveys
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/surveys [get]
func (h *AdminHandler) ListSurveys(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	surveys, err := h.surveys.ListGlobal(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, surveys)
}

// CreateSurvey godoc
// @Summary Create a school-wide survey
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SurveyRequest true "Survey payload"
// @Success 201 {object} response.Envelope
// @Router /admin/surveys [post]
func (h *AdminHandler) CreateSurvey(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.SurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid survey payload"))
		return
	}

	survey, err := h.surveys.CreateGlobal(c.Request.Context(), p, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, survey)
}

// SurveyResults godoc
// @Summary Aggregated answers of any survey
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param surveyId path int true "Survey ID"
// @Success 200 {object} response.Envelope
// @Router /admin/surveys/{surveyId}/results [get]
func (h *AdminHandler) SurveyResults(c *gin.Context) {
	p, surveyID, ok := scopedID(c, "surveyId")
	if !ok {
		return
	}

	results, err := h.surveys.Results(c.Request.Context(), p, surveyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, results)
}
