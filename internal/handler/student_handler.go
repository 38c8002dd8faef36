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

type studentCourseService interface {
	ListCourses(ctx context.Context, p models.Principal, keyword, category string) ([]dto.CourseItem, error)
	GetCourse(ctx context.Context, p models.Principal, courseID int64) (*dto.CourseDetail, error)
	Enroll(ctx context.Context, p models.Principal, courseID int64) (*dto.EnrollmentItem, error)
	Cancel(ctx context.Context, p models.Principal, courseID int64) error
	MyCourses(ctx context.Context, p models.Principal) (*dto.MyCoursesResponse, error)
}

type studentSurveyService interface {
	ListAvailable(ctx context.Context, p models.Principal) ([]dto.SurveyItem, error)
	Get(ctx context.Context, p models.Principal, surveyID int64) (*dto.SurveyDetail, error)
	Submit(ctx context.Context, p models.Principal, surveyID int64, req dto.SubmitSurveyRequest) error
}

// StudentHandler serves the course catalogue, enrollment and surveys to students.
type StudentHandler struct {
	courses studentCourseService
	surveys studentSurveyService
}

// NewStudentHandler constructs a StudentHandler.
func NewStudentHandler(courses studentCourseService, surveys studentSurveyService) *StudentHandler {
	return &StudentHandler{courses: courses, surveys: surveys}
}

// ListCourses godoc
// @Summary Browse approved courses
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "Matches course name or description"
// @Param category query string false "Exact category"
// @Success 200 {object} response.Envelope
// @Router /students/courses [get]
func (h *StudentHandler) ListCourses(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	courses, err := h.courses.ListCourses(c.Request.Context(), p, c.Query("keyword"), c.Query("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, map[string]interface{}{"total": len(courses)})
}

// GetCourse godoc
// @Summary Course detail
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/courses/{courseId} [get]
func (h *StudentHandler) GetCourse(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	courseID, err := idParam(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}

	course, err := h.courses.GetCourse(c.Request.Context(), p, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, course)
}

// Enroll godoc
// @Summary Enroll in a course
// @Description Requires an approved, open course with free capacity and a sufficient attendance record
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /students/courses/{courseId}/enroll [post]
func (h *StudentHandler) Enroll(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	courseID, err := idParam(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}

	enrollment, err := h.courses.Enroll(c.Request.Context(), p, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// Cancel godoc
// @Summary Cancel an enrollment
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/courses/{courseId}/enroll [delete]
func (h *StudentHandler) Cancel(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	courseID, err := idParam(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.courses.Cancel(c.Request.Context(), p, courseID); err != nil {
		response.Error(c, err)
		return
	}
	response.Done(c, "enrollment cancelled")
}

// MyCourses godoc
// @Summary Enrollments of the caller with attendance rates
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /students/my-courses [get]
func (h *StudentHandler) MyCourses(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	res, err := h.courses.MyCourses(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// ListSurveys godoc
// @Summary Surveys the caller can still answer
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /students/surveys [get]
func (h *StudentHandler) ListSurveys(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	surveys, err := h.surveys.ListAvailable(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, surveys)
}

// GetSurvey godoc
// @Summary Survey questions
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param surveyId path int true "Survey ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/surveys/{surveyId} [get]
func (h *StudentHandler) GetSurvey(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	surveyID, err := idParam(c, "surveyId")
	if err != nil {
		response.Error(c, err)
		return
	}

	survey, err := h.surveys.Get(c.Request.Context(), p, surveyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, survey)
}

// SubmitSurvey godoc
// @Summary Submit survey answers
// @Description A survey can be answered once per student
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param surveyId path int true "Survey ID"
// @Param payload body dto.SubmitSurveyRequest true "Answers"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/surveys/{surveyId}/responses [post]
func (h *StudentHandler) SubmitSurvey(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	surveyID, err := idParam(c, "surveyId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.SubmitSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid survey response payload"))
		return
	}

	if err := h.surveys.Submit(c.Request.Context(), p, surveyID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, response.Message{Message: "survey submitted"})
}
