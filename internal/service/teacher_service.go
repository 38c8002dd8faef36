package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-api/internal/dto"
	"github.com/noah-isme/afterschool-api/internal/models"
	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
	"github.com/noah-isme/afterschool-api/pkg/validation"
)

type teacherCourseRepository interface {
	courseReader
	FindWithStats(ctx context.Context, id int64) (*models.CourseWithStats, error)
	List(ctx context.Context, filter models.CourseFilter) ([]models.CourseWithStats, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
}

type enrolledStudentReader interface {
	ListActiveStudents(ctx context.Context, courseID int64) ([]models.EnrolledStudent, error)
}

// TeacherService manages the courses a teacher runs.
type TeacherService struct {
	courses     teacherCourseRepository
	enrollments enrolledStudentReader
	validator   *validation.Validator
	logger      *zap.Logger
}

// NewTeacherService builds a TeacherService.
func NewTeacherService(courses teacherCourseRepository, enrollments enrolledStudentReader, validate *validation.Validator, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{courses: courses, enrollments: enrollments, validator: validate, logger: logger}
}

// CreateCourse submits a new course for approval.
func (s *TeacherService) CreateCourse(ctx context.Context, p models.Principal, req dto.CourseRequest) (*dto.CourseItem, error) {
	if err := requireRole(p, models.RoleTeacher); err != nil {
		return nil, err
	}
	course := &models.Course{TeacherID: p.UserID, Status: models.CourseStatusPending}
	if err := s.apply(course, req); err != nil {
		return nil, err
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, appErrors.Internal(err, "failed to create course")
	}
	s.logger.Info("course submitted", zap.Int64("course_id", course.ID), zap.Int64("teacher_id", p.UserID))
	item := toCourseItem(models.CourseWithStats{Course: *course, TeacherName: p.Name})
	return &item, nil
}

// MyCourses lists the teacher's courses with active enrollment counts.
func (s *TeacherService) MyCourses(ctx context.Context, p models.Principal) ([]dto.CourseItem, error) {
	if err := requireRole(p, models.RoleTeacher); err != nil {
		return nil, err
	}
	teacherID := p.UserID
	courses, err := s.courses.List(ctx, models.CourseFilter{TeacherID: &teacherID})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list courses")
	}
	return toCourseItems(courses), nil
}

// UpdateCourse edits a pending or rejected course. Editing a rejected course
// resubmits it for approval. Capacity cannot drop below the active enrollments.
func (s *TeacherService) UpdateCourse(ctx context.Context, p models.Principal, courseID int64, req dto.CourseRequest) (*dto.CourseItem, error) {
	if _, err := ownedCourse(ctx, s.courses, p, courseID); err != nil {
		return nil, err
	}
	current, err := s.courses.FindWithStats(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Internal(err, "failed to load course")
	}
	switch current.Status {
	case models.CourseStatusPending:
	case models.CourseStatusRejected:
		current.Status = models.CourseStatusPending
	default:
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "only pending or rejected courses can be edited")
	}

	course := current.Course
	if err := s.apply(&course, req); err != nil {
		return nil, err
	}
	if course.Capacity < current.ActiveCount {
		return nil, appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "capacity below current enrollment"),
			map[string]string{"capacity": "capacity cannot be lower than the number of enrolled students"})
	}
	if err := s.courses.Update(ctx, &course); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidState, "only pending or rejected courses can be edited")
		}
		return nil, appErrors.Internal(err, "failed to update course")
	}
	item := toCourseItem(models.CourseWithStats{Course: course, TeacherName: current.TeacherName, ActiveCount: current.ActiveCount})
	return &item, nil
}

// EnrolledStudents lists the active students of a course the teacher owns.
func (s *TeacherService) EnrolledStudents(ctx context.Context, p models.Principal, courseID int64) ([]dto.EnrolledStudentItem, error) {
	if _, err := ownedCourse(ctx, s.courses, p, courseID); err != nil {
		return nil, err
	}
	students, err := s.enrollments.ListActiveStudents(ctx, courseID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list students")
	}
	items := make([]dto.EnrolledStudentItem, 0, len(students))
	for _, st := range students {
		items = append(items, dto.EnrolledStudentItem{
			EnrollmentID: st.EnrollmentID,
			StudentID:    st.StudentID,
			Name:         st.Name,
			Email:        st.Email,
			StudentIDNo:  st.StudentIDNo,
			EnrolledAt:   st.EnrolledAt,
		})
	}
	return items, nil
}

func (s *TeacherService) apply(course *models.Course, req dto.CourseRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Days = strings.ReplaceAll(strings.TrimSpace(req.Days), " ", "")
	if err := s.validator.Struct(req, "invalid course payload"); err != nil {
		return err
	}
	endDate, err := dto.ParseDate(req.EndDate)
	if err != nil {
		return appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "invalid course payload"), map[string]string{"endDate": err.Error()})
	}
	course.Name = req.Name
	course.Category = strings.TrimSpace(req.Category)
	course.Description = req.Description
	course.Days = req.Days
	course.Time = strings.TrimSpace(req.Time)
	course.Location = strings.TrimSpace(req.Location)
	course.Capacity = req.Capacity
	course.Quarter = req.Quarter
	course.QuarterLabel = strings.TrimSpace(req.QuarterLabel)
	if course.QuarterLabel == "" && req.Quarter != nil {
		course.QuarterLabel = models.QuarterLabel(*req.Quarter)
	}
	course.EndDate = endDate
	return nil
}
