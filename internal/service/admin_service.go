package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-api/internal/dto"
	"github.com/noah-isme/afterschool-api/internal/models"
	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
	"github.com/noah-isme/afterschool-api/pkg/validation"
)

type adminUserRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.UserRole) error
	Delete(ctx context.Context, id int64) error
}

type adminCourseRepository interface {
	courseReader
	FindWithStats(ctx context.Context, id int64) (*models.CourseWithStats, error)
	List(ctx context.Context, filter models.CourseFilter) ([]models.CourseWithStats, error)
	UpdateStatus(ctx context.Context, id int64, from, to models.CourseStatus) error
	MarkEnded(ctx context.Context, id int64, at time.Time) error
}

type adminEnrollmentRepository interface {
	enrollmentWriter
	Delete(ctx context.Context, studentID, courseID int64) error
}

type courseNotifier interface {
	CourseStatusChanged(course models.Course)
}

// AdminService covers user administration and course moderation.
type AdminService struct {
	users       adminUserRepository
	courses     adminCourseRepository
	enrollments adminEnrollmentRepository
	notifier    courseNotifier
	metrics     enrollmentMetrics
	audit       auditLogger
	validator   *validation.Validator
	logger      *zap.Logger
	now         Clock
}

// NewAdminService builds an AdminService.
func NewAdminService(users adminUserRepository, courses adminCourseRepository, enrollments adminEnrollmentRepository, notifier courseNotifier, metrics enrollmentMetrics, audit auditLogger, validate *validation.Validator, logger *zap.Logger) *AdminService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		users:       users,
		courses:     courses,
		enrollments: enrollments,
		notifier:    notifier,
		metrics:     metrics,
		audit:       audit,
		validator:   validate,
		logger:      logger,
		now:         time.Now,
	}
}

// ListUsers returns users filtered by optional role and name fragment.
func (s *AdminService) ListUsers(ctx context.Context, p models.Principal, query dto.UserFilterQuery) ([]models.UserInfo, error) {
	if err := requireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}
	filter := models.UserFilter{Name: strings.TrimSpace(query.Name)}
	if strings.TrimSpace(query.Role) != "" {
		role, ok := models.ParseRole(query.Role)
		if !ok {
			return nil, appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "invalid user filter"),
				map[string]string{"role": "role must be one of STUDENT TEACHER ADMIN"})
		}
		filter.Role = &role
	}
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list users")
	}
	out := make([]models.UserInfo, 0, len(users))
	for _, u := range users {
		out = append(out, u.Info())
	}
	return out, nil
}

// UpdateUserRole changes the role of another user.
func (s *AdminService) UpdateUserRole(ctx context.Context, p models.Principal, userID int64, req dto.RoleUpdateRequest) (*models.UserInfo, error) {
	if err := requireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req, "invalid role payload"); err != nil {
		return nil, err
	}
	role, _ := models.ParseRole(req.Role)
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ID == p.UserID && role != models.RoleAdmin {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "administrators cannot demote themselves")
	}
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Internal(err, "failed to update role")
	}
	previous := user.Role
	user.Role = role
	recordAudit(ctx, s.audit, s.logger, p, models.AuditActionUserRoleUpdate, "user", userID, map[string]interface{}{"from": previous, "to": role})
	info := user.Info()
	return &info, nil
}

// DeleteUser removes a user together with everything that cascades from it.
func (s *AdminService) DeleteUser(ctx context.Context, p models.Principal, userID int64) error {
	if err := requireRole(p, models.RoleAdmin); err != nil {
		return err
	}
	if userID == p.UserID {
		return appErrors.Clone(appErrors.ErrInvalidState, "administrators cannot delete themselves")
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Internal(err, "failed to delete user")
	}
	recordAudit(ctx, s.audit, s.logger, p, models.AuditActionUserDelete, "user", userID, nil)
	return nil
}

// PendingCourses lists courses awaiting a decision.
func (s *AdminService) PendingCourses(ctx context.Context, p models.Principal) ([]dto.CourseItem, error) {
	status := models.CourseStatusPending
	return s.listCourses(ctx, p, models.CourseFilter{Status: &status})
}

// AllCourses lists every course regardless of status.
func (s *AdminService) AllCourses(ctx context.Context, p models.Principal) ([]dto.CourseItem, error) {
	return s.listCourses(ctx, p, models.CourseFilter{})
}

// UpdateCourseStatus approves or rejects a pending course.
func (s *AdminService) UpdateCourseStatus(ctx context.Context, p models.Principal, courseID int64, req dto.CourseStatusRequest) (*dto.CourseItem, error) {
	if err := requireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}
	req.Status = upper(req.Status)
	if err := s.validator.Struct(req, "invalid status payload"); err != nil {
		return nil, err
	}
	target := models.CourseStatus(req.Status)
	course, err := loadCourse(ctx, s.courses, courseID)
	if err != nil {
		return nil, err
	}
	if course.Status != models.CourseStatusPending || target == models.CourseStatusPending {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "only pending courses can be approved or rejected")
	}
	if err := s.courses.UpdateStatus(ctx, courseID, models.CourseStatusPending, target); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// another administrator decided first
			return nil, appErrors.Clone(appErrors.ErrInvalidState, "only pending courses can be approved or rejected")
		}
		return nil, appErrors.Internal(err, "failed to update course status")
	}
	course.Status = target
	s.logger.Info("course status changed", zap.Int64("course_id", courseID), zap.String("status", string(target)))
	recordAudit(ctx, s.audit, s.logger, p, models.AuditActionCourseStatus, "course", courseID, map[string]interface{}{"from": models.CourseStatusPending, "to": target})
	if s.notifier != nil {
		s.notifier.CourseStatusChanged(*course)
	}
	return s.courseItem(ctx, courseID)
}

// EndCourse closes an approved course once its end date is reached. Courses
// without an end date can be ended at any time.
func (s *AdminService) EndCourse(ctx context.Context, p models.Principal, courseID int64) (*dto.CourseItem, error) {
	if err := requireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}
	course, err := loadCourse(ctx, s.courses, courseID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	switch {
	case course.Status != models.CourseStatusApproved:
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "only approved courses can be ended")
	case course.Ended:
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "course has already ended")
	case course.EndDate != nil && today(now).Before(today(*course.EndDate)):
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "course end date has not been reached")
	}
	if err := s.courses.MarkEnded(ctx, courseID, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidState, "course has already ended")
		}
		return nil, appErrors.Internal(err, "failed to end course")
	}
	s.logger.Info("course ended", zap.Int64("course_id", courseID))
	recordAudit(ctx, s.audit, s.logger, p, models.AuditActionCourseEnd, "course", courseID, map[string]interface{}{"ended_at": now.UTC()})
	return s.courseItem(ctx, courseID)
}

// EnrollStudent enrolls a student without the attendance gate. The course must
// be open, and capacity and uniqueness still apply.
func (s *AdminService) EnrollStudent(ctx context.Context, p models.Principal, courseID int64, req dto.AdminEnrollRequest) (*dto.EnrollmentItem, error) {
	if err := requireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req, "invalid enrollment payload"); err != nil {
		return nil, err
	}
	student, err := s.loadUser(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if student.Role != models.RoleStudent {
		return nil, appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "invalid enrollment payload"),
			map[string]string{"studentId": "user is not a student"})
	}
	course, err := loadCourse(ctx, s.courses, courseID)
	if err != nil {
		return nil, err
	}
	if !course.Open() {
		observeEnrollment(s.metrics, EnrollmentOutcomeRejected)
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "course is not open for enrollment")
	}
	enrollment, err := insertEnrollment(ctx, s.enrollments, s.metrics, student.ID, courseID)
	if err != nil {
		return nil, err
	}
	recordAudit(ctx, s.audit, s.logger, p, models.AuditActionAdminEnroll, "enrollment", enrollment.ID, map[string]interface{}{"course_id": courseID, "student_id": student.ID})
	return toEnrollmentItem(*enrollment), nil
}

// UnenrollStudent removes a student's enrollment from a course.
func (s *AdminService) UnenrollStudent(ctx context.Context, p models.Principal, courseID, studentID int64) error {
	if err := requireRole(p, models.RoleAdmin); err != nil {
		return err
	}
	if err := s.enrollments.Delete(ctx, studentID, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return appErrors.Internal(err, "failed to delete enrollment")
	}
	recordAudit(ctx, s.audit, s.logger, p, models.AuditActionAdminUnenroll, "course", courseID, map[string]interface{}{"student_id": studentID})
	return nil
}

func (s *AdminService) listCourses(ctx context.Context, p models.Principal, filter models.CourseFilter) ([]dto.CourseItem, error) {
	if err := requireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}
	courses, err := s.courses.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list courses")
	}
	return toCourseItems(courses), nil
}

func (s *AdminService) courseItem(ctx context.Context, courseID int64) (*dto.CourseItem, error) {
	course, err := s.courses.FindWithStats(ctx, courseID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load course")
	}
	item := toCourseItem(*course)
	return &item, nil
}

func (s *AdminService) loadUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Internal(err, "failed to load user")
	}
	return user, nil
}
