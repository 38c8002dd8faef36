package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-api/internal/attendance"
	"github.com/noah-isme/afterschool-api/internal/dto"
	"github.com/noah-isme/afterschool-api/internal/models"
	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
)

// DefaultMinAttendanceRate is the eligibility threshold used when none is configured.
const DefaultMinAttendanceRate = 70.0

type studentCourseRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	FindWithStats(ctx context.Context, id int64) (*models.CourseWithStats, error)
	List(ctx context.Context, filter models.CourseFilter) ([]models.CourseWithStats, error)
}

type studentEnrollmentRepository interface {
	enrollmentWriter
	FindByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.StudentEnrollment, error)
	ListIDsByStudent(ctx context.Context, studentID int64) ([]int64, error)
	CourseIDsWithActiveEnrollment(ctx context.Context, studentID int64) ([]int64, error)
	Delete(ctx context.Context, studentID, courseID int64) error
}

type attendanceHistoryReader interface {
	ListByEnrollments(ctx context.Context, enrollmentIDs []int64) ([]models.EnrollmentAttendance, error)
}

// StudentConfig tunes the enrollment gate.
type StudentConfig struct {
	MinAttendanceRate float64
}

// StudentService implements course browsing and enrollment for students.
type StudentService struct {
	courses     studentCourseRepository
	enrollments studentEnrollmentRepository
	attendance  attendanceHistoryReader
	metrics     enrollmentMetrics
	logger      *zap.Logger
	config      StudentConfig
}

// NewStudentService builds a StudentService.
func NewStudentService(courses studentCourseRepository, enrollments studentEnrollmentRepository, attendanceRepo attendanceHistoryReader, metrics enrollmentMetrics, logger *zap.Logger, config StudentConfig) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.MinAttendanceRate <= 0 {
		config.MinAttendanceRate = DefaultMinAttendanceRate
	}
	return &StudentService{
		courses:     courses,
		enrollments: enrollments,
		attendance:  attendanceRepo,
		metrics:     metrics,
		logger:      logger,
		config:      config,
	}
}

// ListCourses returns approved courses matching the optional keyword and category.
func (s *StudentService) ListCourses(ctx context.Context, p models.Principal, keyword, category string) ([]dto.CourseItem, error) {
	if err := requireRole(p, models.RoleStudent); err != nil {
		return nil, err
	}
	status := models.CourseStatusApproved
	courses, err := s.courses.List(ctx, models.CourseFilter{Status: &status, Keyword: keyword, Category: category})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list courses")
	}
	enrolled, err := s.enrolledCourseSet(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	items := toCourseItems(courses)
	for i := range items {
		flag := enrolled[items[i].CourseID]
		items[i].IsEnrolled = &flag
	}
	return items, nil
}

// GetCourse returns a course with the caller's enrollment flags.
func (s *StudentService) GetCourse(ctx context.Context, p models.Principal, courseID int64) (*dto.CourseDetail, error) {
	if err := requireRole(p, models.RoleStudent); err != nil {
		return nil, err
	}
	course, err := s.courses.FindWithStats(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Internal(err, "failed to load course")
	}
	if course.Status != models.CourseStatusApproved {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}

	enrolled := true
	if _, err := s.enrollments.FindByStudentAndCourse(ctx, p.UserID, courseID); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Internal(err, "failed to load enrollment")
		}
		enrolled = false
	}
	eligible, err := s.eligible(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	item := toCourseItem(*course)
	item.IsEnrolled = &enrolled
	return &dto.CourseDetail{
		CourseItem: item,
		CanEnroll:  eligible && !enrolled && course.Open() && course.ActiveCount < course.Capacity,
	}, nil
}

// Enroll registers the student. Checks run in order: attendance eligibility,
// course existence and state, then duplicate and capacity inside one locked write.
func (s *StudentService) Enroll(ctx context.Context, p models.Principal, courseID int64) (*dto.EnrollmentItem, error) {
	if err := requireRole(p, models.RoleStudent); err != nil {
		return nil, err
	}
	eligible, err := s.eligible(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		observeEnrollment(s.metrics, EnrollmentOutcomeIneligible)
		return nil, appErrors.ErrIneligible
	}

	course, err := loadCourse(ctx, s.courses, courseID)
	if err != nil {
		return nil, err
	}
	if !course.Open() {
		observeEnrollment(s.metrics, EnrollmentOutcomeRejected)
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "course is not open for enrollment")
	}

	enrollment, err := insertEnrollment(ctx, s.enrollments, s.metrics, p.UserID, courseID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("student enrolled", zap.Int64("student_id", p.UserID), zap.Int64("course_id", courseID))
	return toEnrollmentItem(*enrollment), nil
}

// Cancel removes the student's enrollment.
func (s *StudentService) Cancel(ctx context.Context, p models.Principal, courseID int64) error {
	if err := requireRole(p, models.RoleStudent); err != nil {
		return err
	}
	if err := s.enrollments.Delete(ctx, p.UserID, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return appErrors.Internal(err, "failed to cancel enrollment")
	}
	s.logger.Info("enrollment cancelled", zap.Int64("student_id", p.UserID), zap.Int64("course_id", courseID))
	return nil
}

// MyCourses lists the student's enrollments with per-course attendance and the overall rate.
func (s *StudentService) MyCourses(ctx context.Context, p models.Principal) (*dto.MyCoursesResponse, error) {
	if err := requireRole(p, models.RoleStudent); err != nil {
		return nil, err
	}
	enrollments, err := s.enrollments.ListByStudent(ctx, p.UserID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list enrollments")
	}
	ids := make([]int64, len(enrollments))
	for i, e := range enrollments {
		ids[i] = e.ID
	}
	summaries, err := s.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	resp := &dto.MyCoursesResponse{Courses: make([]dto.MyCourseItem, 0, len(enrollments))}
	rates := make([]float64, 0, len(enrollments))
	for _, e := range enrollments {
		sum := summaries[e.ID]
		rates = append(rates, sum.Rate)
		resp.Courses = append(resp.Courses, dto.MyCourseItem{
			EnrollmentID:     e.ID,
			CourseID:         e.CourseID,
			CourseName:       e.CourseName,
			Category:         e.Category,
			Days:             e.Days,
			Time:             e.Time,
			Location:         e.Location,
			TeacherName:      e.TeacherName,
			CourseStatus:     string(e.CourseState),
			Ended:            e.Ended,
			EnrollmentStatus: string(e.Status),
			EnrolledAt:       e.EnrolledAt,
			Present:          sum.Present,
			Absent:           sum.Absent,
			Late:             sum.Late,
			AttendanceRate:   sum.Rate,
		})
	}
	resp.OverallAttendanceRate = attendance.OverallRate(rates)
	return resp, nil
}

func (s *StudentService) eligible(ctx context.Context, studentID int64) (bool, error) {
	ids, err := s.enrollments.ListIDsByStudent(ctx, studentID)
	if err != nil {
		return false, appErrors.Internal(err, "failed to load enrollment history")
	}
	summaries, err := s.summaries(ctx, ids)
	if err != nil {
		return false, err
	}
	rated := make([]attendance.Summary, 0, len(summaries))
	for _, sum := range summaries {
		rated = append(rated, sum)
	}
	return attendance.Eligible(rated, s.config.MinAttendanceRate), nil
}

func (s *StudentService) summaries(ctx context.Context, enrollmentIDs []int64) (map[int64]attendance.Summary, error) {
	if len(enrollmentIDs) == 0 {
		return map[int64]attendance.Summary{}, nil
	}
	records, err := s.attendance.ListByEnrollments(ctx, enrollmentIDs)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load attendance")
	}
	return attendance.ByEnrollment(enrollmentIDs, records), nil
}

func (s *StudentService) enrolledCourseSet(ctx context.Context, studentID int64) (map[int64]bool, error) {
	ids, err := s.enrollments.CourseIDsWithActiveEnrollment(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load enrollments")
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func toEnrollmentItem(e models.Enrollment) *dto.EnrollmentItem {
	return &dto.EnrollmentItem{
		EnrollmentID: e.ID,
		CourseID:     e.CourseID,
		StudentID:    e.StudentID,
		Status:       string(e.Status),
		EnrolledAt:   e.EnrolledAt,
	}
}
