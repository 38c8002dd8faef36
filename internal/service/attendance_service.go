package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-api/internal/attendance"
	"github.com/noah-isme/afterschool-api/internal/dto"
	"github.com/noah-isme/afterschool-api/internal/models"
	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
	"github.com/noah-isme/afterschool-api/pkg/export"
	"github.com/noah-isme/afterschool-api/pkg/validation"
)

type attendanceEnrollmentReader interface {
	FindByIDs(ctx context.Context, ids []int64) ([]models.Enrollment, error)
	ListActiveStudents(ctx context.Context, courseID int64) ([]models.EnrolledStudent, error)
}

type attendanceRepository interface {
	Upsert(ctx context.Context, classDate time.Time, marks []models.AttendanceMark) error
	SheetForDate(ctx context.Context, courseID int64, classDate time.Time) ([]models.AttendanceSheetRow, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.EnrollmentAttendance, error)
}

// AttendanceService records and reports class attendance for course owners.
type AttendanceService struct {
	courses     courseReader
	enrollments attendanceEnrollmentReader
	repo        attendanceRepository
	audit       auditLogger
	validator   *validation.Validator
	logger      *zap.Logger
	now         Clock
}

// NewAttendanceService builds an AttendanceService.
func NewAttendanceService(courses courseReader, enrollments attendanceEnrollmentReader, repo attendanceRepository, audit auditLogger, validate *validation.Validator, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{courses: courses, enrollments: enrollments, repo: repo, audit: audit, validator: validate, logger: logger, now: time.Now}
}

// Sheet lists every active enrollment for the class date; unrecorded rows report NONE.
func (s *AttendanceService) Sheet(ctx context.Context, p models.Principal, courseID int64, rawDate string) ([]dto.AttendanceItem, error) {
	if _, err := ownedCourse(ctx, s.courses, p, courseID); err != nil {
		return nil, err
	}
	classDate, err := parseClassDate(rawDate)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.SheetForDate(ctx, courseID, classDate)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load attendance")
	}
	day := classDate.Format(dto.DateLayout)
	items := make([]dto.AttendanceItem, 0, len(rows))
	for _, row := range rows {
		status := models.AttendanceNone
		if row.Status != nil {
			status = *row.Status
		}
		items = append(items, dto.AttendanceItem{
			AttendanceID: row.AttendanceID,
			EnrollmentID: row.EnrollmentID,
			StudentID:    row.StudentID,
			StudentName:  row.StudentName,
			ClassDate:    day,
			Status:       string(status),
		})
	}
	return items, nil
}

// Record upserts attendance for one class date. Every enrollment must exist and
// belong to the course; the whole batch is written in one transaction.
func (s *AttendanceService) Record(ctx context.Context, p models.Principal, courseID int64, req dto.RecordAttendanceRequest) error {
	if _, err := ownedCourse(ctx, s.courses, p, courseID); err != nil {
		return err
	}
	if err := s.validator.Struct(req, "invalid attendance payload"); err != nil {
		return err
	}
	classDate, err := parseClassDate(req.ClassDate)
	if err != nil {
		return err
	}

	ids := make([]int64, 0, len(req.Records))
	marks := make([]models.AttendanceMark, 0, len(req.Records))
	seen := make(map[int64]int, len(req.Records))
	for _, r := range req.Records {
		mark := models.AttendanceMark{EnrollmentID: r.EnrollmentID, Status: models.AttendanceStatus(upper(r.Status))}
		if i, dup := seen[r.EnrollmentID]; dup {
			marks[i] = mark
			continue
		}
		seen[r.EnrollmentID] = len(marks)
		ids = append(ids, r.EnrollmentID)
		marks = append(marks, mark)
	}

	enrollments, err := s.enrollments.FindByIDs(ctx, ids)
	if err != nil {
		return appErrors.Internal(err, "failed to load enrollments")
	}
	byID := make(map[int64]models.Enrollment, len(enrollments))
	for _, e := range enrollments {
		byID[e.ID] = e
	}
	for _, id := range ids {
		e, ok := byID[id]
		if !ok {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("enrollment %d not found", id))
		}
		if e.CourseID != courseID {
			return appErrors.Clone(appErrors.ErrCrossCourseViolation, fmt.Sprintf("enrollment %d does not belong to course %d", id, courseID))
		}
	}

	if err := s.repo.Upsert(ctx, classDate, marks); err != nil {
		return appErrors.Internal(err, "failed to record attendance")
	}
	recordAudit(ctx, s.audit, s.logger, p, models.AuditActionAttendanceRecord, "course", courseID,
		map[string]interface{}{"classDate": req.ClassDate, "records": len(marks)})
	return nil
}

// Export renders per-student attendance totals of the course as CSV or PDF.
func (s *AttendanceService) Export(ctx context.Context, p models.Principal, courseID int64, rawFormat string) (*dto.AttendanceExport, error) {
	course, err := ownedCourse(ctx, s.courses, p, courseID)
	if err != nil {
		return nil, err
	}
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "invalid export format"), map[string]string{"format": "format must be csv or pdf"})
	}

	students, err := s.enrollments.ListActiveStudents(ctx, courseID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list students")
	}
	records, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load attendance")
	}
	ids := make([]int64, len(students))
	for i, st := range students {
		ids[i] = st.EnrollmentID
	}
	summaries := attendance.ByEnrollment(ids, records)

	now := s.now().UTC()
	table := export.Table{
		Title:    course.Name,
		Subtitle: fmt.Sprintf("Attendance report generated %s", now.Format(dto.DateLayout)),
		Columns:  []string{"Student", "Student No", "Email", "Present", "Absent", "Late", "Rate (%)"},
		Rows:     make([][]string, 0, len(students)),
	}
	rates := make([]float64, 0, len(students))
	for _, st := range students {
		sum := summaries[st.EnrollmentID]
		rates = append(rates, sum.Rate)
		studentNo := ""
		if st.StudentIDNo != nil {
			studentNo = *st.StudentIDNo
		}
		table.Rows = append(table.Rows, []string{
			st.Name,
			studentNo,
			st.Email,
			strconv.Itoa(sum.Present),
			strconv.Itoa(sum.Absent),
			strconv.Itoa(sum.Late),
			strconv.FormatFloat(sum.Rate, 'f', 1, 64),
		})
	}
	table.Footer = []string{fmt.Sprintf("Course average: %.1f%% across %d students", attendance.OverallRate(rates), len(students))}

	renderer := export.NewRenderer(format)
	body, err := renderer.Render(table)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render attendance export")
	}
	return &dto.AttendanceExport{
		Filename:    fmt.Sprintf("course-%d-attendance-%s.%s", courseID, now.Format("20060102"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func parseClassDate(raw string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return time.Time{}, appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "invalid class date"),
			map[string]string{"date": "date must use the YYYY-MM-DD format"})
	}
	return t, nil
}
