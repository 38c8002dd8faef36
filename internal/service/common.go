package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-api/internal/dto"
	"github.com/noah-isme/afterschool-api/internal/models"
	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
)

// Clock returns the current time. Services default to time.Now.
type Clock func() time.Time

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type courseReader interface {
	FindByID(ctx context.Context, id int64) (*models.Course, error)
}

// requireRole rejects principals that hold none of the roles.
func requireRole(p models.Principal, roles ...models.UserRole) error {
	if p.UserID == 0 {
		return appErrors.ErrUnauthorized
	}
	for _, r := range roles {
		if p.Role == r {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrForbidden, "role not permitted for this operation")
}

// loadCourse fetches a course and maps a missing row to NOT_FOUND.
func loadCourse(ctx context.Context, courses courseReader, id int64) (*models.Course, error) {
	course, err := courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Internal(err, "failed to load course")
	}
	return course, nil
}

// ownedCourse loads a course and verifies the teacher owns it.
func ownedCourse(ctx context.Context, courses courseReader, p models.Principal, id int64) (*models.Course, error) {
	if err := requireRole(p, models.RoleTeacher); err != nil {
		return nil, err
	}
	course, err := loadCourse(ctx, courses, id)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != p.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "course belongs to another teacher")
	}
	return course, nil
}

func toCourseItem(c models.CourseWithStats) dto.CourseItem {
	label := c.QuarterLabel
	if label == "" && c.Quarter != nil {
		label = models.QuarterLabel(*c.Quarter)
	}
	return dto.CourseItem{
		CourseID:          c.ID,
		Name:              c.Name,
		Category:          c.Category,
		Description:       c.Description,
		Days:              c.Days,
		Time:              c.Time,
		Location:          c.Location,
		Capacity:          c.Capacity,
		CurrentEnrollment: c.ActiveCount,
		Status:            string(c.Status),
		TeacherID:         c.TeacherID,
		TeacherName:       c.TeacherName,
		Quarter:           c.Quarter,
		QuarterLabel:      label,
		EndDate:           dto.FormatDate(c.EndDate),
		Ended:             c.Ended,
		EndedAt:           c.EndedAt,
		CreatedAt:         c.CreatedAt,
	}
}

func toCourseItems(courses []models.CourseWithStats) []dto.CourseItem {
	items := make([]dto.CourseItem, 0, len(courses))
	for _, c := range courses {
		items = append(items, toCourseItem(c))
	}
	return items
}

// recordAudit writes an audit entry; failures are logged and never surface.
func recordAudit(ctx context.Context, audit auditLogger, logger *zap.Logger, actor models.Principal, action, resource string, resourceID int64, values interface{}) {
	if audit == nil {
		return
	}
	var payload []byte
	if values != nil {
		payload, _ = json.Marshal(values)
	}
	userID := actor.UserID
	id := strconv.FormatInt(resourceID, 10)
	entry := &models.AuditLog{
		UserID:     &userID,
		Action:     action,
		Resource:   resource,
		ResourceID: &id,
		NewValues:  payload,
		IPAddress:  "system",
		UserAgent:  "afterschool-api",
	}
	if meta, ok := requestMetaFrom(ctx); ok {
		entry.IPAddress = meta.IP
		entry.UserAgent = meta.UserAgent
	}
	if err := audit.CreateAuditLog(ctx, entry); err != nil {
		logger.Warn("failed to record audit log", zap.String("action", action), zap.Error(err))
	}
}

type requestMetaKey struct{}

// RequestMeta carries client details for audit entries.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// WithRequestMeta attaches client details to ctx.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

func requestMetaFrom(ctx context.Context) (RequestMeta, bool) {
	meta, ok := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta, ok
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
