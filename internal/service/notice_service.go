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

type noticeRepository interface {
	Create(ctx context.Context, notice *models.Notice) error
	FindByID(ctx context.Context, id int64) (*models.Notice, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.Notice, error)
	ListGlobal(ctx context.Context) ([]models.Notice, error)
	Update(ctx context.Context, notice *models.Notice) error
	Delete(ctx context.Context, id int64) error
}

type noticeNotifier interface {
	NoticePublished(notice models.Notice)
}

// NoticeService authors course notices for teachers and global notices for admins.
type NoticeService struct {
	notices   noticeRepository
	courses   courseReader
	notifier  noticeNotifier
	audit     auditLogger
	validator *validation.Validator
	logger    *zap.Logger
}

// NewNoticeService builds a NoticeService.
func NewNoticeService(notices noticeRepository, courses courseReader, notifier noticeNotifier, audit auditLogger, validate *validation.Validator, logger *zap.Logger) *NoticeService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoticeService{notices: notices, courses: courses, notifier: notifier, audit: audit, validator: validate, logger: logger}
}

// ListCourseNotices returns the notices of a course the teacher owns.
func (s *NoticeService) ListCourseNotices(ctx context.Context, p models.Principal, courseID int64) ([]dto.NoticeItem, error) {
	if _, err := ownedCourse(ctx, s.courses, p, courseID); err != nil {
		return nil, err
	}
	notices, err := s.notices.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list notices")
	}
	return toNoticeItems(notices), nil
}

// CreateCourseNotice posts a notice to a course the teacher owns.
func (s *NoticeService) CreateCourseNotice(ctx context.Context, p models.Principal, courseID int64, req dto.NoticeRequest) (*dto.NoticeItem, error) {
	if _, err := ownedCourse(ctx, s.courses, p, courseID); err != nil {
		return nil, err
	}
	return s.create(ctx, p, &courseID, req)
}

// UpdateCourseNotice edits a notice of a course the teacher owns.
func (s *NoticeService) UpdateCourseNotice(ctx context.Context, p models.Principal, courseID, noticeID int64, req dto.NoticeRequest) (*dto.NoticeItem, error) {
	if _, err := ownedCourse(ctx, s.courses, p, courseID); err != nil {
		return nil, err
	}
	notice, err := s.courseNotice(ctx, courseID, noticeID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, notice, req)
}

// DeleteCourseNotice removes a notice of a course the teacher owns.
func (s *NoticeService) DeleteCourseNotice(ctx context.Context, p models.Principal, courseID, noticeID int64) error {
	if _, err := ownedCourse(ctx, s.courses, p, courseID); err != nil {
		return err
	}
	if _, err := s.courseNotice(ctx, courseID, noticeID); err != nil {
		return err
	}
	return s.delete(ctx, noticeID)
}

// ListGlobal returns platform wide notices.
func (s *NoticeService) ListGlobal(ctx context.Context, p models.Principal) ([]dto.NoticeItem, error) {
	if err := requireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}
	notices, err := s.notices.ListGlobal(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list notices")
	}
	return toNoticeItems(notices), nil
}

// CreateGlobal posts a platform wide notice.
func (s *NoticeService) CreateGlobal(ctx context.Context, p models.Principal, req dto.NoticeRequest) (*dto.NoticeItem, error) {
	if err := requireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}
	item, err := s.create(ctx, p, nil, req)
	if err != nil {
		return nil, err
	}
	recordAudit(ctx, s.audit, s.logger, p, models.AuditActionGlobalNotice, "notice", item.NoticeID, map[string]interface{}{"title": item.Title})
	return item, nil
}

// UpdateGlobal edits a platform wide notice.
func (s *NoticeService) UpdateGlobal(ctx context.Context, p models.Principal, noticeID int64, req dto.NoticeRequest) (*dto.NoticeItem, error) {
	if err := requireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}
	notice, err := s.globalNotice(ctx, noticeID)
	if err != nil {
		return nil, err
	}
	item, err := s.update(ctx, notice, req)
	if err != nil {
		return nil, err
	}
	recordAudit(ctx, s.audit, s.logger, p, models.AuditActionGlobalNotice, "notice", noticeID, map[string]interface{}{"title": item.Title})
	return item, nil
}

// DeleteGlobal removes a platform wide notice.
func (s *NoticeService) DeleteGlobal(ctx context.Context, p models.Principal, noticeID int64) error {
	if err := requireRole(p, models.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.globalNotice(ctx, noticeID); err != nil {
		return err
	}
	if err := s.delete(ctx, noticeID); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, s.logger, p, models.AuditActionGlobalNotice, "notice", noticeID, map[string]interface{}{"deleted": true})
	return nil
}

func (s *NoticeService) create(ctx context.Context, p models.Principal, courseID *int64, req dto.NoticeRequest) (*dto.NoticeItem, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req, "invalid notice payload"); err != nil {
		return nil, err
	}
	notice := &models.Notice{AuthorID: p.UserID, AuthorName: p.Name, CourseID: courseID, Title: req.Title, Content: req.Content}
	if err := s.notices.Create(ctx, notice); err != nil {
		return nil, appErrors.Internal(err, "failed to create notice")
	}
	if s.notifier != nil {
		s.notifier.NoticePublished(*notice)
	}
	item := toNoticeItem(*notice)
	return &item, nil
}

func (s *NoticeService) update(ctx context.Context, notice *models.Notice, req dto.NoticeRequest) (*dto.NoticeItem, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req, "invalid notice payload"); err != nil {
		return nil, err
	}
	notice.Title = req.Title
	notice.Content = req.Content
	if err := s.notices.Update(ctx, notice); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "notice not found")
		}
		return nil, appErrors.Internal(err, "failed to update notice")
	}
	item := toNoticeItem(*notice)
	return &item, nil
}

func (s *NoticeService) delete(ctx context.Context, noticeID int64) error {
	if err := s.notices.Delete(ctx, noticeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "notice not found")
		}
		return appErrors.Internal(err, "failed to delete notice")
	}
	return nil
}

func (s *NoticeService) find(ctx context.Context, noticeID int64) (*models.Notice, error) {
	notice, err := s.notices.FindByID(ctx, noticeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "notice not found")
		}
		return nil, appErrors.Internal(err, "failed to load notice")
	}
	return notice, nil
}

// courseNotice loads a notice and hides it unless it belongs to the course.
func (s *NoticeService) courseNotice(ctx context.Context, courseID, noticeID int64) (*models.Notice, error) {
	notice, err := s.find(ctx, noticeID)
	if err != nil {
		return nil, err
	}
	if notice.CourseID == nil || *notice.CourseID != courseID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "notice not found")
	}
	return notice, nil
}

func (s *NoticeService) globalNotice(ctx context.Context, noticeID int64) (*models.Notice, error) {
	notice, err := s.find(ctx, noticeID)
	if err != nil {
		return nil, err
	}
	if !notice.Global() {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "notice not found")
	}
	return notice, nil
}

func toNoticeItem(n models.Notice) dto.NoticeItem {
	return dto.NoticeItem{
		NoticeID:   n.ID,
		CourseID:   n.CourseID,
		Title:      n.Title,
		Content:    n.Content,
		AuthorID:   n.AuthorID,
		AuthorName: n.AuthorName,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func toNoticeItems(notices []models.Notice) []dto.NoticeItem {
	items := make([]dto.NoticeItem, 0, len(notices))
	for _, n := range notices {
		items = append(items, toNoticeItem(n))
	}
	return items
}
