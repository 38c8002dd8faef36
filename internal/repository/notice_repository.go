package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/afterschool-api/internal/models"
)

const noticeSelect = `SELECT n.id, n.author_id, u.name AS author_name, n.course_id, n.title, n.content, n.created_at, n.updated_at
FROM notices n JOIN users u ON u.id = n.author_id`

// NoticeRepository persists course and global notices.
type NoticeRepository struct {
	db *sqlx.DB
}

// NewNoticeRepository constructs the repository.
func NewNoticeRepository(db *sqlx.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// Create inserts a notice and fills the generated identifier.
func (r *NoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	now := time.Now().UTC()
	notice.CreatedAt = now
	notice.UpdatedAt = now
	const query = `INSERT INTO notices (author_id, course_id, title, content, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.GetContext(ctx, &notice.ID, query,
		notice.AuthorID, notice.CourseID, notice.Title, notice.Content, notice.CreatedAt, notice.UpdatedAt); err != nil {
		return fmt.Errorf("create notice: %w", err)
	}
	return nil
}

// FindByID returns a notice with its author name.
func (r *NoticeRepository) FindByID(ctx context.Context, id int64) (*models.Notice, error) {
	var notice models.Notice
	if err := r.db.GetContext(ctx, &notice, noticeSelect+` WHERE n.id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find notice: %w", err)
	}
	return &notice, nil
}

// ListByCourse returns a course's notices, newest first.
func (r *NoticeRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Notice, error) {
	var notices []models.Notice
	if err := r.db.SelectContext(ctx, &notices, noticeSelect+` WHERE n.course_id = $1 ORDER BY n.created_at DESC, n.id DESC`, courseID); err != nil {
		return nil, fmt.Errorf("list course notices: %w", err)
	}
	return notices, nil
}

// ListGlobal returns platform wide notices, newest first.
func (r *NoticeRepository) ListGlobal(ctx context.Context) ([]models.Notice, error) {
	var notices []models.Notice
	if err := r.db.SelectContext(ctx, &notices, noticeSelect+` WHERE n.course_id IS NULL ORDER BY n.created_at DESC, n.id DESC`); err != nil {
		return nil, fmt.Errorf("list global notices: %w", err)
	}
	return notices, nil
}

// Update rewrites title and content.
func (r *NoticeRepository) Update(ctx context.Context, notice *models.Notice) error {
	notice.UpdatedAt = time.Now().UTC()
	const query = `UPDATE notices SET title = $2, content = $3, updated_at = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, notice.ID, notice.Title, notice.Content, notice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update notice: %w", err)
	}
	return expectAffected(res)
}

// Delete removes a notice.
func (r *NoticeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	return expectAffected(res)
}
