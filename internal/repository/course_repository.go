package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/afterschool-api/internal/models"
)

const courseColumns = `c.id, c.teacher_id, c.name, c.category, c.description, c.days, c.time, c.location, c.capacity,
c.status, c.quarter, c.quarter_label, c.end_date, c.ended, c.ended_at, c.created_at, c.updated_at`

const courseWithStatsSelect = `SELECT ` + courseColumns + `, u.name AS teacher_name,
(SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id AND e.status = 'ACTIVE') AS active_count
FROM courses c JOIN users u ON u.id = c.teacher_id`

// CourseRepository persists courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create inserts a course and fills the generated identifier.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	const query = `INSERT INTO courses (teacher_id, name, category, description, days, time, location, capacity,
status, quarter, quarter_label, end_date, ended, created_at, updated_at)
VALUES (:teacher_id, :name, :category, :description, :days, :time, :location, :capacity,
:status, :quarter, :quarter_label, :end_date, :ended, :created_at, :updated_at) RETURNING id`
	rows, err := r.db.NamedQueryContext(ctx, query, course)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&course.ID); err != nil {
			return fmt.Errorf("scan course id: %w", err)
		}
	}
	return rows.Err()
}

// FindByID returns a course by identifier.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses c WHERE c.id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return &course, nil
}

// FindWithStats returns a course joined with its teacher and active enrollment count.
func (r *CourseRepository) FindWithStats(ctx context.Context, id int64) (*models.CourseWithStats, error) {
	query := courseWithStatsSelect + ` WHERE c.id = $1`
	var course models.CourseWithStats
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find course with stats: %w", err)
	}
	return &course, nil
}

// List returns courses, newest first. The keyword matches course or teacher
// name case-insensitively; category matches exactly.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseWithStats, error) {
	var conditions []string
	var args []interface{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("c.status = $%d", len(args)))
	}
	if filter.TeacherID != nil {
		args = append(args, *filter.TeacherID)
		conditions = append(conditions, fmt.Sprintf("c.teacher_id = $%d", len(args)))
	}
	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		args = append(args, "%"+kw+"%")
		conditions = append(conditions, fmt.Sprintf("(c.name ILIKE $%d OR u.name ILIKE $%d)", len(args), len(args)))
	}
	if cat := strings.TrimSpace(filter.Category); cat != "" {
		args = append(args, cat)
		conditions = append(conditions, fmt.Sprintf("c.category = $%d", len(args)))
	}

	query := courseWithStatsSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.created_at DESC, c.id DESC"

	var courses []models.CourseWithStats
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// Update rewrites the editable fields and status of a course. Only pending or
// rejected rows are touched, so a concurrent approval yields sql.ErrNoRows.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET name = :name, category = :category, description = :description, days = :days,
time = :time, location = :location, capacity = :capacity, status = :status, quarter = :quarter,
quarter_label = :quarter_label, end_date = :end_date, updated_at = :updated_at
WHERE id = :id AND status IN ('PENDING', 'REJECTED')`
	res, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return expectAffected(res)
}

// UpdateStatus moves a course to status only while it is still in from.
// A concurrent transition leaves no row to update and yields sql.ErrNoRows.
func (r *CourseRepository) UpdateStatus(ctx context.Context, id int64, from, to models.CourseStatus) error {
	const query = `UPDATE courses SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, query, id, from, to, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update course status: %w", err)
	}
	return expectAffected(res)
}

// MarkEnded flags an approved, running course as ended.
func (r *CourseRepository) MarkEnded(ctx context.Context, id int64, at time.Time) error {
	const query = `UPDATE courses SET ended = TRUE, ended_at = $2, updated_at = $2
WHERE id = $1 AND status = 'APPROVED' AND ended = FALSE`
	res, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("end course: %w", err)
	}
	return expectAffected(res)
}
