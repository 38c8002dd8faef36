package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/afterschool-api/internal/models"
	"github.com/noah-isme/afterschool-api/pkg/database"
)

// AttendanceRepository stores per-class attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert writes one status per enrollment for the class date in a single
// transaction, overwriting any record that already exists for the pair.
func (r *AttendanceRepository) Upsert(ctx context.Context, classDate time.Time, marks []models.AttendanceMark) error {
	const query = `INSERT INTO attendances (enrollment_id, class_date, status) VALUES ($1, $2, $3)
ON CONFLICT (enrollment_id, class_date) DO UPDATE SET status = EXCLUDED.status`
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, query)
		if err != nil {
			return fmt.Errorf("prepare attendance upsert: %w", err)
		}
		defer stmt.Close()
		for _, mark := range marks {
			if _, err := stmt.ExecContext(ctx, mark.EnrollmentID, classDate, mark.Status); err != nil {
				return fmt.Errorf("upsert attendance for enrollment %d: %w", mark.EnrollmentID, err)
			}
		}
		return nil
	})
}

// ListByEnrollments returns every recorded status of the given enrollments.
func (r *AttendanceRepository) ListByEnrollments(ctx context.Context, enrollmentIDs []int64) ([]models.EnrollmentAttendance, error) {
	if len(enrollmentIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT enrollment_id, status FROM attendances WHERE enrollment_id IN (?)`, enrollmentIDs)
	if err != nil {
		return nil, fmt.Errorf("build attendance lookup: %w", err)
	}
	var records []models.EnrollmentAttendance
	if err := r.db.SelectContext(ctx, &records, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list attendance by enrollments: %w", err)
	}
	return records, nil
}

// ListByCourse returns every recorded status of the course's ACTIVE enrollments.
func (r *AttendanceRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.EnrollmentAttendance, error) {
	const query = `SELECT a.enrollment_id, a.status FROM attendances a
JOIN enrollments e ON e.id = a.enrollment_id
WHERE e.course_id = $1 AND e.status = 'ACTIVE'`
	var records []models.EnrollmentAttendance
	if err := r.db.SelectContext(ctx, &records, query, courseID); err != nil {
		return nil, fmt.Errorf("list attendance by course: %w", err)
	}
	return records, nil
}

// SheetForDate lists every ACTIVE enrollment of the course with its record for
// the class date. Enrollments without a record have nil status.
func (r *AttendanceRepository) SheetForDate(ctx context.Context, courseID int64, classDate time.Time) ([]models.AttendanceSheetRow, error) {
	const query = `SELECT e.id AS enrollment_id, u.id AS student_id, u.name AS student_name, a.id AS attendance_id, a.status
FROM enrollments e
JOIN users u ON u.id = e.student_id
LEFT JOIN attendances a ON a.enrollment_id = e.id AND a.class_date = $2
WHERE e.course_id = $1 AND e.status = 'ACTIVE'
ORDER BY u.name ASC, e.id ASC`
	var rows []models.AttendanceSheetRow
	if err := r.db.SelectContext(ctx, &rows, query, courseID, classDate); err != nil {
		return nil, fmt.Errorf("attendance sheet: %w", err)
	}
	return rows, nil
}
