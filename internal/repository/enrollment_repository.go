package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/afterschool-api/internal/models"
	"github.com/noah-isme/afterschool-api/pkg/database"
)

const enrollmentColumns = `id, student_id, course_id, status, enrolled_at`

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// CreateWithinCapacity inserts an ACTIVE enrollment only while the course has
// free seats. The course row is locked for the duration of the transaction so
// concurrent calls for the same course serialise on the checks. It returns
// sql.ErrNoRows for an unknown course, ErrDuplicate when the student is
// already enrolled and ErrCapacityReached when the course is full.
func (r *EnrollmentRepository) CreateWithinCapacity(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		Status:     models.EnrollmentStatusActive,
		EnrolledAt: time.Now().UTC(),
	}
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var capacity int
		if err := tx.GetContext(ctx, &capacity, `SELECT capacity FROM courses WHERE id = $1 FOR UPDATE`, courseID); err != nil {
			if err == sql.ErrNoRows {
				return err
			}
			return fmt.Errorf("lock course: %w", err)
		}

		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`, studentID, courseID); err != nil {
			return fmt.Errorf("check enrollment: %w", err)
		}
		if exists {
			return ErrDuplicate
		}

		var active int
		if err := tx.GetContext(ctx, &active, `SELECT COUNT(*) FROM enrollments WHERE course_id = $1 AND status = 'ACTIVE'`, courseID); err != nil {
			return fmt.Errorf("count active enrollments: %w", err)
		}
		if active >= capacity {
			return ErrCapacityReached
		}

		const insert = `INSERT INTO enrollments (student_id, course_id, status, enrolled_at) VALUES ($1, $2, $3, $4) RETURNING id`
		if err := tx.GetContext(ctx, &enrollment.ID, insert, studentID, courseID, enrollment.Status, enrollment.EnrolledAt); err != nil {
			if database.IsUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("insert enrollment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// FindByStudentAndCourse returns the enrollment of a student in a course.
func (r *EnrollmentRepository) FindByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE student_id = $1 AND course_id = $2`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, studentID, courseID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &enrollment, nil
}

// FindByIDs loads enrollments by identifier. Missing ids are simply absent from the result.
func (r *EnrollmentRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Enrollment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT `+enrollmentColumns+` FROM enrollments WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build enrollment lookup: %w", err)
	}
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("find enrollments: %w", err)
	}
	return enrollments, nil
}

// ListByStudent returns every enrollment of a student with course and teacher details.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.StudentEnrollment, error) {
	const query = `SELECT e.id, e.student_id, e.course_id, e.status, e.enrolled_at,
c.name AS course_name, c.category, c.days, c.time, c.location, c.status AS course_status, c.ended,
u.name AS teacher_name
FROM enrollments e
JOIN courses c ON c.id = e.course_id
JOIN users u ON u.id = c.teacher_id
WHERE e.student_id = $1
ORDER BY e.enrolled_at DESC, e.id DESC`
	var items []models.StudentEnrollment
	if err := r.db.SelectContext(ctx, &items, query, studentID); err != nil {
		return nil, fmt.Errorf("list student enrollments: %w", err)
	}
	return items, nil
}

// ListIDsByStudent returns the ids of all enrollments of a student.
func (r *EnrollmentRepository) ListIDsByStudent(ctx context.Context, studentID int64) ([]int64, error) {
	const query = `SELECT id FROM enrollments WHERE student_id = $1`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, studentID); err != nil {
		return nil, fmt.Errorf("list student enrollment ids: %w", err)
	}
	return ids, nil
}

// ListActiveStudents returns the ACTIVE enrollments of a course ordered by student name.
func (r *EnrollmentRepository) ListActiveStudents(ctx context.Context, courseID int64) ([]models.EnrolledStudent, error) {
	const query = `SELECT e.id AS enrollment_id, u.id AS student_id, u.name, u.email, u.student_id_no, e.enrolled_at
FROM enrollments e JOIN users u ON u.id = e.student_id
WHERE e.course_id = $1 AND e.status = 'ACTIVE'
ORDER BY u.name ASC, e.id ASC`
	var students []models.EnrolledStudent
	if err := r.db.SelectContext(ctx, &students, query, courseID); err != nil {
		return nil, fmt.Errorf("list enrolled students: %w", err)
	}
	return students, nil
}

// CourseIDsWithActiveEnrollment returns the courses the student is ACTIVE in.
func (r *EnrollmentRepository) CourseIDsWithActiveEnrollment(ctx context.Context, studentID int64) ([]int64, error) {
	const query = `SELECT course_id FROM enrollments WHERE student_id = $1 AND status = 'ACTIVE'`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, studentID); err != nil {
		return nil, fmt.Errorf("list enrolled course ids: %w", err)
	}
	return ids, nil
}

// Delete removes the enrollment of a student in a course. Attendance cascades.
func (r *EnrollmentRepository) Delete(ctx context.Context, studentID, courseID int64) error {
	const query = `DELETE FROM enrollments WHERE student_id = $1 AND course_id = $2`
	res, err := r.db.ExecContext(ctx, query, studentID, courseID)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return expectAffected(res)
}
