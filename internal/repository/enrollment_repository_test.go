package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWithinCapacityInsertsWhenSeatsLeft(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT capacity FROM courses WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(7)).WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)")).
		WithArgs(int64(3), int64(7)).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM enrollments WHERE course_id = $1 AND status = 'ACTIVE'")).
		WithArgs(int64(7)).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO enrollments").
		WithArgs(int64(3), int64(7), "ACTIVE", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(15))
	mock.ExpectCommit()

	enrollment, err := repo.CreateWithinCapacity(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(15), enrollment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithinCapacityRejectsFullCourse(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(1))
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := repo.CreateWithinCapacity(context.Background(), 3, 7)
	assert.True(t, errors.Is(err, ErrCapacityReached))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithinCapacityMapsDuplicate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(5))
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("INSERT INTO enrollments").WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.CreateWithinCapacity(context.Background(), 3, 7)
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithinCapacityReportsDuplicateBeforeFull(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(1))
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.CreateWithinCapacity(context.Background(), 3, 7)
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithinCapacityUnknownCourse(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.CreateWithinCapacity(context.Background(), 3, 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListByStudent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "student_id", "course_id", "status", "enrolled_at", "course_name", "category",
		"days", "time", "location", "course_status", "ended", "teacher_name"}).
		AddRow(1, 3, 7, "ACTIVE", now, "Robotics", "STEM", "Tue", "15:00", "Lab", "APPROVED", false, "Kim")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.student_id = $1")).WithArgs(int64(3)).WillReturnRows(rows)

	items, err := repo.ListByStudent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Robotics", items[0].CourseName)
	assert.Equal(t, "APPROVED", string(items[0].CourseState))
}

func TestFindByIDsUsesInClause(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM enrollments WHERE id IN (?, ?)")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "course_id", "status", "enrolled_at"}).
			AddRow(1, 3, 7, "ACTIVE", now))

	items, err := repo.FindByIDs(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEnrollmentNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec("DELETE FROM enrollments").WithArgs(int64(3), int64(7)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 3, 7), sql.ErrNoRows)
}
