package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/afterschool-api/internal/models"
)

var noticeCols = []string{"id", "author_id", "author_name", "course_id", "title", "content", "created_at", "updated_at"}

func TestNoticeListGlobal(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNoticeRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE n.course_id IS NULL ORDER BY n.created_at DESC")).
		WillReturnRows(sqlmock.NewRows(noticeCols).AddRow(1, 9, "Admin", nil, "Closed Friday", "No classes", now, now))

	notices, err := repo.ListGlobal(context.Background())
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.True(t, notices[0].Global())
	assert.Equal(t, "Admin", notices[0].AuthorName)
}

func TestNoticeCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNoticeRepository(db)

	courseID := int64(7)
	mock.ExpectQuery("INSERT INTO notices").
		WithArgs(int64(2), courseID, "Bring laptops", "Thursday session", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	notice := &models.Notice{AuthorID: 2, CourseID: &courseID, Title: "Bring laptops", Content: "Thursday session"}
	require.NoError(t, repo.Create(context.Background(), notice))
	assert.Equal(t, int64(5), notice.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
