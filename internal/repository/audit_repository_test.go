package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/afterschool-api/internal/models"
)

func TestCreateAuditLog(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO audit_logs").WillReturnResult(sqlmock.NewResult(1, 1))

	userID := int64(1)
	log := &models.AuditLog{UserID: &userID, Action: models.AuditActionCourseStatus, Resource: "course", NewValues: []byte(`{"status":"APPROVED"}`)}
	require.NoError(t, repo.CreateAuditLog(context.Background(), log))
	assert.False(t, log.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
