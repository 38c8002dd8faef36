package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/noah-isme/afterschool-api/internal/models"
	"github.com/noah-isme/afterschool-api/internal/repository"
	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
)

// Enrollment outcomes reported to metrics.
const (
	EnrollmentOutcomeCreated    = "created"
	EnrollmentOutcomeDuplicate  = "duplicate"
	EnrollmentOutcomeFull       = "full"
	EnrollmentOutcomeIneligible = "ineligible"
	EnrollmentOutcomeRejected   = "rejected"
)

type enrollmentWriter interface {
	CreateWithinCapacity(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
}

type enrollmentMetrics interface {
	RecordEnrollment(outcome string)
}

// insertEnrollment runs the conditional capacity insert and maps its failures.
func insertEnrollment(ctx context.Context, repo enrollmentWriter, metrics enrollmentMetrics, studentID, courseID int64) (*models.Enrollment, error) {
	enrollment, err := repo.CreateWithinCapacity(ctx, studentID, courseID)
	switch {
	case err == nil:
		observeEnrollment(metrics, EnrollmentOutcomeCreated)
		return enrollment, nil
	case errors.Is(err, sql.ErrNoRows):
		observeEnrollment(metrics, EnrollmentOutcomeRejected)
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	case errors.Is(err, repository.ErrDuplicate):
		observeEnrollment(metrics, EnrollmentOutcomeDuplicate)
		return nil, appErrors.ErrAlreadyEnrolled
	case errors.Is(err, repository.ErrCapacityReached):
		observeEnrollment(metrics, EnrollmentOutcomeFull)
		return nil, appErrors.ErrCourseFull
	default:
		return nil, appErrors.Internal(err, "failed to create enrollment")
	}
}

func observeEnrollment(metrics enrollmentMetrics, outcome string) {
	if metrics != nil {
		metrics.RecordEnrollment(outcome)
	}
}
