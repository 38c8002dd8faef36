package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
)

type samplePayload struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,role"`
	Days  string `json:"course_days" validate:"required,course_days"`
}

func TestStructPassesValidPayload(t *testing.T) {
	v := New()
	err := v.Struct(samplePayload{Email: "kim@example.com", Role: "student", Days: "Tue,Thu"}, "")
	require.NoError(t, err)
}

func TestStructTranslatesFieldErrors(t *testing.T) {
	v := New()
	err := v.Struct(samplePayload{Email: "nope", Role: "JANITOR", Days: "Tuesday"}, "invalid signup payload")
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "invalid signup payload", appErr.Message)
	assert.Equal(t, "email must be a valid email address", appErr.Details["email"])
	assert.Equal(t, "role must be one of STUDENT, TEACHER, ADMIN", appErr.Details["role"])
	assert.Equal(t, "course_days must list weekdays like Tue,Thu", appErr.Details["course_days"])
}
