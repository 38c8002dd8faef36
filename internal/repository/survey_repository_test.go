package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/afterschool-api/internal/models"
)

var surveyCols = []string{"id", "author_id", "course_id", "title", "start_date", "end_date", "created_at"}

func TestSurveyFindByIDAttachesQuestions(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSurveyRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM surveys s WHERE s.id = $1")).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(surveyCols).AddRow(4, 2, 7, "Feedback", nil, nil, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM survey_questions WHERE survey_id IN (?)")).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "survey_id", "position", "text", "type", "options"}).
			AddRow(10, 4, 1, "Rate the class", "MULTIPLE_CHOICE", "{Good,Okay,Bad}").
			AddRow(11, 4, 2, "Comments", "TEXT", nil))

	survey, err := repo.FindByID(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, survey.Questions, 2)
	assert.Equal(t, []string{"Good", "Okay", "Bad"}, []string(survey.Questions[0].Options))
	assert.True(t, survey.HasQuestion(11))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSurveyCreateWritesQuestionsInTransaction(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSurveyRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO surveys").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery("INSERT INTO survey_questions").WithArgs(int64(4), 1, "Rate", models.QuestionMultipleChoice, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	survey := &models.Survey{AuthorID: 1, Title: "Global", Questions: []models.SurveyQuestion{
		{Text: "Rate", Type: models.QuestionMultipleChoice, Options: pq.StringArray{"Good", "Bad"}},
	}}
	require.NoError(t, repo.Create(context.Background(), survey))
	assert.Equal(t, int64(4), survey.ID)
	assert.Equal(t, int64(10), survey.Questions[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSurveySubmitRejectsSecondSubmission(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSurveyRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO survey_submissions").WithArgs(int64(4), int64(3), sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "survey_submissions_pkey"})
	mock.ExpectRollback()

	err := repo.Submit(context.Background(), 4, 3, []models.SurveyAnswer{{QuestionID: 10, Content: "Good"}})
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSurveySubmitStoresAnswers(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSurveyRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO survey_submissions").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO survey_responses").WithArgs(int64(10), int64(3), "Good", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO survey_responses").WithArgs(int64(11), int64(3), "Fun", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.Submit(context.Background(), 4, 3, []models.SurveyAnswer{
		{QuestionID: 10, Content: "Good"},
		{QuestionID: 11, Content: "Fun"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAvailableFiltersByWindowAndSubmission(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSurveyRepository(db)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("NOT EXISTS (SELECT 1 FROM survey_submissions ss WHERE ss.survey_id = s.id AND ss.respondent_id = $1)")).
		WithArgs(int64(3), day).
		WillReturnRows(sqlmock.NewRows(surveyCols))

	surveys, err := repo.ListAvailable(context.Background(), 3, day)
	require.NoError(t, err)
	assert.Empty(t, surveys)
	assert.NoError(t, mock.ExpectationsWereMet())
}
