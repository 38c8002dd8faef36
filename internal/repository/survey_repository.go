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

const surveyColumns = `s.id, s.author_id, s.course_id, s.title, s.start_date, s.end_date, s.created_at`

// SurveyRepository persists surveys, their questions and submissions.
type SurveyRepository struct {
	db *sqlx.DB
}

// NewSurveyRepository constructs the repository.
func NewSurveyRepository(db *sqlx.DB) *SurveyRepository {
	return &SurveyRepository{db: db}
}

// Create stores the survey and its questions in one transaction.
func (r *SurveyRepository) Create(ctx context.Context, survey *models.Survey) error {
	survey.CreatedAt = time.Now().UTC()
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const insertSurvey = `INSERT INTO surveys (author_id, course_id, title, start_date, end_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
		if err := tx.GetContext(ctx, &survey.ID, insertSurvey,
			survey.AuthorID, survey.CourseID, survey.Title, survey.StartDate, survey.EndDate, survey.CreatedAt); err != nil {
			return fmt.Errorf("insert survey: %w", err)
		}
		const insertQuestion = `INSERT INTO survey_questions (survey_id, position, text, type, options)
VALUES ($1, $2, $3, $4, $5) RETURNING id`
		for i := range survey.Questions {
			q := &survey.Questions[i]
			q.SurveyID = survey.ID
			q.Position = i + 1
			if err := tx.GetContext(ctx, &q.ID, insertQuestion, q.SurveyID, q.Position, q.Text, q.Type, q.Options); err != nil {
				return fmt.Errorf("insert survey question: %w", err)
			}
		}
		return nil
	})
}

// FindByID returns a survey with its questions.
func (r *SurveyRepository) FindByID(ctx context.Context, id int64) (*models.Survey, error) {
	var survey models.Survey
	if err := r.db.GetContext(ctx, &survey, `SELECT `+surveyColumns+` FROM surveys s WHERE s.id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find survey: %w", err)
	}
	surveys := []models.Survey{survey}
	if err := r.attachQuestions(ctx, surveys); err != nil {
		return nil, err
	}
	return &surveys[0], nil
}

// ListByCourse returns the surveys of a course, newest first.
func (r *SurveyRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Survey, error) {
	return r.list(ctx, `SELECT `+surveyColumns+` FROM surveys s WHERE s.course_id = $1 ORDER BY s.created_at DESC, s.id DESC`, courseID)
}

// ListGlobal returns platform wide surveys, newest first.
func (r *SurveyRepository) ListGlobal(ctx context.Context) ([]models.Survey, error) {
	return r.list(ctx, `SELECT `+surveyColumns+` FROM surveys s WHERE s.course_id IS NULL ORDER BY s.created_at DESC, s.id DESC`)
}

// ListAvailable returns the surveys a student can still answer on day: global
// surveys and those of courses with an ACTIVE enrollment, inside their window,
// and not yet submitted by the student.
func (r *SurveyRepository) ListAvailable(ctx context.Context, studentID int64, day time.Time) ([]models.Survey, error) {
	const query = `SELECT ` + surveyColumns + ` FROM surveys s
WHERE (s.course_id IS NULL OR s.course_id IN (SELECT course_id FROM enrollments WHERE student_id = $1 AND status = 'ACTIVE'))
AND (s.start_date IS NULL OR s.start_date <= $2)
AND (s.end_date IS NULL OR s.end_date >= $2)
AND NOT EXISTS (SELECT 1 FROM survey_submissions ss WHERE ss.survey_id = s.id AND ss.respondent_id = $1)
ORDER BY s.end_date ASC NULLS LAST, s.id ASC`
	return r.list(ctx, query, studentID, day)
}

// HasSubmitted reports whether the respondent already answered the survey.
func (r *SurveyRepository) HasSubmitted(ctx context.Context, surveyID, respondentID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM survey_submissions WHERE survey_id = $1 AND respondent_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, surveyID, respondentID); err != nil {
		return false, fmt.Errorf("check survey submission: %w", err)
	}
	return exists, nil
}

// Submit records the submission marker and the answers atomically. The
// marker's primary key rejects a second submission with ErrDuplicate.
func (r *SurveyRepository) Submit(ctx context.Context, surveyID, respondentID int64, answers []models.SurveyAnswer) error {
	now := time.Now().UTC()
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const marker = `INSERT INTO survey_submissions (survey_id, respondent_id, submitted_at) VALUES ($1, $2, $3)`
		if _, err := tx.ExecContext(ctx, marker, surveyID, respondentID, now); err != nil {
			if database.IsUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("insert survey submission: %w", err)
		}
		const insertAnswer = `INSERT INTO survey_responses (question_id, respondent_id, content, submitted_at) VALUES ($1, $2, $3, $4)`
		for _, a := range answers {
			if _, err := tx.ExecContext(ctx, insertAnswer, a.QuestionID, respondentID, a.Content, now); err != nil {
				return fmt.Errorf("insert survey response: %w", err)
			}
		}
		return nil
	})
}

// ListAnswers returns every answer given to the survey's questions.
func (r *SurveyRepository) ListAnswers(ctx context.Context, surveyID int64) ([]models.SurveyAnswer, error) {
	const query = `SELECT r.id, r.question_id, r.respondent_id, r.content, r.submitted_at
FROM survey_responses r JOIN survey_questions q ON q.id = r.question_id
WHERE q.survey_id = $1 ORDER BY r.id ASC`
	var answers []models.SurveyAnswer
	if err := r.db.SelectContext(ctx, &answers, query, surveyID); err != nil {
		return nil, fmt.Errorf("list survey answers: %w", err)
	}
	return answers, nil
}

// CountSubmissions returns the number of respondents of the survey.
func (r *SurveyRepository) CountSubmissions(ctx context.Context, surveyID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM survey_submissions WHERE survey_id = $1`, surveyID); err != nil {
		return 0, fmt.Errorf("count survey submissions: %w", err)
	}
	return count, nil
}

func (r *SurveyRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Survey, error) {
	var surveys []models.Survey
	if err := r.db.SelectContext(ctx, &surveys, query, args...); err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	if err := r.attachQuestions(ctx, surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *SurveyRepository) attachQuestions(ctx context.Context, surveys []models.Survey) error {
	if len(surveys) == 0 {
		return nil
	}
	ids := make([]int64, len(surveys))
	index := make(map[int64]int, len(surveys))
	for i, s := range surveys {
		ids[i] = s.ID
		index[s.ID] = i
	}
	query, args, err := sqlx.In(`SELECT id, survey_id, position, text, type, options FROM survey_questions WHERE survey_id IN (?) ORDER BY survey_id, position`, ids)
	if err != nil {
		return fmt.Errorf("build question lookup: %w", err)
	}
	var questions []models.SurveyQuestion
	if err := r.db.SelectContext(ctx, &questions, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("list survey questions: %w", err)
	}
	for _, q := range questions {
		i := index[q.SurveyID]
		surveys[i].Questions = append(surveys[i].Questions, q)
	}
	return nil
}
