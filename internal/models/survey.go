package models

import (
	"time"

	"github.com/lib/pq"
)

// QuestionType distinguishes choice questions from free text.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionText           QuestionType = "TEXT"
)

// Survey is a questionnaire scoped to a course, or global when CourseID is nil.
type Survey struct {
	ID        int64            `db:"id"`
	AuthorID  int64            `db:"author_id"`
	CourseID  *int64           `db:"course_id"`
	Title     string           `db:"title"`
	StartDate *time.Time       `db:"start_date"`
	EndDate   *time.Time       `db:"end_date"`
	CreatedAt time.Time        `db:"created_at"`
	Questions []SurveyQuestion `db:"-"`
}

// ActiveOn reports whether day falls inside the survey window. Missing bounds are open.
func (s Survey) ActiveOn(day time.Time) bool {
	d := truncateDay(day)
	if s.StartDate != nil && d.Before(truncateDay(*s.StartDate)) {
		return false
	}
	if s.EndDate != nil && d.After(truncateDay(*s.EndDate)) {
		return false
	}
	return true
}

// HasQuestion reports whether the question belongs to the survey.
func (s Survey) HasQuestion(questionID int64) bool {
	for _, q := range s.Questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

// SurveyQuestion is one question of a survey.
type SurveyQuestion struct {
	ID       int64          `db:"id"`
	SurveyID int64          `db:"survey_id"`
	Position int            `db:"position"`
	Text     string         `db:"text"`
	Type     QuestionType   `db:"type"`
	Options  pq.StringArray `db:"options"`
}

// SurveyAnswer is a stored response to one question.
type SurveyAnswer struct {
	ID           int64     `db:"id"`
	QuestionID   int64     `db:"question_id"`
	RespondentID int64     `db:"respondent_id"`
	Content      string    `db:"content"`
	SubmittedAt  time.Time `db:"submitted_at"`
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
