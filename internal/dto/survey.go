package dto

// SurveyRequest creates a survey with its questions.
type SurveyRequest struct {
	Title     string            `json:"title" validate:"required,max=200"`
	StartDate string            `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string            `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Questions []QuestionRequest `json:"questions" validate:"required,min=1,max=50,dive"`
}

// QuestionRequest defines one survey question.
type QuestionRequest struct {
	Text    string   `json:"questionText" validate:"required,max=500"`
	Type    string   `json:"questionType" validate:"required,question_type"`
	Options []string `json:"options" validate:"omitempty,max=20,dive,required,max=200"`
}

// SubmitSurveyRequest carries a respondent's answers.
type SubmitSurveyRequest struct {
	Responses []AnswerRequest `json:"responses" validate:"required,min=1,dive"`
}

// AnswerRequest answers one question.
type AnswerRequest struct {
	QuestionID int64  `json:"questionId" validate:"required,gt=0"`
	Content    string `json:"content" validate:"required,max=2000"`
}

// SurveyItem summarises a survey in list responses.
type SurveyItem struct {
	SurveyID  int64    `json:"surveyId"`
	CourseID  *int64   `json:"courseId,omitempty"`
	Title     string   `json:"title"`
	StartDate *string  `json:"startDate,omitempty"`
	EndDate   *string  `json:"endDate,omitempty"`
	Questions []string `json:"questions"`
}

// SurveyDetail is a survey ready to be answered.
type SurveyDetail struct {
	SurveyID  int64          `json:"surveyId"`
	CourseID  *int64         `json:"courseId,omitempty"`
	Title     string         `json:"title"`
	StartDate *string        `json:"startDate,omitempty"`
	EndDate   *string        `json:"endDate,omitempty"`
	Questions []QuestionItem `json:"questions"`
}

// QuestionItem is one question of a survey detail.
type QuestionItem struct {
	QuestionID int64    `json:"questionId"`
	Text       string   `json:"questionText"`
	Type       string   `json:"questionType"`
	Options    []string `json:"options,omitempty"`
}

// SurveyResults aggregates all submissions of a survey.
type SurveyResults struct {
	SurveyID    int64            `json:"surveyId"`
	Title       string           `json:"title"`
	Respondents int              `json:"respondents"`
	Questions   []QuestionResult `json:"questions"`
}

// QuestionResult aggregates the answers to one question. Choice questions are
// tallied per option; text answers are returned verbatim.
type QuestionResult struct {
	QuestionID   int64          `json:"questionId"`
	Text         string         `json:"questionText"`
	Type         string         `json:"questionType"`
	OptionCounts map[string]int `json:"optionCounts,omitempty"`
	Answers      []string       `json:"answers,omitempty"`
}
