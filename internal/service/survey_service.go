package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-api/internal/dto"
	"github.com/noah-isme/afterschool-api/internal/models"
	"github.com/noah-isme/afterschool-api/internal/repository"
	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
	"github.com/noah-isme/afterschool-api/pkg/validation"
)

type surveyRepository interface {
	Create(ctx context.Context, survey *models.Survey) error
	FindByID(ctx context.Context, id int64) (*models.Survey, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.Survey, error)
	ListGlobal(ctx context.Context) ([]models.Survey, error)
	ListAvailable(ctx context.Context, studentID int64, day time.Time) ([]models.Survey, error)
	HasSubmitted(ctx context.Context, surveyID, respondentID int64) (bool, error)
	Submit(ctx context.Context, surveyID, respondentID int64, answers []models.SurveyAnswer) error
	ListAnswers(ctx context.Context, surveyID int64) ([]models.SurveyAnswer, error)
	CountSubmissions(ctx context.Context, surveyID int64) (int, error)
}

type surveyEnrollmentReader interface {
	FindByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
}

type surveyNotifier interface {
	SurveyPublished(survey models.Survey)
}

// SurveyService authors surveys, collects answers and aggregates results.
type SurveyService struct {
	surveys     surveyRepository
	courses     courseReader
	enrollments surveyEnrollmentReader
	notifier    surveyNotifier
	audit       auditLogger
	validator   *validation.Validator
	logger      *zap.Logger
	now         Clock
}

// NewSurveyService builds a SurveyService.
func NewSurveyService(surveys surveyRepository, courses courseReader, enrollments surveyEnrollmentReader, notifier surveyNotifier, audit auditLogger, validate *validation.Validator, logger *zap.Logger) *SurveyService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SurveyService{
		surveys:     surveys,
		courses:     courses,
		enrollments: enrollments,
		notifier:    notifier,
		audit:       audit,
		validator:   validate,
		logger:      logger,
		now:         time.Now,
	}
}

// ListCourseSurveys returns the surveys of a course the teacher owns.
func (s *SurveyService) ListCourseSurveys(ctx context.Context, p models.Principal, courseID int64) ([]dto.SurveyItem, error) {
	if _, err := ownedCourse(ctx, s.courses, p, courseID); err != nil {
		return nil, err
	}
	surveys, err := s.surveys.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list surveys")
	}
	return toSurveyItems(surveys), nil
}

// CreateCourseSurvey creates a survey for a course the teacher owns.
func (s *SurveyService) CreateCourseSurvey(ctx context.Context, p models.Principal, courseID int64, req dto.SurveyRequest) (*dto.SurveyDetail, error) {
	if _, err := ownedCourse(ctx, s.courses, p, courseID); err != nil {
		return nil, err
	}
	return s.create(ctx, p, &courseID, req)
}

// CourseSurveyResults aggregates a survey of a course the teacher owns.
func (s *SurveyService) CourseSurveyResults(ctx context.Context, p models.Principal, courseID, surveyID int64) (*dto.SurveyResults, error) {
	if _, err := ownedCourse(ctx, s.courses, p, courseID); err != nil {
		return nil, err
	}
	survey, err := s.find(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey.CourseID == nil || *survey.CourseID != courseID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "survey not found")
	}
	return s.results(ctx, survey)
}

// ListGlobal returns platform wide surveys.
func (s *SurveyService) ListGlobal(ctx context.Context, p models.Principal) ([]dto.SurveyItem, error) {
	if err := requireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}
	surveys, err := s.surveys.ListGlobal(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list surveys")
	}
	return toSurveyItems(surveys), nil
}

// CreateGlobal creates a platform wide survey.
func (s *SurveyService) CreateGlobal(ctx context.Context, p models.Principal, req dto.SurveyRequest) (*dto.SurveyDetail, error) {
	if err := requireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}
	detail, err := s.create(ctx, p, nil, req)
	if err != nil {
		return nil, err
	}
	recordAudit(ctx, s.audit, s.logger, p, models.AuditActionGlobalSurvey, "survey", detail.SurveyID, map[string]interface{}{"title": detail.Title})
	return detail, nil
}

// Results aggregates any survey for an administrator.
func (s *SurveyService) Results(ctx context.Context, p models.Principal, surveyID int64) (*dto.SurveyResults, error) {
	if err := requireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}
	survey, err := s.find(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return s.results(ctx, survey)
}

// ListAvailable returns the surveys the student can answer today.
func (s *SurveyService) ListAvailable(ctx context.Context, p models.Principal) ([]dto.SurveyItem, error) {
	if err := requireRole(p, models.RoleStudent); err != nil {
		return nil, err
	}
	surveys, err := s.surveys.ListAvailable(ctx, p.UserID, today(s.now()))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list surveys")
	}
	return toSurveyItems(surveys), nil
}

// Get returns a survey the student may answer.
func (s *SurveyService) Get(ctx context.Context, p models.Principal, surveyID int64) (*dto.SurveyDetail, error) {
	survey, err := s.answerable(ctx, p, surveyID)
	if err != nil {
		return nil, err
	}
	return toSurveyDetail(*survey), nil
}

// Submit stores the student's answers. A survey can be answered once per student.
func (s *SurveyService) Submit(ctx context.Context, p models.Principal, surveyID int64, req dto.SubmitSurveyRequest) error {
	survey, err := s.answerable(ctx, p, surveyID)
	if err != nil {
		return err
	}
	if err := s.validator.Struct(req, "invalid survey response"); err != nil {
		return err
	}

	questions := make(map[int64]models.SurveyQuestion, len(survey.Questions))
	for _, q := range survey.Questions {
		questions[q.ID] = q
	}
	answers := make([]models.SurveyAnswer, 0, len(req.Responses))
	seen := make(map[int64]bool, len(req.Responses))
	for _, r := range req.Responses {
		q, ok := questions[r.QuestionID]
		if !ok {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("question %d not found in survey", r.QuestionID))
		}
		if seen[r.QuestionID] {
			return appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "invalid survey response"),
				map[string]string{"responses": fmt.Sprintf("question %d answered more than once", r.QuestionID)})
		}
		seen[r.QuestionID] = true
		content := strings.TrimSpace(r.Content)
		if q.Type == models.QuestionMultipleChoice {
			option, ok := matchOption(q.Options, content)
			if !ok {
				return appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "invalid survey response"),
					map[string]string{"responses": fmt.Sprintf("answer to question %d must be one of the offered options", r.QuestionID)})
			}
			content = option
		}
		answers = append(answers, models.SurveyAnswer{QuestionID: q.ID, RespondentID: p.UserID, Content: content})
	}

	if err := s.surveys.Submit(ctx, surveyID, p.UserID, answers); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return appErrors.Clone(appErrors.ErrInvalidState, "survey already submitted")
		}
		return appErrors.Internal(err, "failed to submit survey")
	}
	s.logger.Info("survey submitted", zap.Int64("survey_id", surveyID), zap.Int64("respondent_id", p.UserID))
	return nil
}

// answerable applies the read checks shared by Get and Submit: the survey must
// be open today, not yet answered, and global or tied to an ACTIVE enrollment.
func (s *SurveyService) answerable(ctx context.Context, p models.Principal, surveyID int64) (*models.Survey, error) {
	if err := requireRole(p, models.RoleStudent); err != nil {
		return nil, err
	}
	survey, err := s.find(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if !survey.ActiveOn(s.now()) {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "survey is not active")
	}
	submitted, err := s.surveys.HasSubmitted(ctx, surveyID, p.UserID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check submission")
	}
	if submitted {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "survey already submitted")
	}
	if survey.CourseID != nil {
		enrollment, err := s.enrollments.FindByStudentAndCourse(ctx, p.UserID, *survey.CourseID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Internal(err, "failed to load enrollment")
		}
		if enrollment == nil || enrollment.Status != models.EnrollmentStatusActive {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "survey belongs to a course you are not enrolled in")
		}
	}
	return survey, nil
}

func (s *SurveyService) create(ctx context.Context, p models.Principal, courseID *int64, req dto.SurveyRequest) (*dto.SurveyDetail, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req, "invalid survey payload"); err != nil {
		return nil, err
	}
	start, _ := dto.ParseDate(req.StartDate)
	end, _ := dto.ParseDate(req.EndDate)
	if start != nil && end != nil && end.Before(*start) {
		return nil, appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "invalid survey payload"),
			map[string]string{"endDate": "endDate must not be before startDate"})
	}

	survey := &models.Survey{AuthorID: p.UserID, CourseID: courseID, Title: req.Title, StartDate: start, EndDate: end}
	for i, q := range req.Questions {
		qType := models.QuestionType(upper(q.Type))
		var options pq.StringArray
		for _, opt := range q.Options {
			if trimmed := strings.TrimSpace(opt); trimmed != "" {
				options = append(options, trimmed)
			}
		}
		if qType == models.QuestionMultipleChoice && len(options) < 2 {
			return nil, appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "invalid survey payload"),
				map[string]string{fmt.Sprintf("questions[%d].options", i): "multiple choice questions need at least two options"})
		}
		if qType == models.QuestionText {
			options = nil
		}
		survey.Questions = append(survey.Questions, models.SurveyQuestion{Text: strings.TrimSpace(q.Text), Type: qType, Options: options})
	}

	if err := s.surveys.Create(ctx, survey); err != nil {
		return nil, appErrors.Internal(err, "failed to create survey")
	}
	if s.notifier != nil {
		s.notifier.SurveyPublished(*survey)
	}
	s.logger.Info("survey created", zap.Int64("survey_id", survey.ID), zap.Int64("author_id", p.UserID))
	return toSurveyDetail(*survey), nil
}

func (s *SurveyService) results(ctx context.Context, survey *models.Survey) (*dto.SurveyResults, error) {
	answers, err := s.surveys.ListAnswers(ctx, survey.ID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load answers")
	}
	respondents, err := s.surveys.CountSubmissions(ctx, survey.ID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to count submissions")
	}
	return aggregateResults(*survey, answers, respondents), nil
}

func (s *SurveyService) find(ctx context.Context, surveyID int64) (*models.Survey, error) {
	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "survey not found")
		}
		return nil, appErrors.Internal(err, "failed to load survey")
	}
	return survey, nil
}

// aggregateResults tallies choice answers per option, in option order, and
// collects free text answers verbatim.
func aggregateResults(survey models.Survey, answers []models.SurveyAnswer, respondents int) *dto.SurveyResults {
	byQuestion := make(map[int64][]string, len(survey.Questions))
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a.Content)
	}
	out := &dto.SurveyResults{SurveyID: survey.ID, Title: survey.Title, Respondents: respondents, Questions: make([]dto.QuestionResult, 0, len(survey.Questions))}
	for _, q := range survey.Questions {
		result := dto.QuestionResult{QuestionID: q.ID, Text: q.Text, Type: string(q.Type)}
		if q.Type == models.QuestionMultipleChoice {
			result.OptionCounts = make(map[string]int, len(q.Options))
			for _, opt := range q.Options {
				result.OptionCounts[opt] = 0
			}
			for _, content := range byQuestion[q.ID] {
				result.OptionCounts[content]++
			}
		} else {
			result.Answers = byQuestion[q.ID]
		}
		out.Questions = append(out.Questions, result)
	}
	return out
}

// matchOption returns the stored spelling of value among options.
func matchOption(options []string, value string) (string, bool) {
	for _, opt := range options {
		if strings.EqualFold(opt, value) {
			return opt, true
		}
	}
	return "", false
}

func today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toSurveyItems(surveys []models.Survey) []dto.SurveyItem {
	items := make([]dto.SurveyItem, 0, len(surveys))
	for _, sv := range surveys {
		questions := make([]string, 0, len(sv.Questions))
		for _, q := range sv.Questions {
			questions = append(questions, q.Text)
		}
		items = append(items, dto.SurveyItem{
			SurveyID:  sv.ID,
			CourseID:  sv.CourseID,
			Title:     sv.Title,
			StartDate: dto.FormatDate(sv.StartDate),
			EndDate:   dto.FormatDate(sv.EndDate),
			Questions: questions,
		})
	}
	return items
}

func toSurveyDetail(sv models.Survey) *dto.SurveyDetail {
	detail := &dto.SurveyDetail{
		SurveyID:  sv.ID,
		CourseID:  sv.CourseID,
		Title:     sv.Title,
		StartDate: dto.FormatDate(sv.StartDate),
		EndDate:   dto.FormatDate(sv.EndDate),
		Questions: make([]dto.QuestionItem, 0, len(sv.Questions)),
	}
	for _, q := range sv.Questions {
		detail.Questions = append(detail.Questions, dto.QuestionItem{
			QuestionID: q.ID,
			Text:       q.Text,
			Type:       string(q.Type),
			Options:    []string(q.Options),
		})
	}
	return detail
}
