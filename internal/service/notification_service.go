package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-api/internal/models"
	"github.com/noah-isme/afterschool-api/pkg/jobs"
)

// Notification topics.
const (
	TopicCourseStatus    = "course.status_changed"
	TopicNoticePublished = "notice.published"
	TopicSurveyPublished = "survey.published"
)

// Notification audiences.
const (
	AudienceEveryone = "EVERYONE"
	AudienceTeacher  = "TEACHER"
	AudienceCourse   = "COURSE"
)

// Notification is a message fanned out to an audience.
type Notification struct {
	Topic       string
	Audience    string
	RecipientID *int64
	CourseID    *int64
	Title       string
	Body        string
}

// NotificationSender delivers a notification to its audience.
type NotificationSender interface {
	Send(ctx context.Context, n Notification) error
}

// LogSender writes notifications to the structured log.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender builds a LogSender.
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send implements NotificationSender.
func (s *LogSender) Send(ctx context.Context, n Notification) error {
	fields := []zap.Field{zap.String("topic", n.Topic), zap.String("audience", n.Audience), zap.String("title", n.Title)}
	if n.RecipientID != nil {
		fields = append(fields, zap.Int64("recipient_id", *n.RecipientID))
	}
	if n.CourseID != nil {
		fields = append(fields, zap.Int64("course_id", *n.CourseID))
	}
	s.logger.Info("notification delivered", fields...)
	return nil
}

// NotificationConfig sizes the delivery worker pool.
type NotificationConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

// NotificationService queues notifications for asynchronous delivery so that
// a slow or failing sender never affects the request that triggered it.
type NotificationService struct {
	queue  *jobs.Queue
	sender NotificationSender
	logger *zap.Logger
}

// NewNotificationService builds the service and its queue. Call Start before use.
func NewNotificationService(sender NotificationSender, cfg NotificationConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sender == nil {
		sender = NewLogSender(logger)
	}
	svc := &NotificationService{sender: sender, logger: logger}
	svc.queue = jobs.NewQueue("notifications", svc.deliver, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return svc
}

// Start launches the delivery workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// CourseStatusChanged tells the course owner about an approval decision.
func (s *NotificationService) CourseStatusChanged(course models.Course) {
	teacherID := course.TeacherID
	courseID := course.ID
	s.publish(Notification{
		Topic:       TopicCourseStatus,
		Audience:    AudienceTeacher,
		RecipientID: &teacherID,
		CourseID:    &courseID,
		Title:       fmt.Sprintf("Course %q is now %s", course.Name, course.Status),
	})
}

// NoticePublished announces a new notice to its course or to everyone.
func (s *NotificationService) NoticePublished(notice models.Notice) {
	s.publish(Notification{
		Topic:    TopicNoticePublished,
		Audience: audienceFor(notice.CourseID),
		CourseID: notice.CourseID,
		Title:    notice.Title,
		Body:     notice.Content,
	})
}

// SurveyPublished announces a new survey to its course or to everyone.
func (s *NotificationService) SurveyPublished(survey models.Survey) {
	s.publish(Notification{
		Topic:    TopicSurveyPublished,
		Audience: audienceFor(survey.CourseID),
		CourseID: survey.CourseID,
		Title:    survey.Title,
	})
}

func (s *NotificationService) publish(n Notification) {
	if err := s.queue.Enqueue(jobs.Job{Topic: n.Topic, Payload: n}); err != nil {
		s.logger.Warn("failed to enqueue notification", zap.String("topic", n.Topic), zap.Error(err))
	}
}

func (s *NotificationService) deliver(ctx context.Context, job jobs.Job) error {
	n, ok := job.Payload.(Notification)
	if !ok {
		s.logger.Error("unexpected notification payload", zap.String("job_id", job.ID))
		return nil
	}
	return s.sender.Send(ctx, n)
}

func audienceFor(courseID *int64) string {
	if courseID == nil {
		return AudienceEveryone
	}
	return AudienceCourse
}
