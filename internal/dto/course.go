package dto

import "time"

// CourseRequest creates or updates a course.
type CourseRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Category     string `json:"category" validate:"max=50"`
	Description  string `json:"description" validate:"max=2000"`
	Days         string `json:"days" validate:"required,course_days"`
	Time         string `json:"time" validate:"required,max=50"`
	Location     string `json:"location" validate:"max=100"`
	Capacity     int    `json:"capacity" validate:"required,min=1,max=500"`
	Quarter      *int   `json:"quarter" validate:"omitempty,min=1,max=4"`
	QuarterLabel string `json:"quarterLabel" validate:"max=50"`
	EndDate      string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// CourseStatusRequest changes the approval state of a course.
type CourseStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
}

// CourseItem is the course projection returned to every role.
type CourseItem struct {
	CourseID          int64      `json:"courseId"`
	Name              string     `json:"courseName"`
	Category          string     `json:"category"`
	Description       string     `json:"description"`
	Days              string     `json:"courseDays"`
	Time              string     `json:"courseTime"`
	Location          string     `json:"location"`
	Capacity          int        `json:"capacity"`
	CurrentEnrollment int        `json:"currentEnrollmentCount"`
	Status            string     `json:"status"`
	TeacherID         int64      `json:"teacherId"`
	TeacherName       string     `json:"teacherName,omitempty"`
	Quarter           *int       `json:"quarter,omitempty"`
	QuarterLabel      string     `json:"quarterLabel,omitempty"`
	EndDate           *string    `json:"endDate,omitempty"`
	Ended             bool       `json:"ended"`
	EndedAt           *time.Time `json:"endedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	IsEnrolled        *bool      `json:"isEnrolled,omitempty"`
}

// CourseDetail adds the caller specific enrollment flags.
type CourseDetail struct {
	CourseItem
	CanEnroll bool `json:"canEnroll"`
}
