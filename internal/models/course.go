package models

import "time"

// CourseStatus is the approval state of a course.
type CourseStatus string

const (
	CourseStatusPending  CourseStatus = "PENDING"
	CourseStatusApproved CourseStatus = "APPROVED"
	CourseStatusRejected CourseStatus = "REJECTED"
)

// Course is a teacher-run after-school class.
type Course struct {
	ID           int64        `db:"id" json:"id"`
	TeacherID    int64        `db:"teacher_id" json:"teacher_id"`
	Name         string       `db:"name" json:"name"`
	Category     string       `db:"category" json:"category"`
	Description  string       `db:"description" json:"description"`
	Days         string       `db:"days" json:"days"`
	Time         string       `db:"time" json:"time"`
	Location     string       `db:"location" json:"location"`
	Capacity     int          `db:"capacity" json:"capacity"`
	Status       CourseStatus `db:"status" json:"status"`
	Quarter      *int         `db:"quarter" json:"quarter,omitempty"`
	QuarterLabel string       `db:"quarter_label" json:"quarter_label"`
	EndDate      *time.Time   `db:"end_date" json:"end_date,omitempty"`
	Ended        bool         `db:"ended" json:"ended"`
	EndedAt      *time.Time   `db:"ended_at" json:"ended_at,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// CourseWithStats joins a course with its teacher and active enrollment count.
type CourseWithStats struct {
	Course
	TeacherName string `db:"teacher_name" json:"teacher_name"`
	ActiveCount int    `db:"active_count" json:"active_count"`
}

// Open reports whether the course accepts new enrollments.
func (c Course) Open() bool {
	return c.Status == CourseStatusApproved && !c.Ended
}

// CourseFilter narrows course listings. Zero values are ignored.
type CourseFilter struct {
	Status    *CourseStatus
	TeacherID *int64
	Keyword   string
	Category  string
}

var quarterLabels = map[int]string{
	1: "Q1 · Spring term",
	2: "Q2 · Summer break",
	3: "Q3 · Fall term",
	4: "Q4 · Winter break",
}

// QuarterLabel returns the display label for a quarter number.
func QuarterLabel(quarter int) string {
	return quarterLabels[quarter]
}
