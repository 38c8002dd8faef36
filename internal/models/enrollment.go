package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentStatusActive EnrollmentStatus = "ACTIVE"
)

// Enrollment registers a student to a course.
type Enrollment struct {
	ID         int64            `db:"id" json:"id"`
	StudentID  int64            `db:"student_id" json:"student_id"`
	CourseID   int64            `db:"course_id" json:"course_id"`
	Status     EnrollmentStatus `db:"status" json:"status"`
	EnrolledAt time.Time        `db:"enrolled_at" json:"enrolled_at"`
}

// EnrolledStudent is an enrollment joined with the student profile.
type EnrolledStudent struct {
	EnrollmentID int64     `db:"enrollment_id"`
	StudentID    int64     `db:"student_id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	StudentIDNo  *string   `db:"student_id_no"`
	EnrolledAt   time.Time `db:"enrolled_at"`
}

// StudentEnrollment is an enrollment joined with its course and teacher.
type StudentEnrollment struct {
	Enrollment
	CourseName  string       `db:"course_name"`
	Category    string       `db:"category"`
	Days        string       `db:"days"`
	Time        string       `db:"time"`
	Location    string       `db:"location"`
	CourseState CourseStatus `db:"course_status"`
	Ended       bool         `db:"ended"`
	TeacherName string       `db:"teacher_name"`
}
