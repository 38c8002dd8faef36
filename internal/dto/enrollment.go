package dto

import "time"

// AdminEnrollRequest enrolls a student on behalf of an administrator.
type AdminEnrollRequest struct {
	StudentID int64 `json:"studentId" validate:"required,gt=0"`
}

// EnrollmentItem confirms a created enrollment.
type EnrollmentItem struct {
	EnrollmentID int64     `json:"enrollmentId"`
	CourseID     int64     `json:"courseId"`
	StudentID    int64     `json:"studentId"`
	Status       string    `json:"status"`
	EnrolledAt   time.Time `json:"enrolledAt"`
}

// EnrolledStudentItem lists a student enrolled in a course.
type EnrolledStudentItem struct {
	EnrollmentID int64     `json:"enrollmentId"`
	StudentID    int64     `json:"studentId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	StudentIDNo  *string   `json:"studentIdNo,omitempty"`
	EnrolledAt   time.Time `json:"enrolledAt"`
}

// MyCourseItem is one enrollment of the calling student with attendance totals.
type MyCourseItem struct {
	EnrollmentID     int64     `json:"enrollmentId"`
	CourseID         int64     `json:"courseId"`
	CourseName       string    `json:"courseName"`
	Category         string    `json:"category"`
	Days             string    `json:"courseDays"`
	Time             string    `json:"courseTime"`
	Location         string    `json:"location"`
	TeacherName      string    `json:"teacherName"`
	CourseStatus     string    `json:"courseStatus"`
	Ended            bool      `json:"ended"`
	EnrollmentStatus string    `json:"enrollmentStatus"`
	EnrolledAt       time.Time `json:"enrolledAt"`
	Present          int       `json:"presentCount"`
	Absent           int       `json:"absentCount"`
	Late             int       `json:"lateCount"`
	AttendanceRate   float64   `json:"attendanceRate"`
}

// MyCoursesResponse lists the calling student's enrollments.
type MyCoursesResponse struct {
	Courses               []MyCourseItem `json:"courses"`
	OverallAttendanceRate float64        `json:"overallAttendanceRate"`
}
