package dto

// RecordAttendanceRequest writes statuses for one class date.
type RecordAttendanceRequest struct {
	ClassDate string                  `json:"classDate" validate:"required,datetime=2006-01-02"`
	Records   []AttendanceMarkRequest `json:"records" validate:"required,min=1,dive"`
}

// AttendanceMarkRequest is the status for one enrollment.
type AttendanceMarkRequest struct {
	EnrollmentID int64  `json:"enrollmentId" validate:"required,gt=0"`
	Status       string `json:"status" validate:"required,attendance_status"`
}

// AttendanceItem is one row of a course attendance sheet.
type AttendanceItem struct {
	AttendanceID *int64 `json:"attendanceId"`
	EnrollmentID int64  `json:"enrollmentId"`
	StudentID    int64  `json:"studentId"`
	StudentName  string `json:"studentName"`
	ClassDate    string `json:"classDate"`
	Status       string `json:"status"`
}

// AttendanceExport is a rendered attendance report.
type AttendanceExport struct {
	Filename    string
	ContentType string
	Body        []byte
}
