package models

import "time"

// AttendanceStatus is the outcome of one class for one enrollment.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	// AttendanceNone marks a class date without a record. It is never stored.
	AttendanceNone AttendanceStatus = "NONE"
)

// Attendance is a persisted attendance record.
type Attendance struct {
	ID           int64            `db:"id"`
	EnrollmentID int64            `db:"enrollment_id"`
	ClassDate    time.Time        `db:"class_date"`
	Status       AttendanceStatus `db:"status"`
}

// AttendanceMark is a status to write for one enrollment.
type AttendanceMark struct {
	EnrollmentID int64
	Status       AttendanceStatus
}

// EnrollmentAttendance is one attendance status keyed by enrollment.
type EnrollmentAttendance struct {
	EnrollmentID int64            `db:"enrollment_id"`
	Status       AttendanceStatus `db:"status"`
}

// AttendanceSheetRow is an ACTIVE enrollment with its record for a class date, if any.
type AttendanceSheetRow struct {
	EnrollmentID int64             `db:"enrollment_id"`
	StudentID    int64             `db:"student_id"`
	StudentName  string            `db:"student_name"`
	AttendanceID *int64            `db:"attendance_id"`
	Status       *AttendanceStatus `db:"status"`
}
