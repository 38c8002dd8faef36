// Package attendance derives attendance totals and rates from recorded statuses.
package attendance

import "github.com/noah-isme/afterschool-api/internal/models"

// Summary holds per-status counts and the resulting rate in percent.
type Summary struct {
	Present int
	Absent  int
	Late    int
	Rate    float64
}

// Total is the number of recorded classes.
func (s Summary) Total() int {
	return s.Present + s.Absent + s.Late
}

// Summarize counts statuses and computes (present+late)/total*100.
// Statuses other than PRESENT, ABSENT and LATE are ignored. No records yields 0.
func Summarize(statuses []models.AttendanceStatus) Summary {
	var s Summary
	for _, st := range statuses {
		switch st {
		case models.AttendancePresent:
			s.Present++
		case models.AttendanceAbsent:
			s.Absent++
		case models.AttendanceLate:
			s.Late++
		}
	}
	if total := s.Total(); total > 0 {
		s.Rate = float64(s.Present+s.Late) / float64(total) * 100
	}
	return s
}

// OverallRate averages per-course rates. An empty slice yields 0.
func OverallRate(rates []float64) float64 {
	if len(rates) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rates {
		sum += r
	}
	return sum / float64(len(rates))
}

// Eligible applies the enrollment gate over a student's enrollment summaries.
// Enrollments without recorded classes are left out of the average, and a
// student with nothing rated yet is always eligible.
func Eligible(summaries []Summary, threshold float64) bool {
	rates := make([]float64, 0, len(summaries))
	for _, s := range summaries {
		if s.Total() > 0 {
			rates = append(rates, s.Rate)
		}
	}
	if len(rates) == 0 {
		return true
	}
	return OverallRate(rates) >= threshold
}

// ByEnrollment groups statuses per enrollment and summarizes each group.
// Every id in enrollmentIDs gets an entry, even without records.
func ByEnrollment(enrollmentIDs []int64, records []models.EnrollmentAttendance) map[int64]Summary {
	grouped := make(map[int64][]models.AttendanceStatus, len(enrollmentIDs))
	for _, id := range enrollmentIDs {
		grouped[id] = nil
	}
	for _, r := range records {
		if _, ok := grouped[r.EnrollmentID]; ok {
			grouped[r.EnrollmentID] = append(grouped[r.EnrollmentID], r.Status)
		}
	}
	out := make(map[int64]Summary, len(grouped))
	for id, statuses := range grouped {
		out[id] = Summarize(statuses)
	}
	return out
}
