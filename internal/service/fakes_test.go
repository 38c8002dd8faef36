package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/afterschool-api/internal/models"
	"github.com/noah-isme/afterschool-api/internal/repository"
)

// memStore is an in-memory stand-in for the Postgres repositories. Each
// repository view below shares it so services observe each other's writes.
type memStore struct {
	mu          sync.Mutex
	nextID      int64
	users       map[int64]*models.User
	courses     map[int64]*models.Course
	enrollments map[int64]*models.Enrollment
	attendance  map[attendanceKey]models.AttendanceStatus
	notices     map[int64]*models.Notice
	surveys     map[int64]*models.Survey
	answers     []models.SurveyAnswer
	submissions map[[2]int64]bool
	auditLogs   []*models.AuditLog
}

type attendanceKey struct {
	enrollmentID int64
	day          string
}

func newMemStore() *memStore {
	return &memStore{
		nextID:      100,
		users:       map[int64]*models.User{},
		courses:     map[int64]*models.Course{},
		enrollments: map[int64]*models.Enrollment{},
		attendance:  map[attendanceKey]models.AttendanceStatus{},
		notices:     map[int64]*models.Notice{},
		surveys:     map[int64]*models.Survey{},
		submissions: map[[2]int64]bool{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) addUser(id int64, role models.UserRole, name string) *models.User {
	u := &models.User{ID: id, Email: strings.ToLower(name) + "@school.test", Name: name, Role: role}
	m.users[id] = u
	return u
}

func (m *memStore) addCourse(c models.Course) *models.Course {
	if c.Capacity == 0 {
		c.Capacity = 10
	}
	m.courses[c.ID] = &c
	return &c
}

func (m *memStore) addEnrollment(id, studentID, courseID int64) *models.Enrollment {
	e := &models.Enrollment{ID: id, StudentID: studentID, CourseID: courseID, Status: models.EnrollmentStatusActive, EnrolledAt: time.Now()}
	m.enrollments[id] = e
	return e
}

func (m *memStore) mark(enrollmentID int64, day string, status models.AttendanceStatus) {
	m.attendance[attendanceKey{enrollmentID, day}] = status
}

func (m *memStore) activeCount(courseID int64) int {
	n := 0
	for _, e := range m.enrollments {
		if e.CourseID == courseID && e.Status == models.EnrollmentStatusActive {
			n++
		}
	}
	return n
}

func (m *memStore) withStats(c *models.Course) models.CourseWithStats {
	out := models.CourseWithStats{Course: *c, ActiveCount: m.activeCount(c.ID)}
	if t, ok := m.users[c.TeacherID]; ok {
		out.TeacherName = t.Name
	}
	return out
}

// CreateAuditLog implements auditLogger.
func (m *memStore) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

func (m *memStore) auditActions() []string {
	out := make([]string, 0, len(m.auditLogs))
	for _, l := range m.auditLogs {
		out = append(out, l.Action)
	}
	return out
}

type memUsers struct{ *memStore }

func (r memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memUsers) FindByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r memUsers) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(filter.Name)) {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memUsers) Create(ctx context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.id()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r memUsers) UpdateRole(ctx context.Context, id int64, role models.UserRole) error {
	u, ok := r.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.Role = role
	return nil
}

func (r memUsers) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

type memCourses struct{ *memStore }

func (r memCourses) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (r memCourses) FindWithStats(ctx context.Context, id int64) (*models.CourseWithStats, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := r.withStats(c)
	return &out, nil
}

func (r memCourses) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseWithStats, error) {
	var out []models.CourseWithStats
	for _, c := range r.courses {
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.TeacherID != nil && c.TeacherID != *filter.TeacherID {
			continue
		}
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		row := r.withStats(c)
		if kw := strings.ToLower(filter.Keyword); kw != "" &&
			!strings.Contains(strings.ToLower(c.Name), kw) && !strings.Contains(strings.ToLower(row.TeacherName), kw) {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memCourses) Create(ctx context.Context, course *models.Course) error {
	course.ID = r.id()
	cp := *course
	r.courses[course.ID] = &cp
	return nil
}

func (r memCourses) Update(ctx context.Context, course *models.Course) error {
	c, ok := r.courses[course.ID]
	if !ok || (c.Status != models.CourseStatusPending && c.Status != models.CourseStatusRejected) {
		return sql.ErrNoRows
	}
	cp := *course
	r.courses[course.ID] = &cp
	return nil
}

func (r memCourses) UpdateStatus(ctx context.Context, id int64, from, to models.CourseStatus) error {
	c, ok := r.courses[id]
	if !ok || c.Status != from {
		return sql.ErrNoRows
	}
	c.Status = to
	return nil
}

func (r memCourses) MarkEnded(ctx context.Context, id int64, at time.Time) error {
	c, ok := r.courses[id]
	if !ok || c.Status != models.CourseStatusApproved || c.Ended {
		return sql.ErrNoRows
	}
	c.Ended = true
	c.EndedAt = &at
	return nil
}

type memEnrollments struct{ *memStore }

func (r memEnrollments) CreateWithinCapacity(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[courseID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	for _, e := range r.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return nil, repository.ErrDuplicate
		}
	}
	if r.activeCount(courseID) >= c.Capacity {
		return nil, repository.ErrCapacityReached
	}
	e := r.addEnrollment(r.id(), studentID, courseID)
	cp := *e
	return &cp, nil
}

func (r memEnrollments) FindByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	for _, e := range r.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memEnrollments) FindByIDs(ctx context.Context, ids []int64) ([]models.Enrollment, error) {
	var out []models.Enrollment
	for _, id := range ids {
		if e, ok := r.enrollments[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r memEnrollments) ListByStudent(ctx context.Context, studentID int64) ([]models.StudentEnrollment, error) {
	var out []models.StudentEnrollment
	for _, e := range r.sortedEnrollments() {
		if e.StudentID != studentID {
			continue
		}
		c := r.courses[e.CourseID]
		row := models.StudentEnrollment{Enrollment: *e, CourseName: c.Name, Category: c.Category, CourseState: c.Status, Ended: c.Ended}
		if t, ok := r.users[c.TeacherID]; ok {
			row.TeacherName = t.Name
		}
		out = append(out, row)
	}
	return out, nil
}

func (r memEnrollments) ListIDsByStudent(ctx context.Context, studentID int64) ([]int64, error) {
	var out []int64
	for _, e := range r.sortedEnrollments() {
		if e.StudentID == studentID {
			out = append(out, e.ID)
		}
	}
	return out, nil
}

func (r memEnrollments) ListActiveStudents(ctx context.Context, courseID int64) ([]models.EnrolledStudent, error) {
	var out []models.EnrolledStudent
	for _, e := range r.sortedEnrollments() {
		if e.CourseID != courseID || e.Status != models.EnrollmentStatusActive {
			continue
		}
		u := r.users[e.StudentID]
		out = append(out, models.EnrolledStudent{EnrollmentID: e.ID, StudentID: u.ID, Name: u.Name, Email: u.Email, StudentIDNo: u.StudentIDNo, EnrolledAt: e.EnrolledAt})
	}
	return out, nil
}

func (r memEnrollments) CourseIDsWithActiveEnrollment(ctx context.Context, studentID int64) ([]int64, error) {
	var out []int64
	for _, e := range r.sortedEnrollments() {
		if e.StudentID == studentID && e.Status == models.EnrollmentStatusActive {
			out = append(out, e.CourseID)
		}
	}
	return out, nil
}

func (r memEnrollments) Delete(ctx context.Context, studentID, courseID int64) error {
	for id, e := range r.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			delete(r.enrollments, id)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r memEnrollments) sortedEnrollments() []*models.Enrollment {
	out := make([]*models.Enrollment, 0, len(r.enrollments))
	for _, e := range r.enrollments {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type memAttendance struct{ *memStore }

func (r memAttendance) Upsert(ctx context.Context, classDate time.Time, marks []models.AttendanceMark) error {
	day := classDate.Format("2006-01-02")
	for _, m := range marks {
		r.mark(m.EnrollmentID, day, m.Status)
	}
	return nil
}

func (r memAttendance) ListByEnrollments(ctx context.Context, enrollmentIDs []int64) ([]models.EnrollmentAttendance, error) {
	want := make(map[int64]bool, len(enrollmentIDs))
	for _, id := range enrollmentIDs {
		want[id] = true
	}
	var out []models.EnrollmentAttendance
	for k, status := range r.attendance {
		if want[k.enrollmentID] {
			out = append(out, models.EnrollmentAttendance{EnrollmentID: k.enrollmentID, Status: status})
		}
	}
	return out, nil
}

func (r memAttendance) ListByCourse(ctx context.Context, courseID int64) ([]models.EnrollmentAttendance, error) {
	var ids []int64
	for _, e := range r.enrollments {
		if e.CourseID == courseID {
			ids = append(ids, e.ID)
		}
	}
	return r.ListByEnrollments(ctx, ids)
}

func (r memAttendance) SheetForDate(ctx context.Context, courseID int64, classDate time.Time) ([]models.AttendanceSheetRow, error) {
	day := classDate.Format("2006-01-02")
	var out []models.AttendanceSheetRow
	for _, e := range (memEnrollments{r.memStore}).sortedEnrollments() {
		if e.CourseID != courseID || e.Status != models.EnrollmentStatusActive {
			continue
		}
		row := models.AttendanceSheetRow{EnrollmentID: e.ID, StudentID: e.StudentID, StudentName: r.users[e.StudentID].Name}
		if status, ok := r.attendance[attendanceKey{e.ID, day}]; ok {
			st := status
			id := e.ID
			row.AttendanceID = &id
			row.Status = &st
		}
		out = append(out, row)
	}
	return out, nil
}

type memNotices struct{ *memStore }

func (r memNotices) Create(ctx context.Context, notice *models.Notice) error {
	notice.ID = r.id()
	if u, ok := r.users[notice.AuthorID]; ok {
		notice.AuthorName = u.Name
	}
	cp := *notice
	r.notices[notice.ID] = &cp
	return nil
}

func (r memNotices) FindByID(ctx context.Context, id int64) (*models.Notice, error) {
	n, ok := r.notices[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *n
	return &cp, nil
}

func (r memNotices) ListByCourse(ctx context.Context, courseID int64) ([]models.Notice, error) {
	var out []models.Notice
	for _, n := range r.notices {
		if n.CourseID != nil && *n.CourseID == courseID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r memNotices) ListGlobal(ctx context.Context) ([]models.Notice, error) {
	var out []models.Notice
	for _, n := range r.notices {
		if n.Global() {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r memNotices) Update(ctx context.Context, notice *models.Notice) error {
	if _, ok := r.notices[notice.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *notice
	r.notices[notice.ID] = &cp
	return nil
}

func (r memNotices) Delete(ctx context.Context, id int64) error {
	if _, ok := r.notices[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.notices, id)
	return nil
}

type memSurveys struct{ *memStore }

func (r memSurveys) Create(ctx context.Context, survey *models.Survey) error {
	survey.ID = r.id()
	for i := range survey.Questions {
		survey.Questions[i].ID = r.id()
		survey.Questions[i].SurveyID = survey.ID
		survey.Questions[i].Position = i + 1
	}
	cp := *survey
	r.surveys[survey.ID] = &cp
	return nil
}

func (r memSurveys) FindByID(ctx context.Context, id int64) (*models.Survey, error) {
	s, ok := r.surveys[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (r memSurveys) ListByCourse(ctx context.Context, courseID int64) ([]models.Survey, error) {
	var out []models.Survey
	for _, s := range r.surveys {
		if s.CourseID != nil && *s.CourseID == courseID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r memSurveys) ListGlobal(ctx context.Context) ([]models.Survey, error) {
	var out []models.Survey
	for _, s := range r.surveys {
		if s.CourseID == nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r memSurveys) ListAvailable(ctx context.Context, studentID int64, day time.Time) ([]models.Survey, error) {
	var out []models.Survey
	for _, s := range r.surveys {
		if !s.ActiveOn(day) || r.submissions[[2]int64{s.ID, studentID}] {
			continue
		}
		if s.CourseID != nil {
			if _, err := (memEnrollments{r.memStore}).FindByStudentAndCourse(ctx, studentID, *s.CourseID); err != nil {
				continue
			}
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memSurveys) HasSubmitted(ctx context.Context, surveyID, respondentID int64) (bool, error) {
	return r.submissions[[2]int64{surveyID, respondentID}], nil
}

func (r memSurveys) Submit(ctx context.Context, surveyID, respondentID int64, answers []models.SurveyAnswer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int64{surveyID, respondentID}
	if r.submissions[key] {
		return repository.ErrDuplicate
	}
	r.submissions[key] = true
	for _, a := range answers {
		a.ID = r.id()
		r.answers = append(r.answers, a)
	}
	return nil
}

func (r memSurveys) ListAnswers(ctx context.Context, surveyID int64) ([]models.SurveyAnswer, error) {
	s, ok := r.surveys[surveyID]
	if !ok {
		return nil, nil
	}
	var out []models.SurveyAnswer
	for _, a := range r.answers {
		if s.HasQuestion(a.QuestionID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memSurveys) CountSubmissions(ctx context.Context, surveyID int64) (int, error) {
	n := 0
	for k := range r.submissions {
		if k[0] == surveyID {
			n++
		}
	}
	return n, nil
}

// memSessions mimics the Redis session store.
type memSessions struct {
	revoked map[string]time.Duration
	failed  map[string]int64
}

func newMemSessions() *memSessions {
	return &memSessions{revoked: map[string]time.Duration{}, failed: map[string]int64{}}
}

func (s *memSessions) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.revoked[tokenID] = ttl
	return nil
}

func (s *memSessions) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, ok := s.revoked[tokenID]
	return ok, nil
}

func (s *memSessions) FailedLogins(ctx context.Context, email string) (int64, error) {
	return s.failed[email], nil
}

func (s *memSessions) RegisterFailedLogin(ctx context.Context, email string, window time.Duration) (int64, error) {
	s.failed[email]++
	return s.failed[email], nil
}

func (s *memSessions) ResetFailedLogins(ctx context.Context, email string) error {
	delete(s.failed, email)
	return nil
}

// recordingMetrics captures enrollment outcomes.
type recordingMetrics struct {
	outcomes []string
}

func (m *recordingMetrics) RecordEnrollment(outcome string) {
	m.outcomes = append(m.outcomes, outcome)
}

// recordingNotifier captures notification calls.
type recordingNotifier struct {
	courses []models.Course
	notices []models.Notice
	surveys []models.Survey
}

func (n *recordingNotifier) CourseStatusChanged(course models.Course) {
	n.courses = append(n.courses, course)
}

func (n *recordingNotifier) NoticePublished(notice models.Notice) {
	n.notices = append(n.notices, notice)
}

func (n *recordingNotifier) SurveyPublished(survey models.Survey) {
	n.surveys = append(n.surveys, survey)
}

func principal(id int64, role models.UserRole) models.Principal {
	return models.Principal{UserID: id, Role: role}
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func day(raw string) time.Time {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T {
	return &v
}
