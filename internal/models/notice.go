package models

import "time"

// Notice is an announcement scoped to a course, or global when CourseID is nil.
type Notice struct {
	ID         int64     `db:"id"`
	AuthorID   int64     `db:"author_id"`
	AuthorName string    `db:"author_name"`
	CourseID   *int64    `db:"course_id"`
	Title      string    `db:"title"`
	Content    string    `db:"content"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Global reports whether the notice is platform wide.
func (n Notice) Global() bool {
	return n.CourseID == nil
}
