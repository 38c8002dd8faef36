package dto

import "time"

// NoticeRequest creates or updates a notice.
type NoticeRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=10000"`
}

// NoticeItem is the notice projection.
type NoticeItem struct {
	NoticeID   int64     `json:"noticeId"`
	CourseID   *int64    `json:"courseId,omitempty"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
