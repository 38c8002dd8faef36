package models

import (
	"strings"
	"time"
)

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleTeacher UserRole = "TEACHER"
	RoleStudent UserRole = "STUDENT"
)

// ParseRole normalises a role string; ok is false for unknown roles.
func ParseRole(raw string) (UserRole, bool) {
	role := UserRole(strings.ToUpper(strings.TrimSpace(raw)))
	switch role {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return role, true
	}
	return "", false
}

// User represents an application user stored in the users table.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Role         UserRole  `db:"role" json:"role"`
	StudentIDNo  *string   `db:"student_id_no" json:"student_id_no,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Info projects the public part of the user.
func (u User) Info() UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, StudentIDNo: u.StudentIDNo}
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role *UserRole
	Name string
}

// UserInfo describes a user in responses.
type UserInfo struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        UserRole `json:"role"`
	StudentIDNo *string  `json:"student_id_no,omitempty"`
}
