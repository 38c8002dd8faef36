package dto

// RoleUpdateRequest changes a user's role.
type RoleUpdateRequest struct {
	Role string `json:"role" validate:"required,role"`
}

// UserFilterQuery is bound from the admin user listing query string.
type UserFilterQuery struct {
	Role string `form:"role"`
	Name string `form:"name"`
}
