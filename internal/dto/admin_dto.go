package dto

// CreateUserRequest is the body of POST /api/admin/users.
type CreateUserRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type CreateUserResponse struct {
	OK     bool   `json:"ok"`
	UserID string `json:"user_id"`
}

type SetUserActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type SetDisplayNameRequest struct {
	DisplayName string `json:"display_name"`
}

type UserListResponse struct {
	Data []ProfileResponse `json:"data"`
}
