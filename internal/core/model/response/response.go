package response

import "time"

// UserResponse never carries the password hash or token. ID is omitted on
// the update response, which returns username and name only.
type UserResponse struct {
	ID       int    `json:"id,omitempty"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

type TokenResponse struct {
	ID    int    `json:"id"`
	Token string `json:"token"`
}

type LogoutResponse struct {
	Username string `json:"username"`
}

type TaskResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Paging struct {
	Page      int   `json:"page"`
	TotalItem int64 `json:"total_item"`
	TotalPage int   `json:"total_page"`
}

type TaskPageResponse struct {
	Data   []TaskResponse `json:"data"`
	Paging Paging         `json:"paging"`
}

type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Message string            `json:"message,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}
