package request

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Name     string `json:"name" validate:"required,max=100"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

// GetUserRequest shapes the bare username input of get and logout.
type GetUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
}

// UpdateUserRequest carries a partial patch: empty fields mean "leave as is".
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Name     string `json:"name,omitempty" validate:"omitempty,max=100"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6,max=100"`
}

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description,omitempty" validate:"max=1000"`
	Completed   bool   `json:"completed,omitempty"`
}

// SearchTasksRequest is the filtered, offset-paginated listing input.
// Page is 1-indexed. Completed distinguishes "filter on false" from
// "no filter" via the pointer.
type SearchTasksRequest struct {
	Page        int    `json:"page" validate:"required,min=1"`
	Size        int    `json:"size" validate:"required,min=1,max=100"`
	Title       string `json:"title,omitempty" validate:"omitempty,max=255"`
	Description string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Completed   *bool  `json:"completed,omitempty"`
}
