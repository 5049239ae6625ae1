package domain

import "time"

// User is the persisted account record. Password always holds the bcrypt
// hash, never the plaintext. Token is the opaque session credential: nil
// means logged out.
type User struct {
	ID        int
	Username  string `validate:"required,max=100"`
	Name      string `validate:"required,max=100"`
	Password  string `validate:"required"`
	Token     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) LoggedIn() bool {
	return u.Token != nil && *u.Token != ""
}

// UserPatch is a partial update: nil fields are left untouched in storage.
type UserPatch struct {
	Name     *string
	Password *string
}

func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Password == nil
}
