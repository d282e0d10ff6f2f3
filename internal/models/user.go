package models

import "time"

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// WithoutPassword returns a copy of the user that is safe to hand out.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}
