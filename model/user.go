package model

import "time"

type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Password   string    `json:"-"` // Never exposed in JSON responses.
	Phone      string    `json:"phone"`
	RoleID     string    `json:"roleID"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Projection returns a copy safe to embed in flow responses.
func (u User) Projection() User {
	u.Password = ""
	return u
}
