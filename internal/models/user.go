package models

import "time"

// User is an account that can publish prompts. The password column holds a
// bcrypt hash and never leaves the server.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserProfile is the public projection of a User returned by the auth
// endpoints.
type UserProfile struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Profile() *UserProfile {
	return &UserProfile{ID: u.ID, Name: u.Name, Email: u.Email}
}
