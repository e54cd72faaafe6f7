package models

import "time"

// UserRole distinguishes who a user acts as on the board.
type UserRole string

const (
	RoleJobSeeker  UserRole = "job_seeker"
	RoleEmployer   UserRole = "employer"
	RoleIndividual UserRole = "individual"
)

// User is a Telegram-authenticated account.
type User struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegramId"`
	Username   string    `json:"username,omitempty"`
	FirstName  string    `json:"firstName,omitempty"`
	LastName   string    `json:"lastName,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	Role       UserRole  `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DisplayName joins first and last name, falling back to the username.
func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		name = u.Username
	}
	return name
}

// Reachable reports whether the user has any notification address on file.
func (u *User) Reachable() bool {
	return u.TelegramID != 0 || u.Email != ""
}
