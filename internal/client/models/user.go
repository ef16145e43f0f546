package models

import "time"

// User is a local account. The password itself is never stored; Verifier is
// derived from it with Salt.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Salt      []byte    `json:"salt"`
	Verifier  []byte    `json:"verifier"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session points at the signed-in user.
type Session struct {
	UserID     string    `json:"userId"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

func ValidUsers(users []User) bool {
	for _, u := range users {
		if u.ID == "" || u.Email == "" || len(u.Salt) == 0 || len(u.Verifier) == 0 {
			return false
		}
	}
	return true
}

func ValidSession(s *Session) bool {
	return s != nil && s.UserID != ""
}
