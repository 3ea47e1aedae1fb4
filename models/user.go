// Package models contains data structures for the application's domain models.
package models

// User is the profile the backend returns for an account. Email doubles as the
// login identifier.
type User struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Session is the authenticated identity a client holds: the bearer token plus
// the profile returned at login. It lives in the local state store and is
// destroyed on logout.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
