package models

// Session is the locally persisted proof of authentication.
type Session struct {
	Token string
	User  UserProfile
}
