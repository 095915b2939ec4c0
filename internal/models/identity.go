package models

// Identity is the authenticated caller behind a bearer credential.
type Identity struct {
	UserID string
	Email  string
}
