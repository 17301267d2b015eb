package models

// User is a registered account. Items belong to exactly one user and are
// cascade-deleted with their owner.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // don’t expose hash
}
