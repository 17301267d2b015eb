package models

import "time"

// Report types.
const (
	TypeLost  = "Lost"
	TypeFound = "Found"
)

// Item is a single lost-or-found report.
type Item struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Type         string    `json:"type"` // Lost | Found
	Location     string    `json:"location"`
	Image        string    `json:"image,omitempty"` // stored file name, empty if no upload
	DateReported time.Time `json:"date_reported"`   // set at creation, immutable
	IsResolved   bool      `json:"is_resolved"`
	UserID       int       `json:"user_id"`
}

// OwnedBy reports whether userID may mutate this item.
func (i Item) OwnedBy(userID int) bool { return i.UserID == userID }

// ValidType reports whether t is a known report type.
func ValidType(t string) bool { return t == TypeLost || t == TypeFound }

// Stats holds the dashboard aggregate counts.
type Stats struct {
	Total    int `json:"total"`
	Lost     int `json:"lost"`
	Found    int `json:"found"`
	Resolved int `json:"resolved"`
	Mine     int `json:"mine"`
}
