package feed

import (
	"time"
)

type Metadata struct {
	Title       string
	Link        string
	Description string
	Language    string
}

type Item struct {
	Title       string
	Summary     string
	Link        string
	PublishedAt *time.Time
	UpdatedAt   *time.Time
}

// Timestamp returns the published time, falling back to the updated time.
func (i Item) Timestamp() *time.Time {
	if i.PublishedAt != nil {
		return i.PublishedAt
	}
	return i.UpdatedAt
}
