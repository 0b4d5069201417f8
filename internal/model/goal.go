package model

import "time"

// Goal is a wishlist entry: something to save points toward. The
// forecast simulator only needs its target amount.
type Goal struct {
	ID        int64
	Name      string
	Target    int64
	SortOrder int
	CreatedAt time.Time
	Deleted   bool
}
