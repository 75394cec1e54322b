// Package models defines the client-side timeline records: tweets, their
// authors, and the joined view the engine and the cache exchange.
package models

import "time"

// Tweet is a single timeline item. IDs are assigned by the feed service and
// grow with recency, so a larger ID is a newer tweet.
type Tweet struct {
	ID        int64
	Body      string
	CreatedAt time.Time
	AuthorID  int64
}

// User is a tweet author. Tweets reference users by ID only.
type User struct {
	ID         int64
	Name       string
	ScreenName string
	AvatarURL  string
}
