// Package models holds the server-side records of the feed service.
package models

import "time"

// User is a tweet author. AvatarKey is the object key of the uploaded avatar
// in the bucket; AvatarURL is an external image link used when no object is
// stored.
type User struct {
	ID         int64
	Name       string
	ScreenName string
	AvatarURL  string
	AvatarKey  string
	CreatedAt  time.Time
}
