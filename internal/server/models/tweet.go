package models

import "time"

type Tweet struct {
	ID        int64
	AuthorID  int64
	Body      string
	CreatedAt time.Time
}

// TweetWithUser is a tweet joined with its author.
type TweetWithUser struct {
	Tweet Tweet
	User  User
}
