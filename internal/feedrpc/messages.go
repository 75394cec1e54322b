// Package feedrpc is the wire contract between the timeline client and the
// feed service: request/response messages, the gRPC service descriptor and a
// protobuf codec registered under the "feedpb" content subtype.
package feedrpc

import "time"

type User struct {
	ID         int64
	Name       string
	ScreenName string
	AvatarURL  string
}

// Tweet carries its author inline; the author ID is User.ID.
type Tweet struct {
	ID        int64
	Body      string
	CreatedAt time.Time
	User      *User
}

// HomeRequest asks for the newest page. Count 0 means the server page size.
type HomeRequest struct {
	Count int32
}

// OlderRequest asks for tweets with IDs strictly below MaxID.
type OlderRequest struct {
	MaxID int64
	Count int32
}

// TimelineResponse is a page of tweets, newest first.
type TimelineResponse struct {
	Tweets []*Tweet
}

type PublishRequest struct {
	Text string
}

type PublishResponse struct {
	Tweet *Tweet
}

type PingRequest struct{}

type PingResponse struct {
	Status string
}
