package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func item(id, author int64, handle string) TweetWithUser {
	return TweetWithUser{
		Tweet: Tweet{ID: id, Body: "t", CreatedAt: time.Unix(id, 0).UTC(), AuthorID: author},
		User:  User{ID: author, Name: handle, ScreenName: handle},
	}
}

func TestSplit_DeduplicatesUsersKeepingLast(t *testing.T) {
	a := item(9, 1, "alice")
	b := item(8, 2, "bob")
	c := item(7, 1, "alice2")

	users, tweets := Split([]TweetWithUser{a, b, c})

	require.Len(t, tweets, 3)
	require.Empty(t, cmp.Diff([]User{
		{ID: 1, Name: "alice2", ScreenName: "alice2"},
		{ID: 2, Name: "bob", ScreenName: "bob"},
	}, users))
}

func TestSplit_SkipsUnresolvedAuthors(t *testing.T) {
	orphan := TweetWithUser{Tweet: Tweet{ID: 5, AuthorID: 42}}

	users, tweets := Split([]TweetWithUser{orphan})

	require.Empty(t, users)
	require.Equal(t, []Tweet{orphan.Tweet}, tweets)
}

func TestIDs(t *testing.T) {
	require.Equal(t, []int64{9, 8}, IDs([]TweetWithUser{item(9, 1, "a"), item(8, 1, "a")}))
	require.Empty(t, IDs(nil))
}
