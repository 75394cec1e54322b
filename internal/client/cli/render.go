package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/client/models"
	"github.com/dmitrijs2005/gophfeed/internal/client/timeline"
)

const timeLayout = "2006-01-02 15:04"

// RenderTweet writes one tweet as a header line followed by the body
// indented by two spaces.
func RenderTweet(w io.Writer, t models.TweetWithUser) error {
	handle, name := t.User.ScreenName, t.User.Name
	if t.User.ID == 0 {
		handle, name = "unknown", "?"
	}
	if _, err := fmt.Fprintf(w, "#%d @%s (%s) %s\n", t.Tweet.ID, handle, name, t.Tweet.CreatedAt.UTC().Format(timeLayout)); err != nil {
		return err
	}
	for _, line := range strings.Split(t.Tweet.Body, "\n") {
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// RenderFeed writes every tweet, newest first.
func RenderFeed(w io.Writer, feed []models.TweetWithUser) error {
	if len(feed) == 0 {
		_, err := fmt.Fprintln(w, "(timeline is empty)")
		return err
	}
	for _, t := range feed {
		if err := RenderTweet(w, t); err != nil {
			return err
		}
	}
	return nil
}

// RenderEvent writes a status line for ev and, for feed mutations, the
// tweets it touched, taken from the snapshot the event carries.
func RenderEvent(w io.Writer, ev timeline.Event) error {
	feed := ev.Feed
	switch ev.Kind {
	case timeline.EventReplaced:
		if _, err := fmt.Fprintf(w, "-- timeline from %s (%d tweets)\n", ev.Source, ev.Count); err != nil {
			return err
		}
		return RenderFeed(w, feed)
	case timeline.EventAppended:
		if _, err := fmt.Fprintf(w, "-- %d older tweets (%s)\n", ev.Count, ev.Source); err != nil {
			return err
		}
		n := min(ev.Count, len(feed))
		return RenderFeed(w, feed[len(feed)-n:])
	case timeline.EventPrepended:
		if _, err := fmt.Fprintln(w, "-- posted"); err != nil {
			return err
		}
		if len(feed) == 0 {
			return nil
		}
		return RenderTweet(w, feed[0])
	case timeline.EventFailed:
		_, err := fmt.Fprintf(w, "!! %v\n", ev.Failure)
		return err
	case timeline.EventDiscarded:
		_, err := fmt.Fprintf(w, "-- ignored outdated %s result\n", ev.Origin)
		return err
	case timeline.EventExhausted:
		_, err := fmt.Fprintln(w, "-- end of timeline")
		return err
	}
	return nil
}

type jsonTweet struct {
	ID         int64     `json:"id"`
	ScreenName string    `json:"screen_name"`
	Name       string    `json:"name"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// RenderFeedJSON writes the feed as an indented JSON array.
func RenderFeedJSON(w io.Writer, feed []models.TweetWithUser) error {
	out := make([]jsonTweet, len(feed))
	for i, t := range feed {
		out[i] = jsonTweet{
			ID:         t.Tweet.ID,
			ScreenName: t.User.ScreenName,
			Name:       t.User.Name,
			AvatarURL:  t.User.AvatarURL,
			Body:       t.Tweet.Body,
			CreatedAt:  t.Tweet.CreatedAt.UTC(),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
