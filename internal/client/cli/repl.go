package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophfeed/internal/client/models"
	"github.com/dmitrijs2005/gophfeed/internal/client/timeline"
	"github.com/dmitrijs2005/gophfeed/internal/common"
)

// feedController is the part of timeline.Controller the REPL drives. Tests
// provide a lightweight stub.
type feedController interface {
	Refresh()
	LoadMore() bool
	Compose(ctx context.Context, text string) (models.TweetWithUser, error)
	CurrentFeed() []models.TweetWithUser
	Source() timeline.Source
	State() timeline.State
}

const helpText = "Commands: (r)efresh, (m)ore, (p)ost <text>, (l)ist, (s)tatus, (q)uit"

// runREPL reads one command per line until EOF or quit.
//
// A bare "p" asks for a multi-line body. Text is checked with
// common.ValidateTweetText before it is published.
func runREPL(ctx context.Context, c feedController, reader *bufio.Reader, w io.Writer, prompt bool) {
	for {
		if prompt {
			fmt.Fprint(w, "feed> ")
		}
		line, readErr := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			if readErr != nil {
				return
			}
			continue
		}

		cmd, arg, _ := strings.Cut(line, " ")

		switch cmd {
		case "h", "help":
			fmt.Fprintln(w, helpText)

		case "r", "refresh":
			c.Refresh()
			fmt.Fprintln(w, "-- refreshing")

		case "m", "more":
			if !c.LoadMore() {
				fmt.Fprintln(w, "-- nothing more to load right now")
			}

		case "p", "post":
			text := strings.TrimSpace(arg)
			if text == "" {
				text, _ = GetMultiline(reader, "Compose tweet", w)
			}
			if err := common.ValidateTweetText(text); err != nil {
				fmt.Fprintln(w, "!!", err)
				break
			}
			if _, err := c.Compose(ctx, text); err != nil {
				fmt.Fprintln(w, "!! post failed:", err)
			}

		case "l", "list":
			_ = RenderFeed(w, c.CurrentFeed())

		case "s", "status":
			fmt.Fprintf(w, "%s, source %s, %d tweets\n", c.State(), c.Source(), len(c.CurrentFeed()))

		case "q", "quit", "exit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if readErr != nil {
			return
		}
	}
}
