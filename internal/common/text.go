package common

import (
	"strings"
	"unicode/utf8"
)

// ValidateTweetText checks a body before it is published. Length is measured
// in runes after trimming surrounding whitespace.
func ValidateTweetText(text string) error {
	t := strings.TrimSpace(text)
	if t == "" {
		return ErrEmptyTweet
	}
	if utf8.RuneCountInString(t) > MaxTweetLength {
		return ErrTweetTooLong
	}
	return nil
}
