package models

// TweetWithUser is a tweet joined with its author at read time.
type TweetWithUser struct {
	Tweet Tweet
	User  User
}

// ID is shorthand for the tweet identifier.
func (t TweetWithUser) ID() int64 { return t.Tweet.ID }

// Split breaks a batch into the users and tweets to persist. Users are
// deduplicated by ID keeping the last occurrence; users with a zero ID
// (unresolved authors) are skipped.
func Split(batch []TweetWithUser) ([]User, []Tweet) {
	tweets := make([]Tweet, 0, len(batch))
	users := make([]User, 0, len(batch))
	pos := make(map[int64]int, len(batch))

	for _, item := range batch {
		tweets = append(tweets, item.Tweet)
		if item.User.ID == 0 {
			continue
		}
		if i, ok := pos[item.User.ID]; ok {
			users[i] = item.User
			continue
		}
		pos[item.User.ID] = len(users)
		users = append(users, item.User)
	}
	return users, tweets
}

// IDs lists the tweet IDs of a batch in order.
func IDs(batch []TweetWithUser) []int64 {
	ids := make([]int64, len(batch))
	for i, item := range batch {
		ids[i] = item.Tweet.ID
	}
	return ids
}
