package domain

import "time"

// User is a registered account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
	LastSeenAt   time.Time
}

// Joke is a shared joke. AuthorID is nullable: deleting an author
// orphans the joke rather than cascading.
type Joke struct {
	ID        int64
	AuthorID  *int64
	Title     *string
	Body      string
	Language  string
	Score     int
	Views     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Favorite links a user to a joke. At most one row per (user, joke) pair.
type Favorite struct {
	UserID    int64
	JokeID    int64
	CreatedAt time.Time
}

// Comment is a user's comment on a joke.
type Comment struct {
	ID        int64
	JokeID    int64
	UserID    int64
	Body      string
	CreatedAt time.Time
}

// JokeSort selects the ordering of joke listings.
type JokeSort string

const (
	SortNewest  JokeSort = "newest"
	SortOldest  JokeSort = "oldest"
	SortPopular JokeSort = "popular"
	SortRandom  JokeSort = "random"
)

// ParseJokeSort maps a query-string value to a JokeSort, defaulting to newest.
func ParseJokeSort(raw string) JokeSort {
	switch JokeSort(raw) {
	case SortOldest, SortPopular, SortRandom:
		return JokeSort(raw)
	default:
		return SortNewest
	}
}
