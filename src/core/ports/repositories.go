// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"jokehub/src/core/domain"
)

// Repository is the base interface for all repositories.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// NewUser carries the fields persisted at registration.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	DisplayName  string
}

// NewJoke carries the fields persisted when a joke is created.
type NewJoke struct {
	AuthorID int64
	Title    *string
	Body     string
	Language string
}

// JokePatch holds the fields of a partial joke update. Nil means "leave as is".
type JokePatch struct {
	Title *string
	Body  *string
}

// JokeFilter is the optional AND-joined filter set for joke listings.
type JokeFilter struct {
	// AuthorUsername filters by the author's username when non-empty.
	AuthorUsername string
	// Language filters by the joke's language tag when non-empty.
	Language string
}

// Page is a normalized pagination window. Number and Size are assumed to be
// clamped by the caller before reaching the repository.
type Page struct {
	Number int
	Size   int
}

// Offset returns the row offset for the window.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// JokeWithMeta is a joke enriched with author and count metadata for reads.
type JokeWithMeta struct {
	domain.Joke
	AuthorName     *string
	FavoritesCount int64
	CommentsCount  int64
}

// JokeList is one page of jokes plus the total across the same filter.
type JokeList struct {
	Items []JokeWithMeta
	Total int64
}

// CommentWithAuthor is a comment enriched with the author's display name.
type CommentWithAuthor struct {
	domain.Comment
	AuthorName string
}

// UserRepository persists and resolves accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, u NewUser) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// TouchLastSeen refreshes last_seen_at; a missing row is not an error.
	TouchLastSeen(ctx context.Context, userID int64) error
}

// JokeRepository persists and queries jokes.
type JokeRepository interface {
	ListJokes(ctx context.Context, filter JokeFilter, sort domain.JokeSort, page Page) (*JokeList, error)
	GetJoke(ctx context.Context, jokeID int64) (*JokeWithMeta, error)
	// RandomJoke returns one arbitrary joke matching the optional language
	// filter, or a not-found error when nothing matches.
	RandomJoke(ctx context.Context, language string) (*JokeWithMeta, error)
	CreateJoke(ctx context.Context, j NewJoke) (*domain.Joke, error)
	// UpdateJokeOwned applies the patch only when the joke belongs to
	// authorID, in a single conditional write. A not-found error means
	// either the joke is missing or the author does not match; callers
	// disambiguate via JokeExists.
	UpdateJokeOwned(ctx context.Context, jokeID, authorID int64, patch JokePatch) (*domain.Joke, error)
	// DeleteJokeOwned follows the same ownership protocol as UpdateJokeOwned.
	DeleteJokeOwned(ctx context.Context, jokeID, authorID int64) error
	JokeExists(ctx context.Context, jokeID int64) (bool, error)
	// IncrementViews bumps the view counter. Invoked after reads without
	// awaiting the result; lost updates under concurrency are accepted.
	IncrementViews(ctx context.Context, jokeID int64) error
}

// FavoriteRepository persists the (user, joke) favorites join.
type FavoriteRepository interface {
	// AddFavorite inserts the pair; a duplicate pair is a conflict and an
	// unknown joke is a reference error.
	AddFavorite(ctx context.Context, userID, jokeID int64) error
	// RemoveFavorite deletes the pair; deleting a pair that does not exist
	// succeeds (idempotent delete).
	RemoveFavorite(ctx context.Context, userID, jokeID int64) error
	// ListFavorites returns all jokes favorited by the user, newest
	// favorite first.
	ListFavorites(ctx context.Context, userID int64) ([]JokeWithMeta, error)
}

// CommentRepository persists joke comments.
type CommentRepository interface {
	CreateComment(ctx context.Context, jokeID, userID int64, body string) (*domain.Comment, error)
	ListComments(ctx context.Context, jokeID int64) ([]CommentWithAuthor, error)
}

// Store is the composite repository covering all domain operations.
type Store interface {
	Repository
	UserRepository
	JokeRepository
	FavoriteRepository
	CommentRepository
}
