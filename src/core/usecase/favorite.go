package usecase

import (
	"context"
	"log/slog"

	"jokehub/src/core/ports"
)

// FavoriteService manages per-user favorites.
type FavoriteService struct {
	store ports.Store
	log   *slog.Logger
}

func NewFavoriteService(store ports.Store, log *slog.Logger) *FavoriteService {
	return &FavoriteService{store: store, log: log}
}

// Add favorites the joke for the user. A second add of the same pair is a
// duplicate conflict; an unknown joke a reference error. Both come from the
// store's constraint translation.
func (s *FavoriteService) Add(ctx context.Context, userID, jokeID int64) error {
	return s.store.AddFavorite(ctx, userID, jokeID)
}

// Remove unfavorites the joke. Removing a favorite that does not exist is a
// silent success.
func (s *FavoriteService) Remove(ctx context.Context, userID, jokeID int64) error {
	return s.store.RemoveFavorite(ctx, userID, jokeID)
}

// ListForUser returns all jokes favorited by the user, newest favorite
// first. Unpaginated.
func (s *FavoriteService) ListForUser(ctx context.Context, userID int64) ([]ports.JokeWithMeta, error) {
	return s.store.ListFavorites(ctx, userID)
}
