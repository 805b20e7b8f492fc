package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"jokehub/src/core/domain"
	"jokehub/src/core/ports"
)

// viewCountTimeout bounds the detached view-counter write.
const viewCountTimeout = 3 * time.Second

// JokeService implements joke listing, reads, ownership-checked mutation
// and comments.
type JokeService struct {
	store ports.Store
	log   *slog.Logger
}

func NewJokeService(store ports.Store, log *slog.Logger) *JokeService {
	return &JokeService{store: store, log: log}
}

// ListInput carries raw, unclamped listing parameters.
type ListInput struct {
	Page     int
	Limit    int
	Author   string
	Language string
	Sort     string
}

// ListResult is one page of jokes plus pagination metadata derived from the
// total across the same filter.
type ListResult struct {
	Items      []ports.JokeWithMeta
	Page       int
	Limit      int
	Total      int64
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// NormalizePage floors the page at 1 and clamps the limit to [1, MaxPageSize].
// A zero limit means the parameter was absent or unparseable and takes the
// default; an explicit negative clamps to 1.
func NormalizePage(page, limit int) ports.Page {
	if page < 1 {
		page = domain.DefaultPage
	}
	switch {
	case limit == 0:
		limit = domain.DefaultPageSize
	case limit < 0:
		limit = 1
	case limit > domain.MaxPageSize:
		limit = domain.MaxPageSize
	}
	return ports.Page{Number: page, Size: limit}
}

// List returns a filtered, sorted page of jokes.
func (s *JokeService) List(ctx context.Context, in ListInput) (*ListResult, error) {
	page := NormalizePage(in.Page, in.Limit)
	sort := domain.ParseJokeSort(in.Sort)
	filter := ports.JokeFilter{
		AuthorUsername: strings.TrimSpace(in.Author),
		Language:       strings.TrimSpace(in.Language),
	}

	list, err := s.store.ListJokes(ctx, filter, sort, page)
	if err != nil {
		return nil, err
	}

	totalPages := int((list.Total + int64(page.Size) - 1) / int64(page.Size))
	return &ListResult{
		Items:      list.Items,
		Page:       page.Number,
		Limit:      page.Size,
		Total:      list.Total,
		TotalPages: totalPages,
		HasNext:    page.Number < totalPages,
		HasPrev:    page.Number > 1 && list.Total > 0,
	}, nil
}

// Get returns one joke with counts and bumps its view counter without
// awaiting the write.
func (s *JokeService) Get(ctx context.Context, jokeID int64) (*ports.JokeWithMeta, error) {
	jm, err := s.store.GetJoke(ctx, jokeID)
	if err != nil {
		return nil, err
	}
	s.countView(jm.ID)
	return jm, nil
}

// Random returns one arbitrary joke, optionally filtered by language.
func (s *JokeService) Random(ctx context.Context, language string) (*ports.JokeWithMeta, error) {
	jm, err := s.store.RandomJoke(ctx, strings.TrimSpace(language))
	if err != nil {
		return nil, err
	}
	s.countView(jm.ID)
	return jm, nil
}

// countView increments the view counter in a detached goroutine. The
// response never waits for it and concurrent increments may race; a lost
// update is acceptable.
func (s *JokeService) countView(jokeID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), viewCountTimeout)
		defer cancel()
		if err := s.store.IncrementViews(ctx, jokeID); err != nil {
			s.log.Warn("failed to count view", "joke_id", jokeID, "error", err)
		}
	}()
}

// CreateInput is the payload for joke creation.
type CreateInput struct {
	Title    *string
	Body     string
	Language string
}

// Create validates and persists a joke authored by userID.
func (s *JokeService) Create(ctx context.Context, userID int64, in CreateInput) (*domain.Joke, error) {
	if err := validateBody(in.Body); err != nil {
		return nil, err
	}
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}

	language := strings.TrimSpace(in.Language)
	if language == "" {
		language = domain.DefaultLanguage
	}

	joke, err := s.store.CreateJoke(ctx, ports.NewJoke{
		AuthorID: userID,
		Title:    in.Title,
		Body:     in.Body,
		Language: language,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("joke created", "joke_id", joke.ID, "author_id", userID)
	return joke, nil
}

// UpdateInput is the partial-update payload. Nil fields are left untouched.
type UpdateInput struct {
	Title *string
	Body  *string
}

// Update applies a partial update if and only if userID owns the joke. The
// ownership check is a single conditional write; when it matches nothing,
// an existence probe picks between not-found and forbidden. Jokes with no
// author are forbidden to every requester.
func (s *JokeService) Update(ctx context.Context, jokeID, userID int64, in UpdateInput) (*domain.Joke, error) {
	if in.Title == nil && in.Body == nil {
		return nil, domain.NewValidationError("", "at least one of title or body is required")
	}
	if in.Body != nil {
		if err := validateBody(*in.Body); err != nil {
			return nil, err
		}
	}
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}

	joke, err := s.store.UpdateJokeOwned(ctx, jokeID, userID, ports.JokePatch{
		Title: in.Title,
		Body:  in.Body,
	})
	if err != nil {
		return nil, s.resolveOwnership(ctx, jokeID, err)
	}
	return joke, nil
}

// Delete removes a joke under the same ownership protocol as Update.
func (s *JokeService) Delete(ctx context.Context, jokeID, userID int64) error {
	if err := s.store.DeleteJokeOwned(ctx, jokeID, userID); err != nil {
		return s.resolveOwnership(ctx, jokeID, err)
	}
	s.log.Info("joke deleted", "joke_id", jokeID, "author_id", userID)
	return nil
}

// resolveOwnership disambiguates a conditional write that matched no rows:
// a missing joke stays not-found, an existing one means the caller is not
// the author.
func (s *JokeService) resolveOwnership(ctx context.Context, jokeID int64, err error) error {
	if !domain.IsNotFound(err) {
		return err
	}
	exists, existsErr := s.store.JokeExists(ctx, jokeID)
	if existsErr != nil {
		return existsErr
	}
	if exists {
		return domain.NewForbiddenError("only the author can modify this joke")
	}
	return err
}

// Comments

// ListComments returns a joke's comments, newest first. The joke must exist.
func (s *JokeService) ListComments(ctx context.Context, jokeID int64) ([]ports.CommentWithAuthor, error) {
	exists, err := s.store.JokeExists(ctx, jokeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("joke")
	}
	return s.store.ListComments(ctx, jokeID)
}

// AddComment validates and persists a comment by userID on the joke.
func (s *JokeService) AddComment(ctx context.Context, jokeID, userID int64, body string) (*domain.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, domain.NewValidationError("body", "comment body is required")
	}
	if utf8.RuneCountInString(body) > domain.MaxCommentLength {
		return nil, domain.NewValidationError("body", "comment body is too long")
	}
	return s.store.CreateComment(ctx, jokeID, userID, body)
}

func validateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return domain.NewValidationError("body", "body is required")
	}
	if utf8.RuneCountInString(body) > domain.MaxBodyLength {
		return domain.NewValidationError("body", "body must be at most 5000 characters")
	}
	return nil
}

func validateTitle(title *string) error {
	if title == nil {
		return nil
	}
	if utf8.RuneCountInString(*title) > domain.MaxTitleLength {
		return domain.NewValidationError("title", "title must be at most 200 characters")
	}
	return nil
}
