package usecase

import (
	"context"

	"jokehub/src/core/domain"
	"jokehub/src/core/ports"
)

// fakeStore implements ports.Store with pluggable function fields. Calling a
// method whose field is nil panics, which makes "no data access happened"
// assertions implicit in validation tests.
type fakeStore struct {
	healthFn func(ctx context.Context) error

	createUserFn        func(ctx context.Context, nu ports.NewUser) (*domain.User, error)
	getUserByIDFn       func(ctx context.Context, userID int64) (*domain.User, error)
	getUserByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	usernameExistsFn    func(ctx context.Context, username string) (bool, error)
	emailExistsFn       func(ctx context.Context, email string) (bool, error)
	touchLastSeenFn     func(ctx context.Context, userID int64) error

	listJokesFn       func(ctx context.Context, filter ports.JokeFilter, sort domain.JokeSort, page ports.Page) (*ports.JokeList, error)
	getJokeFn         func(ctx context.Context, jokeID int64) (*ports.JokeWithMeta, error)
	randomJokeFn      func(ctx context.Context, language string) (*ports.JokeWithMeta, error)
	createJokeFn      func(ctx context.Context, nj ports.NewJoke) (*domain.Joke, error)
	updateJokeOwnedFn func(ctx context.Context, jokeID, authorID int64, patch ports.JokePatch) (*domain.Joke, error)
	deleteJokeOwnedFn func(ctx context.Context, jokeID, authorID int64) error
	jokeExistsFn      func(ctx context.Context, jokeID int64) (bool, error)
	incrementViewsFn  func(ctx context.Context, jokeID int64) error

	addFavoriteFn    func(ctx context.Context, userID, jokeID int64) error
	removeFavoriteFn func(ctx context.Context, userID, jokeID int64) error
	listFavoritesFn  func(ctx context.Context, userID int64) ([]ports.JokeWithMeta, error)

	createCommentFn func(ctx context.Context, jokeID, userID int64, body string) (*domain.Comment, error)
	listCommentsFn  func(ctx context.Context, jokeID int64) ([]ports.CommentWithAuthor, error)
}

var _ ports.Store = (*fakeStore)(nil)

func (f *fakeStore) Health(ctx context.Context) error {
	if f.healthFn == nil {
		panic("unexpected call: Health")
	}
	return f.healthFn(ctx)
}

func (f *fakeStore) CreateUser(ctx context.Context, nu ports.NewUser) (*domain.User, error) {
	if f.createUserFn == nil {
		panic("unexpected call: CreateUser")
	}
	return f.createUserFn(ctx, nu)
}

func (f *fakeStore) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	if f.getUserByIDFn == nil {
		panic("unexpected call: GetUserByID")
	}
	return f.getUserByIDFn(ctx, userID)
}

func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if f.getUserByUsernameFn == nil {
		panic("unexpected call: GetUserByUsername")
	}
	return f.getUserByUsernameFn(ctx, username)
}

func (f *fakeStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	if f.usernameExistsFn == nil {
		panic("unexpected call: UsernameExists")
	}
	return f.usernameExistsFn(ctx, username)
}

func (f *fakeStore) EmailExists(ctx context.Context, email string) (bool, error) {
	if f.emailExistsFn == nil {
		panic("unexpected call: EmailExists")
	}
	return f.emailExistsFn(ctx, email)
}

func (f *fakeStore) TouchLastSeen(ctx context.Context, userID int64) error {
	if f.touchLastSeenFn == nil {
		panic("unexpected call: TouchLastSeen")
	}
	return f.touchLastSeenFn(ctx, userID)
}

func (f *fakeStore) ListJokes(ctx context.Context, filter ports.JokeFilter, sort domain.JokeSort, page ports.Page) (*ports.JokeList, error) {
	if f.listJokesFn == nil {
		panic("unexpected call: ListJokes")
	}
	return f.listJokesFn(ctx, filter, sort, page)
}

func (f *fakeStore) GetJoke(ctx context.Context, jokeID int64) (*ports.JokeWithMeta, error) {
	if f.getJokeFn == nil {
		panic("unexpected call: GetJoke")
	}
	return f.getJokeFn(ctx, jokeID)
}

func (f *fakeStore) RandomJoke(ctx context.Context, language string) (*ports.JokeWithMeta, error) {
	if f.randomJokeFn == nil {
		panic("unexpected call: RandomJoke")
	}
	return f.randomJokeFn(ctx, language)
}

func (f *fakeStore) CreateJoke(ctx context.Context, nj ports.NewJoke) (*domain.Joke, error) {
	if f.createJokeFn == nil {
		panic("unexpected call: CreateJoke")
	}
	return f.createJokeFn(ctx, nj)
}

func (f *fakeStore) UpdateJokeOwned(ctx context.Context, jokeID, authorID int64, patch ports.JokePatch) (*domain.Joke, error) {
	if f.updateJokeOwnedFn == nil {
		panic("unexpected call: UpdateJokeOwned")
	}
	return f.updateJokeOwnedFn(ctx, jokeID, authorID, patch)
}

func (f *fakeStore) DeleteJokeOwned(ctx context.Context, jokeID, authorID int64) error {
	if f.deleteJokeOwnedFn == nil {
		panic("unexpected call: DeleteJokeOwned")
	}
	return f.deleteJokeOwnedFn(ctx, jokeID, authorID)
}

func (f *fakeStore) JokeExists(ctx context.Context, jokeID int64) (bool, error) {
	if f.jokeExistsFn == nil {
		panic("unexpected call: JokeExists")
	}
	return f.jokeExistsFn(ctx, jokeID)
}

func (f *fakeStore) IncrementViews(ctx context.Context, jokeID int64) error {
	if f.incrementViewsFn == nil {
		panic("unexpected call: IncrementViews")
	}
	return f.incrementViewsFn(ctx, jokeID)
}

func (f *fakeStore) AddFavorite(ctx context.Context, userID, jokeID int64) error {
	if f.addFavoriteFn == nil {
		panic("unexpected call: AddFavorite")
	}
	return f.addFavoriteFn(ctx, userID, jokeID)
}

func (f *fakeStore) RemoveFavorite(ctx context.Context, userID, jokeID int64) error {
	if f.removeFavoriteFn == nil {
		panic("unexpected call: RemoveFavorite")
	}
	return f.removeFavoriteFn(ctx, userID, jokeID)
}

func (f *fakeStore) ListFavorites(ctx context.Context, userID int64) ([]ports.JokeWithMeta, error) {
	if f.listFavoritesFn == nil {
		panic("unexpected call: ListFavorites")
	}
	return f.listFavoritesFn(ctx, userID)
}

func (f *fakeStore) CreateComment(ctx context.Context, jokeID, userID int64, body string) (*domain.Comment, error) {
	if f.createCommentFn == nil {
		panic("unexpected call: CreateComment")
	}
	return f.createCommentFn(ctx, jokeID, userID, body)
}

func (f *fakeStore) ListComments(ctx context.Context, jokeID int64) ([]ports.CommentWithAuthor, error) {
	if f.listCommentsFn == nil {
		panic("unexpected call: ListComments")
	}
	return f.listCommentsFn(ctx, jokeID)
}

// fakeHasher avoids bcrypt cost in unit tests.
type fakeHasher struct{}

var _ ports.PasswordHasher = fakeHasher{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hash, password string) error {
	if hash == "hashed:"+password {
		return nil
	}
	return domain.ErrUnauthorized
}

func (fakeHasher) CompareDummy(password string) {}

// fakeTokens issues deterministic tokens.
type fakeTokens struct{}

var _ ports.TokenManager = fakeTokens{}

func (fakeTokens) Issue(userID int64) (string, error) {
	return "token-for-user", nil
}

func (fakeTokens) Verify(token string) (int64, error) {
	return 0, domain.NewUnauthorizedError(domain.CodeInvalidToken, "invalid token")
}
