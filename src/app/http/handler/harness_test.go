package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"jokehub/src/app/server"
	"jokehub/src/core/domain"
	"jokehub/src/core/ports"
	"jokehub/src/infra/config"
	"jokehub/src/infra/token"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// memStore is an in-memory ports.Store for routing tests. It mirrors the
// database semantics the services rely on: duplicate and reference errors,
// conditional owned writes, idempotent favorite removal.
type memStore struct {
	mu sync.Mutex

	users     map[int64]*domain.User
	jokes     map[int64]*domain.Joke
	favorites []domain.Favorite
	comments  []domain.Comment

	nextUserID    int64
	nextJokeID    int64
	nextCommentID int64

	// viewed receives a joke ID every time IncrementViews runs, so tests
	// can wait for the detached view-counter write.
	viewed chan int64
}

var _ ports.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[int64]*domain.User),
		jokes:  make(map[int64]*domain.Joke),
		viewed: make(chan int64, 16),
	}
}

func (s *memStore) Health(ctx context.Context) error { return nil }

func (s *memStore) CreateUser(_ context.Context, u ports.NewUser) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return nil, domain.NewDuplicateError(domain.CodeDuplicateUsername, "username is already taken")
		}
		if existing.Email == u.Email {
			return nil, domain.NewDuplicateError(domain.CodeDuplicateEmail, "email is already registered")
		}
	}
	s.nextUserID++
	user := &domain.User{
		ID:           s.nextUserID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		DisplayName:  u.DisplayName,
		CreatedAt:    time.Now(),
	}
	s.users[user.ID] = user
	return copyUser(user), nil
}

func (s *memStore) GetUserByID(_ context.Context, userID int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		return copyUser(u), nil
	}
	return nil, domain.NewNotFoundError("user")
}

func (s *memStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, domain.NewNotFoundError("user")
}

func (s *memStore) UsernameExists(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) TouchLastSeen(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.LastSeenAt = time.Now()
	}
	return nil
}

func (s *memStore) ListJokes(_ context.Context, filter ports.JokeFilter, jokeSort domain.JokeSort, page ports.Page) (*ports.JokeList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*domain.Joke, 0, len(s.jokes))
	for _, j := range s.jokes {
		if filter.Language != "" && j.Language != filter.Language {
			continue
		}
		if filter.AuthorUsername != "" {
			if j.AuthorID == nil || s.users[*j.AuthorID] == nil || s.users[*j.AuthorID].Username != filter.AuthorUsername {
				continue
			}
		}
		matched = append(matched, j)
	}

	switch jokeSort {
	case domain.SortOldest:
		sort.Slice(matched, func(i, k int) bool { return matched[i].ID < matched[k].ID })
	case domain.SortPopular:
		sort.Slice(matched, func(i, k int) bool { return matched[i].Score > matched[k].Score })
	default:
		sort.Slice(matched, func(i, k int) bool { return matched[i].ID > matched[k].ID })
	}

	total := int64(len(matched))
	offset := page.Offset()
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + page.Size
	if end > len(matched) {
		end = len(matched)
	}

	items := make([]ports.JokeWithMeta, 0, end-offset)
	for _, j := range matched[offset:end] {
		items = append(items, s.withMetaLocked(j))
	}
	return &ports.JokeList{Items: items, Total: total}, nil
}

func (s *memStore) GetJoke(_ context.Context, jokeID int64) (*ports.JokeWithMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jokes[jokeID]
	if !ok {
		return nil, domain.NewNotFoundError("joke")
	}
	jm := s.withMetaLocked(j)
	return &jm, nil
}

func (s *memStore) RandomJoke(_ context.Context, language string) (*ports.JokeWithMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jokes {
		if language == "" || j.Language == language {
			jm := s.withMetaLocked(j)
			return &jm, nil
		}
	}
	return nil, domain.NewNotFoundError("joke")
}

func (s *memStore) CreateJoke(_ context.Context, n ports.NewJoke) (*domain.Joke, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextJokeID++
	authorID := n.AuthorID
	now := time.Now()
	j := &domain.Joke{
		ID:        s.nextJokeID,
		AuthorID:  &authorID,
		Title:     n.Title,
		Body:      n.Body,
		Language:  n.Language,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.jokes[j.ID] = j
	return copyJoke(j), nil
}

func (s *memStore) UpdateJokeOwned(_ context.Context, jokeID, authorID int64, patch ports.JokePatch) (*domain.Joke, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jokes[jokeID]
	if !ok || j.AuthorID == nil || *j.AuthorID != authorID {
		return nil, domain.NewNotFoundError("joke")
	}
	if patch.Title != nil {
		j.Title = patch.Title
	}
	if patch.Body != nil {
		j.Body = *patch.Body
	}
	j.UpdatedAt = time.Now()
	return copyJoke(j), nil
}

func (s *memStore) DeleteJokeOwned(_ context.Context, jokeID, authorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jokes[jokeID]
	if !ok || j.AuthorID == nil || *j.AuthorID != authorID {
		return domain.NewNotFoundError("joke")
	}
	delete(s.jokes, jokeID)
	return nil
}

func (s *memStore) JokeExists(_ context.Context, jokeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jokes[jokeID]
	return ok, nil
}

func (s *memStore) IncrementViews(_ context.Context, jokeID int64) error {
	s.mu.Lock()
	if j, ok := s.jokes[jokeID]; ok {
		j.Views++
	}
	s.mu.Unlock()
	select {
	case s.viewed <- jokeID:
	default:
	}
	return nil
}

func (s *memStore) AddFavorite(_ context.Context, userID, jokeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jokes[jokeID]; !ok {
		return domain.NewReferenceError("referenced joke does not exist")
	}
	for _, f := range s.favorites {
		if f.UserID == userID && f.JokeID == jokeID {
			return domain.NewDuplicateError(domain.CodeDuplicateResource, "joke is already in favorites")
		}
	}
	s.favorites = append(s.favorites, domain.Favorite{UserID: userID, JokeID: jokeID, CreatedAt: time.Now()})
	return nil
}

func (s *memStore) RemoveFavorite(_ context.Context, userID, jokeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.favorites {
		if f.UserID == userID && f.JokeID == jokeID {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *memStore) ListFavorites(_ context.Context, userID int64) ([]ports.JokeWithMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.JokeWithMeta, 0)
	for i := len(s.favorites) - 1; i >= 0; i-- {
		f := s.favorites[i]
		if f.UserID != userID {
			continue
		}
		if j, ok := s.jokes[f.JokeID]; ok {
			out = append(out, s.withMetaLocked(j))
		}
	}
	return out, nil
}

func (s *memStore) CreateComment(_ context.Context, jokeID, userID int64, body string) (*domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jokes[jokeID]; !ok {
		return nil, domain.NewReferenceError("referenced joke does not exist")
	}
	s.nextCommentID++
	c := domain.Comment{
		ID:        s.nextCommentID,
		JokeID:    jokeID,
		UserID:    userID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	s.comments = append(s.comments, c)
	return &c, nil
}

func (s *memStore) ListComments(_ context.Context, jokeID int64) ([]ports.CommentWithAuthor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.CommentWithAuthor, 0)
	for i := len(s.comments) - 1; i >= 0; i-- {
		c := s.comments[i]
		if c.JokeID != jokeID {
			continue
		}
		name := ""
		if u, ok := s.users[c.UserID]; ok {
			name = u.DisplayName
		}
		out = append(out, ports.CommentWithAuthor{Comment: c, AuthorName: name})
	}
	return out, nil
}

func (s *memStore) withMetaLocked(j *domain.Joke) ports.JokeWithMeta {
	jm := ports.JokeWithMeta{Joke: *j}
	if j.AuthorID != nil {
		if u, ok := s.users[*j.AuthorID]; ok {
			name := u.DisplayName
			jm.AuthorName = &name
		}
	}
	for _, f := range s.favorites {
		if f.JokeID == j.ID {
			jm.FavoritesCount++
		}
	}
	for _, c := range s.comments {
		if c.JokeID == j.ID {
			jm.CommentsCount++
		}
	}
	return jm
}

func copyUser(u *domain.User) *domain.User { c := *u; return &c }
func copyJoke(j *domain.Joke) *domain.Joke { c := *j; return &c }

// plainHasher is a transparent password hasher so tests stay fast.
type plainHasher struct{}

var _ ports.PasswordHasher = plainHasher{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrUnauthorized
	}
	return nil
}

func (plainHasher) CompareDummy(string) {}

// newTestRouter wires the full HTTP surface against a memStore.
func newTestRouter(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Log:    config.LogConfig{Level: "error"},
		Auth:   config.AuthConfig{JWTSecret: testSecret, TokenTTL: time.Hour},
	}
	tokens, err := token.NewJWTManager(cfg.Auth)
	require.NoError(t, err)

	store := newMemStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := server.New(cfg, log, store, plainHasher{}, tokens)
	return srv.Router(), store
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, r *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doRaw performs a prebuilt request, for malformed payloads.
func doRaw(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// stripRequestID blanks the per-request correlation ID so two error bodies
// can be compared for equality.
func stripRequestID(body string) string {
	return requestIDPattern.ReplaceAllString(body, `"request_id":""`)
}

var requestIDPattern = regexp.MustCompile(`"request_id":"[^"]*"`)

// decode unmarshals a recorded response body into out.
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// errorCode extracts the machine code from an error response body.
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, w, &body)
	return body.Error.Code
}

// registerUser registers an account and returns its ID and session token.
func registerUser(t *testing.T, r *gin.Engine, username string) (int64, string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    fmt.Sprintf("%s@example.com", username),
		"password": "secret-password",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res struct {
		ID    int64  `json:"id"`
		Token string `json:"token"`
	}
	decode(t, w, &res)
	require.NotZero(t, res.ID)
	require.NotEmpty(t, res.Token)
	return res.ID, res.Token
}

// createJoke creates a joke for the given session and returns its ID.
func createJoke(t *testing.T, r *gin.Engine, bearer, body string) int64 {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/jokes", bearer, gin.H{"body": body})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res struct {
		ID int64 `json:"id"`
	}
	decode(t, w, &res)
	require.NotZero(t, res.ID)
	return res.ID
}
