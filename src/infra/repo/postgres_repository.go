package repo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jokehub/src/core/domain"
	"jokehub/src/core/ports"
	"jokehub/src/infra/db"
)

// PostgresRepository implements ports.Store using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

var _ ports.Store = (*PostgresRepository)(nil)

// NewPostgresRepository constructs a repository backed by Postgres.
func NewPostgresRepository(pg *db.Postgres, log *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		pool: pg.Pool,
		log:  log,
	}
}

func (r *PostgresRepository) Health(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// fail logs the raw database error and returns its client-safe translation.
func (r *PostgresRepository) fail(op string, err error) error {
	r.log.Error("query failed", "op", op, "error", err)
	return translateError(err)
}

// Users

func (r *PostgresRepository) CreateUser(ctx context.Context, nu ports.NewUser) (*domain.User, error) {
	const q = `
		INSERT INTO users (username, email, password_hash, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id, username, email, password_hash, display_name, created_at, last_seen_at
	`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, nu.Username, nu.Email, nu.PasswordHash, nu.DisplayName).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.DisplayName, &u.CreatedAt, &u.LastSeenAt,
	)
	if err != nil {
		return nil, r.fail("create_user", err)
	}
	return &u, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	const q = `
		SELECT user_id, username, email, password_hash, display_name, created_at, last_seen_at
		FROM users
		WHERE user_id = $1
	`
	var u domain.User
	if err := r.pool.QueryRow(ctx, q, userID).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.DisplayName, &u.CreatedAt, &u.LastSeenAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, r.fail("get_user_by_id", err)
	}
	return &u, nil
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `
		SELECT user_id, username, email, password_hash, display_name, created_at, last_seen_at
		FROM users
		WHERE username = $1
	`
	var u domain.User
	if err := r.pool.QueryRow(ctx, q, username).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.DisplayName, &u.CreatedAt, &u.LastSeenAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, r.fail("get_user_by_username", err)
	}
	return &u, nil
}

func (r *PostgresRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, username).Scan(&exists); err != nil {
		return false, r.fail("username_exists", err)
	}
	return exists, nil
}

func (r *PostgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, email).Scan(&exists); err != nil {
		return false, r.fail("email_exists", err)
	}
	return exists, nil
}

func (r *PostgresRepository) TouchLastSeen(ctx context.Context, userID int64) error {
	const q = `UPDATE users SET last_seen_at = now() WHERE user_id = $1`
	if _, err := r.pool.Exec(ctx, q, userID); err != nil {
		return r.fail("touch_last_seen", err)
	}
	return nil
}

// Jokes

// jokeColumns selects one joke row enriched with the author's display name
// and favorites/comments counts. Requires "jokes j LEFT JOIN users u".
const jokeColumns = `
	j.joke_id, j.author_id, j.title, j.body, j.language, j.score, j.views,
	j.created_at, j.updated_at,
	u.display_name,
	(SELECT COUNT(*) FROM favorites f WHERE f.joke_id = j.joke_id),
	(SELECT COUNT(*) FROM comments c WHERE c.joke_id = j.joke_id)
`

func scanJokeWithMeta(row pgx.Row) (*ports.JokeWithMeta, error) {
	var jm ports.JokeWithMeta
	err := row.Scan(
		&jm.ID, &jm.AuthorID, &jm.Title, &jm.Body, &jm.Language, &jm.Score, &jm.Views,
		&jm.CreatedAt, &jm.UpdatedAt,
		&jm.AuthorName,
		&jm.FavoritesCount,
		&jm.CommentsCount,
	)
	if err != nil {
		return nil, err
	}
	return &jm, nil
}

func (r *PostgresRepository) ListJokes(ctx context.Context, filter ports.JokeFilter, sort domain.JokeSort, page ports.Page) (*ports.JokeList, error) {
	var wb whereBuilder
	if filter.AuthorUsername != "" {
		wb.Eq("u.username", filter.AuthorUsername)
	}
	if filter.Language != "" {
		wb.Eq("j.language", filter.Language)
	}

	// Total across the same filter, without the window.
	countQ := `SELECT COUNT(*) FROM jokes j LEFT JOIN users u ON u.user_id = j.author_id` + wb.Clause()
	var total int64
	if err := r.pool.QueryRow(ctx, countQ, wb.Args()...).Scan(&total); err != nil {
		return nil, r.fail("count_jokes", err)
	}

	listQ := `SELECT ` + jokeColumns +
		` FROM jokes j LEFT JOIN users u ON u.user_id = j.author_id` +
		wb.Clause() + orderClause(sort) + wb.Limit(page.Size, page.Offset())

	rows, err := r.pool.Query(ctx, listQ, wb.Args()...)
	if err != nil {
		return nil, r.fail("list_jokes", err)
	}
	defer rows.Close()

	items := make([]ports.JokeWithMeta, 0, page.Size)
	for rows.Next() {
		jm, err := scanJokeWithMeta(rows)
		if err != nil {
			return nil, r.fail("scan_jokes", err)
		}
		items = append(items, *jm)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail("list_jokes", err)
	}

	return &ports.JokeList{Items: items, Total: total}, nil
}

func (r *PostgresRepository) GetJoke(ctx context.Context, jokeID int64) (*ports.JokeWithMeta, error) {
	q := `SELECT ` + jokeColumns + `
		FROM jokes j
		LEFT JOIN users u ON u.user_id = j.author_id
		WHERE j.joke_id = $1
	`
	jm, err := scanJokeWithMeta(r.pool.QueryRow(ctx, q, jokeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("joke")
		}
		return nil, r.fail("get_joke", err)
	}
	return jm, nil
}

func (r *PostgresRepository) RandomJoke(ctx context.Context, language string) (*ports.JokeWithMeta, error) {
	var wb whereBuilder
	if language != "" {
		wb.Eq("j.language", language)
	}
	q := `SELECT ` + jokeColumns +
		` FROM jokes j LEFT JOIN users u ON u.user_id = j.author_id` +
		wb.Clause() + ` ORDER BY random() LIMIT 1`

	jm, err := scanJokeWithMeta(r.pool.QueryRow(ctx, q, wb.Args()...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("joke")
		}
		return nil, r.fail("random_joke", err)
	}
	return jm, nil
}

func (r *PostgresRepository) CreateJoke(ctx context.Context, nj ports.NewJoke) (*domain.Joke, error) {
	const q = `
		INSERT INTO jokes (author_id, title, body, language)
		VALUES ($1, $2, $3, $4)
		RETURNING joke_id, author_id, title, body, language, score, views, created_at, updated_at
	`
	var j domain.Joke
	err := r.pool.QueryRow(ctx, q, nj.AuthorID, nj.Title, nj.Body, nj.Language).Scan(
		&j.ID, &j.AuthorID, &j.Title, &j.Body, &j.Language, &j.Score, &j.Views, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, r.fail("create_joke", err)
	}
	return &j, nil
}

// UpdateJokeOwned applies the patch with a single conditional write keyed on
// (joke_id, author_id), so there is no window between the ownership check
// and the update. COALESCE keeps absent fields untouched; a NULL author
// never matches, so orphaned jokes stay immutable.
func (r *PostgresRepository) UpdateJokeOwned(ctx context.Context, jokeID, authorID int64, patch ports.JokePatch) (*domain.Joke, error) {
	const q = `
		UPDATE jokes
		SET title = COALESCE($3, title),
		    body = COALESCE($4, body),
		    updated_at = now()
		WHERE joke_id = $1 AND author_id = $2
		RETURNING joke_id, author_id, title, body, language, score, views, created_at, updated_at
	`
	var j domain.Joke
	err := r.pool.QueryRow(ctx, q, jokeID, authorID, patch.Title, patch.Body).Scan(
		&j.ID, &j.AuthorID, &j.Title, &j.Body, &j.Language, &j.Score, &j.Views, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("joke")
		}
		return nil, r.fail("update_joke", err)
	}
	return &j, nil
}

func (r *PostgresRepository) DeleteJokeOwned(ctx context.Context, jokeID, authorID int64) error {
	const q = `DELETE FROM jokes WHERE joke_id = $1 AND author_id = $2`
	res, err := r.pool.Exec(ctx, q, jokeID, authorID)
	if err != nil {
		return r.fail("delete_joke", err)
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("joke")
	}
	return nil
}

func (r *PostgresRepository) JokeExists(ctx context.Context, jokeID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM jokes WHERE joke_id = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, jokeID).Scan(&exists); err != nil {
		return false, r.fail("joke_exists", err)
	}
	return exists, nil
}

func (r *PostgresRepository) IncrementViews(ctx context.Context, jokeID int64) error {
	const q = `UPDATE jokes SET views = views + 1 WHERE joke_id = $1`
	if _, err := r.pool.Exec(ctx, q, jokeID); err != nil {
		return r.fail("increment_views", err)
	}
	return nil
}

// Favorites

func (r *PostgresRepository) AddFavorite(ctx context.Context, userID, jokeID int64) error {
	const q = `INSERT INTO favorites (user_id, joke_id) VALUES ($1, $2)`
	if _, err := r.pool.Exec(ctx, q, userID, jokeID); err != nil {
		return r.fail("add_favorite", err)
	}
	return nil
}

func (r *PostgresRepository) RemoveFavorite(ctx context.Context, userID, jokeID int64) error {
	// Deleting an absent favorite is a silent success.
	const q = `DELETE FROM favorites WHERE user_id = $1 AND joke_id = $2`
	if _, err := r.pool.Exec(ctx, q, userID, jokeID); err != nil {
		return r.fail("remove_favorite", err)
	}
	return nil
}

func (r *PostgresRepository) ListFavorites(ctx context.Context, userID int64) ([]ports.JokeWithMeta, error) {
	q := `SELECT ` + jokeColumns + `
		FROM favorites fav
		JOIN jokes j ON j.joke_id = fav.joke_id
		LEFT JOIN users u ON u.user_id = j.author_id
		WHERE fav.user_id = $1
		ORDER BY fav.created_at DESC
	`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, r.fail("list_favorites", err)
	}
	defer rows.Close()

	var items []ports.JokeWithMeta
	for rows.Next() {
		jm, err := scanJokeWithMeta(rows)
		if err != nil {
			return nil, r.fail("scan_favorites", err)
		}
		items = append(items, *jm)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail("list_favorites", err)
	}
	return items, nil
}

// Comments

func (r *PostgresRepository) CreateComment(ctx context.Context, jokeID, userID int64, body string) (*domain.Comment, error) {
	const q = `
		INSERT INTO comments (joke_id, user_id, body)
		VALUES ($1, $2, $3)
		RETURNING comment_id, joke_id, user_id, body, created_at
	`
	var cm domain.Comment
	err := r.pool.QueryRow(ctx, q, jokeID, userID, body).Scan(
		&cm.ID, &cm.JokeID, &cm.UserID, &cm.Body, &cm.CreatedAt,
	)
	if err != nil {
		return nil, r.fail("create_comment", err)
	}
	return &cm, nil
}

func (r *PostgresRepository) ListComments(ctx context.Context, jokeID int64) ([]ports.CommentWithAuthor, error) {
	const q = `
		SELECT c.comment_id, c.joke_id, c.user_id, c.body, c.created_at, u.display_name
		FROM comments c
		JOIN users u ON u.user_id = c.user_id
		WHERE c.joke_id = $1
		ORDER BY c.created_at DESC
	`
	rows, err := r.pool.Query(ctx, q, jokeID)
	if err != nil {
		return nil, r.fail("list_comments", err)
	}
	defer rows.Close()

	var comments []ports.CommentWithAuthor
	for rows.Next() {
		var cm ports.CommentWithAuthor
		if err := rows.Scan(&cm.ID, &cm.JokeID, &cm.UserID, &cm.Body, &cm.CreatedAt, &cm.AuthorName); err != nil {
			return nil, r.fail("scan_comments", err)
		}
		comments = append(comments, cm)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail("list_comments", err)
	}
	return comments, nil
}
