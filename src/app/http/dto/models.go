// Package dto contains Data Transfer Objects for HTTP requests and responses.
//
// DTOs are separate from domain entities to control what the API exposes,
// carry binding tags for request validation, and keep JSON naming stable.
package dto

import (
	"time"

	"jokehub/src/core/domain"
	"jokehub/src/core/ports"
)

// Requests

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AvailabilityRequest is the payload for POST /api/auth/check-availability.
// Absent fields are not checked.
type AvailabilityRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// CreateJokeRequest is the payload for POST /api/jokes.
type CreateJokeRequest struct {
	Title    *string `json:"title"`
	Body     string  `json:"body"`
	Language string  `json:"language"`
}

// UpdateJokeRequest is the payload for PATCH /api/jokes/:id.
// At least one field must be present.
type UpdateJokeRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// CreateCommentRequest is the payload for POST /api/jokes/:id/comments.
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// ListJokesQuery captures the query string of GET /api/jokes. Parse failures
// fall back to zero values, which the service normalizes to defaults.
type ListJokesQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Author   string `form:"author"`
	Language string `form:"language"`
	Sort     string `form:"sort"`
}

// Responses

// UserResponse is a public profile.
type UserResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserFromDomain maps a domain user to its public profile.
func UserFromDomain(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

// RegisterResponse is the 201 body of registration.
type RegisterResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Token       string `json:"token"`
}

// LoginResponse is the 200 body of login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// AvailabilityResponse reports each requested field independently.
type AvailabilityResponse struct {
	UsernameAvailable *bool `json:"usernameAvailable,omitempty"`
	EmailAvailable    *bool `json:"emailAvailable,omitempty"`
}

// JokeResponse is a joke with its read-side metadata.
type JokeResponse struct {
	ID             int64     `json:"id"`
	Title          *string   `json:"title,omitempty"`
	Body           string    `json:"body"`
	Language       string    `json:"language"`
	Score          int       `json:"score"`
	Views          int64     `json:"views"`
	AuthorID       *int64    `json:"author_id,omitempty"`
	AuthorName     *string   `json:"author_name,omitempty"`
	FavoritesCount int64     `json:"favorites_count"`
	CommentsCount  int64     `json:"comments_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// JokeFromMeta maps an enriched repository row.
func JokeFromMeta(jm *ports.JokeWithMeta) JokeResponse {
	return JokeResponse{
		ID:             jm.ID,
		Title:          jm.Title,
		Body:           jm.Body,
		Language:       jm.Language,
		Score:          jm.Score,
		Views:          jm.Views,
		AuthorID:       jm.AuthorID,
		AuthorName:     jm.AuthorName,
		FavoritesCount: jm.FavoritesCount,
		CommentsCount:  jm.CommentsCount,
		CreatedAt:      jm.CreatedAt,
		UpdatedAt:      jm.UpdatedAt,
	}
}

// JokeFromDomain maps a bare joke row (writes return no counts).
func JokeFromDomain(j *domain.Joke) JokeResponse {
	return JokeResponse{
		ID:        j.ID,
		Title:     j.Title,
		Body:      j.Body,
		Language:  j.Language,
		Score:     j.Score,
		Views:     j.Views,
		AuthorID:  j.AuthorID,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// Pagination is the derived paging metadata of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// JokeListResponse is the body of GET /api/jokes.
type JokeListResponse struct {
	Items      []JokeResponse `json:"items"`
	Pagination Pagination     `json:"pagination"`
}

// CommentResponse is a comment with its author's display name.
type CommentResponse struct {
	ID         int64     `json:"id"`
	JokeID     int64     `json:"joke_id"`
	UserID     int64     `json:"user_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
