package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jokehub/src/app/http/dto"
	"jokehub/src/app/http/response"
	"jokehub/src/app/middleware"
	"jokehub/src/core/usecase"
)

// JokeHandler handles joke listing, reads, mutation and comments.
type JokeHandler struct {
	jokeService *usecase.JokeService
}

func NewJokeHandler(jokeService *usecase.JokeService) *JokeHandler {
	return &JokeHandler{jokeService: jokeService}
}

// parseJokeID validates the :id path parameter. A non-integer ID is a client
// validation error; any syntactically valid integer goes to the store, where
// a value matching no row surfaces as not-found.
func parseJokeID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.ValidationError(c, "id", "joke id must be an integer", middleware.GetRequestID(c))
		return 0, false
	}
	return id, true
}

// List returns a filtered, sorted page of jokes.
// GET /api/jokes?page&limit&author&language&sort
func (h *JokeHandler) List(c *gin.Context) {
	var query dto.ListJokesQuery
	// Unparseable numbers fall back to zero values; the service substitutes
	// defaults and clamps.
	_ = c.ShouldBindQuery(&query)

	res, err := h.jokeService.List(c.Request.Context(), usecase.ListInput{
		Page:     query.Page,
		Limit:    query.Limit,
		Author:   query.Author,
		Language: query.Language,
		Sort:     query.Sort,
	})
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	items := make([]dto.JokeResponse, 0, len(res.Items))
	for i := range res.Items {
		items = append(items, dto.JokeFromMeta(&res.Items[i]))
	}

	c.JSON(http.StatusOK, dto.JokeListResponse{
		Items: items,
		Pagination: dto.Pagination{
			Page:       res.Page,
			Limit:      res.Limit,
			Total:      res.Total,
			TotalPages: res.TotalPages,
			HasNext:    res.HasNext,
			HasPrev:    res.HasPrev,
		},
	})
}

// Random returns one arbitrary joke, optionally filtered by language.
// GET /api/jokes/random?language
func (h *JokeHandler) Random(c *gin.Context) {
	jm, err := h.jokeService.Random(c.Request.Context(), c.Query("language"))
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.JSON(http.StatusOK, dto.JokeFromMeta(jm))
}

// Get returns a single joke with favorites and comments counts.
// GET /api/jokes/:id
func (h *JokeHandler) Get(c *gin.Context) {
	id, ok := parseJokeID(c)
	if !ok {
		return
	}

	jm, err := h.jokeService.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.JSON(http.StatusOK, dto.JokeFromMeta(jm))
}

// Create stores a joke authored by the authenticated user.
// POST /api/jokes
func (h *JokeHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "", "missing bearer token", middleware.GetRequestID(c))
		return
	}

	var req dto.CreateJokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	joke, err := h.jokeService.Create(c.Request.Context(), userID, usecase.CreateInput{
		Title:    req.Title,
		Body:     req.Body,
		Language: req.Language,
	})
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.JSON(http.StatusCreated, dto.JokeFromDomain(joke))
}

// Update applies a partial, owner-only update.
// PATCH /api/jokes/:id
func (h *JokeHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "", "missing bearer token", middleware.GetRequestID(c))
		return
	}
	id, ok := parseJokeID(c)
	if !ok {
		return
	}

	var req dto.UpdateJokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	joke, err := h.jokeService.Update(c.Request.Context(), id, userID, usecase.UpdateInput{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.JSON(http.StatusOK, dto.JokeFromDomain(joke))
}

// Delete removes a joke, owner-only.
// DELETE /api/jokes/:id
func (h *JokeHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "", "missing bearer token", middleware.GetRequestID(c))
		return
	}
	id, ok := parseJokeID(c)
	if !ok {
		return
	}

	if err := h.jokeService.Delete(c.Request.Context(), id, userID); err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.NoContent(c)
}

// ListComments returns a joke's comments, newest first.
// GET /api/jokes/:id/comments
func (h *JokeHandler) ListComments(c *gin.Context) {
	id, ok := parseJokeID(c)
	if !ok {
		return
	}

	comments, err := h.jokeService.ListComments(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	out := make([]dto.CommentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, dto.CommentResponse{
			ID:         cm.ID,
			JokeID:     cm.JokeID,
			UserID:     cm.UserID,
			AuthorName: cm.AuthorName,
			Body:       cm.Body,
			CreatedAt:  cm.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// AddComment stores a comment by the authenticated user.
// POST /api/jokes/:id/comments
func (h *JokeHandler) AddComment(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "", "missing bearer token", middleware.GetRequestID(c))
		return
	}
	id, ok := parseJokeID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	comment, err := h.jokeService.AddComment(c.Request.Context(), id, userID, req.Body)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.JSON(http.StatusCreated, dto.CommentResponse{
		ID:        comment.ID,
		JokeID:    comment.JokeID,
		UserID:    comment.UserID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	})
}
