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

// FavoriteHandler handles per-user favorites.
type FavoriteHandler struct {
	favoriteService *usecase.FavoriteService
}

func NewFavoriteHandler(favoriteService *usecase.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Add favorites a joke for the authenticated user.
// POST /api/jokes/:id/favorite
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "", "missing bearer token", middleware.GetRequestID(c))
		return
	}
	jokeID, ok := parseJokeID(c)
	if !ok {
		return
	}

	if err := h.favoriteService.Add(c.Request.Context(), userID, jokeID); err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.Status(http.StatusCreated)
}

// Remove unfavorites a joke; removing an absent favorite still succeeds.
// DELETE /api/jokes/:id/favorite
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "", "missing bearer token", middleware.GetRequestID(c))
		return
	}
	jokeID, ok := parseJokeID(c)
	if !ok {
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), userID, jokeID); err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.NoContent(c)
}

// ListForUser returns all jokes favorited by the given user.
// GET /api/users/:id/favorites
func (h *FavoriteHandler) ListForUser(c *gin.Context) {
	raw := c.Param("id")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.ValidationError(c, "id", "user id must be an integer", middleware.GetRequestID(c))
		return
	}

	items, err := h.favoriteService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	out := make([]dto.JokeResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.JokeFromMeta(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}
