package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jokehub/src/app/http/dto"
	"jokehub/src/app/http/response"
	"jokehub/src/app/middleware"
	"jokehub/src/core/usecase"
)

// AuthHandler handles registration, login, profile and availability endpoints.
type AuthHandler struct {
	authService *usecase.AuthService
}

func NewAuthHandler(authService *usecase.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates an account and returns its profile plus a session token.
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	res, err := h.authService.Register(c.Request.Context(), usecase.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		ID:          res.User.ID,
		Username:    res.User.Username,
		DisplayName: res.User.DisplayName,
		Email:       res.User.Email,
		Token:       res.Token,
	})
}

// Login verifies credentials and returns a session token.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: res.Token,
		User:  dto.UserFromDomain(res.User),
	})
}

// Me returns the authenticated user's profile.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "", "missing bearer token", middleware.GetRequestID(c))
		return
	}

	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	c.JSON(http.StatusOK, dto.UserFromDomain(user))
}

// CheckAvailability reports whether a username and/or email are still free.
// POST /api/auth/check-availability
func (h *AuthHandler) CheckAvailability(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	res, err := h.authService.CheckAvailability(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	c.JSON(http.StatusOK, dto.AvailabilityResponse{
		UsernameAvailable: res.Username,
		EmailAvailable:    res.Email,
	})
}
