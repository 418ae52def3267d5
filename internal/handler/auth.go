package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopstack/backend/internal/model"
	"github.com/shopstack/backend/internal/service"
)

const (
	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

type AuthHandler struct {
	svc *service.AuthService
	// secureCookies sets the Secure attribute; true in production.
	secureCookies bool
}

func NewAuthHandler(svc *service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{svc: svc, secureCookies: secureCookies}
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.SignupRequest true "Name, email and password"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	user, pair, err := h.svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeAuthError(c, "signup", err)
		return
	}

	h.setAuthCookies(c, pair)
	c.JSON(http.StatusCreated, user.Response())
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Email and password"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	user, pair, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(c, "login", err)
		return
	}

	h.setAuthCookies(c, pair)
	c.JSON(http.StatusOK, user.Response())
}

// Logout godoc
// @Summary Logout
// @Description Revokes the session (if the refresh token verifies) and clears both cookies.
// @Tags auth
// @Produce json
// @Success 200 {object} model.MessageResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookieName)

	// Cookies are cleared even when the token is missing or bogus;
	// only a session-store failure surfaces as an error.
	err := h.svc.Logout(c.Request.Context(), refreshToken)
	h.clearAuthCookies(c)
	if err != nil {
		writeAuthError(c, "logout", err)
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{Message: "Logged out successfully"})
}

// Refresh godoc
// @Summary Refresh access token
// @Description Uses the refreshToken cookie; reissues the access token only.
// @Tags auth
// @Produce json
// @Success 200 {object} model.MessageResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookieName)

	accessToken, err := h.svc.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		writeAuthError(c, "refresh", err)
		return
	}

	h.setCookie(c, accessCookieName, accessToken, int(service.AccessTokenTTL.Seconds()))
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Token refreshed successfully"})
}

// Profile godoc
// @Summary Get current user
// @Tags auth
// @Produce json
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	authUser := GetAuthUser(c)
	if authUser == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "unauthorized"})
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), authUser.ID)
	if err != nil {
		writeAuthError(c, "profile", err)
		return
	}

	c.JSON(http.StatusOK, user.Response())
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, pair *service.TokenPair) {
	h.setCookie(c, accessCookieName, pair.AccessToken, int(service.AccessTokenTTL.Seconds()))
	h.setCookie(c, refreshCookieName, pair.RefreshToken, int(service.RefreshTokenTTL.Seconds()))
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	h.setCookie(c, accessCookieName, "", -1)
	h.setCookie(c, refreshCookieName, "", -1)
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, value, maxAge, "/", "", h.secureCookies, true)
}

// writeAuthError maps service errors to a fixed set of user-facing
// messages. Raw error detail stays in the log.
func writeAuthError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid email format"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "User already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid email or password"})
	case errors.Is(err, service.ErrNoToken):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "No refresh token provided"})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "Invalid refresh token"})
	default:
		log.Printf("Unexpected error in %s: %v", op, err)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
	}
}
