package handlers

import (
	"net/http"
	"time"

	"dinepos/internal/common"
	"dinepos/internal/middleware"
	"dinepos/internal/repositories"
	"dinepos/internal/services"
	"dinepos/internal/session"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	userRepo repositories.UserRepository
	authSvc  services.AuthService
	sessions *session.Manager
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(userRepo repositories.UserRepository, authSvc services.AuthService, sessions *session.Manager) *AuthHandlers {
	return &AuthHandlers{
		userRepo: userRepo,
		authSvc:  authSvc,
		sessions: sessions,
	}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
}

// Login authenticates a staff member and opens a session with an empty cart.
//
//	@Summary	Staff login
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Router		/v1/auth/login [post]
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Username == "" || req.Password == "" {
		return common.SendClientError(c, "Username and password are required")
	}

	user, err := h.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return common.SendServerError(c, "Login failed")
	}
	// Same response for unknown user and wrong password.
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}

	sess := h.sessions.Create(user)
	token, expiresAt, err := h.authSvc.GenerateToken(ctx, user.ID, sess.ID)
	if err != nil {
		h.sessions.Destroy(sess.ID)
		return common.SendServerError(c, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		UserID:      user.ID,
		Username:    user.Username,
		FullName:    user.FullName,
	})
}

// Logout destroys the session (dropping its cart) and revokes the token.
//
//	@Summary	Staff logout
//	@Tags		auth
//	@Router		/v1/auth/logout [post]
func (h *AuthHandlers) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID, ok := common.GetSessionIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	h.sessions.Destroy(sessionID)

	if claims, ok := c.Get(middleware.ClaimsKey).(*services.TokenClaims); ok {
		if err := h.authSvc.RevokeToken(ctx, claims); err != nil {
			// Session is already gone; a failed denylist write only shortens
			// the revocation, it does not keep the user logged in.
			c.Logger().Warnf("token revocation failed: %v", err)
		}
	}

	return c.NoContent(http.StatusNoContent)
}

// Me returns the logged-in user's identity.
//
//	@Summary	Current user
//	@Tags		auth
//	@Produce	json
//	@Router		/v1/me [get]
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID, ok := common.GetSessionIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	sess, ok := h.sessions.Get(sessionID)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user_id":   sess.UserID,
		"username":  sess.Username,
		"full_name": sess.FullName,
	})
}
