package handler

import (
	"backend/internal/access"
	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	mw          *middleware.AccessMiddleware
}

// NewAuthHandler sets up the routing dependencies for login/logout endpoints
func NewAuthHandler(authService service.AuthService, mw *middleware.AccessMiddleware) *AuthHandler {
	return &AuthHandler{authService: authService, mw: mw}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", h.mw.Guard(middleware.GuardConfig{Methods: []string{http.MethodPost}}), h.Login)
		auth.POST("/logout", h.mw.Guard(middleware.GuardConfig{Methods: []string{http.MethodPost}}), h.Logout)
	}
}

// Login handles POST /api/auth/login to authenticate and open a session
// @Summary      Login user
// @Description  Authenticates a user by email and password and sets the session cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Login Credentials"
// @Success      200      {object}  response.Response{data=service.UserResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, session, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	middleware.SetSessionCookie(c, session.Token, session.ExpiresAt)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// Logout handles POST /api/auth/logout to invalidate the current session
// @Summary      Logout user
// @Description  Invalidates the session behind the cookie and clears the cookie
// @Tags         auth
// @Produce      json
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || token == "" {
		fail(c, access.ErrValidation("no active session"))
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		fail(c, err)
		return
	}

	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "session closed"}))
}
