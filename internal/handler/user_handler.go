package handler

import (
	"backend/internal/access"
	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService service.UserService
	authService service.AuthService
	mw          *middleware.AccessMiddleware
}

// NewUserHandler sets up the routing dependencies for User endpoints
func NewUserHandler(userService service.UserService, authService service.AuthService, mw *middleware.AccessMiddleware) *UserHandler {
	return &UserHandler{userService: userService, authService: authService, mw: mw}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup.
// Every endpoint needs a rule for the "user" element; registration runs
// without authentication so the guest role's rule decides whether it is open.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/api/users")
	{
		users.POST("/register", h.mw.Guard(middleware.GuardConfig{
			Methods:  []string{http.MethodPost},
			Resource: "user",
		}), h.Register)

		users.GET("", h.mw.Guard(middleware.GuardConfig{
			Methods:     []string{http.MethodGet},
			Resource:    "user",
			RequireAuth: true,
		}), h.ListUsers)

		users.GET("/:id", h.mw.Guard(middleware.GuardConfig{
			Methods:     []string{http.MethodGet},
			Resource:    "user",
			RequireAuth: true,
		}), h.GetUser)

		users.PUT("/:id", h.mw.Guard(middleware.GuardConfig{
			Methods:     []string{http.MethodPut},
			Resource:    "user",
			RequireAuth: true,
		}), h.UpdateUser)

		users.DELETE("/:id", h.mw.Guard(middleware.GuardConfig{
			Methods:     []string{http.MethodDelete},
			Resource:    "user",
			RequireAuth: true,
		}), h.DeleteUser)
	}
}

// Register handles POST /api/users/register
// @Summary      Register a new user
// @Description  Creates a user with the default role. Open only while the guest rule grants create.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterRequest  true  "Registration Payload"
// @Success      201      {object}  response.Response{data=service.UserResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	rule := middleware.RuleFrom(c)

	if err := access.Authorize(caller, nil, rule, access.ActionCreate); err != nil {
		fail(c, access.ErrObjectAccessDenied("registration is currently disabled"))
		return
	}

	var req service.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, user))
}

// ListUsers handles GET /api/users
// @Summary      List users
// @Description  All active users for read-all callers, otherwise just the caller's record
// @Tags         users
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  response.Response{data=[]service.UserResponse}
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := pagination.Parse(c)

	users, total, err := h.userService.ListUsers(
		c.Request.Context(),
		middleware.CallerFrom(c),
		middleware.RuleFrom(c),
		params.Offset,
		params.Limit,
	)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"users": users,
		"meta":  params.Meta(total),
	}))
}

// GetUser handles GET /api/users/:id
// @Summary      Get user detail
// @Description  Returns a user when the caller's rule grants read on it
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=service.UserResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), middleware.CallerFrom(c), middleware.RuleFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// UpdateUser handles PUT /api/users/:id
// @Summary      Update user
// @Description  Partially updates name parts, email or password, subject to the update rule
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "User ID"
// @Param        payload  body      service.UpdateUserRequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=service.UserResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req service.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), middleware.CallerFrom(c), middleware.RuleFrom(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// DeleteUser handles DELETE /api/users/:id
// @Summary      Delete user
// @Description  Soft-deletes a user, subject to the delete rule; the row is retained
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), middleware.CallerFrom(c), middleware.RuleFrom(c), id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "user deleted"}))
}

func parseUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, access.ErrValidation("invalid user id"))
		return uuid.Nil, false
	}
	return id, true
}
