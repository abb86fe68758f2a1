package handler

import (
	"backend/internal/access"
	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccessHandler exposes the administrative CRUD over roles, business elements
// and access rules. The whole group runs behind strict session authentication:
// a bad token is rejected outright instead of degrading to guest.
type AccessHandler struct {
	accessService service.AccessAdminService
	mw            *middleware.AccessMiddleware
}

func NewAccessHandler(accessService service.AccessAdminService, mw *middleware.AccessMiddleware) *AccessHandler {
	return &AccessHandler{accessService: accessService, mw: mw}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AccessHandler) RegisterRoutes(router *gin.RouterGroup) {
	adminGuard := func(methods ...string) gin.HandlerFunc {
		return h.mw.Guard(middleware.GuardConfig{
			Methods:      methods,
			RequireAuth:  true,
			RequireAdmin: true,
		})
	}

	group := router.Group("/api/access", h.mw.StrictSession())

	roles := group.Group("/roles")
	{
		roles.GET("", adminGuard(http.MethodGet), h.ListRoles)
		roles.POST("", adminGuard(http.MethodPost), h.CreateRole)
		roles.GET("/:id", adminGuard(http.MethodGet), h.GetRole)
		roles.PUT("/:id", adminGuard(http.MethodPut), h.UpdateRole)
		roles.DELETE("/:id", adminGuard(http.MethodDelete), h.DeleteRole)
	}

	elements := group.Group("/business-elements")
	{
		elements.GET("", adminGuard(http.MethodGet), h.ListElements)
		elements.POST("", adminGuard(http.MethodPost), h.CreateElement)
		elements.GET("/:id", adminGuard(http.MethodGet), h.GetElement)
		elements.PUT("/:id", adminGuard(http.MethodPut), h.UpdateElement)
		elements.DELETE("/:id", adminGuard(http.MethodDelete), h.DeleteElement)
	}

	rules := group.Group("/rules")
	{
		rules.GET("", adminGuard(http.MethodGet), h.ListRules)
		rules.POST("", adminGuard(http.MethodPost), h.CreateRule)
		rules.GET("/:id", adminGuard(http.MethodGet), h.GetRule)
		rules.PUT("/:id", adminGuard(http.MethodPut), h.UpdateRule)
		rules.DELETE("/:id", adminGuard(http.MethodDelete), h.DeleteRule)
	}
}

// --- Roles ---

// ListRoles handles GET /api/access/roles
// @Summary      List roles
// @Tags         access
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/access/roles [get]
func (h *AccessHandler) ListRoles(c *gin.Context) {
	roles, err := h.accessService.ListRoles(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, roles))
}

// CreateRole handles POST /api/access/roles
// @Summary      Create role
// @Tags         access
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RoleRequest  true  "Role"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/access/roles [post]
func (h *AccessHandler) CreateRole(c *gin.Context) {
	var req service.RoleRequest
	if !bindJSON(c, &req) {
		return
	}
	role, err := h.accessService.CreateRole(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, role))
}

// GetRole handles GET /api/access/roles/:id
// @Summary      Get role
// @Tags         access
// @Produce      json
// @Param        id   path      string  true  "Role ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/access/roles/{id} [get]
func (h *AccessHandler) GetRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	role, err := h.accessService.GetRole(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, role))
}

// UpdateRole handles PUT /api/access/roles/:id
// @Summary      Update role
// @Tags         access
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Role ID"
// @Param        payload  body      service.RoleRequest  true  "Role"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/access/roles/{id} [put]
func (h *AccessHandler) UpdateRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.RoleRequest
	if !bindJSON(c, &req) {
		return
	}
	role, err := h.accessService.UpdateRole(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, role))
}

// DeleteRole handles DELETE /api/access/roles/:id
// @Summary      Delete role
// @Description  Refuses while users or rules still reference the role
// @Tags         access
// @Produce      json
// @Param        id   path      string  true  "Role ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/access/roles/{id} [delete]
func (h *AccessHandler) DeleteRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.accessService.DeleteRole(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "role deleted"}))
}

// --- Business elements ---

// ListElements handles GET /api/access/business-elements
// @Summary      List business elements
// @Tags         access
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/access/business-elements [get]
func (h *AccessHandler) ListElements(c *gin.Context) {
	elements, err := h.accessService.ListElements(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, elements))
}

// CreateElement handles POST /api/access/business-elements
// @Summary      Create business element
// @Tags         access
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ElementRequest  true  "Element"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/access/business-elements [post]
func (h *AccessHandler) CreateElement(c *gin.Context) {
	var req service.ElementRequest
	if !bindJSON(c, &req) {
		return
	}
	element, err := h.accessService.CreateElement(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, element))
}

// GetElement handles GET /api/access/business-elements/:id
// @Summary      Get business element
// @Tags         access
// @Produce      json
// @Param        id   path      string  true  "Element ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/access/business-elements/{id} [get]
func (h *AccessHandler) GetElement(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	element, err := h.accessService.GetElement(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, element))
}

// UpdateElement handles PUT /api/access/business-elements/:id
// @Summary      Update business element
// @Tags         access
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Element ID"
// @Param        payload  body      service.ElementRequest  true  "Element"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/access/business-elements/{id} [put]
func (h *AccessHandler) UpdateElement(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.ElementRequest
	if !bindJSON(c, &req) {
		return
	}
	element, err := h.accessService.UpdateElement(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, element))
}

// DeleteElement handles DELETE /api/access/business-elements/:id
// @Summary      Delete business element
// @Tags         access
// @Produce      json
// @Param        id   path      string  true  "Element ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/access/business-elements/{id} [delete]
func (h *AccessHandler) DeleteElement(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.accessService.DeleteElement(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "element deleted"}))
}

// --- Rules ---

// ListRules handles GET /api/access/rules
// @Summary      List access rules
// @Tags         access
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.RuleResponse}
// @Router       /api/access/rules [get]
func (h *AccessHandler) ListRules(c *gin.Context) {
	rules, err := h.accessService.ListRules(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rules))
}

// CreateRule handles POST /api/access/rules
// @Summary      Create access rule
// @Description  One rule per (role, element) pair; duplicates are rejected
// @Tags         access
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RuleRequest  true  "Rule"
// @Success      201      {object}  response.Response{data=service.RuleResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/access/rules [post]
func (h *AccessHandler) CreateRule(c *gin.Context) {
	var req service.RuleRequest
	if !bindJSON(c, &req) {
		return
	}
	rule, err := h.accessService.CreateRule(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rule))
}

// GetRule handles GET /api/access/rules/:id
// @Summary      Get access rule
// @Tags         access
// @Produce      json
// @Param        id   path      string  true  "Rule ID"
// @Success      200  {object}  response.Response{data=service.RuleResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/access/rules/{id} [get]
func (h *AccessHandler) GetRule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	rule, err := h.accessService.GetRule(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rule))
}

// UpdateRule handles PUT /api/access/rules/:id
// @Summary      Update access rule
// @Tags         access
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Rule ID"
// @Param        payload  body      service.RuleRequest  true  "Rule"
// @Success      200      {object}  response.Response{data=service.RuleResponse}
// @Failure      404      {object}  response.Response
// @Router       /api/access/rules/{id} [put]
func (h *AccessHandler) UpdateRule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.RuleRequest
	if !bindJSON(c, &req) {
		return
	}
	rule, err := h.accessService.UpdateRule(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rule))
}

// DeleteRule handles DELETE /api/access/rules/:id
// @Summary      Delete access rule
// @Tags         access
// @Produce      json
// @Param        id   path      string  true  "Rule ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/access/rules/{id} [delete]
func (h *AccessHandler) DeleteRule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.accessService.DeleteRule(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "rule deleted"}))
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, access.ErrValidation("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}
