package middleware

import (
	"backend/internal/access"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccessMiddleware resolves caller identities and guards endpoints
type AccessMiddleware struct {
	sessions repository.SessionRepository
	roles    repository.RoleRepository
	rules    repository.RuleRepository
}

func NewAccessMiddleware(
	sessions repository.SessionRepository,
	roles repository.RoleRepository,
	rules repository.RuleRepository,
) *AccessMiddleware {
	return &AccessMiddleware{sessions: sessions, roles: roles, rules: rules}
}

// ResolveIdentity maps the session cookie to a caller identity on every
// request. A missing cookie, unknown token or dead session all resolve to the
// guest identity without an error: public and mixed-access endpoints must still
// execute, so this path never rejects.
func (m *AccessMiddleware) ResolveIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
			session, err := m.sessions.GetByToken(ctx, token)
			if err == nil && !session.IsExpired() {
				c.Set(callerKey, access.Authenticated(&session.User))
				c.Next()
				return
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				abortWithError(c, &access.Error{Status: http.StatusInternalServerError, Message: "failed to resolve session"})
				return
			}
		}

		guestRole, err := m.roles.GetOrCreate(ctx, model.RoleGuest)
		if err != nil {
			abortWithError(c, &access.Error{Status: http.StatusInternalServerError, Message: "failed to resolve guest role"})
			return
		}

		c.Set(callerKey, access.Guest(*guestRole))
		c.Next()
	}
}

// StrictSession actively rejects a presented token that does not resolve to a
// live session. An absent cookie passes through: the guest identity set by
// ResolveIdentity is then rejected by the guard's auth or admin check. Reserved
// for endpoints that must distinguish "no credential" from "bad credential".
func (m *AccessMiddleware) StrictSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		session, err := m.sessions.GetByToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortWithError(c, access.ErrAuthenticationFailed())
				return
			}
			abortWithError(c, &access.Error{Status: http.StatusInternalServerError, Message: "failed to resolve session"})
			return
		}
		if session.IsExpired() {
			abortWithError(c, access.ErrAuthenticationFailed())
			return
		}

		c.Next()
	}
}

// abortWithError stops the chain with the taxonomy error's status and message
func abortWithError(c *gin.Context, err *access.Error) {
	c.AbortWithStatusJSON(err.Status, response.Error(err.Status, err.Message))
}
