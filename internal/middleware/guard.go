package middleware

import (
	"backend/internal/access"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GuardConfig describes the coarse checks an endpoint needs before its handler
// runs. One config per endpoint, passed to Guard at route registration.
type GuardConfig struct {
	// Methods is the allowed HTTP method set; anything else is rejected 405.
	Methods []string
	// Resource, when set, names the business element whose rule is prefetched
	// for the caller's role. No rule configured for the pair rejects 403.
	Resource string
	// RequireAuth rejects guests and inactive users with 401.
	RequireAuth bool
	// RequireAdmin rejects callers whose role is not "admin" with 403.
	RequireAdmin bool
}

// Guard enforces the config in order: method whitelist, authentication
// requirement, admin requirement, then the coarse rule fetch. The fetched rule
// (or nothing, when no resource is configured) is attached to the context for
// the handler's fine-grained checks. Runs after ResolveIdentity.
func (m *AccessMiddleware) Guard(cfg GuardConfig) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.Methods))
	for _, method := range cfg.Methods {
		allowed[method] = true
	}

	return func(c *gin.Context) {
		if !allowed[c.Request.Method] {
			abortWithError(c, access.ErrMethodNotAllowed(c.Request.Method))
			return
		}

		caller := CallerFrom(c)

		if cfg.RequireAuth && !caller.IsActive() {
			abortWithError(c, access.ErrUnauthenticated())
			return
		}

		if cfg.RequireAdmin && !caller.IsAdmin() {
			abortWithError(c, access.ErrAdminRequired())
			return
		}

		if cfg.Resource != "" {
			rule, err := m.rules.GetRule(c.Request.Context(), caller.Role.ID, cfg.Resource)
			if err != nil {
				abortWithError(c, &access.Error{Status: http.StatusInternalServerError, Message: "failed to fetch access rules"})
				return
			}
			if rule == nil {
				abortWithError(c, access.ErrNoRuleConfigured(caller.Role.Name, cfg.Resource))
				return
			}
			c.Set(ruleKey, rule)
		}

		c.Next()
	}
}
