package middleware

import (
	"backend/internal/access"
	"backend/internal/model"

	"github.com/gin-gonic/gin"
)

// Context keys for values the middleware chain hands to handlers. Always read
// through the typed accessors below, never through c.Get directly.
const (
	callerKey = "access.caller"
	ruleKey   = "access.rule"
)

// CallerFrom returns the identity resolved for the request. The zero Identity
// (a roleless guest) comes back when the resolver did not run.
func CallerFrom(c *gin.Context) access.Identity {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(access.Identity); ok {
			return caller
		}
	}
	return access.Identity{}
}

// RuleFrom returns the access rule prefetched by the guard, or nil when the
// endpoint has no resource configured
func RuleFrom(c *gin.Context) *model.AccessRule {
	if v, ok := c.Get(ruleKey); ok {
		if rule, ok := v.(*model.AccessRule); ok {
			return rule
		}
	}
	return nil
}
