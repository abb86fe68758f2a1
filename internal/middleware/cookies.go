package middleware

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the opaque session token
const SessionCookieName = "sessionid"

// cookiePolicy picks SameSite/Secure for the environment.
// Production (cross-origin): SameSiteNoneMode + Secure=true
// Development (same-site):   SameSiteLaxMode  + Secure=false
func cookiePolicy() (http.SameSite, bool) {
	if os.Getenv("GIN_MODE") == "release" || os.Getenv("RENDER") != "" {
		return http.SameSiteNoneMode, true
	}
	return http.SameSiteLaxMode, false
}

// SetSessionCookie sets the session token as an HttpOnly cookie that lives
// exactly as long as the session itself
func SetSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	sameSite, secure := cookiePolicy()
	c.SetSameSite(sameSite)

	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", secure, true)
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(c *gin.Context) {
	sameSite, secure := cookiePolicy()
	c.SetSameSite(sameSite)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
