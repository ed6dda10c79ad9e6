package middleware

import (
	"strings"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/logger"
	"github.com/brokeradda/adda-admin/internal/session"
	"github.com/gin-gonic/gin"
)

// RequireSession admits requests carrying the current admin token, either
// as the session cookie or as a Bearer Authorization header.
func RequireSession(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			if cookie, err := c.Cookie(sess.CookieName()); err == nil {
				token = cookie
			}
		}

		if token == "" || !sess.Matches(token) {
			logger.Ctx(c.Request.Context()).Debug("session rejected",
				logger.Bool("token_present", token != ""),
				logger.Bool("logged_in", sess.LoggedIn()),
			)
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			c.Abort()
			return
		}

		c.Set("admin_session", true)
		if id := sess.AdminID(); id != "" {
			c.Request = c.Request.WithContext(logger.WithAdminID(c.Request.Context(), id))
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
