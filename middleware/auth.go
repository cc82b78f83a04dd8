package middleware

import (
	"net/http"

	"bookstore-service/common/logger"
	"bookstore-service/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const MsgNotAuthorized = "You are not authorized to access this page."

// RequireCapability lets the request through only when the session role
// grants the capability. Anyone else is sent to the catalog with a notice.
func RequireCapability(capability models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess.Identified() && sess.Role.Can(capability) {
			c.Next()
			return
		}

		logger.With(c.Request.Context()).Info("Capability denied",
			zap.String("capability", string(capability)),
			zap.String("role", sess.Role.String()),
			zap.String("path", c.Request.URL.Path),
		)
		sess.AddFlash(models.FlashDanger, MsgNotAuthorized)
		c.Redirect(http.StatusFound, "/")
		c.Abort()
	}
}

// RequireIdentified sends anonymous sessions to the login page. An empty
// message redirects without a notice.
func RequireIdentified(category, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess.Identified() {
			c.Next()
			return
		}
		if message != "" {
			sess.AddFlash(category, message)
		}
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}
