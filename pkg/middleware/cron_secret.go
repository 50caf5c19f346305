package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"menteviva/pkg/utils"
)

const CronSecretHeader = "X-Cron-Secret"

// CronSecretMiddleware guards internal job endpoints. An empty secret
// disables the routes entirely.
func CronSecretMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			utils.RespondError(c, http.StatusServiceUnavailable, "Internal jobs are not configured")
			c.Abort()
			return
		}
		got := c.GetHeader(CronSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid cron secret")
			c.Abort()
			return
		}
		c.Next()
	}
}
