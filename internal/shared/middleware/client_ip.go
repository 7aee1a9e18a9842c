package middleware

import (
	"github.com/gin-gonic/gin"

	"bookshelf-api/internal/shared/utils"
)

const clientIPKey = "client_ip"

// ClientIP resolves the caller's address once per request (proxy headers only from trusted proxies)
// so the access log and the rate limiter agree on it.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(clientIPKey, utils.ExtractClientIP(c))
		c.Next()
	}
}

// GetClientIP returns the address stored by ClientIP, falling back to gin's own resolution.
func GetClientIP(c *gin.Context) string {
	if ip := c.GetString(clientIPKey); ip != "" {
		return ip
	}
	return c.ClientIP()
}
