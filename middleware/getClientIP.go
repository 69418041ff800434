package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// AnonymousClient keys requests that carry no forwarded address.
const AnonymousClient = "anonymous"

// clientIDKey is where the resolved identity is stored on the gin context.
const clientIDKey = "clientID"

// ClientIdentity returns the first address in X-Forwarded-For, trimmed.
// Requests without one share the anonymous identity.
func ClientIdentity(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		// The header may contain a comma-separated list of IPs. Use the first one.
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return AnonymousClient
}

// GetClientID returns the identity stored by AssistantRateLimit.
func GetClientID(c *gin.Context) string {
	if id := c.GetString(clientIDKey); id != "" {
		return id
	}
	return ClientIdentity(c)
}
