package utils

import (
	"net"

	"github.com/gin-gonic/gin"
)

// ExtractClientIP returns the real client IP address.
//
// Forwarding headers (X-Forwarded-For, X-Real-IP) are only honoured when the
// direct peer is one of the engine's trusted proxies; otherwise RemoteAddr wins.
func ExtractClientIP(c *gin.Context) string {
	if ip := c.ClientIP(); isValidIP(ip) {
		return ip
	}

	// RemoteAddr format: "IP:port" or "[IPv6]:port"
	remoteAddr := c.Request.RemoteAddr
	ip, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		ip = remoteAddr
	}
	if isValidIP(ip) {
		return ip
	}

	return "127.0.0.1"
}

func isValidIP(ip string) bool {
	return ip != "" && net.ParseIP(ip) != nil
}

// IsPrivateIP reports loopback and RFC 1918 addresses.
func IsPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return parsed.IsLoopback() || parsed.IsPrivate()
}
