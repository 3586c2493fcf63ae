package handler

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func isValidEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// parseBusinessID turns the optional business_id form field into a UUID.
// Empty means a site not linked to a business yet.
func parseBusinessID(raw string) (*uuid.UUID, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// isDuplicateKey matches unique-constraint violations across the postgres
// and sqlite drivers, which word them differently.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

func defaultWebsiteSource(source string) string {
	if strings.TrimSpace(source) == "" {
		return "unknown"
	}
	return source
}

// clientIP prefers the forwarding header set by the CDN in front of the
// mini websites, falling back to the direct peer address.
func clientIP(c *fiber.Ctx) string {
	if ip := c.Get("X-Forwarded-For"); ip != "" {
		if i := strings.IndexByte(ip, ','); i >= 0 {
			ip = ip[:i]
		}
		return strings.TrimSpace(ip)
	}
	return c.IP()
}
