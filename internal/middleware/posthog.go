package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// eventName turns a route template into a PostHog event name,
// e.g. "/api/v1/scenarios/:scenario_id/summary" -> "api_v1_scenarios_summary".
func eventName(fullPath string) string {
	parts := strings.Split(strings.Trim(fullPath, "/"), "/")
	kept := parts[:0]
	for _, p := range parts {
		if p == "" || strings.HasPrefix(p, ":") {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "_")
}

// EventTracker is satisfied by *utils.PosthogClientWrapper.
type EventTracker interface {
	IsInitialized() bool
	Enqueue(distinctID string, event string, properties map[string]any)
}

// PosthogMiddleware tracks successful API calls of authenticated users.
// The scenario and requested display currency are attached as properties.
func PosthogMiddleware(posthogClient EventTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}
		name := eventName(c.FullPath())
		if name == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if scenarioID := c.Param("scenario_id"); scenarioID != "" {
			props["scenario_id"] = scenarioID
		}
		if currency := c.Query("currency"); currency != "" {
			props["display_currency"] = strings.ToUpper(currency)
		}
		posthogClient.Enqueue(userID, name, props)
	}
}
