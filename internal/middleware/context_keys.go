package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Keys used to store the authenticated principal.
const (
	userIDKey  = contextKey("userID")
	isAdminKey = contextKey("isAdmin")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userID, ok := c.Request.Context().Value(userIDKey).(string)
		return userID, ok && userID != ""
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// IsAdminFromContext reports whether the authenticated user carries the admin role.
func IsAdminFromContext(c *gin.Context) bool {
	isAdmin, _ := c.Request.Context().Value(isAdminKey).(bool)
	return isAdmin
}

// WithPrincipal stores the authenticated user in ctx.
func WithPrincipal(ctx context.Context, userID string, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, isAdminKey, isAdmin)
}

// GetUserIDFromCtx returns the authenticated user stored in a standard context, or "".
func GetUserIDFromCtx(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
