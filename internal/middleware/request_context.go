package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	currentUserKey    = contextKey("currentUser")
	simplifiedViewKey = contextKey("simplifiedView")
)

// SimplifiedViewHeader requests the flattened, legal-ledger-only output
// representation used by spreadsheet integrations.
const SimplifiedViewHeader = "X-Simplified-View"

// RequestContextMiddleware threads the read-only per-request flags onto the
// request context. The authenticated user is set separately by the
// credential middleware.
func RequestContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.GetHeader(SimplifiedViewHeader), "true") {
			ctx := context.WithValue(c.Request.Context(), simplifiedViewKey, true)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// WithCurrentUser returns a context carrying the authenticated user.
func WithCurrentUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// GetCurrentUserFromCtx retrieves the authenticated user from the context.
func GetCurrentUserFromCtx(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(currentUserKey).(string)
	return user, ok && user != ""
}

// WithSimplifiedView returns a context carrying the simplified-view flag.
func WithSimplifiedView(ctx context.Context, simplified bool) context.Context {
	return context.WithValue(ctx, simplifiedViewKey, simplified)
}

// IsSimplifiedViewFromCtx reports whether the caller requested the
// simplified output representation.
func IsSimplifiedViewFromCtx(ctx context.Context) bool {
	simplified, ok := ctx.Value(simplifiedViewKey).(bool)
	return ok && simplified
}
