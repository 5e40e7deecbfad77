// File: internal/middleware/auth.go
package middleware

import (
	"strings"

	"climatework_backend/internal/common"
	"climatework_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// IdentityKey is the context key for storing the verified caller identity
	IdentityKey = "identity"
)

// AuthMiddleware creates a Gin middleware that verifies the caller's bearer
// credential and places the resolved identity in the request context.
func AuthMiddleware(verifier shared.TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
			logger.Debug("Authorization header format invalid", zap.String("header", authHeader))
			common.RespondWithError(c, common.ErrUnauthorized)
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("Token verification failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized)
			return
		}

		c.Set(IdentityKey, identity)

		logger.Debug("Caller authenticated successfully",
			zap.String("subjectUID", identity.SubjectUID),
		)

		c.Next()
	}
}

// GetIdentityFromContext retrieves the verified identity from the Gin context.
// Returns nil if the request is unauthenticated.
func GetIdentityFromContext(c *gin.Context) *shared.Identity {
	val, exists := c.Get(IdentityKey)
	if !exists {
		return nil
	}
	identity, ok := val.(*shared.Identity)
	if !ok {
		return nil
	}
	return identity
}
