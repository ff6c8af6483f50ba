package middleware

import (
	"net/http"
	"strings"

	providerRepo "slotwise/database/repository/provider"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthProviderMiddleware validates the JWT token for provider-scoped
// endpoints and stores the provider ID on the context.
func JWTAuthProviderMiddleware(repo providerRepo.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		providerID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || providerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if _, err := repo.GetByID(c.Request.Context(), providerID); err != nil {
			logger.Warn("Provider not found when validating token",
				zap.String("providerID", providerID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("providerID", providerID)
		c.Next()
	}
}
