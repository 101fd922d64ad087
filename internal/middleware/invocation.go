package middleware

import (
	"errors"
	"net/http"
	"strings"

	"registeruser/internal/pkg/jwt"
	"registeruser/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InvocationAuth protects the function endpoint with an HS256 bearer token
// issued by the hosting runtime for projectID.
func InvocationAuth(tokens *jwt.Service, projectID string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logAuthFailure(c, log, http.StatusUnauthorized, "missing_auth")
			response.AbortFailure(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logAuthFailure(c, log, http.StatusUnauthorized, "invalid_auth_format")
			response.AbortFailure(c, http.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := tokens.ValidateForProject(strings.TrimSpace(parts[1]), projectID)
		if errors.Is(err, jwt.ErrProjectMismatch) {
			logAuthFailure(c, log, http.StatusForbidden, "project_mismatch")
			response.AbortFailure(c, http.StatusForbidden, "Token issued for another project")
			return
		}
		if err != nil {
			logAuthFailure(c, log, http.StatusUnauthorized, "invalid_token")
			response.AbortFailure(c, http.StatusUnauthorized, "Invalid invocation token")
			return
		}

		c.Set("invocation_subject", claims.Subject)
		c.Next()
	}
}

func logAuthFailure(c *gin.Context, log *zap.Logger, status int, reason string) {
	log.Warn("invocation_auth",
		zap.Int("status", status),
		zap.String("request_id", requestID(c)),
		zap.String("reason", reason),
	)
}
