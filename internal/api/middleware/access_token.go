package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumelab/internal/auth"
)

// SubjectResolver 把令牌主体映射为内部用户 ID。
type SubjectResolver interface {
	EnsureUser(subject string) (uint, error)
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// AccessTokenMiddleware 校验访问令牌并将 userID 注入上下文。
func AccessTokenMiddleware(verifier *auth.Verifier, users SubjectResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c)
			return
		}

		rawToken := parts[1]
		if strings.TrimSpace(rawToken) == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := verifier.ValidateAccessToken(rawToken)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		userID, err := users.EnsureUser(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
