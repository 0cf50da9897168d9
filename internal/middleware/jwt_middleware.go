package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/duckwolf_api/internal/utils"
)

type JWTMiddleware struct {
	issuer *utils.TokenIssuer
}

func NewJWTMiddleware(issuer *utils.TokenIssuer) *JWTMiddleware {
	return &JWTMiddleware{issuer: issuer}
}

// Handle requires a Bearer token. EventSource cannot set headers, so the SSE
// stream may pass the token as ?token= instead.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			utils.Error(c, 401, utils.CodeUnauthorized, "Missing authorization header")
			c.Abort()
			return
		}

		claims, err := m.issuer.Validate(raw)
		if err != nil {
			utils.Error(c, 401, utils.CodeInvalidToken, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if token := c.Query("token"); token != "" {
		return token, true
	}
	return "", false
}
