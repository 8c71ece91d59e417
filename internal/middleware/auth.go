package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models/api_error"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/utils/utils_auth"
)

// Auth resolves the bearer token to a caller identity and stores it on
// the context as UserID. The embedded identity of a verified token is
// trusted unconditionally.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Error(api_error.Unauthorized("authorization header missing"))
			c.Abort()
			return
		}

		accessToken := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils_auth.ParseToken(accessToken)
		if err != nil {
			c.Header("X-RefreshToken", "true")
			c.Error(api_error.Unauthorized("please relogin"))
			c.Abort()
			return
		}

		c.Set("UserID", claims.UserID)
		c.Next()
	}
}
