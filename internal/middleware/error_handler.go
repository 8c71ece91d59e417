package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models/api_error"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors[0]
			api_error.ToResponse(c, err.Err)
		}
	}
}
