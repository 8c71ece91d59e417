package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func PanicRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logrus.WithField("panic", err).
					WithField("stack", string(debug.Stack())).
					Error("panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"message": "unexpected server error occurred.",
				})
				c.Abort()
			}
		}()

		c.Next()
	}
}
