package utils_handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models/api_error"
)

func GetUserID(c *gin.Context) uuid.UUID {
	return c.MustGet("UserID").(uuid.UUID)
}

func GetObj[T any](c *gin.Context) (T, error) {
	var obj T
	err := c.ShouldBindJSON(&obj)
	return obj, err
}

// GetParamID parses a uuid path parameter, rejecting malformed values
// before they reach the store.
func GetParamID(c *gin.Context, name string) (uuid.UUID, error) {
	raw := c.Param(name)
	if raw == "" {
		return uuid.Nil, api_error.Validation("missing " + name)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, api_error.Validation("invalid " + name)
	}

	return id, nil
}
