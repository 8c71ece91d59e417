package api_auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models/api_error"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/utils/utils_auth"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/utils/utils_db"
)

const pqUniqueViolation = "23505"

func Register(c *gin.Context) {
	db := c.MustGet("db").(*sqlx.DB)

	var newUser models.User
	if err := c.ShouldBindJSON(&newUser); err != nil {
		c.Error(api_error.Validation("username, email and password are required"))
		return
	}

	newUser.ID = uuid.New()

	hash, err := utils_auth.GenerateArgon2Hash(newUser.Password)
	if err != nil {
		c.Error(api_error.Store(err))
		return
	}
	newUser.Password = hash

	if err := utils_db.InsertUser(&newUser, db); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			c.Error(api_error.AlreadyExists("username or email already taken"))
			return
		}
		c.Error(api_error.Store(err))
		return
	}

	logrus.WithField("user_id", newUser.ID).Info("new user registered")

	accessToken, refreshToken, err := issueTokens(db, newUser.ID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":            newUser.ID,
		"username":      newUser.Username,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login accepts the username or email in the username field.
func Login(c *gin.Context) {
	db := c.MustGet("db").(*sqlx.DB)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api_error.Validation("username and password are required"))
		return
	}

	storedUser, err := utils_db.GetUserByLogin(&req.Username, db)
	if err != nil {
		// Same failure for unknown user and bad password.
		c.Error(api_error.Unauthorized("invalid username or password"))
		return
	}

	if ok := utils_auth.VerifyArgon2Hash(req.Password, storedUser.Password); !ok {
		c.Error(api_error.Unauthorized("invalid username or password"))
		return
	}

	accessToken, refreshToken, err := issueTokens(db, storedUser.ID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            storedUser.ID,
		"username":      storedUser.Username,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func Refresh(c *gin.Context) {
	db := c.MustGet("db").(*sqlx.DB)

	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api_error.Validation("refresh_token is required"))
		return
	}

	claims, err := utils_auth.ParseToken(req.RefreshToken)
	if err != nil {
		c.Error(api_error.Unauthorized("refresh token invalid"))
		return
	}

	// The account may be gone even though the token still verifies.
	ref, err := utils_db.GetUserRefByID(claims.UserID, db)
	if err != nil {
		c.Error(api_error.Unauthorized("please relogin"))
		return
	}

	if err := utils_auth.ValidateRefreshToken(db, claims.UserID, req.RefreshToken); err != nil {
		c.Error(api_error.Unauthorized("please relogin"))
		return
	}

	accessToken, err := utils_auth.GenerateAccessToken(claims.UserID)
	if err != nil {
		c.Error(api_error.Store(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"username":     ref.Username,
		"access_token": accessToken,
	})
}

func issueTokens(db *sqlx.DB, userID uuid.UUID) (string, string, error) {
	accessToken, err := utils_auth.GenerateAccessToken(userID)
	if err != nil {
		return "", "", api_error.Store(err)
	}

	refreshToken, err := utils_auth.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", api_error.Store(err)
	}

	hashedRefreshToken, err := utils_auth.HashRefreshToken(refreshToken)
	if err != nil {
		return "", "", api_error.Store(err)
	}

	expiration := time.Now().UTC().Add(utils_auth.JWT_REFRESH_TOKEN_EXPIRATION)
	if err := utils_db.InsertRefreshToken(userID, hashedRefreshToken, expiration, db); err != nil {
		return "", "", api_error.Store(err)
	}

	return accessToken, refreshToken, nil
}
