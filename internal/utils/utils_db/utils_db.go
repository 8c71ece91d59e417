package utils_db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models"
)

func FetchOne[T any](db *sqlx.DB, query string, args ...interface{}) (T, error) {
	var obj T
	err := db.Get(&obj, query, args...)
	return obj, err
}

// FetchAll always hands back a non-nil slice so empty results render as
// [] rather than null.
func FetchAll[T any](db *sqlx.DB, query string, args ...interface{}) ([]T, error) {
	objs := make([]T, 0)
	err := db.Select(&objs, query, args...)
	return objs, err
}

func GetUserByLogin(login *string, db *sqlx.DB) (models.User, error) {
	return FetchOne[models.User](db,
		"SELECT id, username, email, password_hash FROM users WHERE username = $1 OR email = $1", *login)
}

func GetUserRefByID(userID uuid.UUID, db *sqlx.DB) (models.UserRef, error) {
	return FetchOne[models.UserRef](db, "SELECT id, username FROM users WHERE id = $1", userID)
}

func UserExists(userID uuid.UUID, db *sqlx.DB) (bool, error) {
	return FetchOne[bool](db, "SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", userID)
}

func PostExists(postID uuid.UUID, db *sqlx.DB) (bool, error) {
	return FetchOne[bool](db, "SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)", postID)
}

func InsertUser(user *models.User, db *sqlx.DB) error {
	_, err := db.Exec(
		"INSERT INTO users(id, username, email, password_hash, creation_date) VALUES ($1, $2, $3, $4, $5)",
		user.ID,
		user.Username,
		user.Email,
		user.Password,
		time.Now().UTC(),
	)
	return err
}

func InsertRefreshToken(userID uuid.UUID, refreshTokenHash string, expirationDate time.Time, db *sqlx.DB) error {
	_, err := db.Exec(
		"INSERT INTO refresh_tokens(user_id, token_hash, expiration_date) VALUES ($1, $2, $3)",
		userID,
		refreshTokenHash,
		expirationDate,
	)
	return err
}

func InsertPost(post *models.Post, db *sqlx.DB) error {
	_, err := db.Exec(
		"INSERT INTO posts(id, user_id, content, photo_path, creation_date) VALUES ($1, $2, $3, $4, $5)",
		post.ID,
		post.UserID,
		post.Content,
		post.PhotoPath,
		post.CreationDate,
	)
	return err
}

// InsertComment appends a comment; the serial id is assigned by the
// store and fixes the comment's position.
func InsertComment(comment *models.Comment, db *sqlx.DB) error {
	_, err := db.Exec(
		"INSERT INTO comments (post_id, user_id, comment, creation_date) VALUES ($1, $2, $3, $4)",
		comment.PostID,
		comment.UserID,
		comment.Comment,
		comment.CreationDate,
	)
	return err
}
