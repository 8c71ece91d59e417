package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	Content      *string   `db:"content" json:"text"`
	PhotoPath    *string   `db:"photo_path" json:"photo"`
	CreationDate time.Time `db:"creation_date" json:"created_at"`
}

// PostView is a post as handed to callers: the author resolved to
// id + username, engagement sets as user id lists, comments in
// insertion order.
type PostView struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	UserID       uuid.UUID     `db:"user_id" json:"user_id"`
	Username     string        `db:"username" json:"username"`
	Content      *string       `db:"content" json:"text"`
	PhotoPath    *string       `db:"photo_path" json:"photo"`
	CreationDate time.Time     `db:"creation_date" json:"created_at"`
	Likes        []uuid.UUID   `json:"likes"`
	Saves        []uuid.UUID   `json:"saves"`
	Comments     []CommentView `json:"comments"`
}

type Comment struct {
	ID           int64     `db:"id" json:"id"`
	PostID       uuid.UUID `db:"post_id" json:"post_id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	Comment      string    `db:"comment" json:"text"`
	CreationDate time.Time `db:"creation_date" json:"created_at"`
}

type CommentView struct {
	ID           int64     `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	Username     string    `db:"username" json:"username"`
	Comment      string    `db:"comment" json:"text"`
	CreationDate time.Time `db:"creation_date" json:"created_at"`
}
