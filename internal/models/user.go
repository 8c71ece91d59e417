package models

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Username string    `db:"username" json:"username" binding:"required"`
	Email    string    `db:"email" json:"email" binding:"required"`
	Password string    `db:"password_hash" json:"password" binding:"required"`
}

// UserRef is the display-safe projection of a user embedded in posts,
// comments and search results. It never carries credential data.
type UserRef struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Username string    `db:"username" json:"username"`
}

type Profile struct {
	Bio         string  `db:"bio" json:"bio"`
	AvatarPath  *string `db:"avatar_path" json:"avatar"`
	Location    string  `db:"location" json:"location"`
	TripCount   int     `db:"trip_count" json:"trips"`
	ReviewCount int     `db:"review_count" json:"reviews"`
	YearCount   int     `db:"year_count" json:"years"`
}

type PublicProfile struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Bio       string      `json:"bio"`
	Avatar    *string     `json:"avatar"`
	Location  string      `json:"location"`
	Trips     int         `json:"trips"`
	Reviews   int         `json:"reviews"`
	Years     int         `json:"years"`
	Followers []uuid.UUID `json:"followers"`
	Following []uuid.UUID `json:"following"`
}

type SearchResult struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Username   string    `db:"username" json:"username"`
	Email      string    `db:"email" json:"email"`
	Bio        string    `db:"bio" json:"bio"`
	AvatarPath *string   `db:"avatar_path" json:"avatar"`
}
