package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Membership collections (likes, saves, follow edges) live in join
// tables keyed by both sides, so duplicate membership is impossible and
// a follow edge is a single row read from either direction.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            uuid PRIMARY KEY,
		username      text NOT NULL UNIQUE,
		email         text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		name          text NOT NULL DEFAULT '',
		bio           text NOT NULL DEFAULT '',
		avatar_path   text,
		location      text NOT NULL DEFAULT '',
		trip_count    integer NOT NULL DEFAULT 0,
		review_count  integer NOT NULL DEFAULT 0,
		year_count    integer NOT NULL DEFAULT 0,
		creation_date timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		user_id         uuid NOT NULL REFERENCES users(id),
		token_hash      text NOT NULL,
		expiration_date timestamptz NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS follows (
		follower_id   uuid NOT NULL REFERENCES users(id),
		followee_id   uuid NOT NULL REFERENCES users(id),
		creation_date timestamptz NOT NULL DEFAULT now(),
		PRIMARY KEY (follower_id, followee_id),
		CHECK (follower_id <> followee_id)
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id            uuid PRIMARY KEY,
		user_id       uuid NOT NULL REFERENCES users(id),
		content       text,
		photo_path    text,
		creation_date timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS post_likes (
		post_id uuid NOT NULL REFERENCES posts(id),
		user_id uuid NOT NULL REFERENCES users(id),
		PRIMARY KEY (post_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS post_saves (
		post_id uuid NOT NULL REFERENCES posts(id),
		user_id uuid NOT NULL REFERENCES users(id),
		PRIMARY KEY (post_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id            bigserial PRIMARY KEY,
		post_id       uuid NOT NULL REFERENCES posts(id),
		user_id       uuid NOT NULL REFERENCES users(id),
		comment       text NOT NULL,
		creation_date timestamptz NOT NULL DEFAULT now()
	)`,
}

// Apply runs every migration statement in order.
func Apply(db *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
