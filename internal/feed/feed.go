// Package feed derives the ordered post views handed to callers: the
// caller-specific feed and the public post list.
package feed

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models/api_error"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/utils/utils_db"
)

type Composer struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Composer {
	return &Composer{db: db}
}

const postColumns = `
	SELECT p.id, p.user_id, u.username, p.content, p.photo_path, p.creation_date
	FROM posts p
	JOIN users u ON u.id = p.user_id
	`

// Compose returns every post authored by the caller or an account the
// caller follows, newest first. The secondary sort on id keeps
// equal-timestamp posts in a stable order between calls.
func (f *Composer) Compose(callerID uuid.UUID) ([]models.PostView, error) {
	exists, err := utils_db.UserExists(callerID, f.db)
	if err != nil {
		return nil, api_error.Store(err)
	}
	if !exists {
		return nil, api_error.NotFound("user not found")
	}

	query := postColumns + `
		WHERE p.user_id = $1
			OR p.user_id IN (SELECT followee_id FROM follows WHERE follower_id = $1)
		ORDER BY p.creation_date DESC, p.id DESC
		`

	posts := make([]models.PostView, 0)
	if err := f.db.Select(&posts, query, callerID); err != nil {
		return nil, api_error.Store(err)
	}

	if err := f.attachEngagement(posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// ListAll returns every post, newest first, with the same projection as
// Compose. Backs the unauthenticated post list.
func (f *Composer) ListAll() ([]models.PostView, error) {
	query := postColumns + "ORDER BY p.creation_date DESC, p.id DESC"

	posts := make([]models.PostView, 0)
	if err := f.db.Select(&posts, query); err != nil {
		return nil, api_error.Store(err)
	}

	if err := f.attachEngagement(posts); err != nil {
		return nil, err
	}

	return posts, nil
}

type membershipRow struct {
	PostID uuid.UUID `db:"post_id"`
	UserID uuid.UUID `db:"user_id"`
}

type commentRow struct {
	PostID uuid.UUID `db:"post_id"`
	models.CommentView
}

// attachEngagement batch-loads the like/save sets and comment lists for
// the given posts, one query per collection.
func (f *Composer) attachEngagement(posts []models.PostView) error {
	for i := range posts {
		posts[i].Likes = make([]uuid.UUID, 0)
		posts[i].Saves = make([]uuid.UUID, 0)
		posts[i].Comments = make([]models.CommentView, 0)
	}

	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uuid.UUID, len(posts))
	index := make(map[uuid.UUID]int, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		index[p.ID] = i
	}

	likes, err := f.memberships("post_likes", postIDs)
	if err != nil {
		return err
	}
	for _, row := range likes {
		i := index[row.PostID]
		posts[i].Likes = append(posts[i].Likes, row.UserID)
	}

	saves, err := f.memberships("post_saves", postIDs)
	if err != nil {
		return err
	}
	for _, row := range saves {
		i := index[row.PostID]
		posts[i].Saves = append(posts[i].Saves, row.UserID)
	}

	commentQuery, args, err := sqlx.In(`
		SELECT c.post_id, c.id, c.user_id, u.username, c.comment, c.creation_date
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id IN (?)
		ORDER BY c.id ASC`, postIDs)
	if err != nil {
		return api_error.Store(err)
	}

	comments := make([]commentRow, 0)
	if err := f.db.Select(&comments, f.db.Rebind(commentQuery), args...); err != nil {
		return api_error.Store(err)
	}
	for _, row := range comments {
		i := index[row.PostID]
		posts[i].Comments = append(posts[i].Comments, row.CommentView)
	}

	return nil
}

func (f *Composer) memberships(table string, postIDs []uuid.UUID) ([]membershipRow, error) {
	query, args, err := sqlx.In(
		"SELECT post_id, user_id FROM "+table+" WHERE post_id IN (?)", postIDs)
	if err != nil {
		return nil, api_error.Store(err)
	}

	rows := make([]membershipRow, 0)
	if err := f.db.Select(&rows, f.db.Rebind(query), args...); err != nil {
		return nil, api_error.Store(err)
	}

	return rows, nil
}
