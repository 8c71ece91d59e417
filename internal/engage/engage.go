// Package engage implements the mutation rules for likes, saves and
// comments on a post.
package engage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/cache"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/events"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models/api_error"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/utils/utils_db"
)

type Engine struct {
	db    *sqlx.DB
	bus   events.Bus
	posts *cache.Posts
}

func New(db *sqlx.DB, bus events.Bus, posts *cache.Posts) *Engine {
	return &Engine{db: db, bus: bus, posts: posts}
}

// Like adds the user to the post's like set and returns the resulting
// set. Liking twice leaves a single membership.
func (e *Engine) Like(postID, userID uuid.UUID) ([]uuid.UUID, error) {
	return e.toggleOn("post_likes", events.SubjectPostLiked, postID, userID)
}

// Unlike removes the user from the like set; removing an absent member
// is a silent no-op. Returns the resulting set.
func (e *Engine) Unlike(postID, userID uuid.UUID) ([]uuid.UUID, error) {
	return e.toggleOff("post_likes", events.SubjectPostUnliked, postID, userID)
}

func (e *Engine) Save(postID, userID uuid.UUID) ([]uuid.UUID, error) {
	return e.toggleOn("post_saves", events.SubjectPostSaved, postID, userID)
}

func (e *Engine) Unsave(postID, userID uuid.UUID) ([]uuid.UUID, error) {
	return e.toggleOff("post_saves", events.SubjectPostUnsaved, postID, userID)
}

func (e *Engine) toggleOn(table, subject string, postID, userID uuid.UUID) ([]uuid.UUID, error) {
	if err := e.ensurePost(postID); err != nil {
		return nil, err
	}

	// ON CONFLICT keeps concurrent members: two users toggling at once
	// both end up in the set, and a repeat toggle changes nothing.
	_, err := e.db.Exec(fmt.Sprintf(
		"INSERT INTO %s (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING", table),
		postID, userID)
	if err != nil {
		return nil, api_error.Store(err)
	}

	return e.finishToggle(table, subject, postID, userID)
}

func (e *Engine) toggleOff(table, subject string, postID, userID uuid.UUID) ([]uuid.UUID, error) {
	if err := e.ensurePost(postID); err != nil {
		return nil, err
	}

	_, err := e.db.Exec(fmt.Sprintf(
		"DELETE FROM %s WHERE post_id = $1 AND user_id = $2", table),
		postID, userID)
	if err != nil {
		return nil, api_error.Store(err)
	}

	return e.finishToggle(table, subject, postID, userID)
}

func (e *Engine) finishToggle(table, subject string, postID, userID uuid.UUID) ([]uuid.UUID, error) {
	members, err := e.members(table, postID)
	if err != nil {
		return nil, err
	}

	if err := e.posts.Invalidate(); err != nil {
		logrus.WithError(err).Warn("invalidate post cache")
	}
	e.emit(subject, postID, userID)

	return members, nil
}

func (e *Engine) members(table string, postID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := utils_db.FetchAll[uuid.UUID](e.db, fmt.Sprintf(
		"SELECT user_id FROM %s WHERE post_id = $1", table), postID)
	if err != nil {
		return nil, api_error.Store(err)
	}
	return ids, nil
}

// AddComment appends a comment to the post and returns the full comment
// sequence in insertion order, authors resolved to id + username.
func (e *Engine) AddComment(postID, userID uuid.UUID, text string) ([]models.CommentView, error) {
	if strings.TrimSpace(text) == "" {
		return nil, api_error.Validation("comment text required")
	}

	if err := e.ensurePost(postID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		PostID:       postID,
		UserID:       userID,
		Comment:      text,
		CreationDate: time.Now().UTC(),
	}
	if err := utils_db.InsertComment(&comment, e.db); err != nil {
		return nil, api_error.Store(err)
	}

	comments, err := e.Comments(postID)
	if err != nil {
		return nil, err
	}

	if err := e.posts.Invalidate(); err != nil {
		logrus.WithError(err).Warn("invalidate post cache")
	}
	e.emit(events.SubjectPostCommented, postID, userID)

	return comments, nil
}

// Comments returns the post's comments in insertion order.
func (e *Engine) Comments(postID uuid.UUID) ([]models.CommentView, error) {
	query := `
		SELECT c.id, c.user_id, u.username, c.comment, c.creation_date
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.id ASC
		`

	comments := make([]models.CommentView, 0)
	if err := e.db.Select(&comments, query, postID); err != nil {
		return nil, api_error.Store(err)
	}

	return comments, nil
}

func (e *Engine) ensurePost(postID uuid.UUID) error {
	exists, err := utils_db.PostExists(postID, e.db)
	if err != nil {
		return api_error.Store(err)
	}
	if !exists {
		return api_error.NotFound("post not found")
	}
	return nil
}

func (e *Engine) emit(subject string, postID, userID uuid.UUID) {
	if e.bus == nil {
		return
	}

	if err := e.bus.Publish(subject, events.EngagementEvent{
		PostID: postID,
		UserID: userID,
	}); err != nil {
		logrus.WithError(err).WithField("subject", subject).Warn("publish engagement event")
	}
}
