// Package social maintains the directed follow relation between users.
// An edge is a single follows row, so the following/followers views can
// never disagree about whether an edge exists.
package social

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/events"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models/api_error"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/utils/utils_db"
)

type Graph struct {
	db  *sqlx.DB
	bus events.Bus
}

func New(db *sqlx.DB, bus events.Bus) *Graph {
	return &Graph{db: db, bus: bus}
}

// Follow inserts the follower -> followee edge. Self-follows are
// rejected, duplicate follows are reported as already existing, and the
// duplicate check plus insert run in one transaction so a concurrent
// caller cannot slip between them.
func (g *Graph) Follow(followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return api_error.InvalidOperation("cannot follow yourself")
	}

	if err := g.ensureUsers(followerID, followeeID); err != nil {
		return err
	}

	tx, err := g.db.Beginx()
	if err != nil {
		return api_error.Store(err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.Get(&exists,
		"SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)",
		followerID, followeeID)
	if err != nil {
		return api_error.Store(err)
	}
	if exists {
		return api_error.AlreadyExists("already following")
	}

	_, err = tx.Exec(
		"INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2)",
		followerID, followeeID)
	if err != nil {
		return api_error.Store(err)
	}

	if err := tx.Commit(); err != nil {
		return api_error.Store(err)
	}

	g.emit(events.SubjectFollowed, followerID, followeeID)
	return nil
}

// Unfollow removes the edge unconditionally; removing an absent edge is
// a silent no-op.
func (g *Graph) Unfollow(followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return api_error.InvalidOperation("cannot unfollow yourself")
	}

	if err := g.ensureUsers(followerID, followeeID); err != nil {
		return err
	}

	_, err := g.db.Exec(
		"DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2",
		followerID, followeeID)
	if err != nil {
		return api_error.Store(err)
	}

	g.emit(events.SubjectUnfollowed, followerID, followeeID)
	return nil
}

func (g *Graph) FollowingIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	return g.edgeIDs("SELECT followee_id FROM follows WHERE follower_id = $1 ORDER BY creation_date", userID)
}

func (g *Graph) FollowerIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	return g.edgeIDs("SELECT follower_id FROM follows WHERE followee_id = $1 ORDER BY creation_date", userID)
}

func (g *Graph) edgeIDs(query string, userID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := utils_db.FetchAll[uuid.UUID](g.db, query, userID)
	if err != nil {
		return nil, api_error.Store(err)
	}
	return ids, nil
}

func (g *Graph) ensureUsers(ids ...uuid.UUID) error {
	for _, id := range ids {
		exists, err := utils_db.UserExists(id, g.db)
		if err != nil {
			return api_error.Store(err)
		}
		if !exists {
			return api_error.NotFound("user not found")
		}
	}
	return nil
}

func (g *Graph) emit(subject string, followerID, followeeID uuid.UUID) {
	if g.bus == nil {
		return
	}

	if err := g.bus.Publish(subject, events.FollowEvent{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}); err != nil {
		logrus.WithError(err).WithField("subject", subject).Warn("publish follow event")
	}

	// A follow change reshapes the follower's feed.
	if err := g.bus.Publish(events.SubjectFeedChanged, events.FeedChangedEvent{UserID: followerID}); err != nil {
		logrus.WithError(err).Warn("publish feed change")
	}
}
