// Package events carries change notifications between the write path and
// anything that wants to refresh a derived view, replacing ad-hoc shared
// listener state with an explicit subscribe/unsubscribe/emit contract.
package events

import (
	"github.com/google/uuid"
)

const (
	SubjectPostCreated   = "post.created"
	SubjectPostLiked     = "post.liked"
	SubjectPostUnliked   = "post.unliked"
	SubjectPostSaved     = "post.saved"
	SubjectPostUnsaved   = "post.unsaved"
	SubjectPostCommented = "post.commented"
	SubjectFollowed      = "graph.followed"
	SubjectUnfollowed    = "graph.unfollowed"
	SubjectFeedChanged   = "feed.changed"
)

type Subscription interface {
	Unsubscribe() error
}

type Bus interface {
	Publish(subject string, payload interface{}) error
	Subscribe(subject string, handler func(data []byte)) (Subscription, error)
}

type PostEvent struct {
	PostID   uuid.UUID `json:"post_id"`
	AuthorID uuid.UUID `json:"author_id"`
}

type EngagementEvent struct {
	PostID uuid.UUID `json:"post_id"`
	UserID uuid.UUID `json:"user_id"`
}

type FollowEvent struct {
	FollowerID uuid.UUID `json:"follower_id"`
	FolloweeID uuid.UUID `json:"followee_id"`
}

type FeedChangedEvent struct {
	UserID uuid.UUID `json:"user_id"`
}
