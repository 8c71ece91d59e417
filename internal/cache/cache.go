package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models"
)

// ErrMiss is returned when no cached value is available, including when
// no cache is configured at all.
var ErrMiss = errors.New("cache miss")

const (
	recentPostsKey = "recent_posts"
	recentPostsTTL = 5 * time.Minute
)

// Posts caches the fully-resolved public post list. A nil *Posts is a
// valid no-op cache, so callers never branch on whether redis is wired.
type Posts struct {
	client *redis.Client
}

func New(addr, password string) (*Posts, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}

	logrus.WithField("addr", addr).Info("connected to redis")
	return &Posts{client: client}, nil
}

func (p *Posts) RecentPosts() ([]models.PostView, error) {
	if p == nil {
		return nil, ErrMiss
	}

	result, err := p.client.Get(context.Background(), recentPostsKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var posts []models.PostView
	if err := json.Unmarshal([]byte(result), &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (p *Posts) SetRecentPosts(posts []models.PostView) error {
	if p == nil {
		return nil
	}

	postsJSON, err := json.Marshal(posts)
	if err != nil {
		return err
	}

	return p.client.Set(context.Background(), recentPostsKey, postsJSON, recentPostsTTL).Err()
}

// Invalidate drops the cached list; called after every post mutation.
func (p *Posts) Invalidate() error {
	if p == nil {
		return nil
	}

	return p.client.Del(context.Background(), recentPostsKey).Err()
}
