package api_post

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/api/api_files"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/cache"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/engage"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/events"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/feed"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models/api_error"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/utils/utils_db"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/utils/utils_handler"
)

// Create accepts a multipart form with a text field and/or a photo file.
// A post with neither is rejected.
func Create(db *sqlx.DB, bus events.Bus, posts *cache.Posts, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := utils_handler.GetUserID(c)

		text := strings.TrimSpace(c.PostForm("text"))

		photoPath, err := api_files.SaveUpload(c, "photo", uploadDir)
		if err != nil {
			c.Error(err)
			return
		}

		if text == "" && photoPath == "" {
			c.Error(api_error.Validation("text or photo is required"))
			return
		}

		post := models.Post{
			ID:           uuid.New(),
			UserID:       userID,
			CreationDate: time.Now().UTC(),
		}
		if text != "" {
			post.Content = &text
		}
		if photoPath != "" {
			post.PhotoPath = &photoPath
		}

		if err := utils_db.InsertPost(&post, db); err != nil {
			c.Error(api_error.Store(err))
			return
		}

		if err := posts.Invalidate(); err != nil {
			logrus.WithError(err).Warn("invalidate post cache")
		}
		if bus != nil {
			if err := bus.Publish(events.SubjectPostCreated, events.PostEvent{
				PostID:   post.ID,
				AuthorID: userID,
			}); err != nil {
				logrus.WithError(err).Warn("publish post created")
			}
			if err := bus.Publish(events.SubjectFeedChanged, events.FeedChangedEvent{UserID: userID}); err != nil {
				logrus.WithError(err).Warn("publish feed change")
			}
		}

		c.JSON(http.StatusCreated, post)
	}
}

// List returns every post, newest first, serving from the cache when it
// holds a fresh copy.
func List(composer *feed.Composer, posts *cache.Posts) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cached, err := posts.RecentPosts(); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}

		all, err := composer.ListAll()
		if err != nil {
			c.Error(err)
			return
		}

		if err := posts.SetRecentPosts(all); err != nil {
			logrus.WithError(err).Warn("cache post list")
		}

		c.JSON(http.StatusOK, all)
	}
}

func Like(engine *engage.Engine) gin.HandlerFunc {
	return toggleHandler(engine.Like, "likes")
}

func Unlike(engine *engage.Engine) gin.HandlerFunc {
	return toggleHandler(engine.Unlike, "likes")
}

func Save(engine *engage.Engine) gin.HandlerFunc {
	return toggleHandler(engine.Save, "saves")
}

func Unsave(engine *engage.Engine) gin.HandlerFunc {
	return toggleHandler(engine.Unsave, "saves")
}

func toggleHandler(op func(postID, userID uuid.UUID) ([]uuid.UUID, error), key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := utils_handler.GetUserID(c)

		postID, err := utils_handler.GetParamID(c, "id")
		if err != nil {
			c.Error(err)
			return
		}

		members, err := op(postID, userID)
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{key: members})
	}
}

type commentRequest struct {
	Text string `json:"text"`
}

func Comment(engine *engage.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := utils_handler.GetUserID(c)

		postID, err := utils_handler.GetParamID(c, "id")
		if err != nil {
			c.Error(err)
			return
		}

		req, err := utils_handler.GetObj[commentRequest](c)
		if err != nil {
			c.Error(api_error.Validation("comment text required"))
			return
		}

		comments, err := engine.AddComment(postID, userID, req.Text)
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"comments": comments})
	}
}
