package api_user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/api/api_files"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/directory"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/feed"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/social"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/utils/utils_handler"
)

func Profile(dir *directory.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := utils_handler.GetUserID(c)

		profile, err := dir.OwnProfile(userID)
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}

// UpdateProfile accepts a multipart form with an optional bio field and
// an optional avatar file. A new avatar replaces the stored one and the
// prior upload is removed from disk.
func UpdateProfile(dir *directory.Directory, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := utils_handler.GetUserID(c)

		var bio *string
		if v, ok := c.GetPostForm("bio"); ok {
			bio = &v
		}

		var avatarPath *string
		if path, err := api_files.SaveUpload(c, "avatar", uploadDir); err != nil {
			c.Error(err)
			return
		} else if path != "" {
			avatarPath = &path
		}

		profile, oldAvatar, err := dir.UpdateProfile(userID, bio, avatarPath)
		if err != nil {
			c.Error(err)
			return
		}

		if oldAvatar != nil {
			api_files.Remove(*oldAvatar, uploadDir)
		}

		c.JSON(http.StatusOK, gin.H{
			"bio":    profile.Bio,
			"avatar": profile.AvatarPath,
		})
	}
}

func Search(dir *directory.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := utils_handler.GetUserID(c)

		results, err := dir.Search(userID, c.Query("q"))
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, results)
	}
}

func Follow(graph *social.Graph) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := utils_handler.GetUserID(c)

		targetID, err := utils_handler.GetParamID(c, "id")
		if err != nil {
			c.Error(err)
			return
		}

		if err := graph.Follow(userID, targetID); err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Followed successfully"})
	}
}

func Unfollow(graph *social.Graph) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := utils_handler.GetUserID(c)

		targetID, err := utils_handler.GetParamID(c, "id")
		if err != nil {
			c.Error(err)
			return
		}

		if err := graph.Unfollow(userID, targetID); err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Unfollowed successfully"})
	}
}

func Feed(composer *feed.Composer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := utils_handler.GetUserID(c)

		posts, err := composer.Compose(userID)
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, posts)
	}
}

func PublicProfile(dir *directory.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, err := utils_handler.GetParamID(c, "id")
		if err != nil {
			c.Error(err)
			return
		}

		profile, err := dir.PublicProfile(targetID)
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}
