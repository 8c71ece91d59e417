package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/api/api_auth"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/api/api_dev"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/api/api_post"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/api/api_user"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/cache"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/config"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/database"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/directory"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/engage"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/events"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/feed"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/middleware"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/social"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/utils/utils_auth"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	utils_auth.Configure([]byte(cfg.JWTSecret))

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("connect database")
	}
	if err := database.Apply(db); err != nil {
		logrus.WithError(err).Fatal("apply migrations")
	}

	var bus events.Bus
	if cfg.NATSURL != "" {
		natsBus, err := events.ConnectNATS(cfg.NATSURL)
		if err != nil {
			logrus.WithError(err).Fatal("connect NATS")
		}
		defer natsBus.Close()
		bus = natsBus
	} else {
		logrus.Info("no NATS configured, using in-process event bus")
		bus = events.NewLocalBus()
	}

	var posts *cache.Posts
	if cfg.RedisAddr != "" {
		posts, err = cache.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logrus.WithError(err).Fatal("connect redis")
		}
	} else {
		logrus.Info("no redis configured, post list cache disabled")
	}

	graph := social.New(db, bus)
	engine := engage.New(db, bus, posts)
	composer := feed.New(db)
	dir := directory.New(db, graph)

	r := gin.New()
	r.Use(
		middleware.PanicRecovery(),
		middleware.RequestLogger(),
		middleware.CORS(cfg.CORSOrigins),
		middleware.ErrorHandler(),
		middleware.DBProvider(db),
	)

	r.Static("/uploads", cfg.UploadDir)

	{
		api := r.Group("/api")
		api.GET("/healthcheck", api_dev.HealthCheck)
		api.GET("/authcheck", middleware.Auth(), api_dev.AuthCheck)

		auth := api.Group("/auth")
		auth.POST("/register", api_auth.Register)
		auth.POST("/login", api_auth.Login)
		auth.POST("/refresh", api_auth.Refresh)

		postsGroup := api.Group("/posts")
		postsGroup.GET("", api_post.List(composer, posts))
		postsGroup.POST("", middleware.Auth(), api_post.Create(db, bus, posts, cfg.UploadDir))
		postsGroup.POST("/:id/like", middleware.Auth(), api_post.Like(engine))
		postsGroup.POST("/:id/unlike", middleware.Auth(), api_post.Unlike(engine))
		postsGroup.POST("/:id/save", middleware.Auth(), api_post.Save(engine))
		postsGroup.POST("/:id/unsave", middleware.Auth(), api_post.Unsave(engine))
		postsGroup.POST("/:id/comment", middleware.Auth(), api_post.Comment(engine))

		users := api.Group("/users", middleware.Auth())
		users.GET("/profile", api_user.Profile(dir))
		users.PUT("/profile", api_user.UpdateProfile(dir, cfg.UploadDir))
		users.GET("/profile/:id", api_user.PublicProfile(dir))
		users.GET("/search", api_user.Search(dir))
		users.GET("/feed", api_user.Feed(composer))
		users.POST("/:id/follow", api_user.Follow(graph))
		users.POST("/:id/unfollow", api_user.Unfollow(graph))
	}

	logrus.WithField("addr", cfg.Addr).Info("starting server")
	if err := r.Run(cfg.Addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
