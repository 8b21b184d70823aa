package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	controller "connectly/internal/controller/http"
	"connectly/internal/repo/feedcache"
	"connectly/internal/repo/persistent"
	"connectly/internal/usecase"
	"connectly/pkg/cache"
	"connectly/pkg/config"
	"connectly/pkg/database"
	"connectly/pkg/jwt"
	"connectly/pkg/logger"
	"connectly/pkg/middleware"
	"connectly/pkg/queue"
	"connectly/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "connectly/docs"
)

// Run wires the application together and serves HTTP until SIGINT or
// SIGTERM. Postgres and Redis are required; the message broker and
// avatar storage are optional and their absence only disables the
// features built on them.
func Run(cfg *config.Config, log *logger.Logger) error {
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()

	var notifier usecase.Notifier
	rabbitURL := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser, cfg.RabbitMQPassword, cfg.RabbitMQHost, cfg.RabbitMQPort)
	publisher, err := queue.NewPublisher(rabbitURL)
	if err != nil {
		log.Warn("rabbitmq unavailable, notifications disabled: %v", err)
	} else {
		defer publisher.Close()
		notifier = publisher
	}

	var avatars usecase.AvatarStore
	if cfg.AWSAccessKeyID != "" {
		s3Client, err := s3.NewClient(cfg)
		if err != nil {
			log.Warn("s3 unavailable, avatar uploads disabled: %v", err)
		} else {
			if err := s3Client.EnsureBucket(); err != nil {
				log.Warn("ensure avatar bucket: %v", err)
			}
			avatars = s3Client
		}
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	userRepo := persistent.NewUserRepository(db)
	postRepo := persistent.NewPostRepository(db)
	commentRepo := persistent.NewCommentRepository(db)
	likeRepo := persistent.NewLikeRepository(db)
	followRepo := persistent.NewFollowRepository(db)
	feedRepo := persistent.NewFeedRepository(db)
	feedCache := feedcache.NewRedisCache(redisClient, time.Duration(cfg.FeedCacheTTLSecs)*time.Second)

	authUC := usecase.NewAuthUseCase(userRepo, followRepo, avatars, jwtService, log)
	postUC := usecase.NewPostUseCase(postRepo, notifier, log)
	interactionUC := usecase.NewInteractionUseCase(likeRepo, commentRepo, postRepo, notifier, log)
	feedUC := usecase.NewFeedUseCase(followRepo, feedRepo, feedCache, log, cfg.FeedPageSize)

	authHandler := controller.NewAuthHandler(authUC, log)
	postHandler := controller.NewPostHandler(postUC, log)
	interactionHandler := controller.NewInteractionHandler(interactionUC, log)
	feedHandler := controller.NewFeedHandler(feedUC, log)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		authorized := api.Group("/")
		authorized.Use(middleware.AuthMiddleware(jwtService))
		authorized.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
		{
			authorized.GET("/feed", feedHandler.GetFeed)

			authorized.GET("/users", authHandler.ListUsers)
			authorized.GET("/users/me", authHandler.Profile)
			authorized.POST("/users/avatar", authHandler.UploadAvatar)
			authorized.POST("/users/:id/follow", authHandler.Follow)
			authorized.DELETE("/users/:id/follow", authHandler.Unfollow)

			authorized.POST("/posts", postHandler.CreatePost)
			authorized.GET("/posts", postHandler.ListPosts)
			authorized.GET("/posts/:id", postHandler.GetPost)
			authorized.PUT("/posts/:id", postHandler.UpdatePost)
			authorized.DELETE("/posts/:id", postHandler.DeletePost)

			authorized.POST("/posts/:id/like", interactionHandler.ToggleLike)
			authorized.GET("/posts/:id/likes", interactionHandler.ListLikes)
			authorized.POST("/posts/:id/comments", interactionHandler.AddComment)
			authorized.GET("/posts/:id/comments", interactionHandler.ListComments)
			authorized.DELETE("/comments/:id", interactionHandler.DeleteComment)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening on :%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-quit:
		log.Info("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
