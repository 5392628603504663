package router

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/idea-tracker-api/internal/config"
	"github.com/yukikurage/idea-tracker-api/internal/handlers"
	"github.com/yukikurage/idea-tracker-api/internal/logger"
	"github.com/yukikurage/idea-tracker-api/internal/middleware"
	"github.com/yukikurage/idea-tracker-api/internal/repository"
	"github.com/yukikurage/idea-tracker-api/internal/services"
	"github.com/yukikurage/idea-tracker-api/internal/token"
	"github.com/yukikurage/idea-tracker-api/internal/utils"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers onto a gin engine.
func New(cfg *config.Config, log *logger.Logger, db *gorm.DB) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	ideaRepo := repository.NewIdeaRepository(db)

	authService := services.NewAuthService(userRepo, token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL))
	ideaService := services.NewIdeaService(ideaRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	ideaHandler := handlers.NewIdeaHandler(ideaService)
	healthHandler := handlers.NewHealthHandler(db)

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORS)))

	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.RequireAuth(authService), authHandler.GetCurrentUser)
		}

		ideas := api.Group("/ideas")
		ideas.Use(middleware.RequireAuth(authService))
		{
			ideas.GET("", ideaHandler.ListIdeas)
			ideas.GET("/stats", ideaHandler.GetStats)
			ideas.GET("/:id", ideaHandler.GetIdea)
			ideas.POST("", ideaHandler.CreateIdea)
			ideas.PUT("/:id", ideaHandler.UpdateIdea)
			ideas.DELETE("/:id", ideaHandler.DeleteIdea)
		}
	}

	return r
}

func corsConfig(cfg config.CORS) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{utils.TotalCountHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	// cors rejects "*" mixed into an origin list. Browsers refuse credentials
	// with a wildcard origin, so they are only offered to listed origins.
	if slices.Contains(cfg.AllowedOrigins, "*") {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}
