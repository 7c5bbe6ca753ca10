package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JannatulNex/Ticketing-System/config"
	"github.com/JannatulNex/Ticketing-System/internal/chat"
	"github.com/JannatulNex/Ticketing-System/internal/handlers"
	"github.com/JannatulNex/Ticketing-System/internal/middleware"
	"github.com/JannatulNex/Ticketing-System/internal/models"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	switch cfg.Env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.Default()
	SetupRoutes(r, db, cfg)

	return r.Run(":" + cfg.Port)
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.ConfigMiddleware(cfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.Static("/uploads", cfg.UploadDir)

	hub := chat.NewHub(db, cfg.JWTSecret, cfg.CORSOrigins)
	r.GET("/ws", hub.ServeWS)

	public := r.Group("/api/auth")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)
	}

	protected := r.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		tickets := protected.Group("/tickets")
		{
			tickets.GET("", handlers.ListTickets)
			tickets.POST("", handlers.CreateTicket)
			tickets.GET("/:id", handlers.GetTicket)
			tickets.PUT("/:id", handlers.UpdateTicket)
			tickets.PATCH("/:id/status", middleware.RequireRole(models.RoleAdmin), handlers.UpdateTicketStatus)
			tickets.DELETE("/:id", handlers.DeleteTicket)
			tickets.GET("/:id/comments", handlers.ListComments)
			tickets.POST("/:id/comments", handlers.AddComment)
			tickets.GET("/:id/messages", handlers.GetMessages)
			tickets.POST("/:id/attachment", handlers.UploadTicketAttachment)
		}
	}
}
