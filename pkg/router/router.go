package router

import (
	bookapi "campusbooks/backend/book/api"
	chatapi "campusbooks/backend/chat/api"
	"campusbooks/backend/pkg/config"
	"campusbooks/backend/pkg/di"
	"campusbooks/backend/pkg/errors"
	"campusbooks/backend/pkg/logger"
	"campusbooks/backend/pkg/middleware"
	"campusbooks/backend/pkg/session"
	userapi "campusbooks/backend/user/api"

	"github.com/gin-gonic/gin"
)

// Router is the main HTTP router for the application.
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
	Config    *config.Config
}

// New creates the router with the standard middleware chain.
func New(container *di.Container) *Router {
	logger.SetGlobal(container.Logger)

	cfg := config.Get()
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Middleware(container.Logger))
	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())

	rateLimiter := middleware.NewRateLimiter(container.Logger)
	engine.Use(rateLimiter.Middleware())

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Config:    cfg,
	}
}

// SetupRoutes registers all application routes.
func (r *Router) SetupRoutes() {
	r.Engine.Use(corsMiddleware())

	authenticated := []gin.HandlerFunc{
		session.Middleware(r.Container.Verifier),
		userapi.ResolveAccount(r.Container.Directory),
	}

	profileHandler := userapi.NewProfileHandler(r.Container.Directory)
	bookHandler := bookapi.NewBookHandler(r.Container.BookService, r.Container.Lookup)
	chatHandler := chatapi.NewChatHandler(r.Container.ChatService)

	r.setupHealthRoutes()

	v1 := r.Engine.Group("/api/v1")

	// Public browse/search surface
	v1.GET("/books", bookHandler.ListBooks)
	v1.GET("/books/search", bookHandler.SearchBooks)
	v1.GET("/books/lookup", bookHandler.Lookup)
	v1.GET("/books/:id", bookHandler.GetBook)

	// Everything else requires a session
	protected := v1.Group("/")
	protected.Use(authenticated...)
	{
		protected.GET("/user/me", profileHandler.Me)
		protected.PUT("/user/profile", profileHandler.UpdateProfile)
		protected.GET("/user/books", bookHandler.MyBooks)

		protected.POST("/books", bookHandler.CreateBook)
		protected.PATCH("/books/:id", bookHandler.UpdateStatus)
		protected.DELETE("/books/:id", bookHandler.DeleteBook)

		protected.POST("/rooms", chatHandler.StartConversation)
		protected.GET("/rooms", chatHandler.ListRooms)
		protected.GET("/rooms/:id/messages", chatHandler.ListMessages)
		protected.POST("/messages", chatHandler.SendMessage)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Authorization, Origin, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
