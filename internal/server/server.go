package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carspace/config"
	"carspace/internal/handler"
	"carspace/internal/middleware"
	"carspace/internal/redis"
	"carspace/internal/services"
	"carspace/internal/transport/httpdto"
	"carspace/internal/websocket"
	"carspace/pkg/database"
	"carspace/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Chat         *handler.ChatHandler
	Room         *handler.RoomHandler
	Car          *handler.CarHandler
	Booking      *handler.BookingHandler
	Estimator    *handler.EstimatorHandler
	Notification *handler.NotificationHandler
	Upload       *handler.UploadHandler
	Admin        *handler.AdminHandler
	WS           *websocket.Handler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService, limiter *redis.RateLimiter, db *database.Connections) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))
	if limiter != nil {
		s.engine.Use(middleware.AuthRateLimitMiddleware(limiter))
	}

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if db != nil {
			if err := db.HealthCheck(); err != nil {
				c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
				return
			}
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	api := s.engine.Group("/api/v2")

	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
	}

	// Public catalog surface.
	api.GET("/rooms", handlers.Room.List)
	api.GET("/rooms/:id", handlers.Room.GetByID)
	api.GET("/rooms/:id/cars", handlers.Car.ListByRoom)
	api.GET("/cars", handlers.Car.List)
	api.GET("/cars/:id", handlers.Car.GetByID)
	api.POST("/estimate", handlers.Estimator.Estimate)

	// Browsers cannot set headers on websocket upgrades; Connect validates a
	// token query parameter itself.
	api.GET("/ws", handlers.WS.Connect)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authService))
	{
		authed.GET("/chat", handlers.Chat.GetMessages)
		if limiter != nil {
			authed.POST("/chat", middleware.MessageRateLimitMiddleware(limiter), handlers.Chat.PostMessage)
		} else {
			authed.POST("/chat", handlers.Chat.PostMessage)
		}
		authed.DELETE("/chat", handlers.Chat.DeleteChat)
		authed.GET("/chat/conversations", handlers.Chat.ListConversations)

		authed.POST("/bookings", handlers.Booking.Create)
		authed.GET("/bookings", handlers.Booking.ListOwn)

		authed.GET("/notifications", handlers.Notification.List)
		authed.POST("/notifications/read", handlers.Notification.MarkAllRead)

		authed.POST("/uploads/presign", handlers.Upload.Presign)

		staff := authed.Group("/admin")
		staff.Use(middleware.RequireStaff())
		{
			staff.GET("/chats", handlers.Admin.ListChats)
			staff.GET("/chats/:chatId", handlers.Chat.AdminGetChat)
			if limiter != nil {
				staff.POST("/chats/:chatId", middleware.MessageRateLimitMiddleware(limiter), handlers.Chat.AdminPostChat)
			} else {
				staff.POST("/chats/:chatId", handlers.Chat.AdminPostChat)
			}
			staff.GET("/analytics", handlers.Admin.Dashboard)

			staff.POST("/rooms", handlers.Room.Create)
			staff.PUT("/rooms/:id", handlers.Room.Update)

			staff.POST("/cars", handlers.Car.Create)
			staff.PUT("/cars/:id", handlers.Car.Update)
			staff.DELETE("/cars/:id", handlers.Car.Delete)

			staff.PUT("/bookings/:id/status", handlers.Booking.UpdateStatus)
		}
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
