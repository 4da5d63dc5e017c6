package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupAuthorRoutes(v1, c)
		setupLoanRoutes(v1, c)
		setupNotificationRoutes(v1, c)
		setupDashboardRoutes(v1, c)
	}

	return router
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "UP",
			"service": c.Config.App.Name,
			"version": c.Config.App.Version,
		})
	}
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.RefreshToken)
		auth.POST("/logout", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Logout)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetProfile)
		users.GET("", middleware.AdminMiddleware(), c.UserHandler.List)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	books.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		books.GET("", c.BookHandler.List)
		books.GET("/genres", c.BookHandler.Genres)
		books.GET("/:id", c.BookHandler.Get)

		admin := books.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("", c.BookHandler.Create)
			admin.PUT("/:id", c.BookHandler.Update)
			admin.DELETE("/:id", c.BookHandler.Delete)
			admin.POST("/import", c.BookHandler.Import)
		}
	}
}

func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	authors.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.Get)
		authors.GET("/:id/books", c.AuthorHandler.Books)

		admin := authors.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("", c.AuthorHandler.Create)
			admin.PUT("/:id", c.AuthorHandler.Update)
			admin.DELETE("/:id", c.AuthorHandler.Delete)
		}
	}
}

func setupLoanRoutes(v1 *gin.RouterGroup, c *container.Container) {
	loans := v1.Group("/loans")
	loans.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		loans.POST("", c.LoanHandler.Create)
		loans.GET("/my", c.LoanHandler.ListMine)
		loans.POST("/:id/return", c.LoanHandler.Return)
		loans.POST("/:id/renew", c.LoanHandler.Renew)
		loans.GET("", middleware.AdminMiddleware(), c.LoanHandler.List)
	}
}

func setupNotificationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	notifications := v1.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		notifications.GET("/my", c.NotificationHandler.ListMine)
		notifications.GET("/my/unread-count", c.NotificationHandler.UnreadCount)
		notifications.PUT("/:id/read", c.NotificationHandler.MarkRead)
		notifications.PUT("/read-all", c.NotificationHandler.MarkAllRead)
	}
}

func setupDashboardRoutes(v1 *gin.RouterGroup, c *container.Container) {
	dashboard := v1.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		dashboard.GET("", c.DashboardHandler.Stats)
	}
}
