package api

import (
	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"

	"conftrack/cmd/middleware"
	"conftrack/internal/service"
)

type Routers struct {
	Service   service.Service
	JWTSecret string
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())

	optionalAuth := middleware.OptionalAuth(r.JWTSecret)
	auth := middleware.Auth(r.JWTSecret)
	adminOnly := middleware.RequireRole("admin")

	apiGroup := app.Group("/v1")

	apiGroup.POST("/auth/register", r.Service.SignUp)
	apiGroup.POST("/auth/login", r.Service.SignIn)

	apiGroup.GET("/activities", optionalAuth, r.Service.GetActivities)
	apiGroup.GET("/activities/:id", optionalAuth, r.Service.GetActivity)
	apiGroup.POST("/activities", auth, adminOnly, r.Service.CreateActivity)
	apiGroup.POST("/activities/:id/favorite", auth, r.Service.AddFavorite)
	apiGroup.DELETE("/activities/:id/favorite", auth, r.Service.RemoveFavorite)
	apiGroup.POST("/activities/:id/register", auth, r.Service.RegisterForActivity)
	apiGroup.DELETE("/activities/:id/register", auth, r.Service.CancelRegistration)

	apiGroup.GET("/events", r.Service.GetAllEvents)
	apiGroup.GET("/events/:id", r.Service.GetEvent)
	apiGroup.POST("/events", auth, adminOnly, r.Service.CreateEvent)
	apiGroup.PUT("/events/:id", auth, adminOnly, r.Service.UpdateEvent)

	apiGroup.GET("/media", auth, r.Service.GetMedia)
	apiGroup.POST("/media/upload", auth, middleware.RequireRole("admin", "speaker"), r.Service.UploadMedia)
	apiGroup.DELETE("/media/:id", auth, adminOnly, r.Service.DeleteMedia)

	apiGroup.GET("/users/profile", auth, r.Service.GetProfile)
	apiGroup.GET("/users/favorites", auth, r.Service.GetUserFavorites)
	apiGroup.GET("/users/registrations", auth, r.Service.GetUserRegistrations)
	apiGroup.GET("/users", auth, adminOnly, r.Service.GetUsers)

	app.Static("/uploads", "./uploads")

	return app
}
