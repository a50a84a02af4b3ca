package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stocknote/stocknote-backend/internal/config"
	"github.com/stocknote/stocknote-backend/internal/handler"
	"github.com/stocknote/stocknote-backend/internal/middleware"
	"github.com/stocknote/stocknote-backend/pkg/jwt"
)

// Handlers everything Setup wires into the router
type Handlers struct {
	Auth   *handler.AuthHandler
	User   *handler.UserHandler
	Board  *handler.BoardHandler
	Market *handler.MarketHandler
}

// Setup builds the gin engine with all middleware and routes
func Setup(cfg *config.Config, jwtManager *jwt.Manager, h Handlers) *gin.Engine {
	if cfg.Server.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}

	users := v1.Group("/users")
	{
		users.GET("", middleware.JWTAuth(jwtManager), h.User.ListUsers)
		users.GET("/me", middleware.JWTAuth(jwtManager), h.User.Me)
		users.GET("/me/accounts", middleware.JWTAuth(jwtManager), h.User.ListSocialAccounts)
		users.GET("/:id", h.User.GetUser)
	}

	boards := v1.Group("/boards/:board")
	{
		// Reads personalize for signed-in users but stay open to everyone
		boards.GET("/posts", middleware.OptionalJWTAuth(jwtManager), h.Board.ListPosts)
		boards.GET("/posts/:id", middleware.OptionalJWTAuth(jwtManager), h.Board.GetPost)

		authed := boards.Group("", middleware.JWTAuth(jwtManager))
		{
			authed.POST("/posts", h.Board.CreatePost)
			authed.PUT("/posts/:id", h.Board.UpdatePost)
			authed.DELETE("/posts/:id", h.Board.DeletePost)
			authed.POST("/posts/:id/like", h.Board.ToggleLike)
			authed.POST("/posts/:id/comments", h.Board.CreateComment)
			authed.PUT("/comments/:commentID", h.Board.UpdateComment)
			authed.DELETE("/comments/:commentID", h.Board.DeleteComment)
		}
	}

	market := v1.Group("/market")
	{
		market.GET("/sectors", h.Market.ListSectors)
		market.GET("/sectors/:id", h.Market.SectorDetail)
		market.GET("/themes", h.Market.ListThemes)
		market.GET("/themes/:id", h.Market.ThemeDetail)
		market.GET("/indices", h.Market.ListIndices)
		market.GET("/indices/:id", h.Market.IndexDetail)
	}

	return router
}
