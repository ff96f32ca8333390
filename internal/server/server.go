package server

import (
	"net/http"
	"sync"

	"photo-hunt/internal/config"
	"photo-hunt/internal/feed"
	"photo-hunt/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	db        *gorm.DB
	photos    storage.Store
	feed      *feed.Bus
	ws        *wsHub
	cfg       config.Config
	sessions  *sessionStore
	limiter   *rateLimiter
	refreshMu sync.Mutex
	// publishLocal is false when the database trigger feeds the bus.
	publishLocal bool
}

func New(conn *gorm.DB, photos storage.Store, bus *feed.Bus, cfg config.Config) *Server {
	registerValidators()
	return &Server{
		db:       conn,
		photos:   photos,
		feed:     bus,
		ws:       newWSHub(),
		cfg:      cfg,
		sessions: newSessionStore(conn),
		limiter: newRateLimiter(map[string]int{
			"claim":  cfg.ClaimsPerMinute,
			"create": cfg.CreatesPerMinute,
		}),
		publishLocal: cfg.ChangeFeed != config.ChangeFeedPostgres,
	}
}

func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/", s.handleHome)
	router.GET("/g/:code", s.handleGameView)
	router.GET("/photos/*key", s.handlePhoto)
	router.GET("/ws/g/:code", s.handleWebsocket)

	public := router.Group("/api/g/:code")
	public.GET("", s.handleGetGame)
	public.GET("/claims", s.handleListClaims)
	public.GET("/scores", s.handleScores)
	public.POST("/team", s.handleSelectTeam)
	public.POST("/claims", s.handleCreateClaim)
	public.DELETE("/claims/:claimID", s.handleDeleteClaim)
	public.GET("/teams/:teamID/photos", s.handleTeamPhotos)

	adminViews := router.Group("/admin/:slug", s.requireAdmin(false))
	adminViews.GET("", s.handleAdminHomeView)
	adminViews.GET("/games/:gameID", s.handleAdminGameView)

	admin := router.Group("/api/admin/:slug", s.requireAdmin(true))
	admin.GET("/games", s.handleAdminListGames)
	admin.POST("/games", s.handleAdminCreateGame)
	admin.GET("/games/:gameID", s.handleAdminGetGame)
	admin.POST("/games/:gameID/status", s.handleAdminSetStatus)
	admin.POST("/games/:gameID/keywords", s.handleAdminAddKeyword)
	admin.PATCH("/games/:gameID/keywords/:keywordID", s.handleAdminUpdateKeyword)
	admin.DELETE("/games/:gameID/keywords/:keywordID", s.handleAdminDeleteKeyword)
	admin.POST("/games/:gameID/teams", s.handleAdminAddTeam)
	admin.DELETE("/games/:gameID/teams/:teamID", s.handleAdminDeleteTeam)
	admin.GET("/games/:gameID/events", s.handleAdminEvents)
	admin.GET("/games/:gameID/qr.png", s.handleAdminQRCode)

	router.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "not found")
	})
	return router
}
