package server

import (
	"log"
	"net/http"

	"photo-hunt/internal/db"
	"photo-hunt/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

const adminRecentEvents = 20

func (s *Server) handleHome(c *gin.Context) {
	flash := s.sessions.PopFlash(c.Writer, c.Request)
	templ.Handler(web.Home(flash)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleGameView(c *gin.Context) {
	code := c.Param("code")
	game, err := s.findGameByCode(c.Request.Context(), code)
	if err != nil {
		log.Printf("game view missing code=%s error=%v", code, err)
		s.sessions.SetFlash(c.Writer, c.Request, "No game found for that code.")
		c.Redirect(http.StatusFound, "/")
		return
	}
	templ.Handler(web.GameView(game.Code, game.Title)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleAdminHomeView(c *gin.Context) {
	var query pageQuery
	_ = c.ShouldBindQuery(&query)
	page, perPage := query.window(defaultGamesPerPage, maxGamesPerPage)
	games, pagination, err := s.listGames(c.Request.Context(), page, perPage)
	if err != nil {
		log.Printf("admin home failed error=%v", err)
		c.String(http.StatusInternalServerError, "failed to list games")
		return
	}
	slug := c.Param("slug")
	pagination.BasePath = "/admin/" + slug
	data := web.AdminHomeData{
		Slug:       slug,
		Games:      make([]web.GameSummary, 0, len(games)),
		Pagination: pagination,
	}
	for _, game := range games {
		data.Games = append(data.Games, web.GameSummary{
			ID:        game.ID,
			Code:      game.Code,
			Title:     game.Title,
			Status:    game.Status,
			CreatedAt: game.CreatedAt,
		})
	}
	templ.Handler(web.AdminHome(data)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleAdminGameView(c *gin.Context) {
	var uri adminGameURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.Redirect(http.StatusFound, "/admin/"+c.Param("slug"))
		return
	}
	game, err := s.findGameByID(c.Request.Context(), uri.GameID)
	if err != nil {
		log.Printf("admin view missing game_id=%d error=%v", uri.GameID, err)
		c.Redirect(http.StatusFound, "/admin/"+c.Param("slug"))
		return
	}
	state, err := s.loadGameState(c.Request.Context(), game.ID)
	if err != nil {
		log.Printf("admin view failed game_id=%d error=%v", game.ID, err)
		c.String(http.StatusInternalServerError, "failed to load game")
		return
	}
	events, _, err := s.listEvents(c.Request.Context(), game.ID, 1, adminRecentEvents)
	if err != nil {
		log.Printf("admin view events failed game_id=%d error=%v", game.ID, err)
		events = []db.Event{}
	}
	scores := buildScores(state)
	data := web.AdminGameData{
		Slug:      c.Param("slug"),
		Game:      *game,
		PublicURL: s.publicGameURL(game.Code),
		Keywords:  state.Keywords,
		Scores:    make([]web.TeamScore, 0, len(scores)),
		Events:    events,
	}
	for _, score := range scores {
		data.Scores = append(data.Scores, web.TeamScore{
			Name:   score.Name,
			Color:  score.Color,
			Score:  score.Score,
			Claims: score.Claims,
		})
	}
	templ.Handler(web.AdminGame(data)).ServeHTTP(c.Writer, c.Request)
}
