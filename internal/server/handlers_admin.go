package server

import (
	"net/http"

	"photo-hunt/internal/db"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	defaultGamesPerPage  = 20
	maxGamesPerPage      = 100
	defaultEventsPerPage = 50
	maxEventsPerPage     = 200
	qrCodeSize           = 256
)

type adminGameURI struct {
	GameID uint `uri:"gameID" binding:"required"`
}

type adminKeywordURI struct {
	GameID    uint `uri:"gameID" binding:"required"`
	KeywordID uint `uri:"keywordID" binding:"required"`
}

type adminTeamURI struct {
	GameID uint `uri:"gameID" binding:"required"`
	TeamID uint `uri:"teamID" binding:"required"`
}

type createGameRequest struct {
	Title string `json:"title" binding:"required,title"`
	Code  string `json:"code" binding:"omitempty,gamecode"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required,gamestatus"`
}

type keywordRequest struct {
	Text   string `json:"text" binding:"required,keyword"`
	Points any    `json:"points"`
}

type keywordPatchRequest struct {
	Text       *string `json:"text"`
	Points     any     `json:"points"`
	OrderIndex *int    `json:"order_index"`
}

type teamRequest struct {
	Name string `json:"name" binding:"required,teamname"`
}

var (
	createGameMessages = bindMessages{
		"Title": {
			"required": "title is required",
			"title":    "title must be 1-80 characters of plain text",
		},
		"Code": {"gamecode": "code must be 1-16 letters, digits, '-' or '_'"},
	}
	statusMessages = bindMessages{
		"Status": {
			"required":   "status is required",
			"gamestatus": "status must be one of created, running, ended",
		},
	}
	keywordMessages = bindMessages{
		"Text": {
			"required": "keyword text is required",
			"keyword":  "keyword must be 1-60 characters of plain text",
		},
	}
	teamMessages = bindMessages{
		"Name": {
			"required": "team name is required",
			"teamname": "team name must be 1-32 characters without slashes",
		},
	}
)

func (s *Server) handleAdminListGames(c *gin.Context) {
	var query pageQuery
	if !bindQuery(c, &query) {
		return
	}
	page, perPage := query.window(defaultGamesPerPage, maxGamesPerPage)
	games, pagination, err := s.listGames(c.Request.Context(), page, perPage)
	if err != nil {
		writeStoreError(c, err, "failed to list games")
		return
	}
	views := make([]gameView, 0, len(games))
	for i := range games {
		views = append(views, newGameView(&games[i]))
	}
	writeJSON(c, http.StatusOK, gin.H{
		"games":       views,
		"page":        pagination.Page,
		"per_page":    pagination.PerPage,
		"total":       pagination.Total,
		"total_pages": pagination.TotalPages,
	})
}

func (s *Server) handleAdminCreateGame(c *gin.Context) {
	if !s.enforceRateLimit(c, "create") {
		return
	}
	var req createGameRequest
	if !bindJSON(c, &req, createGameMessages, "invalid game") {
		return
	}
	title, err := validateTitle(req.Title)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	game, err := s.createGame(c.Request.Context(), title, req.Code)
	if err != nil {
		writeStoreError(c, err, "failed to create game")
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{
		"game":       newGameView(game),
		"public_url": s.publicGameURL(game.Code),
	})
}

func (s *Server) handleAdminGetGame(c *gin.Context) {
	var uri adminGameURI
	if !bindURI(c, &uri) {
		return
	}
	game, err := s.findGameByID(c.Request.Context(), uri.GameID)
	if err != nil {
		writeStoreError(c, err, "failed to load game")
		return
	}
	state, err := s.loadGameState(c.Request.Context(), game.ID)
	if err != nil {
		writeStoreError(c, err, "failed to load game")
		return
	}
	payload := s.snapshot(game, state)
	payload["public_url"] = s.publicGameURL(game.Code)
	writeJSON(c, http.StatusOK, payload)
}

func (s *Server) handleAdminSetStatus(c *gin.Context) {
	var uri adminGameURI
	if !bindURI(c, &uri) {
		return
	}
	var req statusRequest
	if !bindJSON(c, &req, statusMessages, "invalid status") {
		return
	}
	status, err := validateStatus(req.Status)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	game, err := s.setGameStatus(c.Request.Context(), uri.GameID, status)
	if err != nil {
		writeStoreError(c, err, "failed to update status")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"game": newGameView(game)})
}

// handleAdminAddKeyword validates the text before touching the database.
func (s *Server) handleAdminAddKeyword(c *gin.Context) {
	var uri adminGameURI
	if !bindURI(c, &uri) {
		return
	}
	var req keywordRequest
	if !bindJSON(c, &req, keywordMessages, "invalid keyword") {
		return
	}
	text, err := validateKeyword(req.Text)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	keyword, err := s.addKeyword(c.Request.Context(), uri.GameID, text, db.ParsePoints(req.Points))
	if err != nil {
		writeStoreError(c, err, "failed to add keyword")
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"keyword": newKeywordView(*keyword)})
}

func (s *Server) handleAdminUpdateKeyword(c *gin.Context) {
	var uri adminKeywordURI
	if !bindURI(c, &uri) {
		return
	}
	var req keywordPatchRequest
	if !bindJSON(c, &req, nil, "invalid keyword") {
		return
	}
	var patch keywordPatch
	if req.Text != nil {
		text, err := validateKeyword(*req.Text)
		if err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		patch.Text = &text
	}
	if req.Points != nil {
		points := db.ParsePoints(req.Points)
		patch.Points = &points
	}
	patch.OrderIndex = req.OrderIndex
	keyword, err := s.updateKeyword(c.Request.Context(), uri.GameID, uri.KeywordID, patch)
	if err != nil {
		writeStoreError(c, err, "failed to update keyword")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"keyword": newKeywordView(*keyword)})
}

func (s *Server) handleAdminDeleteKeyword(c *gin.Context) {
	var uri adminKeywordURI
	if !bindURI(c, &uri) {
		return
	}
	if err := s.deleteKeyword(c.Request.Context(), uri.GameID, uri.KeywordID); err != nil {
		writeStoreError(c, err, "failed to delete keyword")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleAdminAddTeam(c *gin.Context) {
	var uri adminGameURI
	if !bindURI(c, &uri) {
		return
	}
	var req teamRequest
	if !bindJSON(c, &req, teamMessages, "invalid team") {
		return
	}
	name, err := validateTeamName(req.Name)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	team, err := s.addTeam(c.Request.Context(), uri.GameID, name)
	if err != nil {
		writeStoreError(c, err, "failed to add team")
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"team": teamView{ID: team.ID, Name: team.Name}})
}

func (s *Server) handleAdminDeleteTeam(c *gin.Context) {
	var uri adminTeamURI
	if !bindURI(c, &uri) {
		return
	}
	if err := s.deleteTeam(c.Request.Context(), uri.GameID, uri.TeamID); err != nil {
		writeStoreError(c, err, "failed to delete team")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleAdminEvents(c *gin.Context) {
	var uri adminGameURI
	if !bindURI(c, &uri) {
		return
	}
	if _, err := s.findGameByID(c.Request.Context(), uri.GameID); err != nil {
		writeStoreError(c, err, "failed to load game")
		return
	}
	var query pageQuery
	if !bindQuery(c, &query) {
		return
	}
	page, perPage := query.window(defaultEventsPerPage, maxEventsPerPage)
	events, pagination, err := s.listEvents(c.Request.Context(), uri.GameID, page, perPage)
	if err != nil {
		writeStoreError(c, err, "failed to load events")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"events":      newEventViews(events),
		"page":        pagination.Page,
		"per_page":    pagination.PerPage,
		"total":       pagination.Total,
		"total_pages": pagination.TotalPages,
	})
}

func (s *Server) handleAdminQRCode(c *gin.Context) {
	var uri adminGameURI
	if !bindURI(c, &uri) {
		return
	}
	game, err := s.findGameByID(c.Request.Context(), uri.GameID)
	if err != nil {
		writeStoreError(c, err, "failed to load game")
		return
	}
	png, err := qrcode.Encode(s.publicGameURL(game.Code), qrcode.Medium, qrCodeSize)
	if err != nil {
		writeStoreError(c, err, "failed to render qr code")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
