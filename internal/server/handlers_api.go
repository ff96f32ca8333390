package server

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"photo-hunt/internal/db"
	"photo-hunt/internal/storage"

	"github.com/gin-gonic/gin"
)

const multipartOverhead = 1 << 20

type gameCodeURI struct {
	Code string `uri:"code" binding:"required,gamecode"`
}

type claimURI struct {
	Code    string `uri:"code" binding:"required,gamecode"`
	ClaimID uint   `uri:"claimID" binding:"required"`
}

type teamURI struct {
	Code   string `uri:"code" binding:"required,gamecode"`
	TeamID uint   `uri:"teamID" binding:"required"`
}

type selectTeamRequest struct {
	TeamID uint `json:"team_id" binding:"required"`
}

type claimJSONRequest struct {
	TeamID    uint   `json:"team_id"`
	KeywordID uint   `json:"keyword_id" binding:"required"`
	PhotoData string `json:"photo_data" binding:"required"`
	Filename  string `json:"filename" binding:"max=255"`
}

var claimMessages = bindMessages{
	"KeywordID": {"required": "keyword_id is required"},
	"PhotoData": {"required": "photo is required"},
	"Filename":  {"max": "filename is too long"},
}

// gameFromURI resolves the :code parameter or writes the error response.
func (s *Server) gameFromURI(c *gin.Context) (*db.Game, bool) {
	var uri gameCodeURI
	if !bindURI(c, &uri) {
		return nil, false
	}
	game, err := s.findGameByCode(c.Request.Context(), uri.Code)
	if err != nil {
		writeStoreError(c, err, "failed to load game")
		return nil, false
	}
	return game, true
}

func (s *Server) handleGetGame(c *gin.Context) {
	game, ok := s.gameFromURI(c)
	if !ok {
		return
	}
	state, err := s.loadGameState(c.Request.Context(), game.ID)
	if err != nil {
		writeStoreError(c, err, "failed to load game")
		return
	}
	teamID := s.sessions.GetTeam(c.Writer, c.Request, game.ID)
	claimed := make([]uint, 0)
	if teamID != 0 {
		for _, keyword := range state.Keywords {
			if isClaimedByTeam(teamID, keyword.ID, state.Claims) {
				claimed = append(claimed, keyword.ID)
			}
		}
	}
	payload := s.snapshot(game, state)
	payload["team_id"] = teamID
	payload["claimed_keyword_ids"] = claimed
	writeJSON(c, http.StatusOK, payload)
}

func (s *Server) handleListClaims(c *gin.Context) {
	game, ok := s.gameFromURI(c)
	if !ok {
		return
	}
	claims, err := loadClaims(s.db.WithContext(c.Request.Context()), game.ID)
	if err != nil {
		writeStoreError(c, err, "failed to load claims")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"claims": s.newClaimViews(claims)})
}

func (s *Server) handleScores(c *gin.Context) {
	game, ok := s.gameFromURI(c)
	if !ok {
		return
	}
	state, err := s.loadGameState(c.Request.Context(), game.ID)
	if err != nil {
		writeStoreError(c, err, "failed to load scores")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"scores": buildScores(state)})
}

func (s *Server) handleSelectTeam(c *gin.Context) {
	game, ok := s.gameFromURI(c)
	if !ok {
		return
	}
	var req selectTeamRequest
	if !bindJSON(c, &req, bindMessages{"TeamID": {"required": "team_id is required"}}, "") {
		return
	}
	team, err := findTeam(s.db.WithContext(c.Request.Context()), game.ID, req.TeamID)
	if err != nil {
		writeStoreError(c, err, "failed to load team")
		return
	}
	if err := s.sessions.SetTeam(c.Writer, c.Request, game.ID, team.ID); err != nil {
		writeStoreError(c, err, "failed to remember team")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"team_id": team.ID, "name": team.Name})
}

func (s *Server) handleCreateClaim(c *gin.Context) {
	if !s.enforceRateLimit(c, "claim") {
		return
	}
	game, ok := s.gameFromURI(c)
	if !ok {
		return
	}
	if game.Status != db.GameStatusRunning {
		writeStoreError(c, errGameNotRunning, "")
		return
	}
	upload, ok := s.readClaimUpload(c)
	if !ok {
		return
	}
	teamID, err := s.resolveTeamID(c, upload.TeamID, game.ID)
	if err != nil {
		writeStoreError(c, err, "")
		return
	}
	upload.TeamID = teamID
	contentType, err := checkPhoto(upload.Data, s.cfg.MaxPhotoBytes)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errPhotoTooBig) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(c, status, err.Error())
		return
	}
	upload.ContentType = contentType

	claim, keyword, err := s.createClaim(c.Request.Context(), game, upload)
	if err != nil {
		writeStoreError(c, err, "failed to create claim")
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{
		"claim":   s.newClaimView(*claim),
		"keyword": newKeywordView(*keyword),
		"points":  keyword.Points,
	})
}

// readClaimUpload accepts either a multipart form with a "photo" file or a
// JSON body carrying a data URL.
func (s *Server) readClaimUpload(c *gin.Context) (claimUpload, bool) {
	limit := int64(s.cfg.MaxPhotoBytes)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)
		return s.readMultipartUpload(c, limit)
	}
	// base64 grows the payload by a third.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit*4/3+multipartOverhead)
	var req claimJSONRequest
	if !bindJSON(c, &req, claimMessages, "invalid claim") {
		return claimUpload{}, false
	}
	data, err := decodePhotoData(req.PhotoData)
	if err != nil {
		writeError(c, http.StatusBadRequest, "photo data is not valid base64")
		return claimUpload{}, false
	}
	return claimUpload{
		TeamID:    req.TeamID,
		KeywordID: req.KeywordID,
		Filename:  req.Filename,
		Data:      data,
	}, true
}

func (s *Server) readMultipartUpload(c *gin.Context, limit int64) (claimUpload, bool) {
	keywordID, err := strconv.ParseUint(strings.TrimSpace(c.PostForm("keyword_id")), 10, 64)
	if err != nil || keywordID == 0 {
		writeError(c, http.StatusBadRequest, "keyword_id is required")
		return claimUpload{}, false
	}
	var teamID uint64
	if raw := strings.TrimSpace(c.PostForm("team_id")); raw != "" {
		teamID, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(c, http.StatusBadRequest, "team_id is invalid")
			return claimUpload{}, false
		}
	}
	header, err := c.FormFile("photo")
	if err != nil {
		writeError(c, http.StatusBadRequest, errNoPhoto.Error())
		return claimUpload{}, false
	}
	if len(header.Filename) > maxFilenameLength {
		writeError(c, http.StatusBadRequest, "filename is too long")
		return claimUpload{}, false
	}
	if header.Size > limit {
		writeError(c, http.StatusRequestEntityTooLarge, errPhotoTooBig.Error())
		return claimUpload{}, false
	}
	file, err := header.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, "failed to read photo")
		return claimUpload{}, false
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		writeError(c, http.StatusBadRequest, "failed to read photo")
		return claimUpload{}, false
	}
	return claimUpload{
		TeamID:    uint(teamID),
		KeywordID: uint(keywordID),
		Filename:  header.Filename,
		Data:      data,
	}, true
}

func (s *Server) handleDeleteClaim(c *gin.Context) {
	var uri claimURI
	if !bindURI(c, &uri) {
		return
	}
	game, err := s.findGameByCode(c.Request.Context(), uri.Code)
	if err != nil {
		writeStoreError(c, err, "failed to load game")
		return
	}
	var provided uint64
	if raw := strings.TrimSpace(c.Query("team_id")); raw != "" {
		provided, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(c, http.StatusBadRequest, "team_id is invalid")
			return
		}
	}
	teamID, err := s.resolveTeamID(c, uint(provided), game.ID)
	if err != nil {
		writeStoreError(c, err, "")
		return
	}
	if err := s.deleteClaim(c.Request.Context(), game.ID, uri.ClaimID, teamID); err != nil {
		writeStoreError(c, err, "failed to delete claim")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleTeamPhotos(c *gin.Context) {
	var uri teamURI
	if !bindURI(c, &uri) {
		return
	}
	game, err := s.findGameByCode(c.Request.Context(), uri.Code)
	if err != nil {
		writeStoreError(c, err, "failed to load game")
		return
	}
	conn := s.db.WithContext(c.Request.Context())
	team, err := findTeam(conn, game.ID, uri.TeamID)
	if err != nil {
		writeStoreError(c, err, "failed to load team")
		return
	}
	claims, err := loadClaims(conn, game.ID)
	if err != nil {
		writeStoreError(c, err, "failed to load photos")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"team_id": team.ID,
		"photos":  s.newClaimViews(teamPhotos(team.ID, claims)),
	})
}

func (s *Server) handlePhoto(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if !servablePhotoKey(key) {
		writeError(c, http.StatusNotFound, "not found")
		return
	}
	reader, contentType, err := s.photos.Open(c.Request.Context(), key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("photo read failed key=%s error=%v", key, err)
		}
		writeError(c, http.StatusNotFound, "not found")
		return
	}
	defer reader.Close()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.DataFromReader(http.StatusOK, -1, contentType, reader, nil)
}
