package server

import (
	"errors"
	"time"

	"photo-hunt/internal/db"
)

var (
	errGameNotFound    = errors.New("game not found")
	errTeamNotFound    = errors.New("team not found")
	errKeywordNotFound = errors.New("keyword not found")
	errClaimNotFound   = errors.New("claim not found")
	errGameCodeTaken   = errors.New("game code already in use")
	errTeamNameTaken   = errors.New("team name already in use")
	errAlreadyClaimed  = errors.New("keyword already claimed by this team")
	errGameNotRunning  = errors.New("game is not running")
	errNotYourClaim    = errors.New("claim belongs to another team")
	errTeamRequired    = errors.New("team_id is required")
	errPhotoUpload     = errors.New("photo upload failed")
)

var gameStatuses = []string{
	db.GameStatusCreated,
	db.GameStatusRunning,
	db.GameStatusEnded,
}

type gameState struct {
	Teams    []db.Team
	Keywords []db.Keyword
	Claims   []db.Claim
}

type claimUpload struct {
	TeamID      uint
	KeywordID   uint
	Filename    string
	ContentType string
	Data        []byte
}

type keywordPatch struct {
	Text       *string
	Points     *int
	OrderIndex *int
}

type TeamScore struct {
	TeamID uint   `json:"team_id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Score  int    `json:"score"`
	Claims int    `json:"claims"`
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
