package server

import (
	"time"

	"photo-hunt/internal/db"
)

type gameView struct {
	ID        uint       `json:"id"`
	Code      string     `json:"code"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	StartAt   *time.Time `json:"start_at"`
	CreatedAt time.Time  `json:"created_at"`
}

type teamView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type keywordView struct {
	ID         uint   `json:"id"`
	Text       string `json:"text"`
	Points     int    `json:"points"`
	OrderIndex int    `json:"order_index"`
}

type claimView struct {
	ID        uint      `json:"id"`
	TeamID    uint      `json:"team_id"`
	KeywordID uint      `json:"keyword_id"`
	PhotoPath string    `json:"photo_path"`
	PhotoURL  string    `json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
}

type eventView struct {
	ID        uint      `json:"id"`
	TeamID    *uint     `json:"team_id"`
	Type      string    `json:"type"`
	Payload   any       `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

func newGameView(game *db.Game) gameView {
	return gameView{
		ID:        game.ID,
		Code:      game.Code,
		Title:     game.Title,
		Status:    game.Status,
		StartAt:   game.StartAt,
		CreatedAt: game.CreatedAt,
	}
}

func newTeamViews(teams []db.Team) []teamView {
	views := make([]teamView, 0, len(teams))
	for i, team := range teams {
		views = append(views, teamView{ID: team.ID, Name: team.Name, Color: teamColor(i)})
	}
	return views
}

func newKeywordView(keyword db.Keyword) keywordView {
	return keywordView{
		ID:         keyword.ID,
		Text:       keyword.Text,
		Points:     keyword.Points,
		OrderIndex: keyword.OrderIndex,
	}
}

func newKeywordViews(keywords []db.Keyword) []keywordView {
	views := make([]keywordView, 0, len(keywords))
	for _, keyword := range keywords {
		views = append(views, newKeywordView(keyword))
	}
	return views
}

func (s *Server) newClaimView(claim db.Claim) claimView {
	return claimView{
		ID:        claim.ID,
		TeamID:    claim.TeamID,
		KeywordID: claim.KeywordID,
		PhotoPath: claim.PhotoPath,
		PhotoURL:  s.photoURL(claim.PhotoPath),
		CreatedAt: claim.CreatedAt,
	}
}

func (s *Server) newClaimViews(claims []db.Claim) []claimView {
	views := make([]claimView, 0, len(claims))
	for _, claim := range claims {
		views = append(views, s.newClaimView(claim))
	}
	return views
}

func newEventViews(events []db.Event) []eventView {
	views := make([]eventView, 0, len(events))
	for _, event := range events {
		views = append(views, eventView{
			ID:        event.ID,
			TeamID:    event.TeamID,
			Type:      event.Type,
			Payload:   event.Payload,
			CreatedAt: event.CreatedAt,
		})
	}
	return views
}

// snapshot is the full state of a game as sent to the public view and admin editor.
func (s *Server) snapshot(game *db.Game, state gameState) map[string]any {
	return map[string]any{
		"game":     newGameView(game),
		"teams":    newTeamViews(state.Teams),
		"keywords": newKeywordViews(state.Keywords),
		"claims":   s.newClaimViews(state.Claims),
		"scores":   buildScores(state),
	}
}

func (s *Server) claimsMessage(state gameState) map[string]any {
	return map[string]any{
		"type":   "claims",
		"claims": s.newClaimViews(state.Claims),
		"scores": buildScores(state),
	}
}
