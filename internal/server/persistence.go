package server

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"photo-hunt/internal/db"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func (s *Server) findGameByCode(ctx context.Context, code string) (*db.Game, error) {
	var game db.Game
	// Codes are matched exactly; no case folding.
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Server) findGameByID(ctx context.Context, id uint) (*db.Game, error) {
	var game db.Game
	err := s.db.WithContext(ctx).First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func ensureGame(tx *gorm.DB, gameID uint) error {
	var count int64
	if err := tx.Model(&db.Game{}).Where("id = ?", gameID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errGameNotFound
	}
	return nil
}

func findTeam(tx *gorm.DB, gameID, teamID uint) (*db.Team, error) {
	var team db.Team
	err := tx.Where("id = ? AND game_id = ?", teamID, gameID).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errTeamNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func findKeyword(tx *gorm.DB, gameID, keywordID uint) (*db.Keyword, error) {
	var keyword db.Keyword
	err := tx.Where("id = ? AND game_id = ?", keywordID, gameID).First(&keyword).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errKeywordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &keyword, nil
}

func findClaim(tx *gorm.DB, gameID, claimID uint) (*db.Claim, error) {
	var claim db.Claim
	err := tx.Where("id = ? AND game_id = ?", claimID, gameID).First(&claim).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errClaimNotFound
	}
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func loadTeams(tx *gorm.DB, gameID uint) ([]db.Team, error) {
	var teams []db.Team
	err := tx.Where("game_id = ?", gameID).Order("name asc").Order("id asc").Find(&teams).Error
	return teams, err
}

func loadKeywords(tx *gorm.DB, gameID uint) ([]db.Keyword, error) {
	var keywords []db.Keyword
	err := tx.Where("game_id = ?", gameID).Order("order_index asc").Order("id asc").Find(&keywords).Error
	return keywords, err
}

func loadClaims(tx *gorm.DB, gameID uint) ([]db.Claim, error) {
	var claims []db.Claim
	err := tx.Where("game_id = ?", gameID).Order("created_at desc").Order("id desc").Find(&claims).Error
	return claims, err
}

func (s *Server) loadGameState(ctx context.Context, gameID uint) (gameState, error) {
	conn := s.db.WithContext(ctx)
	teams, err := loadTeams(conn, gameID)
	if err != nil {
		return gameState{}, err
	}
	keywords, err := loadKeywords(conn, gameID)
	if err != nil {
		return gameState{}, err
	}
	claims, err := loadClaims(conn, gameID)
	if err != nil {
		return gameState{}, err
	}
	return gameState{Teams: teams, Keywords: keywords, Claims: claims}, nil
}

func persistEvent(tx *gorm.DB, gameID uint, teamID *uint, eventType string, payload EventPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := db.Event{
		GameID:  gameID,
		TeamID:  teamID,
		Type:    eventType,
		Payload: datatypes.JSON(data),
	}
	return tx.Create(&event).Error
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
