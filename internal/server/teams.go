package server

import (
	"context"
	"log"

	"photo-hunt/internal/db"

	"gorm.io/gorm"
)

func (s *Server) addTeam(ctx context.Context, gameID uint, name string) (*db.Team, error) {
	var team db.Team
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureGame(tx, gameID); err != nil {
			return err
		}
		team = db.Team{GameID: gameID, Name: name}
		if err := tx.Create(&team).Error; err != nil {
			if isUniqueViolation(err) {
				return errTeamNameTaken
			}
			return err
		}
		return persistEvent(tx, gameID, &team.ID, "team_added", EventPayload{
			TeamID:   team.ID,
			TeamName: team.Name,
		})
	})
	if err != nil {
		return nil, err
	}
	log.Printf("team added game_id=%d team_id=%d", gameID, team.ID)
	go s.refreshGame(gameID)
	return &team, nil
}

// deleteTeam removes the team with its claims.
func (s *Server) deleteTeam(ctx context.Context, gameID, teamID uint) error {
	var claims []db.Claim
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := findTeam(tx, gameID, teamID)
		if err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", team.ID).Find(&claims).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", team.ID).Delete(&db.Claim{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(team).Error; err != nil {
			return err
		}
		return persistEvent(tx, gameID, nil, "team_deleted", EventPayload{
			TeamID:   team.ID,
			TeamName: team.Name,
			Count:    len(claims),
		})
	})
	if err != nil {
		return err
	}
	log.Printf("team deleted game_id=%d team_id=%d claims=%d", gameID, teamID, len(claims))
	s.dropClaims(ctx, claims)
	go s.refreshGame(gameID)
	return nil
}
