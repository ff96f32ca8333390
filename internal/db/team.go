package db

import "time"

type Team struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null;uniqueIndex:idx_teams_game_name"`
	Name      string    `gorm:"size:32;not null;uniqueIndex:idx_teams_game_name"`
	CreatedAt time.Time `gorm:"not null"`
	Claims    []Claim
}
