package db

import "time"

// PhotoPending marks a claim whose photo has not been stored yet.
const PhotoPending = "pending"

type Claim struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null"`
	TeamID    uint      `gorm:"index;not null;uniqueIndex:idx_claims_team_keyword"`
	KeywordID uint      `gorm:"index;not null;uniqueIndex:idx_claims_team_keyword"`
	PhotoPath string    `gorm:"size:512;not null"`
	CreatedAt time.Time `gorm:"index;not null"`
}
