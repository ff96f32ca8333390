package db

import "time"

type Keyword struct {
	ID         uint      `gorm:"primaryKey"`
	GameID     uint      `gorm:"index;not null"`
	Text       string    `gorm:"size:60;not null"`
	Points     int       `gorm:"not null;default:1"`
	OrderIndex int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"not null"`
	Claims     []Claim
}
