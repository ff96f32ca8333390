package db

import "time"

type Session struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Flash     string    `gorm:"size:280"`
	GameID    uint      `gorm:"not null;default:0"`
	TeamID    uint      `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
