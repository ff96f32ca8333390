package db

import "time"

const (
	GameStatusCreated = "created"
	GameStatusRunning = "running"
	GameStatusEnded   = "ended"
)

type Game struct {
	ID        uint       `gorm:"primaryKey"`
	Code      string     `gorm:"size:16;uniqueIndex;not null"`
	Title     string     `gorm:"size:80;not null"`
	Status    string     `gorm:"size:16;not null;default:'created'"`
	StartAt   *time.Time
	CreatedAt time.Time `gorm:"index;not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Teams     []Team
	Keywords  []Keyword
	Claims    []Claim
	Events    []Event
}
