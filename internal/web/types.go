package web

import (
	"time"

	"photo-hunt/internal/db"
)

type PaginationData struct {
	BasePath   string
	Page       int
	PerPage    int
	Total      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

type GameSummary struct {
	ID        uint
	Code      string
	Title     string
	Status    string
	CreatedAt time.Time
}

type AdminHomeData struct {
	Slug       string
	Games      []GameSummary
	Pagination PaginationData
}

type TeamScore struct {
	Name   string
	Color  string
	Score  int
	Claims int
}

type AdminGameData struct {
	Slug      string
	Game      db.Game
	PublicURL string
	Keywords  []db.Keyword
	Scores    []TeamScore
	Events    []db.Event
}
