package server

import (
	"context"
	"errors"
	"log"

	"photo-hunt/internal/db"
	"photo-hunt/internal/web"

	"gorm.io/gorm"
)

const maxCodeAttempts = 5

// createGame stores a new game in the created state. A generated code is
// retried on collision; an explicit one is not.
func (s *Server) createGame(ctx context.Context, title, code string) (*db.Game, error) {
	explicit := code != ""
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		if !explicit {
			generated, err := newGameCode()
			if err != nil {
				return nil, err
			}
			code = generated
		}
		game := db.Game{Code: code, Title: title, Status: db.GameStatusCreated}
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&game).Error; err != nil {
				return err
			}
			return persistEvent(tx, game.ID, nil, "game_created", EventPayload{
				GameCode: game.Code,
				Title:    game.Title,
			})
		})
		if err == nil {
			log.Printf("game created game_id=%d code=%s", game.ID, game.Code)
			return &game, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		if explicit {
			return nil, errGameCodeTaken
		}
	}
	return nil, errGameCodeTaken
}

func (s *Server) listGames(ctx context.Context, page, perPage int) ([]db.Game, web.PaginationData, error) {
	conn := s.db.WithContext(ctx)
	var total int64
	if err := conn.Model(&db.Game{}).Count(&total).Error; err != nil {
		return nil, web.PaginationData{}, err
	}
	pagination := pageFor(page, perPage, total)
	var games []db.Game
	err := conn.Order("created_at desc").Order("id desc").
		Scopes(paginated(pagination)).
		Find(&games).Error
	if err != nil {
		return nil, web.PaginationData{}, err
	}
	return games, pagination, nil
}

// setGameStatus moves a game to status. Entering running stamps start_at
// unless the game is already running. Any transition is allowed.
func (s *Server) setGameStatus(ctx context.Context, gameID uint, status string) (*db.Game, error) {
	var game db.Game
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&game, gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errGameNotFound
			}
			return err
		}
		previous := game.Status
		updates := map[string]any{"status": status}
		if status == db.GameStatusRunning && previous != db.GameStatusRunning {
			now := timeNowUTC()
			updates["start_at"] = now
			game.StartAt = &now
		}
		if err := tx.Model(&game).Updates(updates).Error; err != nil {
			return err
		}
		game.Status = status
		return persistEvent(tx, game.ID, nil, "status_changed", EventPayload{
			Status:   status,
			Previous: previous,
		})
	})
	if err != nil {
		return nil, err
	}
	log.Printf("game status game_id=%d status=%s", game.ID, game.Status)
	go s.refreshGame(game.ID)
	return &game, nil
}

func (s *Server) listEvents(ctx context.Context, gameID uint, page, perPage int) ([]db.Event, web.PaginationData, error) {
	conn := s.db.WithContext(ctx)
	var total int64
	if err := conn.Model(&db.Event{}).Where("game_id = ?", gameID).Count(&total).Error; err != nil {
		return nil, web.PaginationData{}, err
	}
	pagination := pageFor(page, perPage, total)
	var events []db.Event
	err := conn.Where("game_id = ?", gameID).
		Order("created_at desc").Order("id desc").
		Scopes(paginated(pagination)).
		Find(&events).Error
	if err != nil {
		return nil, web.PaginationData{}, err
	}
	return events, pagination, nil
}
