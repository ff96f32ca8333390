package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"photo-hunt/internal/db"
	"photo-hunt/internal/feed"
	"photo-hunt/internal/storage"

	"gorm.io/gorm"
)

// createClaim records a claim and stores its photo as one unit. The row is
// inserted as pending, the photo is uploaded under the claim id, and the
// row is pointed at the stored photo before the transaction commits. Any
// failure rolls the row back; a photo already uploaded is then removed.
func (s *Server) createClaim(ctx context.Context, game *db.Game, upload claimUpload) (*db.Claim, *db.Keyword, error) {
	var (
		claim    db.Claim
		keyword  *db.Keyword
		uploaded string
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current db.Game
		if err := tx.Select("id", "status").First(&current, game.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errGameNotFound
			}
			return err
		}
		if current.Status != db.GameStatusRunning {
			return errGameNotRunning
		}
		team, err := findTeam(tx, game.ID, upload.TeamID)
		if err != nil {
			return err
		}
		keyword, err = findKeyword(tx, game.ID, upload.KeywordID)
		if err != nil {
			return err
		}
		var existing int64
		if err := tx.Model(&db.Claim{}).
			Where("team_id = ? AND keyword_id = ?", team.ID, keyword.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errAlreadyClaimed
		}

		claim = db.Claim{
			GameID:    game.ID,
			TeamID:    team.ID,
			KeywordID: keyword.ID,
			PhotoPath: db.PhotoPending,
		}
		if err := tx.Create(&claim).Error; err != nil {
			if isUniqueViolation(err) {
				return errAlreadyClaimed
			}
			return err
		}

		key := photoPath(game.Code, team.Name, keyword.ID, claim.ID, upload.Filename)
		if err := s.photos.Put(ctx, key, bytes.NewReader(upload.Data), upload.ContentType); err != nil {
			return fmt.Errorf("%w: %v", errPhotoUpload, err)
		}
		uploaded = key

		if err := tx.Model(&db.Claim{}).Where("id = ?", claim.ID).Update("photo_path", key).Error; err != nil {
			return err
		}
		claim.PhotoPath = key
		return persistEvent(tx, game.ID, &team.ID, "claim_created", EventPayload{
			TeamID:    team.ID,
			TeamName:  team.Name,
			KeywordID: keyword.ID,
			Keyword:   keyword.Text,
			Points:    keyword.Points,
			ClaimID:   claim.ID,
			PhotoPath: key,
		})
	})
	if err != nil {
		if uploaded != "" {
			s.removePhoto(ctx, uploaded)
		}
		return nil, nil, err
	}
	log.Printf("claim created game_id=%d team_id=%d keyword_id=%d claim_id=%d", game.ID, claim.TeamID, claim.KeywordID, claim.ID)
	s.publishClaimChange(game.ID, claim.ID, feed.OpInsert)
	return &claim, keyword, nil
}

// deleteClaim removes the row first and the photo afterwards, so a failed
// photo delete leaves an orphaned file rather than a score without a row.
func (s *Server) deleteClaim(ctx context.Context, gameID, claimID, teamID uint) error {
	var claim *db.Claim
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findClaim(tx, gameID, claimID)
		if err != nil {
			return err
		}
		if found.TeamID != teamID {
			return errNotYourClaim
		}
		if err := tx.Delete(found).Error; err != nil {
			return err
		}
		claim = found
		return persistEvent(tx, gameID, &found.TeamID, "claim_deleted", EventPayload{
			TeamID:    found.TeamID,
			KeywordID: found.KeywordID,
			ClaimID:   found.ID,
			PhotoPath: found.PhotoPath,
		})
	})
	if err != nil {
		return err
	}
	log.Printf("claim deleted game_id=%d team_id=%d claim_id=%d", gameID, teamID, claimID)
	s.removePhoto(ctx, claim.PhotoPath)
	s.publishClaimChange(gameID, claimID, feed.OpDelete)
	return nil
}

func (s *Server) removePhoto(ctx context.Context, key string) {
	if key == "" || key == db.PhotoPending || s.photos == nil {
		return
	}
	if err := s.photos.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("photo delete failed key=%s error=%v", key, err)
	}
}

// publishClaimChange feeds the in-process bus. With the postgres feed the
// database trigger announces changes instead.
func (s *Server) publishClaimChange(gameID, claimID uint, op string) {
	if !s.publishLocal || s.feed == nil {
		return
	}
	s.feed.Publish(feed.ClaimChange{GameID: gameID, ClaimID: claimID, Op: op})
}
