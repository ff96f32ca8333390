package server

import (
	"context"
	"log"

	"photo-hunt/internal/db"
	"photo-hunt/internal/feed"

	"gorm.io/gorm"
)

// addKeyword appends a keyword after the current highest order_index.
// Text must already be validated.
func (s *Server) addKeyword(ctx context.Context, gameID uint, text string, points int) (*db.Keyword, error) {
	var keyword db.Keyword
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureGame(tx, gameID); err != nil {
			return err
		}
		order, err := db.NextKeywordOrder(tx, gameID)
		if err != nil {
			return err
		}
		keyword = db.Keyword{
			GameID:     gameID,
			Text:       text,
			Points:     points,
			OrderIndex: order,
		}
		if err := tx.Create(&keyword).Error; err != nil {
			return err
		}
		return persistEvent(tx, gameID, nil, "keyword_added", EventPayload{
			KeywordID: keyword.ID,
			Keyword:   keyword.Text,
			Points:    keyword.Points,
		})
	})
	if err != nil {
		return nil, err
	}
	go s.refreshGame(gameID)
	return &keyword, nil
}

func (s *Server) updateKeyword(ctx context.Context, gameID, keywordID uint, patch keywordPatch) (*db.Keyword, error) {
	var keyword *db.Keyword
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findKeyword(tx, gameID, keywordID)
		if err != nil {
			return err
		}
		updates := map[string]any{}
		if patch.Text != nil {
			updates["text"] = *patch.Text
			found.Text = *patch.Text
		}
		if patch.Points != nil {
			updates["points"] = *patch.Points
			found.Points = *patch.Points
		}
		if patch.OrderIndex != nil {
			updates["order_index"] = *patch.OrderIndex
			found.OrderIndex = *patch.OrderIndex
		}
		keyword = found
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&db.Keyword{}).Where("id = ?", found.ID).Updates(updates).Error; err != nil {
			return err
		}
		return persistEvent(tx, gameID, nil, "keyword_updated", EventPayload{
			KeywordID: found.ID,
			Keyword:   found.Text,
			Points:    found.Points,
		})
	})
	if err != nil {
		return nil, err
	}
	go s.refreshGame(gameID)
	return keyword, nil
}

// deleteKeyword removes the keyword with its claims. Photos go after the commit.
func (s *Server) deleteKeyword(ctx context.Context, gameID, keywordID uint) error {
	var claims []db.Claim
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keyword, err := findKeyword(tx, gameID, keywordID)
		if err != nil {
			return err
		}
		if err := tx.Where("keyword_id = ?", keyword.ID).Find(&claims).Error; err != nil {
			return err
		}
		if err := tx.Where("keyword_id = ?", keyword.ID).Delete(&db.Claim{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(keyword).Error; err != nil {
			return err
		}
		return persistEvent(tx, gameID, nil, "keyword_deleted", EventPayload{
			KeywordID: keyword.ID,
			Keyword:   keyword.Text,
			Count:     len(claims),
		})
	})
	if err != nil {
		return err
	}
	log.Printf("keyword deleted game_id=%d keyword_id=%d claims=%d", gameID, keywordID, len(claims))
	s.dropClaims(ctx, claims)
	go s.refreshGame(gameID)
	return nil
}

// dropClaims cleans up after claim rows are gone: photos are removed best
// effort and a delete is published for each claim.
func (s *Server) dropClaims(ctx context.Context, claims []db.Claim) {
	for _, claim := range claims {
		s.removePhoto(ctx, claim.PhotoPath)
		s.publishClaimChange(claim.GameID, claim.ID, feed.OpDelete)
	}
}
