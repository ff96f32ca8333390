package server

import "photo-hunt/internal/db"

// teamScore sums the points of every keyword the team holds a claim on.
func teamScore(teamID uint, claims []db.Claim, keywords []db.Keyword) int {
	points := make(map[uint]int, len(keywords))
	for _, keyword := range keywords {
		points[keyword.ID] = keyword.Points
	}
	total := 0
	for _, claim := range claims {
		if claim.TeamID == teamID {
			total += points[claim.KeywordID]
		}
	}
	return total
}

// buildScores returns one entry per team, in the order the teams were given.
func buildScores(state gameState) []TeamScore {
	scores := make([]TeamScore, 0, len(state.Teams))
	for i, team := range state.Teams {
		count := 0
		for _, claim := range state.Claims {
			if claim.TeamID == team.ID {
				count++
			}
		}
		scores = append(scores, TeamScore{
			TeamID: team.ID,
			Name:   team.Name,
			Color:  teamColor(i),
			Score:  teamScore(team.ID, state.Claims, state.Keywords),
			Claims: count,
		})
	}
	return scores
}

func isClaimedByTeam(teamID, keywordID uint, claims []db.Claim) bool {
	for _, claim := range claims {
		if claim.TeamID == teamID && claim.KeywordID == keywordID {
			return true
		}
	}
	return false
}

// teamPhotos lists the team's claims that have a stored photo.
func teamPhotos(teamID uint, claims []db.Claim) []db.Claim {
	photos := make([]db.Claim, 0)
	for _, claim := range claims {
		if claim.TeamID != teamID || claim.PhotoPath == "" || claim.PhotoPath == db.PhotoPending {
			continue
		}
		photos = append(photos, claim)
	}
	return photos
}
