package server

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	gameCodeLength   = 6
	gameCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// newGameCode draws a short code players can read off a poster. Letters and
// digits that look alike (0/O, 1/I) are left out.
func newGameCode() (string, error) {
	limit := big.NewInt(int64(len(gameCodeAlphabet)))
	code := make([]byte, gameCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate game code: %w", err)
		}
		code[i] = gameCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// teamColor spaces hues by the golden angle so neighbouring teams on the
// scoreboard never share a color.
func teamColor(index int) string {
	if index < 0 {
		index = 0
	}
	hue := (index * 137) % 360
	return fmt.Sprintf("hsl(%d, 70%%, 55%%)", hue)
}
