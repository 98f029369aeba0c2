package freeagent

import (
	"time"

	"github.com/riskibarqy/koralink/internal/domain/player"
)

// DefaultTTL is how long an availability advert stays visible.
const DefaultTTL = 24 * time.Hour

// FreeAgent advertises that a player is open to recruitment until ExpiresAt.
type FreeAgent struct {
	ID         string
	PlayerID   string
	PlayerName string
	Position   player.Position
	City       string
	Area       string
	Level      player.Level
	Note       string
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

type ToggleParams struct {
	PlayerID   string
	PlayerName string
	Position   player.Position
	City       string
	Area       string
	Level      player.Level
	Note       string
}

// ActiveAt reports whether the advert is still visible at now.
func (a FreeAgent) ActiveAt(now time.Time) bool {
	return a.ExpiresAt.After(now)
}
