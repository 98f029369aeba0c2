package team

import (
	"slices"
	"time"

	"github.com/riskibarqy/koralink/internal/domain/player"
)

// Team is an amateur squad managed by one captain.
type Team struct {
	ID            string
	Name          string
	City          string
	Level         player.Level
	CaptainID     string
	MemberIDs     []string
	AverageRating float64
	TotalRatings  int
	CreatedAt     time.Time
}

// CreateParams carries the caller-owned fields of a new team.
type CreateParams struct {
	Name      string
	City      string
	Level     player.Level
	CaptainID string
	MemberIDs []string
}

func (t Team) HasMember(playerID string) bool {
	return slices.Contains(t.MemberIDs, playerID)
}

// Involves reports whether the player captains or plays for the team.
func (t Team) Involves(playerID string) bool {
	return t.CaptainID == playerID || t.HasMember(playerID)
}

func (t Team) Clone() Team {
	copied := t
	copied.MemberIDs = append([]string(nil), t.MemberIDs...)
	return copied
}
