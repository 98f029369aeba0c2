package player

import (
	"fmt"
	"strings"
	"time"
)

// Position represents the preferred pitch role of a player.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// Level is a self-declared skill bracket, shared by players and teams.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelPro          Level = "pro"
)

var AllLevels = map[Level]struct{}{
	LevelBeginner:     {},
	LevelIntermediate: {},
	LevelAdvanced:     {},
	LevelPro:          {},
}

type AgeGroup string

const (
	AgeGroupUnder14 AgeGroup = "U14"
	AgeGroup14To17  AgeGroup = "14-17"
	AgeGroup18To24  AgeGroup = "18-24"
	AgeGroup25To34  AgeGroup = "25-34"
	AgeGroup35To44  AgeGroup = "35-44"
	AgeGroup45Plus  AgeGroup = "45+"
)

var AllAgeGroups = map[AgeGroup]struct{}{
	AgeGroupUnder14: {},
	AgeGroup14To17:  {},
	AgeGroup18To24:  {},
	AgeGroup25To34:  {},
	AgeGroup35To44:  {},
	AgeGroup45Plus:  {},
}

// PublicIDPrefix prefixes the human-shareable player code.
const PublicIDPrefix = "PL-"

// Profile is the device owner's player identity.
type Profile struct {
	ID           string
	PlayerID     string
	Name         string
	Position     Position
	Level        Level
	City         string
	Area         string
	AgeGroup     AgeGroup
	ShowAgeGroup bool
	CreatedAt    time.Time
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("profile id is required")
	}
	if !strings.HasPrefix(p.PlayerID, PublicIDPrefix) {
		return fmt.Errorf("player id must start with %s", PublicIDPrefix)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("unknown position %q", p.Position)
	}
	if _, ok := AllLevels[p.Level]; !ok {
		return fmt.Errorf("unknown level %q", p.Level)
	}
	if _, ok := AllAgeGroups[p.AgeGroup]; !ok {
		return fmt.Errorf("unknown age group %q", p.AgeGroup)
	}
	if strings.TrimSpace(p.City) == "" {
		return fmt.Errorf("city is required")
	}

	return nil
}
