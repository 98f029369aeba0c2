package report

import "time"

type TargetType string

const (
	TargetTeam   TargetType = "team"
	TargetPlayer TargetType = "player"
	TargetMatch  TargetType = "match"
)

var AllTargetTypes = map[TargetType]struct{}{
	TargetTeam:   {},
	TargetPlayer: {},
	TargetMatch:  {},
}

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Report is a complaint filed against a team, player or match.
type Report struct {
	ID           string
	ReporterID   string
	ReporterName string
	TargetType   TargetType
	TargetID     string
	TargetName   string
	Reason       string
	Details      string
	Status       Status
	CreatedAt    time.Time
}

type AddParams struct {
	ReporterID   string
	ReporterName string
	TargetType   TargetType
	TargetID     string
	TargetName   string
	Reason       string
	Details      string
}
