package match

import (
	"errors"
	"fmt"
	"time"
)

type Type string

const (
	TypeDirect    Type = "direct"
	TypeChallenge Type = "challenge"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFinished  Status = "finished"
	StatusCancelled Status = "cancelled"
)

var ErrInvalidTransition = errors.New("invalid match status transition")

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusFinished, StatusCancelled},
}

// Match is a fixture between a home team and an optional away team.
type Match struct {
	ID           string
	Type         Type
	HomeTeamID   string
	HomeTeamName string
	AwayTeamID   string
	AwayTeamName string
	Date         string
	Time         string
	City         string
	Stadium      string
	LocationURL  string
	Notes        string
	Status       Status
	CreatedBy    string
	CreatedAt    time.Time
}

type CreateParams struct {
	Type         Type
	HomeTeamID   string
	HomeTeamName string
	AwayTeamID   string
	AwayTeamName string
	Date         string
	Time         string
	City         string
	Stadium      string
	LocationURL  string
	Notes        string
	Status       Status
	CreatedBy    string
}

func ParseStatus(v string) (Status, error) {
	switch s := Status(v); s {
	case StatusPending, StatusConfirmed, StatusFinished, StatusCancelled:
		return s, nil
	default:
		return "", fmt.Errorf("unknown match status %q", v)
	}
}

func ParseType(v string) (Type, error) {
	switch t := Type(v); t {
	case TypeDirect, TypeChallenge:
		return t, nil
	default:
		return "", fmt.Errorf("unknown match type %q", v)
	}
}

// InitialStatus is the status a freshly created match of this type starts in.
func (t Type) InitialStatus() Status {
	if t == TypeChallenge {
		return StatusPending
	}
	return StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransition returns ErrInvalidTransition when from -> to is not a legal edge.
func ValidateTransition(from, to Status) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// ChallengeOutcome maps a challenge answer onto its target status.
func ChallengeOutcome(accept bool) Status {
	if accept {
		return StatusConfirmed
	}
	return StatusCancelled
}

func (m Match) HasTeam(teamID string) bool {
	if teamID == "" {
		return false
	}
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}
