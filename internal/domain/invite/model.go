package invite

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// ErrAlreadyResolved is returned when answering an invite that is no longer pending.
var ErrAlreadyResolved = errors.New("invite already resolved")

// Invite asks one player to join a team on behalf of its captain.
type Invite struct {
	ID             string
	TeamID         string
	TeamName       string
	FromPlayerID   string
	FromPlayerName string
	ToPlayerID     string
	Status         Status
	CreatedAt      time.Time
}

type SendParams struct {
	TeamID         string
	TeamName       string
	FromPlayerID   string
	FromPlayerName string
	ToPlayerID     string
}

func (i Invite) IsPending() bool {
	return i.Status == StatusPending
}

// Resolve maps an answer onto the terminal status it produces.
func Resolve(accept bool) Status {
	if accept {
		return StatusAccepted
	}
	return StatusRejected
}
