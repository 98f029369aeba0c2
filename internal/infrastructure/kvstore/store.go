package kvstore

import (
	"context"
	"errors"
)

// Slot keys. The names match the storage layout of the mobile app so an
// exported device store can be loaded as-is.
const (
	KeyProfile    = "@koralink_profile"
	KeyTeams      = "@koralink_teams"
	KeyInvites    = "@koralink_invites"
	KeyMatches    = "@koralink_matches"
	KeyRatings    = "@koralink_ratings"
	KeyFreeAgents = "@koralink_free_agents"
	KeyReports    = "@koralink_reports"
	KeyTheme      = "@koralink_theme"
)

var ErrClosed = errors.New("kv store is closed")

// Store is a string-keyed blob store. Values are overwritten wholesale.
type Store interface {
	// Get returns (nil, false, nil) when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
