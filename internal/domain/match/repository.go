package match

import "context"

type Repository interface {
	ListMatches(ctx context.Context) ([]Match, error)
	ListMatchesByPlayer(ctx context.Context, playerID string) ([]Match, error)
	GetMatch(ctx context.Context, matchID string) (Match, bool, error)
	CreateMatch(ctx context.Context, params CreateParams) (Match, error)
	UpdateMatchStatus(ctx context.Context, matchID string, status Status) (Match, bool, error)
	RespondChallenge(ctx context.Context, matchID string, accept bool) (Match, bool, error)
}
