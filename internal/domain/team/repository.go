package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListTeams(ctx context.Context) ([]Team, error)
	ListTeamsByPlayer(ctx context.Context, playerID string) ([]Team, error)
	GetTeam(ctx context.Context, teamID string) (Team, bool, error)
	CreateTeam(ctx context.Context, params CreateParams) (Team, error)
	DeleteTeam(ctx context.Context, teamID string) (bool, error)
	RemoveMember(ctx context.Context, teamID, playerID string) (Team, bool, error)
}
