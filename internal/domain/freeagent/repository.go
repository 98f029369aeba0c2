package freeagent

import "context"

type Repository interface {
	ListFreeAgents(ctx context.Context) ([]FreeAgent, error)
	ListActiveFreeAgents(ctx context.Context) ([]FreeAgent, error)
	IsPlayerFreeAgent(ctx context.Context, playerID string) (bool, error)
	// ToggleFreeAgent withdraws the player's active advert or publishes a new
	// one. active reports the state after the call.
	ToggleFreeAgent(ctx context.Context, params ToggleParams) (item FreeAgent, active bool, err error)
}
