package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/koralink/internal/domain/freeagent"
	"github.com/riskibarqy/koralink/internal/domain/player"
)

type FreeAgentFilter struct {
	City     string
	Position string
}

type FreeAgentService struct {
	repo freeagent.Repository
}

func NewFreeAgentService(repo freeagent.Repository) *FreeAgentService {
	return &FreeAgentService{repo: repo}
}

// Toggle publishes an availability advert built from the profile, or
// withdraws the active one. active is the state after the call.
func (s *FreeAgentService) Toggle(ctx context.Context, profile player.Profile, note string) (item freeagent.FreeAgent, active bool, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FreeAgentService.Toggle")
	defer span.End()

	if profile.PlayerID == "" {
		return freeagent.FreeAgent{}, false, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, active, err = s.repo.ToggleFreeAgent(ctx, freeagent.ToggleParams{
		PlayerID:   profile.PlayerID,
		PlayerName: profile.Name,
		Position:   profile.Position,
		City:       profile.City,
		Area:       profile.Area,
		Level:      profile.Level,
		Note:       strings.TrimSpace(note),
	})
	if err != nil {
		return freeagent.FreeAgent{}, false, fmt.Errorf("toggle free agent: %w", err)
	}
	return item, active, nil
}

func (s *FreeAgentService) ListActive(ctx context.Context, filter FreeAgentFilter) ([]freeagent.FreeAgent, error) {
	items, err := s.repo.ListActiveFreeAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active free agents: %w", err)
	}

	city := strings.TrimSpace(filter.City)
	position := player.Position(strings.ToUpper(strings.TrimSpace(filter.Position)))
	if city == "" && position == "" {
		return items, nil
	}

	out := make([]freeagent.FreeAgent, 0, len(items))
	for _, item := range items {
		if city != "" && !strings.EqualFold(item.City, city) {
			continue
		}
		if position != "" && item.Position != position {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *FreeAgentService) IsActive(ctx context.Context, playerID string) (bool, error) {
	playerID = normalizePlayerID(playerID)
	if playerID == "" {
		return false, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	active, err := s.repo.IsPlayerFreeAgent(ctx, playerID)
	if err != nil {
		return false, fmt.Errorf("check free agent: %w", err)
	}
	return active, nil
}
