package local

import (
	"context"
	"slices"
	"time"

	"github.com/riskibarqy/koralink/internal/domain/freeagent"
)

func (s *Store) ListFreeAgents(_ context.Context) ([]freeagent.FreeAgent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.freeAgents), nil
}

// ListActiveFreeAgents filters on ExpiresAt at call time. Expired adverts
// stay in storage.
func (s *Store) ListActiveFreeAgents(_ context.Context) ([]freeagent.FreeAgent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	return filterCopy(s.freeAgents, func(a freeagent.FreeAgent) bool { return a.ActiveAt(now) }), nil
}

func (s *Store) IsPlayerFreeAgent(_ context.Context, playerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.activeFreeAgentIndex(playerID, s.now()) >= 0, nil
}

func (s *Store) ToggleFreeAgent(ctx context.Context, params freeagent.ToggleParams) (freeagent.FreeAgent, bool, error) {
	id, err := s.newID("free agent")
	if err != nil {
		return freeagent.FreeAgent{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if idx := s.activeFreeAgentIndex(params.PlayerID, now); idx >= 0 {
		withdrawn := s.freeAgents[idx]
		next := slices.Delete(slices.Clone(s.freeAgents), idx, idx+1)
		if err := s.saveFreeAgents(ctx, next); err != nil {
			return freeagent.FreeAgent{}, true, err
		}
		s.freeAgents = next
		return withdrawn, false, nil
	}

	item := freeagent.FreeAgent{
		ID:         id,
		PlayerID:   params.PlayerID,
		PlayerName: params.PlayerName,
		Position:   params.Position,
		City:       params.City,
		Area:       params.Area,
		Level:      params.Level,
		Note:       params.Note,
		CreatedAt:  now.UTC(),
		ExpiresAt:  now.Add(s.ttl).UTC(),
	}
	next := append(slices.Clone(s.freeAgents), item)
	if err := s.saveFreeAgents(ctx, next); err != nil {
		return freeagent.FreeAgent{}, false, err
	}
	s.freeAgents = next
	return item, true, nil
}

func (s *Store) activeFreeAgentIndex(playerID string, now time.Time) int {
	return slices.IndexFunc(s.freeAgents, func(a freeagent.FreeAgent) bool {
		return a.PlayerID == playerID && a.ActiveAt(now)
	})
}
