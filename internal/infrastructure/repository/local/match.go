package local

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/koralink/internal/domain/match"
)

func (s *Store) ListMatches(_ context.Context) ([]match.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.matches), nil
}

// ListMatchesByPlayer returns matches where either side is one of the
// player's teams.
func (s *Store) ListMatchesByPlayer(_ context.Context, playerID string) ([]match.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mine := make(map[string]struct{})
	for _, t := range s.teams {
		if t.Involves(playerID) {
			mine[t.ID] = struct{}{}
		}
	}

	return filterCopy(s.matches, func(m match.Match) bool {
		if _, ok := mine[m.HomeTeamID]; ok {
			return true
		}
		if m.AwayTeamID == "" {
			return false
		}
		_, ok := mine[m.AwayTeamID]
		return ok
	}), nil
}

func (s *Store) GetMatch(_ context.Context, matchID string) (match.Match, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.matchIndex(matchID)
	if idx < 0 {
		return match.Match{}, false, nil
	}
	return s.matches[idx], true, nil
}

// CreateMatch trusts params.Status; callers derive it from the match type.
func (s *Store) CreateMatch(ctx context.Context, params match.CreateParams) (match.Match, error) {
	id, err := s.newID("match")
	if err != nil {
		return match.Match{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := match.Match{
		ID:           id,
		Type:         params.Type,
		HomeTeamID:   params.HomeTeamID,
		HomeTeamName: params.HomeTeamName,
		AwayTeamID:   params.AwayTeamID,
		AwayTeamName: params.AwayTeamName,
		Date:         params.Date,
		Time:         params.Time,
		City:         params.City,
		Stadium:      params.Stadium,
		LocationURL:  params.LocationURL,
		Notes:        params.Notes,
		Status:       params.Status,
		CreatedBy:    params.CreatedBy,
		CreatedAt:    s.now().UTC(),
	}

	next := append(slices.Clone(s.matches), item)
	if err := s.saveMatches(ctx, next); err != nil {
		return match.Match{}, err
	}
	s.matches = next
	return item, nil
}

// UpdateMatchStatus applies status when the state machine allows it and
// returns match.ErrInvalidTransition otherwise.
func (s *Store) UpdateMatchStatus(ctx context.Context, matchID string, status match.Status) (match.Match, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.transitionMatch(ctx, matchID, status)
}

// RespondChallenge confirms (accept) or cancels a pending match. A challenge
// is answered once: any other status returns match.ErrInvalidTransition.
func (s *Store) RespondChallenge(ctx context.Context, matchID string, accept bool) (match.Match, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.matchIndex(matchID)
	if idx < 0 {
		return match.Match{}, false, nil
	}
	if current := s.matches[idx]; current.Status != match.StatusPending {
		return current, true, fmt.Errorf("%w: challenge %s already answered, status %s",
			match.ErrInvalidTransition, matchID, current.Status)
	}

	return s.transitionMatch(ctx, matchID, match.ChallengeOutcome(accept))
}

func (s *Store) transitionMatch(ctx context.Context, matchID string, status match.Status) (match.Match, bool, error) {
	idx := s.matchIndex(matchID)
	if idx < 0 {
		return match.Match{}, false, nil
	}

	current := s.matches[idx]
	if err := match.ValidateTransition(current.Status, status); err != nil {
		return current, true, err
	}

	updated := current
	updated.Status = status
	next := slices.Clone(s.matches)
	next[idx] = updated
	if err := s.saveMatches(ctx, next); err != nil {
		return match.Match{}, true, err
	}
	s.matches = next
	return updated, true, nil
}

func (s *Store) matchIndex(matchID string) int {
	return slices.IndexFunc(s.matches, func(m match.Match) bool { return m.ID == matchID })
}
