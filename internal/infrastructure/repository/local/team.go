package local

import (
	"context"
	"slices"

	"github.com/riskibarqy/koralink/internal/domain/team"
)

func (s *Store) ListTeams(_ context.Context) ([]team.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneTeams(s.teams), nil
}

// ListTeamsByPlayer returns the teams the player captains or belongs to.
func (s *Store) ListTeamsByPlayer(_ context.Context, playerID string) ([]team.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneTeams(filterCopy(s.teams, func(t team.Team) bool {
		return t.Involves(playerID)
	})), nil
}

func (s *Store) GetTeam(_ context.Context, teamID string) (team.Team, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.teams, func(t team.Team) bool { return t.ID == teamID })
	if idx < 0 {
		return team.Team{}, false, nil
	}
	return s.teams[idx].Clone(), true, nil
}

// CreateTeam stores the team as given. The captain is not added to
// MemberIDs here.
func (s *Store) CreateTeam(ctx context.Context, params team.CreateParams) (team.Team, error) {
	id, err := s.newID("team")
	if err != nil {
		return team.Team{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := team.Team{
		ID:        id,
		Name:      params.Name,
		City:      params.City,
		Level:     params.Level,
		CaptainID: params.CaptainID,
		MemberIDs: append([]string{}, params.MemberIDs...),
		CreatedAt: s.now().UTC(),
	}

	next := append(slices.Clone(s.teams), item)
	if err := s.saveTeams(ctx, next); err != nil {
		return team.Team{}, err
	}
	s.teams = next
	return item.Clone(), nil
}

// DeleteTeam removes the team only. Invites, matches and ratings that
// reference it are left untouched.
func (s *Store) DeleteTeam(ctx context.Context, teamID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.ContainsFunc(s.teams, func(t team.Team) bool { return t.ID == teamID }) {
		return false, nil
	}

	next := filterCopy(s.teams, func(t team.Team) bool { return t.ID != teamID })
	if err := s.saveTeams(ctx, next); err != nil {
		return false, err
	}
	s.teams = next
	return true, nil
}

// RemoveMember drops playerID from the member list. Removing a non-member is
// a no-op that still reports the team as found.
func (s *Store) RemoveMember(ctx context.Context, teamID, playerID string) (team.Team, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.teams, func(t team.Team) bool { return t.ID == teamID })
	if idx < 0 {
		return team.Team{}, false, nil
	}

	updated := s.teams[idx].Clone()
	updated.MemberIDs = slices.DeleteFunc(updated.MemberIDs, func(id string) bool { return id == playerID })

	next := slices.Clone(s.teams)
	next[idx] = updated
	if err := s.saveTeams(ctx, next); err != nil {
		return team.Team{}, false, err
	}
	s.teams = next
	return updated.Clone(), true, nil
}
