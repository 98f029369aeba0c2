package local

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/koralink/internal/domain/invite"
	"github.com/riskibarqy/koralink/internal/domain/team"
)

func (s *Store) ListInvites(_ context.Context) ([]invite.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.invites), nil
}

func (s *Store) ListPendingInvitesForPlayer(_ context.Context, playerID string) ([]invite.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return filterCopy(s.invites, func(i invite.Invite) bool {
		return i.ToPlayerID == playerID && i.IsPending()
	}), nil
}

func (s *Store) GetInvite(_ context.Context, inviteID string) (invite.Invite, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.invites, func(i invite.Invite) bool { return i.ID == inviteID })
	if idx < 0 {
		return invite.Invite{}, false, nil
	}
	return s.invites[idx], true, nil
}

// SendInvite creates a pending invite. Duplicates for the same recipient are
// allowed.
func (s *Store) SendInvite(ctx context.Context, params invite.SendParams) (invite.Invite, error) {
	id, err := s.newID("invite")
	if err != nil {
		return invite.Invite{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := invite.Invite{
		ID:             id,
		TeamID:         params.TeamID,
		TeamName:       params.TeamName,
		FromPlayerID:   params.FromPlayerID,
		FromPlayerName: params.FromPlayerName,
		ToPlayerID:     params.ToPlayerID,
		Status:         invite.StatusPending,
		CreatedAt:      s.now().UTC(),
	}

	next := append(slices.Clone(s.invites), item)
	if err := s.saveInvites(ctx, next); err != nil {
		return invite.Invite{}, err
	}
	s.invites = next
	return item, nil
}

// RespondInvite resolves a pending invite and, on accept, appends the
// recipient to the team unless already a member. The teams slot is written
// first and restored if the invites write fails, so a failed accept leaves
// the invite pending and can be retried.
func (s *Store) RespondInvite(ctx context.Context, inviteID string, accept bool) (invite.Invite, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.invites, func(i invite.Invite) bool { return i.ID == inviteID })
	if idx < 0 {
		return invite.Invite{}, false, nil
	}

	current := s.invites[idx]
	if !current.IsPending() {
		return current, true, fmt.Errorf("%w: invite %s is %s", invite.ErrAlreadyResolved, inviteID, current.Status)
	}

	resolved := current
	resolved.Status = invite.Resolve(accept)
	nextInvites := slices.Clone(s.invites)
	nextInvites[idx] = resolved

	var nextTeams []team.Team
	teamIdx := slices.IndexFunc(s.teams, func(t team.Team) bool { return t.ID == resolved.TeamID })
	if accept && teamIdx >= 0 && !s.teams[teamIdx].HasMember(resolved.ToPlayerID) {
		joined := s.teams[teamIdx].Clone()
		joined.MemberIDs = append(joined.MemberIDs, resolved.ToPlayerID)
		nextTeams = slices.Clone(s.teams)
		nextTeams[teamIdx] = joined
	}

	if err := s.saveWithTeams(ctx, nextTeams, func() error { return s.saveInvites(ctx, nextInvites) }); err != nil {
		return invite.Invite{}, true, err
	}
	if nextTeams != nil {
		s.teams = nextTeams
	}
	s.invites = nextInvites
	return resolved, true, nil
}
