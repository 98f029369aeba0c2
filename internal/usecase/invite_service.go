package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/koralink/internal/domain/invite"
	"github.com/riskibarqy/koralink/internal/domain/player"
	"github.com/riskibarqy/koralink/internal/domain/team"
	"github.com/riskibarqy/koralink/internal/platform/logging"
)

type InviteService struct {
	inviteRepo invite.Repository
	teamRepo   team.Repository
	logger     *logging.Logger
}

func NewInviteService(inviteRepo invite.Repository, teamRepo team.Repository, logger *logging.Logger) *InviteService {
	if logger == nil {
		logger = logging.Default()
	}
	return &InviteService{
		inviteRepo: inviteRepo,
		teamRepo:   teamRepo,
		logger:     logger,
	}
}

// Send invites toPlayerID to the team captained by sender.
func (s *InviteService) Send(ctx context.Context, sender player.Profile, teamID, toPlayerID string) (invite.Invite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.Send")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	toPlayerID = normalizePlayerID(toPlayerID)
	if teamID == "" || toPlayerID == "" {
		return invite.Invite{}, fmt.Errorf("%w: team id and player id are required", ErrInvalidInput)
	}
	if toPlayerID == sender.PlayerID {
		return invite.Invite{}, fmt.Errorf("%w: cannot invite yourself", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetTeam(ctx, teamID)
	if err != nil {
		return invite.Invite{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return invite.Invite{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if item.CaptainID != sender.PlayerID {
		return invite.Invite{}, fmt.Errorf("%w: only the captain can invite players", ErrForbidden)
	}
	if item.HasMember(toPlayerID) {
		return invite.Invite{}, fmt.Errorf("%w: player %s is already a member", ErrConflict, toPlayerID)
	}

	pending, err := s.inviteRepo.ListPendingInvitesForPlayer(ctx, toPlayerID)
	if err != nil {
		return invite.Invite{}, fmt.Errorf("list pending invites: %w", err)
	}
	for _, p := range pending {
		if p.TeamID == item.ID {
			return invite.Invite{}, fmt.Errorf("%w: player %s already has a pending invite", ErrConflict, toPlayerID)
		}
	}

	sent, err := s.inviteRepo.SendInvite(ctx, invite.SendParams{
		TeamID:         item.ID,
		TeamName:       item.Name,
		FromPlayerID:   sender.PlayerID,
		FromPlayerName: sender.Name,
		ToPlayerID:     toPlayerID,
	})
	if err != nil {
		return invite.Invite{}, fmt.Errorf("send invite: %w", err)
	}

	s.logger.InfoContext(ctx, "invite sent", "invite_id", sent.ID, "team_id", item.ID, "to_player_id", toPlayerID)
	return sent, nil
}

// ListMine returns pending invites addressed to playerID.
func (s *InviteService) ListMine(ctx context.Context, playerID string) ([]invite.Invite, error) {
	playerID = normalizePlayerID(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	items, err := s.inviteRepo.ListPendingInvitesForPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list pending invites: %w", err)
	}
	return items, nil
}

// Respond answers an invite on behalf of its recipient.
func (s *InviteService) Respond(ctx context.Context, actorID, inviteID string, accept bool) (invite.Invite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.Respond")
	defer span.End()

	actorID = normalizePlayerID(actorID)
	inviteID = strings.TrimSpace(inviteID)
	if actorID == "" || inviteID == "" {
		return invite.Invite{}, fmt.Errorf("%w: actor and invite id are required", ErrInvalidInput)
	}

	item, exists, err := s.inviteRepo.GetInvite(ctx, inviteID)
	if err != nil {
		return invite.Invite{}, fmt.Errorf("get invite: %w", err)
	}
	if !exists {
		return invite.Invite{}, fmt.Errorf("%w: invite=%s", ErrNotFound, inviteID)
	}
	if item.ToPlayerID != actorID {
		return invite.Invite{}, fmt.Errorf("%w: invite is addressed to another player", ErrForbidden)
	}

	resolved, exists, err := s.inviteRepo.RespondInvite(ctx, inviteID, accept)
	if err != nil {
		return invite.Invite{}, fmt.Errorf("respond invite: %w", err)
	}
	if !exists {
		return invite.Invite{}, fmt.Errorf("%w: invite=%s", ErrNotFound, inviteID)
	}

	s.logger.InfoContext(ctx, "invite answered", "invite_id", inviteID, "status", string(resolved.Status))
	return resolved, nil
}
