package invite

import "context"

type Repository interface {
	ListInvites(ctx context.Context) ([]Invite, error)
	ListPendingInvitesForPlayer(ctx context.Context, playerID string) ([]Invite, error)
	GetInvite(ctx context.Context, inviteID string) (Invite, bool, error)
	SendInvite(ctx context.Context, params SendParams) (Invite, error)
	// RespondInvite resolves a pending invite. Accepting also adds the
	// recipient to the team when not already a member.
	RespondInvite(ctx context.Context, inviteID string, accept bool) (Invite, bool, error)
}
