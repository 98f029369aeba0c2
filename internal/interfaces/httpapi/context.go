package httpapi

import (
	"context"

	"github.com/riskibarqy/koralink/internal/domain/player"
)

type contextKey string

const profileContextKey contextKey = "device_profile"

func withProfile(ctx context.Context, p player.Profile) context.Context {
	return context.WithValue(ctx, profileContextKey, p)
}

func profileFromContext(ctx context.Context) (player.Profile, bool) {
	p, ok := ctx.Value(profileContextKey).(player.Profile)
	return p, ok
}
