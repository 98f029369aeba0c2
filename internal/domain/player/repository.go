package player

import "context"

// Repository stores the single profile owned by this device.
type Repository interface {
	GetProfile(ctx context.Context) (Profile, bool, error)
	SaveProfile(ctx context.Context, profile Profile) error
	ClearProfile(ctx context.Context) error
}
