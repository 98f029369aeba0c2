package local

import (
	"bytes"
	"context"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/koralink/internal/domain/player"
	"github.com/riskibarqy/koralink/internal/domain/preference"
	"github.com/riskibarqy/koralink/internal/infrastructure/kvstore"
)

// Profile and theme are single-value slots read straight from kv and
// written through in every persist mode.

func (s *Store) GetProfile(ctx context.Context) (player.Profile, bool, error) {
	raw, found, err := s.kv.Get(ctx, kvstore.KeyProfile)
	if err != nil {
		return player.Profile{}, false, crerr.Wrap(err, "load profile")
	}
	if !found || isNullJSON(raw) {
		return player.Profile{}, false, nil
	}

	var record profileRecord
	if err := sonic.Unmarshal(raw, &record); err != nil {
		return player.Profile{}, false, crerr.Wrap(err, "decode profile")
	}
	return profileFromRecord(record), true, nil
}

func (s *Store) SaveProfile(ctx context.Context, profile player.Profile) error {
	payload, err := sonic.Marshal(profileToRecord(profile))
	if err != nil {
		return crerr.Wrap(err, "encode profile")
	}
	if err := s.kv.Set(ctx, kvstore.KeyProfile, payload); err != nil {
		return crerr.Wrap(err, "save profile")
	}
	return nil
}

// ClearProfile removes the device identity. Teams and other records that
// reference the player are kept.
func (s *Store) ClearProfile(ctx context.Context) error {
	if err := s.kv.Delete(ctx, kvstore.KeyProfile); err != nil {
		return crerr.Wrap(err, "clear profile")
	}
	return nil
}

// GetTheme falls back to the default theme for absent or unknown values.
func (s *Store) GetTheme(ctx context.Context) (preference.Theme, error) {
	raw, found, err := s.kv.Get(ctx, kvstore.KeyTheme)
	if err != nil {
		return preference.DefaultTheme, crerr.Wrap(err, "load theme")
	}
	if !found || isNullJSON(raw) {
		return preference.DefaultTheme, nil
	}

	var value string
	if err := sonic.Unmarshal(raw, &value); err != nil {
		s.logger.Warn("ignoring malformed theme slot", "error", err)
		return preference.DefaultTheme, nil
	}
	theme, err := preference.ParseTheme(value)
	if err != nil {
		return preference.DefaultTheme, nil
	}
	return theme, nil
}

func (s *Store) SetTheme(ctx context.Context, theme preference.Theme) error {
	payload, err := sonic.Marshal(string(theme))
	if err != nil {
		return crerr.Wrap(err, "encode theme")
	}
	if err := s.kv.Set(ctx, kvstore.KeyTheme, payload); err != nil {
		return crerr.Wrap(err, "save theme")
	}
	return nil
}

func isNullJSON(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
