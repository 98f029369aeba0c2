package preference

import (
	"context"
	"fmt"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const DefaultTheme = ThemeLight

func ParseTheme(v string) (Theme, error) {
	switch t := Theme(v); t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q", v)
	}
}

// Repository stores device-level UI preferences.
type Repository interface {
	GetTheme(ctx context.Context) (Theme, error)
	SetTheme(ctx context.Context, theme Theme) error
}
