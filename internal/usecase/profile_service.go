package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/koralink/internal/domain/player"
	"github.com/riskibarqy/koralink/internal/domain/preference"
	idgen "github.com/riskibarqy/koralink/internal/platform/id"
)

type SetupProfileInput struct {
	Name         string
	Position     string
	Level        string
	City         string
	Area         string
	AgeGroup     string
	ShowAgeGroup bool
}

// UpdateProfileInput edits the mutable profile fields. IDs and CreatedAt are
// fixed at setup.
type UpdateProfileInput = SetupProfileInput

type ProfileService struct {
	repo    player.Repository
	idGen   idgen.Generator
	newCode func(prefix string) (string, error)
	now     func() time.Time
}

func NewProfileService(repo player.Repository, idGen idgen.Generator) *ProfileService {
	return &ProfileService{
		repo:    repo,
		idGen:   idGen,
		newCode: idgen.NewPlayerCode,
		now:     time.Now,
	}
}

func (s *ProfileService) Get(ctx context.Context) (player.Profile, bool, error) {
	item, exists, err := s.repo.GetProfile(ctx)
	if err != nil {
		return player.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}
	return item, exists, nil
}

// Current returns the device profile or ErrUnauthorized before onboarding.
func (s *ProfileService) Current(ctx context.Context) (player.Profile, error) {
	item, exists, err := s.Get(ctx)
	if err != nil {
		return player.Profile{}, err
	}
	if !exists {
		return player.Profile{}, fmt.Errorf("%w: profile is not set up", ErrUnauthorized)
	}
	return item, nil
}

// Setup creates the device profile once, allocating the internal id and the
// shareable PL- code.
func (s *ProfileService) Setup(ctx context.Context, input SetupProfileInput) (player.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Setup")
	defer span.End()

	_, exists, err := s.repo.GetProfile(ctx)
	if err != nil {
		return player.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if exists {
		return player.Profile{}, fmt.Errorf("%w: profile already set up", ErrConflict)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return player.Profile{}, fmt.Errorf("generate profile id: %w", err)
	}
	code, err := s.newCode(player.PublicIDPrefix)
	if err != nil {
		return player.Profile{}, fmt.Errorf("generate player code: %w", err)
	}

	item := applyProfileInput(player.Profile{
		ID:        id,
		PlayerID:  code,
		CreatedAt: s.now().UTC(),
	}, input)
	if err := item.Validate(); err != nil {
		return player.Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.SaveProfile(ctx, item); err != nil {
		return player.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return item, nil
}

func (s *ProfileService) Update(ctx context.Context, input UpdateProfileInput) (player.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Update")
	defer span.End()

	current, err := s.Current(ctx)
	if err != nil {
		return player.Profile{}, err
	}

	item := applyProfileInput(current, input)
	if err := item.Validate(); err != nil {
		return player.Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.SaveProfile(ctx, item); err != nil {
		return player.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return item, nil
}

// Logout forgets the device profile. Records created by the player stay.
func (s *ProfileService) Logout(ctx context.Context) error {
	if err := s.repo.ClearProfile(ctx); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}

func applyProfileInput(item player.Profile, input SetupProfileInput) player.Profile {
	item.Name = strings.TrimSpace(input.Name)
	item.Position = player.Position(strings.ToUpper(strings.TrimSpace(input.Position)))
	item.Level = player.Level(strings.ToLower(strings.TrimSpace(input.Level)))
	item.City = strings.TrimSpace(input.City)
	item.Area = strings.TrimSpace(input.Area)
	item.AgeGroup = player.AgeGroup(strings.TrimSpace(input.AgeGroup))
	item.ShowAgeGroup = input.ShowAgeGroup
	return item
}

type ThemeService struct {
	repo preference.Repository
}

func NewThemeService(repo preference.Repository) *ThemeService {
	return &ThemeService{repo: repo}
}

func (s *ThemeService) Get(ctx context.Context) (preference.Theme, error) {
	theme, err := s.repo.GetTheme(ctx)
	if err != nil {
		return preference.DefaultTheme, fmt.Errorf("get theme: %w", err)
	}
	return theme, nil
}

func (s *ThemeService) Set(ctx context.Context, value string) (preference.Theme, error) {
	theme, err := preference.ParseTheme(strings.ToLower(strings.TrimSpace(value)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.SetTheme(ctx, theme); err != nil {
		return "", fmt.Errorf("set theme: %w", err)
	}
	return theme, nil
}
