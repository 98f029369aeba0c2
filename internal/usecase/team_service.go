package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/koralink/internal/domain/player"
	"github.com/riskibarqy/koralink/internal/domain/rating"
	"github.com/riskibarqy/koralink/internal/domain/team"
	"github.com/riskibarqy/koralink/internal/platform/logging"
)

type CreateTeamInput struct {
	Name      string
	City      string
	Level     string
	MemberIDs []string
}

type TeamService struct {
	teamRepo   team.Repository
	ratingRepo rating.Repository
	logger     *logging.Logger
}

func NewTeamService(teamRepo team.Repository, ratingRepo rating.Repository, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{
		teamRepo:   teamRepo,
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

// Create registers a team captained by captainID. The captain is always
// part of MemberIDs.
func (s *TeamService) Create(ctx context.Context, captainID string, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	captainID = normalizePlayerID(captainID)
	input.Name = strings.TrimSpace(input.Name)
	input.City = strings.TrimSpace(input.City)
	level := player.Level(strings.ToLower(strings.TrimSpace(input.Level)))

	if captainID == "" {
		return team.Team{}, fmt.Errorf("%w: captain is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if input.City == "" {
		return team.Team{}, fmt.Errorf("%w: city is required", ErrInvalidInput)
	}
	if _, ok := player.AllLevels[level]; !ok {
		return team.Team{}, fmt.Errorf("%w: unknown level %q", ErrInvalidInput, input.Level)
	}

	created, err := s.teamRepo.CreateTeam(ctx, team.CreateParams{
		Name:      input.Name,
		City:      input.City,
		Level:     level,
		CaptainID: captainID,
		MemberIDs: normalizeMemberIDs(append([]string{captainID}, input.MemberIDs...)),
	})
	if err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", created.ID, "captain_id", captainID)
	return created, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetTeam(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}

// List returns all teams, optionally narrowed to names containing query.
func (s *TeamService) List(ctx context.Context, query string) ([]team.Team, error) {
	items, err := s.teamRepo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items, nil
	}
	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *TeamService) ListMine(ctx context.Context, playerID string) ([]team.Team, error) {
	playerID = normalizePlayerID(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	items, err := s.teamRepo.ListTeamsByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list teams by player: %w", err)
	}
	return items, nil
}

// Delete removes the team. Only its captain may do so.
func (s *TeamService) Delete(ctx context.Context, actorID, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	item, err := s.captainedTeam(ctx, actorID, teamID)
	if err != nil {
		return err
	}

	deleted, err := s.teamRepo.DeleteTeam(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: team=%s", ErrNotFound, item.ID)
	}

	s.logger.InfoContext(ctx, "team deleted", "team_id", item.ID)
	return nil
}

// RemoveMember drops a member. The captain cannot be removed.
func (s *TeamService) RemoveMember(ctx context.Context, actorID, teamID, playerID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RemoveMember")
	defer span.End()

	playerID = normalizePlayerID(playerID)
	if playerID == "" {
		return team.Team{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, err := s.captainedTeam(ctx, actorID, teamID)
	if err != nil {
		return team.Team{}, err
	}
	if playerID == item.CaptainID {
		return team.Team{}, fmt.Errorf("%w: the captain cannot be removed", ErrInvalidInput)
	}

	updated, exists, err := s.teamRepo.RemoveMember(ctx, item.ID, playerID)
	if err != nil {
		return team.Team{}, fmt.Errorf("remove member: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, item.ID)
	}
	return updated, nil
}

// Ratings lists ratings received by the team.
func (s *TeamService) Ratings(ctx context.Context, teamID string) ([]rating.Rating, error) {
	item, err := s.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}

	items, err := s.ratingRepo.ListRatingsByTeam(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list ratings by team: %w", err)
	}
	return items, nil
}

func (s *TeamService) captainedTeam(ctx context.Context, actorID, teamID string) (team.Team, error) {
	actorID = normalizePlayerID(actorID)
	if actorID == "" {
		return team.Team{}, fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	item, err := s.Get(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}
	if item.CaptainID != actorID {
		return team.Team{}, fmt.Errorf("%w: only the captain can manage team %s", ErrForbidden, item.ID)
	}
	return item, nil
}
