package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/koralink/internal/domain/match"
	"github.com/riskibarqy/koralink/internal/domain/player"
	"github.com/riskibarqy/koralink/internal/domain/team"
	"github.com/riskibarqy/koralink/internal/platform/logging"
)

type CreateMatchInput struct {
	Type         string
	HomeTeamID   string
	AwayTeamID   string
	AwayTeamName string
	Date         string
	Time         string
	City         string
	Stadium      string
	LocationURL  string
	Notes        string
}

type MatchService struct {
	matchRepo match.Repository
	teamRepo  team.Repository
	logger    *logging.Logger
}

func NewMatchService(matchRepo match.Repository, teamRepo team.Repository, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		logger:    logger,
	}
}

// Create schedules a match for a team captained by creator. Direct matches
// start confirmed and may omit the opponent; challenges start pending and
// need an existing away team.
func (s *MatchService) Create(ctx context.Context, creator player.Profile, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	typ, err := match.ParseType(strings.ToLower(strings.TrimSpace(input.Type)))
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	input.HomeTeamID = strings.TrimSpace(input.HomeTeamID)
	input.AwayTeamID = strings.TrimSpace(input.AwayTeamID)
	input.AwayTeamName = strings.TrimSpace(input.AwayTeamName)
	input.Date = strings.TrimSpace(input.Date)
	input.Time = strings.TrimSpace(input.Time)
	input.City = strings.TrimSpace(input.City)

	if input.HomeTeamID == "" {
		return match.Match{}, fmt.Errorf("%w: home team is required", ErrInvalidInput)
	}
	if !validDate(input.Date) {
		return match.Match{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if !validClock(input.Time) {
		return match.Match{}, fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	}
	if input.City == "" {
		return match.Match{}, fmt.Errorf("%w: city is required", ErrInvalidInput)
	}
	if typ == match.TypeChallenge && input.AwayTeamID == "" {
		return match.Match{}, fmt.Errorf("%w: a challenge needs an away team", ErrInvalidInput)
	}
	if input.AwayTeamID != "" && input.AwayTeamID == input.HomeTeamID {
		return match.Match{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}

	home, err := s.requireTeam(ctx, input.HomeTeamID)
	if err != nil {
		return match.Match{}, err
	}
	if home.CaptainID != creator.PlayerID {
		return match.Match{}, fmt.Errorf("%w: only the home captain can schedule a match", ErrForbidden)
	}

	awayName := input.AwayTeamName
	if input.AwayTeamID != "" {
		away, err := s.requireTeam(ctx, input.AwayTeamID)
		if err != nil {
			return match.Match{}, err
		}
		awayName = away.Name
	}

	created, err := s.matchRepo.CreateMatch(ctx, match.CreateParams{
		Type:         typ,
		HomeTeamID:   home.ID,
		HomeTeamName: home.Name,
		AwayTeamID:   input.AwayTeamID,
		AwayTeamName: awayName,
		Date:         input.Date,
		Time:         input.Time,
		City:         input.City,
		Stadium:      strings.TrimSpace(input.Stadium),
		LocationURL:  strings.TrimSpace(input.LocationURL),
		Notes:        strings.TrimSpace(input.Notes),
		Status:       typ.InitialStatus(),
		CreatedBy:    creator.PlayerID,
	})
	if err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created",
		"match_id", created.ID,
		"type", string(created.Type),
		"status", string(created.Status),
	)
	return created, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

func (s *MatchService) ListMine(ctx context.Context, playerID string) ([]match.Match, error) {
	playerID = normalizePlayerID(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	items, err := s.matchRepo.ListMatchesByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list matches by player: %w", err)
	}
	return items, nil
}

// RespondChallenge lets the away captain accept or decline a challenge.
func (s *MatchService) RespondChallenge(ctx context.Context, actorID, matchID string, accept bool) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RespondChallenge")
	defer span.End()

	item, err := s.Get(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if item.Type != match.TypeChallenge || item.AwayTeamID == "" {
		return match.Match{}, fmt.Errorf("%w: match %s is not a challenge", ErrInvalidInput, item.ID)
	}

	away, err := s.requireTeam(ctx, item.AwayTeamID)
	if err != nil {
		return match.Match{}, err
	}
	if away.CaptainID != normalizePlayerID(actorID) {
		return match.Match{}, fmt.Errorf("%w: only the away captain can answer a challenge", ErrForbidden)
	}

	updated, exists, err := s.matchRepo.RespondChallenge(ctx, item.ID, accept)
	if err != nil {
		return match.Match{}, fmt.Errorf("respond challenge: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, item.ID)
	}

	s.logger.InfoContext(ctx, "challenge answered", "match_id", item.ID, "status", string(updated.Status))
	return updated, nil
}

func (s *MatchService) Finish(ctx context.Context, actorID, matchID string) (match.Match, error) {
	return s.UpdateStatus(ctx, actorID, matchID, string(match.StatusFinished))
}

func (s *MatchService) Cancel(ctx context.Context, actorID, matchID string) (match.Match, error) {
	return s.UpdateStatus(ctx, actorID, matchID, string(match.StatusCancelled))
}

// UpdateStatus moves a match along its state machine. Only the creator may
// change the status this way.
func (s *MatchService) UpdateStatus(ctx context.Context, actorID, matchID, status string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateStatus")
	defer span.End()

	next, err := match.ParseStatus(strings.ToLower(strings.TrimSpace(status)))
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, err := s.Get(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if item.CreatedBy != normalizePlayerID(actorID) {
		return match.Match{}, fmt.Errorf("%w: only the creator can change match status", ErrForbidden)
	}

	updated, exists, err := s.matchRepo.UpdateMatchStatus(ctx, item.ID, next)
	if err != nil {
		return match.Match{}, fmt.Errorf("update match status: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, item.ID)
	}

	s.logger.InfoContext(ctx, "match status changed",
		"match_id", item.ID,
		"from", string(item.Status),
		"to", string(updated.Status),
	)
	return updated, nil
}

func (s *MatchService) requireTeam(ctx context.Context, teamID string) (team.Team, error) {
	item, exists, err := s.teamRepo.GetTeam(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}
