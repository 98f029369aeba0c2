package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/koralink/internal/domain/match"
	"github.com/riskibarqy/koralink/internal/domain/rating"
	"github.com/riskibarqy/koralink/internal/domain/team"
)

type RateTeamInput struct {
	MatchID    string
	FromTeamID string
	ToTeamID   string
	Stars      int
	Note       string
}

type RatingService struct {
	ratingRepo rating.Repository
	matchRepo  match.Repository
	teamRepo   team.Repository
}

func NewRatingService(ratingRepo rating.Repository, matchRepo match.Repository, teamRepo team.Repository) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
	}
}

// Rate records one side's rating of its opponent after a finished match.
// Each side may rate the other once per match.
func (s *RatingService) Rate(ctx context.Context, actorID string, input RateTeamInput) (rating.Rating, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.Rate")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.FromTeamID = strings.TrimSpace(input.FromTeamID)
	input.ToTeamID = strings.TrimSpace(input.ToTeamID)
	if input.MatchID == "" || input.FromTeamID == "" || input.ToTeamID == "" {
		return rating.Rating{}, fmt.Errorf("%w: match, from team and to team are required", ErrInvalidInput)
	}
	if input.FromTeamID == input.ToTeamID {
		return rating.Rating{}, fmt.Errorf("%w: a team cannot rate itself", ErrInvalidInput)
	}
	if err := rating.ValidateStars(input.Stars); err != nil {
		return rating.Rating{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	played, exists, err := s.matchRepo.GetMatch(ctx, input.MatchID)
	if err != nil {
		return rating.Rating{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return rating.Rating{}, fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
	}
	if played.Status != match.StatusFinished {
		return rating.Rating{}, fmt.Errorf("%w: match %s is not finished", ErrInvalidInput, played.ID)
	}
	if !played.HasTeam(input.FromTeamID) || !played.HasTeam(input.ToTeamID) {
		return rating.Rating{}, fmt.Errorf("%w: both teams must have played match %s", ErrInvalidInput, played.ID)
	}

	from, exists, err := s.teamRepo.GetTeam(ctx, input.FromTeamID)
	if err != nil {
		return rating.Rating{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return rating.Rating{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.FromTeamID)
	}
	if from.CaptainID != normalizePlayerID(actorID) {
		return rating.Rating{}, fmt.Errorf("%w: only the captain can rate for team %s", ErrForbidden, from.ID)
	}

	given, err := s.ratingRepo.ListRatingsByTeam(ctx, input.ToTeamID)
	if err != nil {
		return rating.Rating{}, fmt.Errorf("list ratings by team: %w", err)
	}
	for _, r := range given {
		if r.MatchID == played.ID && r.FromTeamID == input.FromTeamID {
			return rating.Rating{}, fmt.Errorf("%w: team %s already rated this match", ErrConflict, input.FromTeamID)
		}
	}

	created, err := s.ratingRepo.AddRating(ctx, rating.AddParams{
		MatchID:    played.ID,
		FromTeamID: input.FromTeamID,
		ToTeamID:   input.ToTeamID,
		Stars:      input.Stars,
		Note:       strings.TrimSpace(input.Note),
	})
	if err != nil {
		return rating.Rating{}, fmt.Errorf("add rating: %w", err)
	}
	return created, nil
}
