package local

import (
	"context"
	"slices"

	"github.com/riskibarqy/koralink/internal/domain/rating"
	"github.com/riskibarqy/koralink/internal/domain/team"
)

func (s *Store) ListRatings(_ context.Context) ([]rating.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.ratings), nil
}

// ListRatingsByTeam returns ratings received by teamID.
func (s *Store) ListRatingsByTeam(_ context.Context, teamID string) ([]rating.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return filterCopy(s.ratings, func(r rating.Rating) bool { return r.ToTeamID == teamID }), nil
}

// AddRating appends the rating and recomputes AverageRating and TotalRatings
// of the rated team from the whole ratings collection. Both slots change or
// neither does, see saveWithTeams.
func (s *Store) AddRating(ctx context.Context, params rating.AddParams) (rating.Rating, error) {
	id, err := s.newID("rating")
	if err != nil {
		return rating.Rating{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := rating.Rating{
		ID:         id,
		MatchID:    params.MatchID,
		FromTeamID: params.FromTeamID,
		ToTeamID:   params.ToTeamID,
		Stars:      params.Stars,
		Note:       params.Note,
		CreatedAt:  s.now().UTC(),
	}

	nextRatings := append(slices.Clone(s.ratings), item)

	var nextTeams []team.Team
	if teamIdx := slices.IndexFunc(s.teams, func(t team.Team) bool { return t.ID == item.ToTeamID }); teamIdx >= 0 {
		rated := s.teams[teamIdx].Clone()
		rated.AverageRating, rated.TotalRatings = rating.Aggregate(nextRatings, rated.ID)
		nextTeams = slices.Clone(s.teams)
		nextTeams[teamIdx] = rated
	}

	if err := s.saveWithTeams(ctx, nextTeams, func() error { return s.saveRatings(ctx, nextRatings) }); err != nil {
		return rating.Rating{}, err
	}
	if nextTeams != nil {
		s.teams = nextTeams
	}
	s.ratings = nextRatings
	return item, nil
}
