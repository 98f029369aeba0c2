package rating

import "context"

type Repository interface {
	ListRatings(ctx context.Context) ([]Rating, error)
	ListRatingsByTeam(ctx context.Context, teamID string) ([]Rating, error)
	// AddRating appends the rating and recomputes the target team's aggregate.
	AddRating(ctx context.Context, params AddParams) (Rating, error)
}
