package rating

import (
	"fmt"
	"time"
)

const (
	MinStars = 1
	MaxStars = 5
)

// Rating is one team's post-match score for its opponent.
type Rating struct {
	ID         string
	MatchID    string
	FromTeamID string
	ToTeamID   string
	Stars      int
	Note       string
	CreatedAt  time.Time
}

type AddParams struct {
	MatchID    string
	FromTeamID string
	ToTeamID   string
	Stars      int
	Note       string
}

func ValidateStars(stars int) error {
	if stars < MinStars || stars > MaxStars {
		return fmt.Errorf("stars must be between %d and %d", MinStars, MaxStars)
	}
	return nil
}

// Aggregate returns the mean stars and count of ratings addressed to teamID.
func Aggregate(items []Rating, teamID string) (float64, int) {
	sum := 0
	count := 0
	for _, item := range items {
		if item.ToTeamID != teamID {
			continue
		}
		sum += item.Stars
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return float64(sum) / float64(count), count
}
