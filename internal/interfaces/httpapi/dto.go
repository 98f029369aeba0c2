package httpapi

import (
	"time"

	"github.com/riskibarqy/koralink/internal/domain/freeagent"
	"github.com/riskibarqy/koralink/internal/domain/invite"
	"github.com/riskibarqy/koralink/internal/domain/match"
	"github.com/riskibarqy/koralink/internal/domain/player"
	"github.com/riskibarqy/koralink/internal/domain/rating"
	"github.com/riskibarqy/koralink/internal/domain/report"
	"github.com/riskibarqy/koralink/internal/domain/team"
)

type profileRequest struct {
	Name         string `json:"name" validate:"required,max=60"`
	Position     string `json:"position" validate:"required"`
	Level        string `json:"level" validate:"required"`
	City         string `json:"city" validate:"required,max=60"`
	Area         string `json:"area" validate:"omitempty,max=60"`
	AgeGroup     string `json:"age_group" validate:"required"`
	ShowAgeGroup bool   `json:"show_age_group"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required"`
}

type createTeamRequest struct {
	Name      string   `json:"name" validate:"required,max=60"`
	City      string   `json:"city" validate:"required,max=60"`
	Level     string   `json:"level" validate:"required"`
	MemberIDs []string `json:"member_ids" validate:"omitempty,max=40,dive,required"`
}

type sendInviteRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type respondRequest struct {
	Accept *bool `json:"accept" validate:"required"`
}

type createMatchRequest struct {
	Type         string `json:"type" validate:"required,oneof=direct challenge"`
	HomeTeamID   string `json:"home_team_id" validate:"required"`
	AwayTeamID   string `json:"away_team_id"`
	AwayTeamName string `json:"away_team_name" validate:"omitempty,max=60"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	City         string `json:"city" validate:"required,max=60"`
	Stadium      string `json:"stadium" validate:"omitempty,max=120"`
	LocationURL  string `json:"location_url" validate:"omitempty,url"`
	Notes        string `json:"notes" validate:"omitempty,max=500"`
}

type rateTeamRequest struct {
	FromTeamID string `json:"from_team_id" validate:"required"`
	ToTeamID   string `json:"to_team_id" validate:"required"`
	Stars      int    `json:"stars" validate:"required,min=1,max=5"`
	Note       string `json:"note" validate:"omitempty,max=500"`
}

type toggleFreeAgentRequest struct {
	Note string `json:"note" validate:"omitempty,max=280"`
}

type submitReportRequest struct {
	TargetType string `json:"target_type" validate:"required,oneof=team player match"`
	TargetID   string `json:"target_id" validate:"required"`
	TargetName string `json:"target_name" validate:"omitempty,max=120"`
	Reason     string `json:"reason" validate:"required,max=120"`
	Details    string `json:"details" validate:"omitempty,max=1000"`
}

type profileDTO struct {
	ID           string `json:"id"`
	PlayerID     string `json:"player_id"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	Level        string `json:"level"`
	City         string `json:"city"`
	Area         string `json:"area,omitempty"`
	AgeGroup     string `json:"age_group,omitempty"`
	ShowAgeGroup bool   `json:"show_age_group"`
	CreatedAt    string `json:"created_at"`
}

type themeDTO struct {
	Theme string `json:"theme"`
}

type teamDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Level         string   `json:"level"`
	CaptainID     string   `json:"captain_id"`
	MemberIDs     []string `json:"member_ids"`
	AverageRating float64  `json:"average_rating"`
	TotalRatings  int      `json:"total_ratings"`
	CreatedAt     string   `json:"created_at"`
}

type inviteDTO struct {
	ID             string `json:"id"`
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	FromPlayerID   string `json:"from_player_id"`
	FromPlayerName string `json:"from_player_name"`
	ToPlayerID     string `json:"to_player_id"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

type matchDTO struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	HomeTeamID   string `json:"home_team_id"`
	HomeTeamName string `json:"home_team_name"`
	AwayTeamID   string `json:"away_team_id,omitempty"`
	AwayTeamName string `json:"away_team_name,omitempty"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	City         string `json:"city"`
	Stadium      string `json:"stadium,omitempty"`
	LocationURL  string `json:"location_url,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Status       string `json:"status"`
	CreatedBy    string `json:"created_by"`
	CreatedAt    string `json:"created_at"`
}

type ratingDTO struct {
	ID         string `json:"id"`
	MatchID    string `json:"match_id"`
	FromTeamID string `json:"from_team_id"`
	ToTeamID   string `json:"to_team_id"`
	Stars      int    `json:"stars"`
	Note       string `json:"note,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type freeAgentDTO struct {
	ID         string `json:"id"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Position   string `json:"position"`
	City       string `json:"city"`
	Area       string `json:"area,omitempty"`
	Level      string `json:"level"`
	Note       string `json:"note,omitempty"`
	CreatedAt  string `json:"created_at"`
	ExpiresAt  string `json:"expires_at"`
}

type freeAgentStatusDTO struct {
	Active bool `json:"active"`
}

type reportDTO struct {
	ID           string `json:"id"`
	ReporterID   string `json:"reporter_id"`
	ReporterName string `json:"reporter_name"`
	TargetType   string `json:"target_type"`
	TargetID     string `json:"target_id"`
	TargetName   string `json:"target_name,omitempty"`
	Reason       string `json:"reason"`
	Details      string `json:"details,omitempty"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func profileToDTO(v player.Profile) profileDTO {
	return profileDTO{
		ID:           v.ID,
		PlayerID:     v.PlayerID,
		Name:         v.Name,
		Position:     string(v.Position),
		Level:        string(v.Level),
		City:         v.City,
		Area:         v.Area,
		AgeGroup:     string(v.AgeGroup),
		ShowAgeGroup: v.ShowAgeGroup,
		CreatedAt:    formatTime(v.CreatedAt),
	}
}

func teamToDTO(v team.Team) teamDTO {
	members := v.MemberIDs
	if members == nil {
		members = []string{}
	}
	return teamDTO{
		ID:            v.ID,
		Name:          v.Name,
		City:          v.City,
		Level:         string(v.Level),
		CaptainID:     v.CaptainID,
		MemberIDs:     members,
		AverageRating: v.AverageRating,
		TotalRatings:  v.TotalRatings,
		CreatedAt:     formatTime(v.CreatedAt),
	}
}

func inviteToDTO(v invite.Invite) inviteDTO {
	return inviteDTO{
		ID:             v.ID,
		TeamID:         v.TeamID,
		TeamName:       v.TeamName,
		FromPlayerID:   v.FromPlayerID,
		FromPlayerName: v.FromPlayerName,
		ToPlayerID:     v.ToPlayerID,
		Status:         string(v.Status),
		CreatedAt:      formatTime(v.CreatedAt),
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:           v.ID,
		Type:         string(v.Type),
		HomeTeamID:   v.HomeTeamID,
		HomeTeamName: v.HomeTeamName,
		AwayTeamID:   v.AwayTeamID,
		AwayTeamName: v.AwayTeamName,
		Date:         v.Date,
		Time:         v.Time,
		City:         v.City,
		Stadium:      v.Stadium,
		LocationURL:  v.LocationURL,
		Notes:        v.Notes,
		Status:       string(v.Status),
		CreatedBy:    v.CreatedBy,
		CreatedAt:    formatTime(v.CreatedAt),
	}
}

func ratingToDTO(v rating.Rating) ratingDTO {
	return ratingDTO{
		ID:         v.ID,
		MatchID:    v.MatchID,
		FromTeamID: v.FromTeamID,
		ToTeamID:   v.ToTeamID,
		Stars:      v.Stars,
		Note:       v.Note,
		CreatedAt:  formatTime(v.CreatedAt),
	}
}

func freeAgentToDTO(v freeagent.FreeAgent) freeAgentDTO {
	return freeAgentDTO{
		ID:         v.ID,
		PlayerID:   v.PlayerID,
		PlayerName: v.PlayerName,
		Position:   string(v.Position),
		City:       v.City,
		Area:       v.Area,
		Level:      string(v.Level),
		Note:       v.Note,
		CreatedAt:  formatTime(v.CreatedAt),
		ExpiresAt:  formatTime(v.ExpiresAt),
	}
}

func reportToDTO(v report.Report) reportDTO {
	return reportDTO{
		ID:           v.ID,
		ReporterID:   v.ReporterID,
		ReporterName: v.ReporterName,
		TargetType:   string(v.TargetType),
		TargetID:     v.TargetID,
		TargetName:   v.TargetName,
		Reason:       v.Reason,
		Details:      v.Details,
		Status:       string(v.Status),
		CreatedAt:    formatTime(v.CreatedAt),
	}
}

func mapSlice[T, D any](items []T, fn func(T) D) []D {
	out := make([]D, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
