package local

import (
	"strings"
	"time"

	"github.com/riskibarqy/koralink/internal/domain/freeagent"
	"github.com/riskibarqy/koralink/internal/domain/invite"
	"github.com/riskibarqy/koralink/internal/domain/match"
	"github.com/riskibarqy/koralink/internal/domain/player"
	"github.com/riskibarqy/koralink/internal/domain/rating"
	"github.com/riskibarqy/koralink/internal/domain/report"
	"github.com/riskibarqy/koralink/internal/domain/team"
)

// Slot records keep the camelCase layout written by the mobile app.

// The mobile app stores positions, levels and age groups as Arabic labels.
// Decoding maps them to the canonical values; encoding always writes the
// canonical ones.
var (
	legacyPositions = map[string]player.Position{
		"حارس": player.PositionGoalkeeper,
		"دفاع": player.PositionDefender,
		"وسط":  player.PositionMidfielder,
		"هجوم": player.PositionForward,
	}
	legacyLevels = map[string]player.Level{
		"مبتدئ": player.LevelBeginner,
		"متوسط": player.LevelIntermediate,
		"متقدم": player.LevelAdvanced,
		"محترف": player.LevelPro,
	}
	legacyAgeGroups = map[string]player.AgeGroup{
		"أقل من 14": player.AgeGroupUnder14,
	}
)

func decodeLegacy[T ~string](raw string, legacy map[string]T) T {
	if v, ok := legacy[strings.TrimSpace(raw)]; ok {
		return v
	}
	return T(raw)
}

type profileRecord struct {
	ID           string    `json:"id"`
	PlayerID     string    `json:"playerId"`
	Name         string    `json:"name"`
	Position     string    `json:"position"`
	Level        string    `json:"level"`
	City         string    `json:"city"`
	Area         string    `json:"area"`
	AgeGroup     string    `json:"ageGroup"`
	ShowAgeGroup bool      `json:"showAgeGroup"`
	CreatedAt    time.Time `json:"createdAt"`
}

type teamRecord struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	City          string    `json:"city"`
	Level         string    `json:"level"`
	CaptainID     string    `json:"captainId"`
	MemberIDs     []string  `json:"memberIds"`
	AverageRating float64   `json:"averageRating"`
	TotalRatings  int       `json:"totalRatings"`
	CreatedAt     time.Time `json:"createdAt"`
}

type inviteRecord struct {
	ID             string    `json:"id"`
	TeamID         string    `json:"teamId"`
	TeamName       string    `json:"teamName"`
	FromPlayerID   string    `json:"fromPlayerId"`
	FromPlayerName string    `json:"fromPlayerName"`
	ToPlayerID     string    `json:"toPlayerId"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

type matchRecord struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	HomeTeamID   string    `json:"homeTeamId"`
	HomeTeamName string    `json:"homeTeamName"`
	AwayTeamID   string    `json:"awayTeamId,omitempty"`
	AwayTeamName string    `json:"awayTeamName,omitempty"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	City         string    `json:"city"`
	Stadium      string    `json:"stadium,omitempty"`
	LocationURL  string    `json:"locationUrl,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Status       string    `json:"status"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ratingRecord struct {
	ID         string    `json:"id"`
	MatchID    string    `json:"matchId"`
	FromTeamID string    `json:"fromTeamId"`
	ToTeamID   string    `json:"toTeamId"`
	Stars      int       `json:"stars"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type freeAgentRecord struct {
	ID         string    `json:"id"`
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Position   string    `json:"position"`
	City       string    `json:"city"`
	Area       string    `json:"area"`
	Level      string    `json:"level"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

type reportRecord struct {
	ID           string    `json:"id"`
	ReporterID   string    `json:"reporterId"`
	ReporterName string    `json:"reporterName"`
	TargetType   string    `json:"targetType"`
	TargetID     string    `json:"targetId"`
	TargetName   string    `json:"targetName"`
	Reason       string    `json:"reason"`
	Details      string    `json:"details,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func profileToRecord(p player.Profile) profileRecord {
	return profileRecord{
		ID:           p.ID,
		PlayerID:     p.PlayerID,
		Name:         p.Name,
		Position:     string(p.Position),
		Level:        string(p.Level),
		City:         p.City,
		Area:         p.Area,
		AgeGroup:     string(p.AgeGroup),
		ShowAgeGroup: p.ShowAgeGroup,
		CreatedAt:    p.CreatedAt.UTC(),
	}
}

func profileFromRecord(r profileRecord) player.Profile {
	return player.Profile{
		ID:           r.ID,
		PlayerID:     r.PlayerID,
		Name:         r.Name,
		Position:     decodeLegacy(r.Position, legacyPositions),
		Level:        decodeLegacy(r.Level, legacyLevels),
		City:         r.City,
		Area:         r.Area,
		AgeGroup:     decodeLegacy(r.AgeGroup, legacyAgeGroups),
		ShowAgeGroup: r.ShowAgeGroup,
		CreatedAt:    r.CreatedAt,
	}
}

func teamToRecord(t team.Team) teamRecord {
	members := t.MemberIDs
	if members == nil {
		members = []string{}
	}
	return teamRecord{
		ID:            t.ID,
		Name:          t.Name,
		City:          t.City,
		Level:         string(t.Level),
		CaptainID:     t.CaptainID,
		MemberIDs:     members,
		AverageRating: t.AverageRating,
		TotalRatings:  t.TotalRatings,
		CreatedAt:     t.CreatedAt.UTC(),
	}
}

func teamFromRecord(r teamRecord) team.Team {
	return team.Team{
		ID:            r.ID,
		Name:          r.Name,
		City:          r.City,
		Level:         decodeLegacy(r.Level, legacyLevels),
		CaptainID:     r.CaptainID,
		MemberIDs:     append([]string{}, r.MemberIDs...),
		AverageRating: r.AverageRating,
		TotalRatings:  r.TotalRatings,
		CreatedAt:     r.CreatedAt,
	}
}

func inviteToRecord(i invite.Invite) inviteRecord {
	return inviteRecord{
		ID:             i.ID,
		TeamID:         i.TeamID,
		TeamName:       i.TeamName,
		FromPlayerID:   i.FromPlayerID,
		FromPlayerName: i.FromPlayerName,
		ToPlayerID:     i.ToPlayerID,
		Status:         string(i.Status),
		CreatedAt:      i.CreatedAt.UTC(),
	}
}

func inviteFromRecord(r inviteRecord) invite.Invite {
	return invite.Invite{
		ID:             r.ID,
		TeamID:         r.TeamID,
		TeamName:       r.TeamName,
		FromPlayerID:   r.FromPlayerID,
		FromPlayerName: r.FromPlayerName,
		ToPlayerID:     r.ToPlayerID,
		Status:         invite.Status(r.Status),
		CreatedAt:      r.CreatedAt,
	}
}

func matchToRecord(m match.Match) matchRecord {
	return matchRecord{
		ID:           m.ID,
		Type:         string(m.Type),
		HomeTeamID:   m.HomeTeamID,
		HomeTeamName: m.HomeTeamName,
		AwayTeamID:   m.AwayTeamID,
		AwayTeamName: m.AwayTeamName,
		Date:         m.Date,
		Time:         m.Time,
		City:         m.City,
		Stadium:      m.Stadium,
		LocationURL:  m.LocationURL,
		Notes:        m.Notes,
		Status:       string(m.Status),
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func matchFromRecord(r matchRecord) match.Match {
	return match.Match{
		ID:           r.ID,
		Type:         match.Type(r.Type),
		HomeTeamID:   r.HomeTeamID,
		HomeTeamName: r.HomeTeamName,
		AwayTeamID:   r.AwayTeamID,
		AwayTeamName: r.AwayTeamName,
		Date:         r.Date,
		Time:         r.Time,
		City:         r.City,
		Stadium:      r.Stadium,
		LocationURL:  r.LocationURL,
		Notes:        r.Notes,
		Status:       match.Status(r.Status),
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt,
	}
}

func ratingToRecord(r rating.Rating) ratingRecord {
	return ratingRecord{
		ID:         r.ID,
		MatchID:    r.MatchID,
		FromTeamID: r.FromTeamID,
		ToTeamID:   r.ToTeamID,
		Stars:      r.Stars,
		Note:       r.Note,
		CreatedAt:  r.CreatedAt.UTC(),
	}
}

func ratingFromRecord(r ratingRecord) rating.Rating {
	return rating.Rating{
		ID:         r.ID,
		MatchID:    r.MatchID,
		FromTeamID: r.FromTeamID,
		ToTeamID:   r.ToTeamID,
		Stars:      r.Stars,
		Note:       r.Note,
		CreatedAt:  r.CreatedAt,
	}
}

func freeAgentToRecord(a freeagent.FreeAgent) freeAgentRecord {
	return freeAgentRecord{
		ID:         a.ID,
		PlayerID:   a.PlayerID,
		PlayerName: a.PlayerName,
		Position:   string(a.Position),
		City:       a.City,
		Area:       a.Area,
		Level:      string(a.Level),
		Note:       a.Note,
		CreatedAt:  a.CreatedAt.UTC(),
		ExpiresAt:  a.ExpiresAt.UTC(),
	}
}

func freeAgentFromRecord(r freeAgentRecord) freeagent.FreeAgent {
	return freeagent.FreeAgent{
		ID:         r.ID,
		PlayerID:   r.PlayerID,
		PlayerName: r.PlayerName,
		Position:   decodeLegacy(r.Position, legacyPositions),
		City:       r.City,
		Area:       r.Area,
		Level:      decodeLegacy(r.Level, legacyLevels),
		Note:       r.Note,
		CreatedAt:  r.CreatedAt,
		ExpiresAt:  r.ExpiresAt,
	}
}

func reportToRecord(r report.Report) reportRecord {
	return reportRecord{
		ID:           r.ID,
		ReporterID:   r.ReporterID,
		ReporterName: r.ReporterName,
		TargetType:   string(r.TargetType),
		TargetID:     r.TargetID,
		TargetName:   r.TargetName,
		Reason:       r.Reason,
		Details:      r.Details,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

func reportFromRecord(r reportRecord) report.Report {
	return report.Report{
		ID:           r.ID,
		ReporterID:   r.ReporterID,
		ReporterName: r.ReporterName,
		TargetType:   report.TargetType(r.TargetType),
		TargetID:     r.TargetID,
		TargetName:   r.TargetName,
		Reason:       r.Reason,
		Details:      r.Details,
		Status:       report.Status(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}
