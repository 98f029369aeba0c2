package usecase

import (
	"strings"
	"time"
)

const (
	matchDateLayout = "2006-01-02"
	matchTimeLayout = "15:04"
)

// normalizePlayerID canonicalises a typed share code.
func normalizePlayerID(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

// normalizeMemberIDs trims, upper-cases and dedupes ids keeping first-seen order.
func normalizeMemberIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id := normalizePlayerID(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func validDate(v string) bool {
	_, err := time.Parse(matchDateLayout, v)
	return err == nil
}

func validClock(v string) bool {
	_, err := time.Parse(matchTimeLayout, v)
	return err == nil
}
