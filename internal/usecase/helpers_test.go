package usecase

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/koralink/internal/domain/player"
	"github.com/riskibarqy/koralink/internal/infrastructure/kvstore"
	"github.com/riskibarqy/koralink/internal/infrastructure/repository/local"
	"github.com/riskibarqy/koralink/internal/platform/logging"
)

type sequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func (g *sequentialIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%03d", g.prefix, g.n), nil
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type testEnv struct {
	store      *local.Store
	clock      *testClock
	teams      *TeamService
	invites    *InviteService
	matches    *MatchService
	ratings    *RatingService
	freeAgents *FreeAgentService
	reports    *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)}
	logger := logging.NewNop()
	store, err := local.Open(t.Context(), kvstore.NewMemoryStore(), local.Options{
		Now:    clock.Now,
		IDs:    &sequentialIDs{prefix: "rec"},
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close(t.Context())
	})

	return &testEnv{
		store:      store,
		clock:      clock,
		teams:      NewTeamService(store, store, logger),
		invites:    NewInviteService(store, store, logger),
		matches:    NewMatchService(store, store, logger),
		ratings:    NewRatingService(store, store, store),
		freeAgents: NewFreeAgentService(store),
		reports:    NewReportService(store),
	}
}

func testProfile(code, name string) player.Profile {
	return player.Profile{
		ID:       "p-" + code,
		PlayerID: code,
		Name:     name,
		Position: player.PositionMidfielder,
		Level:    player.LevelIntermediate,
		City:     "Bandung",
		Area:     "Dago",
		AgeGroup: player.AgeGroup25To34,
	}
}
