package local

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/koralink/internal/domain/freeagent"
	"github.com/riskibarqy/koralink/internal/domain/invite"
	"github.com/riskibarqy/koralink/internal/domain/match"
	"github.com/riskibarqy/koralink/internal/domain/player"
	"github.com/riskibarqy/koralink/internal/domain/preference"
	"github.com/riskibarqy/koralink/internal/domain/rating"
	"github.com/riskibarqy/koralink/internal/domain/report"
	"github.com/riskibarqy/koralink/internal/domain/team"
	"github.com/riskibarqy/koralink/internal/infrastructure/kvstore"
	kvstoremock "github.com/riskibarqy/koralink/internal/mocks/infrastructure/kvstore"
	"github.com/riskibarqy/koralink/internal/platform/logging"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type sequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (g *sequentialIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%03d", g.n), nil
}

func newTestStore(t *testing.T, kv kvstore.Store, mode PersistMode) (*Store, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)}
	store, err := Open(t.Context(), kv, Options{
		Now:         clock.Now,
		IDs:         &sequentialIDs{},
		PersistMode: mode,
		Workers:     2,
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store, clock
}

func mustCreateTeam(t *testing.T, store *Store, name, captainID string, members ...string) team.Team {
	t.Helper()
	created, err := store.CreateTeam(t.Context(), team.CreateParams{
		Name:      name,
		City:      "Riyadh",
		Level:     player.LevelIntermediate,
		CaptainID: captainID,
		MemberIDs: members,
	})
	if err != nil {
		t.Fatalf("create team %s: %v", name, err)
	}
	return created
}

func mustCreateMatch(t *testing.T, store *Store, home, away team.Team, typ match.Type) match.Match {
	t.Helper()
	created, err := store.CreateMatch(t.Context(), match.CreateParams{
		Type:         typ,
		HomeTeamID:   home.ID,
		HomeTeamName: home.Name,
		AwayTeamID:   away.ID,
		AwayTeamName: away.Name,
		Date:         "2026-03-07",
		Time:         "20:30",
		City:         "Riyadh",
		Status:       typ.InitialStatus(),
		CreatedBy:    home.CaptainID,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	return created
}

func TestStore_CreateTeamDoesNotAddCaptain(t *testing.T) {
	store, _ := newTestStore(t, kvstore.NewMemoryStore(), PersistSync)

	created := mustCreateTeam(t, store, "Falcons", "P1")
	if created.HasMember("P1") {
		t.Fatalf("captain must not be auto-added, members=%v", created.MemberIDs)
	}
	if created.AverageRating != 0 || created.TotalRatings != 0 {
		t.Fatalf("expected zero rating aggregate, got %+v", created)
	}

	mine, err := store.ListTeamsByPlayer(t.Context(), "P1")
	if err != nil {
		t.Fatalf("list my teams: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != created.ID {
		t.Fatalf("captain should see the team, got %+v", mine)
	}
}

func TestStore_InviteAcceptScenario(t *testing.T) {
	store, _ := newTestStore(t, kvstore.NewMemoryStore(), PersistSync)
	ctx := t.Context()

	falcons := mustCreateTeam(t, store, "Falcons", "P1", "P1")
	sent, err := store.SendInvite(ctx, invite.SendParams{
		TeamID:         falcons.ID,
		TeamName:       falcons.Name,
		FromPlayerID:   "P1",
		FromPlayerName: "Sami",
		ToPlayerID:     "P2",
	})
	if err != nil {
		t.Fatalf("send invite: %v", err)
	}

	pending, _ := store.ListPendingInvitesForPlayer(ctx, "P2")
	if len(pending) != 1 || pending[0].ID != sent.ID {
		t.Fatalf("expected one pending invite for P2, got %+v", pending)
	}

	resolved, found, err := store.RespondInvite(ctx, sent.ID, true)
	if err != nil || !found {
		t.Fatalf("respond invite: found=%v err=%v", found, err)
	}
	if resolved.Status != invite.StatusAccepted {
		t.Fatalf("expected accepted, got %s", resolved.Status)
	}

	got, _, _ := store.GetTeam(ctx, falcons.ID)
	if fmt.Sprint(got.MemberIDs) != "[P1 P2]" {
		t.Fatalf("unexpected members %v", got.MemberIDs)
	}

	pending, _ = store.ListPendingInvitesForPlayer(ctx, "P2")
	if len(pending) != 0 {
		t.Fatalf("accepted invite must leave the pending list, got %+v", pending)
	}

	if _, _, err := store.RespondInvite(ctx, sent.ID, false); !errors.Is(err, invite.ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved on second answer, got %v", err)
	}
}

func TestStore_RespondInvite_AcceptingExistingMemberAddsNothing(t *testing.T) {
	store, _ := newTestStore(t, kvstore.NewMemoryStore(), PersistSync)
	ctx := t.Context()

	falcons := mustCreateTeam(t, store, "Falcons", "P1", "P1", "P2")
	sent, _ := store.SendInvite(ctx, invite.SendParams{TeamID: falcons.ID, ToPlayerID: "P2"})

	if _, _, err := store.RespondInvite(ctx, sent.ID, true); err != nil {
		t.Fatalf("respond invite: %v", err)
	}
	got, _, _ := store.GetTeam(ctx, falcons.ID)
	if len(got.MemberIDs) != 2 {
		t.Fatalf("expected member list unchanged, got %v", got.MemberIDs)
	}
}

func TestStore_RespondInvite_RejectLeavesTeam(t *testing.T) {
	store, _ := newTestStore(t, kvstore.NewMemoryStore(), PersistSync)
	ctx := t.Context()

	falcons := mustCreateTeam(t, store, "Falcons", "P1", "P1")
	sent, _ := store.SendInvite(ctx, invite.SendParams{TeamID: falcons.ID, ToPlayerID: "P2"})

	resolved, _, err := store.RespondInvite(ctx, sent.ID, false)
	if err != nil {
		t.Fatalf("reject invite: %v", err)
	}
	if resolved.Status != invite.StatusRejected {
		t.Fatalf("expected rejected, got %s", resolved.Status)
	}
	got, _, _ := store.GetTeam(ctx, falcons.ID)
	if got.HasMember("P2") {
		t.Fatalf("rejected invite must not add member")
	}
}

func TestStore_MissingIDsAreNoops(t *testing.T) {
	store, _ := newTestStore(t, kvstore.NewMemoryStore(), PersistSync)
	ctx := t.Context()

	if _, found, err := store.RespondInvite(ctx, "nope", true); found || err != nil {
		t.Fatalf("expected silent miss, found=%v err=%v", found, err)
	}
	if deleted, err := store.DeleteTeam(ctx, "nope"); deleted || err != nil {
		t.Fatalf("expected silent miss, deleted=%v err=%v", deleted, err)
	}
	if _, found, err := store.RemoveMember(ctx, "nope", "P1"); found || err != nil {
		t.Fatalf("expected silent miss, found=%v err=%v", found, err)
	}
	if _, found, err := store.UpdateMatchStatus(ctx, "nope", match.StatusFinished); found || err != nil {
		t.Fatalf("expected silent miss, found=%v err=%v", found, err)
	}
	if _, found, err := store.RespondChallenge(ctx, "nope", true); found || err != nil {
		t.Fatalf("expected silent miss, found=%v err=%v", found, err)
	}
}

func TestStore_RemoveMemberAndDeleteTeam(t *testing.T) {
	store, _ := newTestStore(t, kvstore.NewMemoryStore(), PersistSync)
	ctx := t.Context()

	falcons := mustCreateTeam(t, store, "Falcons", "P1", "P1", "P2")
	eagles := mustCreateTeam(t, store, "Eagles", "P3", "P3")
	game := mustCreateMatch(t, store, falcons, eagles, match.TypeDirect)

	for range 2 {
		updated, found, err := store.RemoveMember(ctx, falcons.ID, "P2")
		if err != nil || !found {
			t.Fatalf("remove member: found=%v err=%v", found, err)
		}
		if fmt.Sprint(updated.MemberIDs) != "[P1]" {
			t.Fatalf("unexpected members %v", updated.MemberIDs)
		}
	}

	deleted, err := store.DeleteTeam(ctx, falcons.ID)
	if err != nil || !deleted {
		t.Fatalf("delete team: deleted=%v err=%v", deleted, err)
	}
	if _, found, _ := store.GetTeam(ctx, falcons.ID); found {
		t.Fatalf("team should be gone")
	}
	if _, found, _ := store.GetMatch(ctx, game.ID); !found {
		t.Fatalf("matches of a deleted team are kept")
	}
}

func TestStore_ListMatchesByPlayer(t *testing.T) {
	store, _ := newTestStore(t, kvstore.NewMemoryStore(), PersistSync)
	ctx := t.Context()

	falcons := mustCreateTeam(t, store, "Falcons", "P1", "P1")
	eagles := mustCreateTeam(t, store, "Eagles", "P3", "P3", "P4")
	lions := mustCreateTeam(t, store, "Lions", "P5", "P5")

	mustCreateMatch(t, store, falcons, lions, match.TypeDirect)
	away := mustCreateMatch(t, store, lions, eagles, match.TypeChallenge)
	_, err := store.CreateMatch(ctx, match.CreateParams{
		Type:         match.TypeDirect,
		HomeTeamID:   lions.ID,
		AwayTeamName: "Neighbourhood XI",
		Status:       match.StatusConfirmed,
	})
	if err != nil {
		t.Fatalf("create friendly: %v", err)
	}

	mine, _ := store.ListMatchesByPlayer(ctx, "P4")
	if len(mine) != 1 || mine[0].ID != away.ID {
		t.Fatalf("member of away side should see only that match, got %+v", mine)
	}

	mine, _ = store.ListMatchesByPlayer(ctx, "P5")
	if len(mine) != 3 {
		t.Fatalf("expected lions captain to see 3 matches, got %d", len(mine))
	}

	mine, _ = store.ListMatchesByPlayer(ctx, "stranger")
	if len(mine) != 0 {
		t.Fatalf("expected no matches for stranger, got %d", len(mine))
	}
}

func TestStore_ChallengeRejectCancels(t *testing.T) {
	store, _ := newTestStore(t, kvstore.NewMemoryStore(), PersistSync)
	ctx := t.Context()

	a := mustCreateTeam(t, store, "A", "P1", "P1")
	b := mustCreateTeam(t, store, "B", "P2", "P2")
	challenge := mustCreateMatch(t, store, a, b, match.TypeChallenge)
	if challenge.Status != match.StatusPending {
		t.Fatalf("challenge should start pending, got %s", challenge.Status)
	}

	answered, found, err := store.RespondChallenge(ctx, challenge.ID, false)
	if err != nil || !found {
		t.Fatalf("respond challenge: found=%v err=%v", found, err)
	}
	if answered.Status != match.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", answered.Status)
	}
}

func TestStore_ChallengeIsAnsweredOnce(t *testing.T) {
	store, _ := newTestStore(t, kvstore.NewMemoryStore(), PersistSync)
	ctx := t.Context()

	a := mustCreateTeam(t, store, "A", "P1", "P1")
	b := mustCreateTeam(t, store, "B", "P2", "P2")
	challenge := mustCreateMatch(t, store, a, b, match.TypeChallenge)

	if _, _, err := store.RespondChallenge(ctx, challenge.ID, true); err != nil {
		t.Fatalf("accept challenge: %v", err)
	}

	for _, accept := range []bool{false, true} {
		_, found, err := store.RespondChallenge(ctx, challenge.ID, accept)
		if !found || !errors.Is(err, match.ErrInvalidTransition) {
			t.Fatalf("answer=%v on confirmed challenge: found=%v err=%v", accept, found, err)
		}
	}

	got, _, _ := store.GetMatch(ctx, challenge.ID)
	if got.Status != match.StatusConfirmed {
		t.Fatalf("second answer changed the fixture, status=%s", got.Status)
	}

	// Cancelling a confirmed match stays possible through the state machine.
	if _, _, err := store.UpdateMatchStatus(ctx, challenge.ID, match.StatusCancelled); err != nil {
		t.Fatalf("cancel confirmed match: %v", err)
	}
}

func TestStore_MatchTransitionsAreValidated(t *testing.T) {
	store, _ := newTestStore(t, kvstore.NewMemoryStore(), PersistSync)
	ctx := t.Context()

	a := mustCreateTeam(t, store, "A", "P1", "P1")
	b := mustCreateTeam(t, store, "B", "P2", "P2")

	finished := mustCreateMatch(t, store, a, b, match.TypeDirect)
	if _, _, err := store.UpdateMatchStatus(ctx, finished.ID, match.StatusFinished); err != nil {
		t.Fatalf("finish confirmed match: %v", err)
	}
	cancelled := mustCreateMatch(t, store, a, b, match.TypeChallenge)
	if _, _, err := store.UpdateMatchStatus(ctx, cancelled.ID, match.StatusCancelled); err != nil {
		t.Fatalf("cancel pending match: %v", err)
	}
	pending := mustCreateMatch(t, store, a, b, match.TypeChallenge)

	tests := []struct {
		name    string
		matchID string
		to      match.Status
	}{
		{name: "finished to confirmed", matchID: finished.ID, to: match.StatusConfirmed},
		{name: "cancelled to confirmed", matchID: cancelled.ID, to: match.StatusConfirmed},
		{name: "cancelled to finished", matchID: cancelled.ID, to: match.StatusFinished},
		{name: "pending to finished", matchID: pending.ID, to: match.StatusFinished},
		{name: "same state", matchID: pending.ID, to: match.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, _, _ := store.GetMatch(ctx, tt.matchID)
			_, found, err := store.UpdateMatchStatus(ctx, tt.matchID, tt.to)
			if !found || !errors.Is(err, match.ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, found=%v err=%v", found, err)
			}
			after, _, _ := store.GetMatch(ctx, tt.matchID)
			if after.Status != before.Status {
				t.Fatalf("status changed on rejected transition: %s -> %s", before.Status, after.Status)
			}
		})
	}

	if _, _, err := store.RespondChallenge(ctx, finished.ID, true); !errors.Is(err, match.ErrInvalidTransition) {
		t.Fatalf("responding to a finished match must fail, got %v", err)
	}
}

func TestStore_AddRatingRecomputesAggregate(t *testing.T) {
	store, _ := newTestStore(t, kvstore.NewMemoryStore(), PersistSync)
	ctx := t.Context()

	a := mustCreateTeam(t, store, "A", "P1", "P1")
	b := mustCreateTeam(t, store, "B", "P2", "P2")
	c := mustCreateTeam(t, store, "C", "P3", "P3")

	for _, stars := range []int{4, 2} {
		if _, err := store.AddRating(ctx, rating.AddParams{MatchID: "m1", FromTeamID: a.ID, ToTeamID: b.ID, Stars: stars}); err != nil {
			t.Fatalf("add rating: %v", err)
		}
	}
	if _, err := store.AddRating(ctx, rating.AddParams{MatchID: "m2", FromTeamID: b.ID, ToTeamID: c.ID, Stars: 5}); err != nil {
		t.Fatalf("add rating: %v", err)
	}

	got, _, _ := store.GetTeam(ctx, b.ID)
	if got.TotalRatings != 2 || got.AverageRating != 3 {
		t.Fatalf("expected total=2 average=3, got total=%d average=%v", got.TotalRatings, got.AverageRating)
	}

	all, _ := store.ListRatings(ctx)
	for _, id := range []string{a.ID, b.ID, c.ID} {
		teamNow, _, _ := store.GetTeam(ctx, id)
		avg, count := rating.Aggregate(all, id)
		if teamNow.AverageRating != avg || teamNow.TotalRatings != count {
			t.Fatalf("team %s aggregate drifted: stored=(%v,%d) computed=(%v,%d)", id, teamNow.AverageRating, teamNow.TotalRatings, avg, count)
		}
	}

	received, _ := store.ListRatingsByTeam(ctx, b.ID)
	if len(received) != 2 {
		t.Fatalf("expected 2 ratings for B, got %d", len(received))
	}
}

func TestStore_FreeAgentExpiry(t *testing.T) {
	store, clock := newTestStore(t, kvstore.NewMemoryStore(), PersistSync)
	ctx := t.Context()

	item, active, err := store.ToggleFreeAgent(ctx, freeagent.ToggleParams{PlayerID: "P1", PlayerName: "Sami", Position: player.PositionForward})
	if err != nil || !active {
		t.Fatalf("toggle on: active=%v err=%v", active, err)
	}
	if !item.ExpiresAt.Equal(item.CreatedAt.Add(24 * time.Hour)) {
		t.Fatalf("expected 24h expiry, got created=%s expires=%s", item.CreatedAt, item.ExpiresAt)
	}

	clock.Advance(23*time.Hour + 59*time.Minute)
	if ok, _ := store.IsPlayerFreeAgent(ctx, "P1"); !ok {
		t.Fatalf("expected active just before expiry")
	}
	if list, _ := store.ListActiveFreeAgents(ctx); len(list) != 1 {
		t.Fatalf("expected 1 active advert, got %d", len(list))
	}

	clock.Advance(2 * time.Minute)
	if ok, _ := store.IsPlayerFreeAgent(ctx, "P1"); ok {
		t.Fatalf("expected inactive after expiry")
	}
	list, _ := store.ListActiveFreeAgents(ctx)
	for _, a := range list {
		if !a.ExpiresAt.After(clock.Now()) {
			t.Fatalf("expired advert listed as active: %+v", a)
		}
	}
	if len(list) != 0 {
		t.Fatalf("expected no active adverts, got %d", len(list))
	}
	if all, _ := store.ListFreeAgents(ctx); len(all) != 1 {
		t.Fatalf("expired adverts are kept in storage, got %d", len(all))
	}

	// An expired advert does not block a new one.
	if _, active, _ := store.ToggleFreeAgent(ctx, freeagent.ToggleParams{PlayerID: "P1"}); !active {
		t.Fatalf("expected a fresh advert after expiry")
	}
}

func TestStore_FreeAgentDoubleToggle(t *testing.T) {
	store, _ := newTestStore(t, kvstore.NewMemoryStore(), PersistSync)
	ctx := t.Context()

	if _, active, _ := store.ToggleFreeAgent(ctx, freeagent.ToggleParams{PlayerID: "P1"}); !active {
		t.Fatalf("first toggle should publish")
	}
	if list, _ := store.ListActiveFreeAgents(ctx); len(list) != 1 {
		t.Fatalf("expected one active record, got %d", len(list))
	}

	withdrawn, active, err := store.ToggleFreeAgent(ctx, freeagent.ToggleParams{PlayerID: "P1"})
	if err != nil || active {
		t.Fatalf("second toggle should withdraw, active=%v err=%v", active, err)
	}
	if withdrawn.PlayerID != "P1" {
		t.Fatalf("expected withdrawn record of P1, got %+v", withdrawn)
	}
	if list, _ := store.ListActiveFreeAgents(ctx); len(list) != 0 {
		t.Fatalf("expected zero active records, got %d", len(list))
	}
}

func TestStore_ConcurrentTogglesStayConsistent(t *testing.T) {
	store, _ := newTestStore(t, kvstore.NewMemoryStore(), PersistSync)
	ctx := t.Context()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = store.ToggleFreeAgent(ctx, freeagent.ToggleParams{PlayerID: "P1"})
		}()
	}
	wg.Wait()

	if list, _ := store.ListActiveFreeAgents(ctx); len(list) != 0 {
		t.Fatalf("an even number of toggles must end inactive, got %d records", len(list))
	}
}

func TestStore_AddReportStartsOpen(t *testing.T) {
	store, _ := newTestStore(t, kvstore.NewMemoryStore(), PersistSync)

	created, err := store.AddReport(t.Context(), report.AddParams{
		ReporterID: "P1",
		TargetType: report.TargetTeam,
		TargetID:   "T9",
		Reason:     "no-show",
	})
	if err != nil {
		t.Fatalf("add report: %v", err)
	}
	if created.Status != report.StatusOpen {
		t.Fatalf("expected open report, got %s", created.Status)
	}
	if list, _ := store.ListReports(t.Context()); len(list) != 1 {
		t.Fatalf("expected 1 report, got %d", len(list))
	}
}

func TestStore_ReopenReproducesCollections(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	store, _ := newTestStore(t, kv, PersistSync)
	ctx := t.Context()

	a := mustCreateTeam(t, store, "A", "P1", "P1")
	b := mustCreateTeam(t, store, "B", "P2", "P2")
	game := mustCreateMatch(t, store, a, b, match.TypeDirect)
	sent, _ := store.SendInvite(ctx, invite.SendParams{TeamID: a.ID, ToPlayerID: "P3"})
	_, _, _ = store.RespondInvite(ctx, sent.ID, true)
	_, _ = store.AddRating(ctx, rating.AddParams{MatchID: game.ID, FromTeamID: a.ID, ToTeamID: b.ID, Stars: 5, Note: "fair play"})
	_, _, _ = store.ToggleFreeAgent(ctx, freeagent.ToggleParams{PlayerID: "P9", Note: "weekends"})
	_, _ = store.AddReport(ctx, report.AddParams{ReporterID: "P1", TargetType: report.TargetMatch, TargetID: game.ID, Reason: "late"})

	reopened, _ := newTestStore(t, kv, PersistSync)

	wantTeams, _ := store.ListTeams(ctx)
	gotTeams, _ := reopened.ListTeams(ctx)
	if len(gotTeams) != len(wantTeams) {
		t.Fatalf("team count mismatch: got=%d want=%d", len(gotTeams), len(wantTeams))
	}
	for i := range wantTeams {
		w, g := wantTeams[i], gotTeams[i]
		if w.ID != g.ID || fmt.Sprint(w.MemberIDs) != fmt.Sprint(g.MemberIDs) || w.AverageRating != g.AverageRating ||
			w.TotalRatings != g.TotalRatings || !w.CreatedAt.Equal(g.CreatedAt) || w.Level != g.Level {
			t.Fatalf("team %d mismatch:\n got: %+v\nwant: %+v", i, g, w)
		}
	}

	checkLen := func(name string, got, want int) {
		t.Helper()
		if got != want {
			t.Fatalf("%s count mismatch: got=%d want=%d", name, got, want)
		}
	}
	invites, _ := reopened.ListInvites(ctx)
	checkLen("invites", len(invites), 1)
	if invites[0].Status != invite.StatusAccepted {
		t.Fatalf("invite status lost: %s", invites[0].Status)
	}
	matches, _ := reopened.ListMatches(ctx)
	checkLen("matches", len(matches), 1)
	if matches[0].Status != match.StatusConfirmed || matches[0].Time != "20:30" {
		t.Fatalf("match fields lost: %+v", matches[0])
	}
	ratings, _ := reopened.ListRatings(ctx)
	checkLen("ratings", len(ratings), 1)
	if ratings[0].Note != "fair play" {
		t.Fatalf("rating note lost: %+v", ratings[0])
	}
	agents, _ := reopened.ListActiveFreeAgents(ctx)
	checkLen("free agents", len(agents), 1)
	reports, _ := reopened.ListReports(ctx)
	checkLen("reports", len(reports), 1)
}

func TestStore_LoadsMobileAppSlots(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	ctx := t.Context()
	teams := `[{"id":"1709300000000abcdefghi","name":"Falcons","city":"Jeddah","level":"advanced","captainId":"1","memberIds":["1","2"],"averageRating":4.5,"totalRatings":2,"createdAt":"2024-03-01T12:00:00.000Z"}]`
	matches := `[{"id":"m1","type":"direct","homeTeamId":"1709300000000abcdefghi","homeTeamName":"Falcons","awayTeamName":"Street XI","date":"2024-03-08","time":"21:00","city":"Jeddah","status":"confirmed","createdBy":"1","createdAt":"2024-03-01T12:05:00.000Z"}]`
	if err := kv.Set(ctx, kvstore.KeyTeams, []byte(teams)); err != nil {
		t.Fatalf("seed teams: %v", err)
	}
	if err := kv.Set(ctx, kvstore.KeyMatches, []byte(matches)); err != nil {
		t.Fatalf("seed matches: %v", err)
	}

	store, _ := newTestStore(t, kv, PersistSync)

	got, found, _ := store.GetTeam(ctx, "1709300000000abcdefghi")
	if !found || got.AverageRating != 4.5 || got.TotalRatings != 2 || len(got.MemberIDs) != 2 {
		t.Fatalf("unexpected team %+v", got)
	}
	mine, _ := store.ListMatchesByPlayer(ctx, "2")
	if len(mine) != 1 || mine[0].AwayTeamID != "" || mine[0].AwayTeamName != "Street XI" {
		t.Fatalf("unexpected matches %+v", mine)
	}
}

func TestStore_MobileAppLabelsDecodeToCanonicalValues(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	ctx := t.Context()
	seed := map[string]string{
		kvstore.KeyProfile:    `{"id":"1","playerId":"PL-7Q2K9D","name":"Sami","position":"حارس","level":"محترف","city":"Jeddah","area":"","ageGroup":"أقل من 14","showAgeGroup":true,"createdAt":"2024-03-01T12:00:00.000Z"}`,
		kvstore.KeyTeams:      `[{"id":"t1","name":"Falcons","city":"Jeddah","level":"متوسط","captainId":"PL-7Q2K9D","memberIds":["PL-7Q2K9D"],"averageRating":0,"totalRatings":0,"createdAt":"2024-03-01T12:00:00.000Z"}]`,
		kvstore.KeyFreeAgents: `[{"id":"f1","playerId":"PL-7Q2K9D","playerName":"Sami","position":"هجوم","city":"Jeddah","area":"","level":"مبتدئ","createdAt":"2024-03-01T12:00:00.000Z","expiresAt":"2024-03-02T12:00:00.000Z"}]`,
	}
	for key, value := range seed {
		if err := kv.Set(ctx, key, []byte(value)); err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}

	store, _ := newTestStore(t, kv, PersistSync)

	profile, found, err := store.GetProfile(ctx)
	if err != nil || !found {
		t.Fatalf("get profile: found=%v err=%v", found, err)
	}
	if profile.Position != player.PositionGoalkeeper || profile.Level != player.LevelPro || profile.AgeGroup != player.AgeGroupUnder14 {
		t.Fatalf("labels not mapped: %+v", profile)
	}
	if err := profile.Validate(); err != nil {
		t.Fatalf("imported profile must validate: %v", err)
	}

	falcons, _, _ := store.GetTeam(ctx, "t1")
	if falcons.Level != player.LevelIntermediate {
		t.Fatalf("unexpected team level %q", falcons.Level)
	}
	agents, _ := store.ListFreeAgents(ctx)
	if len(agents) != 1 || agents[0].Position != player.PositionForward || agents[0].Level != player.LevelBeginner {
		t.Fatalf("unexpected free agents %+v", agents)
	}

	// Unknown values pass through unchanged so Validate can reject them.
	if got := decodeLegacy("SWEEPER", legacyPositions); got != "SWEEPER" {
		t.Fatalf("unexpected passthrough %q", got)
	}
}

func TestStore_CorruptSlotFailsOpen(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	_ = kv.Set(t.Context(), kvstore.KeyRatings, []byte(`{not json`))

	if _, err := Open(t.Context(), kv, Options{}); err == nil {
		t.Fatalf("expected decode error for corrupt slot")
	}
}

func TestStore_SetFailurePropagates(t *testing.T) {
	kv := kvstoremock.NewStore(t)
	diskFull := errors.New("disk full")

	kv.On("Get", mock.Anything, mock.Anything).Return(nil, false, nil).Times(6)
	kv.On("Set", mock.Anything, kvstore.KeyTeams, mock.Anything).Return(diskFull).Once()

	store, err := Open(t.Context(), kv, Options{IDs: &sequentialIDs{}})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	_, err = store.CreateTeam(t.Context(), team.CreateParams{Name: "Falcons", CaptainID: "P1"})
	if !errors.Is(err, diskFull) {
		t.Fatalf("expected kv error to propagate, got %v", err)
	}

	teams, _ := store.ListTeams(t.Context())
	if len(teams) != 0 {
		t.Fatalf("failed write must not change memory, got %d teams", len(teams))
	}
}

// failingKV fails Set for the slots listed in failOn and delegates the rest.
type failingKV struct {
	*kvstore.MemoryStore

	mu     sync.Mutex
	failOn map[string]bool
}

func newFailingKV() *failingKV {
	return &failingKV{MemoryStore: kvstore.NewMemoryStore(), failOn: make(map[string]bool)}
}

func (f *failingKV) fail(key string, on bool) {
	f.mu.Lock()
	f.failOn[key] = on
	f.mu.Unlock()
}

func (f *failingKV) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	failing := f.failOn[key]
	f.mu.Unlock()
	if failing {
		return fmt.Errorf("io error on %s", key)
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func TestStore_RespondInvite_TeamsWriteFailureCanBeRetried(t *testing.T) {
	kv := newFailingKV()
	store, _ := newTestStore(t, kv, PersistSync)
	ctx := t.Context()

	falcons := mustCreateTeam(t, store, "Falcons", "P1", "P1")
	sent, err := store.SendInvite(ctx, invite.SendParams{TeamID: falcons.ID, FromPlayerID: "P1", ToPlayerID: "P2"})
	if err != nil {
		t.Fatalf("send invite: %v", err)
	}

	kv.fail(kvstore.KeyTeams, true)
	if _, _, err := store.RespondInvite(ctx, sent.ID, true); err == nil {
		t.Fatalf("expected teams write error")
	}
	got, _, _ := store.GetInvite(ctx, sent.ID)
	if got.Status != invite.StatusPending {
		t.Fatalf("failed accept must leave the invite pending, got %s", got.Status)
	}

	kv.fail(kvstore.KeyTeams, false)
	if _, _, err := store.RespondInvite(ctx, sent.ID, true); err != nil {
		t.Fatalf("retry accept: %v", err)
	}

	reopened, _ := newTestStore(t, kv.MemoryStore, PersistSync)
	teamNow, _, _ := reopened.GetTeam(ctx, falcons.ID)
	if fmt.Sprint(teamNow.MemberIDs) != "[P1 P2]" {
		t.Fatalf("unexpected persisted members %v", teamNow.MemberIDs)
	}
	inviteNow, _, _ := reopened.GetInvite(ctx, sent.ID)
	if inviteNow.Status != invite.StatusAccepted {
		t.Fatalf("unexpected persisted invite status %s", inviteNow.Status)
	}
}

func TestStore_RespondInvite_InvitesWriteFailureRestoresTeams(t *testing.T) {
	kv := newFailingKV()
	store, _ := newTestStore(t, kv, PersistSync)
	ctx := t.Context()

	falcons := mustCreateTeam(t, store, "Falcons", "P1", "P1")
	sent, err := store.SendInvite(ctx, invite.SendParams{TeamID: falcons.ID, FromPlayerID: "P1", ToPlayerID: "P2"})
	if err != nil {
		t.Fatalf("send invite: %v", err)
	}

	kv.fail(kvstore.KeyInvites, true)
	if _, _, err := store.RespondInvite(ctx, sent.ID, true); err == nil {
		t.Fatalf("expected invites write error")
	}

	inMemory, _, _ := store.GetTeam(ctx, falcons.ID)
	reopened, _ := newTestStore(t, kv.MemoryStore, PersistSync)
	persisted, _, _ := reopened.GetTeam(ctx, falcons.ID)
	for name, members := range map[string][]string{"memory": inMemory.MemberIDs, "storage": persisted.MemberIDs} {
		if fmt.Sprint(members) != "[P1]" {
			t.Fatalf("%s members changed by a failed accept: %v", name, members)
		}
	}
}

func TestStore_AddRating_PartialWriteLeavesNoTrace(t *testing.T) {
	kv := newFailingKV()
	store, _ := newTestStore(t, kv, PersistSync)
	ctx := t.Context()

	a := mustCreateTeam(t, store, "A", "P1", "P1")
	b := mustCreateTeam(t, store, "B", "P2", "P2")

	for _, key := range []string{kvstore.KeyTeams, kvstore.KeyRatings} {
		kv.fail(key, true)
		if _, err := store.AddRating(ctx, rating.AddParams{MatchID: "m1", FromTeamID: a.ID, ToTeamID: b.ID, Stars: 5}); err == nil {
			t.Fatalf("expected error when %s fails", key)
		}
		kv.fail(key, false)

		ratings, _ := store.ListRatings(ctx)
		rated, _, _ := store.GetTeam(ctx, b.ID)
		if len(ratings) != 0 || rated.TotalRatings != 0 || rated.AverageRating != 0 {
			t.Fatalf("%s failure left ratings=%d total=%d average=%v", key, len(ratings), rated.TotalRatings, rated.AverageRating)
		}
	}

	reopened, _ := newTestStore(t, kv.MemoryStore, PersistSync)
	persisted, _, _ := reopened.GetTeam(ctx, b.ID)
	if persisted.TotalRatings != 0 || persisted.AverageRating != 0 {
		t.Fatalf("stale aggregate persisted: total=%d average=%v", persisted.TotalRatings, persisted.AverageRating)
	}

	if _, err := store.AddRating(ctx, rating.AddParams{MatchID: "m1", FromTeamID: a.ID, ToTeamID: b.ID, Stars: 4}); err != nil {
		t.Fatalf("add rating after recovery: %v", err)
	}
	rated, _, _ := store.GetTeam(ctx, b.ID)
	if rated.TotalRatings != 1 || rated.AverageRating != 4 {
		t.Fatalf("unexpected aggregate after recovery: total=%d average=%v", rated.TotalRatings, rated.AverageRating)
	}
}

func TestStore_AsyncFlushPersistsLatestSnapshot(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	store, _ := newTestStore(t, kv, PersistAsync)
	ctx := t.Context()

	a := mustCreateTeam(t, store, "A", "P1", "P1")
	for i := range 20 {
		mustCreateTeam(t, store, fmt.Sprintf("T%02d", i), "P2")
	}
	if _, err := store.DeleteTeam(ctx, a.ID); err != nil {
		t.Fatalf("delete team: %v", err)
	}

	// Memory reflects the writes before they are flushed.
	if teams, _ := store.ListTeams(ctx); len(teams) != 20 {
		t.Fatalf("expected read-your-writes, got %d teams", len(teams))
	}

	if err := store.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	reopened, _ := newTestStore(t, kv, PersistSync)
	teams, _ := reopened.ListTeams(ctx)
	if len(teams) != 20 {
		t.Fatalf("expected latest snapshot with 20 teams, got %d", len(teams))
	}
	for _, item := range teams {
		if item.ID == a.ID {
			t.Fatalf("deleted team resurrected by a stale write")
		}
	}
}

func TestStore_AsyncFlushRetriesFailedSlot(t *testing.T) {
	kv := kvstoremock.NewStore(t)
	kv.On("Get", mock.Anything, mock.Anything).Return(nil, false, nil).Times(6)
	kv.On("Set", mock.Anything, kvstore.KeyReports, mock.Anything).Return(errors.New("timeout")).Once()
	kv.On("Set", mock.Anything, kvstore.KeyReports, mock.Anything).Return(nil).Once()

	store, err := Open(t.Context(), kv, Options{IDs: &sequentialIDs{}, PersistMode: PersistAsync, Workers: 1})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	if _, err := store.AddReport(t.Context(), report.AddParams{ReporterID: "P1", Reason: "spam"}); err != nil {
		t.Fatalf("async add report should not fail: %v", err)
	}
	if err := store.Flush(t.Context()); err != nil {
		t.Fatalf("flush should retry and succeed: %v", err)
	}
}

func TestAsyncWriter_ConcurrentWritesAndFlushes(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	w, err := newAsyncWriter(kv, 4, logging.NewNop())
	if err != nil {
		t.Fatalf("new async writer: %v", err)
	}
	t.Cleanup(w.close)
	ctx := t.Context()

	keys := []string{kvstore.KeyTeams, kvstore.KeyMatches}
	var wg sync.WaitGroup
	for _, key := range keys {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				_ = w.write(ctx, key, []byte(fmt.Sprintf("[%d]", i)))
				if i%10 == 0 {
					if err := w.flush(ctx); err != nil {
						t.Errorf("flush: %v", err)
					}
				}
			}
		}()
	}
	wg.Wait()

	if err := w.flush(ctx); err != nil {
		t.Fatalf("final flush: %v", err)
	}
	for _, key := range keys {
		raw, _, _ := kv.Get(ctx, key)
		if string(raw) != "[49]" {
			t.Fatalf("slot %s holds %s, want the last write", key, raw)
		}
	}
}

func TestStore_ProfileAndTheme(t *testing.T) {
	store, _ := newTestStore(t, kvstore.NewMemoryStore(), PersistSync)
	ctx := t.Context()

	if _, found, err := store.GetProfile(ctx); found || err != nil {
		t.Fatalf("expected no profile, found=%v err=%v", found, err)
	}
	profile := player.Profile{
		ID:        "1",
		PlayerID:  "PL-ABC123",
		Name:      "Sami",
		Position:  player.PositionMidfielder,
		Level:     player.LevelPro,
		City:      "Riyadh",
		AgeGroup:  player.AgeGroup25To34,
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	got, found, err := store.GetProfile(ctx)
	if err != nil || !found || got.PlayerID != "PL-ABC123" || !got.CreatedAt.Equal(profile.CreatedAt) {
		t.Fatalf("unexpected profile %+v found=%v err=%v", got, found, err)
	}
	if err := store.ClearProfile(ctx); err != nil {
		t.Fatalf("clear profile: %v", err)
	}
	if _, found, _ := store.GetProfile(ctx); found {
		t.Fatalf("expected profile cleared")
	}

	theme, err := store.GetTheme(ctx)
	if err != nil || theme != preference.ThemeLight {
		t.Fatalf("expected default light theme, got %s err=%v", theme, err)
	}
	if err := store.SetTheme(ctx, preference.ThemeDark); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if theme, _ := store.GetTheme(ctx); theme != preference.ThemeDark {
		t.Fatalf("expected dark theme, got %s", theme)
	}
}
