package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/koralink/internal/domain/team"
	teammock "github.com/riskibarqy/koralink/internal/mocks/domain/team"
	"github.com/riskibarqy/koralink/internal/platform/logging"
)

func TestTeamService_CreateAlwaysIncludesCaptain(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	created, err := env.teams.Create(t.Context(), " pl-cap001 ", CreateTeamInput{
		Name:      "Garuda FC",
		City:      "Bandung",
		Level:     "Intermediate",
		MemberIDs: []string{"PL-AAA111", "pl-aaa111", "", "PL-CAP001"},
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	want := []string{"PL-CAP001", "PL-AAA111"}
	if len(created.MemberIDs) != len(want) {
		t.Fatalf("unexpected members: got=%v want=%v", created.MemberIDs, want)
	}
	for i := range want {
		if created.MemberIDs[i] != want[i] {
			t.Fatalf("unexpected members: got=%v want=%v", created.MemberIDs, want)
		}
	}
	if created.CaptainID != "PL-CAP001" {
		t.Fatalf("unexpected captain: %s", created.CaptainID)
	}
}

func TestTeamService_CreateValidatesInput(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cases := []CreateTeamInput{
		{City: "Bandung", Level: "pro"},
		{Name: "Garuda", Level: "pro"},
		{Name: "Garuda", City: "Bandung", Level: "legend"},
	}
	for _, input := range cases {
		if _, err := env.teams.Create(t.Context(), "PL-CAP001", input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", input, err)
		}
	}
}

func TestTeamService_ListFiltersByName(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	for _, name := range []string{"Garuda FC", "Elang United", "garuda muda"} {
		if _, err := env.teams.Create(t.Context(), "PL-CAP001", CreateTeamInput{Name: name, City: "Bandung", Level: "pro"}); err != nil {
			t.Fatalf("create team %s: %v", name, err)
		}
	}

	got, err := env.teams.List(t.Context(), "GARUDA")
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected filtered count: got=%d want=2", len(got))
	}

	all, err := env.teams.List(t.Context(), "")
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("unexpected team count: got=%d want=3", len(all))
	}
}

func TestTeamService_DeleteAndRemoveMemberRequireCaptain(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := t.Context()
	created, err := env.teams.Create(ctx, "PL-CAP001", CreateTeamInput{
		Name: "Garuda FC", City: "Bandung", Level: "pro", MemberIDs: []string{"PL-AAA111"},
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	if err := env.teams.Delete(ctx, "PL-AAA111", created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}
	if _, err := env.teams.RemoveMember(ctx, "PL-AAA111", created.ID, "PL-AAA111"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on remove, got %v", err)
	}
	if _, err := env.teams.RemoveMember(ctx, "PL-CAP001", created.ID, "PL-CAP001"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput removing captain, got %v", err)
	}

	updated, err := env.teams.RemoveMember(ctx, "PL-CAP001", created.ID, "pl-aaa111")
	if err != nil {
		t.Fatalf("remove member: %v", err)
	}
	if updated.HasMember("PL-AAA111") {
		t.Fatalf("member still present: %v", updated.MemberIDs)
	}

	if err := env.teams.Delete(ctx, "PL-CAP001", created.ID); err != nil {
		t.Fatalf("delete team: %v", err)
	}
	if _, err := env.teams.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestTeamService_CreatePropagatesRepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	repo := teammock.NewRepository(t)
	service := NewTeamService(repo, nil, logging.NewNop())
	storeErr := errors.New("disk full")

	repo.
		On("CreateTeam", mock.Anything, mock.MatchedBy(func(p team.CreateParams) bool {
			return p.CaptainID == "PL-CAP001" && p.Name == "Garuda FC"
		})).
		Return(team.Team{}, storeErr).
		Once()

	_, err := service.Create(ctx, "PL-CAP001", CreateTeamInput{Name: "Garuda FC", City: "Bandung", Level: "pro"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestTeamService_GetNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	repo := teammock.NewRepository(t)
	service := NewTeamService(repo, nil, logging.NewNop())

	repo.
		On("GetTeam", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "team-x").
		Return(team.Team{}, false, nil).
		Once()

	if _, err := service.Get(ctx, " team-x "); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
