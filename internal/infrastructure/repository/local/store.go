package local

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/koralink/internal/domain/freeagent"
	"github.com/riskibarqy/koralink/internal/domain/invite"
	"github.com/riskibarqy/koralink/internal/domain/match"
	"github.com/riskibarqy/koralink/internal/domain/player"
	"github.com/riskibarqy/koralink/internal/domain/preference"
	"github.com/riskibarqy/koralink/internal/domain/rating"
	"github.com/riskibarqy/koralink/internal/domain/report"
	"github.com/riskibarqy/koralink/internal/domain/team"
	"github.com/riskibarqy/koralink/internal/infrastructure/kvstore"
	idgen "github.com/riskibarqy/koralink/internal/platform/id"
	"github.com/riskibarqy/koralink/internal/platform/logging"
)

var (
	_ player.Repository     = (*Store)(nil)
	_ preference.Repository = (*Store)(nil)
	_ team.Repository       = (*Store)(nil)
	_ invite.Repository     = (*Store)(nil)
	_ match.Repository      = (*Store)(nil)
	_ rating.Repository     = (*Store)(nil)
	_ freeagent.Repository  = (*Store)(nil)
	_ report.Repository     = (*Store)(nil)
)

type Options struct {
	Now          func() time.Time
	IDs          idgen.Generator
	FreeAgentTTL time.Duration
	PersistMode  PersistMode
	Workers      int
	Logger       *logging.Logger
}

// Store holds every collection in memory and mirrors each one to its own
// kv slot after a mutation. Mutations are serialised by one mutex; readers
// always receive copies.
//
// Missing ids are reported through the bool result, never as errors.
type Store struct {
	kv     kvstore.Store
	writer slotWriter
	now    func() time.Time
	ids    idgen.Generator
	ttl    time.Duration
	logger *logging.Logger

	mu         sync.Mutex
	teams      []team.Team
	invites    []invite.Invite
	matches    []match.Match
	ratings    []rating.Rating
	freeAgents []freeagent.FreeAgent
	reports    []report.Report
}

// Open loads the six collection slots once. Absent slots start empty.
func Open(ctx context.Context, kv kvstore.Store, opts Options) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv store is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.IDs == nil {
		opts.IDs = idgen.NewTimestampGeneratorWithClock(opts.Now)
	}
	if opts.FreeAgentTTL <= 0 {
		opts.FreeAgentTTL = freeagent.DefaultTTL
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	logger := opts.Logger.With("component", "local_store")

	s := &Store{
		kv:     kv,
		now:    opts.Now,
		ids:    opts.IDs,
		ttl:    opts.FreeAgentTTL,
		logger: logger,
	}

	switch opts.PersistMode {
	case PersistSync, "":
		s.writer = syncWriter{kv: kv}
	case PersistAsync:
		writer, err := newAsyncWriter(kv, opts.Workers, logger)
		if err != nil {
			return nil, err
		}
		s.writer = writer
	default:
		return nil, fmt.Errorf("unknown persist mode %q", opts.PersistMode)
	}

	if err := s.load(ctx); err != nil {
		s.writer.close()
		return nil, err
	}

	logger.Info("local store loaded",
		"persist_mode", string(opts.PersistMode),
		"teams", len(s.teams),
		"invites", len(s.invites),
		"matches", len(s.matches),
		"ratings", len(s.ratings),
		"free_agents", len(s.freeAgents),
		"reports", len(s.reports),
	)
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	var err error
	if s.teams, err = loadSlot(ctx, s.kv, kvstore.KeyTeams, teamFromRecord); err != nil {
		return err
	}
	if s.invites, err = loadSlot(ctx, s.kv, kvstore.KeyInvites, inviteFromRecord); err != nil {
		return err
	}
	if s.matches, err = loadSlot(ctx, s.kv, kvstore.KeyMatches, matchFromRecord); err != nil {
		return err
	}
	if s.ratings, err = loadSlot(ctx, s.kv, kvstore.KeyRatings, ratingFromRecord); err != nil {
		return err
	}
	if s.freeAgents, err = loadSlot(ctx, s.kv, kvstore.KeyFreeAgents, freeAgentFromRecord); err != nil {
		return err
	}
	if s.reports, err = loadSlot(ctx, s.kv, kvstore.KeyReports, reportFromRecord); err != nil {
		return err
	}
	return nil
}

// Flush blocks until queued async writes reach the kv store.
func (s *Store) Flush(ctx context.Context) error {
	return s.writer.flush(ctx)
}

// Close flushes pending writes and stops the persist workers. The kv store
// stays open and belongs to the caller.
func (s *Store) Close(ctx context.Context) error {
	err := s.writer.flush(ctx)
	s.writer.close()
	return err
}

func (s *Store) newID(kind string) (string, error) {
	id, err := s.ids.NewID()
	if err != nil {
		return "", fmt.Errorf("generate %s id: %w", kind, err)
	}
	return id, nil
}

func (s *Store) saveTeams(ctx context.Context, items []team.Team) error {
	return persistSlot(ctx, s.writer, kvstore.KeyTeams, items, teamToRecord)
}

// saveWithTeams writes nextTeams (when non-nil) before calling saveOther.
// If saveOther fails the current in-memory teams are written back. Callers
// hold s.mu and swap memory only after a nil return.
func (s *Store) saveWithTeams(ctx context.Context, nextTeams []team.Team, saveOther func() error) error {
	if nextTeams != nil {
		if err := s.saveTeams(ctx, nextTeams); err != nil {
			return err
		}
	}
	err := saveOther()
	if err == nil || nextTeams == nil {
		return err
	}
	if restoreErr := s.saveTeams(context.WithoutCancel(ctx), s.teams); restoreErr != nil {
		s.logger.ErrorContext(ctx, "restore teams slot failed", "error", restoreErr)
		return errors.Join(err, restoreErr)
	}
	return err
}

func (s *Store) saveInvites(ctx context.Context, items []invite.Invite) error {
	return persistSlot(ctx, s.writer, kvstore.KeyInvites, items, inviteToRecord)
}

func (s *Store) saveMatches(ctx context.Context, items []match.Match) error {
	return persistSlot(ctx, s.writer, kvstore.KeyMatches, items, matchToRecord)
}

func (s *Store) saveRatings(ctx context.Context, items []rating.Rating) error {
	return persistSlot(ctx, s.writer, kvstore.KeyRatings, items, ratingToRecord)
}

func (s *Store) saveFreeAgents(ctx context.Context, items []freeagent.FreeAgent) error {
	return persistSlot(ctx, s.writer, kvstore.KeyFreeAgents, items, freeAgentToRecord)
}

func (s *Store) saveReports(ctx context.Context, items []report.Report) error {
	return persistSlot(ctx, s.writer, kvstore.KeyReports, items, reportToRecord)
}

func cloneTeams(items []team.Team) []team.Team {
	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}

func filterCopy[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
