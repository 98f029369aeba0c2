package kvstore

import (
	"context"

	"github.com/riskibarqy/koralink/internal/platform/logging"
	"github.com/riskibarqy/koralink/internal/platform/resilience"
)

// GuardedStore fails fast while the wrapped remote backend keeps erroring.
type GuardedStore struct {
	next    Store
	breaker *resilience.CircuitBreaker
}

func NewGuardedStore(next Store, name string, cfg resilience.CircuitBreakerConfig, logger *logging.Logger) *GuardedStore {
	if logger == nil {
		logger = logging.Default()
	}
	breaker := resilience.NewCircuitBreaker(name, cfg)
	breaker.OnTransition(func(name string, from, to resilience.CircuitState) {
		logger.Warn("kv circuit state changed", "backend", name, "from", from, "to", to)
	})
	return &GuardedStore{next: next, breaker: breaker}
}

func (s *GuardedStore) State() resilience.CircuitState {
	return s.breaker.State()
}

func (s *GuardedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		value []byte
		found bool
	)
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		value, found, err = s.next.Get(ctx, key)
		return err
	})
	return value, found, err
}

func (s *GuardedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.next.Set(ctx, key, value)
	})
}

func (s *GuardedStore) Delete(ctx context.Context, key string) error {
	return s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.next.Delete(ctx, key)
	})
}

func (s *GuardedStore) Close() error {
	return s.next.Close()
}
