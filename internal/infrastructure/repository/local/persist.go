package local

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/koralink/internal/infrastructure/kvstore"
	"github.com/riskibarqy/koralink/internal/platform/logging"
)

type PersistMode string

const (
	PersistSync  PersistMode = "sync"
	PersistAsync PersistMode = "async"
)

const asyncWriteTimeout = 10 * time.Second

type slotWriter interface {
	write(ctx context.Context, key string, payload []byte) error
	flush(ctx context.Context) error
	close()
}

// syncWriter writes through before the mutation returns.
type syncWriter struct {
	kv kvstore.Store
}

func (w syncWriter) write(ctx context.Context, key string, payload []byte) error {
	return w.kv.Set(ctx, key, payload)
}

func (syncWriter) flush(context.Context) error { return nil }

func (syncWriter) close() {}

type pendingSlot struct {
	seq     uint64
	payload []byte
	ctx     context.Context
}

// asyncWriter is a write-behind queue on an ants pool. Only the newest
// payload per slot is kept and a slot never goes back to an older sequence.
type asyncWriter struct {
	kv     kvstore.Store
	pool   *ants.Pool
	logger *logging.Logger

	mu      sync.Mutex
	seq     map[string]uint64
	written map[string]uint64
	pending map[string]pendingSlot
	locks   map[string]*sync.Mutex
	wg      sync.WaitGroup
}

func newAsyncWriter(kv kvstore.Store, workers int, logger *logging.Logger) (*asyncWriter, error) {
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(p any) {
		logger.Error("persist worker panic", "panic", p)
	}))
	if err != nil {
		return nil, crerr.Wrap(err, "create persist pool")
	}

	return &asyncWriter{
		kv:      kv,
		pool:    pool,
		logger:  logger,
		seq:     make(map[string]uint64),
		written: make(map[string]uint64),
		pending: make(map[string]pendingSlot),
		locks:   make(map[string]*sync.Mutex),
	}, nil
}

func (w *asyncWriter) write(ctx context.Context, key string, payload []byte) error {
	w.mu.Lock()
	// Counted before the slot is published so flush never misses it.
	w.wg.Add(1)
	w.seq[key]++
	w.pending[key] = pendingSlot{seq: w.seq[key], payload: payload, ctx: context.WithoutCancel(ctx)}
	w.mu.Unlock()

	task := func() {
		defer w.wg.Done()
		if err := w.drain(key); err != nil {
			w.logger.Error("persist slot failed", "key", key, "error", err)
		}
	}
	if err := w.pool.Submit(task); err != nil {
		w.logger.Warn("persist pool rejected task, writing inline", "key", key, "error", err)
		task()
	}
	return nil
}

func (w *asyncWriter) slotLock(key string) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()

	lock, ok := w.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		w.locks[key] = lock
	}
	return lock
}

// drain writes the newest pending payload of key, if any. A failed payload
// stays pending unless a newer one replaced it meanwhile.
func (w *asyncWriter) drain(key string) error {
	lock := w.slotLock(key)
	lock.Lock()
	defer lock.Unlock()

	w.mu.Lock()
	next, ok := w.pending[key]
	if !ok || next.seq <= w.written[key] {
		w.mu.Unlock()
		return nil
	}
	delete(w.pending, key)
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(next.ctx, asyncWriteTimeout)
	err := w.kv.Set(ctx, key, next.payload)
	cancel()

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		if _, replaced := w.pending[key]; !replaced {
			w.pending[key] = next
		}
		return err
	}
	w.written[key] = next.seq
	return nil
}

// flush waits for queued writes, then retries slots whose last write failed.
func (w *asyncWriter) flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.mu.Lock()
	keys := make([]string, 0, len(w.pending))
	for key := range w.pending {
		keys = append(keys, key)
	}
	w.mu.Unlock()

	var errs []error
	for _, key := range keys {
		if err := w.drain(key); err != nil {
			errs = append(errs, crerr.Wrapf(err, "flush slot %s", key))
		}
	}
	return errors.Join(errs...)
}

func (w *asyncWriter) close() {
	w.pool.Release()
}

func loadSlot[R, T any](ctx context.Context, kv kvstore.Store, key string, fromRecord func(R) T) ([]T, error) {
	raw, found, err := kv.Get(ctx, key)
	if err != nil {
		return nil, crerr.Wrapf(err, "load slot %s", key)
	}
	if !found || len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var records []R
	if err := sonic.Unmarshal(raw, &records); err != nil {
		return nil, crerr.Wrapf(err, "decode slot %s", key)
	}

	out := make([]T, 0, len(records))
	for _, record := range records {
		out = append(out, fromRecord(record))
	}
	return out, nil
}

func persistSlot[T, R any](ctx context.Context, w slotWriter, key string, items []T, toRecord func(T) R) error {
	records := make([]R, 0, len(items))
	for _, item := range items {
		records = append(records, toRecord(item))
	}

	payload, err := sonic.Marshal(records)
	if err != nil {
		return crerr.Wrapf(err, "encode slot %s", key)
	}
	if err := w.write(ctx, key, payload); err != nil {
		return crerr.Wrapf(err, "persist slot %s", key)
	}
	return nil
}
