package slideshow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrRegistryFull is returned by Open when the viewer limit is reached.
var ErrRegistryFull = errors.New("too many open slideshows")

// Registry tracks the cyclers of every connected viewer. Each cycler lives
// as long as the context it was opened with.
type Registry struct {
	size     int
	interval time.Duration
	limit    int

	mu      sync.Mutex
	cyclers map[string]*Cycler

	wg sync.WaitGroup
}

// NewRegistry returns a registry of cyclers over size slides. A limit of
// zero or less means any number of viewers.
func NewRegistry(size int, interval time.Duration, limit int) *Registry {
	return &Registry{
		size:     size,
		interval: interval,
		limit:    limit,
		cyclers:  make(map[string]*Cycler),
	}
}

// Open starts a cycler that runs until ctx is done and is then removed.
func (r *Registry) Open(ctx context.Context) (string, *Cycler, error) {
	c, err := NewCycler(r.size, r.interval)
	if err != nil {
		return "", nil, err
	}
	id := uuid.NewString()

	r.mu.Lock()
	if r.limit > 0 && len(r.cyclers) >= r.limit {
		r.mu.Unlock()
		return "", nil, fmt.Errorf("open slideshow, limit %d: %w", r.limit, ErrRegistryFull)
	}
	r.cyclers[id] = c
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		c.Run(ctx)
		r.mu.Lock()
		delete(r.cyclers, id)
		r.mu.Unlock()
		slog.Debug("slideshow closed", "id", id)
	}()

	slog.Debug("slideshow opened", "id", id)
	return id, c, nil
}

func (r *Registry) Get(id string) (*Cycler, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cyclers[id]
	return c, ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cyclers)
}

// Wait blocks until every opened cycler has stopped.
func (r *Registry) Wait() {
	r.wg.Wait()
}
