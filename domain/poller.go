package domain

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/finwatch/go-orderbook-dashboard/config"
)

var pollerLogger = log.New(os.Stdout, "[poller] ", log.LstdFlags)

// FetchFunc produces one result for a poll cycle.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// PollState is the latest observable state of a Poller. Result survives a
// failed refresh so a view can keep showing stale data with an error
// annotation instead of blanking.
type PollState[T any] struct {
	Result      T
	HasResult   bool
	Err         error
	Loading     bool
	LastUpdated time.Time
}

// Poller runs a fetch immediately and then on a fixed cadence, restarting
// from scratch whenever its dependency key changes. Cycles of one activation
// never overlap: the fetch runs inline in the loop goroutine, and ticks that
// fire while a fetch is still outstanding coalesce into one. A result is
// applied only if its activation generation is still current, so a slow cycle
// from a torn-down activation can never overwrite newer state.
type Poller[T any] struct {
	name     string
	interval time.Duration
	fetch    FetchFunc[T]

	// onCycle, when set, observes the outcome of every applied cycle.
	onCycle func(name string, err error)

	mu         sync.Mutex
	state      PollState[T]
	key        string
	generation uint64
	cancel     context.CancelFunc
}

func NewPoller[T any](name string, interval time.Duration, fetch FetchFunc[T]) *Poller[T] {
	return &Poller[T]{
		name:     name,
		interval: interval,
		fetch:    fetch,
	}
}

// OnCycle registers a per-cycle observer (metrics). Must be called before
// Start.
func (p *Poller[T]) OnCycle(fn func(name string, err error)) {
	p.onCycle = fn
}

// Start activates the poller under the given dependency key.
func (p *Poller[T]) Start(key string) {
	p.Restart(key)
}

// Restart switches to a new dependency key: the pending cycle is cancelled
// and a fresh activation fetches immediately. Calling it with the current
// key is a no-op.
func (p *Poller[T]) Restart(key string) {
	p.mu.Lock()

	if p.cancel != nil && p.key == key {
		p.mu.Unlock()
		return
	}

	if p.cancel != nil {
		p.cancel()
	}

	p.generation++
	p.key = key
	// the previous result belongs to the old key
	p.state = PollState[T]{Loading: true}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	gen := p.generation
	p.mu.Unlock()

	if config.DebugMode {
		pollerLogger.Printf("starting poller %s, key=%s", p.name, key)
	}

	go p.loop(ctx, gen)
}

// Stop tears the poller down. The in-flight cycle, if any, is discarded when
// it resolves.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel == nil {
		return
	}

	p.cancel()
	p.cancel = nil
	p.generation++
}

// State returns a copy of the latest state.
func (p *Poller[T]) State() PollState[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller[T]) loop(ctx context.Context, gen uint64) {
	p.cycle(ctx, gen)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.cycle(ctx, gen)
		}
	}
}

func (p *Poller[T]) cycle(ctx context.Context, gen uint64) {
	result, err := p.fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	// generation-discard rule: the activation this cycle belongs to is gone
	if gen != p.generation || ctx.Err() != nil {
		return
	}

	p.state.Loading = false
	if err != nil {
		p.state.Err = err
		if config.DebugMode {
			pollerLogger.Printf("poll cycle failed for %s: %s", p.name, err)
		}
	} else {
		p.state.Result = result
		p.state.HasResult = true
		p.state.Err = nil
		p.state.LastUpdated = time.Now()
	}

	if p.onCycle != nil {
		p.onCycle(p.name, err)
	}
}
