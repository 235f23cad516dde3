package board

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/departure-board/internal/model"
	"github.com/ytget/departure-board/internal/transit"
)

const waitTimeout = 2 * time.Second

type fetchReply struct {
	deps []model.Departure
	err  error
}

// scriptedFetcher blocks every call until the test replies to it
type scriptedFetcher struct {
	mu      sync.Mutex
	calls   []chan fetchReply
	filters []bool
	started chan int
}

func newScriptedFetcher() *scriptedFetcher {
	return &scriptedFetcher{started: make(chan int, 32)}
}

func (f *scriptedFetcher) Fetch(ctx context.Context, filterToTerminals bool) ([]model.Departure, error) {
	reply := make(chan fetchReply, 1)
	f.mu.Lock()
	f.calls = append(f.calls, reply)
	f.filters = append(f.filters, filterToTerminals)
	n := len(f.calls)
	f.mu.Unlock()

	f.started <- n

	select {
	case r := <-reply:
		return r.deps, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *scriptedFetcher) reply(call int, deps []model.Departure, err error) {
	f.mu.Lock()
	ch := f.calls[call-1]
	f.mu.Unlock()
	ch <- fetchReply{deps: deps, err: err}
}

func (f *scriptedFetcher) waitStarted(t *testing.T, call int) {
	t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case n := <-f.started:
			if n >= call {
				return
			}
		case <-deadline:
			t.Fatalf("fetch %d was not started", call)
		}
	}
}

type harness struct {
	runner  *Runner
	fetcher *scriptedFetcher
	ticks   chan time.Time
	states  chan State
	cancel  context.CancelFunc
	done    chan error
}

func startRunner(t *testing.T, filter bool) *harness {
	t.Helper()
	h := &harness{
		fetcher: newScriptedFetcher(),
		ticks:   make(chan time.Time),
		states:  make(chan State, 64),
		done:    make(chan error, 1),
	}
	h.runner = NewRunner(h.fetcher, RunnerConfig{Interval: time.Hour, FetchTimeout: waitTimeout, FilterTerminals: filter})
	h.runner.newTicker = func(time.Duration) (<-chan time.Time, func()) { return h.ticks, func() {} }
	h.runner.SetUpdateCallback(func(s State) { h.states <- s })

	var ctx context.Context
	ctx, h.cancel = context.WithCancel(context.Background())
	go func() { h.done <- h.runner.Run(ctx) }()
	return h
}

func (h *harness) stop(t *testing.T) {
	t.Helper()
	h.cancel()
	select {
	case err := <-h.done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(waitTimeout):
		t.Fatal("runner did not stop")
	}
}

func (h *harness) tick(t *testing.T) {
	t.Helper()
	select {
	case h.ticks <- time.Now():
	case <-time.After(waitTimeout):
		t.Fatal("runner did not accept tick")
	}
}

// waitFor returns the first published state matching pred
func (h *harness) waitFor(t *testing.T, pred func(State) bool) State {
	t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case s := <-h.states:
			if pred(s) {
				return s
			}
		case <-deadline:
			t.Fatal("expected state was not published")
			return State{}
		}
	}
}

func hasDestinations(want ...string) func(State) bool {
	return func(s State) bool {
		if len(s.Departures) != len(want) {
			return false
		}
		for i, d := range s.Departures {
			if d.To != want[i] {
				return false
			}
		}
		return true
	}
}

func TestRunner_StartupFetch(t *testing.T) {
	defer leaktest.Check(t)()

	h := startRunner(t, true)
	defer h.stop(t)

	initial := h.waitFor(t, func(State) bool { return true })
	assert.Equal(t, model.StatusWorking, initial.Status)
	assert.Empty(t, initial.Departures)

	h.fetcher.waitStarted(t, 1)
	h.fetcher.reply(1, departures("Klusplatz", "Hermetschloo"), nil)

	s := h.waitFor(t, hasDestinations("Klusplatz", "Hermetschloo"))
	assert.NotEmpty(t, s.LastFetchID)
	assert.False(t, s.LastUpdated.IsZero())

	h.fetcher.mu.Lock()
	assert.Equal(t, []bool{true}, h.fetcher.filters)
	h.fetcher.mu.Unlock()
}

func TestRunner_TickTogglesModeAndFetches(t *testing.T) {
	defer leaktest.Check(t)()

	h := startRunner(t, true)
	defer h.stop(t)

	h.fetcher.waitStarted(t, 1)
	h.fetcher.reply(1, departures("Klusplatz"), nil)
	h.waitFor(t, hasDestinations("Klusplatz"))

	h.tick(t)
	s := h.waitFor(t, func(s State) bool { return s.Mode == ModeCountdown })
	assert.Len(t, s.Departures, 1)

	h.fetcher.waitStarted(t, 2)
	h.fetcher.reply(2, departures("Hermetschloo"), nil)
	h.waitFor(t, hasDestinations("Hermetschloo"))
}

func TestRunner_FailureKeepsStaleData(t *testing.T) {
	defer leaktest.Check(t)()

	h := startRunner(t, true)
	defer h.stop(t)

	h.fetcher.waitStarted(t, 1)
	h.fetcher.reply(1, departures("Klusplatz", "Hermetschloo"), nil)
	h.waitFor(t, hasDestinations("Klusplatz", "Hermetschloo"))

	h.tick(t)
	h.fetcher.waitStarted(t, 2)
	h.fetcher.reply(2, nil, &transit.FetchError{Kind: transit.KindJSON, Err: errors.New("invalid character '<'")})

	s := h.waitFor(t, func(s State) bool { return s.Status == model.StatusError })
	assert.True(t, transit.IsKind(s.LastError, transit.KindJSON))
	assert.True(t, hasDestinations("Klusplatz", "Hermetschloo")(s))
}

func TestRunner_LastAppliedResultWins(t *testing.T) {
	defer leaktest.Check(t)()

	h := startRunner(t, true)
	defer h.stop(t)

	// Startup fetch and a tick fetch are both in flight
	h.fetcher.waitStarted(t, 1)
	h.tick(t)
	h.fetcher.waitStarted(t, 2)

	// The newer fetch resolves first
	h.fetcher.reply(2, departures("Hermetschloo"), nil)
	h.waitFor(t, hasDestinations("Hermetschloo"))

	// The older fetch resolves last and overwrites it
	h.fetcher.reply(1, departures("Klusplatz", "Klusplatz"), nil)
	s := h.waitFor(t, hasDestinations("Klusplatz", "Klusplatz"))
	assert.Equal(t, model.StatusWorking, s.Status)
}

func TestRunner_Dispatch(t *testing.T) {
	defer leaktest.Check(t)()

	h := startRunner(t, false)
	defer h.stop(t)

	h.fetcher.waitStarted(t, 1)
	h.fetcher.reply(1, departures("Seebach"), nil)
	h.waitFor(t, hasDestinations("Seebach"))

	require.True(t, h.runner.Dispatch(RefreshEvent{}))
	h.fetcher.waitStarted(t, 2)
	h.fetcher.reply(2, departures("Seebach", "Klusplatz"), nil)
	s := h.waitFor(t, hasDestinations("Seebach", "Klusplatz"))
	assert.Equal(t, ModeClock, s.Mode, "refresh does not toggle the mode")

	h.fetcher.mu.Lock()
	assert.Equal(t, []bool{false, false}, h.fetcher.filters)
	h.fetcher.mu.Unlock()
}

func TestRunner_StopCancelsInFlightFetch(t *testing.T) {
	defer leaktest.Check(t)()

	h := startRunner(t, true)
	h.fetcher.waitStarted(t, 1)

	// The reply never comes; cancelling must still return
	h.stop(t)
}

func TestRunner_Dispatch_QueueFull(t *testing.T) {
	r := NewRunner(newScriptedFetcher(), RunnerConfig{})

	for i := 0; i < eventBufferSize; i++ {
		require.True(t, r.Dispatch(RefreshEvent{}))
	}
	assert.False(t, r.Dispatch(RefreshEvent{}))
}

func TestNewRunner_Defaults(t *testing.T) {
	r := NewRunner(newScriptedFetcher(), RunnerConfig{})

	assert.Equal(t, DefaultInterval, r.config.Interval)
	assert.Equal(t, DefaultFetchTimeout, r.config.FetchTimeout)
}
