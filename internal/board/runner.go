package board

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"

	"github.com/ytget/departure-board/internal/transit"
)

// Runner defaults
const (
	DefaultInterval     = 5 * time.Second
	DefaultFetchTimeout = 20 * time.Second
	eventBufferSize     = 16
)

// RunnerConfig configures a Runner
type RunnerConfig struct {
	Interval        time.Duration
	FetchTimeout    time.Duration
	FilterTerminals bool
}

// Runner owns the board state. Events are applied one at a time on the Run
// goroutine; fetches run concurrently and report back as events.
type Runner struct {
	fetcher  transit.Fetcher
	config   RunnerConfig
	events   chan Event
	onUpdate func(State) // callback for UI updates
	wg       conc.WaitGroup

	newTicker func(time.Duration) (<-chan time.Time, func())
	now       func() time.Time
}

// NewRunner creates a runner
func NewRunner(fetcher transit.Fetcher, cfg RunnerConfig) *Runner {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	return &Runner{
		fetcher:   fetcher,
		config:    cfg,
		events:    make(chan Event, eventBufferSize),
		newTicker: newTimeTicker,
		now:       time.Now,
	}
}

func newTimeTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// SetUpdateCallback sets the function receiving every new state. It is called
// from the Run goroutine and must not block.
func (r *Runner) SetUpdateCallback(callback func(State)) {
	r.onUpdate = callback
}

// Dispatch queues an event without blocking. It returns false if the queue is
// full and the event was dropped.
func (r *Runner) Dispatch(ev Event) bool {
	select {
	case r.events <- ev:
		return true
	default:
		log.Warn().Type("event", ev).Msg("board event queue full, dropping event")
		return false
	}
}

// Run issues the startup fetch and processes events until ctx is done. It
// returns after all in-flight fetches have finished.
func (r *Runner) Run(ctx context.Context) error {
	state, cmd := Initial(r.config.FilterTerminals)
	r.notifyUpdate(state)
	r.execute(ctx, cmd)

	ticks, stop := r.newTicker(r.config.Interval)
	defer stop()

	log.Info().
		Dur("interval", r.config.Interval).
		Bool("filter_terminals", r.config.FilterTerminals).
		Msg("board runner started")

	for {
		var ev Event
		select {
		case <-ctx.Done():
			r.wg.Wait()
			log.Info().Msg("board runner stopped")
			return ctx.Err()
		case at := <-ticks:
			ev = TickEvent{At: at}
		case ev = <-r.events:
		}

		state, cmd = Update(state, ev)
		r.notifyUpdate(state)
		r.execute(ctx, cmd)
	}
}

// execute starts the fetch requested by cmd, if any
func (r *Runner) execute(ctx context.Context, cmd Command) {
	if !cmd.Fetch {
		return
	}

	fetchID := uuid.NewString()
	issuedAt := r.now()
	filter := cmd.FilterTerminals

	r.wg.Go(func() {
		logger := log.With().Str("fetch_id", fetchID).Logger()
		logger.Debug().Bool("filter_terminals", filter).Msg("fetch started")

		fetchCtx, cancel := context.WithTimeout(ctx, r.config.FetchTimeout)
		defer cancel()

		deps, err := r.fetcher.Fetch(fetchCtx, filter)
		receivedAt := r.now()
		elapsed := receivedAt.Sub(issuedAt)

		if err != nil {
			logger.Warn().
				Err(err).
				Stringer("kind", transit.KindOf(err)).
				Dur("elapsed", elapsed).
				Msg("fetch failed")
		} else {
			logger.Debug().
				Int("departures", len(deps)).
				Dur("elapsed", elapsed).
				Msg("fetch finished")
		}

		result := FetchResultEvent{
			FetchID:    fetchID,
			Departures: deps,
			Err:        err,
			ReceivedAt: receivedAt,
		}

		select {
		case r.events <- result:
		case <-ctx.Done():
		}
	})
}

// notifyUpdate calls the update callback if set
func (r *Runner) notifyUpdate(state State) {
	if r.onUpdate != nil {
		r.onUpdate(state)
	}
}
