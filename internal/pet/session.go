package pet

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultDecayInterval is how often happiness decays on its own.
const DefaultDecayInterval = 5 * time.Second

// Store persists the single happiness value.
type Store interface {
	// Initialize creates the backing storage if needed. Safe to call repeatedly.
	Initialize(ctx context.Context) error
	// Read returns the stored happiness, creating the default record if absent.
	Read(ctx context.Context) (int, error)
	// Write upserts the stored happiness.
	Write(ctx context.Context, happiness int) error
}

// ActionRecord describes one applied user action for the journal.
type ActionRecord struct {
	Action    Action
	Delta     int // Actual change after clamping
	Happiness int // Happiness after the action
	Treats    int // Treats left after the action
	At        time.Time
}

// Journal records applied user actions. Decay ticks are not journaled.
type Journal interface {
	RecordAction(rec ActionRecord) error
}

// Config configures a Session.
type Config struct {
	Rules         Rules
	DecayInterval time.Duration
	Feedback      Feedback    // Defaults to NopFeedback
	Journal       Journal     // Optional
	Logger        *log.Logger // Defaults to a discarding logger
	NewTicker     TickerFunc  // Defaults to NewRealTicker
	QueueSize     int         // Pending write limit
}

// DefaultConfig returns a Config with the stock rules and decay interval.
func DefaultConfig() Config {
	return Config{
		Rules:         DefaultRules(),
		DecayInterval: DefaultDecayInterval,
	}
}

// Result reports the outcome of Apply.
type Result struct {
	Action  Action
	Applied bool
	Before  State
	After   State
}

// Session owns the pet state for the lifetime of one screen.
// All mutations are serialized by an internal mutex, so the decay goroutine
// and user actions interleave only between whole mutations.
type Session struct {
	mu       sync.Mutex
	state    State
	rules    Rules
	store    Store
	journal  Journal
	feedback Feedback
	logger   *log.Logger
	writer   *writer

	stopDecay chan struct{}
	decayDone chan struct{}
	closeOnce sync.Once
}

// Open starts a session: it initializes and reads the store, grants the
// starting treats and starts the decay ticker. Store failures are logged and
// the session falls back to the default happiness. store may be nil, in which
// case the session runs purely in memory.
func Open(ctx context.Context, store Store, cfg Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Feedback == nil {
		cfg.Feedback = NopFeedback{}
	}
	if cfg.NewTicker == nil {
		cfg.NewTicker = NewRealTicker
	}
	if cfg.DecayInterval <= 0 {
		cfg.DecayInterval = DefaultDecayInterval
	}

	s := &Session{
		rules:    cfg.Rules,
		store:    store,
		journal:  cfg.Journal,
		feedback: cfg.Feedback,
		logger:   cfg.Logger,
		writer:   newWriter(cfg.QueueSize, cfg.Logger),
		state: State{
			Happiness: cfg.Rules.DefaultHappiness,
			Treats:    cfg.Rules.StartingTreats,
		},
	}

	if store != nil {
		if err := store.Initialize(ctx); err != nil {
			s.logger.Warn("could not initialize pet store", "error", err)
		}
		happiness, err := store.Read(ctx)
		if err != nil {
			s.logger.Warn("could not read happiness, using default",
				"default", cfg.Rules.DefaultHappiness, "error", err)
		} else {
			s.state.Happiness = happiness
		}
	}

	s.logger.Info("session started", "happiness", s.state.Happiness, "treats", s.state.Treats)
	s.startDecay(cfg.NewTicker(cfg.DecayInterval))
	return s
}

// startDecay runs the decay loop until Close.
func (s *Session) startDecay(t Ticker) {
	s.stopDecay = make(chan struct{})
	s.decayDone = make(chan struct{})

	go func() {
		defer close(s.decayDone)
		defer t.Stop()

		for {
			select {
			case <-s.stopDecay:
				return
			case <-t.C():
				s.Apply(ActionDecay)
			}
		}
	}()
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Rules returns the rules this session plays by.
func (s *Session) Rules() Rules {
	return s.rules
}

// MakeHappy adds happiness, capped at the maximum.
func (s *Session) MakeHappy() State { return s.Apply(ActionMakeHappy).After }

// Swipe removes happiness, floored at the minimum.
func (s *Session) Swipe() State { return s.Apply(ActionSwipe).After }

// Pet adds a little happiness, capped at the maximum.
func (s *Session) Pet() State { return s.Apply(ActionPet).After }

// GiveTreat spends a treat for a large boost. No-op without treats.
func (s *Session) GiveTreat() State { return s.Apply(ActionGiveTreat).After }

// Decay applies one decay step. The decay loop calls this on every tick.
func (s *Session) Decay() State { return s.Apply(ActionDecay).After }

// Apply performs an action: it computes the bounded new state, queues the
// store write, then updates memory. The write is not awaited, so a crash in
// between loses at most the latest change.
func (s *Session) Apply(a Action) Result {
	s.mu.Lock()
	before := s.state
	after, ok := s.rules.Next(before, a)
	if !ok {
		s.mu.Unlock()
		return Result{Action: a, Before: before, After: before}
	}

	s.persist(after.Happiness)
	if a != ActionDecay {
		s.record(ActionRecord{
			Action:    a,
			Delta:     after.Happiness - before.Happiness,
			Happiness: after.Happiness,
			Treats:    after.Treats,
			At:        time.Now(),
		})
	}
	s.state = after
	s.mu.Unlock()

	s.logger.Debug("pet action", "action", a, "happiness", after.Happiness, "treats", after.Treats)

	fx := s.rules.effect(a)
	if fx.haptic != HapticNone {
		s.feedback.Haptic(fx.haptic)
	}
	if fx.sound {
		s.feedback.Sound()
	}

	return Result{Action: a, Applied: true, Before: before, After: after}
}

// persist queues a happiness write.
func (s *Session) persist(happiness int) {
	if s.store == nil {
		return
	}
	store := s.store
	s.writer.enqueue(writeJob{
		name: "write happiness",
		run: func(ctx context.Context) error {
			return store.Write(ctx, happiness)
		},
	})
}

// record queues a journal entry.
func (s *Session) record(rec ActionRecord) {
	if s.journal == nil {
		return
	}
	journal := s.journal
	s.writer.enqueue(writeJob{
		name: "record " + rec.Action.String(),
		run: func(context.Context) error {
			return journal.RecordAction(rec)
		},
	})
}

// Close stops the decay ticker and flushes queued writes.
// Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.stopDecay)
		<-s.decayDone
		s.writer.close()
		s.logger.Info("session ended", "happiness", s.State().Happiness)
	})
}
