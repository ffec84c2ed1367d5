package checker

import (
	"context"
	"fmt"
	"reviewd/internal/config"
	"reviewd/internal/reporter"
	"reviewd/pkg/adscache"
	"reviewd/pkg/domain"
	"reviewd/pkg/logger"
	"reviewd/pkg/metrics"
	"reviewd/pkg/prefs"
	"reviewd/pkg/reviews"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Options configure polling, impression timing and feature gates for a
// session controller. These settings are typically derived from application
// configuration.
type Options struct {
	// InitialPollInterval is the first sleep of the status poll loop.
	InitialPollInterval time.Duration
	// PollDecrement shortens the sleep after each poll iteration.
	PollDecrement time.Duration
	// MinPollInterval is the floor the sleep never goes below.
	MinPollInterval time.Duration
	// ImpressionDelay is how long an ad must stay visible before its
	// impression event is filed.
	ImpressionDelay time.Duration

	// ComingSoonEnabled gates the info-coming-soon card.
	ComingSoonEnabled bool
	// ReportInStockEnabled gates the report-back-in-stock card.
	ReportInStockEnabled bool
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		InitialPollInterval: cfg.Checker.InitialPollInterval,
		PollDecrement:       cfg.Checker.PollDecrement,
		MinPollInterval:     cfg.Checker.MinPollInterval,
		ImpressionDelay:     cfg.Checker.ImpressionDelay,

		ComingSoonEnabled:    true,
		ReportInStockEnabled: true,
	}
}

// Deps are the collaborators a controller needs.
type Deps struct {
	// Client talks to the upstream review provider.
	Client reviews.Client
	// Ads is the shared sponsored-ads cache.
	Ads adscache.Cache
	// Prefs stores the opt-in and ads-enabled flags.
	Prefs prefs.Store
	// Reporter files fire-and-forget reports.
	Reporter reporter.Reporter
	// Metrics records session instruments; may be nil.
	Metrics *metrics.Checker
}

// task tracks one in-flight asynchronous sequence so a newer operation can
// supersede it.
type task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Controller owns the view-state machine of a single product session. All
// state writes and observer notifications are serialized through its mutex;
// fetch and poll sequences run as background tasks that are cancelled when a
// newer operation starts or the session closes.
type Controller struct {
	product domain.ProductID
	deps    Deps
	options Options
	poller  *poller

	// base is the session-lifetime context all task contexts derive from.
	base       context.Context //nolint: containedctx
	cancelBase context.CancelFunc

	mu        sync.Mutex
	state     State
	attempts  int
	observers map[int]chan struct{}
	nextObs   int
	closed    bool

	// fetchTask and pollTask are the at-most-one in-flight sequences.
	fetchTask *task
	pollTask  *task

	// impression timer state, guarded separately so a firing timer never
	// contends with state commits.
	impMu     sync.Mutex
	impTimer  *time.Timer
	impressed map[string]bool
}

// New creates a controller in the loading state. The caller is expected to
// start it with Fetch and tear it down with Close.
func New(product domain.ProductID, deps Deps, options Options) *Controller {
	base, cancel := context.WithCancel(context.Background())

	c := &Controller{
		product:    product,
		deps:       deps,
		options:    options,
		poller:     newPoller(deps.Client, options),
		base:       base,
		cancelBase: cancel,
		state:      State{Kind: StateLoading},
		observers:  map[int]chan struct{}{},
		impressed:  map[string]bool{},
	}
	deps.Metrics.SessionOpened(base)

	return c
}

// Product returns the product this session is about.
func (c *Controller) Product() domain.ProductID {
	return c.product
}

// State returns a copy of the current view state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Flags reads the current preference and feature flags.
func (c *Controller) Flags(ctx context.Context) Flags {
	optedIn, err := c.deps.Prefs.Bool(ctx, prefs.KeyOptedIn, false)
	if err != nil {
		logger.Warn(ctx, "could not read opt-in preference", zap.Error(err))
	}
	adsEnabled, err := c.deps.Prefs.Bool(ctx, prefs.KeyAdsEnabled, true)
	if err != nil {
		logger.Warn(ctx, "could not read ads preference", zap.Error(err))
	}

	return Flags{
		OptedIn:       optedIn,
		AdsEnabled:    adsEnabled,
		ComingSoon:    c.options.ComingSoonEnabled,
		ReportInStock: c.options.ReportInStockEnabled,
	}
}

// Elements derives the ordered display-element list for the current state
// and preference flags.
func (c *Controller) Elements(ctx context.Context) []domain.ElementTag {
	return Elements(c.State(), c.Flags(ctx))
}

// Subscribe registers an observer of state changes. The returned channel
// receives a payload-free signal after every commit; signals are coalesced
// when the observer lags. The cancel function unregisters the observer.
func (c *Controller) Subscribe() (<-chan struct{}, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextObs
	c.nextObs++
	ch := make(chan struct{}, 1)
	c.observers[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// Fetch runs the fetch-then-poll sequence in the background if the user has
// opted into the feature; otherwise it is a no-op. A second call supersedes
// any sequence still in flight.
func (c *Controller) Fetch(ctx context.Context) {
	optedIn, err := c.deps.Prefs.Bool(ctx, prefs.KeyOptedIn, false)
	if err != nil {
		logger.Warn(ctx, "could not read opt-in preference", zap.Error(err))

		return
	}
	if !optedIn {
		return
	}

	t, taskCtx := c.startTask(&c.fetchTask)
	if t == nil {
		return
	}

	go func() {
		defer close(t.done)
		c.runFetch(taskCtx, true)
	}()
}

// TriggerAnalysis asks the provider to start analyzing the product and then
// follows the poll protocol in the background. A second call supersedes any
// sequence still in flight.
func (c *Controller) TriggerAnalysis() {
	t, taskCtx := c.startTask(&c.pollTask)
	if t == nil {
		return
	}

	go func() {
		defer close(t.done)
		c.runTrigger(taskCtx)
	}()
}

// ReportBackInStock files a back-in-stock report. Fire and forget: failures
// are logged and swallowed, visible state is never affected.
func (c *Controller) ReportBackInStock(ctx context.Context) {
	if _, err := c.deps.Reporter.BackInStock(ctx, c.product); err != nil {
		logger.Warn(ctx, "could not file back-in-stock report", zap.Error(err))
	}
}

// ToggleAds flips the persisted ads-enabled preference and emits exactly one
// state-changed notification. It is a display toggle, not a state-machine
// transition.
func (c *Controller) ToggleAds(ctx context.Context) error {
	cur, err := c.deps.Prefs.Bool(ctx, prefs.KeyAdsEnabled, true)
	if err != nil {
		return fmt.Errorf("could not read ads preference: %w", err)
	}
	if err := c.deps.Prefs.SetBool(ctx, prefs.KeyAdsEnabled, !cur); err != nil {
		return fmt.Errorf("could not store ads preference: %w", err)
	}

	c.notify()

	return nil
}

// Close cancels all in-flight sequences and the impression timer, and closes
// observer channels. Safe to call repeatedly and from any state.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()

		return
	}
	c.closed = true
	observers := c.observers
	c.observers = map[int]chan struct{}{}
	c.mu.Unlock()

	c.cancelBase()
	c.stopImpressionTimer()

	for _, ch := range observers {
		close(ch)
	}

	c.deps.Metrics.SessionClosed(context.Background())
}

// startTask cancels the previous fetch and poll sequences and registers a
// new task in the given slot. Returns nil when the controller is closed.
func (c *Controller) startTask(slot **task) (*task, context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, nil
	}

	// starting a new high-level operation supersedes both sequences
	if c.fetchTask != nil {
		c.fetchTask.cancel()
		c.fetchTask = nil
	}
	if c.pollTask != nil {
		c.pollTask.cancel()
		c.pollTask = nil
	}

	taskCtx, cancel := context.WithCancel(c.base)
	t := &task{cancel: cancel, done: make(chan struct{})}
	*slot = t

	return t, taskCtx
}

// runFetch performs one fetch cycle, commits the result, and consumes the
// poll stream when the product is being analyzed.
func (c *Controller) runFetch(ctx context.Context, setLoading bool) {
	if setLoading {
		c.commit(ctx, State{Kind: StateLoading})
	}

	start := time.Now()
	data, err := c.fetchCycle(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		c.deps.Metrics.FetchCycle(ctx, "error", time.Since(start).Seconds())
		c.commit(ctx, State{Kind: StateError, Cause: err})

		return
	}
	c.deps.Metrics.FetchCycle(ctx, "ok", time.Since(start).Seconds())
	c.commit(ctx, State{Kind: StateLoaded, Loaded: *data})

	if data.Analysis != nil && data.Analysis.NeedsAnalysis &&
		data.Status != nil && data.Status.IsAnalyzing() {
		// fetch path: a poll failure restores the loaded data with the
		// status cleared instead of refetching
		c.consumePoll(ctx, false)
	}
}

// runTrigger increments the attempt counter, asks the provider to start an
// analysis, and either follows the poll protocol or converges to one refetch.
func (c *Controller) runTrigger(ctx context.Context) {
	c.mu.Lock()
	c.attempts++
	c.mu.Unlock()

	status, err := c.deps.Client.TriggerAnalysis(ctx, c.product)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		logger.Warn(ctx, "could not trigger analysis, falling back to refetch", zap.Error(err))
		c.refetch(ctx)

		return
	}
	if status == nil || !status.IsAnalyzing() {
		// already complete or rejected: converge with the fetch path
		c.refetch(ctx)

		return
	}

	c.updateLoaded(ctx, func(d *LoadedData) {
		s := *status
		d.Status = &s
	})
	// trigger path: a poll failure falls back to a full refetch
	c.consumePoll(ctx, true)
}

// consumePoll drives the poll primitive. Intermediate analyzing statuses
// update the loaded state; the terminal status triggers exactly one refetch.
// The poll stream itself never refetches, it only signals.
func (c *Controller) consumePoll(ctx context.Context, refetchOnError bool) {
	sawTerminal := false
	err := c.poller.run(ctx, c.product, func(status domain.AnalysisStatus) {
		c.deps.Metrics.PollIteration(ctx)

		if status.IsAnalyzing() {
			c.updateLoaded(ctx, func(d *LoadedData) {
				s := status
				d.Status = &s
			})

			return
		}
		sawTerminal = true
	})
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		logger.Warn(ctx, "analysis status poll failed", zap.Error(err))
		if refetchOnError {
			c.refetch(ctx)

			return
		}
		// keep the last loaded data, only drop the stale poll status
		c.updateLoaded(ctx, func(d *LoadedData) {
			d.Status = nil
		})

		return
	}

	if sawTerminal {
		c.refetch(ctx)
	}
}

// refetch performs one fetch cycle and commits, without re-entering the poll
// loop.
func (c *Controller) refetch(ctx context.Context) {
	start := time.Now()
	data, err := c.fetchCycle(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		c.deps.Metrics.FetchCycle(ctx, "error", time.Since(start).Seconds())
		c.commit(ctx, State{Kind: StateError, Cause: err})

		return
	}
	c.deps.Metrics.FetchCycle(ctx, "ok", time.Since(start).Seconds())
	c.commit(ctx, State{Kind: StateLoaded, Loaded: *data})
}

// fetchCycle performs a single fetch attempt: the analysis snapshot is
// primary and its failure fails the cycle; ads and the best-effort status
// probe tolerate all errors.
func (c *Controller) fetchCycle(ctx context.Context) (*LoadedData, error) {
	analysis, err := c.deps.Client.ProductAnalysis(ctx, c.product)
	if err != nil {
		return nil, fmt.Errorf("could not fetch product analysis: %w", err)
	}

	ads := c.fetchAds(ctx)

	var status *domain.AnalysisStatus
	if analysis != nil && analysis.NeedsAnalysis {
		status, err = c.deps.Client.AnalysisStatus(ctx, c.product)
		if err != nil {
			logger.Debug(ctx, "could not probe analysis status", zap.Error(err))
			status = nil
		}
	}

	c.mu.Lock()
	attempts := c.attempts
	c.mu.Unlock()

	return &LoadedData{
		Analysis:        analysis,
		Ads:             ads,
		Status:          status,
		AnalyzeAttempts: attempts,
	}, nil
}

// fetchAds returns the sponsored-ads list through the cache. Ads are a
// secondary concern: every failure degrades to an empty list. The
// populate-on-miss write races benignly with concurrent sessions.
func (c *Controller) fetchAds(ctx context.Context) []domain.Ad {
	enabled, err := c.deps.Prefs.Bool(ctx, prefs.KeyAdsEnabled, true)
	if err != nil {
		logger.Warn(ctx, "could not read ads preference", zap.Error(err))

		return nil
	}
	if !enabled {
		return nil
	}

	ads, ok, err := c.deps.Ads.Get(ctx, c.product)
	if err != nil {
		logger.Warn(ctx, "could not read ads cache", zap.Error(err))
	}
	if ok {
		return ads
	}

	ads, err = c.deps.Client.ProductAds(ctx, c.product)
	if err != nil {
		logger.Warn(ctx, "could not fetch ads", zap.Error(err))

		return nil
	}

	if err := c.deps.Ads.Put(ctx, c.product, ads); err != nil {
		logger.Warn(ctx, "could not populate ads cache", zap.Error(err))
	}

	return ads
}

// updateLoaded commits a mutated copy of the current loaded data. When the
// state is not loaded yet (trigger on a fresh session), it starts from empty
// data so the poll status is still visible.
func (c *Controller) updateLoaded(ctx context.Context, mutate func(*LoadedData)) {
	c.mu.Lock()
	data := LoadedData{}
	if c.state.Kind == StateLoaded {
		data = c.state.Loaded
	}
	data.AnalyzeAttempts = c.attempts
	c.mu.Unlock()

	mutate(&data)
	c.commit(ctx, State{Kind: StateLoaded, Loaded: data})
}

// commit replaces the state and notifies observers. A cancelled task commits
// nothing, leaving the last committed state unchanged.
func (c *Controller) commit(ctx context.Context, st State) {
	if ctx != nil && ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()

		return
	}
	c.state = st
	c.mu.Unlock()

	c.notify()
}

// notify signals every observer without blocking; a slow observer keeps the
// single buffered signal and re-reads the state once, which coalesces bursts.
func (c *Controller) notify() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	for _, ch := range c.observers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
