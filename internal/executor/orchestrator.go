package executor

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/harrison/levelverify/internal/completion"
	"github.com/harrison/levelverify/internal/metrics"
	"github.com/harrison/levelverify/internal/models"
	"github.com/harrison/levelverify/internal/world"
)

// Logger defines the interface for logging orchestrator progress and results.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogLevelStart(index int, level models.Level)
	LogStateChange(index int, from, to models.OrchestratorState)
	LogLevelOutcome(outcome models.LevelTestOutcome)
	LogSummary(report models.Report)
}

// Host is the game the orchestrator drives. It owns the editor buffer and
// the world of the level currently loaded.
type Host interface {
	// LoadLevel shows a level and clears the editor buffer.
	LoadLevel(level models.Level)
	// TypeRune inserts r at the cursor and advances the cursor.
	TypeRune(r rune)
	// Code returns the editor buffer.
	Code() string
	// Cursor returns the cursor position in runes.
	Cursor() int
	// Execute runs code against the loaded level. It may be called from a
	// worker goroutine and must return when ctx is done.
	Execute(ctx context.Context, code string) models.ExecutionResult
	// World returns the world of the last execution.
	World() *world.World
}

// SolutionSource maps level names to reference solutions.
type SolutionSource interface {
	Solution(levelName string) (string, bool)
}

// Snapshot is a read-only view of the orchestrator for overlays and reports.
type Snapshot struct {
	RunID          string
	State          models.OrchestratorState
	LevelIndex     int
	LevelName      string
	LevelCount     int
	Typed          int
	SolutionLength int
	Passed         int
	Failed         int
	Pending        bool // a session is running on the worker
	StateElapsed   time.Duration
	RunElapsed     time.Duration
}

// TypingProgress returns how much of the solution has been typed, 0 to 100.
func (s Snapshot) TypingProgress() int {
	if s.SolutionLength == 0 {
		return 0
	}
	return s.Typed * 100 / s.SolutionLength
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithRunID sets the identifier carried by the report.
func WithRunID(id string) OrchestratorOption {
	return func(o *Orchestrator) { o.runID = id }
}

// WithBaseContext sets the parent context of every session.
func WithBaseContext(ctx context.Context) OrchestratorOption {
	return func(o *Orchestrator) { o.baseCtx = ctx }
}

// WithOrchestratorTracer sets the tracer used for level spans.
func WithOrchestratorTracer(tracer trace.Tracer) OrchestratorOption {
	return func(o *Orchestrator) { o.tracer = tracer }
}

// WithOrchestratorMetrics records transitions and outcomes.
func WithOrchestratorMetrics(m *metrics.Metrics) OrchestratorOption {
	return func(o *Orchestrator) { o.metrics = m }
}

// Orchestrator verifies levels one at a time by typing each reference
// solution into the host, executing it and polling the completion flag.
// It is advanced by Tick and never blocks.
type Orchestrator struct {
	host      Host
	levels    []models.Level
	solutions SolutionSource
	cfg       OrchestratorConfig
	logger    Logger
	tracer    trace.Tracer
	metrics   *metrics.Metrics
	runID     string

	baseCtx context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu           sync.Mutex
	started      bool
	state        models.OrchestratorState
	stateElapsed time.Duration
	levelElapsed time.Duration
	runElapsed   time.Duration
	index        int
	end          int
	planned      int

	level    models.Level
	flag     models.CompletionFlag
	solution []rune
	typed    int
	span     trace.Span

	resultCh     chan models.ExecutionResult
	result       *models.ExecutionResult
	workerCancel context.CancelFunc

	outcomes []models.LevelTestOutcome
}

// NewOrchestrator creates an orchestrator over levels. The logger is optional
// and can be nil.
func NewOrchestrator(host Host, levels []models.Level, solutions SolutionSource, cfg OrchestratorConfig, logger Logger, opts ...OrchestratorOption) *Orchestrator {
	if host == nil {
		panic("host cannot be nil")
	}

	o := &Orchestrator{
		host:      host,
		levels:    levels,
		solutions: solutions,
		cfg:       cfg,
		logger:    logger,
		baseCtx:   context.Background(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	o.ctx, o.cancel = context.WithCancel(o.baseCtx)
	o.index, o.end = cfg.levelRange(len(levels))
	o.planned = o.end - o.index
	return o
}

// Tick advances the state machine by dt. It is called once per host frame
// and performs at most one state transition per call, except that a level
// without a solution moves straight on to NextLevel.
func (o *Orchestrator) Tick(dt time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.started {
		o.started = true
		o.state = models.StateLoading
		o.metrics.ObserveTransition(models.StateLoading)
		gracefulInfo(o.logger, "Verifying levels %d-%d of %d (run %s)", o.index, o.end-1, len(o.levels), o.runID)
		if o.index >= o.end {
			o.transition(models.StateTestsComplete)
			return
		}
		o.enterLevel()
	}
	if o.state == models.StateTestsComplete {
		return
	}
	if dt < 0 {
		dt = 0
	}
	o.stateElapsed += dt
	o.levelElapsed += dt
	o.runElapsed += dt

	switch o.state {
	case models.StateLoading:
		if o.stateElapsed >= o.cfg.LoadDelay {
			o.transition(models.StateInputtingSolution)
			o.typeSolution()
		}

	case models.StateInputtingSolution:
		o.typeSolution()

	case models.StateExecutingCode:
		if o.stateElapsed >= o.cfg.ExecuteDelay {
			o.startWorker()
			o.transition(models.StateWaitingForCompletion)
		}

	case models.StateWaitingForCompletion:
		o.pollWorker()
		if o.result != nil && completion.Evaluate(o.flag, *o.result, o.host.World()) {
			o.finishLevel(nil)
		} else if o.stateElapsed >= o.cfg.CompletionTimeout {
			o.finishLevel(o.failure())
		}

	case models.StateLevelComplete:
		if o.stateElapsed >= o.cfg.CompleteDelay {
			o.transition(models.StateNextLevel)
		}

	case models.StateNextLevel:
		if o.stateElapsed >= o.cfg.NextLevelDelay {
			if o.index < o.end {
				o.enterLevel()
			} else {
				o.transition(models.StateTestsComplete)
			}
		}
	}
}

// enterLevel loads the level at the current index. A level without a
// solution is recorded as failed without typing or executing anything.
func (o *Orchestrator) enterLevel() {
	o.level = o.levels[o.index]
	o.levelElapsed = 0
	o.typed = 0
	o.solution = nil
	o.result = nil
	o.resultCh = nil
	o.flag = completion.ParseFlag(o.level.CompletionFlag, o.level.FallbackMarkers)

	_, o.span = o.tracer.Start(o.ctx, "level.verify", trace.WithAttributes(
		attribute.String("levelverify.level", o.level.Name),
		attribute.Int("levelverify.index", o.index),
		attribute.String("levelverify.flag", o.level.CompletionFlag),
	))

	if o.logger != nil {
		o.logger.LogLevelStart(o.index, o.level)
	}
	o.host.LoadLevel(o.level)
	if o.state != models.StateLoading {
		o.transition(models.StateLoading)
	} else {
		o.stateElapsed = 0
	}

	code, ok := lookupSolution(o.solutions, o.level.Name)
	if !ok {
		o.recordOutcome(NewLevelError(o.level.Name, o.index, ErrMissingSolution, ""))
		o.transition(models.StateNextLevel)
		return
	}
	o.solution = []rune(code)
}

// typeSolution types every character that is due at the configured rate.
// Characters owed from long frames are typed in one go so the buffer never
// falls behind the clock.
func (o *Orchestrator) typeSolution() {
	due := len(o.solution)
	if o.cfg.TypingRate > 0 {
		due = int(math.Floor(o.stateElapsed.Seconds()*o.cfg.TypingRate + 1e-9))
	}
	for o.typed < len(o.solution) && o.typed < due {
		o.host.TypeRune(o.solution[o.typed])
		o.typed++
	}
	if o.typed == len(o.solution) {
		o.transition(models.StateExecutingCode)
	}
}

// startWorker runs the host session on its own goroutine. The result is
// delivered on a buffered channel so an abandoned worker never blocks.
func (o *Orchestrator) startWorker() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if o.cfg.ExecutionTimeout > 0 {
		ctx, cancel = context.WithTimeout(o.ctx, o.cfg.ExecutionTimeout)
	} else {
		ctx, cancel = context.WithCancel(o.ctx)
	}
	ch := make(chan models.ExecutionResult, 1)
	o.resultCh = ch
	o.workerCancel = cancel
	code := o.host.Code()

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer cancel()
		ch <- o.execute(ctx, code)
	}()
}

func (o *Orchestrator) execute(ctx context.Context, code string) (result models.ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			result = models.ExecutionResult{
				Success: false,
				Error:   fmt.Errorf("%w: %v", ErrExecutionPanic, r).Error(),
			}
		}
	}()
	return o.host.Execute(ctx, code)
}

func (o *Orchestrator) pollWorker() {
	if o.resultCh == nil {
		return
	}
	select {
	case r := <-o.resultCh:
		o.result = &r
		o.resultCh = nil
		gracefulDebug(o.logger, "Session finished: %d turns, %d events, trace %s", r.TurnsTaken, len(r.Events), r.RawTrace)
	default:
	}
}

// failure explains a level that ran out of time.
func (o *Orchestrator) failure() error {
	timeout := o.cfg.CompletionTimeout
	switch {
	case o.result == nil:
		return NewLevelError(o.level.Name, o.index, ErrCompletionTimeout,
			fmt.Sprintf("execution did not finish within %s", timeout))
	case o.result.Error != "":
		return NewLevelError(o.level.Name, o.index, nil, o.result.Error)
	default:
		return NewLevelError(o.level.Name, o.index, ErrCompletionTimeout,
			fmt.Sprintf("not satisfied within %s: %s", timeout, completion.Explain(o.flag, *o.result, o.host.World())))
	}
}

func (o *Orchestrator) finishLevel(err error) {
	if o.workerCancel != nil {
		o.workerCancel()
		o.workerCancel = nil
	}
	o.transition(models.StateLevelComplete)
	o.recordOutcome(err)
}

func (o *Orchestrator) recordOutcome(err error) {
	outcome := models.LevelTestOutcome{
		LevelName:  o.level.Name,
		LevelIndex: o.index,
		Success:    err == nil,
		Duration:   o.levelElapsed,
	}
	if err != nil {
		outcome.Error = err.Error()
	}
	o.outcomes = append(o.outcomes, outcome)

	if o.span != nil {
		o.span.SetAttributes(attribute.Bool("levelverify.success", outcome.Success))
		if err != nil {
			o.span.SetStatus(codes.Error, outcome.Error)
		}
		o.span.End()
		o.span = nil
	}
	o.metrics.ObserveLevel(outcome)
	if o.logger != nil {
		o.logger.LogLevelOutcome(outcome)
	}
}

func (o *Orchestrator) transition(to models.OrchestratorState) {
	from := o.state
	o.state = to
	o.stateElapsed = 0
	if to == models.StateNextLevel {
		o.index++
	}
	o.metrics.ObserveTransition(to)
	if o.logger != nil {
		o.logger.LogStateChange(o.index, from, to)
	}
	if to == models.StateTestsComplete && o.logger != nil {
		o.logger.LogSummary(o.reportLocked())
	}
}

// State returns the current state.
func (o *Orchestrator) State() models.OrchestratorState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Done reports whether every planned level has been verified.
func (o *Orchestrator) Done() bool {
	return o.State() == models.StateTestsComplete
}

// Outcomes returns a copy of the outcome log.
func (o *Orchestrator) Outcomes() []models.LevelTestOutcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]models.LevelTestOutcome(nil), o.outcomes...)
}

// Report aggregates the outcomes recorded so far.
func (o *Orchestrator) Report() models.Report {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.reportLocked()
}

func (o *Orchestrator) reportLocked() models.Report {
	return models.NewReport(o.runID, o.outcomes, o.runElapsed)
}

// Snapshot returns the current progress for display.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	report := o.reportLocked()
	return Snapshot{
		RunID:          o.runID,
		State:          o.state,
		LevelIndex:     o.index,
		LevelName:      o.level.Name,
		LevelCount:     len(o.levels),
		Typed:          o.typed,
		SolutionLength: len(o.solution),
		Passed:         report.Passed,
		Failed:         report.Failed,
		Pending:        o.resultCh != nil,
		StateElapsed:   o.stateElapsed,
		RunElapsed:     o.runElapsed,
	}
}

// Close cancels any running session and waits for its worker to exit.
func (o *Orchestrator) Close() {
	o.cancel()
	o.wg.Wait()
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.span != nil {
		o.span.End()
		o.span = nil
	}
	if o.state != models.StateTestsComplete {
		gracefulWarn(o.logger, "Run stopped in state %s with %d of %d levels verified", o.state, len(o.outcomes), o.planned)
	}
}
