package executor

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/harrison/levelverify/internal/extract"
	"github.com/harrison/levelverify/internal/metrics"
	"github.com/harrison/levelverify/internal/models"
	"github.com/harrison/levelverify/internal/world"
)

const tracerName = "github.com/harrison/levelverify/internal/executor"

// SyntaxChecker validates solution source before it is executed.
type SyntaxChecker interface {
	Check(ctx context.Context, source string) []models.SyntaxProblem
}

// Session runs solution source against one world. A Session is not safe for
// concurrent use.
type Session struct {
	cfg     world.Config
	world   *world.World
	cache   *extract.Cache
	checker SyntaxChecker
	tracer  trace.Tracer
	metrics *metrics.Metrics
	logger  Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithCache memoises extraction across runs.
func WithCache(cache *extract.Cache) SessionOption {
	return func(s *Session) { s.cache = cache }
}

// WithSyntaxChecker rejects sources the checker reports problems for.
func WithSyntaxChecker(checker SyntaxChecker) SessionOption {
	return func(s *Session) { s.checker = checker }
}

// WithTracer sets the tracer used for session spans.
func WithTracer(tracer trace.Tracer) SessionOption {
	return func(s *Session) { s.tracer = tracer }
}

// WithMetrics records applied actions.
func WithMetrics(m *metrics.Metrics) SessionOption {
	return func(s *Session) { s.metrics = m }
}

// WithLogger sets the logger for debug output.
func WithLogger(logger Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// NewSession creates a session whose world is built from cfg.
func NewSession(cfg world.Config, opts ...SessionOption) *Session {
	s := &Session{
		cfg:   cfg,
		world: world.New(cfg),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// World returns the world the session acts on.
func (s *Session) World() *world.World {
	return s.world
}

// Run resets the world, extracts actions and prints from source, applies the
// actions in order and returns the assembled result. Run never returns an
// error; failures are reported through ExecutionResult.Error.
func (s *Session) Run(ctx context.Context, source string) models.ExecutionResult {
	ctx, span := s.tracer.Start(ctx, "session.run")
	defer span.End()

	s.world.Reset(s.cfg)

	if s.checker != nil {
		if problems := s.checker.Check(ctx, source); len(problems) > 0 {
			err := fmt.Errorf("%w: %s", ErrSyntax, describeProblems(problems))
			span.SetStatus(codes.Error, err.Error())
			gracefulDebug(s.logger, "session rejected source: %v", err)
			return s.result(nil, nil, err.Error())
		}
	}

	before := s.cacheStats()
	ext := s.cache.Extract(source)
	s.observeCache(before)

	events := printEvents(ext.Prints)

	var (
		outcomes []string
		failure  string
	)
	for _, action := range ext.Actions {
		if err := ctx.Err(); err != nil {
			failure = fmt.Errorf("%w: %v", ErrExecutionCancelled, err).Error()
			break
		}
		outcomes = append(outcomes, ApplyAction(s.world, action))
	}
	s.metrics.AddActions(len(outcomes))

	if summary := summarizeOutcomes(outcomes); summary != "" {
		events = append(events, models.RobotActionEvent(summary))
	}

	span.SetAttributes(
		attribute.Int("levelverify.actions", len(ext.Actions)),
		attribute.Int("levelverify.actions_applied", len(outcomes)),
		attribute.Int("levelverify.prints", len(ext.Prints)),
		attribute.Int64("levelverify.turns", int64(s.world.Turns)),
	)
	if failure != "" {
		span.SetStatus(codes.Error, failure)
	}
	gracefulDebug(s.logger, "session applied %d/%d actions, %d events", len(outcomes), len(ext.Actions), len(events))

	return s.result(ext.Actions, events, failure)
}

func (s *Session) result(actions []models.Action, events []models.OutputEvent, failure string) models.ExecutionResult {
	return models.ExecutionResult{
		Success:       failure == "",
		FinalPosition: s.world.Position,
		TurnsTaken:    s.world.Turns,
		Events:        events,
		RawTrace:      models.Trace(actions),
		Error:         failure,
	}
}

func (s *Session) cacheStats() [2]uint64 {
	hits, misses := s.cache.Stats()
	return [2]uint64{hits, misses}
}

func (s *Session) observeCache(before [2]uint64) {
	if s.cache == nil {
		return
	}
	after := s.cacheStats()
	s.metrics.ObserveCache(after[0]-before[0], after[1]-before[1])
}

// printEvents maps prefixed print lines to output events. Lines with any
// other prefix, panics included, are dropped.
func printEvents(prints []string) []models.OutputEvent {
	var events []models.OutputEvent
	for _, line := range prints {
		switch {
		case strings.HasPrefix(line, extract.StdoutPrefix):
			events = append(events, models.StdoutEvent(strings.TrimPrefix(line, extract.StdoutPrefix)))
		case strings.HasPrefix(line, extract.StderrPrefix):
			events = append(events, models.StderrEvent(strings.TrimPrefix(line, extract.StderrPrefix)))
		}
	}
	return events
}

// summarizeOutcomes joins the outcomes worth reporting. Empty outcomes and
// routine ones containing "executed" are dropped.
func summarizeOutcomes(outcomes []string) string {
	var kept []string
	for _, o := range outcomes {
		if o == "" || strings.Contains(o, "executed") {
			continue
		}
		kept = append(kept, o)
	}
	return strings.Join(kept, "\n")
}

func describeProblems(problems []models.SyntaxProblem) string {
	msg := problems[0].String()
	if len(problems) > 1 {
		msg += fmt.Sprintf(" (and %d more)", len(problems)-1)
	}
	return msg
}
