// Package engine orchestrates a transform: resolve the script, run it in
// the sandbox, and fold the payload into a buffer instruction.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/registry"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/sandbox"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/scripting"
)

// Phase labels where in the pipeline a transform currently is. Phases only
// move forward within one invocation.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseResolving Phase = "resolving"
	PhaseExecuting Phase = "executing"
	PhaseApplying  Phase = "applying"
	PhaseDone      Phase = "done"
	PhaseErrored   Phase = "errored"
)

// Request describes one transform to perform.
type Request struct {
	// Identifier names the script directly. When empty, Shortcut is used.
	Identifier string
	// Shortcut resolves the script by key combination.
	Shortcut string
	// FullText is the buffer snapshot the script sees.
	FullText string
	// Selection is the selected byte range within FullText.
	Selection scripting.Range
}

// Outcome is the pipeline's answer for a finished (or failed) transform.
type Outcome struct {
	InvocationID string
	Script       *registry.Descriptor
	Result       scripting.Result
	// NewText is FullText with the script's instruction applied. Equal to
	// the input when the script queued no mutation.
	NewText  string
	Duration time.Duration
	Phase    Phase
}

// Recorder receives a line per invocation. The run-history store satisfies
// it; a nop recorder is used when history is disabled.
type Recorder interface {
	RecordRun(id, script, status, errorKind, message string, duration time.Duration, startedAt time.Time) error
}

// NopRecorder discards every record.
type NopRecorder struct{}

func (NopRecorder) RecordRun(string, string, string, string, string, time.Duration, time.Time) error {
	return nil
}

// Engine ties the registry, sandbox runner, and recorder together. One
// transform runs at a time; callers block until the slot frees up.
type Engine struct {
	mu       sync.Mutex
	registry *registry.Registry
	runner   sandbox.Invoker
	recorder Recorder
	log      *zap.Logger
}

// New builds an Engine. A nil recorder disables history; a nil logger
// discards logs.
func New(reg *registry.Registry, runner sandbox.Invoker, rec Recorder, log *zap.Logger) *Engine {
	if rec == nil {
		rec = NopRecorder{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{registry: reg, runner: runner, recorder: rec, log: log}
}

// Transform runs the full pipeline for one request. The returned Outcome is
// valid even on error: it carries the invocation id, the phase reached, and
// the untouched input text.
func (e *Engine) Transform(ctx context.Context, req Request) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := Outcome{
		InvocationID: uuid.NewString(),
		NewText:      req.FullText,
		Phase:        PhaseResolving,
	}
	started := time.Now()
	log := e.log.With(zap.String("invocation", out.InvocationID))

	d, err := e.resolve(req)
	if err != nil {
		out.Phase = PhaseErrored
		out.Duration = time.Since(started)
		e.record(out, d, started, err)
		return out, err
	}
	out.Script = d
	log = log.With(zap.String("script", d.Identifier))
	log.Debug("script resolved")

	out.Phase = PhaseExecuting
	payload := scripting.NewPayload(req.FullText, req.Selection)
	if err := e.runner.Run(ctx, d, payload); err != nil {
		out.Phase = PhaseErrored
		out.Duration = time.Since(started)
		log.Warn("script failed", zap.Error(err))
		e.record(out, d, started, err)
		return out, err
	}

	out.Phase = PhaseApplying
	out.Result = payload.Result()
	out.NewText = scripting.Apply(req.FullText, req.Selection, out.Result.Instruction)

	out.Phase = PhaseDone
	out.Duration = time.Since(started)
	log.Info("transform complete",
		zap.Duration("duration", out.Duration),
		zap.Bool("mutated", out.Result.Instruction != nil))
	e.record(out, d, started, nil)
	return out, nil
}

// resolve finds the descriptor for the request, by identifier first and by
// shortcut otherwise.
func (e *Engine) resolve(req Request) (*registry.Descriptor, error) {
	if req.Identifier != "" {
		if d := e.registry.FindByIdentifier(req.Identifier); d != nil {
			return d, nil
		}
		return nil, scripting.NewError(scripting.KindUnknownScript, req.Identifier,
			"no script with this identifier", nil)
	}
	if req.Shortcut != "" {
		if d := e.registry.FindByShortcut(req.Shortcut); d != nil {
			return d, nil
		}
		return nil, scripting.NewError(scripting.KindUnknownScript, req.Shortcut,
			"no script bound to this shortcut", nil)
	}
	return nil, scripting.NewError(scripting.KindUnknownScript, "",
		"request names no script", nil)
}

func (e *Engine) record(out Outcome, d *registry.Descriptor, started time.Time, runErr error) {
	script := ""
	if d != nil {
		script = d.Identifier
	}
	status := "ok"
	kind, msg := "", ""
	if runErr != nil {
		status = "failed"
		msg = runErr.Error()
		if se, ok := runErr.(*scripting.Error); ok {
			kind = string(se.Kind)
			msg = se.Message
		}
	}
	if err := e.recorder.RecordRun(out.InvocationID, script, status, kind, msg, out.Duration, started); err != nil {
		e.log.Warn("failed to record invocation", zap.Error(err))
	}
}
