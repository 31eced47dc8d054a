// Package sandbox compiles script bodies once per source revision and
// invokes them inside a capability-restricted yaegi interpreter.
package sandbox

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/traefik/yaegi/interp"
	"go.uber.org/zap"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/registry"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/scripting"
)

// EntryName is the function every script must export.
const EntryName = "Main"

// Handle is a compiled script. Handles are immutable; a reload produces a
// new handle rather than mutating one an in-flight invocation may hold.
type Handle struct {
	identifier string
	hash       string
	entry      func(*scripting.Payload)
}

// Invoker is the engine-facing contract. It lets tests substitute a fake
// runner for pipeline error paths.
type Invoker interface {
	// Run compiles d if needed and executes it against p. Any returned
	// error is a *scripting.Error.
	Run(ctx context.Context, d *registry.Descriptor, p *scripting.Payload) error
}

// Runner owns the compiled-handle cache. Safe for concurrent use; the cache
// is read-mostly and a racing recompilation never corrupts a handle an
// in-flight invocation started with.
type Runner struct {
	mu      sync.Mutex
	handles map[string]*Handle
	timeout time.Duration
	log     *zap.Logger
}

// New builds a Runner with the given per-invocation wall-clock budget.
func New(timeout time.Duration, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		handles: make(map[string]*Handle),
		timeout: timeout,
		log:     log,
	}
}

// Run compiles (cached) and invokes the script.
func (r *Runner) Run(ctx context.Context, d *registry.Descriptor, p *scripting.Payload) error {
	h, err := r.EnsureCompiled(d)
	if err != nil {
		return err
	}
	return r.Invoke(ctx, h, p)
}

// EnsureCompiled returns the cached handle for the descriptor's exact
// source revision, compiling it when absent or stale. A compilation failure
// leaves the cache for every other script untouched.
func (r *Runner) EnsureCompiled(d *registry.Descriptor) (*Handle, error) {
	hash := sourceHash(d.Source)

	r.mu.Lock()
	if h, ok := r.handles[d.Identifier]; ok && h.hash == hash {
		r.mu.Unlock()
		return h, nil
	}
	r.mu.Unlock()

	h, err := compile(d, hash)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.handles[d.Identifier] = h
	r.mu.Unlock()
	r.log.Debug("script compiled", zap.String("identifier", d.Identifier), zap.String("hash", hash[:12]))
	return h, nil
}

// Invalidate drops the cached handle for an identifier, if any.
func (r *Runner) Invalidate(identifier string) {
	r.mu.Lock()
	delete(r.handles, identifier)
	r.mu.Unlock()
}

// Invoke runs the handle's entry function against the payload. Execution
// happens on its own goroutine so a hung script cannot block the caller
// beyond the configured budget; on timeout or cancel the payload is simply
// abandoned, which is what makes all-or-nothing application possible.
func (r *Runner) Invoke(ctx context.Context, h *Handle, p *scripting.Payload) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan *scripting.Error, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- scripting.NewError(scripting.KindRuntime, h.identifier, panicMessage(rec), nil)
			}
		}()
		h.entry(p)
		done <- nil
	}()

	select {
	case err := <-done:
		if err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return scripting.NewError(scripting.KindTimeout, h.identifier,
				fmt.Sprintf("execution exceeded %s", r.timeout), ctx.Err())
		}
		return scripting.NewError(scripting.KindCanceled, h.identifier, "execution canceled", ctx.Err())
	}
}

var packageClause = regexp.MustCompile(`(?m)^[ \t]*package[ \t]+([A-Za-z_][A-Za-z0-9_]*)`)

// normalizeSource ensures the script body has a package clause and returns
// the body plus the package name the entry function lives in.
func normalizeSource(src string) (string, string) {
	if m := packageClause.FindStringSubmatch(src); m != nil {
		return src, m[1]
	}
	return "package script\n\n" + src, "script"
}

func compile(d *registry.Descriptor, hash string) (*Handle, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(Symbols()); err != nil {
		return nil, scripting.NewError(scripting.KindCompile, d.Identifier, "failed to load sandbox symbols", err)
	}

	src, pkg := normalizeSource(d.Source)
	if _, err := i.Eval(src); err != nil {
		return nil, scripting.NewError(scripting.KindCompile, d.Identifier, err.Error(), err)
	}

	v, err := i.Eval(pkg + "." + EntryName)
	if err != nil {
		return nil, scripting.NewError(scripting.KindCompile, d.Identifier,
			fmt.Sprintf("entry function %s not found", EntryName), err)
	}
	entry, ok := v.Interface().(func(*scripting.Payload))
	if !ok {
		return nil, scripting.NewError(scripting.KindCompile, d.Identifier,
			fmt.Sprintf("%s must have signature func(p *%s.Payload)", EntryName, PayloadImportPath), nil)
	}

	return &Handle{identifier: d.Identifier, hash: hash, entry: entry}, nil
}

func sourceHash(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

// panicMessage renders whatever the script threw. yaegi wraps interpreted
// panics in interp.Panic; anything else is a host-side fault surfaced the
// same way so it can never escape as a host panic.
func panicMessage(rec any) string {
	if p, ok := rec.(interp.Panic); ok {
		return fmt.Sprint(p.Value)
	}
	return fmt.Sprint(rec)
}
