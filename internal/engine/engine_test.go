package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/registry"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/sandbox"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/scripting"
)

const uppercaseSource = `/* ---
name: Uppercase
description: Converts text to upper case.
tags: [text, case]
shortcut: ctrl+u
--- */
package script

import (
	"strings"

	"boop"
)

func Main(p *boop.Payload) {
	p.SetText(strings.ToUpper(p.Text()))
}
`

type recordedRun struct {
	id, script, status, errorKind, message string
}

type captureRecorder struct {
	runs []recordedRun
}

func (c *captureRecorder) RecordRun(id, script, status, errorKind, message string, _ time.Duration, _ time.Time) error {
	c.runs = append(c.runs, recordedRun{id, script, status, errorKind, message})
	return nil
}

type fakeInvoker struct {
	err error
}

func (f *fakeInvoker) Run(_ context.Context, d *registry.Descriptor, p *scripting.Payload) error {
	return f.err
}

func newTestEngine(t *testing.T, runner sandbox.Invoker, rec Recorder) *Engine {
	t.Helper()
	reg := registry.New(nil)
	report := reg.LoadAll([]registry.Source{
		{Path: "uppercase.boop", Data: []byte(uppercaseSource)},
	})
	require.Empty(t, report.Skipped)
	if runner == nil {
		runner = sandbox.New(5*time.Second, nil)
	}
	return New(reg, runner, rec, nil)
}

func TestTransformUppercaseSelection(t *testing.T) {
	e := newTestEngine(t, nil, nil)

	out, err := e.Transform(context.Background(), Request{
		Identifier: "uppercase",
		FullText:   "hello world",
		Selection:  scripting.Range{Start: 0, End: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, PhaseDone, out.Phase)
	assert.Equal(t, "HELLO world", out.NewText)
	require.NotNil(t, out.Result.Instruction)
	assert.Equal(t, scripting.ReplaceSelection, out.Result.Instruction.Replace)
	assert.Equal(t, "HELLO", out.Result.Instruction.Text)
	assert.NotEmpty(t, out.InvocationID)
}

func TestTransformFullTextWithoutSelection(t *testing.T) {
	e := newTestEngine(t, nil, nil)

	out, err := e.Transform(context.Background(), Request{
		Identifier: "uppercase",
		FullText:   "hello world",
	})
	require.NoError(t, err)

	assert.Equal(t, "HELLO WORLD", out.NewText)
	require.NotNil(t, out.Result.Instruction)
	assert.Equal(t, scripting.ReplaceFull, out.Result.Instruction.Replace)
}

func TestTransformByShortcut(t *testing.T) {
	e := newTestEngine(t, nil, nil)

	out, err := e.Transform(context.Background(), Request{
		Shortcut: "Ctrl+U",
		FullText: "abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "uppercase", out.Script.Identifier)
	assert.Equal(t, "ABC", out.NewText)
}

func TestTransformUnknownScript(t *testing.T) {
	e := newTestEngine(t, nil, nil)

	out, err := e.Transform(context.Background(), Request{
		Identifier: "does-not-exist",
		FullText:   "abc",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, scripting.ErrUnknownScript)
	assert.Equal(t, PhaseErrored, out.Phase)
	assert.Equal(t, "abc", out.NewText, "input must be untouched on error")
	assert.Nil(t, out.Script)
}

func TestTransformEmptyRequest(t *testing.T) {
	e := newTestEngine(t, nil, nil)

	_, err := e.Transform(context.Background(), Request{FullText: "abc"})
	assert.ErrorIs(t, err, scripting.ErrUnknownScript)
}

func TestTransformRunnerFailureLeavesTextUntouched(t *testing.T) {
	runErr := scripting.NewError(scripting.KindRuntime, "uppercase", "boom", nil)
	e := newTestEngine(t, &fakeInvoker{err: runErr}, nil)

	out, err := e.Transform(context.Background(), Request{
		Identifier: "uppercase",
		FullText:   "hello",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, scripting.ErrRuntime)
	assert.Equal(t, PhaseErrored, out.Phase)
	assert.Equal(t, "hello", out.NewText)
}

func TestTransformRecordsHistory(t *testing.T) {
	rec := &captureRecorder{}
	e := newTestEngine(t, nil, rec)

	_, err := e.Transform(context.Background(), Request{
		Identifier: "uppercase",
		FullText:   "abc",
	})
	require.NoError(t, err)

	require.Len(t, rec.runs, 1)
	assert.Equal(t, "uppercase", rec.runs[0].script)
	assert.Equal(t, "ok", rec.runs[0].status)
	assert.Empty(t, rec.runs[0].errorKind)
}

func TestTransformRecordsFailure(t *testing.T) {
	rec := &captureRecorder{}
	runErr := scripting.NewError(scripting.KindTimeout, "uppercase", "execution exceeded 5s", context.DeadlineExceeded)
	e := newTestEngine(t, &fakeInvoker{err: runErr}, rec)

	_, err := e.Transform(context.Background(), Request{
		Identifier: "uppercase",
		FullText:   "abc",
	})
	require.Error(t, err)

	require.Len(t, rec.runs, 1)
	assert.Equal(t, "failed", rec.runs[0].status)
	assert.Equal(t, "timeout", rec.runs[0].errorKind)
	assert.Equal(t, "execution exceeded 5s", rec.runs[0].message)
}

func TestTransformSerialized(t *testing.T) {
	// Two racing transforms must not interleave; both succeed and each
	// sees its own input snapshot.
	e := newTestEngine(t, nil, nil)

	results := make(chan string, 2)
	errs := make(chan error, 2)
	for _, in := range []string{"first", "second"} {
		go func(in string) {
			out, err := e.Transform(context.Background(), Request{
				Identifier: "uppercase",
				FullText:   in,
			})
			errs <- err
			results <- out.NewText
		}(in)
	}

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		require.NoError(t, <-errs)
		got[<-results] = true
	}
	assert.True(t, got["FIRST"])
	assert.True(t, got["SECOND"])
}

func TestTransformDistinctInvocationIDs(t *testing.T) {
	e := newTestEngine(t, nil, nil)

	a, err := e.Transform(context.Background(), Request{Identifier: "uppercase", FullText: "x"})
	require.NoError(t, err)
	b, err := e.Transform(context.Background(), Request{Identifier: "uppercase", FullText: "y"})
	require.NoError(t, err)
	assert.NotEqual(t, a.InvocationID, b.InvocationID)
}

func TestNopRecorder(t *testing.T) {
	var r Recorder = NopRecorder{}
	assert.NoError(t, r.RecordRun("id", "s", "ok", "", "", 0, time.Now()))
}
