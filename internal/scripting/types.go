// Package scripting defines the capability surface exposed to running
// scripts and the value types exchanged between the engine and its shell.
package scripting

// Severity classifies a notification posted by a script.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notification is a message a script posted during its run. Notifications
// are forwarded to the shell in emission order after the run completes.
type Notification struct {
	Severity Severity
	Message  string
}

// ReplaceKind identifies which buffer mutation an instruction performs.
type ReplaceKind string

const (
	ReplaceSelection ReplaceKind = "selection"
	ReplaceFull      ReplaceKind = "full"
	ReplaceInsert    ReplaceKind = "insert-at-caret"
)

// Instruction tells the shell how to mutate its buffer after a successful
// run. A nil Instruction means the script queued no mutation.
type Instruction struct {
	Replace ReplaceKind
	Text    string
}

// Range is a half-open [Start, End) byte range into the buffer. An empty
// range represents a caret position.
type Range struct {
	Start int
	End   int
}

// Empty reports whether the range is caret-only.
func (r Range) Empty() bool { return r.Start >= r.End }

// Clamp bounds the range to a buffer of n bytes and normalizes inverted
// ranges to a caret at Start.
func (r Range) Clamp(n int) Range {
	if r.Start < 0 {
		r.Start = 0
	}
	if r.Start > n {
		r.Start = n
	}
	if r.End < r.Start {
		r.End = r.Start
	}
	if r.End > n {
		r.End = n
	}
	return r
}

// Result is the outcome of a successful script run.
type Result struct {
	Instruction   *Instruction
	Notifications []Notification
}

// Apply performs an instruction against the given buffer snapshot and
// returns the new buffer contents. It is the shell-side counterpart of the
// pipeline's Applying phase; the engine never touches a live buffer itself.
func Apply(fullText string, sel Range, ins *Instruction) string {
	if ins == nil {
		return fullText
	}
	sel = sel.Clamp(len(fullText))
	switch ins.Replace {
	case ReplaceFull:
		return ins.Text
	case ReplaceSelection:
		return fullText[:sel.Start] + ins.Text + fullText[sel.End:]
	case ReplaceInsert:
		return fullText[:sel.Start] + ins.Text + fullText[sel.Start:]
	}
	return fullText
}
