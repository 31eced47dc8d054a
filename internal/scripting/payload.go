package scripting

import "strings"

type pendingKind int

const (
	pendingNone pendingKind = iota
	pendingSelection
	pendingFull
	pendingText
	pendingInsert
)

// Payload is the execution context handed to a running script. It holds an
// immutable snapshot of the buffer plus the script's pending mutation and
// notifications. Mutation calls are recorded here and never touch the live
// buffer; the pipeline applies them all-or-nothing after a successful run.
//
// A Payload is created per invocation and never shared across runs.
type Payload struct {
	fullText     string
	sel          Range
	hadSelection bool

	pending     pendingKind
	pendingText string
	inserts     []string
	notes       []Notification
}

// NewPayload builds a payload from a buffer snapshot. The selection range is
// clamped to the buffer bounds.
func NewPayload(fullText string, sel Range) *Payload {
	sel = sel.Clamp(len(fullText))
	return &Payload{
		fullText:     fullText,
		sel:          sel,
		hadSelection: !sel.Empty(),
	}
}

// FullText returns the whole buffer snapshot.
func (p *Payload) FullText() string { return p.fullText }

// Selection returns the selected text, empty when the selection is
// caret-only.
func (p *Payload) Selection() string {
	return p.fullText[p.sel.Start:p.sel.End]
}

// Text returns the selection when one is present, else the full text.
func (p *Payload) Text() string {
	if p.hadSelection {
		return p.Selection()
	}
	return p.fullText
}

// SetSelection queues replacement of the selection range. Calling it again
// overwrites the pending payload; last write wins within one invocation.
func (p *Payload) SetSelection(text string) {
	p.pending = pendingSelection
	p.pendingText = text
}

// SetFullText queues replacement of the whole buffer. If another mutation
// was queued before, the most recent call wins.
func (p *Payload) SetFullText(text string) {
	p.pending = pendingFull
	p.pendingText = text
}

// SetText queues replacement of the selection when one existed at
// invocation start, else of the whole buffer.
func (p *Payload) SetText(text string) {
	p.pending = pendingText
	p.pendingText = text
}

// Insert queues an insertion at the caret / selection start. Repeated calls
// accumulate in order.
func (p *Payload) Insert(text string) {
	p.pending = pendingInsert
	p.inserts = append(p.inserts, text)
}

// PostInfo appends an info notification.
func (p *Payload) PostInfo(message string) {
	p.notes = append(p.notes, Notification{Severity: SeverityInfo, Message: message})
}

// PostError appends an error notification. It does not abort the script; a
// script may report a non-fatal issue and continue.
func (p *Payload) PostError(message string) {
	p.notes = append(p.notes, Notification{Severity: SeverityError, Message: message})
}

// Result converts the recorded state into a transform result. The applied
// operation is whichever kind was queued last.
func (p *Payload) Result() Result {
	res := Result{Notifications: p.notes}
	switch p.pending {
	case pendingSelection:
		res.Instruction = &Instruction{Replace: ReplaceSelection, Text: p.pendingText}
	case pendingFull:
		res.Instruction = &Instruction{Replace: ReplaceFull, Text: p.pendingText}
	case pendingText:
		kind := ReplaceFull
		if p.hadSelection {
			kind = ReplaceSelection
		}
		res.Instruction = &Instruction{Replace: kind, Text: p.pendingText}
	case pendingInsert:
		res.Instruction = &Instruction{Replace: ReplaceInsert, Text: strings.Join(p.inserts, "")}
	}
	return res
}
