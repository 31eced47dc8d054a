package scripting

import "testing"

func TestPayloadAccessors(t *testing.T) {
	p := NewPayload("hello world", Range{Start: 0, End: 5})
	if got := p.FullText(); got != "hello world" {
		t.Fatalf("FullText() = %q", got)
	}
	if got := p.Selection(); got != "hello" {
		t.Fatalf("Selection() = %q", got)
	}
	if got := p.Text(); got != "hello" {
		t.Fatalf("Text() = %q, want selection", got)
	}

	// caret only: Selection empty, Text falls back to full text
	p = NewPayload("hello world", Range{Start: 3, End: 3})
	if got := p.Selection(); got != "" {
		t.Fatalf("caret Selection() = %q, want empty", got)
	}
	if got := p.Text(); got != "hello world" {
		t.Fatalf("caret Text() = %q, want full text", got)
	}
}

func TestPayloadRangeClamping(t *testing.T) {
	cases := []struct {
		sel  Range
		want string
	}{
		{Range{Start: -4, End: 5}, "hello"},
		{Range{Start: 6, End: 99}, "world"},
		{Range{Start: 9, End: 4}, ""},
		{Range{Start: 50, End: 60}, ""},
	}
	for _, c := range cases {
		p := NewPayload("hello world", c.sel)
		if got := p.Selection(); got != c.want {
			t.Fatalf("Selection() with %+v = %q, want %q", c.sel, got, c.want)
		}
	}
}

func TestPayloadLastWriteWins(t *testing.T) {
	p := NewPayload("hello world", Range{Start: 0, End: 5})
	p.SetSelection("HELLO")
	p.SetFullText("replaced")
	res := p.Result()
	if res.Instruction == nil || res.Instruction.Replace != ReplaceFull {
		t.Fatalf("expected full replacement to win, got %+v", res.Instruction)
	}
	if res.Instruction.Text != "replaced" {
		t.Fatalf("Instruction.Text = %q", res.Instruction.Text)
	}

	// and the other way around
	p = NewPayload("hello world", Range{Start: 0, End: 5})
	p.SetFullText("replaced")
	p.SetSelection("HELLO")
	res = p.Result()
	if res.Instruction == nil || res.Instruction.Replace != ReplaceSelection {
		t.Fatalf("expected selection replacement to win, got %+v", res.Instruction)
	}
}

func TestPayloadSetTextTargets(t *testing.T) {
	p := NewPayload("hello world", Range{Start: 0, End: 5})
	p.SetText("HELLO")
	res := p.Result()
	if res.Instruction == nil || res.Instruction.Replace != ReplaceSelection {
		t.Fatalf("SetText with selection should target selection, got %+v", res.Instruction)
	}

	p = NewPayload("hello world", Range{})
	p.SetText("HELLO WORLD")
	res = p.Result()
	if res.Instruction == nil || res.Instruction.Replace != ReplaceFull {
		t.Fatalf("SetText without selection should target full text, got %+v", res.Instruction)
	}
}

func TestPayloadInsertAccumulates(t *testing.T) {
	p := NewPayload("abc", Range{Start: 1, End: 1})
	p.Insert("x")
	p.Insert("y")
	res := p.Result()
	if res.Instruction == nil || res.Instruction.Replace != ReplaceInsert {
		t.Fatalf("expected insert instruction, got %+v", res.Instruction)
	}
	if res.Instruction.Text != "xy" {
		t.Fatalf("insert text = %q, want %q", res.Instruction.Text, "xy")
	}
}

func TestPayloadNoMutation(t *testing.T) {
	p := NewPayload("abc", Range{})
	p.PostInfo("just looking")
	res := p.Result()
	if res.Instruction != nil {
		t.Fatalf("expected nil instruction, got %+v", res.Instruction)
	}
	if len(res.Notifications) != 1 || res.Notifications[0].Severity != SeverityInfo {
		t.Fatalf("notifications = %+v", res.Notifications)
	}
}

func TestPayloadNotificationOrder(t *testing.T) {
	p := NewPayload("abc", Range{})
	p.PostInfo("one")
	p.PostError("two")
	p.PostInfo("three")
	res := p.Result()
	if len(res.Notifications) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(res.Notifications))
	}
	want := []struct {
		sev Severity
		msg string
	}{
		{SeverityInfo, "one"},
		{SeverityError, "two"},
		{SeverityInfo, "three"},
	}
	for i, w := range want {
		n := res.Notifications[i]
		if n.Severity != w.sev || n.Message != w.msg {
			t.Fatalf("notification[%d] = %+v, want %+v", i, n, w)
		}
	}
}

func TestApply(t *testing.T) {
	sel := Range{Start: 0, End: 5}
	cases := []struct {
		name string
		ins  *Instruction
		want string
	}{
		{"selection", &Instruction{Replace: ReplaceSelection, Text: "HELLO"}, "HELLO world"},
		{"full", &Instruction{Replace: ReplaceFull, Text: "bye"}, "bye"},
		{"insert", &Instruction{Replace: ReplaceInsert, Text: ">>"}, ">>hello world"},
		{"nil", nil, "hello world"},
	}
	for _, c := range cases {
		if got := Apply("hello world", sel, c.ins); got != c.want {
			t.Fatalf("Apply %s = %q, want %q", c.name, got, c.want)
		}
	}
}
