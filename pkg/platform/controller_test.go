package platform

import "testing"

func TestControllerSetTextClampsSelection(t *testing.T) {
	c := NewTextEditingController("hello world")
	c.SetSelection(TextSelectionCollapsed(11))
	c.SetText("hi")

	sel := c.Selection()
	if sel.BaseOffset != 2 || sel.ExtentOffset != 2 {
		t.Errorf("expected selection clamped to 2, got %d/%d", sel.BaseOffset, sel.ExtentOffset)
	}
}

func TestControllerListeners(t *testing.T) {
	c := NewTextEditingController("")
	calls := 0
	unsubscribe := c.AddListener(func() { calls++ })

	c.SetText("a")
	c.SetSelection(TextSelectionCollapsed(1))
	if calls != 2 {
		t.Errorf("expected 2 notifications, got %d", calls)
	}

	unsubscribe()
	c.SetText("b")
	if calls != 2 {
		t.Errorf("expected no notification after unsubscribe, got %d", calls)
	}
}

func TestControllerClear(t *testing.T) {
	c := NewTextEditingController("abc")
	c.Clear()
	if c.Text() != "" {
		t.Errorf("expected empty text, got %q", c.Text())
	}
}

func TestControllerInitialSelectionAtEnd(t *testing.T) {
	c := NewTextEditingController("abc")
	sel := c.Selection()
	if !sel.IsCollapsed() || sel.BaseOffset != 3 {
		t.Errorf("expected collapsed selection at 3, got %+v", sel)
	}
}

func TestSelectionNormalization(t *testing.T) {
	sel := TextSelection{BaseOffset: 5, ExtentOffset: 2}
	if sel.Start() != 2 || sel.End() != 5 {
		t.Errorf("expected start 2 end 5, got %d/%d", sel.Start(), sel.End())
	}
	if sel.IsCollapsed() {
		t.Error("expected non-collapsed selection")
	}
}

func TestEditingValueComposing(t *testing.T) {
	v := TextEditingValueEmpty
	if v.IsComposing() {
		t.Error("empty value should not be composing")
	}
	v.ComposingRange = TextRange{Start: 0, End: 2}
	if !v.IsComposing() {
		t.Error("expected composing with non-empty range")
	}
}
