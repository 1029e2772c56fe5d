package platform

import (
	"sync"
	"testing"
)

// recordingBackend captures push calls for assertions.
type recordingBackend struct {
	mu      sync.Mutex
	created []int64
	values  map[int64]TextEditingValue
	focused map[int64]bool
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{
		values:  make(map[int64]TextEditingValue),
		focused: make(map[int64]bool),
	}
}

func (b *recordingBackend) CreateInput(viewID int64, config TextInputViewConfig) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.created = append(b.created, viewID)
	return nil
}

func (b *recordingBackend) SetValue(viewID int64, value TextEditingValue) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[viewID] = value
}

func (b *recordingBackend) UpdateConfig(viewID int64, config TextInputViewConfig) {}

func (b *recordingBackend) Focus(viewID int64) {
	b.mu.Lock()
	b.focused[viewID] = true
	b.mu.Unlock()
	GetTextInputRegistry().HandleFocusChanged(viewID, true)
}

func (b *recordingBackend) Blur(viewID int64) {
	b.mu.Lock()
	b.focused[viewID] = false
	b.mu.Unlock()
	GetTextInputRegistry().HandleFocusChanged(viewID, false)
}

func (b *recordingBackend) DisposeInput(viewID int64) {}

type recordingClient struct {
	texts   []string
	actions []TextInputAction
	focus   []bool
}

func (c *recordingClient) OnTextChanged(text string, selBase, selExt int) {
	c.texts = append(c.texts, text)
}

func (c *recordingClient) OnAction(action TextInputAction) {
	c.actions = append(c.actions, action)
}

func (c *recordingClient) OnFocusChanged(focused bool) {
	c.focus = append(c.focus, focused)
}

func TestRegistryCreateAndRoute(t *testing.T) {
	ResetForTest()
	backend := newRecordingBackend()
	SetHostBackend(backend)
	defer ResetForTest()

	client := &recordingClient{}
	view := GetTextInputRegistry().Create(TextInputViewConfig{}, client)

	if len(backend.created) != 1 || backend.created[0] != view.ViewID() {
		t.Fatalf("expected backend create for view %d, got %v", view.ViewID(), backend.created)
	}

	GetTextInputRegistry().HandleTextChanged(view.ViewID(), "hello", 5, 5)
	if view.Text() != "hello" {
		t.Errorf("expected view text hello, got %q", view.Text())
	}
	if len(client.texts) != 1 || client.texts[0] != "hello" {
		t.Errorf("expected client notified with hello, got %v", client.texts)
	}

	GetTextInputRegistry().HandleAction(view.ViewID(), TextInputActionDone)
	if len(client.actions) != 1 || client.actions[0] != TextInputActionDone {
		t.Errorf("expected done action, got %v", client.actions)
	}
}

func TestFocusBookkeeping(t *testing.T) {
	ResetForTest()
	backend := newRecordingBackend()
	SetHostBackend(backend)
	defer ResetForTest()

	client := &recordingClient{}
	view := GetTextInputRegistry().Create(TextInputViewConfig{}, client)

	view.Focus()
	if !view.IsFocused() {
		t.Error("expected view focused")
	}
	if !HasFocus() || FocusedInput() != view.ViewID() {
		t.Error("expected global focus bookkeeping to track view")
	}

	UnfocusAll()
	if view.IsFocused() {
		t.Error("expected view blurred")
	}
	if HasFocus() {
		t.Error("expected no focused input")
	}
	if len(client.focus) != 2 || client.focus[0] != true || client.focus[1] != false {
		t.Errorf("expected focus events [true false], got %v", client.focus)
	}
}

func TestHeadlessViewKeepsLocalState(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	view := GetTextInputRegistry().Create(TextInputViewConfig{}, nil)
	view.SetValue(TextEditingValue{Text: "local", Selection: TextSelectionCollapsed(5)})

	if view.Text() != "local" {
		t.Errorf("expected local state without backend, got %q", view.Text())
	}
	base, extent := view.Selection()
	if base != 5 || extent != 5 {
		t.Errorf("expected selection 5/5, got %d/%d", base, extent)
	}
}

func TestDisposeUnregistersView(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	view := GetTextInputRegistry().Create(TextInputViewConfig{}, nil)
	GetTextInputRegistry().Dispose(view.ViewID())
	if GetTextInputRegistry().GetView(view.ViewID()) != nil {
		t.Error("expected view removed from registry")
	}
}

func TestDispatchOrRunFallsBack(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	ran := false
	DispatchOrRun(func() { ran = true })
	if !ran {
		t.Error("expected inline run without dispatcher")
	}

	var queue []func()
	RegisterDispatch(func(cb func()) { queue = append(queue, cb) })
	deferred := false
	DispatchOrRun(func() { deferred = true })
	if deferred {
		t.Error("expected deferred execution with dispatcher")
	}
	for _, cb := range queue {
		cb()
	}
	if !deferred {
		t.Error("expected callback to run after drain")
	}
}
