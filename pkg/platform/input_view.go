package platform

import (
	"sync"
	"sync/atomic"
)

// TextInputViewConfig defines behavior passed to the host input surface.
type TextInputViewConfig struct {
	Multiline      bool
	MaxLines       int
	Obscure        bool
	Autocorrect    bool
	ReadOnly       bool
	KeyboardType   KeyboardType
	InputAction    TextInputAction
	Capitalization TextCapitalization

	// Placeholder text shown while the input is empty.
	Placeholder string
}

// TextInputViewClient receives callbacks from the host input surface.
type TextInputViewClient interface {
	// OnTextChanged is called when text or selection changes.
	OnTextChanged(text string, selectionBase, selectionExtent int)

	// OnAction is called when keyboard action button is pressed.
	OnAction(action TextInputAction)

	// OnFocusChanged is called when focus state changes.
	OnFocusChanged(focused bool)
}

// TextInputView is the framework-side handle for a host input surface.
type TextInputView struct {
	viewID  int64
	config  TextInputViewConfig
	client  TextInputViewClient
	text    string
	selBase int
	selExt  int
	focused bool
	mu      sync.RWMutex
}

// ViewID returns the unique identifier for this view.
func (v *TextInputView) ViewID() int64 {
	return v.viewID
}

// SetClient sets the callback client for this view.
func (v *TextInputView) SetClient(client TextInputViewClient) {
	v.mu.Lock()
	v.client = client
	v.mu.Unlock()
}

// SetText updates the text content from the framework side.
func (v *TextInputView) SetText(text string) {
	v.mu.Lock()
	v.text = text
	v.mu.Unlock()

	if backend := getHostBackend(); backend != nil {
		backend.SetValue(v.viewID, TextEditingValue{
			Text:      text,
			Selection: TextSelection{BaseOffset: v.selBase, ExtentOffset: v.selExt},
		})
	}
}

// SetSelection updates the cursor/selection position.
func (v *TextInputView) SetSelection(base, extent int) {
	v.mu.Lock()
	v.selBase = base
	v.selExt = extent
	text := v.text
	v.mu.Unlock()

	if backend := getHostBackend(); backend != nil {
		backend.SetValue(v.viewID, TextEditingValue{
			Text:      text,
			Selection: TextSelection{BaseOffset: base, ExtentOffset: extent},
		})
	}
}

// SetValue updates both text and selection atomically.
func (v *TextInputView) SetValue(value TextEditingValue) {
	v.mu.Lock()
	v.text = value.Text
	v.selBase = value.Selection.BaseOffset
	v.selExt = value.Selection.ExtentOffset
	v.mu.Unlock()

	if backend := getHostBackend(); backend != nil {
		backend.SetValue(v.viewID, value)
	}
}

// Text returns the current text.
func (v *TextInputView) Text() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.text
}

// Selection returns the current selection.
func (v *TextInputView) Selection() (base, extent int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.selBase, v.selExt
}

// Config returns the current configuration.
func (v *TextInputView) Config() TextInputViewConfig {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.config
}

// Focus requests keyboard focus for the text input.
func (v *TextInputView) Focus() {
	if backend := getHostBackend(); backend != nil {
		backend.Focus(v.viewID)
	}
}

// Blur dismisses the keyboard.
func (v *TextInputView) Blur() {
	if backend := getHostBackend(); backend != nil {
		backend.Blur(v.viewID)
	}
}

// IsFocused returns whether the view has focus.
func (v *TextInputView) IsFocused() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.focused
}

// UpdateConfig updates the view configuration.
func (v *TextInputView) UpdateConfig(config TextInputViewConfig) {
	v.mu.Lock()
	v.config = config
	v.mu.Unlock()

	if backend := getHostBackend(); backend != nil {
		backend.UpdateConfig(v.viewID, config)
	}
}

// handleTextChanged processes text change events from the host.
func (v *TextInputView) handleTextChanged(text string, selBase, selExt int) {
	v.mu.Lock()
	v.text = text
	v.selBase = selBase
	v.selExt = selExt
	client := v.client
	v.mu.Unlock()

	if client != nil {
		client.OnTextChanged(text, selBase, selExt)
	}
}

// handleAction processes action events from the host.
func (v *TextInputView) handleAction(action TextInputAction) {
	v.mu.RLock()
	client := v.client
	v.mu.RUnlock()

	if client != nil {
		client.OnAction(action)
	}
}

// handleFocusChanged processes focus change events from the host.
func (v *TextInputView) handleFocusChanged(focused bool) {
	v.mu.Lock()
	v.focused = focused
	client := v.client
	v.mu.Unlock()

	SetFocusedInput(v.viewID, focused)

	if client != nil {
		client.OnFocusChanged(focused)
	}
}

// TextInputRegistry manages text input view instances and routes host events
// to them.
type TextInputRegistry struct {
	views  map[int64]*TextInputView
	nextID atomic.Int64
	mu     sync.RWMutex
}

var (
	textInputRegistry     *TextInputRegistry
	textInputRegistryOnce sync.Once
)

// GetTextInputRegistry returns the global text input registry.
func GetTextInputRegistry() *TextInputRegistry {
	textInputRegistryOnce.Do(func() {
		textInputRegistry = &TextInputRegistry{
			views: make(map[int64]*TextInputView),
		}
	})
	return textInputRegistry
}

// Create allocates a view ID, registers a new view, and asks the host to
// materialize the input surface. Running headless (no backend) is not an
// error; the view simply keeps its state locally.
func (r *TextInputRegistry) Create(config TextInputViewConfig, client TextInputViewClient) *TextInputView {
	viewID := r.nextID.Add(1)
	view := &TextInputView{
		viewID: viewID,
		config: config,
		client: client,
	}

	r.mu.Lock()
	r.views[viewID] = view
	r.mu.Unlock()

	if backend := getHostBackend(); backend != nil {
		if err := backend.CreateInput(viewID, config); err != nil {
			reportHostError("platform.TextInputRegistry.Create", viewID, err)
		}
	}
	return view
}

// Dispose unregisters a view and tears down the host surface.
func (r *TextInputRegistry) Dispose(viewID int64) {
	r.mu.Lock()
	_, exists := r.views[viewID]
	delete(r.views, viewID)
	r.mu.Unlock()

	if !exists {
		return
	}

	SetFocusedInput(viewID, false)
	if backend := getHostBackend(); backend != nil {
		backend.DisposeInput(viewID)
	}
}

// GetView returns the view with the given ID, or nil.
func (r *TextInputRegistry) GetView(viewID int64) *TextInputView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.views[viewID]
}

// HandleTextChanged routes a host edit event to the owning view.
func (r *TextInputRegistry) HandleTextChanged(viewID int64, text string, selBase, selExt int) {
	if view := r.GetView(viewID); view != nil {
		view.handleTextChanged(text, selBase, selExt)
	}
}

// HandleAction routes a keyboard action event to the owning view.
func (r *TextInputRegistry) HandleAction(viewID int64, action TextInputAction) {
	if view := r.GetView(viewID); view != nil {
		view.handleAction(action)
	}
}

// HandleFocusChanged routes a focus change event to the owning view.
func (r *TextInputRegistry) HandleFocusChanged(viewID int64, focused bool) {
	if view := r.GetView(viewID); view != nil {
		view.handleFocusChanged(focused)
	}
}
