package platform

import (
	goerrors "errors"
	"strconv"
	"sync"

	"github.com/go-drift/fieldkit/pkg/errors"
)

// ErrHostUnavailable is returned when no host backend has been registered.
var ErrHostUnavailable = goerrors.New("host backend unavailable")

// HostBackend is implemented by the embedder to drive the native text input
// surface. Calls flow one way: the framework pushes state to the host, and
// the host feeds user edits back through [TextInputRegistry.HandleTextChanged]
// and friends.
type HostBackend interface {
	// CreateInput tells the host to materialize an input surface for viewID.
	CreateInput(viewID int64, config TextInputViewConfig) error

	// SetValue pushes text and selection to the host surface.
	SetValue(viewID int64, value TextEditingValue)

	// UpdateConfig pushes updated configuration to the host surface.
	UpdateConfig(viewID int64, config TextInputViewConfig)

	// Focus requests keyboard focus for the input surface.
	Focus(viewID int64)

	// Blur dismisses keyboard focus for the input surface.
	Blur(viewID int64)

	// DisposeInput tears down the host surface.
	DisposeInput(viewID int64)
}

var (
	hostMu      sync.RWMutex
	hostBackend HostBackend
)

// SetHostBackend installs the host backend. Called by the embedder during
// initialization. Passing nil detaches the backend, after which views run
// headless and push calls become no-ops.
func SetHostBackend(backend HostBackend) {
	hostMu.Lock()
	hostBackend = backend
	hostMu.Unlock()
}

// getHostBackend returns the installed backend, or nil when running headless.
func getHostBackend() HostBackend {
	hostMu.RLock()
	defer hostMu.RUnlock()
	return hostBackend
}

var (
	focusedViewID   int64
	hasFocusedInput bool
	focusMu         sync.Mutex
)

// SetFocusedInput marks a text input view as focused.
func SetFocusedInput(viewID int64, focused bool) {
	focusMu.Lock()
	if focused {
		focusedViewID = viewID
		hasFocusedInput = true
	} else if focusedViewID == viewID {
		focusedViewID = 0
		hasFocusedInput = false
	}
	focusMu.Unlock()
}

// HasFocus returns true if there is currently a focused text input.
func HasFocus() bool {
	focusMu.Lock()
	defer focusMu.Unlock()
	return hasFocusedInput
}

// FocusedInput returns the view ID of the focused text input, or 0 if none.
func FocusedInput() int64 {
	focusMu.Lock()
	defer focusMu.Unlock()
	return focusedViewID
}

// UnfocusAll dismisses the keyboard and clears focus for all text inputs.
func UnfocusAll() {
	focusMu.Lock()
	viewID := focusedViewID
	focusedViewID = 0
	hasFocusedInput = false
	focusMu.Unlock()

	if viewID != 0 {
		if view := GetTextInputRegistry().GetView(viewID); view != nil {
			view.Blur()
		}
	}
}

// reportHostError reports a host-level failure through the error pipeline.
func reportHostError(op string, viewID int64, err error) {
	errors.Report(&errors.KitError{
		Op:   op,
		Kind: errors.KindHost,
		View: "textinput/" + strconv.FormatInt(viewID, 10),
		Err:  err,
	})
}

// ResetForTest resets all global platform state for test isolation.
// It clears the host backend, the dispatch function, the input view registry
// and the focused-input bookkeeping. This should only be called from tests.
func ResetForTest() {
	SetHostBackend(nil)

	dispatchMu.Lock()
	dispatchFunc = nil
	dispatchMu.Unlock()

	focusMu.Lock()
	focusedViewID = 0
	hasFocusedInput = false
	focusMu.Unlock()

	registry := GetTextInputRegistry()
	registry.mu.Lock()
	registry.views = make(map[int64]*TextInputView)
	registry.mu.Unlock()
	registry.nextID.Store(0)
}
