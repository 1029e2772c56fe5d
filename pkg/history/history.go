// Package history provides undo/redo tracking for text editing controllers.
package history

import (
	"sync"

	"github.com/go-drift/fieldkit/pkg/platform"
)

// DefaultLimit is the maximum number of undo snapshots kept when no
// explicit limit is given.
const DefaultLimit = 100

// UndoHistoryController records snapshots of an attached
// [platform.TextEditingController] and replays them on Undo/Redo.
//
// Undo and Redo notify their listeners synchronously, while the controller
// mutation itself is scheduled on the UI thread. Listeners that defer work
// in response therefore observe the post-mutation controller state.
type UndoHistoryController struct {
	mu         sync.Mutex
	undoStack  []platform.TextEditingValue
	redoStack  []platform.TextEditingValue
	current    platform.TextEditingValue
	hasCurrent bool
	limit      int
	applying   bool

	controller *platform.TextEditingController
	detach     func()

	undoListeners  map[int]func()
	redoListeners  map[int]func()
	nextListenerID int
}

// NewUndoHistoryController creates a controller keeping at most limit
// undo snapshots. A limit of zero or less uses [DefaultLimit].
func NewUndoHistoryController(limit int) *UndoHistoryController {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &UndoHistoryController{
		limit:         limit,
		undoListeners: make(map[int]func()),
		redoListeners: make(map[int]func()),
	}
}

// Attach subscribes to the given text controller and starts recording its
// edits. Any previously attached controller is detached first. Attaching
// resets the undo and redo stacks.
func (h *UndoHistoryController) Attach(controller *platform.TextEditingController) {
	h.Detach()

	h.mu.Lock()
	h.controller = controller
	h.undoStack = nil
	h.redoStack = nil
	h.current = controller.Value()
	h.hasCurrent = true
	h.mu.Unlock()

	h.detach = controller.AddListener(func() {
		h.record(controller.Value())
	})
}

// Detach stops recording and disconnects from the controller.
func (h *UndoHistoryController) Detach() {
	if h.detach != nil {
		h.detach()
		h.detach = nil
	}
	h.mu.Lock()
	h.controller = nil
	h.hasCurrent = false
	h.mu.Unlock()
}

// record captures a controller change as an undo snapshot. Selection-only
// changes are not recorded.
func (h *UndoHistoryController) record(value platform.TextEditingValue) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.applying {
		return
	}
	if h.hasCurrent && h.current.Text == value.Text {
		h.current = value
		return
	}

	if h.hasCurrent {
		h.undoStack = append(h.undoStack, h.current)
		if len(h.undoStack) > h.limit {
			h.undoStack = h.undoStack[len(h.undoStack)-h.limit:]
		}
	}
	h.current = value
	h.hasCurrent = true
	h.redoStack = nil
}

// CanUndo reports whether an undo snapshot is available.
func (h *UndoHistoryController) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo reports whether a redo snapshot is available.
func (h *UndoHistoryController) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// Undo restores the previous snapshot and notifies undo listeners.
// It is a no-op when there is nothing to undo.
func (h *UndoHistoryController) Undo() {
	h.mu.Lock()
	if len(h.undoStack) == 0 || h.controller == nil {
		h.mu.Unlock()
		return
	}
	target := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, h.current)
	h.current = target
	controller := h.controller
	h.mu.Unlock()

	h.applyValue(controller, target)
	h.notify(h.undoListeners)
}

// Redo restores the next snapshot and notifies redo listeners.
// It is a no-op when there is nothing to redo.
func (h *UndoHistoryController) Redo() {
	h.mu.Lock()
	if len(h.redoStack) == 0 || h.controller == nil {
		h.mu.Unlock()
		return
	}
	target := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, h.current)
	h.current = target
	controller := h.controller
	h.mu.Unlock()

	h.applyValue(controller, target)
	h.notify(h.redoListeners)
}

// applyValue schedules the controller mutation on the UI thread. The
// mutation is queued before listeners run, so listener work deferred to the
// UI thread observes the restored value.
func (h *UndoHistoryController) applyValue(controller *platform.TextEditingController, value platform.TextEditingValue) {
	platform.DispatchOrRun(func() {
		h.mu.Lock()
		h.applying = true
		h.mu.Unlock()

		controller.SetValue(value)

		h.mu.Lock()
		h.applying = false
		h.mu.Unlock()
	})
}

// Clear drops all snapshots without touching the controller.
func (h *UndoHistoryController) Clear() {
	h.mu.Lock()
	h.undoStack = nil
	h.redoStack = nil
	if h.controller != nil {
		h.current = h.controller.Value()
		h.hasCurrent = true
	}
	h.mu.Unlock()
}

// AddUndoListener registers a callback invoked after each Undo.
// Returns an unsubscribe function.
func (h *UndoHistoryController) AddUndoListener(fn func()) func() {
	return h.addListener(h.undoListeners, fn)
}

// AddRedoListener registers a callback invoked after each Redo.
// Returns an unsubscribe function.
func (h *UndoHistoryController) AddRedoListener(fn func()) func() {
	return h.addListener(h.redoListeners, fn)
}

func (h *UndoHistoryController) addListener(registry map[int]func(), fn func()) func() {
	h.mu.Lock()
	id := h.nextListenerID
	h.nextListenerID++
	registry[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(registry, id)
		h.mu.Unlock()
	}
}

func (h *UndoHistoryController) notify(registry map[int]func()) {
	h.mu.Lock()
	listeners := make([]func(), 0, len(registry))
	for _, fn := range registry {
		listeners = append(listeners, fn)
	}
	h.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
