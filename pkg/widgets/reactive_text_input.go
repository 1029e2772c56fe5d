package widgets

import (
	goerrors "errors"

	"github.com/go-drift/fieldkit/pkg/core"
	"github.com/go-drift/fieldkit/pkg/errors"
	"github.com/go-drift/fieldkit/pkg/focus"
	"github.com/go-drift/fieldkit/pkg/history"
	"github.com/go-drift/fieldkit/pkg/platform"
)

// UnfocusBehavior selects what happens to buffered text when a
// [ReactiveTextInput] loses focus.
type UnfocusBehavior int

const (
	// UnfocusBehaviorNothing keeps the buffered text as-is. The field stays
	// unsynced until the next authoritative value update.
	UnfocusBehaviorNothing UnfocusBehavior = iota

	// UnfocusBehaviorResetValue discards the buffered text and restores the
	// widget's Value.
	UnfocusBehaviorResetValue

	// UnfocusBehaviorSaveValue commits the buffered text through
	// OnValueChanged.
	UnfocusBehaviorSaveValue
)

// errObscureMultiline rejects a configuration the host cannot honor.
var errObscureMultiline = goerrors.New("Obscure and Multiline cannot be combined")

// ReactiveTextInput is a text field driven by a single authoritative Value.
//
// The widget's Value is the source of truth. User edits accumulate as
// buffered text in the controller and are reported through OnTextChanged
// without touching Value. The buffer is committed, producing exactly one
// OnValueChanged call, when the user submits or when UnfocusBehavior says so
// on focus loss. While the field is focused, Value updates from above never
// clobber the buffer; while unfocused, they are applied to the buffer
// immediately.
//
// When an UndoController is set, its undo and redo operations resync the
// buffer on the next dispatch tick and commit the restored text with a
// single OnValueChanged call.
type ReactiveTextInput struct {
	core.StatefulBase

	// Value is the authoritative text.
	Value string

	// OnValueChanged is called when buffered text is committed.
	OnValueChanged func(string)

	// OnTextChanged is called on every buffered (draft) edit.
	OnTextChanged func(string)

	// UnfocusBehavior selects the focus-loss policy for buffered text.
	UnfocusBehavior UnfocusBehavior

	// Controller optionally supplies the editing controller. When nil, the
	// state creates and owns one.
	Controller *platform.TextEditingController

	// FocusNode optionally supplies the focus node for tab traversal.
	FocusNode *focus.FocusNode

	// UndoController optionally wires undo/redo resync for this field.
	UndoController *history.UndoHistoryController

	// Placeholder text shown when empty.
	Placeholder string

	// KeyboardType specifies the keyboard to show.
	KeyboardType platform.KeyboardType

	// InputAction specifies the keyboard action button.
	InputAction platform.TextInputAction

	// Capitalization specifies text capitalization behavior.
	Capitalization platform.TextCapitalization

	// Obscure hides the text (for passwords). Cannot be combined with
	// Multiline.
	Obscure bool

	// Autocorrect enables auto-correction.
	Autocorrect bool

	// Multiline enables multiline text input.
	Multiline bool

	// MaxLines limits the number of lines (multiline only).
	MaxLines int

	// ReadOnly makes the field non-editable while still selectable.
	ReadOnly bool

	// Formatters are applied in order to each user edit.
	Formatters []platform.TextInputFormatter

	// OnSubmitted is called with the committed text when the user submits.
	OnSubmitted func(string)

	// OnEditingComplete is called when editing is complete.
	OnEditingComplete func()

	// OnFocusChange is called when focus changes.
	OnFocusChange func(bool)

	// Disabled controls whether the field rejects input.
	Disabled bool
}

func (w ReactiveTextInput) CreateState() core.State {
	return &reactiveTextInputState{}
}

type reactiveTextInputState struct {
	core.StateBase

	controller     *platform.TextEditingController
	ownsController bool

	undoController *history.UndoHistoryController
	attachedUndo   bool
	unsubUndo      func()
	unsubRedo      func()

	// lastValue tracks the latest authoritative value, whether it arrived
	// from the widget or from a commit.
	lastValue        string
	focused          bool
	resyncQueued     bool
	textNotifyQueued bool
}

func (s *reactiveTextInputState) widget() ReactiveTextInput {
	return s.Element().Widget().(ReactiveTextInput)
}

// Focused reports whether the field currently has keyboard focus.
func (s *reactiveTextInputState) Focused() bool {
	return s.focused
}

// Text returns the buffered text.
func (s *reactiveTextInputState) Text() string {
	return s.controller.Text()
}

// IsSynced reports whether the buffered text matches the authoritative value.
func (s *reactiveTextInputState) IsSynced() bool {
	return s.controller.Text() == s.lastValue
}

func (s *reactiveTextInputState) InitState() {
	w := s.widget()

	if w.Obscure && w.Multiline {
		panic(&errors.KitError{
			Op:   "widgets.ReactiveTextInput",
			Kind: errors.KindInit,
			Err:  errObscureMultiline,
		})
	}

	s.adoptController(w.Controller, w.Value)
	// The widget's Value wins at mount, even over a pre-populated controller.
	if s.applyValue(w.Value) {
		s.queueTextNotification()
	}
	s.adoptUndoController(w.UndoController)
}

func (s *reactiveTextInputState) Dispose() {
	s.releaseUndoController()
	s.StateBase.Dispose()
}

func (s *reactiveTextInputState) DidUpdateWidget(oldWidget core.StatefulWidget) {
	old := oldWidget.(ReactiveTextInput)
	w := s.widget()

	if w.Controller != old.Controller {
		s.adoptController(w.Controller, w.Value)
		if s.attachedUndo && s.undoController != nil {
			s.undoController.Attach(s.controller)
		}
		if !s.focused && s.applyValue(w.Value) {
			s.queueTextNotification()
		}
	}

	if w.UndoController != old.UndoController {
		s.releaseUndoController()
		s.adoptUndoController(w.UndoController)
	}

	if w.Value != old.Value {
		s.lastValue = w.Value
		if !s.focused && s.applyValue(w.Value) {
			s.queueTextNotification()
		}
	}
}

func (s *reactiveTextInputState) Build(ctx core.BuildContext) core.Widget {
	w := s.widget()
	return TextInput{
		Controller:        s.controller,
		FocusNode:         w.FocusNode,
		Placeholder:       w.Placeholder,
		KeyboardType:      w.KeyboardType,
		InputAction:       w.InputAction,
		Capitalization:    w.Capitalization,
		Obscure:           w.Obscure,
		Autocorrect:       w.Autocorrect,
		Multiline:         w.Multiline,
		MaxLines:          w.MaxLines,
		ReadOnly:          w.ReadOnly,
		Formatters:        w.Formatters,
		Disabled:          w.Disabled,
		OnChanged:         s.handleTextChanged,
		OnSubmitted:       s.handleSubmitted,
		OnEditingComplete: w.OnEditingComplete,
		OnFocusChange:     s.handleFocusChanged,
	}
}

// adoptController switches to the given controller, or creates an internal
// one seeded with the authoritative value.
func (s *reactiveTextInputState) adoptController(controller *platform.TextEditingController, value string) {
	if controller != nil {
		s.controller = controller
		s.ownsController = false
	} else {
		s.controller = platform.NewTextEditingController(value)
		s.ownsController = true
	}
}

func (s *reactiveTextInputState) adoptUndoController(undo *history.UndoHistoryController) {
	s.undoController = undo
	if undo == nil {
		return
	}
	undo.Attach(s.controller)
	s.attachedUndo = true
	s.unsubUndo = undo.AddUndoListener(s.queueResync)
	s.unsubRedo = undo.AddRedoListener(s.queueResync)
}

// releaseUndoController unsubscribes from the current undo controller.
// Stale subscriptions from a swapped-out controller must never fire.
func (s *reactiveTextInputState) releaseUndoController() {
	if s.unsubUndo != nil {
		s.unsubUndo()
		s.unsubUndo = nil
	}
	if s.unsubRedo != nil {
		s.unsubRedo()
		s.unsubRedo = nil
	}
	if s.attachedUndo && s.undoController != nil {
		s.undoController.Detach()
	}
	s.attachedUndo = false
	s.undoController = nil
}

// applyValue overwrites the buffered text with the authoritative value,
// placing the caret at the end, and reports whether the text changed.
// Applying the same value twice is a no-op.
func (s *reactiveTextInputState) applyValue(value string) bool {
	s.lastValue = value
	if s.controller.Text() == value {
		return false
	}
	s.controller.SetValue(platform.TextEditingValue{
		Text:           value,
		Selection:      platform.TextSelectionCollapsed(len(value)),
		ComposingRange: platform.TextRangeEmpty,
	})
	return true
}

// notifyText reports the current buffered text through OnTextChanged.
func (s *reactiveTextInputState) notifyText() {
	if w := s.widget(); w.OnTextChanged != nil {
		w.OnTextChanged(s.controller.Text())
	}
}

// queueTextNotification defers a text-changed notification to the next
// dispatch tick. An apply that happens during a rebuild must not notify
// observers mid-pass.
func (s *reactiveTextInputState) queueTextNotification() {
	if s.textNotifyQueued {
		return
	}
	s.textNotifyQueued = true
	platform.DispatchOrRun(func() {
		s.textNotifyQueued = false
		if s.IsDisposed() {
			return
		}
		s.notifyText()
	})
}

// commitText promotes the buffered text to the authoritative value.
// OnValueChanged fires only when the text actually differs.
func (s *reactiveTextInputState) commitText() {
	w := s.widget()
	text := s.controller.Text()
	if text == s.lastValue {
		return
	}
	s.lastValue = text
	if w.OnValueChanged != nil {
		w.OnValueChanged(text)
	}
}

// handleTextChanged records a draft edit. Drafts never fire OnValueChanged.
func (s *reactiveTextInputState) handleTextChanged(text string) {
	w := s.widget()
	if w.OnTextChanged != nil {
		w.OnTextChanged(text)
	}
	s.SetState(func() {})
}

func (s *reactiveTextInputState) handleSubmitted(text string) {
	s.commitText()
	w := s.widget()
	if w.OnSubmitted != nil {
		w.OnSubmitted(text)
	}
}

func (s *reactiveTextInputState) handleFocusChanged(focused bool) {
	s.focused = focused
	w := s.widget()

	if !focused {
		switch w.UnfocusBehavior {
		case UnfocusBehaviorNothing:
			// Buffer is kept; the field may stay unsynced.
		case UnfocusBehaviorResetValue:
			// lastValue, not the widget prop: a commit on this blur (submit
			// followed by unfocus) must not be rolled back.
			if s.applyValue(s.lastValue) {
				s.notifyText()
			}
		case UnfocusBehaviorSaveValue:
			s.commitText()
		}
	}

	if w.OnFocusChange != nil {
		w.OnFocusChange(focused)
	}
	s.SetState(func() {})
}

// queueResync schedules a buffer resync for the next dispatch tick. Undo and
// redo queue their controller mutation before notifying listeners, so by the
// time the resync runs the controller already holds the restored text.
func (s *reactiveTextInputState) queueResync() {
	if s.resyncQueued {
		return
	}
	s.resyncQueued = true
	platform.DispatchOrRun(func() {
		s.resyncQueued = false
		if s.IsDisposed() {
			return
		}
		w := s.widget()
		text := s.controller.Text()
		if text != s.lastValue && w.OnTextChanged != nil {
			w.OnTextChanged(text)
		}
		s.commitText()
		s.SetState(func() {})
	})
}
