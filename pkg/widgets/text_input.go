package widgets

import (
	"github.com/go-drift/fieldkit/pkg/core"
	"github.com/go-drift/fieldkit/pkg/focus"
	"github.com/go-drift/fieldkit/pkg/platform"
)

// TextInput binds a host text input surface to a [platform.TextEditingController].
//
// TextInput is a leaf widget: the host owns rendering and editing gestures,
// while this widget owns the controller, focus wiring, and input formatting.
type TextInput struct {
	core.StatefulBase

	// Controller manages the text content and selection. When nil, the state
	// creates and owns an internal controller.
	Controller *platform.TextEditingController

	// FocusNode is the focus node for tab traversal. When nil, the state
	// creates and owns an internal node.
	FocusNode *focus.FocusNode

	// Placeholder text shown when empty.
	Placeholder string

	// KeyboardType specifies the keyboard to show.
	KeyboardType platform.KeyboardType

	// InputAction specifies the keyboard action button.
	InputAction platform.TextInputAction

	// Capitalization specifies text capitalization behavior.
	Capitalization platform.TextCapitalization

	// Obscure hides the text (for passwords).
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

	// OnChanged is called when the text changes.
	OnChanged func(string)

	// OnSubmitted is called when the user submits (presses done/return).
	OnSubmitted func(string)

	// OnEditingComplete is called when editing is complete.
	OnEditingComplete func()

	// OnFocusChange is called when focus changes.
	OnFocusChange func(bool)

	// Disabled controls whether the field rejects input.
	Disabled bool
}

func (w TextInput) CreateState() core.State {
	return &textInputState{}
}

type textInputState struct {
	core.StateBase
	view               *platform.TextInputView
	controller         *platform.TextEditingController
	ownsController     bool
	unsubController    func()
	focusNode          *focus.FocusNode
	ownsFocusNode      bool
	focused            bool
	updatingController bool // suppress echo during programmatic updates
}

func (s *textInputState) widget() TextInput {
	return s.Element().Widget().(TextInput)
}

// Controller returns the controller in use, whether widget-supplied or internal.
func (s *textInputState) Controller() *platform.TextEditingController {
	return s.controller
}

// View returns the platform view handle.
func (s *textInputState) View() *platform.TextInputView {
	return s.view
}

// Focused reports whether the field currently has keyboard focus.
func (s *textInputState) Focused() bool {
	return s.focused
}

func (s *textInputState) InitState() {
	w := s.widget()

	s.adoptController(w.Controller)
	s.adoptFocusNode(w.FocusNode)

	s.view = platform.GetTextInputRegistry().Create(s.buildViewConfig(w), s)
	s.pushControllerValue()
}

func (s *textInputState) Dispose() {
	if s.unsubController != nil {
		s.unsubController()
		s.unsubController = nil
	}
	if s.view != nil {
		platform.GetTextInputRegistry().Dispose(s.view.ViewID())
		s.view = nil
	}
	if s.focusNode != nil {
		focus.GetFocusManager().RootScope.Unregister(s.focusNode)
		s.focusNode = nil
	}
	s.StateBase.Dispose()
}

func (s *textInputState) DidUpdateWidget(oldWidget core.StatefulWidget) {
	old := oldWidget.(TextInput)
	w := s.widget()

	if w.Controller != old.Controller {
		s.adoptController(w.Controller)
		s.pushControllerValue()
	}
	if w.FocusNode != old.FocusNode {
		if s.ownsFocusNode || old.FocusNode != nil {
			focus.GetFocusManager().RootScope.Unregister(s.focusNode)
		}
		s.adoptFocusNode(w.FocusNode)
	}

	if s.view != nil {
		s.view.UpdateConfig(s.buildViewConfig(w))
	}
}

func (s *textInputState) Build(ctx core.BuildContext) core.Widget {
	// Leaf widget: the host surface is the visual representation.
	return nil
}

// adoptController switches to the given controller, or to a fresh internal
// one when nil, and wires the change listener.
func (s *textInputState) adoptController(controller *platform.TextEditingController) {
	if s.unsubController != nil {
		s.unsubController()
		s.unsubController = nil
	}

	if controller != nil {
		s.controller = controller
		s.ownsController = false
	} else {
		s.controller = platform.NewTextEditingController("")
		s.ownsController = true
	}

	s.unsubController = s.controller.AddListener(s.onControllerChanged)
}

func (s *textInputState) adoptFocusNode(node *focus.FocusNode) {
	if node != nil {
		s.focusNode = node
		s.ownsFocusNode = false
	} else {
		s.focusNode = focus.NewFocusNode("TextInput")
		s.ownsFocusNode = true
	}
	s.focusNode.OnFocusChange = func(hasFocus bool) {
		if hasFocus && !s.focused {
			s.Focus()
		} else if !hasFocus && s.focused {
			s.Unfocus()
		}
	}
	focus.GetFocusManager().RootScope.Register(s.focusNode)
}

// onControllerChanged pushes programmatic controller mutations to the host.
func (s *textInputState) onControllerChanged() {
	if s.updatingController || s.view == nil {
		return
	}
	value := s.controller.Value()
	if s.view.Text() == value.Text {
		base, extent := s.view.Selection()
		if base == value.Selection.BaseOffset && extent == value.Selection.ExtentOffset {
			return
		}
	}
	s.view.SetValue(value)
}

// pushControllerValue syncs the controller state to the host without echo.
func (s *textInputState) pushControllerValue() {
	if s.view == nil {
		return
	}
	s.updatingController = true
	s.view.SetValue(s.controller.Value())
	s.updatingController = false
}

func (s *textInputState) buildViewConfig(w TextInput) platform.TextInputViewConfig {
	return platform.TextInputViewConfig{
		Multiline:      w.Multiline,
		MaxLines:       w.MaxLines,
		Obscure:        w.Obscure,
		Autocorrect:    w.Autocorrect,
		ReadOnly:       w.ReadOnly || w.Disabled,
		KeyboardType:   w.KeyboardType,
		InputAction:    w.InputAction,
		Capitalization: w.Capitalization,
		Placeholder:    w.Placeholder,
	}
}

// Focus requests keyboard focus for this field.
func (s *textInputState) Focus() {
	if s.focused {
		return
	}
	w := s.widget()
	if w.Disabled {
		return
	}

	if s.focusNode != nil {
		s.focusNode.RequestFocus()
	}
	if s.view != nil {
		s.pushControllerValue()
		s.view.Focus()
	}
}

// Unfocus dismisses keyboard focus for this field.
func (s *textInputState) Unfocus() {
	if !s.focused {
		return
	}
	if s.view != nil {
		s.view.Blur()
	}
	if s.focusNode != nil {
		s.focusNode.Unfocus()
	}
}

// OnTextChanged implements platform.TextInputViewClient.
func (s *textInputState) OnTextChanged(text string, selectionBase, selectionExtent int) {
	if s.updatingController {
		return
	}
	w := s.widget()
	if w.Disabled || w.ReadOnly {
		// Reject the edit by restoring the controller state.
		s.pushControllerValue()
		return
	}

	oldValue := s.controller.Value()
	proposed := platform.TextEditingValue{
		Text: text,
		Selection: platform.TextSelection{
			BaseOffset:   selectionBase,
			ExtentOffset: selectionExtent,
		},
		ComposingRange: platform.TextRangeEmpty,
	}

	value := platform.ApplyFormatters(w.Formatters, oldValue, proposed)

	s.updatingController = true
	s.controller.SetValue(value)
	if value != proposed && s.view != nil {
		// A formatter rewrote the edit; reflect it back to the host.
		s.view.SetValue(value)
	}
	s.updatingController = false

	if w.OnChanged != nil && value.Text != oldValue.Text {
		w.OnChanged(value.Text)
	}

	s.SetState(func() {})
}

// OnAction implements platform.TextInputViewClient.
func (s *textInputState) OnAction(action platform.TextInputAction) {
	w := s.widget()

	switch action {
	case platform.TextInputActionDone, platform.TextInputActionGo,
		platform.TextInputActionSearch, platform.TextInputActionSend:
		if w.OnSubmitted != nil {
			w.OnSubmitted(s.controller.Text())
		}
		if w.OnEditingComplete != nil {
			w.OnEditingComplete()
		}
		s.Unfocus()
	case platform.TextInputActionNext:
		s.Unfocus()
		focus.GetFocusManager().MoveFocus(1)
	case platform.TextInputActionPrevious:
		s.Unfocus()
		focus.GetFocusManager().MoveFocus(-1)
	}
}

// OnFocusChanged implements platform.TextInputViewClient.
func (s *textInputState) OnFocusChanged(focused bool) {
	if s.focused == focused {
		return
	}
	w := s.widget()

	s.SetState(func() {
		s.focused = focused
	})

	if focused {
		if s.focusNode != nil && !s.focusNode.HasPrimaryFocus() {
			s.focusNode.RequestFocus()
		}
	} else {
		if s.focusNode != nil && s.focusNode.HasPrimaryFocus() {
			s.focusNode.Unfocus()
		}
	}

	if w.OnFocusChange != nil {
		w.OnFocusChange(focused)
	}
}
