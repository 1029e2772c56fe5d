package widgets

import (
	"github.com/go-drift/fieldkit/pkg/core"
	"github.com/go-drift/fieldkit/pkg/history"
	"github.com/go-drift/fieldkit/pkg/platform"
)

// ReactiveTextFormField is a [ReactiveTextInput] that participates in an
// enclosing [Form]: it validates through the form, commits its value through
// OnValueChanged, and can round-trip its content through a restoration
// bucket when RestorationID is set.
type ReactiveTextFormField struct {
	core.StatefulBase

	// Value is the authoritative text.
	Value string

	// OnValueChanged is called when buffered text is committed.
	OnValueChanged func(string)

	// Validator returns an error message or empty string.
	Validator func(string) string

	// OnSaved is called with the current value when the form is saved.
	OnSaved func(string)

	// RestorationID keys this field's content in a restoration bucket.
	// Empty means the field is not restorable.
	RestorationID string

	// Autovalidate enables validation when the value changes.
	Autovalidate bool

	// Disabled controls whether the field rejects input and skips validation.
	Disabled bool

	// UnfocusBehavior selects the focus-loss policy for buffered text.
	UnfocusBehavior UnfocusBehavior

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

	// Obscure hides the text (for passwords).
	Obscure bool

	// Autocorrect enables auto-correction.
	Autocorrect bool

	// Multiline enables multiline text input.
	Multiline bool

	// MaxLines limits the number of lines (multiline only).
	MaxLines int

	// Formatters are applied in order to each user edit.
	Formatters []platform.TextInputFormatter

	// OnSubmitted is called with the committed text when the user submits.
	OnSubmitted func(string)

	// OnEditingComplete is called when editing is complete.
	OnEditingComplete func()

	// OnFocusChange is called when focus changes.
	OnFocusChange func(bool)
}

func (w ReactiveTextFormField) CreateState() core.State {
	return &reactiveTextFormFieldState{}
}

type reactiveTextFormFieldState struct {
	core.StateBase
	formFieldStateBase
	value string
}

func (s *reactiveTextFormFieldState) widget() ReactiveTextFormField {
	return s.Element().Widget().(ReactiveTextFormField)
}

func (s *reactiveTextFormFieldState) InitState() {
	s.value = s.widget().Value
}

func (s *reactiveTextFormFieldState) Dispose() {
	s.formFieldStateBase.unregisterFromForm(s)
	s.StateBase.Dispose()
}

func (s *reactiveTextFormFieldState) DidUpdateWidget(oldWidget core.StatefulWidget) {
	old, ok := oldWidget.(ReactiveTextFormField)
	if !ok {
		return
	}
	w := s.widget()
	if s.hasInteracted {
		return
	}
	if old.Value != w.Value {
		s.value = w.Value
		if w.Autovalidate {
			s.Validate()
		}
	}
}

func (s *reactiveTextFormFieldState) Build(ctx core.BuildContext) core.Widget {
	s.formFieldStateBase.registerWithForm(FormOf(ctx), s)
	w := s.widget()
	return ReactiveTextInput{
		Value:             s.value,
		OnValueChanged:    s.didChangeValue,
		OnTextChanged:     s.didChangeText,
		UnfocusBehavior:   w.UnfocusBehavior,
		UndoController:    w.UndoController,
		Placeholder:       w.Placeholder,
		KeyboardType:      w.KeyboardType,
		InputAction:       w.InputAction,
		Capitalization:    w.Capitalization,
		Obscure:           w.Obscure,
		Autocorrect:       w.Autocorrect,
		Multiline:         w.Multiline,
		MaxLines:          w.MaxLines,
		Formatters:        w.Formatters,
		Disabled:          w.Disabled,
		OnSubmitted:       w.OnSubmitted,
		OnEditingComplete: w.OnEditingComplete,
		OnFocusChange:     w.OnFocusChange,
	}
}

// Value returns the field's current committed value.
func (s *reactiveTextFormFieldState) Value() string {
	return s.value
}

// ErrorText returns the current validation error message.
func (s *reactiveTextFormFieldState) ErrorText() string {
	return s.errorText
}

// HasError reports whether the field has a validation error.
func (s *reactiveTextFormFieldState) HasError() bool {
	return s.errorText != ""
}

// didChangeValue accepts a committed value from the inner input.
func (s *reactiveTextFormFieldState) didChangeValue(text string) {
	s.value = text
	w := s.widget()
	s.formFieldStateBase.didChange(
		w.Autovalidate,
		func() {
			if w.OnValueChanged != nil {
				w.OnValueChanged(text)
			}
		},
		s.Validate,
		func() { s.SetState(func() {}) },
	)
}

// didChangeText marks draft interaction so later widget updates do not
// silently replace what the user typed. Programmatic applies report the
// committed value itself and do not count.
func (s *reactiveTextFormFieldState) didChangeText(text string) {
	if text != s.value {
		s.hasInteracted = true
	}
}

// Validate runs the field validator against the committed value.
func (s *reactiveTextFormFieldState) Validate() bool {
	w := s.widget()
	var validator func() string
	if w.Validator != nil {
		validator = func() string {
			return w.Validator(s.value)
		}
	}
	valid := s.formFieldStateBase.validate(w.Disabled, validator)
	s.SetState(func() {})
	return valid
}

// Save triggers the OnSaved callback.
func (s *reactiveTextFormFieldState) Save() {
	w := s.widget()
	if w.Disabled {
		return
	}
	if w.OnSaved != nil {
		w.OnSaved(s.value)
	}
}

// Reset restores the widget's Value and clears errors.
func (s *reactiveTextFormFieldState) Reset() {
	w := s.widget()
	s.value = w.Value
	s.formFieldStateBase.resetState()
	if w.OnValueChanged != nil {
		w.OnValueChanged(s.value)
	}
	s.SetState(func() {})
}

// restorationID implements restorableField.
func (s *reactiveTextFormFieldState) restorationID() string {
	return s.widget().RestorationID
}

// restorableText implements restorableField.
func (s *reactiveTextFormFieldState) restorableText() string {
	return s.value
}

// restoreText implements restorableField. Restored content counts as user
// interaction so it survives later widget updates.
func (s *reactiveTextFormFieldState) restoreText(text string) {
	s.value = text
	s.hasInteracted = true
	s.SetState(func() {})
}
