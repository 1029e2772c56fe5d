package widgets

import "github.com/go-drift/fieldkit/pkg/core"

// FormField is a generic form field widget for building custom form inputs
// that integrate with [Form] for validation, save, and reset operations.
//
// The Builder function receives the [FormFieldState] and should return a
// widget that displays the current value and calls DidChange when the value
// changes.
type FormField[T comparable] struct {
	core.StatefulBase

	// InitialValue is the field's starting value.
	InitialValue T
	// Builder renders the field using its state.
	Builder func(*FormFieldState[T]) core.Widget
	// OnSaved is called when the form is saved.
	OnSaved func(T)
	// Validator returns an error message or empty string.
	Validator func(T) string
	// OnChanged is called when the field value changes.
	OnChanged func(T)
	// Disabled controls whether the field participates in validation.
	Disabled bool
	// Autovalidate enables validation when the value changes.
	Autovalidate bool
}

func (f FormField[T]) CreateState() core.State {
	return &FormFieldState[T]{}
}

// FormFieldState stores the mutable state for a [FormField] and provides
// methods for querying and updating the field value.
type FormFieldState[T comparable] struct {
	core.StateBase
	formFieldStateBase
	value T
}

func (s *FormFieldState[T]) widget() FormField[T] {
	return s.Element().Widget().(FormField[T])
}

func (s *FormFieldState[T]) InitState() {
	s.value = s.widget().InitialValue
}

func (s *FormFieldState[T]) Build(ctx core.BuildContext) core.Widget {
	s.formFieldStateBase.registerWithForm(FormOf(ctx), s)
	w := s.widget()
	if w.Builder == nil {
		return nil
	}
	return w.Builder(s)
}

func (s *FormFieldState[T]) Dispose() {
	s.formFieldStateBase.unregisterFromForm(s)
	s.StateBase.Dispose()
}

// DidUpdateWidget adopts a changed initial value if the user has not
// interacted with the field yet.
func (s *FormFieldState[T]) DidUpdateWidget(oldWidget core.StatefulWidget) {
	oldField, ok := oldWidget.(FormField[T])
	if !ok {
		return
	}
	newField := s.widget()
	if s.hasInteracted {
		return
	}
	if oldField.InitialValue != newField.InitialValue {
		s.value = newField.InitialValue
		if newField.Autovalidate {
			s.Validate()
		}
	}
}

// Value returns the current value.
func (s *FormFieldState[T]) Value() T {
	return s.value
}

// ErrorText returns the current error message.
func (s *FormFieldState[T]) ErrorText() string {
	return s.errorText
}

// HasError reports whether the field has an error.
func (s *FormFieldState[T]) HasError() bool {
	return s.errorText != ""
}

// DidChange updates the value and triggers validation/notifications.
func (s *FormFieldState[T]) DidChange(value T) {
	s.value = value
	w := s.widget()
	s.formFieldStateBase.didChange(
		w.Autovalidate,
		func() {
			if w.OnChanged != nil {
				w.OnChanged(value)
			}
		},
		s.Validate,
		func() { s.SetState(func() {}) },
	)
}

// Validate runs the field validator.
func (s *FormFieldState[T]) Validate() bool {
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
func (s *FormFieldState[T]) Save() {
	w := s.widget()
	if w.Disabled {
		return
	}
	if w.OnSaved != nil {
		w.OnSaved(s.value)
	}
}

// Reset returns the field to its initial value.
func (s *FormFieldState[T]) Reset() {
	w := s.widget()
	s.value = w.InitialValue
	s.formFieldStateBase.resetState()
	if w.OnChanged != nil {
		w.OnChanged(s.value)
	}
	s.SetState(func() {})
}
