package widgets

import (
	"reflect"

	"github.com/go-drift/fieldkit/pkg/core"
	"github.com/go-drift/fieldkit/pkg/restoration"
)

// Form is a container widget that groups form fields and provides coordinated
// validation, save, and reset operations.
//
// Form works with field widgets that register with the nearest ancestor Form
// when built, such as [ReactiveTextFormField] and [FormField].
//
// Use [FormOf] to obtain the [FormState] from a build context, then call its
// methods to interact with the form:
//   - Validate() validates all registered fields and returns true if all pass
//   - Save() calls OnSaved on all registered fields
//   - Reset() resets all fields to their initial values
//
// Autovalidate behavior:
//   - When Autovalidate is true, individual fields validate themselves when
//     their value changes (after user interaction).
//   - This does NOT validate untouched fields, avoiding premature error display.
//   - Call Validate() explicitly to validate all fields (e.g., on submission).
type Form struct {
	core.StatefulBase

	// Child is the form content.
	Child core.Widget
	// Autovalidate runs validators when fields change.
	Autovalidate bool
	// OnChanged is called when any field changes.
	OnChanged func()
}

func (f Form) CreateState() core.State {
	return &FormState{}
}

// FormState manages the state of a [Form] widget and provides methods to
// interact with all registered form fields.
//
// FormState tracks a generation counter that increments on validation, reset,
// and field changes, triggering rebuilds of dependent widgets.
type FormState struct {
	core.StateBase
	fields        map[formFieldState]struct{}
	generation    int
	autovalidate  bool
	onChanged     func()
	isInitialized bool
}

func (s *FormState) InitState() {
	if s.fields == nil {
		s.fields = make(map[formFieldState]struct{})
	}
}

func (s *FormState) Build(ctx core.BuildContext) core.Widget {
	w := s.Element().Widget().(Form)
	s.autovalidate = w.Autovalidate
	s.onChanged = w.OnChanged
	s.isInitialized = true
	return formScope{state: s, generation: s.generation, child: w.Child}
}

func (s *FormState) Dispose() {
	s.fields = nil
	s.StateBase.Dispose()
}

// RegisterField registers a field with this form.
func (s *FormState) RegisterField(field formFieldState) {
	if s.fields == nil {
		s.fields = make(map[formFieldState]struct{})
	}
	s.fields[field] = struct{}{}
}

// UnregisterField unregisters a field from this form.
func (s *FormState) UnregisterField(field formFieldState) {
	if s.fields == nil {
		return
	}
	delete(s.fields, field)
}

// Validate runs validators on all fields.
func (s *FormState) Validate() bool {
	valid := true
	for field := range s.fields {
		if !field.Validate() {
			valid = false
		}
	}
	s.bumpGeneration()
	return valid
}

// Save calls OnSaved for all fields.
func (s *FormState) Save() {
	for field := range s.fields {
		field.Save()
	}
}

// Reset resets all fields to their initial values.
func (s *FormState) Reset() {
	for field := range s.fields {
		field.Reset()
	}
	s.bumpGeneration()
}

// SaveState writes the text of every restorable field into bucket, keyed by
// the field's restoration ID. Fields without an ID are skipped.
func (s *FormState) SaveState(bucket *restoration.Bucket) {
	if bucket == nil {
		return
	}
	for field := range s.fields {
		r, ok := field.(restorableField)
		if !ok {
			continue
		}
		id := r.restorationID()
		if id == "" {
			continue
		}
		bucket.Put(id, r.restorableText())
	}
}

// RestoreState applies previously saved text from bucket to every restorable
// field whose restoration ID is present.
func (s *FormState) RestoreState(bucket *restoration.Bucket) {
	if bucket == nil {
		return
	}
	for field := range s.fields {
		r, ok := field.(restorableField)
		if !ok {
			continue
		}
		id := r.restorationID()
		if id == "" {
			continue
		}
		if text, err := bucket.GetString(id); err == nil {
			r.restoreText(text)
		}
	}
	s.bumpGeneration()
}

// NotifyChanged informs listeners that a field changed.
// When autovalidate is enabled, the calling field is expected to validate
// itself rather than having the form validate all fields (which would show
// errors on untouched fields).
func (s *FormState) NotifyChanged() {
	if s.onChanged != nil {
		s.onChanged()
	}
	s.bumpGeneration()
}

func (s *FormState) bumpGeneration() {
	if !s.isInitialized {
		return
	}
	s.SetState(func() {
		s.generation++
	})
}

// FormOf returns the [FormState] of the nearest ancestor [Form] widget,
// or nil if there is no Form ancestor.
func FormOf(ctx core.BuildContext) *FormState {
	inherited := ctx.DependOnInherited(formScopeType, nil)
	if inherited == nil {
		return nil
	}
	if scope, ok := inherited.(formScope); ok {
		return scope.state
	}
	return nil
}

type formFieldState interface {
	Validate() bool
	Save()
	Reset()
}

// restorableField is implemented by fields that can round-trip their content
// through a restoration bucket.
type restorableField interface {
	restorationID() string
	restorableText() string
	restoreText(text string)
}

type formFieldStateBase struct {
	errorText      string
	hasInteracted  bool
	registeredForm *FormState
}

func (s *formFieldStateBase) registerWithForm(form *FormState, owner formFieldState) {
	if form == s.registeredForm {
		return
	}
	if s.registeredForm != nil {
		s.registeredForm.UnregisterField(owner)
	}
	s.registeredForm = form
	if form != nil {
		form.RegisterField(owner)
	}
}

func (s *formFieldStateBase) unregisterFromForm(owner formFieldState) {
	if s.registeredForm != nil {
		s.registeredForm.UnregisterField(owner)
	}
}

// didChange records user interaction, notifies listeners, and validates the
// field when autovalidate is enabled. rebuild schedules the owning element.
func (s *formFieldStateBase) didChange(autovalidate bool, onChanged func(), validate func() bool, rebuild func()) {
	s.hasInteracted = true
	if onChanged != nil {
		onChanged()
	}
	if s.registeredForm != nil {
		s.registeredForm.NotifyChanged()
	}

	if (s.registeredForm != nil && s.registeredForm.autovalidate) || autovalidate {
		validate()
		return
	}

	rebuild()
}

func (s *formFieldStateBase) validate(disabled bool, validator func() string) bool {
	valid := true
	if disabled || validator == nil {
		s.errorText = ""
	} else if message := validator(); message != "" {
		s.errorText = message
		valid = false
	} else {
		s.errorText = ""
	}
	return valid
}

func (s *formFieldStateBase) resetState() {
	s.errorText = ""
	s.hasInteracted = false
}

type formScope struct {
	core.InheritedBase
	state      *FormState
	generation int
	child      core.Widget
}

func (f formScope) ChildWidget() core.Widget { return f.child }

func (f formScope) UpdateShouldNotify(oldWidget core.InheritedWidget) bool {
	if old, ok := oldWidget.(formScope); ok {
		return f.generation != old.generation
	}
	return true
}

var formScopeType = reflect.TypeOf((*formScope)(nil)).Elem()
