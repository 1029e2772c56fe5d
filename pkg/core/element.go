package core

import (
	"reflect"
	"time"

	"github.com/go-drift/fieldkit/pkg/errors"
)

type elementBase struct {
	widget     Widget
	parent     Element
	depth      int
	slot       any
	buildOwner *BuildOwner
	dirty      bool
	self       Element
	mounted    bool
}

func (e *elementBase) Widget() Widget {
	return e.widget
}

func (e *elementBase) Depth() int {
	return e.depth
}

func (e *elementBase) MarkNeedsBuild() {
	if e.dirty {
		return
	}
	e.dirty = true
	if e.buildOwner != nil && e.self != nil {
		e.buildOwner.ScheduleBuild(e.self)
	}
}

func (e *elementBase) parentElement() Element {
	return e.parent
}

func (e *elementBase) setSelf(self Element) {
	e.self = self
}

func (e *elementBase) setWidget(widget Widget) {
	e.widget = widget
}

func (e *elementBase) setBuildOwner(owner *BuildOwner) {
	e.buildOwner = owner
}

func (e *elementBase) isMounted() bool {
	return e.mounted
}

// Owner returns the build owner this element is attached to.
func (e *elementBase) Owner() *BuildOwner {
	return e.buildOwner
}

// safeBuild executes a build function with panic recovery.
// If the build panics, it reports the error and returns nil so the
// subtree below the failed widget is pruned instead of crashing the host.
func (e *elementBase) safeBuild(buildFn func() Widget) Widget {
	var built Widget
	var buildErr *errors.BuildError

	func() {
		defer func() {
			if r := recover(); r != nil {
				buildErr = &errors.BuildError{
					Widget:     reflect.TypeOf(e.widget).String(),
					Element:    reflect.TypeOf(e.self).String(),
					Recovered:  r,
					StackTrace: errors.CaptureStack(),
					Timestamp:  time.Now(),
				}
			}
		}()
		built = buildFn()
	}()

	if buildErr != nil {
		errors.ReportBuildError(buildErr)
		return nil
	}
	return built
}

func findAncestorImpl(e *elementBase, predicate func(Element) bool) Element {
	current := e.parent
	for current != nil {
		if predicate(current) {
			return current
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

// StatelessElement hosts a StatelessWidget.
type StatelessElement struct {
	elementBase
	child Element
}

// NewStatelessElement creates an empty stateless element. The widget and
// build owner are set by the framework during inflation.
func NewStatelessElement() *StatelessElement {
	element := &StatelessElement{}
	element.setSelf(element)
	return element
}

func (e *StatelessElement) Mount(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.mounted = true
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *StatelessElement) Update(newWidget Widget) {
	e.widget = newWidget
	e.MarkNeedsBuild()
}

func (e *StatelessElement) Unmount() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
}

func (e *StatelessElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	widget := e.widget.(StatelessWidget)
	built := e.safeBuild(func() Widget {
		return widget.Build(e)
	})
	e.child = updateChild(e.child, built, e, e.buildOwner)
}

func (e *StatelessElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

func (e *StatelessElement) FindAncestor(predicate func(Element) bool) Element {
	return findAncestorImpl(&e.elementBase, predicate)
}

func (e *StatelessElement) DependOnInherited(inheritedType reflect.Type, aspect any) any {
	return dependOnInheritedImpl(e, inheritedType, aspect)
}

// StatefulElement hosts a StatefulWidget and its State.
type StatefulElement struct {
	elementBase
	child Element
	state State
}

// NewStatefulElement creates an empty stateful element. The widget and
// build owner are set by the framework during inflation.
func NewStatefulElement() *StatefulElement {
	element := &StatefulElement{}
	element.setSelf(element)
	return element
}

// State returns the state object hosted by this element.
func (e *StatefulElement) State() State {
	return e.state
}

func (e *StatefulElement) Mount(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.mounted = true
	widget := e.widget.(StatefulWidget)
	e.state = widget.CreateState()
	if setter, ok := e.state.(interface{ SetElement(*StatefulElement) }); ok {
		setter.SetElement(e)
	} else if setter, ok := e.state.(interface{ setElement(*StatefulElement) }); ok {
		setter.setElement(e)
	}
	e.state.InitState()
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *StatefulElement) Update(newWidget Widget) {
	oldWidget := e.widget.(StatefulWidget)
	e.widget = newWidget
	e.state.DidUpdateWidget(oldWidget)
	e.MarkNeedsBuild()
}

func (e *StatefulElement) Unmount() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	if e.state != nil {
		e.state.Dispose()
	}
}

func (e *StatefulElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	built := e.safeBuild(func() Widget {
		return e.state.Build(e)
	})
	e.child = updateChild(e.child, built, e, e.buildOwner)
}

func (e *StatefulElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

func (e *StatefulElement) FindAncestor(predicate func(Element) bool) Element {
	return findAncestorImpl(&e.elementBase, predicate)
}

func (e *StatefulElement) DependOnInherited(inheritedType reflect.Type, aspect any) any {
	return dependOnInheritedImpl(e, inheritedType, aspect)
}

// MountRoot inflates widget and mounts it as the root of a tree owned by
// owner. It returns the root element.
func MountRoot(widget Widget, owner *BuildOwner) Element {
	element := inflateWidget(widget, owner)
	if element == nil {
		return nil
	}
	element.Mount(nil, nil)
	return element
}

func updateChild(existing Element, widget Widget, parent Element, owner *BuildOwner) Element {
	if widget == nil {
		if existing != nil {
			existing.Unmount()
		}
		return nil
	}
	if existing != nil && canUpdateWidget(existing.Widget(), widget) {
		existing.Update(widget)
		return existing
	}
	if existing != nil {
		existing.Unmount()
	}
	element := inflateWidget(widget, owner)
	element.Mount(parent, nil)
	return element
}

func canUpdateWidget(existing Widget, next Widget) bool {
	if existing == nil || next == nil {
		return false
	}
	if reflect.TypeOf(existing) != reflect.TypeOf(next) {
		return false
	}
	return reflect.DeepEqual(existing.Key(), next.Key())
}

func inflateWidget(widget Widget, owner *BuildOwner) Element {
	if widget == nil {
		return nil
	}
	element := widget.CreateElement()
	if setter, ok := element.(interface{ setWidget(Widget) }); ok {
		setter.setWidget(widget)
	}
	if setter, ok := element.(interface{ setBuildOwner(*BuildOwner) }); ok {
		setter.setBuildOwner(owner)
	}
	if setter, ok := element.(interface{ setSelf(Element) }); ok {
		setter.setSelf(element)
	}
	return element
}
