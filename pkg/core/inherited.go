package core

import "reflect"

// InheritedElement hosts an [InheritedWidget] and manages dependency
// tracking for descendant widgets.
//
// When a descendant calls [BuildContext.DependOnInherited], it registers as
// a dependent of this element. When the InheritedWidget is updated and
// [InheritedWidget.UpdateShouldNotify] returns true, all registered
// dependents are notified and scheduled for rebuild.
type InheritedElement struct {
	elementBase
	child      Element
	dependents map[Element]struct{}
}

// NewInheritedElement creates an empty inherited element. The widget and
// build owner are set by the framework during inflation.
func NewInheritedElement() *InheritedElement {
	element := &InheritedElement{
		dependents: make(map[Element]struct{}),
	}
	element.setSelf(element)
	return element
}

func (e *InheritedElement) Mount(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.mounted = true
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *InheritedElement) Update(newWidget Widget) {
	oldWidget := e.widget.(InheritedWidget)
	e.widget = newWidget
	newInherited := newWidget.(InheritedWidget)

	// UpdateShouldNotify gates dependent notification. If it returns false,
	// the subtree still rebuilds but dependents are not woken.
	if newInherited.UpdateShouldNotify(oldWidget) {
		for dependent := range e.dependents {
			notifyDependent(dependent)
		}
	}

	e.MarkNeedsBuild()
}

func (e *InheritedElement) Unmount() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	e.dependents = nil
}

func (e *InheritedElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	inherited := e.widget.(InheritedWidget)
	e.child = updateChild(e.child, inherited.ChildWidget(), e, e.buildOwner)
}

func (e *InheritedElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

func (e *InheritedElement) FindAncestor(predicate func(Element) bool) Element {
	return findAncestorImpl(&e.elementBase, predicate)
}

func (e *InheritedElement) DependOnInherited(inheritedType reflect.Type, aspect any) any {
	return dependOnInheritedImpl(e, inheritedType, aspect)
}

// AddDependent registers an element as depending on this inherited widget.
func (e *InheritedElement) AddDependent(dependent Element) {
	if e.dependents == nil {
		e.dependents = make(map[Element]struct{})
	}
	e.dependents[dependent] = struct{}{}
}

// RemoveDependent unregisters an element as depending on this inherited widget.
func (e *InheritedElement) RemoveDependent(dependent Element) {
	delete(e.dependents, dependent)
}

// notifyDependent triggers DidChangeDependencies on the dependent element.
func notifyDependent(element Element) {
	if stateful, ok := element.(*StatefulElement); ok {
		if stateful.state != nil {
			stateful.state.DidChangeDependencies()
		}
		stateful.MarkNeedsBuild()
		return
	}
	element.MarkNeedsBuild()
}

// dependOnInheritedImpl walks up the element tree to find the nearest
// InheritedElement hosting a widget of the requested type, registers the
// caller as a dependent, and returns the widget. The aspect parameter is
// accepted for interface stability; dependency tracking is whole-widget.
func dependOnInheritedImpl(element Element, inheritedType reflect.Type, aspect any) any {
	_ = aspect

	var current Element
	if base, ok := element.(interface{ parentElement() Element }); ok {
		current = base.parentElement()
	}

	for current != nil {
		if inherited, ok := current.(*InheritedElement); ok {
			widgetType := reflect.TypeOf(inherited.widget)
			if widgetType == inheritedType || (widgetType.Kind() == reflect.Pointer && widgetType.Elem() == inheritedType) {
				inherited.AddDependent(element)
				return inherited.widget
			}
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}
