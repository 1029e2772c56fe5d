package core

import "reflect"

// Widget is an immutable description of part of the component tree.
type Widget interface {
	// CreateElement creates the element that will host this widget.
	CreateElement() Element

	// Key returns the widget key used for identity during updates, or nil.
	Key() any
}

// StatelessWidget describes part of the tree that depends only on its own
// configuration.
type StatelessWidget interface {
	Widget

	// Build returns the child widget this widget represents.
	Build(ctx BuildContext) Widget
}

// StatefulWidget describes part of the tree with mutable state held in a
// separate State object.
type StatefulWidget interface {
	Widget

	// CreateState creates the mutable state for this widget.
	CreateState() State
}

// InheritedWidget propagates data down the tree and notifies dependents
// when that data changes.
type InheritedWidget interface {
	Widget

	// ChildWidget returns the subtree below this widget.
	ChildWidget() Widget

	// UpdateShouldNotify reports whether dependents must rebuild after the
	// widget was replaced by a new configuration.
	UpdateShouldNotify(oldWidget InheritedWidget) bool
}

// State holds mutable state for a StatefulWidget.
type State interface {
	// InitState is called once when the state is attached to the tree.
	InitState()

	// Build returns the child widget for the current state.
	Build(ctx BuildContext) Widget

	// SetState executes fn and schedules a rebuild.
	SetState(fn func())

	// Dispose releases resources when the element is removed from the tree.
	Dispose()

	// DidChangeDependencies is called when an inherited dependency changes.
	DidChangeDependencies()

	// DidUpdateWidget is called when the widget configuration is replaced.
	DidUpdateWidget(oldWidget StatefulWidget)
}

// BuildContext is the interface elements expose to widget build methods.
type BuildContext interface {
	// DependOnInherited registers a dependency on the nearest ancestor
	// inherited widget of the given type and returns it, or nil.
	DependOnInherited(inheritedType reflect.Type, aspect any) any

	// FindAncestor walks up the tree and returns the first ancestor element
	// matching the predicate, or nil.
	FindAncestor(predicate func(Element) bool) Element
}

// Element is the instantiation of a Widget at a location in the tree.
type Element interface {
	BuildContext

	// Widget returns the current widget configuration.
	Widget() Widget

	// Mount attaches the element to the tree below parent.
	Mount(parent Element, slot any)

	// Update replaces the widget configuration in place.
	Update(newWidget Widget)

	// Unmount detaches the element and its subtree from the tree.
	Unmount()

	// RebuildIfNeeded rebuilds the subtree if the element is dirty.
	RebuildIfNeeded()

	// MarkNeedsBuild schedules the element for rebuild.
	MarkNeedsBuild()

	// Depth returns the element's depth from the root.
	Depth() int

	// VisitChildren calls visitor for each child until it returns false.
	VisitChildren(visitor func(Element) bool)
}
