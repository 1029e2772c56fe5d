// Package core provides the widget and element framework interfaces and lifecycle.
//
// This package defines the foundational types for building reactive component
// trees: Widget, Element, State, and BuildContext. It follows a declarative
// model where widgets describe what the tree should look like, and the
// framework efficiently updates the mounted elements to match.
//
// # Core Types
//
// Widget is an immutable description of part of the tree. Widgets are
// lightweight configuration objects that can be created frequently without
// performance concerns.
//
// Element is the instantiation of a Widget at a particular location in the
// tree. Elements manage the lifecycle and identity of widgets.
//
// # Stateful Widgets
//
// For widgets that need mutable state, embed StateBase in your state struct:
//
//	type myState struct {
//	    core.StateBase
//	    count int
//	}
//
//	func (s *myState) InitState() {
//	    // Initialize state here
//	}
//
//	func (s *myState) Build(ctx core.BuildContext) core.Widget {
//	    return childWidgetFor(s.count)
//	}
//
// # Constructor Conventions
//
// Controllers and services use NewX() constructors returning pointers:
//
//	ctrl := platform.NewTextEditingController("")
//
// This distinguishes long-lived, mutable objects (controllers) from
// immutable configuration objects (widgets, which use struct literals).
package core
