// Package testing provides a headless harness for widget tests.
//
// WidgetTester mounts widget trees against a private BuildOwner and drives
// the dispatch queue and build phases the way a live host would, without
// any rendering surface.
package testing

import (
	goerrors "errors"
	"testing"

	"github.com/go-drift/fieldkit/pkg/core"
	"github.com/go-drift/fieldkit/pkg/focus"
	"github.com/go-drift/fieldkit/pkg/platform"
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its iteration budget.
var ErrSettleTimeout = goerrors.New("PumpAndSettle timed out: framework did not settle")

// settleMaxIterations bounds PumpAndSettle against livelock from callbacks
// that keep re-scheduling work.
const settleMaxIterations = 100

// WidgetTester provides isolated widget testing without a host surface.
type WidgetTester struct {
	buildOwner *core.BuildOwner
	root       core.Element
	dispatches []func()
	backend    *LoopbackBackend
}

// NewWidgetTester creates a tester with a fresh platform environment.
// Call Cleanup() when done, or use NewWidgetTesterWithT() instead.
func NewWidgetTester() *WidgetTester {
	platform.ResetForTest()
	focus.GetFocusManager().RootScope.Children = nil
	focus.GetFocusManager().UnfocusAll()

	t := &WidgetTester{
		buildOwner: core.NewBuildOwner(),
		backend:    NewLoopbackBackend(),
	}
	platform.RegisterDispatch(t.Dispatch)
	platform.SetHostBackend(t.backend)
	return t
}

// NewWidgetTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewWidgetTesterWithT(t *testing.T) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree and restores global platform state. Must be
// called if not using NewWidgetTesterWithT.
func (t *WidgetTester) Cleanup() {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
	platform.ResetForTest()
}

// Backend returns the loopback host backend used by this tester.
func (t *WidgetTester) Backend() *LoopbackBackend {
	return t.backend
}

// RootElement returns the root of the mounted tree, or nil before PumpWidget.
func (t *WidgetTester) RootElement() core.Element {
	return t.root
}

// Dispatch queues a callback to run at the start of the next Pump.
func (t *WidgetTester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// PumpWidget mounts (or remounts) a widget and runs one frame.
func (t *WidgetTester) PumpWidget(widget core.Widget) error {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
	t.root = core.MountRoot(widget, t.buildOwner)
	return t.Pump()
}

// UpdateWidget applies a new widget configuration to the mounted root and
// runs one frame. The widget must be reconcilable with the current root.
func (t *WidgetTester) UpdateWidget(widget core.Widget) error {
	if t.root == nil {
		return t.PumpWidget(widget)
	}
	t.root.Update(widget)
	return t.Pump()
}

// Pump runs a single frame cycle: queued dispatches, then build.
func (t *WidgetTester) Pump() error {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}
	t.buildOwner.FlushBuild()
	return nil
}

// PumpAndSettle pumps until no dispatches or builds remain pending.
func (t *WidgetTester) PumpAndSettle() error {
	for i := 0; i < settleMaxIterations; i++ {
		if err := t.Pump(); err != nil {
			return err
		}
		if len(t.dispatches) == 0 && !t.buildOwner.NeedsWork() {
			return nil
		}
	}
	return ErrSettleTimeout
}

// FindElement walks the tree depth-first and returns the first element for
// which predicate returns true, or nil.
func (t *WidgetTester) FindElement(predicate func(core.Element) bool) core.Element {
	if t.root == nil {
		return nil
	}
	var found core.Element
	var walk func(core.Element) bool
	walk = func(e core.Element) bool {
		if found != nil {
			return false
		}
		if predicate(e) {
			found = e
			return false
		}
		e.VisitChildren(walk)
		return true
	}
	walk(t.root)
	return found
}

// FindState returns the first state in the tree for which predicate returns
// true, or nil.
func (t *WidgetTester) FindState(predicate func(core.State) bool) core.State {
	element := t.FindElement(func(e core.Element) bool {
		stateful, ok := e.(*core.StatefulElement)
		return ok && stateful.State() != nil && predicate(stateful.State())
	})
	if element == nil {
		return nil
	}
	return element.(*core.StatefulElement).State()
}
