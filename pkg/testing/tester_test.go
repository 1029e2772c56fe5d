package testing

import (
	"testing"

	"github.com/go-drift/fieldkit/pkg/core"
	"github.com/go-drift/fieldkit/pkg/platform"
)

type probeWidget struct {
	core.StatefulBase
}

func (probeWidget) CreateState() core.State { return &probeState{} }

type probeState struct {
	core.StateBase
	builds int
}

func (s *probeState) Build(ctx core.BuildContext) core.Widget {
	s.builds++
	return nil
}

func TestPumpDrainsDispatchesInOrder(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	var order []int
	platform.Dispatch(func() { order = append(order, 1) })
	platform.Dispatch(func() { order = append(order, 2) })
	if err := tester.Pump(); err != nil {
		t.Fatal(err)
	}

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected FIFO [1 2], got %v", order)
	}
}

func TestPumpAndSettleFlushesScheduledBuilds(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	if err := tester.PumpWidget(probeWidget{}); err != nil {
		t.Fatal(err)
	}
	state := tester.FindState(func(s core.State) bool {
		_, ok := s.(*probeState)
		return ok
	}).(*probeState)

	// A dispatch that sets state needs a second build pass.
	platform.Dispatch(func() {
		state.SetState(func() {})
	})
	if err := tester.PumpAndSettle(); err != nil {
		t.Fatal(err)
	}
	if state.builds != 2 {
		t.Errorf("expected 2 builds, got %d", state.builds)
	}
}

func TestPumpAndSettleTimesOutOnLivelock(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	var reschedule func()
	reschedule = func() {
		platform.Dispatch(reschedule)
	}
	platform.Dispatch(reschedule)

	if err := tester.PumpAndSettle(); err != ErrSettleTimeout {
		t.Errorf("expected settle timeout, got %v", err)
	}
}

func TestFindElementReturnsNilWhenAbsent(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	if err := tester.PumpWidget(probeWidget{}); err != nil {
		t.Fatal(err)
	}
	found := tester.FindElement(func(core.Element) bool { return false })
	if found != nil {
		t.Errorf("expected nil, got %v", found)
	}
}
