package widgets

import (
	"testing"

	"github.com/go-drift/fieldkit/pkg/core"
	"github.com/go-drift/fieldkit/pkg/history"
	"github.com/go-drift/fieldkit/pkg/platform"
	kittest "github.com/go-drift/fieldkit/pkg/testing"
)

func findReactiveState(t *testing.T, tester *kittest.WidgetTester) *reactiveTextInputState {
	t.Helper()
	state := tester.FindState(func(s core.State) bool {
		_, ok := s.(*reactiveTextInputState)
		return ok
	})
	if state == nil {
		t.Fatal("ReactiveTextInput state not found")
	}
	return state.(*reactiveTextInputState)
}

// typeInto simulates a user edit on the host surface backing the field.
func typeInto(t *testing.T, tester *kittest.WidgetTester, text string) {
	t.Helper()
	inner := findTextInputState(t, tester)
	tester.Backend().TypeText(inner.View().ViewID(), text)
	_ = tester.PumpAndSettle()
}

func focusField(t *testing.T, tester *kittest.WidgetTester) {
	t.Helper()
	findTextInputState(t, tester).Focus()
	_ = tester.PumpAndSettle()
}

func unfocusField(t *testing.T, tester *kittest.WidgetTester) {
	t.Helper()
	findTextInputState(t, tester).Unfocus()
	_ = tester.PumpAndSettle()
}

func submitField(t *testing.T, tester *kittest.WidgetTester) {
	t.Helper()
	inner := findTextInputState(t, tester)
	tester.Backend().PressAction(inner.View().ViewID(), platform.TextInputActionDone)
	_ = tester.PumpAndSettle()
}

func TestReactiveMountAppliesValue(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	if err := tester.PumpWidget(ReactiveTextInput{Value: "initial"}); err != nil {
		t.Fatal(err)
	}
	state := findReactiveState(t, tester)

	if state.Text() != "initial" {
		t.Errorf("expected buffer initial, got %q", state.Text())
	}
	if !state.IsSynced() {
		t.Error("expected synced at mount")
	}
}

func TestReactiveMountValueWinsOverController(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	controller := platform.NewTextEditingController("stale draft")
	if err := tester.PumpWidget(ReactiveTextInput{
		Value:      "authoritative",
		Controller: controller,
	}); err != nil {
		t.Fatal(err)
	}

	if controller.Text() != "authoritative" {
		t.Errorf("expected controller overwritten at mount, got %q", controller.Text())
	}
}

func TestReactiveDraftEditsDoNotCommit(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	var drafts, commits []string
	if err := tester.PumpWidget(ReactiveTextInput{
		Value:          "a",
		OnTextChanged:  func(text string) { drafts = append(drafts, text) },
		OnValueChanged: func(text string) { commits = append(commits, text) },
	}); err != nil {
		t.Fatal(err)
	}

	focusField(t, tester)
	typeInto(t, tester, "ab")

	state := findReactiveState(t, tester)
	if len(drafts) != 1 || drafts[0] != "ab" {
		t.Errorf("expected drafts [ab], got %v", drafts)
	}
	if len(commits) != 0 {
		t.Errorf("expected no commits for draft edits, got %v", commits)
	}
	if state.IsSynced() {
		t.Error("expected unsynced buffer after draft edit")
	}
}

func TestReactiveSubmitCommitsOnce(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	var commits []string
	if err := tester.PumpWidget(ReactiveTextInput{
		Value:          "a",
		OnValueChanged: func(text string) { commits = append(commits, text) },
	}); err != nil {
		t.Fatal(err)
	}

	focusField(t, tester)
	typeInto(t, tester, "ab")
	submitField(t, tester)

	if len(commits) != 1 || commits[0] != "ab" {
		t.Errorf("expected commits [ab], got %v", commits)
	}
	if !findReactiveState(t, tester).IsSynced() {
		t.Error("expected synced after commit")
	}
}

func TestReactiveCommitDeduplicates(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	var commits []string
	if err := tester.PumpWidget(ReactiveTextInput{
		Value:          "same",
		OnValueChanged: func(text string) { commits = append(commits, text) },
	}); err != nil {
		t.Fatal(err)
	}

	// Editing back to the authoritative value must not produce a commit.
	focusField(t, tester)
	typeInto(t, tester, "samex")
	typeInto(t, tester, "same")
	submitField(t, tester)

	if len(commits) != 0 {
		t.Errorf("expected no commit for unchanged value, got %v", commits)
	}
}

func TestReactiveValueUpdateWhileUnfocusedApplies(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	if err := tester.PumpWidget(ReactiveTextInput{Value: "one"}); err != nil {
		t.Fatal(err)
	}
	if err := tester.UpdateWidget(ReactiveTextInput{Value: "two"}); err != nil {
		t.Fatal(err)
	}

	state := findReactiveState(t, tester)
	if state.Text() != "two" {
		t.Errorf("expected buffer two, got %q", state.Text())
	}
	if !state.IsSynced() {
		t.Error("expected synced after apply")
	}
}

func TestReactiveApplyIsIdempotent(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	var drafts []string
	onText := func(text string) { drafts = append(drafts, text) }
	if err := tester.PumpWidget(ReactiveTextInput{Value: "one", OnTextChanged: onText}); err != nil {
		t.Fatal(err)
	}

	if err := tester.UpdateWidget(ReactiveTextInput{Value: "two", OnTextChanged: onText}); err != nil {
		t.Fatal(err)
	}
	_ = tester.PumpAndSettle()
	if len(drafts) != 1 || drafts[0] != "two" {
		t.Fatalf("expected one notification [two] for the differing apply, got %v", drafts)
	}

	// Reapplying the same value must not notify again or move the caret.
	state := findReactiveState(t, tester)
	sel := state.controller.Selection()
	if err := tester.UpdateWidget(ReactiveTextInput{Value: "two", OnTextChanged: onText}); err != nil {
		t.Fatal(err)
	}
	_ = tester.PumpAndSettle()

	if len(drafts) != 1 {
		t.Errorf("expected exactly one notification, got %v", drafts)
	}
	if state.controller.Selection() != sel {
		t.Error("expected repeated apply to leave selection untouched")
	}
	if state.Text() != "two" {
		t.Errorf("expected two, got %q", state.Text())
	}
}

// valueHost rebuilds its ReactiveTextInput child with a new Value from
// inside the build phase, the way a parent widget would.
type valueHost struct {
	core.StatefulBase
	initial string
	onText  func(string)
}

func (valueHost) CreateState() core.State { return &valueHostState{} }

type valueHostState struct {
	core.StateBase
	value string
}

func (s *valueHostState) InitState() {
	s.value = s.Element().Widget().(valueHost).initial
}

func (s *valueHostState) Build(ctx core.BuildContext) core.Widget {
	w := s.Element().Widget().(valueHost)
	return ReactiveTextInput{Value: s.value, OnTextChanged: w.onText}
}

func TestReactiveApplyDuringRebuildNotifiesNextTick(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	var drafts []string
	if err := tester.PumpWidget(valueHost{
		initial: "one",
		onText:  func(text string) { drafts = append(drafts, text) },
	}); err != nil {
		t.Fatal(err)
	}

	host := tester.FindState(func(s core.State) bool {
		_, ok := s.(*valueHostState)
		return ok
	}).(*valueHostState)

	host.SetState(func() { host.value = "two" })
	if err := tester.Pump(); err != nil {
		t.Fatal(err)
	}

	// The buffer is already realigned, but observers hear about it only
	// after the build pass.
	if text := findReactiveState(t, tester).Text(); text != "two" {
		t.Fatalf("expected buffer two after rebuild, got %q", text)
	}
	if len(drafts) != 0 {
		t.Fatalf("expected no notification during the rebuild, got %v", drafts)
	}

	if err := tester.Pump(); err != nil {
		t.Fatal(err)
	}
	if len(drafts) != 1 || drafts[0] != "two" {
		t.Errorf("expected deferred notification [two], got %v", drafts)
	}
}

func TestReactiveValueUpdateWhileFocusedKeepsDraft(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	if err := tester.PumpWidget(ReactiveTextInput{Value: "one"}); err != nil {
		t.Fatal(err)
	}
	focusField(t, tester)
	typeInto(t, tester, "draft")

	if err := tester.UpdateWidget(ReactiveTextInput{Value: "two"}); err != nil {
		t.Fatal(err)
	}

	state := findReactiveState(t, tester)
	if state.Text() != "draft" {
		t.Errorf("expected draft preserved while focused, got %q", state.Text())
	}
	if state.IsSynced() {
		t.Error("expected unsynced: draft differs from new value")
	}
}

func TestReactiveUnfocusNothingKeepsBuffer(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	var commits []string
	if err := tester.PumpWidget(ReactiveTextInput{
		Value:           "orig",
		UnfocusBehavior: UnfocusBehaviorNothing,
		OnValueChanged:  func(text string) { commits = append(commits, text) },
	}); err != nil {
		t.Fatal(err)
	}

	focusField(t, tester)
	typeInto(t, tester, "draft")
	unfocusField(t, tester)

	state := findReactiveState(t, tester)
	if state.Text() != "draft" {
		t.Errorf("expected buffer kept, got %q", state.Text())
	}
	if len(commits) != 0 {
		t.Errorf("expected no commit, got %v", commits)
	}
}

func TestReactiveUnfocusResetRestoresValue(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	var drafts, commits []string
	if err := tester.PumpWidget(ReactiveTextInput{
		Value:           "orig",
		UnfocusBehavior: UnfocusBehaviorResetValue,
		OnTextChanged:   func(text string) { drafts = append(drafts, text) },
		OnValueChanged:  func(text string) { commits = append(commits, text) },
	}); err != nil {
		t.Fatal(err)
	}

	focusField(t, tester)
	typeInto(t, tester, "draft")
	unfocusField(t, tester)

	state := findReactiveState(t, tester)
	if state.Text() != "orig" {
		t.Errorf("expected buffer reset to orig, got %q", state.Text())
	}
	// The reset itself is a text change the observer must hear about.
	if len(drafts) != 2 || drafts[0] != "draft" || drafts[1] != "orig" {
		t.Errorf("expected drafts [draft orig], got %v", drafts)
	}
	if len(commits) != 0 {
		t.Errorf("expected no commit on reset, got %v", commits)
	}
	if !state.IsSynced() {
		t.Error("expected synced after reset")
	}
}

func TestReactiveResetAfterSubmitKeepsCommittedValue(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	var commits []string
	if err := tester.PumpWidget(ReactiveTextInput{
		Value:           "a",
		UnfocusBehavior: UnfocusBehaviorResetValue,
		OnValueChanged:  func(text string) { commits = append(commits, text) },
	}); err != nil {
		t.Fatal(err)
	}

	// Done submits first and then drops focus; the blur reset must keep
	// the value committed by that submit.
	focusField(t, tester)
	typeInto(t, tester, "ab")
	submitField(t, tester)

	state := findReactiveState(t, tester)
	if len(commits) != 1 || commits[0] != "ab" {
		t.Errorf("expected commits [ab], got %v", commits)
	}
	if state.Text() != "ab" {
		t.Errorf("expected committed buffer kept, got %q", state.Text())
	}
	if !state.IsSynced() {
		t.Error("expected synced after submit")
	}
}

func TestReactiveUnfocusSaveCommits(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	var commits []string
	if err := tester.PumpWidget(ReactiveTextInput{
		Value:           "orig",
		UnfocusBehavior: UnfocusBehaviorSaveValue,
		OnValueChanged:  func(text string) { commits = append(commits, text) },
	}); err != nil {
		t.Fatal(err)
	}

	focusField(t, tester)
	typeInto(t, tester, "draft")
	unfocusField(t, tester)

	if len(commits) != 1 || commits[0] != "draft" {
		t.Errorf("expected commits [draft], got %v", commits)
	}
	if !findReactiveState(t, tester).IsSynced() {
		t.Error("expected synced after save")
	}
}

func TestReactiveUndoResyncCommitsOnce(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	var commits []string
	undo := history.NewUndoHistoryController(0)
	if err := tester.PumpWidget(ReactiveTextInput{
		Value:          "a",
		UndoController: undo,
		OnValueChanged: func(text string) { commits = append(commits, text) },
	}); err != nil {
		t.Fatal(err)
	}

	focusField(t, tester)
	typeInto(t, tester, "ab")
	submitField(t, tester)
	commits = nil

	undo.Undo()
	if err := tester.PumpAndSettle(); err != nil {
		t.Fatal(err)
	}

	state := findReactiveState(t, tester)
	if state.Text() != "a" {
		t.Errorf("expected buffer restored to a, got %q", state.Text())
	}
	if len(commits) != 1 || commits[0] != "a" {
		t.Errorf("expected exactly one commit [a], got %v", commits)
	}
	if !state.IsSynced() {
		t.Error("expected synced after undo resync")
	}
}

func TestReactiveRedoResync(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	var commits []string
	undo := history.NewUndoHistoryController(0)
	if err := tester.PumpWidget(ReactiveTextInput{
		Value:          "a",
		UndoController: undo,
		OnValueChanged: func(text string) { commits = append(commits, text) },
	}); err != nil {
		t.Fatal(err)
	}

	focusField(t, tester)
	typeInto(t, tester, "ab")
	undo.Undo()
	_ = tester.PumpAndSettle()
	commits = nil

	undo.Redo()
	_ = tester.PumpAndSettle()

	state := findReactiveState(t, tester)
	if state.Text() != "ab" {
		t.Errorf("expected buffer ab after redo, got %q", state.Text())
	}
	if len(commits) != 1 || commits[0] != "ab" {
		t.Errorf("expected one commit [ab], got %v", commits)
	}
}

func TestReactiveUndoControllerSwapUnsubscribes(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	var commits []string
	first := history.NewUndoHistoryController(0)
	second := history.NewUndoHistoryController(0)
	if err := tester.PumpWidget(ReactiveTextInput{
		Value:          "a",
		UndoController: first,
		OnValueChanged: func(text string) { commits = append(commits, text) },
	}); err != nil {
		t.Fatal(err)
	}

	focusField(t, tester)
	typeInto(t, tester, "ab")

	if err := tester.UpdateWidget(ReactiveTextInput{
		Value:          "a",
		UndoController: second,
		OnValueChanged: func(text string) { commits = append(commits, text) },
	}); err != nil {
		t.Fatal(err)
	}

	// The swapped-out controller must no longer reach the field.
	first.Undo()
	_ = tester.PumpAndSettle()

	if len(commits) != 0 {
		t.Errorf("expected no commit from detached controller, got %v", commits)
	}
}

func TestReactiveObscureMultilinePanics(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for Obscure+Multiline")
		}
	}()
	_ = tester.PumpWidget(ReactiveTextInput{Obscure: true, Multiline: true})
}

func TestReactiveControllerSwapRealigns(t *testing.T) {
	tester := kittest.NewWidgetTesterWithT(t)

	first := platform.NewTextEditingController("")
	second := platform.NewTextEditingController("leftover")
	if err := tester.PumpWidget(ReactiveTextInput{Value: "v", Controller: first}); err != nil {
		t.Fatal(err)
	}
	if err := tester.UpdateWidget(ReactiveTextInput{Value: "v", Controller: second}); err != nil {
		t.Fatal(err)
	}

	state := findReactiveState(t, tester)
	if state.controller != second {
		t.Fatal("expected second controller adopted")
	}
	if state.Text() != "v" {
		t.Errorf("expected authoritative value applied to new controller, got %q", state.Text())
	}
}
