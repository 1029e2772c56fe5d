// Package focus provides focus management structures.
package focus

// TraversalDirection indicates the focus traversal direction.
type TraversalDirection int

const (
	// TraversalDirectionPrevious moves focus to the previous node.
	TraversalDirectionPrevious TraversalDirection = iota

	// TraversalDirectionNext moves focus to the next node.
	TraversalDirectionNext
)

// FocusNode represents a focusable element in the tree.
type FocusNode struct {
	CanRequestFocus bool
	SkipTraversal   bool
	DebugLabel      string

	OnFocusChange func(hasFocus bool)

	hasFocus        bool
	hasPrimaryFocus bool
}

// NewFocusNode creates a focusable node with the given debug label.
func NewFocusNode(debugLabel string) *FocusNode {
	return &FocusNode{
		CanRequestFocus: true,
		DebugLabel:      debugLabel,
	}
}

// canReceiveFocus reports whether the node can receive focus.
func (n *FocusNode) canReceiveFocus() bool {
	return n != nil && n.CanRequestFocus && !n.SkipTraversal
}

// HasFocus reports whether this node or a descendant has focus.
func (n *FocusNode) HasFocus() bool {
	return n.hasFocus
}

// HasPrimaryFocus reports whether this node is the primary focus.
func (n *FocusNode) HasPrimaryFocus() bool {
	return n.hasPrimaryFocus
}

// RequestFocus requests that this node receive primary focus.
func (n *FocusNode) RequestFocus() {
	if !n.canReceiveFocus() {
		return
	}
	GetFocusManager().setPrimaryFocus(n)
}

// Unfocus removes focus from this node if it has primary focus.
func (n *FocusNode) Unfocus() {
	manager := GetFocusManager()
	if manager.PrimaryFocus == n {
		manager.setPrimaryFocus(nil)
	}
}

// NextFocus moves focus to the next focusable node.
func (n *FocusNode) NextFocus() bool {
	return GetFocusManager().MoveFocus(1)
}

// PreviousFocus moves focus to the previous focusable node.
func (n *FocusNode) PreviousFocus() bool {
	return GetFocusManager().MoveFocus(-1)
}

// FocusScopeNode groups focus nodes.
type FocusScopeNode struct {
	FocusNode
	FocusedChild *FocusNode
	Children     []*FocusNode
}

// Register adds a node to this scope if not already present.
func (s *FocusScopeNode) Register(node *FocusNode) {
	if s == nil || node == nil {
		return
	}
	for _, child := range s.Children {
		if child == node {
			return
		}
	}
	s.Children = append(s.Children, node)
}

// Unregister removes a node from this scope. If the node held focus,
// focus is cleared.
func (s *FocusScopeNode) Unregister(node *FocusNode) {
	if s == nil || node == nil {
		return
	}
	for i, child := range s.Children {
		if child == node {
			s.Children = append(s.Children[:i], s.Children[i+1:]...)
			break
		}
	}
	if s.FocusedChild == node {
		s.FocusedChild = nil
	}
	node.Unfocus()
}

// SetFirstFocus sets focus to the first focusable child.
func (s *FocusScopeNode) SetFirstFocus() {
	if s == nil || len(s.Children) == 0 {
		return
	}
	for _, child := range s.Children {
		if child.canReceiveFocus() {
			GetFocusManager().setPrimaryFocus(child)
			s.FocusedChild = child
			return
		}
	}
}

// FocusInDirection moves focus in the given direction.
func (s *FocusScopeNode) FocusInDirection(direction TraversalDirection) {
	manager := GetFocusManager()
	if manager.PrimaryFocus == nil {
		s.SetFirstFocus()
		return
	}
	manager.MoveFocus(linearDelta(direction))
}

// linearDelta returns +1 or -1 for linear focus traversal based on direction.
func linearDelta(direction TraversalDirection) int {
	if direction == TraversalDirectionPrevious {
		return -1
	}
	return 1
}

// FocusManager manages the global focus state.
type FocusManager struct {
	RootScope    *FocusScopeNode
	PrimaryFocus *FocusNode
}

var focusManager = &FocusManager{RootScope: &FocusScopeNode{}}

// GetFocusManager returns the singleton focus manager.
func GetFocusManager() *FocusManager {
	return focusManager
}

// MoveFocus moves focus by delta positions within the root scope.
func (m *FocusManager) MoveFocus(delta int) bool {
	scope := m.RootScope
	if scope == nil || len(scope.Children) == 0 {
		return false
	}

	currentIndex := m.findCurrentFocusIndex(scope)
	count := len(scope.Children)

	for step := 1; step <= count; step++ {
		nextIndex := wrapIndex(currentIndex+delta*step, count)
		candidate := scope.Children[nextIndex]
		if candidate.canReceiveFocus() {
			m.setPrimaryFocus(candidate)
			scope.FocusedChild = candidate
			return true
		}
	}
	return false
}

// UnfocusAll clears the primary focus.
func (m *FocusManager) UnfocusAll() {
	m.setPrimaryFocus(nil)
}

// findCurrentFocusIndex returns the index of the currently focused node, or -1 if none.
func (m *FocusManager) findCurrentFocusIndex(scope *FocusScopeNode) int {
	for i, child := range scope.Children {
		if child == m.PrimaryFocus {
			return i
		}
	}
	return -1
}

// wrapIndex wraps an index to stay within [0, count).
func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}

// setPrimaryFocus updates the primary focus to the given node.
func (m *FocusManager) setPrimaryFocus(node *FocusNode) {
	if m.PrimaryFocus == node {
		return
	}
	if m.PrimaryFocus != nil {
		m.PrimaryFocus.setFocusState(false)
	}
	m.PrimaryFocus = node
	if node != nil {
		node.setFocusState(true)
	}
}

// setFocusState updates the focus flags and notifies the callback.
func (n *FocusNode) setFocusState(hasFocus bool) {
	n.hasPrimaryFocus = hasFocus
	n.hasFocus = hasFocus
	if n.OnFocusChange != nil {
		n.OnFocusChange(hasFocus)
	}
}
