package platform

import "sync"

// TextEditingController manages text input state.
type TextEditingController struct {
	value          TextEditingValue
	listeners      map[int]func()
	nextListenerID int
	mu             sync.RWMutex
}

// NewTextEditingController creates a new text editing controller with the given initial text.
func NewTextEditingController(text string) *TextEditingController {
	return &TextEditingController{
		value: TextEditingValue{
			Text:           text,
			Selection:      TextSelectionCollapsed(len(text)),
			ComposingRange: TextRangeEmpty,
		},
		listeners: make(map[int]func()),
	}
}

// Text returns the current text content.
func (c *TextEditingController) Text() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value.Text
}

// SetText sets the text content.
func (c *TextEditingController) SetText(text string) {
	c.mu.Lock()
	c.value.Text = text
	// Move selection to end if it's beyond the text length
	if c.value.Selection.BaseOffset > len(text) {
		c.value.Selection.BaseOffset = len(text)
	}
	if c.value.Selection.ExtentOffset > len(text) {
		c.value.Selection.ExtentOffset = len(text)
	}
	c.mu.Unlock()
	c.notifyListeners()
}

// Selection returns the current selection.
func (c *TextEditingController) Selection() TextSelection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value.Selection
}

// SetSelection sets the selection.
func (c *TextEditingController) SetSelection(selection TextSelection) {
	c.mu.Lock()
	c.value.Selection = selection
	c.mu.Unlock()
	c.notifyListeners()
}

// Value returns the complete editing value.
func (c *TextEditingController) Value() TextEditingValue {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// SetValue sets the complete editing value.
func (c *TextEditingController) SetValue(value TextEditingValue) {
	c.mu.Lock()
	c.value = value
	c.mu.Unlock()
	c.notifyListeners()
}

// Clear clears the text.
func (c *TextEditingController) Clear() {
	c.SetText("")
}

// AddListener adds a callback that is called when the value changes.
// Returns an unsubscribe function.
func (c *TextEditingController) AddListener(fn func()) func() {
	c.mu.Lock()
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// notifyListeners calls all registered listeners.
func (c *TextEditingController) notifyListeners() {
	c.mu.RLock()
	listeners := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
