package testing

import (
	"sync"

	"github.com/go-drift/fieldkit/pkg/platform"
)

// LoopbackBackend is a host backend for tests. Focus and blur requests are
// reflected straight back through the input registry, the way a real host
// confirms them, and pushed values are recorded for assertions.
type LoopbackBackend struct {
	mu      sync.Mutex
	values  map[int64]platform.TextEditingValue
	configs map[int64]platform.TextInputViewConfig
	created []int64
}

// NewLoopbackBackend creates an empty loopback backend.
func NewLoopbackBackend() *LoopbackBackend {
	return &LoopbackBackend{
		values:  make(map[int64]platform.TextEditingValue),
		configs: make(map[int64]platform.TextInputViewConfig),
	}
}

func (b *LoopbackBackend) CreateInput(viewID int64, config platform.TextInputViewConfig) error {
	b.mu.Lock()
	b.created = append(b.created, viewID)
	b.configs[viewID] = config
	b.mu.Unlock()
	return nil
}

func (b *LoopbackBackend) SetValue(viewID int64, value platform.TextEditingValue) {
	b.mu.Lock()
	b.values[viewID] = value
	b.mu.Unlock()
}

func (b *LoopbackBackend) UpdateConfig(viewID int64, config platform.TextInputViewConfig) {
	b.mu.Lock()
	b.configs[viewID] = config
	b.mu.Unlock()
}

func (b *LoopbackBackend) Focus(viewID int64) {
	platform.GetTextInputRegistry().HandleFocusChanged(viewID, true)
}

func (b *LoopbackBackend) Blur(viewID int64) {
	platform.GetTextInputRegistry().HandleFocusChanged(viewID, false)
}

func (b *LoopbackBackend) DisposeInput(viewID int64) {
	b.mu.Lock()
	delete(b.values, viewID)
	delete(b.configs, viewID)
	b.mu.Unlock()
}

// LastValue returns the last value pushed to the given view.
func (b *LoopbackBackend) LastValue(viewID int64) (platform.TextEditingValue, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[viewID]
	return v, ok
}

// Config returns the last configuration pushed to the given view.
func (b *LoopbackBackend) Config(viewID int64) (platform.TextInputViewConfig, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.configs[viewID]
	return c, ok
}

// CreatedViews returns the IDs of all views created on this backend.
func (b *LoopbackBackend) CreatedViews() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int64(nil), b.created...)
}

// TypeText simulates the user replacing the content of the given view,
// with the caret placed at the end.
func (b *LoopbackBackend) TypeText(viewID int64, text string) {
	platform.GetTextInputRegistry().HandleTextChanged(viewID, text, len(text), len(text))
}

// PressAction simulates the user pressing the keyboard action button.
func (b *LoopbackBackend) PressAction(viewID int64, action platform.TextInputAction) {
	platform.GetTextInputRegistry().HandleAction(viewID, action)
}
