package core

import (
	"slices"
	"sync"
)

// BuildOwner tracks dirty elements that need rebuilding.
type BuildOwner struct {
	dirty    []Element
	dirtySet map[Element]bool
	mu       sync.Mutex

	// OnNeedsFrame is called when a new element is scheduled for rebuild,
	// signalling the host that a frame should be produced. This is necessary
	// for on-demand frame scheduling where the host's loop is paused until
	// explicitly requested.
	OnNeedsFrame func()
}

// NewBuildOwner creates a new BuildOwner.
func NewBuildOwner() *BuildOwner {
	return &BuildOwner{}
}

// ScheduleBuild marks an element as needing rebuild.
func (b *BuildOwner) ScheduleBuild(element Element) {
	added := func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.dirtySet[element] {
			return false
		}
		if b.dirtySet == nil {
			b.dirtySet = make(map[Element]bool)
		}
		b.dirtySet[element] = true
		b.dirty = append(b.dirty, element)
		return true
	}()

	if added && b.OnNeedsFrame != nil {
		b.OnNeedsFrame()
	}
}

// NeedsWork returns true if there are dirty elements pending rebuild.
func (b *BuildOwner) NeedsWork() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.dirty) > 0
}

// FlushBuild rebuilds all dirty elements in depth order.
func (b *BuildOwner) FlushBuild() {
	for {
		b.mu.Lock()
		if len(b.dirty) == 0 {
			b.mu.Unlock()
			return
		}

		slices.SortFunc(b.dirty, func(a, b Element) int {
			return a.Depth() - b.Depth()
		})

		dirty := b.dirty
		b.dirty = nil
		clear(b.dirtySet)
		b.mu.Unlock()

		for _, element := range dirty {
			if mountable, ok := element.(interface{ isMounted() bool }); ok && !mountable.isMounted() {
				continue
			}
			element.RebuildIfNeeded()
		}
	}
}
