// Package restoration provides serializable state buckets for saving and
// restoring user-visible state, such as form field contents, across host
// restarts.
package restoration

import (
	goerrors "errors"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a requested key is absent from the bucket.
var ErrNotFound = goerrors.New("restoration: key not found")

// Bucket holds restorable values keyed by string. Buckets nest: each child
// bucket is addressed by its own ID, letting widget subtrees own isolated
// namespaces.
type Bucket struct {
	mu       sync.RWMutex
	values   map[string]any
	children map[string]*Bucket
}

// bucketData is the serialized shape of a bucket.
type bucketData struct {
	Values   map[string]any         `yaml:"values,omitempty"`
	Children map[string]*bucketData `yaml:"children,omitempty"`
}

// NewBucket creates an empty bucket.
func NewBucket() *Bucket {
	return &Bucket{
		values:   make(map[string]any),
		children: make(map[string]*Bucket),
	}
}

// Put stores a value under key, replacing any previous value.
func (b *Bucket) Put(key string, value any) {
	b.mu.Lock()
	b.values[key] = value
	b.mu.Unlock()
}

// Remove deletes the value under key.
func (b *Bucket) Remove(key string) {
	b.mu.Lock()
	delete(b.values, key)
	b.mu.Unlock()
}

// Get returns the raw value under key.
func (b *Bucket) Get(key string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.values[key]
	return v, ok
}

// GetString returns the string under key, or ErrNotFound.
func (b *Bucket) GetString(key string) (string, error) {
	v, ok := b.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", ErrNotFound
	}
	return s, nil
}

// GetBool returns the bool under key, or ErrNotFound.
func (b *Bucket) GetBool(key string) (bool, error) {
	v, ok := b.Get(key)
	if !ok {
		return false, ErrNotFound
	}
	value, ok := v.(bool)
	if !ok {
		return false, ErrNotFound
	}
	return value, nil
}

// GetInt returns the int under key, or ErrNotFound. YAML decodes integers
// as int, so no widening is attempted.
func (b *Bucket) GetInt(key string) (int, error) {
	v, ok := b.Get(key)
	if !ok {
		return 0, ErrNotFound
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	}
	return 0, ErrNotFound
}

// Keys returns the value keys present in the bucket.
func (b *Bucket) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	return keys
}

// Child returns the child bucket with the given ID, creating it if needed.
func (b *Bucket) Child(id string) *Bucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	child, ok := b.children[id]
	if !ok {
		child = NewBucket()
		b.children[id] = child
	}
	return child
}

// HasChild reports whether a child bucket with the given ID exists.
func (b *Bucket) HasChild(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.children[id]
	return ok
}

// Encode serializes the bucket tree to YAML.
func (b *Bucket) Encode() ([]byte, error) {
	return yaml.Marshal(b.toData())
}

// Decode deserializes a bucket tree previously produced by Encode.
func Decode(data []byte) (*Bucket, error) {
	var raw bucketData
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return fromData(&raw), nil
}

func (b *Bucket) toData() *bucketData {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data := &bucketData{}
	if len(b.values) > 0 {
		data.Values = make(map[string]any, len(b.values))
		for k, v := range b.values {
			data.Values[k] = v
		}
	}
	if len(b.children) > 0 {
		data.Children = make(map[string]*bucketData, len(b.children))
		for id, child := range b.children {
			data.Children[id] = child.toData()
		}
	}
	return data
}

func fromData(data *bucketData) *Bucket {
	bucket := NewBucket()
	for k, v := range data.Values {
		bucket.values[k] = v
	}
	for id, child := range data.Children {
		bucket.children[id] = fromData(child)
	}
	return bucket
}
