// Package observable provides a single-writer value holder that notifies
// subscribers on every change and can be read synchronously.
package observable

import "sync"

// Value holds a T. Subscribers are called synchronously, in subscription
// order, after each Set or Update, outside the internal lock.
type Value[T any] struct {
	mu     sync.RWMutex
	v      T
	nextID int
	subs   map[int]func(T)
	order  []int
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{v: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (o *Value[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.v
}

// Set replaces the value and notifies subscribers.
func (o *Value[T]) Set(v T) {
	o.mu.Lock()
	o.v = v
	subs := o.snapshot()
	o.mu.Unlock()
	for _, fn := range subs {
		fn(v)
	}
}

// Update replaces the value with fn(current) under the lock, then notifies.
func (o *Value[T]) Update(fn func(T) T) T {
	o.mu.Lock()
	o.v = fn(o.v)
	v := o.v
	subs := o.snapshot()
	o.mu.Unlock()
	for _, s := range subs {
		s(v)
	}
	return v
}

// Subscribe registers fn and returns a func that removes it.
func (o *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	o.order = append(o.order, id)
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			delete(o.subs, id)
			for i, v := range o.order {
				if v == id {
					o.order = append(o.order[:i], o.order[i+1:]...)
					break
				}
			}
		})
	}
}

// snapshot must be called with mu held.
func (o *Value[T]) snapshot() []func(T) {
	out := make([]func(T), 0, len(o.order))
	for _, id := range o.order {
		out = append(out, o.subs[id])
	}
	return out
}
