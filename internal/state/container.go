// Package state implements the application state container: named
// slices with subscribe/notify semantics. The container is the single
// mutation point for application state; everything else reads
// snapshots or goes through named actions that call Set.
package state

import (
	"fmt"
	"reflect"
	"sync"
)

// Slice declares one named portion of application state with its
// default value. Declaration order fixes notification order.
type Slice struct {
	Name    string
	Default any
}

// Unsubscribe removes a previously registered subscriber.
type Unsubscribe func()

type subscriber struct {
	id int
	fn func(any)
}

type delivery struct {
	fn    func(any)
	value any
}

// Container is an explicitly constructed state store. It is not a
// package-level singleton; tests build as many independent instances
// as they need.
type Container struct {
	mu          sync.Mutex
	order       []string
	defaults    map[string]any
	values      map[string]any
	subscribers map[string][]subscriber
	nextSubID   int

	// notifying marks an in-flight notification batch. A Set issued
	// while a batch is running (typically from inside a subscriber
	// callback) is queued on pending and applied after the batch
	// completes, never delivered re-entrantly.
	notifying bool
	pending   []map[string]any
}

// New constructs a container with the given slices. Panics on a
// duplicate slice name, which is always a programming error.
func New(slices ...Slice) *Container {
	c := &Container{
		defaults:    make(map[string]any, len(slices)),
		values:      make(map[string]any, len(slices)),
		subscribers: make(map[string][]subscriber),
	}
	for _, s := range slices {
		if _, dup := c.defaults[s.Name]; dup {
			panic(fmt.Sprintf("state: duplicate slice %q", s.Name))
		}
		c.order = append(c.order, s.Name)
		c.defaults[s.Name] = s.Default
		c.values[s.Name] = s.Default
	}
	return c
}

// Get returns the current value of a slice. Unknown names return nil.
func (c *Container) Get(name string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[name]
}

// Set merges the partial update into the container and notifies
// subscribers of every changed key, in slice declaration order.
// Unknown keys are rejected; a typo'd slice name should fail loudly
// rather than create an undeclared slice.
func (c *Container) Set(partial map[string]any) error {
	c.mu.Lock()
	for name := range partial {
		if _, ok := c.defaults[name]; !ok {
			c.mu.Unlock()
			return fmt.Errorf("state: unknown slice %q", name)
		}
	}

	if c.notifying {
		c.pending = append(c.pending, partial)
		c.mu.Unlock()
		return nil
	}

	c.notifying = true
	c.mu.Unlock()

	c.drain(partial, false)
	return nil
}

// Reset restores every slice to its declared default and notifies all
// subscribers, again in declaration order, whether or not the value
// differs from the default.
func (c *Container) Reset() {
	c.mu.Lock()
	full := make(map[string]any, len(c.order))
	for _, name := range c.order {
		full[name] = c.defaults[name]
	}

	if c.notifying {
		c.pending = append(c.pending, full)
		c.mu.Unlock()
		return
	}

	c.notifying = true
	c.mu.Unlock()

	c.drain(full, true)
}

// Subscribe registers a callback invoked with the new value whenever
// the named slice changes. The returned handle removes it.
func (c *Container) Subscribe(name string, fn func(any)) Unsubscribe {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextSubID++
	id := c.nextSubID
	c.subscribers[name] = append(c.subscribers[name], subscriber{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		subs := c.subscribers[name]
		for i, s := range subs {
			if s.id == id {
				c.subscribers[name] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// drain applies the batch and then every batch queued while it was
// being delivered. Callbacks run with the mutex released so that a
// re-entrant Set queues via the notifying flag instead of
// deadlocking. forceAll delivers every key in the first batch even if
// its value is unchanged (Reset semantics).
func (c *Container) drain(batch map[string]any, forceAll bool) {
	for {
		c.mu.Lock()
		changed := c.merge(batch, forceAll)
		forceAll = false

		var deliveries []delivery
		for _, name := range changed {
			v := c.values[name]
			for _, s := range c.subscribers[name] {
				deliveries = append(deliveries, delivery{fn: s.fn, value: v})
			}
		}
		c.mu.Unlock()

		for _, d := range deliveries {
			d.fn(d.value)
		}

		c.mu.Lock()
		if len(c.pending) == 0 {
			c.notifying = false
			c.mu.Unlock()
			return
		}
		batch = c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()
	}
}

// merge writes the batch into values and returns the changed keys in
// declaration order. Callers hold c.mu.
func (c *Container) merge(batch map[string]any, forceAll bool) []string {
	var changed []string
	for _, name := range c.order {
		v, ok := batch[name]
		if !ok {
			continue
		}
		if !forceAll && reflect.DeepEqual(c.values[name], v) {
			continue
		}
		c.values[name] = v
		changed = append(changed, name)
	}
	return changed
}
