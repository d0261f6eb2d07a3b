package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestContainer() *Container {
	return New(
		Slice{Name: "tasks", Default: []string{}},
		Slice{Name: "query", Default: ""},
		Slice{Name: "count", Default: 0},
	)
}

func TestGetReturnsDefaults(t *testing.T) {
	c := newTestContainer()

	require.Equal(t, []string{}, c.Get("tasks"))
	require.Equal(t, "", c.Get("query"))
	require.Nil(t, c.Get("missing"))
}

func TestSetNotifiesOnlyChangedKeys(t *testing.T) {
	c := newTestContainer()

	var queryCalls, countCalls int
	c.Subscribe("query", func(any) { queryCalls++ })
	c.Subscribe("count", func(any) { countCalls++ })

	require.NoError(t, c.Set(map[string]any{"query": "algebra", "count": 0}))

	require.Equal(t, 1, queryCalls)
	require.Equal(t, 0, countCalls, "unchanged value must not notify")
	require.Equal(t, "algebra", c.Get("query"))
}

func TestSetRejectsUnknownSlice(t *testing.T) {
	c := newTestContainer()

	err := c.Set(map[string]any{"nope": 1})
	require.Error(t, err)
}

func TestNotificationOrderFollowsDeclaration(t *testing.T) {
	c := newTestContainer()

	var order []string
	c.Subscribe("tasks", func(any) { order = append(order, "tasks") })
	c.Subscribe("query", func(any) { order = append(order, "query") })
	c.Subscribe("count", func(any) { order = append(order, "count") })

	// Map iteration order is random; delivery order must not be.
	require.NoError(t, c.Set(map[string]any{
		"count": 7,
		"tasks": []string{"a"},
		"query": "x",
	}))

	require.Equal(t, []string{"tasks", "query", "count"}, order)
}

func TestReentrantSetIsQueuedNotNested(t *testing.T) {
	c := newTestContainer()

	var seen []int
	c.Subscribe("query", func(any) {
		// Triggered mid-notification; must run after this batch.
		_ = c.Set(map[string]any{"count": 42})
		require.Equal(t, 0, c.Get("count"), "queued update must not apply mid-batch")
	})
	c.Subscribe("count", func(v any) { seen = append(seen, v.(int)) })

	require.NoError(t, c.Set(map[string]any{"query": "x"}))

	require.Equal(t, []int{42}, seen)
	require.Equal(t, 42, c.Get("count"))
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	c := newTestContainer()

	var calls int
	unsub := c.Subscribe("query", func(any) { calls++ })

	require.NoError(t, c.Set(map[string]any{"query": "a"}))
	unsub()
	require.NoError(t, c.Set(map[string]any{"query": "b"}))

	require.Equal(t, 1, calls)
}

func TestResetRestoresDefaultsAndNotifiesAll(t *testing.T) {
	c := newTestContainer()
	require.NoError(t, c.Set(map[string]any{"query": "x", "count": 3}))

	var notified []string
	c.Subscribe("tasks", func(any) { notified = append(notified, "tasks") })
	c.Subscribe("query", func(any) { notified = append(notified, "query") })
	c.Subscribe("count", func(any) { notified = append(notified, "count") })

	c.Reset()

	require.Equal(t, []string{"tasks", "query", "count"}, notified)
	require.Equal(t, "", c.Get("query"))
	require.Equal(t, 0, c.Get("count"))
}

func TestIndependentContainers(t *testing.T) {
	a := newTestContainer()
	b := newTestContainer()

	require.NoError(t, a.Set(map[string]any{"query": "only-a"}))

	require.Equal(t, "only-a", a.Get("query"))
	require.Equal(t, "", b.Get("query"))
}

func TestDuplicateSlicePanics(t *testing.T) {
	require.Panics(t, func() {
		New(Slice{Name: "x"}, Slice{Name: "x"})
	})
}
