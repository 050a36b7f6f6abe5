package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/borgmon/jumpin/pkg/clock"
	"github.com/borgmon/jumpin/pkg/ident"
	"github.com/borgmon/jumpin/pkg/models"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue() (*Queue, *clock.Fake) {
	c := clock.NewFake(time.Date(2024, 3, 25, 14, 0, 0, 0, time.UTC))
	return NewQueue(DefaultTTL, WithClock(c), WithIDs(ident.NewSequence("n"))), c
}

func messages(ns []models.Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Message
	}
	return out
}

func TestQueue_PushPrependsAndExpires(t *testing.T) {
	q, c := newTestQueue()

	id := q.Push("first")
	assert.Equal(t, "n-1", id)
	require.Len(t, q.List(), 1)
	assert.Equal(t, c.Now(), q.List()[0].CreatedAt)

	c.Advance(3 * time.Second)
	q.Push("second")
	assert.Equal(t, []string{"second", "first"}, messages(q.List()))

	c.Advance(5 * time.Second)
	assert.Equal(t, []string{"second"}, messages(q.List()), "first expires 8s after its push")

	c.Advance(3 * time.Second)
	assert.Empty(t, q.List())
	assert.Equal(t, 0, c.Pending())
}

func TestQueue_PresentUntilTTL(t *testing.T) {
	q, c := newTestQueue()

	q.Push("hello")
	c.Advance(DefaultTTL - time.Millisecond)
	assert.Equal(t, 1, q.Len())
	c.Advance(time.Millisecond)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_DismissCancelsExpiry(t *testing.T) {
	q, c := newTestQueue()

	a := q.Push("a")
	q.Push("b")

	assert.True(t, q.Dismiss(a))
	assert.False(t, q.Dismiss(a))
	assert.Equal(t, []string{"b"}, messages(q.List()))
	assert.Equal(t, 1, c.Pending())

	c.Advance(DefaultTTL)
	assert.Empty(t, q.List())
}

func TestQueue_OnChangeFiresForPushAndRemoval(t *testing.T) {
	q, c := newTestQueue()

	var sizes []int
	q.OnChange(func(ns []models.Notification) { sizes = append(sizes, len(ns)) })

	q.Push("a")
	q.Push("b")
	c.Advance(DefaultTTL)

	assert.Equal(t, []int{1, 2, 1, 0}, sizes)
}

func TestQueue_UnsubscribeStopsUpdates(t *testing.T) {
	q, _ := newTestQueue()

	var first, second int
	unsubscribe := q.OnChange(func([]models.Notification) { first++ })
	q.OnChange(func([]models.Notification) { second++ })
	require.Equal(t, 2, q.Listeners())

	q.Push("a")
	unsubscribe()
	unsubscribe()
	q.Push("b")

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 1, q.Listeners())
}

func TestQueue_CloseStopsTimers(t *testing.T) {
	q, c := newTestQueue()

	q.Push("a")
	q.Push("b")
	q.Close()

	assert.Equal(t, 0, c.Pending())
	assert.Empty(t, q.List())

	q.Push("late")
	assert.Empty(t, q.List())
}

func TestQueue_DefaultTTLWhenNonPositive(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewQueue(0).ttl)
}

func TestProperty_EveryPushExpiresIndependently(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("present after push, absent after ttl", prop.ForAll(
		func(gaps []int) bool {
			q, c := newTestQueue()

			pushedAt := map[string]time.Time{}
			for i, gap := range gaps {
				c.Advance(time.Duration(gap) * time.Millisecond)
				id := q.Push(fmt.Sprintf("m%d", i))
				if !contains(q.List(), id) {
					return false
				}
				pushedAt[id] = c.Now()
			}

			c.Advance(DefaultTTL / 2)
			now := c.Now()
			for id, at := range pushedAt {
				alive := now.Sub(at) < DefaultTTL
				if contains(q.List(), id) != alive {
					return false
				}
			}

			c.Advance(DefaultTTL)
			return q.Len() == 0
		},
		gen.SliceOf(gen.IntRange(0, 10000)),
	))

	properties.TestingRun(t)
}

func contains(ns []models.Notification, id string) bool {
	for _, n := range ns {
		if n.ID == id {
			return true
		}
	}
	return false
}
