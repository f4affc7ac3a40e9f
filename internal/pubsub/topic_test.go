package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeDeliversSynchronously(t *testing.T) {
	topic := NewTopic[int]()
	var got []int
	unsubscribe := topic.Subscribe(func(v int) { got = append(got, v) })

	topic.Publish(1)
	topic.Publish(2)
	assert.Equal(t, []int{1, 2}, got)

	unsubscribe()
	unsubscribe()
	topic.Publish(3)
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 0, topic.Subscribers())
}

func TestHandlersRunInSubscriptionOrder(t *testing.T) {
	topic := NewTopic[string]()
	var order []string
	topic.Subscribe(func(string) { order = append(order, "first") })
	topic.Subscribe(func(string) { order = append(order, "second") })
	topic.Publish("x")
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestWatchKeepsOnlyLatest(t *testing.T) {
	topic := NewTopic[int]()
	ch, cancel := topic.Watch()
	defer cancel()

	for i := 1; i <= 5; i++ {
		topic.Publish(i)
	}

	require.Len(t, ch, 1)
	assert.Equal(t, 5, <-ch)

	select {
	case v := <-ch:
		t.Fatalf("unexpected backlog value %d", v)
	default:
	}
}

func TestWatchCancelClosesMailbox(t *testing.T) {
	topic := NewTopic[int]()
	ch, cancel := topic.Watch()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// publishing after cancel must not panic on the closed channel
	topic.Publish(1)
	assert.Equal(t, 0, topic.Subscribers())
}

func TestMailboxesFilledBeforeHandlersRun(t *testing.T) {
	topic := NewTopic[int]()
	ch, cancel := topic.Watch()
	defer cancel()

	var inMailbox []int
	topic.Subscribe(func(int) {
		select {
		case v := <-ch:
			inMailbox = append(inMailbox, v)
		default:
		}
	})

	topic.Publish(7)
	assert.Equal(t, []int{7}, inMailbox)
}
