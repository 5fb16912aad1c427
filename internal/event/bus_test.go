package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesSubscribers(t *testing.T) {
	bus := NewBus()
	got := make(chan interface{}, 2)

	bus.Subscribe(StoreChanged, func(data interface{}) { got <- data })
	bus.Subscribe(StoreChanged, func(data interface{}) { got <- data })

	change := Change{At: time.Now()}
	bus.Publish(StoreChanged, change)

	for i := 0; i < 2; i++ {
		select {
		case data := <-got:
			assert.Equal(t, change, data)
		case <-time.After(time.Second):
			t.Fatal("subscriber never called")
		}
	}
}

func TestCancelRemovesSubscriber(t *testing.T) {
	bus := NewBus()
	got := make(chan interface{}, 1)

	cancel := bus.Subscribe(StoreChanged, func(data interface{}) { got <- data })
	cancel()

	bus.Publish(StoreChanged, Change{At: time.Now()})

	select {
	case <-got:
		t.Fatal("cancelled subscriber was called")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishUnknownTopicIsNoop(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() { bus.Publish("unknown", nil) })
}
