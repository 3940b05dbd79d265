package eventbus

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type createdEvent struct {
	ID uint
}

type deletedEvent struct {
	ID uint
}

func TestPublish_DispatchesToMatchingSubscribers(t *testing.T) {
	bus := NewEventPublisher(logrus.New())

	var got *createdEvent
	bus.Subscribe(func(event *createdEvent) { got = event })
	bus.Subscribe(func(event *deletedEvent) { t.Fatal("wrong handler invoked") })

	bus.Publish(&createdEvent{ID: 42})

	require.NotNil(t, got)
	require.EqualValues(t, 42, got.ID)
}

func TestPublish_RecoversFromPanickingHandler(t *testing.T) {
	bus := NewEventPublisher(logrus.New())

	var secondCalled bool
	bus.Subscribe(func(event *createdEvent) { panic("boom") })
	bus.Subscribe(func(event *createdEvent) { secondCalled = true })

	require.NotPanics(t, func() { bus.Publish(&createdEvent{ID: 1}) })
	require.True(t, secondCalled)
}

func TestClear(t *testing.T) {
	bus := NewEventPublisher(logrus.New())

	bus.Subscribe(func(event *createdEvent) { t.Fatal("cleared handler invoked") })
	require.Equal(t, 1, bus.SubscribersCount())

	bus.Clear()
	require.Equal(t, 0, bus.SubscribersCount())

	bus.Publish(&createdEvent{ID: 1})
}

func TestMatchSignature(t *testing.T) {
	handler := func(event *createdEvent) {}

	require.True(t, MatchSignature(handler, []interface{}{&createdEvent{}}))
	require.False(t, MatchSignature(handler, []interface{}{&deletedEvent{}}))
	require.False(t, MatchSignature(handler, []interface{}{&createdEvent{}, &deletedEvent{}}))
	require.False(t, MatchSignature("not a func", []interface{}{&createdEvent{}}))
}
