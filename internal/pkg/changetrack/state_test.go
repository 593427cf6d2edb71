package changetrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_SetChanged(t *testing.T) {
	var s State
	invalidated, accepted := 0, 0
	s.OnInvalidated(func() { invalidated++ })
	s.OnChangesAccepted(func() { accepted++ })

	assert.False(t, s.IsChanged())

	t.Run("false to false is silent", func(t *testing.T) {
		s.SetChanged(false)
		assert.Equal(t, 0, invalidated)
		assert.Equal(t, 0, accepted)
	})

	t.Run("false to true fires invalidated once", func(t *testing.T) {
		s.SetChanged(true)
		s.SetChanged(true)
		assert.True(t, s.IsChanged())
		assert.Equal(t, 1, invalidated)
		assert.Equal(t, 0, accepted)
	})

	t.Run("true to false fires accepted once", func(t *testing.T) {
		s.SetChanged(false)
		s.SetChanged(false)
		assert.False(t, s.IsChanged())
		assert.Equal(t, 1, invalidated)
		assert.Equal(t, 1, accepted)
	})
}

func TestState_AcceptAlwaysNotifies(t *testing.T) {
	var s State
	accepted := 0
	s.OnChangesAccepted(func() { accepted++ })

	s.acceptChanges()
	s.acceptChanges()
	assert.Equal(t, 2, accepted)
	assert.False(t, s.IsChanged())
}

func TestState_ObserverOrderAndUnsubscribe(t *testing.T) {
	var s State
	var calls []string

	first := s.OnInvalidated(func() { calls = append(calls, "first") })
	s.OnInvalidated(func() { calls = append(calls, "second") })
	s.OnInvalidated(func() { calls = append(calls, "third") })

	s.SetChanged(true)
	assert.Equal(t, []string{"first", "second", "third"}, calls)

	calls = nil
	first.Unsubscribe()
	first.Unsubscribe()
	s.SetChanged(false)
	s.SetChanged(true)
	assert.Equal(t, []string{"second", "third"}, calls)
}

func TestState_UnsubscribeDuringNotification(t *testing.T) {
	var s State
	var calls []string

	var self Subscription
	self = s.OnInvalidated(func() {
		calls = append(calls, "once")
		self.Unsubscribe()
	})
	s.OnInvalidated(func() { calls = append(calls, "always") })

	s.SetChanged(true)
	s.SetChanged(false)
	s.SetChanged(true)

	assert.Equal(t, []string{"once", "always", "always"}, calls)
}

func TestState_NilCallbacks(t *testing.T) {
	var s State
	sub := s.OnInvalidated(nil)
	s.OnChangesAccepted(nil)

	assert.NotPanics(t, func() {
		s.SetChanged(true)
		s.acceptChanges()
		sub.Unsubscribe()
	})

	var zero Subscription
	assert.NotPanics(t, zero.Unsubscribe)
}
