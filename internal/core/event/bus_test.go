package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ping struct{ N int }

func TestEventsVisibleNextFrame(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(ev ping) { got = append(got, ev.N) })

	Emit(b, ping{N: 1})
	b.DispatchAll()
	assert.Empty(t, got, "same-frame events stay in the back buffer")

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{1}, got)
}

func TestSwapClearsOldFrame(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(ev ping) { got = append(got, ev.N) })

	Emit(b, ping{N: 1})
	b.SwapBuffers()
	b.DispatchAll()
	b.SwapBuffers() // frame with no emissions
	b.DispatchAll()

	assert.Equal(t, []int{1}, got, "events must not be redelivered")
}

func TestNilBusDropsEmit(t *testing.T) {
	assert.NotPanics(t, func() {
		Emit[ping](nil, ping{N: 7})
	})
}

func TestMultipleHandlers(t *testing.T) {
	b := NewBus()
	calls := 0
	Subscribe(b, func(ping) { calls++ })
	Subscribe(b, func(ping) { calls++ })

	Emit(b, ping{})
	b.SwapBuffers()
	b.DispatchAll()

	assert.Equal(t, 2, calls)
}
