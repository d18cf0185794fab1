package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolCreateAlive(t *testing.T) {
	p := NewEntityPool()

	a := p.Create()
	b := p.Create()

	require.NotEqual(t, a, b)
	assert.True(t, p.Alive(a))
	assert.True(t, p.Alive(b))
	assert.False(t, a.IsZero())
}

func TestZeroIDNeverAlive(t *testing.T) {
	p := NewEntityPool()
	p.Create()

	assert.False(t, p.Alive(EntityID(0)))
	assert.True(t, EntityID(0).IsZero())
}

func TestDestroyInvalidatesStaleReference(t *testing.T) {
	p := NewEntityPool()

	a := p.Create()
	p.Destroy(a)
	assert.False(t, p.Alive(a))

	// slot is recycled with a bumped generation
	b := p.Create()
	assert.Equal(t, a.Index(), b.Index())
	assert.NotEqual(t, a.Generation(), b.Generation())
	assert.True(t, p.Alive(b))
	assert.False(t, p.Alive(a), "stale id must stay dead after recycle")
}

func TestDoubleDestroyIsNoop(t *testing.T) {
	p := NewEntityPool()

	a := p.Create()
	p.Destroy(a)
	p.Destroy(a) // stale

	b := p.Create()
	c := p.Create()
	assert.NotEqual(t, b.Index(), c.Index(), "free list must not hold duplicates")
}
