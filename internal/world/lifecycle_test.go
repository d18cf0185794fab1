package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bridgefall/server/internal/core/event"
	"github.com/bridgefall/server/internal/world"
)

func TestKillZombieIsIdempotent(t *testing.T) {
	fx := newTestWorld(t, nil)
	z := fx.w.SpawnZombie(world.ZombieBridge, pt(3, 3))
	fx.w.AddZombie(z)

	var killed int
	event.Subscribe(fx.w.Bus(), func(event.ZombieKilled) { killed++ })

	fx.w.KillZombie(z)
	fx.w.KillZombie(z)
	fx.w.KillZombie(z)

	assert.True(t, z.Dead)
	assert.Empty(t, fx.w.Zombies())
	assert.Equal(t, 1, fx.pr.removals(z.ID()), "one removal notification only")

	fx.w.Bus().SwapBuffers()
	fx.w.Bus().DispatchAll()
	assert.Equal(t, 1, killed)
}

func TestKillZombieRemovesByIdentity(t *testing.T) {
	fx := newTestWorld(t, nil)

	// two indistinguishable zombies on the same tile
	a := fx.w.SpawnZombie(world.ZombieNormal, pt(3, 3))
	b := fx.w.SpawnZombie(world.ZombieNormal, pt(3, 3))
	fx.w.AddZombie(a)
	fx.w.AddZombie(b)

	fx.w.KillZombie(a)

	require.Len(t, fx.w.Zombies(), 1)
	assert.Same(t, b, fx.w.Zombies()[0])
	assert.False(t, b.Dead)
}

func TestKillZombieNilIsSafe(t *testing.T) {
	fx := newTestWorld(t, nil)
	assert.NotPanics(t, func() { fx.w.KillZombie(nil) })
}

func TestLifecycleNotifications(t *testing.T) {
	fx := newTestWorld(t, nil)

	z := fx.w.SpawnZombie(world.ZombieBridge, pt(2, 2))
	fx.w.AddZombie(z)
	require.Len(t, fx.pr.added, 1)
	assert.Equal(t, "zombie", fx.pr.added[0].kind)
	assert.Equal(t, pt(2, 2), fx.pr.added[0].at)
	assert.Equal(t, z.ID(), fx.pr.added[0].id)

	fx.w.KillZombie(z)
	require.Len(t, fx.pr.removed, 1)
	assert.Equal(t, z.ID(), fx.pr.removed[0])
}

func TestVehicleAndSurvivorRemoval(t *testing.T) {
	fx := newTestWorld(t, nil)

	v := world.NewVehicle(nil)
	fx.w.AddVehicle(v)
	s := world.NewSurvivor(pt(1, 1))
	fx.w.AddSurvivor(s)
	require.Len(t, fx.pr.added, 2)

	fx.w.RemoveVehicle(v)
	fx.w.RemoveSurvivor(s)
	assert.Empty(t, fx.w.Vehicles())
	assert.Empty(t, fx.w.Survivors())
	assert.Equal(t, 1, fx.pr.removals(v.ID()))
	assert.Equal(t, 1, fx.pr.removals(s.ID()))

	// double removal is harmless
	fx.w.RemoveVehicle(v)
	fx.w.RemoveSurvivor(s)
	assert.Len(t, fx.pr.removed, 2)
}
