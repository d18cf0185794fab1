package world_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bridgefall/server/internal/world"
)

func TestTowerShootsNearestZombie(t *testing.T) {
	fx := newTestWorld(t, func(p *world.Params, _ *stubTerrain) {
		p.Zombies = slowZombies(time.Hour, time.Hour)
		p.TowerCooldown = time.Second
		p.TowerDamage = 50
		p.TowerRange = 6
	})
	placeDepot(t, fx.w, pt(0, 0))
	_, err := fx.w.AddStructure(world.StructureTower, pt(2, 2))
	require.NoError(t, err)

	near := fx.w.SpawnZombie(world.ZombieBridge, pt(4, 4))
	far := fx.w.SpawnZombie(world.ZombieBridge, pt(6, 6))
	fx.w.AddZombie(near)
	fx.w.AddZombie(far)

	fx.w.Advance(time.Second) // placement-armed cooldown winds down
	require.Len(t, fx.w.Zombies(), 2)

	fx.w.Advance(time.Second) // one shot, one kill

	require.Len(t, fx.w.Zombies(), 1)
	assert.Same(t, far, fx.w.Zombies()[0])
	assert.True(t, near.Dead)
	assert.Equal(t, 1, fx.pr.removals(near.ID()))

	// gunfire carries: the survivor turns toward the tower
	assert.Equal(t, pt(2, 2), far.Dest)
}

func TestTowerHoldsFireOutOfRange(t *testing.T) {
	fx := newTestWorld(t, func(p *world.Params, _ *stubTerrain) {
		p.Zombies = slowZombies(time.Hour, time.Hour)
		p.TowerCooldown = time.Second
		p.TowerRange = 3
	})
	placeDepot(t, fx.w, pt(0, 0))
	_, err := fx.w.AddStructure(world.StructureTower, pt(2, 2))
	require.NoError(t, err)

	z := fx.w.SpawnZombie(world.ZombieBridge, pt(9, 9))
	fx.w.AddZombie(z)

	fx.w.Advance(time.Second)
	fx.w.Advance(time.Second)
	fx.w.Advance(time.Second)

	assert.Len(t, fx.w.Zombies(), 1)
	assert.Equal(t, int32(40), z.HP)
}

func TestWorkshopDropsPickupThatExpires(t *testing.T) {
	fx := newTestWorld(t, func(p *world.Params, _ *stubTerrain) {
		p.WorkshopInterval = time.Second
		p.PickupTTL = 3 * time.Second
	})
	placeDepot(t, fx.w, pt(0, 0))
	_, err := fx.w.AddStructure(world.StructureWorkshop, pt(5, 5))
	require.NoError(t, err)

	fx.w.Advance(time.Second) // production timer winds down
	assert.Empty(t, fx.w.Pickups())

	fx.w.Advance(time.Second) // scrap hits the ground
	require.Len(t, fx.w.Pickups(), 1)
	p := fx.w.Pickups()[0]
	assert.Equal(t, pt(4, 4), p.Pos, "lands on a free neighboring tile")
	assert.Equal(t, 2*time.Second, p.TTL)

	fx.w.Advance(5 * time.Second) // nobody picked it up
	assert.Empty(t, fx.w.Pickups())
	assert.Equal(t, 1, fx.pr.removals(p.ID()))
}

func TestStructuresViewAndDestroyIdempotence(t *testing.T) {
	fx := newTestWorld(t, nil)
	d := placeDepot(t, fx.w, pt(0, 0))
	s, err := fx.w.AddStructure(world.StructureObstacle, pt(3, 3))
	require.NoError(t, err)

	all := fx.w.Structures()
	require.Len(t, all, 2)
	assert.Equal(t, world.StructureDepot, all[0].Kind())
	assert.Equal(t, world.StructureObstacle, all[1].Kind())

	fx.w.DestroyStructure(s)
	fx.w.DestroyStructure(s)

	assert.Len(t, fx.w.Structures(), 1)
	assert.Equal(t, 1, fx.st.unregistered)
	assert.Equal(t, 1, fx.pr.removals(s.ID()))
	assert.False(t, d.Destroyed())
}
