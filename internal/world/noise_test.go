package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bridgefall/server/internal/world"
)

func TestNoiseNoneIsStrictNoOp(t *testing.T) {
	fx := newTestWorld(t, nil)
	b := &world.Building{Door: pt(3, 3), Latent: 1}
	fx.st.buildings = []*world.Building{b}

	fx.w.EmitNoise(pt(3, 3), world.NoiseNone)

	assert.Empty(t, fx.w.Zombies())
	assert.Equal(t, 1, b.Latent)
}

func TestNoiseWakesLatentZombie(t *testing.T) {
	fx := newTestWorld(t, func(p *world.Params, st *stubTerrain) {
		p.Noise.Chance[world.NoiseHigh] = 1.0
		st.buildings = []*world.Building{{Door: pt(3, 3), Latent: 2}}
	})

	fx.w.EmitNoise(pt(5, 5), world.NoiseHigh)

	zs := fx.w.Zombies()
	require.Len(t, zs, 1)
	assert.Equal(t, world.ZombieNormal, zs[0].Kind)
	assert.Equal(t, pt(3, 3), zs[0].Pos, "spawns at the building door")
	assert.True(t, zs[0].HasDest)
	assert.Equal(t, pt(5, 5), zs[0].Dest, "heads for the noise source")
	assert.Equal(t, 1, fx.st.buildings[0].Latent)
}

func TestNoiseNeverChainTriggers(t *testing.T) {
	fx := newTestWorld(t, func(p *world.Params, st *stubTerrain) {
		p.Noise.Chance[world.NoiseHigh] = 1.0
		st.buildings = []*world.Building{
			{Door: pt(3, 3), Latent: 1},
			{Door: pt(7, 7), Latent: 1},
		}
	})

	// one emission, two buildings in radius: exactly one zombie each — the
	// woken zombies never re-trigger the city
	fx.w.EmitNoise(pt(5, 5), world.NoiseHigh)
	assert.Len(t, fx.w.Zombies(), 2)

	// everything latent is spent; a second emission wakes nobody
	fx.w.EmitNoise(pt(5, 5), world.NoiseHigh)
	assert.Len(t, fx.w.Zombies(), 2)
}

func TestZeroChanceNeverWakes(t *testing.T) {
	fx := newTestWorld(t, func(p *world.Params, st *stubTerrain) {
		p.Noise.Chance[world.NoiseLow] = 0
		p.Noise.Radius[world.NoiseLow] = 10
		st.buildings = []*world.Building{{Door: pt(3, 3), Latent: 5}}
	})

	for i := 0; i < 50; i++ {
		fx.w.EmitNoise(pt(3, 3), world.NoiseLow)
	}
	assert.Empty(t, fx.w.Zombies())
}

func TestNoiseAlertsZombiesInRadiusOnly(t *testing.T) {
	fx := newTestWorld(t, nil)
	near := fx.w.SpawnZombie(world.ZombieNormal, pt(2, 2))
	far := fx.w.SpawnZombie(world.ZombieNormal, pt(30, 30))
	fx.w.AddZombie(near)
	fx.w.AddZombie(far)

	fx.w.EmitNoise(pt(5, 5), world.NoiseHigh)

	assert.True(t, near.HasDest)
	assert.Equal(t, pt(5, 5), near.Dest)
	assert.False(t, far.HasDest, "out of earshot")
}

func TestEngagedZombieIgnoresNoise(t *testing.T) {
	fx := newTestWorld(t, nil)
	depot := placeDepot(t, fx.w, pt(5, 5))

	engaged := fx.w.SpawnZombie(world.ZombieBridge, pt(5, 6))
	engaged.TargetDepot = depot.ID()
	fx.w.AddZombie(engaged)

	distant := fx.w.SpawnZombie(world.ZombieBridge, pt(5, 9))
	distant.TargetDepot = depot.ID()
	fx.w.AddZombie(distant)

	fx.w.EmitNoise(pt(0, 0), world.NoiseHigh)

	assert.False(t, engaged.HasDest, "mid-assault, noise doesn't peel it off")
	assert.True(t, distant.HasDest)
	assert.Equal(t, pt(0, 0), distant.Dest)
}
