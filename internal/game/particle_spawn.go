package game

import "math"

// SpawnCrash bursts debris in the colours of both cars plus smoke, sparks
// and a flash at (x, y).
func (ps *ParticleSystem) SpawnCrash(x, y float64, player, other RGB) {
	r := NewRand(ps.seed ^ uint64(int64(x)*73856093) ^ uint64(int64(y)*19349663))

	for i := 0; i < 56; i++ {
		base := player
		if i%3 == 0 {
			base = other
		}
		ang := r.RangeF(0, math.Pi*2)
		spd := r.RangeF(60, 220)
		ps.Add(Particle{
			X: x + r.RangeF(-6, 6), Y: y + r.RangeF(-8, 8),
			VX: math.Cos(ang) * spd, VY: math.Sin(ang) * spd,
			VZ:   r.RangeF(60, 180),
			Size: r.RangeF(2.5, 5), MaxLife: r.RangeF(0.6, 1.2),
			Col:  base.Add(int(r.RangeF(-18, 18)), int(r.RangeF(-18, 18)), int(r.RangeF(-18, 18))),
			Kind: ParticleDebris,
		})
	}

	for i := 0; i < 28; i++ {
		ang := r.RangeF(0, math.Pi*2)
		spd := r.RangeF(140, 320)
		ps.Add(Particle{
			X: x, Y: y,
			VX: math.Cos(ang) * spd, VY: math.Sin(ang) * spd,
			Size: r.RangeF(1.5, 2.5), MaxLife: r.RangeF(0.15, 0.4),
			Col: Palette.Spark, Kind: ParticleSpark,
		})
	}

	for i := 0; i < 10; i++ {
		ps.Add(Particle{
			X: x + r.RangeF(-4, 4), Y: y + r.RangeF(-4, 4),
			Size: r.RangeF(26, 44), MaxLife: r.RangeF(0.18, 0.35),
			Col: Palette.Glow, Kind: ParticleGlow,
		})
	}

	// Smoke starts a little late and rises slowly.
	for i := 0; i < 36; i++ {
		ps.Add(Particle{
			X: x + r.RangeF(-10, 10), Y: y + r.RangeF(-10, 10),
			VX: r.RangeF(-14, 14), VY: r.RangeF(-40, -12),
			Size: r.RangeF(8, 16), Life: -r.RangeF(0, 0.25), MaxLife: r.RangeF(0.9, 1.8),
			Col: Palette.Smoke, Kind: ParticleSmoke,
		})
	}
}
