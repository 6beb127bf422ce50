package game

import "math"

const (
	particleGravity    = 420.0
	particleBounce     = 0.3
	particleGroundFric = 0.45
	particleAirDrag    = 1.8
)

// particleDecays holds exponential drag factors computed once per frame.
type particleDecays struct {
	debrisXY float64
	sparkXY  float64
	smokeXY  float64
}

func computeDecays(dt float64) particleDecays {
	return particleDecays{
		debrisXY: math.Exp(-particleAirDrag * dt),
		sparkXY:  math.Exp(-3.0 * dt),
		smokeXY:  math.Exp(-1.2 * dt),
	}
}

// Update ages and moves every particle, dropping the expired ones.
func (ps *ParticleSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	d := computeDecays(dt)

	for i := 0; i < len(ps.P); {
		p := &ps.P[i]
		p.Life += dt
		if p.Life >= p.MaxLife {
			ps.P[i] = ps.P[len(ps.P)-1]
			ps.P = ps.P[:len(ps.P)-1]
			continue
		}
		if p.Life < 0 {
			i++
			continue
		}

		switch p.Kind {
		case ParticleDebris:
			p.VX *= d.debrisXY
			p.VY *= d.debrisXY
			p.VZ -= particleGravity * dt
			p.Z += p.VZ * dt
			if p.Z < 0 {
				p.Z = 0
				p.VZ = -p.VZ * particleBounce
				p.VX *= particleGroundFric
				p.VY *= particleGroundFric
			}
		case ParticleSpark:
			p.VX *= d.sparkXY
			p.VY *= d.sparkXY
		case ParticleSmoke:
			p.VX *= d.smokeXY
			p.VY *= d.smokeXY
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		i++
	}
}
