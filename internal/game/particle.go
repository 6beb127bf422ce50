package game

import "math"

const MaxParticles = 1024

type ParticleKind uint8

const (
	ParticleDebris ParticleKind = iota
	ParticleSmoke
	ParticleGlow
	ParticleSpark
)

type Particle struct {
	X, Y   float64
	VX, VY float64
	Z, VZ  float64 // height above the road, for the debris arc

	Size    float64
	Life    float64 // negative = delayed start
	MaxLife float64

	Col  RGB
	Kind ParticleKind
}

// ParticleSystem is the crash burst. It lives outside the simulation and
// never affects collisions or score.
type ParticleSystem struct {
	Max    int
	P      []Particle
	seed   uint64
	ovrIdx int // circular overwrite index when full
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	if seed == 0 {
		seed = 1
	}
	return &ParticleSystem{
		Max:  maxParticles,
		P:    make([]Particle, 0, maxParticles),
		seed: seed,
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

// RenderData splits live particles into additive (glow, spark) and alpha
// blended buffers of [x, y, size, r, g, b, a, rotation] per particle.
func (ps *ParticleSystem) RenderData(glowBuf, normBuf []float32) ([]float32, []float32) {
	glowBuf = glowBuf[:0]
	normBuf = normBuf[:0]

	for _, p := range ps.P {
		if p.Life < 0 {
			continue
		}
		t := clampF(p.Life/p.MaxLife, 0, 1)

		a := 1.0 - t
		size := p.Size
		switch p.Kind {
		case ParticleDebris:
			a = 1.0 - t*t
			size *= 1.0 + math.Min(p.Z*0.02, 1.5)
		case ParticleSmoke:
			fadeIn := math.Min(t/0.18, 1)
			a = (1.0 - t) * fadeIn * 0.8
			size *= 1.0 + t*1.8
		case ParticleGlow:
			a = (1.0 - t) * 1.15
		}
		if a <= 0 {
			continue
		}
		ac := float32(clampF(a, 0, 1))
		rc, gc, bc := p.Col.Floats()
		glow := p.Kind == ParticleGlow || p.Kind == ParticleSpark
		if glow {
			rc *= ac
			gc *= ac
			bc *= ac
		}

		// Debris lifts toward the viewer as it flies, so it drifts up-screen.
		sx := float32(math.Round(p.X))
		sy := float32(math.Round(p.Y - p.Z*0.35))
		if glow {
			glowBuf = append(glowBuf, sx, sy, float32(size), rc, gc, bc, ac, 0)
		} else {
			normBuf = append(normBuf, sx, sy, float32(size), rc, gc, bc, ac, 0)
		}
	}
	return glowBuf, normBuf
}
