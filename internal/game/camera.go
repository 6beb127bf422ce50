package game

import "math"

// Crash shake.
const (
	CrashShakeIntensity = 9.0
	CrashShakeDuration  = 0.45
)

// Camera maps world pixels to the framebuffer. The whole road is always in
// view; only shake moves it.
type Camera struct {
	X, Y float64 // world-pixel space, camera centre
	Zoom float64 // screen pixels per world pixel

	ShakeX, ShakeY float64 // current offset in world pixels
	ShakeTimer     float64
	ShakeIntensity float64
}

// Fit centres the world and zooms so it fills the framebuffer without
// cropping.
func (c *Camera) Fit(fbW, fbH int) {
	if fbW <= 0 || fbH <= 0 {
		return
	}
	c.Zoom = math.Min(float64(fbW)/WorldWidth, float64(fbH)/WorldHeight)
	c.X = WorldWidth / 2
	c.Y = WorldHeight / 2
}

// AddShake keeps the stronger of the current and requested shake.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and picks this frame's offset.
func (c *Camera) UpdateShake(dt float64, seed uint64) {
	if c.ShakeTimer <= 0 {
		c.ShakeX, c.ShakeY = 0, 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer = math.Max(c.ShakeTimer-dt, 0)
	t := c.ShakeTimer
	rr := NewRand(seed ^ uint64(t*10000))
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.ShakeX = rr.RangeF(-mag, mag)
	c.ShakeY = rr.RangeF(-mag, mag)
}

// EffectivePos returns the camera centre with shake applied.
func (c *Camera) EffectivePos() (float64, float64) {
	return c.X + c.ShakeX, c.Y + c.ShakeY
}

// ToScreen projects a world point into framebuffer pixels.
func (c *Camera) ToScreen(wx, wy float64, fbW, fbH int) (float64, float64) {
	cx, cy := c.EffectivePos()
	return (wx-cx)*c.Zoom + float64(fbW)/2, (wy-cy)*c.Zoom + float64(fbH)/2
}
