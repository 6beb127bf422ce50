package game

import (
	"math"
	"testing"
)

func TestCameraFitKeepsWholeWorldVisible(t *testing.T) {
	var c Camera
	for _, fb := range [][2]int{{420, 700}, {1008, 1680}, {1920, 1080}, {300, 900}} {
		c.Fit(fb[0], fb[1])
		x0, y0 := c.ToScreen(0, 0, fb[0], fb[1])
		x1, y1 := c.ToScreen(WorldWidth, WorldHeight, fb[0], fb[1])
		if x0 < -1e-9 || y0 < -1e-9 || x1 > float64(fb[0])+1e-9 || y1 > float64(fb[1])+1e-9 {
			t.Fatalf("fb %v: world maps to (%v,%v)-(%v,%v)", fb, x0, y0, x1, y1)
		}
		if math.Abs(x1-x0-float64(fb[0])) > 1e-6 && math.Abs(y1-y0-float64(fb[1])) > 1e-6 {
			t.Fatalf("fb %v: world fills neither axis", fb)
		}
	}
}

func TestCameraFitIgnoresEmptyFramebuffer(t *testing.T) {
	c := Camera{Zoom: 2}
	c.Fit(0, 700)
	if c.Zoom != 2 {
		t.Fatalf("zoom changed to %v on an empty framebuffer", c.Zoom)
	}
}

func TestCameraShakeDecaysToRest(t *testing.T) {
	c := Camera{Zoom: 1}
	c.AddShake(CrashShakeIntensity, CrashShakeDuration)
	c.AddShake(1, 0.1)
	if c.ShakeIntensity != CrashShakeIntensity || c.ShakeTimer != CrashShakeDuration {
		t.Fatalf("weaker shake overrode the crash shake: %+v", c)
	}
	for i := 0; i < 60; i++ {
		c.UpdateShake(1.0/60, 5)
		if math.Abs(c.ShakeX) > CrashShakeIntensity || math.Abs(c.ShakeY) > CrashShakeIntensity {
			t.Fatalf("frame %d: offset (%v,%v) beyond intensity", i, c.ShakeX, c.ShakeY)
		}
	}
	c.UpdateShake(1.0/60, 5)
	if x, y := c.EffectivePos(); x != c.X || y != c.Y {
		t.Fatalf("camera still shaking after the timer ran out")
	}
}
