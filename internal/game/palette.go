package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func (c RGB) Add(dr, dg, db int) RGB {
	return RGB{R: addChannel(c.R, dr), G: addChannel(c.G, dg), B: addChannel(c.B, db)}
}

func addChannel(v uint8, d int) uint8 {
	n := int(v) + d
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// Floats returns the colour as 0..1 components.
func (c RGB) Floats() (r, g, b float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

// LerpRGB blends a toward b by t in [0,1].
func LerpRGB(a, b RGB, t float64) RGB {
	t = clampF(t, 0, 1)
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5) }
	return RGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

var Palette = struct {
	Grass      RGB
	GrassDark  RGB
	Shoulder   RGB
	Road       RGB
	Dash       RGB
	Glass      RGB
	Tyre       RGB
	TreeBase   RGB
	TreeMid    RGB
	TreeTop    RGB
	Bush       RGB
	Trunk      RGB
	Smoke      RGB
	Glow       RGB
	Spark      RGB
	Text       RGB
	TextDim    RGB
	Accent     RGB
	Alert      RGB
	Gold       RGB
	MeterEmpty RGB
}{
	Grass:      RGB{R: 74, G: 122, B: 58},
	GrassDark:  RGB{R: 58, G: 101, B: 46},
	Shoulder:   RGB{R: 170, G: 166, B: 150},
	Road:       RGB{R: 60, G: 66, B: 79},
	Dash:       RGB{R: 235, G: 232, B: 210},
	Glass:      RGB{R: 40, G: 60, B: 90},
	Tyre:       RGB{R: 22, G: 22, B: 24},
	TreeBase:   RGB{R: 50, G: 85, B: 40},
	TreeMid:    RGB{R: 70, G: 110, B: 55},
	TreeTop:    RGB{R: 110, G: 150, B: 80},
	Bush:       RGB{R: 84, G: 128, B: 60},
	Trunk:      RGB{R: 96, G: 70, B: 44},
	Smoke:      RGB{R: 120, G: 120, B: 125},
	Glow:       RGB{R: 255, G: 200, B: 90},
	Spark:      RGB{R: 255, G: 236, B: 170},
	Text:       RGB{R: 255, G: 255, B: 255},
	TextDim:    RGB{R: 136, G: 153, B: 170},
	Accent:     RGB{R: 100, G: 255, B: 100},
	Alert:      RGB{R: 255, G: 80, B: 80},
	Gold:       RGB{R: 255, G: 215, B: 90},
	MeterEmpty: RGB{R: 40, G: 44, B: 52},
}

// ObstacleColor is the body paint of a traffic kind.
func ObstacleColor(k ObstacleKind) RGB {
	switch k {
	case ObstacleSedan:
		return RGB{R: 34, G: 34, B: 38}
	case ObstaclePolice:
		return RGB{R: 230, G: 230, B: 235}
	case ObstaclePickup:
		return RGB{R: 190, G: 40, B: 36}
	case ObstacleSemi:
		return RGB{R: 200, G: 200, B: 190}
	case ObstacleSUV:
		return RGB{R: 235, G: 196, B: 40}
	}
	return RGB{R: 128, G: 128, B: 128}
}

// MeterColor runs green to red as difficulty progress goes 0 to 1.
func MeterColor(progress float64) RGB {
	green := RGB{R: 46, G: 204, B: 64}
	yellow := RGB{R: 230, G: 210, B: 40}
	red := RGB{R: 230, G: 46, B: 46}
	if progress < 0.5 {
		return LerpRGB(green, yellow, progress*2)
	}
	return LerpRGB(yellow, red, (progress-0.5)*2)
}
