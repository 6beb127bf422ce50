package desktop

import (
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Korport/RacingGame/internal/game"
)

// Car sprites are tiny pixel-art images stretched over the car's rect,
// front at the top.
const (
	carTexW = 8
	carTexH = 14
	treeTex = 16
)

type carStyle struct {
	body, trim game.RGB
	stripe     bool // centre racing stripe in the trim colour
	boxy       bool // short windscreen, long flat roof
	lightBar   bool
	bed        bool // open load bed behind the cab
}

type pixmap struct {
	w, h int
	pix  []uint8
}

func newPixmap(w, h int) *pixmap {
	return &pixmap{w: w, h: h, pix: make([]uint8, w*h*4)}
}

func (p *pixmap) set(x, y int, col game.RGB) {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return
	}
	i := (y*p.w + x) * 4
	p.pix[i+0] = col.R
	p.pix[i+1] = col.G
	p.pix[i+2] = col.B
	p.pix[i+3] = 255
}

func (p *pixmap) at(x, y int) game.RGB {
	i := (y*p.w + x) * 4
	return game.RGB{R: p.pix[i], G: p.pix[i+1], B: p.pix[i+2]}
}

func (p *pixmap) row(y, x0, x1 int, col game.RGB) {
	for x := x0; x <= x1; x++ {
		p.set(x, y, col)
	}
}

func carPixels(s carStyle) *pixmap {
	p := newPixmap(carTexW, carTexH)
	glass := game.Palette.Glass
	roof := s.body.Mul(200)

	// Bands front to back: bumper, hood, windscreen, roof, rear window, trunk, bumper.
	p.row(0, 1, 6, s.trim)
	for y := 1; y < carTexH-1; y++ {
		p.row(y, 0, 7, s.body)
	}
	p.row(carTexH-1, 1, 6, s.trim)

	if s.boxy {
		p.row(2, 1, 6, glass)
		p.row(3, 1, 6, glass)
		for y := 4; y < carTexH-2; y++ {
			p.row(y, 1, 6, s.body.Mul(215))
		}
	} else {
		p.row(4, 1, 6, glass)
		p.row(5, 1, 6, glass)
		for y := 6; y <= 8; y++ {
			p.row(y, 1, 6, roof)
		}
		p.row(9, 1, 6, glass)
	}
	if s.bed {
		for y := 8; y < carTexH-1; y++ {
			p.row(y, 1, 6, s.body.Mul(120))
		}
	}
	if s.stripe {
		for y := 1; y < carTexH-1; y++ {
			if p.at(3, y) == glass {
				continue
			}
			p.set(3, y, s.trim)
			p.set(4, y, s.trim)
		}
	}
	if s.lightBar {
		p.row(7, 1, 3, game.RGB{R: 230, G: 40, B: 40})
		p.row(7, 4, 6, game.RGB{R: 40, G: 90, B: 235})
	}

	// Tyres stick out at the corners.
	for _, y := range []int{2, 3, carTexH - 4, carTexH - 3} {
		p.set(0, y, game.Palette.Tyre)
		p.set(7, y, game.Palette.Tyre)
	}
	return p
}

func obstacleStyle(k game.ObstacleKind) carStyle {
	s := carStyle{body: game.ObstacleColor(k), trim: game.RGB{R: 200, G: 200, B: 205}}
	switch k {
	case game.ObstaclePolice:
		s.trim = game.RGB{R: 30, G: 30, B: 34}
		s.lightBar = true
	case game.ObstaclePickup:
		s.bed = true
	case game.ObstacleSemi:
		s.boxy = true
		s.trim = game.RGB{R: 90, G: 90, B: 96}
	case game.ObstacleSUV:
		s.boxy = true
	}
	return s
}

func skinStyle(sk game.Skin) carStyle {
	c := sk.Config()
	return carStyle{
		body:     c.Body,
		trim:     c.Trim,
		stripe:   c.Stripe,
		boxy:     c.Boxy,
		lightBar: sk == game.SkinPolice,
	}
}

// decorPixels draws a tree canopy or bush seen from above: a disc, cone or
// tall oval lit from the top left.
func decorPixels(k game.DecorKind) *pixmap {
	p := newPixmap(treeTex, treeTex)
	base, mid, top := game.Palette.TreeBase, game.Palette.TreeMid, game.Palette.TreeTop
	rx, ry := 7.5, 7.5
	switch k {
	case game.DecorTreeTall:
		rx = 5.5
	case game.DecorBush:
		base, mid, top = game.Palette.Bush.Mul(190), game.Palette.Bush, game.Palette.Bush.Add(30, 30, 20)
	}
	for y := 0; y < treeTex; y++ {
		for x := 0; x < treeTex; x++ {
			dx := (float64(x) + 0.5 - 8) / rx
			dy := (float64(y) + 0.5 - 8) / ry
			var inside bool
			if k == game.DecorTreePine {
				// Cone: narrow at the top, full width at the bottom.
				half := (float64(y) + 1) / treeTex * 7.5
				inside = math.Abs(float64(x)+0.5-8) <= half
			} else {
				inside = dx*dx+dy*dy <= 1
			}
			if !inside {
				continue
			}
			col := mid
			switch light := -dx - dy; {
			case light > 0.7:
				col = top
			case light < -0.8:
				col = base
			}
			p.set(x, y, col)
		}
	}
	return p
}

func uploadTexture(w, h int, pix []uint8) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return tex
}

func uploadPixmap(p *pixmap) uint32 { return uploadTexture(p.w, p.h, p.pix) }

// InitTextures builds every car, skin and roadside sprite.
func (r *Renderer) InitTextures() {
	for i := range r.obstacleTex {
		r.obstacleTex[i] = uploadPixmap(carPixels(obstacleStyle(game.ObstacleKind(i))))
	}
	r.skinTex = make([]uint32, len(game.Skins))
	for i, sk := range game.Skins {
		r.skinTex[i] = uploadPixmap(carPixels(skinStyle(sk)))
	}
	for i := range r.decorTex {
		r.decorTex[i] = uploadPixmap(decorPixels(game.DecorKind(i)))
	}
}

func (r *Renderer) ObstacleTexture(k game.ObstacleKind) uint32 {
	if int(k) >= len(r.obstacleTex) {
		return r.whiteTex
	}
	return r.obstacleTex[k]
}

func (r *Renderer) SkinTexture(s game.Skin) uint32 {
	if int(s) >= len(r.skinTex) {
		return r.whiteTex
	}
	return r.skinTex[s]
}

func (r *Renderer) DecorTexture(k game.DecorKind) uint32 {
	if int(k) >= len(r.decorTex) {
		return r.whiteTex
	}
	return r.decorTex[k]
}
