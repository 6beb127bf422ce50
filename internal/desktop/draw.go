package desktop

import "github.com/Korport/RacingGame/internal/game"

const (
	kerbWidth   = 6.0
	kerbStripe  = 24.0
	grassBand   = 48.0
	shadowShift = 4.0
)

// DrawWorld paints the verges, road, scenery and cars in world space.
func (r *Renderer) DrawWorld(w *game.World, skin game.Skin, running bool, scroll float64) {
	// Mown grass bands scroll with the road.
	off := mod(scroll, grassBand*2)
	for y := -grassBand*2 + off; y < game.WorldHeight; y += grassBand * 2 {
		r.DrawRect(game.Rect{X: 0, Y: y, W: game.RoadX, H: grassBand}, game.Palette.Grass)
		r.DrawRect(game.Rect{X: game.RoadX + game.RoadWidth, Y: y, W: game.WorldWidth - game.RoadX - game.RoadWidth, H: grassBand}, game.Palette.Grass)
	}

	r.DrawRect(game.Rect{X: game.RoadX, Y: 0, W: game.RoadWidth, H: game.WorldHeight}, game.Palette.Road)

	// Kerbs: alternating shoulder and alert stripes.
	off = mod(scroll, kerbStripe*2)
	for y := -kerbStripe*2 + off; y < game.WorldHeight; y += kerbStripe * 2 {
		for _, x := range []float64{game.RoadX - kerbWidth, game.RoadX + game.RoadWidth} {
			r.DrawRect(game.Rect{X: x, Y: y, W: kerbWidth, H: kerbStripe}, game.Palette.Shoulder)
			r.DrawRect(game.Rect{X: x, Y: y + kerbStripe, W: kerbWidth, H: kerbStripe}, game.Palette.Alert.Mul(200))
		}
	}

	for _, d := range w.Dashes {
		r.DrawRect(game.Rect{X: game.WorldWidth/2 - game.DashWidth/2, Y: d.Y, W: game.DashWidth, H: game.DashLength}, game.Palette.Dash)
	}

	for i := range w.Roadside {
		d := &w.Roadside[i]
		rect := game.Rect{X: d.X, Y: d.Y, W: d.W, H: d.H}
		r.DrawTexture(r.DecorTexture(d.Kind), shadowOf(rect), game.RGB{}, 0.3)
		r.DrawTexture(r.DecorTexture(d.Kind), rect, game.Palette.Text, 1)
	}

	for i := range w.Obstacles {
		o := &w.Obstacles[i]
		b := o.Bounds()
		tex := r.ObstacleTexture(o.Kind)
		r.DrawTexture(tex, shadowOf(b), game.RGB{}, 0.35)
		r.DrawTexture(tex, b, game.Palette.Text, 1)
	}

	p := w.Player.Bounds()
	tint := game.Palette.Text
	if !running {
		tint = game.Palette.Smoke.Add(60, 50, 50)
	}
	tex := r.SkinTexture(skin)
	r.DrawTexture(tex, shadowOf(p), game.RGB{}, 0.35)
	r.DrawTexture(tex, p, tint, 1)
}

func shadowOf(b game.Rect) game.Rect {
	return game.Rect{X: b.X + shadowShift, Y: b.Y + shadowShift, W: b.W, H: b.H}
}

func mod(v, m float64) float64 {
	v -= float64(int(v/m)) * m
	if v < 0 {
		v += m
	}
	return v
}
