package game

// ObstacleKind selects the traffic sprite and its size band.
type ObstacleKind uint8

const (
	ObstacleSedan ObstacleKind = iota
	ObstaclePolice
	ObstaclePickup
	ObstacleSemi
	ObstacleSUV
	obstacleKindCount
)

// Large kinds use the truck size band.
func (k ObstacleKind) Large() bool {
	return k == ObstaclePickup || k == ObstacleSemi
}

func (k ObstacleKind) String() string {
	switch k {
	case ObstacleSedan:
		return "sedan"
	case ObstaclePolice:
		return "police"
	case ObstaclePickup:
		return "pickup"
	case ObstacleSemi:
		return "semi"
	case ObstacleSUV:
		return "suv"
	}
	return "unknown"
}

// DecorKind selects the roadside sprite.
type DecorKind uint8

const (
	DecorTreeRound DecorKind = iota
	DecorTreePine
	DecorTreeTall
	DecorBush
	decorKindCount
)

type Player struct {
	X, Y  float64
	W, H  float64
	Speed float64
	DX    float64
}

func (p *Player) Bounds() Rect { return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H} }

// MinX and MaxX bound the player's left edge inside the road.
func (p *Player) MinX() float64 { return RoadX + RoadInset }
func (p *Player) MaxX() float64 { return RoadX + RoadWidth - p.W - RoadInset }

type Obstacle struct {
	X, Y, W, H float64
	Kind       ObstacleKind
}

func (o *Obstacle) Bounds() Rect { return Rect{X: o.X, Y: o.Y, W: o.W, H: o.H} }

// Decoration is a tree or bush beside the road. Left/right is implied by X.
type Decoration struct {
	X, Y, W, H float64
	Kind       DecorKind
}

// Left reports whether the decoration sits on the left verge.
func (d *Decoration) Left() bool { return d.X < RoadX }

// Dash is one lane-divider stripe on the road centre line.
type Dash struct {
	Y float64
}

// World holds every simulated entity. It is owned by a Session; renderers
// only read it.
type World struct {
	Player     Player
	Obstacles  []Obstacle
	Roadside   []Decoration
	Dashes     []Dash
	ScrollRate float64

	rng *Rand
}

func NewWorld(seed uint64) *World {
	w := &World{
		Obstacles:  make([]Obstacle, 0, 32),
		ScrollRate: ScrollSpeed,
		rng:        NewRand(seed),
	}
	w.Player = Player{W: PlayerWidth, H: PlayerHeight, Speed: PlayerSpeed}
	w.CenterPlayer()
	w.initDashes()
	w.InitRoadside()
	return w
}

// CenterPlayer puts the car back on the centre line at rest.
func (w *World) CenterPlayer() {
	p := &w.Player
	p.X = WorldWidth/2 - p.W/2
	p.Y = WorldHeight - PlayerBaseline
	p.DX = 0
}

func (w *World) initDashes() {
	w.Dashes = w.Dashes[:0]
	for y := -WorldHeight; y < WorldHeight*2; y += DashGap {
		w.Dashes = append(w.Dashes, Dash{Y: float64(y)})
	}
}

// InitRoadside lays out scenery rows from one screen above to two below.
func (w *World) InitRoadside() {
	w.Roadside = w.Roadside[:0]
	for y := -WorldHeight; y < WorldHeight*2; y += RoadsideGap {
		count := 1
		if w.rng.Chance(RoadsidePairOdds) {
			count = 2
		}
		for i := 0; i < count; i++ {
			var d Decoration
			w.randomizeDecoration(&d)
			d.Y = float64(y) + w.rng.RangeF(-RoadsideJitter, RoadsideJitter)
			w.Roadside = append(w.Roadside, d)
		}
	}
}

// randomizeDecoration picks kind, size and side; Y is left to the caller.
func (w *World) randomizeDecoration(d *Decoration) {
	d.Kind = DecorKind(w.rng.Intn(int(decorKindCount)))
	if d.Kind == DecorBush {
		d.W = w.rng.RangeF(20, 48)
		d.H = w.rng.RangeF(20, 48)
	} else {
		d.W = w.rng.RangeF(32, 72)
		d.H = w.rng.RangeF(56, 140)
	}
	if w.rng.Chance(0.5) {
		d.X = RoadX - 10 - d.W - w.rng.RangeF(4, 18)
	} else {
		d.X = RoadX + RoadWidth + 10 + w.rng.RangeF(4, 18)
	}
}

// recycleDecoration moves a decoration that scrolled off the bottom back above the top.
func (w *World) recycleDecoration(d *Decoration) {
	w.randomizeDecoration(d)
	d.Y = -w.rng.RangeF(80, 220)
}

// Advance scrolls traffic at speed and the scenery at ScrollRate for dt
// seconds. Traffic past the bottom is dropped; dashes and decorations wrap.
func (w *World) Advance(dt, speed float64) {
	kept := w.Obstacles[:0]
	for _, o := range w.Obstacles {
		o.Y += speed * dt
		if o.Y <= WorldHeight+ObstacleCull {
			kept = append(kept, o)
		}
	}
	w.Obstacles = kept

	for i := range w.Dashes {
		d := &w.Dashes[i]
		d.Y += w.ScrollRate * dt
		if d.Y > WorldHeight+DashWrap {
			d.Y = -WorldHeight - DashWrap
		}
	}

	for i := range w.Roadside {
		d := &w.Roadside[i]
		d.Y += w.ScrollRate * dt
		if d.Y > WorldHeight+RoadsideWrap {
			w.recycleDecoration(d)
		}
	}
}
