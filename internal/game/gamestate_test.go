package game

import (
	"math"
	"testing"

	"github.com/Korport/RacingGame/internal/leaderboard"
	"github.com/Korport/RacingGame/internal/storage"
)

func newTestSession(t *testing.T) (*Session, *leaderboard.Store) {
	t.Helper()
	board := leaderboard.New(storage.NewMemKV())
	return NewSession(1, TierNormal, board), board
}

func TestStepSteersRightAtConstantSpeed(t *testing.T) {
	s, _ := newTestSession(t)
	x0 := s.World.Player.X
	const dt = 1.0 / 60
	const n = 10
	for i := 0; i < n; i++ {
		s.Step(dt, Input{Right: true})
	}
	want := math.Min(x0+PlayerSpeed*dt*n, s.World.Player.MaxX())
	if got := s.World.Player.X; math.Abs(got-want) > 1e-9 {
		t.Fatalf("player x after %d steps = %v, want %v", n, got, want)
	}
	if s.World.Player.DX != PlayerSpeed {
		t.Fatalf("velocity = %v, want %v", s.World.Player.DX, PlayerSpeed)
	}

	// Holding long enough pins the car to the right kerb.
	for i := 0; i < 120; i++ {
		s.World.Obstacles = s.World.Obstacles[:0]
		s.Step(dt, Input{Right: true})
	}
	if got := s.World.Player.X; got != s.World.Player.MaxX() {
		t.Fatalf("player x = %v, want clamped to %v", got, s.World.Player.MaxX())
	}
}

func TestStepKeepsPlayerOnRoad(t *testing.T) {
	s, _ := newTestSession(t)
	r := NewRand(99)
	p := &s.World.Player
	for i := 0; i < 2000; i++ {
		if !s.Running() {
			s.Reset(TierNormal)
		}
		in := Input{Left: r.Chance(0.5), Right: r.Chance(0.5)}
		s.Step(r.RangeF(0, 0.1), in)
		if p.X < RoadX+RoadInset || p.X > RoadX+RoadWidth-RoadInset-p.W {
			t.Fatalf("step %d: player x %v left the road", i, p.X)
		}
	}
}

func TestStepOpposingInputsCancel(t *testing.T) {
	s, _ := newTestSession(t)
	x0 := s.World.Player.X
	s.Step(0.1, Input{Left: true, Right: true})
	if s.World.Player.X != x0 || s.World.Player.DX != 0 {
		t.Fatalf("left+right moved the car to %v (dx %v)", s.World.Player.X, s.World.Player.DX)
	}
}

func TestScoreAccruesAtFixedRate(t *testing.T) {
	s, _ := newTestSession(t)
	var reported int
	s.Events.Subscribe(EventScore, func(e Event) { reported = e.Score })
	for i := 0; i < 4; i++ {
		s.Step(0.25, Input{})
	}
	if s.Score != 120 {
		t.Fatalf("score after 1s = %d, want 120", s.Score)
	}
	if reported != s.Score {
		t.Fatalf("score event carried %d, want %d", reported, s.Score)
	}
}

func TestSpawnTimerDropsTraffic(t *testing.T) {
	s, _ := newTestSession(t)
	s.Step(InitialSpawnInterval+0.01, Input{})
	if len(s.World.Obstacles) == 0 {
		t.Fatalf("no obstacle after one spawn interval")
	}
	if s.SpawnTimer != 0 {
		t.Fatalf("spawn timer = %v, want reset to 0", s.SpawnTimer)
	}
}

func TestAdvanceCullsTrafficAndWrapsScenery(t *testing.T) {
	w := NewWorld(5)
	w.Obstacles = append(w.Obstacles,
		Obstacle{X: 100, Y: WorldHeight + ObstacleCull - 1, W: 30, H: 50},
		Obstacle{X: 200, Y: 0, W: 30, H: 50},
	)
	w.Dashes = []Dash{{Y: WorldHeight + DashWrap - 1}}
	w.Roadside = []Decoration{{X: 10, Y: WorldHeight + RoadsideWrap - 1, W: 20, H: 20, Kind: DecorBush}}

	w.Advance(0.1, 200)

	if len(w.Obstacles) != 1 || w.Obstacles[0].X != 200 {
		t.Fatalf("obstacles after advance = %+v, want only the upper one", w.Obstacles)
	}
	if w.Obstacles[0].Y != 20 {
		t.Fatalf("obstacle y = %v, want 20", w.Obstacles[0].Y)
	}
	if got := w.Dashes[0].Y; got != -WorldHeight-DashWrap {
		t.Fatalf("dash y = %v, want wrapped to %v", got, -WorldHeight-DashWrap)
	}
	d := w.Roadside[0]
	if d.Y > -80 || d.Y < -220 {
		t.Fatalf("recycled decoration y = %v, want in [-220,-80]", d.Y)
	}
	if d.X+d.W > RoadX && d.X < RoadX+RoadWidth {
		t.Fatalf("recycled decoration %+v sits on the road", d)
	}
}

func TestCrashHappensOnceAndFreezesWorld(t *testing.T) {
	s, board := newTestSession(t)
	p := s.World.Player
	s.Score = 300
	// Two cars on top of the player at once.
	s.World.Obstacles = append(s.World.Obstacles,
		Obstacle{X: p.X, Y: p.Y, W: 30, H: 40},
		Obstacle{X: p.X + 4, Y: p.Y + 10, W: 30, H: 40},
	)
	var crashes []Event
	s.Events.Subscribe(EventCrash, func(e Event) { crashes = append(crashes, e) })

	s.Step(1.0/60, Input{})
	if s.State != StateCrashed {
		t.Fatalf("state = %v, want crashed", s.State)
	}
	elapsed, score, x := s.Elapsed, s.Score, s.World.Player.X
	for i := 0; i < 5; i++ {
		s.Step(1.0/60, Input{Left: true})
	}
	if len(crashes) != 1 {
		t.Fatalf("crash events = %d, want 1", len(crashes))
	}
	if s.Elapsed != elapsed || s.Score != score || s.World.Player.X != x {
		t.Fatalf("world changed while crashed")
	}

	ev := crashes[0]
	if ev.Score != 300 || !ev.NewBest || ev.Best != 300 || ev.Rank != 0 {
		t.Fatalf("crash event = %+v", ev)
	}
	entries := board.Entries()
	if len(entries) != 1 || entries[0].Score != 300 || entries[0].TS != ev.Entry.TS {
		t.Fatalf("leaderboard = %+v, want the crashed run", entries)
	}
	if board.Best() != 300 {
		t.Fatalf("best = %d, want 300", board.Best())
	}

	s.Reset(TierHard)
	if !s.Running() || s.Score != 0 || len(s.World.Obstacles) != 0 || s.Elapsed != 40 {
		t.Fatalf("reset left state=%v score=%d obstacles=%d elapsed=%v",
			s.State, s.Score, len(s.World.Obstacles), s.Elapsed)
	}
	if s.Best != 300 {
		t.Fatalf("best lost on reset: %d", s.Best)
	}
}

func TestResetRelaysScenery(t *testing.T) {
	s, _ := newTestSession(t)
	w := s.World
	w.Dashes = []Dash{{Y: 5}}
	w.Roadside = nil
	w.Player.X = w.Player.MaxX()

	s.Reset(TierNormal)
	if len(w.Dashes) == 0 || w.Dashes[0].Y != -WorldHeight {
		t.Fatalf("dashes not relaid: %+v", w.Dashes)
	}
	if len(w.Roadside) == 0 {
		t.Fatalf("roadside not relaid")
	}
	for _, d := range w.Roadside {
		if r := d.X + d.W; d.X < RoadX+RoadWidth && r > RoadX {
			t.Fatalf("decoration on the road: %+v", d)
		}
	}
	if got, want := w.Player.X, WorldWidth/2-w.Player.W/2; got != want {
		t.Fatalf("player x = %v, want %v", got, want)
	}
}

func TestCrashBelowBestKeepsBest(t *testing.T) {
	board := leaderboard.New(storage.NewMemKV())
	board.SaveBest(1000)
	s := NewSession(2, TierNormal, board)
	p := s.World.Player
	s.World.Obstacles = append(s.World.Obstacles, Obstacle{X: p.X, Y: p.Y, W: 10, H: 10})
	s.Score = 50
	var got Event
	s.Events.Subscribe(EventCrash, func(e Event) { got = e })
	s.Step(0.01, Input{})
	if got.NewBest || got.Best != 1000 || board.Best() != 1000 {
		t.Fatalf("crash below best changed it: %+v, stored %d", got, board.Best())
	}
}

func TestSessionWithoutBoardStillCrashes(t *testing.T) {
	s := NewSession(4, TierEasy, nil)
	p := s.World.Player
	s.World.Obstacles = append(s.World.Obstacles, Obstacle{X: p.X, Y: p.Y, W: 10, H: 10})
	var rank = 99
	s.Events.Subscribe(EventCrash, func(e Event) { rank = e.Rank })
	s.Step(0.01, Input{})
	if s.Running() || rank != -1 {
		t.Fatalf("running=%v rank=%d, want crashed with rank -1", s.Running(), rank)
	}
}
