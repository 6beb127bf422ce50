package game

import "github.com/Korport/RacingGame/internal/leaderboard"

type GameState int

const (
	StateRunning GameState = iota // simulation advances every step
	StateCrashed                  // world frozen until Reset
)

func (s GameState) String() string {
	if s == StateCrashed {
		return "crashed"
	}
	return "running"
}

// Input is the steering state sampled once per step. Platform adapters own
// the mapping from keys, buttons or touches.
type Input struct {
	Left, Right bool
}

// Scoreboard persists finished runs. *leaderboard.Store satisfies it.
type Scoreboard interface {
	Record(score int) (leaderboard.Entry, bool)
	Rank(ts int64) int
	Best() int
	SaveBest(score int)
}

// Session is one player's game: world, timers, score and run state.
type Session struct {
	State  GameState
	World  *World
	Events *EventBus
	Tier   Tier

	Elapsed       float64 // difficulty clock, starts at Tier.StartOffset
	SpawnTimer    float64
	SpawnEvery    float64
	ObstacleSpeed float64
	Score         int
	Best          int

	scoreCarry float64
	board      Scoreboard
}

// NewSession builds a running session. board may be nil, in which case
// nothing is persisted.
func NewSession(seed uint64, tier Tier, board Scoreboard) *Session {
	s := &Session{
		World:  NewWorld(seed),
		Events: NewEventBus(),
		board:  board,
	}
	if board != nil {
		s.Best = board.Best()
	}
	s.Reset(tier)
	return s
}

// Reset starts a new run at the given tier's point on the difficulty ramp.
func (s *Session) Reset(tier Tier) {
	s.State = StateRunning
	s.Tier = tier
	s.Score = 0
	s.scoreCarry = 0
	s.Elapsed = tier.StartOffset()
	s.SpawnTimer = 0
	s.SpawnEvery = InitialSpawnInterval
	s.ObstacleSpeed = InitialObstacleSpeed

	w := s.World
	w.Obstacles = w.Obstacles[:0]
	w.ScrollRate = ScrollSpeed
	w.CenterPlayer()
	w.initDashes()
	w.InitRoadside()

	s.Events.Emit(Event{Type: EventReset, Score: 0, Best: s.Best})
}

func (s *Session) Running() bool { return s.State == StateRunning }

// Progress is the current position on the difficulty ramp in [0, 1].
func (s *Session) Progress() float64 { return Progress(s.Elapsed) }

// Step advances the world by dt seconds. It is a no-op once crashed.
func (s *Session) Step(dt float64, in Input) {
	if s.State != StateRunning || dt < 0 {
		return
	}
	w := s.World
	s.Elapsed += dt

	p := &w.Player
	p.DX = 0
	if in.Left {
		p.DX -= p.Speed
	}
	if in.Right {
		p.DX += p.Speed
	}
	p.X = clampF(p.X+p.DX*dt, p.MinX(), p.MaxX())

	s.SpawnEvery = SpawnInterval(s.Elapsed)
	s.ObstacleSpeed = ObstacleSpeed(s.Elapsed)

	s.SpawnTimer += dt
	if s.SpawnTimer >= s.SpawnEvery {
		s.SpawnTimer = 0
		w.SpawnObstacle()
		if w.rng.Chance(PairSpawnChance) {
			w.SpawnObstacle()
		}
	}

	w.Advance(dt, s.ObstacleSpeed)

	if s.checkCrash() {
		return
	}

	// Points accrue at a fixed rate; the fraction carries to the next step
	// so the total stays floor(rate * time) at any frame rate.
	s.scoreCarry += ScorePerSecond * dt
	if gained := int(s.scoreCarry); gained > 0 {
		s.Score += gained
		s.scoreCarry -= float64(gained)
	}
	s.Events.Emit(Event{Type: EventScore, Score: s.Score})
}

// checkCrash ends the run on the first obstacle touching the player.
func (s *Session) checkCrash() bool {
	pr := s.World.Player.Bounds()
	for i := range s.World.Obstacles {
		if pr.Overlaps(s.World.Obstacles[i].Bounds()) {
			s.crash()
			return true
		}
	}
	return false
}

func (s *Session) crash() {
	s.State = StateCrashed
	p := &s.World.Player
	ev := Event{
		Type:  EventCrash,
		X:     p.X + p.W/2,
		Y:     p.Y + p.H/2,
		Score: s.Score,
		Rank:  -1,
	}
	if s.board != nil {
		entry, stored := s.board.Record(s.Score)
		ev.Entry = entry
		if stored {
			ev.Rank = s.board.Rank(entry.TS)
		}
	}
	if s.Score > s.Best {
		s.Best = s.Score
		ev.NewBest = true
		if s.board != nil {
			s.board.SaveBest(s.Best)
		}
	}
	ev.Best = s.Best
	s.Events.Emit(ev)
}
