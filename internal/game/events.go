package game

import "github.com/Korport/RacingGame/internal/leaderboard"

type EventType int

const (
	EventScore EventType = iota // score changed during a running step
	EventCrash                  // run ended; fired once per run
	EventReset                  // new run started
)

type Event struct {
	Type  EventType
	X, Y  float64 // crash point, centre of the player car
	Score int

	// Crash only.
	Best    int
	NewBest bool
	Entry   leaderboard.Entry
	Rank    int // 0-based position of Entry, -1 when it was not stored
}

type EventHandler func(Event)

// EventBus fans session events out to presentation collaborators.
// Handlers run synchronously inside Session.Step.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
