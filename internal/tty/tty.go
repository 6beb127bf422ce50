// Package tty runs the racer in a terminal on tcell.
package tty

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Korport/RacingGame/internal/app"
	"github.com/Korport/RacingGame/internal/game"
)

// Terminals report key presses but not releases, so a steering key counts
// as held until holdWindow passes without a repeat.
const holdWindow = 250 * time.Millisecond

const frameRate = 60

type steering struct {
	left, right time.Time
}

func (s *steering) press(dir int, now time.Time) {
	if dir < 0 {
		s.left, s.right = now, time.Time{}
	} else {
		s.right, s.left = now, time.Time{}
	}
}

func (s *steering) sample(now time.Time) game.Input {
	return game.Input{
		Left:  !s.left.IsZero() && now.Sub(s.left) < holdWindow,
		Right: !s.right.IsZero() && now.Sub(s.right) < holdWindow,
	}
}

func (s *steering) release() { *s = steering{} }

type Terminal struct {
	screen tcell.Screen
	app    *app.App
	steer  steering
	quit   bool
}

func New(screen tcell.Screen, a *app.App) *Terminal {
	return &Terminal{screen: screen, app: a}
}

// Run opens the terminal, plays until the player quits and restores it.
func Run(a *app.App) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer s.Fini()
	s.HideCursor()
	s.Clear()

	t := New(s, a)
	t.Loop()
	return nil
}

// Loop pumps events and frames until quit.
func (t *Terminal) Loop() {
	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	tick := time.NewTicker(time.Second / frameRate)
	defer tick.Stop()

	t.app.Start()
	last := time.Now()
	for !t.quit && !t.app.Quit() {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch e := ev.(type) {
			case *tcell.EventResize:
				t.screen.Sync()
			case *tcell.EventKey:
				t.HandleKey(e, time.Now())
			}
		case now := <-tick.C:
			dt := now.Sub(last).Seconds()
			last = now
			t.app.Update(dt, t.steer.sample(now))
			t.Draw()
		}
	}
}

// HandleKey maps one key event onto the app.
func (t *Terminal) HandleKey(ev *tcell.EventKey, now time.Time) {
	if ev.Key() == tcell.KeyCtrlC {
		t.quit = true
		return
	}
	if t.app.Naming() {
		switch ev.Key() {
		case tcell.KeyEnter:
			t.app.Handle(app.CmdConfirm)
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			t.app.Handle(app.CmdErase)
		case tcell.KeyEscape:
			t.app.Handle(app.CmdBack)
		case tcell.KeyRune:
			if t.app.TypingLocked() {
				// Repeats of the steering key still held from the race.
				switch ev.Rune() {
				case 'a', 'A':
					t.steer.press(-1, now)
					return
				case 'd', 'D':
					t.steer.press(1, now)
					return
				}
			}
			t.app.Type(ev.Rune())
		}
		return
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		t.steer.press(-1, now)
		t.app.Handle(app.CmdLeft)
	case tcell.KeyRight:
		t.steer.press(1, now)
		t.app.Handle(app.CmdRight)
	case tcell.KeyUp:
		t.app.Handle(app.CmdUp)
	case tcell.KeyDown:
		t.app.Handle(app.CmdDown)
	case tcell.KeyEnter:
		t.app.Handle(app.CmdConfirm)
	case tcell.KeyEscape:
		t.steer.release()
		t.app.Handle(app.CmdBack)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			t.steer.press(-1, now)
			t.app.Handle(app.CmdLeft)
		case 'd', 'D':
			t.steer.press(1, now)
			t.app.Handle(app.CmdRight)
		case 'w', 'W':
			t.app.Handle(app.CmdUp)
		case 's', 'S':
			if t.app.Screen == app.ScreenRace {
				return
			}
			t.app.Handle(app.CmdSettings)
		case ' ', 'r', 'R':
			t.steer.release()
			t.app.Handle(app.CmdRestart)
		case 'm', 'M':
			t.app.Handle(app.CmdMute)
		case 'q', 'Q':
			if t.app.Screen == app.ScreenMenu {
				t.quit = true
			}
		}
	}
}
