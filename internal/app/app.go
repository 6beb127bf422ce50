// Package app is the screen flow shared by the desktop and terminal
// frontends: start screen, settings, the race itself and the results
// overlay with leaderboard name entry. Frontends translate their own input
// into Commands and runes and render from the exported state.
package app

import (
	"unicode"

	"github.com/Korport/RacingGame/internal/audio"
	"github.com/Korport/RacingGame/internal/game"
	"github.com/Korport/RacingGame/internal/leaderboard"
	"github.com/Korport/RacingGame/internal/settings"
)

type Screen int

const (
	ScreenMenu Screen = iota
	ScreenSettings
	ScreenRace
	ScreenResults
)

type Command int

const (
	CmdNone Command = iota
	CmdUp
	CmdDown
	CmdLeft
	CmdRight
	CmdConfirm
	CmdRestart
	CmdBack
	CmdErase
	CmdMute
	CmdSettings
)

// Settings screen rows.
const (
	RowMusic = iota
	RowDifficulty
	settingsRows
)

// Sounds is the slice of *audio.System the flow drives.
type Sounds interface {
	Play(audio.Sound)
	PlayMenuMusic()
	PlayDriveMusic()
	StopMusic()
	SetMenuMuted(bool)
}

type quiet struct{}

func (quiet) Play(audio.Sound)  {}
func (quiet) PlayMenuMusic()    {}
func (quiet) PlayDriveMusic()   {}
func (quiet) StopMusic()        {}
func (quiet) SetMenuMuted(bool) {}

// Results is the crash overlay state.
type Results struct {
	Crash  game.Event
	Top    []leaderboard.Entry
	Placed bool // new entry made the top TopN
	Naming bool // name prompt open
	Name   []rune
}

type Config struct {
	Seed         uint64
	Settings     settings.Settings
	SettingsPath string             // empty: choices are not persisted
	Board        *leaderboard.Store // nil: nothing is persisted
	Sounds       Sounds
	Logf         func(format string, args ...any)
}

type App struct {
	Screen      Screen
	Settings    settings.Settings
	Session     *game.Session
	Results     Results
	MenuMuted   bool
	SettingsRow int

	board        *leaderboard.Store
	settingsPath string
	sounds       Sounds
	logf         func(string, ...any)
	quit         bool

	steering   bool // last Update saw a steering key held
	typeLocked bool // steering held through the crash, not yet released
}

func New(cfg Config) *App {
	a := &App{
		Screen:       ScreenMenu,
		Settings:     cfg.Settings,
		board:        cfg.Board,
		settingsPath: cfg.SettingsPath,
		sounds:       cfg.Sounds,
		logf:         cfg.Logf,
	}
	if a.sounds == nil {
		a.sounds = quiet{}
	}
	if a.logf == nil {
		a.logf = func(string, ...any) {}
	}
	var board game.Scoreboard
	if cfg.Board != nil {
		board = cfg.Board
	}
	a.Session = game.NewSession(cfg.Seed, cfg.Settings.Difficulty, board)
	a.Session.Events.Subscribe(game.EventCrash, a.onCrash)
	return a
}

// Start puts the flow on the start screen with its music.
func (a *App) Start() {
	a.Screen = ScreenMenu
	a.sounds.SetMenuMuted(a.MenuMuted)
	a.sounds.PlayMenuMusic()
}

// Quit reports whether the player asked to leave from the start screen.
func (a *App) Quit() bool { return a.quit }

// Naming reports whether typed text belongs to the name prompt.
func (a *App) Naming() bool { return a.Screen == ScreenResults && a.Results.Naming }

// TypingLocked reports whether typed runes are still dropped because a
// steering key has been held since the crash.
func (a *App) TypingLocked() bool { return a.typeLocked }

// Update advances the race by one frame. dt is clamped to game.MaxFrameDelta
// so a stalled frame cannot tunnel the car through traffic. Frontends call it
// on every screen so key releases are seen after a crash.
func (a *App) Update(dt float64, in game.Input) {
	a.steering = in.Left || in.Right
	if !a.steering {
		a.typeLocked = false
	}
	if a.Screen != ScreenRace {
		return
	}
	if dt < 0 {
		dt = 0
	}
	if dt > game.MaxFrameDelta {
		dt = game.MaxFrameDelta
	}
	a.Session.Step(dt, in)
}

func (a *App) Handle(cmd Command) {
	switch a.Screen {
	case ScreenMenu:
		a.handleMenu(cmd)
	case ScreenSettings:
		a.handleSettings(cmd)
	case ScreenRace:
		if cmd == CmdBack {
			a.toMenu()
		}
	case ScreenResults:
		a.handleResults(cmd)
	}
}

// Type feeds one character to the name prompt.
func (a *App) Type(r rune) {
	if !a.Naming() || a.typeLocked || !unicode.IsPrint(r) {
		return
	}
	if len(a.Results.Name) < leaderboard.MaxNameLen {
		a.Results.Name = append(a.Results.Name, r)
	}
}

func (a *App) handleMenu(cmd Command) {
	switch cmd {
	case CmdLeft:
		a.Settings.Skin = a.Settings.Skin.Prev()
		a.sounds.Play(audio.SoundSelect)
		a.saveSettings()
	case CmdRight:
		a.Settings.Skin = a.Settings.Skin.Next()
		a.sounds.Play(audio.SoundSelect)
		a.saveSettings()
	case CmdConfirm, CmdRestart:
		a.startRace()
	case CmdMute:
		a.MenuMuted = !a.MenuMuted
		a.sounds.SetMenuMuted(a.MenuMuted)
	case CmdSettings:
		a.Screen = ScreenSettings
		a.SettingsRow = RowMusic
		a.sounds.Play(audio.SoundSelect)
	case CmdBack:
		a.quit = true
	}
}

func (a *App) handleSettings(cmd Command) {
	switch cmd {
	case CmdUp:
		a.SettingsRow = (a.SettingsRow + settingsRows - 1) % settingsRows
	case CmdDown:
		a.SettingsRow = (a.SettingsRow + 1) % settingsRows
	case CmdLeft, CmdRight, CmdConfirm, CmdRestart:
		switch a.SettingsRow {
		case RowMusic:
			a.Settings.Music = !a.Settings.Music
		case RowDifficulty:
			if cmd == CmdLeft {
				a.Settings.Difficulty = a.Settings.Difficulty.Prev()
			} else {
				a.Settings.Difficulty = a.Settings.Difficulty.Next()
			}
		}
		a.sounds.Play(audio.SoundSelect)
	case CmdBack, CmdSettings:
		a.saveSettings()
		a.Screen = ScreenMenu
	}
}

func (a *App) handleResults(cmd Command) {
	if a.Results.Naming {
		switch cmd {
		case CmdConfirm:
			a.saveName()
		case CmdErase:
			if n := len(a.Results.Name); n > 0 {
				a.Results.Name = a.Results.Name[:n-1]
			}
		case CmdBack:
			a.Results.Naming = false
		}
		return
	}
	switch cmd {
	case CmdConfirm, CmdRestart:
		a.startRace()
	case CmdBack:
		a.toMenu()
	}
}

func (a *App) startRace() {
	a.Session.Reset(a.Settings.Difficulty)
	a.Results = Results{}
	a.Screen = ScreenRace
	a.sounds.StopMusic()
	a.sounds.Play(audio.SoundStart)
	if a.Settings.Music {
		a.sounds.PlayDriveMusic()
	}
}

func (a *App) toMenu() {
	a.Screen = ScreenMenu
	a.Results = Results{}
	a.sounds.PlayMenuMusic()
}

func (a *App) onCrash(ev game.Event) {
	a.Screen = ScreenResults
	a.Results = Results{Crash: ev}
	if a.board != nil {
		a.Results.Top = a.board.Top(leaderboard.TopN)
	}
	a.Results.Placed = ev.Rank >= 0 && ev.Rank < leaderboard.TopN
	a.Results.Naming = a.Results.Placed
	a.typeLocked = a.steering
	a.sounds.StopMusic()
	a.sounds.Play(audio.SoundCrash)
	if a.Results.Placed || ev.NewBest {
		a.sounds.Play(audio.SoundHighScore)
	}
}

func (a *App) saveName() {
	a.Results.Naming = false
	if a.board == nil {
		return
	}
	a.board.Rename(a.Results.Crash.Entry.TS, leaderboard.SanitizeName(string(a.Results.Name)))
	a.Results.Top = a.board.Top(leaderboard.TopN)
}

func (a *App) saveSettings() {
	if a.settingsPath == "" {
		return
	}
	if err := a.Settings.Save(a.settingsPath); err != nil {
		a.logf("settings: %v", err)
	}
}
