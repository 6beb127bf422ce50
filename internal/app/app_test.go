package app

import (
	"path/filepath"
	"testing"

	"github.com/Korport/RacingGame/internal/audio"
	"github.com/Korport/RacingGame/internal/game"
	"github.com/Korport/RacingGame/internal/leaderboard"
	"github.com/Korport/RacingGame/internal/settings"
	"github.com/Korport/RacingGame/internal/storage"
)

type recorder struct {
	played    []audio.Sound
	menu      int
	drive     int
	stops     int
	menuMuted bool
}

func (r *recorder) Play(s audio.Sound)     { r.played = append(r.played, s) }
func (r *recorder) PlayMenuMusic()         { r.menu++ }
func (r *recorder) PlayDriveMusic()        { r.drive++ }
func (r *recorder) StopMusic()             { r.stops++ }
func (r *recorder) SetMenuMuted(m bool)    { r.menuMuted = m }
func (r *recorder) has(s audio.Sound) bool { return countOf(r.played, s) > 0 }

func countOf(list []audio.Sound, s audio.Sound) int {
	n := 0
	for _, x := range list {
		if x == s {
			n++
		}
	}
	return n
}

func newTestApp(t *testing.T) (*App, *recorder, *leaderboard.Store) {
	t.Helper()
	rec := &recorder{}
	board := leaderboard.New(storage.NewMemKV())
	a := New(Config{
		Seed:     1,
		Settings: settings.Default(),
		Board:    board,
		Sounds:   rec,
	})
	a.Start()
	return a, rec, board
}

// crash drops a car onto the player and steps once.
func crash(a *App) {
	p := a.Session.World.Player
	a.Session.World.Obstacles = append(a.Session.World.Obstacles,
		game.Obstacle{X: p.X, Y: p.Y, W: p.W, H: p.H})
	a.Update(1.0/60, game.Input{})
}

func TestMenuStartsRaceWithMusic(t *testing.T) {
	a, rec, _ := newTestApp(t)
	if a.Screen != ScreenMenu || rec.menu != 1 {
		t.Fatalf("start: screen=%v menu music=%d", a.Screen, rec.menu)
	}
	a.Handle(CmdRight)
	if a.Settings.Skin != game.SkinSportsCar {
		t.Fatalf("skin = %v, want sports car", a.Settings.Skin)
	}
	a.Handle(CmdConfirm)
	if a.Screen != ScreenRace || rec.drive != 1 || !rec.has(audio.SoundStart) {
		t.Fatalf("race start: screen=%v drive=%d sounds=%v", a.Screen, rec.drive, rec.played)
	}
}

func TestMusicOffSkipsDriveMusic(t *testing.T) {
	a, rec, _ := newTestApp(t)
	a.Settings.Music = false
	a.Handle(CmdConfirm)
	if rec.drive != 0 {
		t.Fatalf("drive music started with music off")
	}
}

func TestMenuMuteToggles(t *testing.T) {
	a, rec, _ := newTestApp(t)
	a.Handle(CmdMute)
	if !a.MenuMuted || !rec.menuMuted {
		t.Fatalf("mute not applied")
	}
	a.Handle(CmdMute)
	if a.MenuMuted || rec.menuMuted {
		t.Fatalf("unmute not applied")
	}
}

func TestUpdateOnlyRunsDuringRaceAndClampsDelta(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.Update(0.5, game.Input{})
	if a.Session.Score != 0 {
		t.Fatalf("menu frame advanced the race")
	}
	a.Handle(CmdConfirm)
	a.Update(1.0, game.Input{})
	if got := a.Session.Elapsed; got != game.MaxFrameDelta {
		t.Fatalf("elapsed after a 1s frame = %v, want %v", got, game.MaxFrameDelta)
	}
}

func TestCrashOpensResultsWithNamePrompt(t *testing.T) {
	a, rec, board := newTestApp(t)
	a.Handle(CmdConfirm)
	crash(a)
	if a.Screen != ScreenResults {
		t.Fatalf("screen = %v, want results", a.Screen)
	}
	if !a.Results.Placed || !a.Naming() || a.Results.Crash.Rank != 0 {
		t.Fatalf("results = %+v", a.Results)
	}
	if !rec.has(audio.SoundCrash) {
		t.Fatalf("no crash sound")
	}

	// Space while naming types a space instead of restarting.
	a.Handle(CmdRestart)
	if a.Screen != ScreenResults {
		t.Fatalf("restart fired during name entry")
	}
	for _, r := range "  Ada Lovelace the Great Engineer " {
		a.Type(r)
	}
	if len(a.Results.Name) != leaderboard.MaxNameLen {
		t.Fatalf("name length = %d, want capped at %d", len(a.Results.Name), leaderboard.MaxNameLen)
	}
	a.Handle(CmdErase)
	a.Handle(CmdConfirm)
	if a.Naming() {
		t.Fatalf("prompt still open after confirm")
	}
	top := board.Top(1)
	if len(top) != 1 || top[0].Name != "Ada Lovelace the" {
		t.Fatalf("stored entry = %+v", top)
	}
	if len(a.Results.Top) != 1 || a.Results.Top[0].Name != top[0].Name {
		t.Fatalf("overlay table not refreshed: %+v", a.Results.Top)
	}

	a.Handle(CmdRestart)
	if a.Screen != ScreenRace || !a.Session.Running() {
		t.Fatalf("restart: screen=%v running=%v", a.Screen, a.Session.Running())
	}
}

func TestSteeringHeldThroughCrashDoesNotType(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.Handle(CmdConfirm)
	p := a.Session.World.Player
	a.Session.World.Obstacles = append(a.Session.World.Obstacles,
		game.Obstacle{X: p.X - 40, Y: p.Y, W: p.W + 80, H: p.H})
	a.Update(1.0/60, game.Input{Right: true})
	if !a.Naming() || !a.TypingLocked() {
		t.Fatalf("naming=%v locked=%v after crash with steering held", a.Naming(), a.TypingLocked())
	}

	for range 4 {
		a.Type('d')
		a.Update(1.0/60, game.Input{Right: true})
	}
	if len(a.Results.Name) != 0 {
		t.Fatalf("held key typed %q", string(a.Results.Name))
	}

	a.Update(1.0/60, game.Input{})
	a.Type('d')
	if got := string(a.Results.Name); got != "d" {
		t.Fatalf("name after release = %q, want %q", got, "d")
	}
}

func TestBlankNameBecomesDefault(t *testing.T) {
	a, _, board := newTestApp(t)
	a.Handle(CmdConfirm)
	crash(a)
	a.Type(' ')
	a.Handle(CmdConfirm)
	if got := board.Top(1)[0].Name; got != leaderboard.DefaultName {
		t.Fatalf("name = %q, want %q", got, leaderboard.DefaultName)
	}
}

func TestNoPromptOutsideTopTen(t *testing.T) {
	a, _, board := newTestApp(t)
	for i := 0; i < leaderboard.TopN; i++ {
		board.Record(1000 + i)
	}
	a.Handle(CmdConfirm)
	crash(a)
	if a.Results.Placed || a.Naming() {
		t.Fatalf("score 0 placed in the top ten: %+v", a.Results)
	}
	a.Type('x')
	if len(a.Results.Name) != 0 {
		t.Fatalf("typing accepted without a prompt")
	}
	a.Handle(CmdBack)
	if a.Screen != ScreenMenu {
		t.Fatalf("back from results = %v, want menu", a.Screen)
	}
}

func TestSettingsPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), settings.FileName)
	a := New(Config{Seed: 2, Settings: settings.Default(), SettingsPath: path})
	a.Handle(CmdSettings)
	if a.Screen != ScreenSettings {
		t.Fatalf("screen = %v, want settings", a.Screen)
	}
	a.Handle(CmdConfirm) // music off
	a.Handle(CmdDown)
	a.Handle(CmdRight) // normal -> hard
	a.Handle(CmdBack)
	if a.Screen != ScreenMenu {
		t.Fatalf("screen = %v, want menu", a.Screen)
	}
	got, err := settings.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Music || got.Difficulty != game.TierHard {
		t.Fatalf("saved settings = %+v", got)
	}

	a.Handle(CmdConfirm)
	if a.Session.Elapsed != game.TierHard.StartOffset() {
		t.Fatalf("race started at %v, want hard offset", a.Session.Elapsed)
	}
}

func TestBackFromMenuQuits(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.Handle(CmdBack)
	if !a.Quit() {
		t.Fatalf("quit not requested")
	}
}

func TestWithoutBoardStillShowsResults(t *testing.T) {
	a := New(Config{Seed: 3, Settings: settings.Default()})
	a.Handle(CmdConfirm)
	crash(a)
	if a.Screen != ScreenResults || a.Results.Placed {
		t.Fatalf("results without board = %+v", a.Results)
	}
}
