package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Korport/RacingGame/internal/game"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s != Default() {
		t.Fatalf("settings = %+v, want defaults %+v", s, Default())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	want := Settings{Skin: game.SkinTaxi, Music: false, Difficulty: game.TierExpert}
	if err := want.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(raw), "[game]") || !strings.Contains(string(raw), "taxi") {
		t.Fatalf("unexpected file contents:\n%s", raw)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadFallsBackPerKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	body := "[game]\nskin = hovercraft\nmusic = off\ndifficulty = Hard\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Skin != game.SkinRaceCar {
		t.Errorf("skin = %v, want default", s.Skin)
	}
	if s.Music {
		t.Errorf("music = on, want off")
	}
	if s.Difficulty != game.TierHard {
		t.Errorf("difficulty = %v, want hard", s.Difficulty)
	}
}
