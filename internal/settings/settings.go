// Package settings persists the player's start-screen and settings-screen
// choices in an ini file.
package settings

import (
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/Korport/RacingGame/internal/game"
)

const (
	FileName = "settings.ini"
	section  = "game"
)

type Settings struct {
	Skin       game.Skin
	Music      bool // in-race music; the start screen has its own mute
	Difficulty game.Tier
}

func Default() Settings {
	return Settings{Skin: game.SkinRaceCar, Music: true, Difficulty: game.TierNormal}
}

// Load reads path. A missing file yields defaults; unknown or malformed
// values fall back to their default one by one.
func Load(path string) (Settings, error) {
	s := Default()
	cfg, err := ini.LoadSources(ini.LoadOptions{Loose: true}, path)
	if err != nil {
		return s, fmt.Errorf("load settings: %w", err)
	}
	sec := cfg.Section(section)
	if v := sec.Key("skin").String(); v != "" {
		if skin, err := game.ParseSkin(v); err == nil {
			s.Skin = skin
		}
	}
	s.Music = sec.Key("music").MustBool(s.Music)
	if v := sec.Key("difficulty").String(); v != "" {
		if tier, err := game.ParseTier(v); err == nil {
			s.Difficulty = tier
		}
	}
	return s, nil
}

func (s Settings) Save(path string) error {
	cfg := ini.Empty()
	sec := cfg.Section(section)
	sec.Key("skin").SetValue(s.Skin.String())
	sec.Key("music").SetValue(fmt.Sprint(s.Music))
	sec.Key("difficulty").SetValue(s.Difficulty.String())
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
