package game

import (
	"fmt"
	"strings"
)

// Skin is the player's car paint job chosen on the start screen.
type Skin uint8

const (
	SkinRaceCar Skin = iota
	SkinSportsCar
	SkinTaxi
	SkinPolice
	SkinVan
	skinCount
)

type SkinConfig struct {
	Key    string // settings.ini value
	Name   string
	Body   RGB
	Trim   RGB // stripe or roof band
	Stripe bool
	Boxy   bool // van body: short hood, long roof
}

var skinConfigs = [skinCount]SkinConfig{
	SkinRaceCar: {
		Key:    "racecar",
		Name:   "Race Car",
		Body:   RGB{R: 214, G: 38, B: 38},
		Trim:   RGB{R: 250, G: 250, B: 250},
		Stripe: true,
	},
	SkinSportsCar: {
		Key:  "sportscar",
		Name: "Sports Car",
		Body: RGB{R: 40, G: 110, B: 220},
		Trim: RGB{R: 24, G: 60, B: 130},
	},
	SkinTaxi: {
		Key:  "taxi",
		Name: "Taxi",
		Body: RGB{R: 245, G: 200, B: 30},
		Trim: RGB{R: 30, G: 30, B: 30},
	},
	SkinPolice: {
		Key:  "police",
		Name: "Police",
		Body: RGB{R: 235, G: 235, B: 240},
		Trim: RGB{R: 50, G: 85, B: 200},
	},
	// Van: tall roof band, reads as a delivery vehicle at small sizes.
	SkinVan: {
		Key:  "van",
		Name: "Van",
		Body: RGB{R: 120, G: 130, B: 120},
		Trim: RGB{R: 96, G: 104, B: 96},
		Boxy: true,
	},
}

// Skins lists every selectable skin in menu order.
var Skins = []Skin{SkinRaceCar, SkinSportsCar, SkinTaxi, SkinPolice, SkinVan}

func (s Skin) Config() SkinConfig {
	if s >= skinCount {
		return skinConfigs[SkinRaceCar]
	}
	return skinConfigs[s]
}

func (s Skin) String() string { return s.Config().Key }

func (s Skin) Next() Skin { return (s + 1) % skinCount }

func (s Skin) Prev() Skin { return (s + skinCount - 1) % skinCount }

// ParseSkin accepts a skin key or display name, case-insensitively.
func ParseSkin(v string) (Skin, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, s := range Skins {
		c := skinConfigs[s]
		if v == c.Key || v == strings.ToLower(c.Name) {
			return s, nil
		}
	}
	return SkinRaceCar, fmt.Errorf("unknown skin %q", v)
}
