package audio

import "math"

type musicMode int

const (
	modeMenu musicMode = iota
	modeDrive
)

// song is a looping chord progression with fixed drum and lead patterns.
type song struct {
	tempo         float64 // beats per second
	beatsPerChord int
	chords        [][]float64
	kick, snare   [16]bool
	bass          [8]bool
	lead          [16]float64 // 0 = rest
	swing         float64
}

var menuSong = song{
	tempo:         1.95,
	beatsPerChord: 4,
	chords: [][]float64{
		{261.6, 329.6, 392.0, 493.9}, // Cmaj7
		{220.0, 261.6, 329.6, 392.0}, // Am7
		{174.6, 220.0, 261.6, 349.2}, // Fmaj7
		{196.0, 246.9, 293.7, 392.0}, // G
	},
	kick:  [16]bool{true, false, false, false, true, false, false, false, true, false, false, true, true, false, false, false},
	snare: [16]bool{false, false, false, false, true, false, false, false, false, false, false, false, true, false, false, false},
	bass:  [8]bool{true, false, true, false, true, false, false, true},
	lead: [16]float64{
		523.25, 0, 587.33, 0,
		659.25, 0, 587.33, 0,
		523.25, 0, 493.88, 0,
		523.25, 0, 659.25, 783.99,
	},
}

var driveSong = song{
	tempo:         2.4,
	beatsPerChord: 2,
	chords: [][]float64{
		{220.0, 261.6, 329.6}, // Am
		{174.6, 220.0, 261.6}, // F
		{261.6, 329.6, 392.0}, // C
		{196.0, 246.9, 293.7}, // G
	},
	kick:  [16]bool{true, false, false, false, true, false, false, false, true, false, true, false, true, false, false, false},
	snare: [16]bool{false, false, false, false, true, false, false, false, false, false, false, false, true, false, false, true},
	bass:  [8]bool{true, true, false, true, true, false, true, true},
	lead: [16]float64{
		659.25, 0, 0, 783.99,
		0, 659.25, 0, 587.33,
		523.25, 0, 0, 587.33,
		0, 659.25, 0, 0,
	},
	swing: 0.04,
}

type musicReader struct {
	song     *song
	t        float64
	seed     uint64
	chordIdx int
	measure  int
}

func newMusicReader(mode musicMode, seed uint64) *musicReader {
	s := &menuSong
	if mode == modeDrive {
		s = &driveSong
	}
	if seed == 0 {
		seed = 1
	}
	return &musicReader{song: s, seed: seed}
}

// Read never ends: the song loops for as long as the player pulls samples.
func (m *musicReader) Read(p []byte) (int, error) {
	sg := m.song
	step16 := 1.0 / (sg.tempo * 4)
	step8 := 1.0 / (sg.tempo * 2)
	frames := len(p) / 8
	for i := 0; i < frames; i++ {
		m.t += 1.0 / SampleRate

		beat := int(m.t * sg.tempo)
		if beat/sg.beatsPerChord != m.measure {
			m.measure = beat / sg.beatsPerChord
			m.chordIdx = (m.chordIdx + 1) % len(sg.chords)
		}
		chord := sg.chords[m.chordIdx]

		pos16 := int(m.t/step16) % 16
		trig16 := math.Mod(m.t, step16)
		if pos16%2 == 1 {
			trig16 -= sg.swing * step16
		}
		pos8 := int(m.t/step8) % 8
		trig8 := math.Mod(m.t, step8)

		s := 0.0
		if sg.kick[pos16] {
			s += kick(trig16) * 0.55
		}
		if sg.snare[pos16] {
			s += snare(trig16, &m.seed) * 0.32
		}
		s += hihat(trig16, pos16%4 == 2, &m.seed)
		if sg.bass[pos8] {
			env := math.Exp(-trig8 * 6)
			s += fmBass(m.t, chord[0]*0.5, env) * 0.6
		}
		s += fmPad(m.t, chord, 0.55) * 0.5
		if f := sg.lead[pos16]; f > 0 {
			env := adsr(clampUnit(trig16/(step16*2)), 0.02, 0.4, 0.3, 0.3)
			s += fmLead(m.t, f, env) * 0.45
		}

		pan := 0.08 * math.Sin(2*math.Pi*0.11*m.t)
		putStereoF32LR(p, i, softSat(s*(1-pan)), softSat(s*(1+pan)))
	}
	return frames * 8, nil
}

func clampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// kick is a pitch-swept sine with a click transient; trig is time since hit.
func kick(trig float64) float64 {
	if trig < 0 || trig > 0.25 {
		return 0
	}
	phase := 2 * math.Pi * 185 / 12.5 * (1 - math.Exp(-trig*12.5))
	body := math.Sin(phase) * math.Exp(-trig*18.0) * 0.80
	click := math.Sin(2*math.Pi*2100*trig) * math.Exp(-trig*250.0) * 0.24
	return softSat(body + click)
}

func snare(trig float64, seed *uint64) float64 {
	if trig < 0 || trig > 0.2 {
		return 0
	}
	env := math.Exp(-trig * 26.0)
	body := (math.Sin(2*math.Pi*188*trig)*0.24 + math.Sin(2*math.Pi*356*trig)*0.10) * env
	noise := (lcg(seed) - lcg(seed)*0.55) * env * 0.6
	return softSat(body + noise)
}

func hihat(trig float64, open bool, seed *uint64) float64 {
	decay, limit := 42.0, 0.06
	if open {
		decay, limit = 15.0, 0.18
	}
	if trig < 0 || trig > limit {
		return 0
	}
	metal := math.Sin(2*math.Pi*7300*trig) + math.Sin(2*math.Pi*9200*trig)*0.6
	return softSat((lcg(seed)*0.8 + metal*0.2) * math.Exp(-trig*decay) * 0.07)
}

func fmBass(t, freq, env float64) float64 {
	b := fm(t, freq, 0.5, 1.25*env) * env * 0.48
	b += math.Sin(2*math.Pi*freq*t) * env * 0.26
	return softSat(b)
}

// fmPad stacks slightly detuned FM voices per chord note.
func fmPad(t float64, chord []float64, env float64) float64 {
	s := 0.0
	for _, freq := range chord {
		for _, d := range [3]float64{-0.003, 0, 0.004} {
			s += fm(t, freq*(1+d), 1.45, 0.75*env) * 0.045
		}
	}
	return softSat(s * env)
}

func fmLead(t, freq, env float64) float64 {
	vib := 1 + 0.01*math.Sin(2*math.Pi*5.4*t)
	s := fm(t, freq*vib, 1.55, 2.7*env) * env * 0.26
	return softSat(s)
}
