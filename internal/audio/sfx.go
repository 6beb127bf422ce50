package audio

import "math"

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	putStereoF32LR(buf, i, sample, sample)
}

func putStereoF32LR(buf []byte, i int, left, right float64) {
	lv := math.Float32bits(float32(left))
	rv := math.Float32bits(float32(right))
	buf[i*8] = byte(lv)
	buf[i*8+1] = byte(lv >> 8)
	buf[i*8+2] = byte(lv >> 16)
	buf[i*8+3] = byte(lv >> 24)
	buf[i*8+4] = byte(rv)
	buf[i*8+5] = byte(rv >> 8)
	buf[i*8+6] = byte(rv >> 16)
	buf[i*8+7] = byte(rv >> 24)
}

// softSat is a gentle saturator: cubic near zero, asymptotic past |1|.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns the envelope at normalized progress [0,1].
// attack, decay and release are fractions of the whole duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances seed and returns white noise in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

func mixdown(mix []float64) []byte {
	buf := makeBuf(len(mix))
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

func generate(kind Sound) []byte {
	switch kind {
	case SoundSelect:
		return genSelect()
	case SoundStart:
		return genStart()
	case SoundCrash:
		return genCrash(1)
	case SoundHighScore:
		return genHighScore()
	}
	return nil
}

// genSelect: short click with a falling FM blip.
func genSelect() []byte {
	n := SampleRate * 65 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		s := fm(t, 1400-700*p, 1.0, 0.6) * env * 0.38
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genStart: engine rev, a rising saw-ish FM sweep over low rumble.
func genStart() []byte {
	n := int(0.55 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0x5EED)
	lp := 0.0
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		env := adsr(p, 0.05, 0.3, 0.7, 0.35)
		freq := 70 + 160*p*p
		phase += 2 * math.Pi * freq / SampleRate
		engine := math.Sin(phase+1.8*math.Sin(phase*0.5)) * 0.42
		lp = lp*0.9 + lcg(&seed)*0.1
		s := (engine + lp*0.5) * env
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genCrash: metal impact, a noise crack over a falling thump, then glass tinkle.
// seed varies the noise so repeated crashes don't sound identical.
func genCrash(seed uint64) []byte {
	n := int(0.7 * SampleRate)
	buf := makeBuf(n)
	lp1, lp2 := 0.0, 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)

		subFreq := 120 * math.Pow(30.0/120.0, p*2.2)
		subPhase += 2 * math.Pi * subFreq / SampleRate
		thump := math.Sin(subPhase) * math.Exp(-p*7) * 0.6

		crack := 0.0
		if p < 0.04 {
			crack = lcg(&seed) * (1 - p/0.04) * 0.8
		}

		raw := lcg(&seed)
		lp1 = lp1*0.7 + raw*0.3
		lp2 = lp2*0.97 + raw*0.03
		crunch := (lp1 - lp2) * math.Exp(-p*5.5) * 0.45

		// Inharmonic partials read as bent sheet metal.
		clang := (fm(t, 510, 1.41, 2.2) + 0.6*fm(t, 873, 2.76, 1.4)) * math.Exp(-p*9) * 0.16

		tinkle := 0.0
		if p > 0.15 {
			q := (p - 0.15) / 0.85
			tinkle = math.Sin(2*math.Pi*(3100+900*math.Sin(t*37))*t) * math.Exp(-q*6) * 0.05 * (0.5 + 0.5*lcg(&seed))
		}

		putStereoF32(buf, i, softSat((thump+crack+crunch+clang+tinkle)*0.86))
	}
	return buf
}

// genHighScore: ascending FM bell arpeggio, each note ringing into the next.
func genHighScore() []byte {
	notes := []float64{523.25, 659.25, 783.99, 1046.5, 1318.5}
	step := SampleRate * 85 / 1000
	total := len(notes)*step + int(0.3*SampleRate)
	mix := make([]float64, total)
	for ni, freq := range notes {
		start := ni * step
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			env := adsr(float64(j)/float64(dur), 0.004, 0.6, 0.05, 0.3)
			s := fm(t, freq, 2.756, 5.0*env) * env * 0.34
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.08
			mix[start+j] += s
		}
	}
	return mixdown(mix)
}
