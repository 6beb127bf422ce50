// Package audio plays procedurally generated sound effects and music
// through oto. A nil *System is valid and silent.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
)

// Sound identifies a one-shot effect.
type Sound int

const (
	SoundSelect Sound = iota
	SoundStart
	SoundCrash
	SoundHighScore
)

const (
	menuVolume  = 0.24
	driveVolume = 0.14
	sfxVolume   = 0.58
)

type System struct {
	ctx   *oto.Context
	ready chan struct{}

	mu         sync.Mutex
	music      oto.Player
	musicMode  musicMode
	menuMuted  bool
	crashVoice uint64
}

func New() (*System, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, err
	}
	return &System{ctx: ctx, ready: ready}, nil
}

func (s *System) isReady() bool {
	if s == nil {
		return false
	}
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Play fires a one-shot effect on its own player.
func (s *System) Play(kind Sound) {
	if !s.isReady() {
		return
	}
	var samples []byte
	if kind == SoundCrash {
		s.mu.Lock()
		s.crashVoice++
		seed := s.crashVoice ^ uint64(time.Now().UnixNano())
		s.mu.Unlock()
		samples = genCrash(seed)
	} else {
		samples = generate(kind)
	}
	if len(samples) == 0 {
		return
	}
	go func() {
		player := s.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// PlayMenuMusic loops the start-screen tune. It honours the menu mute.
func (s *System) PlayMenuMusic() { s.startMusic(modeMenu) }

// PlayDriveMusic restarts the in-race tune from its first bar.
func (s *System) PlayDriveMusic() { s.startMusic(modeDrive) }

func (s *System) StopMusic() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.music != nil {
		s.music.Close()
		s.music = nil
	}
}

// SetMenuMuted silences the start-screen tune without stopping it.
func (s *System) SetMenuMuted(muted bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menuMuted = muted
	if s.music != nil && s.musicMode == modeMenu {
		s.music.SetVolume(s.volumeLocked(modeMenu))
	}
}

func (s *System) volumeLocked(mode musicMode) float64 {
	if mode == modeMenu {
		if s.menuMuted {
			return 0
		}
		return menuVolume
	}
	return driveVolume
}

func (s *System) startMusic(mode musicMode) {
	if !s.isReady() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.music != nil {
		s.music.Close()
	}
	player := s.ctx.NewPlayer(newMusicReader(mode, uint64(time.Now().UnixNano())))
	player.SetVolume(s.volumeLocked(mode))
	s.music = player
	s.musicMode = mode
	player.Play()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
