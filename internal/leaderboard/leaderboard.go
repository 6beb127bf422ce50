// Package leaderboard keeps the local high-score table and the all-time best
// score on top of a storage.KV.
//
// Every mutation is a read-modify-write of the whole table. Storage trouble
// never reaches the caller: unreadable or corrupt data reads as empty and
// failed writes are dropped.
package leaderboard

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Korport/RacingGame/internal/storage"
)

const (
	BoardKey = "topdown_racer_leaderboard"
	BestKey  = "topdown_racer_best"

	MaxEntries  = 100
	TopN        = 10 // placements that earn the name prompt
	MaxNameLen  = 20
	DefaultName = "Player"
)

type Entry struct {
	Score int    `json:"score"`
	TS    int64  `json:"ts"` // unix milliseconds; unique within a table
	Name  string `json:"name,omitempty"`
}

func (e Entry) Time() time.Time { return time.UnixMilli(e.TS) }

// Less orders by score descending, then by earlier timestamp.
func Less(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.TS < b.TS
}

// Sort puts entries in table order.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool { return Less(entries[i], entries[j]) })
}

type Store struct {
	kv      storage.KV
	now     func() time.Time
	onError func(error)
}

type Option func(*Store)

// WithClock replaces time.Now for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithErrorHook observes storage failures that are otherwise swallowed.
func WithErrorHook(fn func(error)) Option {
	return func(s *Store) { s.onError = fn }
}

func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{kv: kv, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) report(err error) {
	if err != nil && s.onError != nil {
		s.onError(err)
	}
}

// Entries returns the table in order. A missing, corrupt or unreadable
// table is empty.
func (s *Store) Entries() []Entry {
	entries, _ := s.load()
	return entries
}

// load reads the table. ok is false only when the store could not be read;
// a missing or corrupt table loads as empty and may be overwritten.
func (s *Store) load() (entries []Entry, ok bool) {
	raw, err := s.kv.Get(BoardKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, true
	}
	if err != nil {
		s.report(err)
		return nil, false
	}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.report(err)
		return nil, true
	}
	Sort(entries)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries, true
}

// Top returns at most n leading entries.
func (s *Store) Top(n int) []Entry {
	entries := s.Entries()
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func (s *Store) save(entries []Entry) bool {
	b, err := json.Marshal(entries)
	if err != nil {
		s.report(err)
		return false
	}
	if err := s.kv.Set(BoardKey, string(b)); err != nil {
		s.report(err)
		return false
	}
	return true
}

// Record adds score stamped with the current time and returns the new entry.
// stored is false when the table could not be read or written; the entry is
// still returned so the caller can show it. An unreadable table is left as is.
func (s *Store) Record(score int) (e Entry, stored bool) {
	entries, ok := s.load()
	ts := s.now().UnixMilli()
	for taken(entries, ts) {
		ts++
	}
	e = Entry{Score: score, TS: ts}
	if !ok {
		return e, false
	}
	entries = append(entries, e)
	Sort(entries)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return e, s.save(entries)
}

func taken(entries []Entry, ts int64) bool {
	for _, e := range entries {
		if e.TS == ts {
			return true
		}
	}
	return false
}

// Rank returns the 0-based table position of the entry stamped ts, or -1.
func (s *Store) Rank(ts int64) int {
	for i, e := range s.Entries() {
		if e.TS == ts {
			return i
		}
	}
	return -1
}

// Rename sets the display name of the entry stamped ts. Unknown timestamps are ignored.
func (s *Store) Rename(ts int64, name string) {
	entries, ok := s.load()
	if !ok {
		return
	}
	for i := range entries {
		if entries[i].TS == ts {
			entries[i].Name = name
			s.save(entries)
			return
		}
	}
}

// Clear drops the whole table. The best score is kept.
func (s *Store) Clear() {
	s.report(s.kv.Delete(BoardKey))
}

// Best returns the persisted all-time best, 0 when absent or unreadable.
func (s *Store) Best() int {
	raw, err := s.kv.Get(BestKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.report(err)
		}
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		s.report(err)
		return 0
	}
	return n
}

func (s *Store) SaveBest(score int) {
	s.report(s.kv.Set(BestKey, strconv.Itoa(score)))
}

// SanitizeName trims input from the name prompt and caps it at MaxNameLen
// runes. Blank input becomes DefaultName.
func SanitizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) > MaxNameLen {
		name = string([]rune(name)[:MaxNameLen])
	}
	if name == "" {
		return DefaultName
	}
	return name
}
