package leaderboard

import (
	"encoding/json"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/Korport/RacingGame/internal/storage"
)

// tickingClock advances one millisecond per call.
func tickingClock(start int64) func() time.Time {
	ms := start
	return func() time.Time {
		ms++
		return time.UnixMilli(ms)
	}
}

func scores(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}

func checkOrdered(t *testing.T, entries []Entry) {
	t.Helper()
	if len(entries) > MaxEntries {
		t.Fatalf("table holds %d entries, cap is %d", len(entries), MaxEntries)
	}
	for i := 1; i < len(entries); i++ {
		if Less(entries[i], entries[i-1]) {
			t.Fatalf("entries %d and %d out of order: %+v %+v", i-1, i, entries[i-1], entries[i])
		}
	}
}

func TestRecordSortsDescending(t *testing.T) {
	s := New(storage.NewMemKV(), WithClock(tickingClock(1000)))
	for _, sc := range []int{50, 200, 75} {
		s.Record(sc)
	}
	got := scores(s.Entries())
	want := []int{200, 75, 50}
	if len(got) != len(want) {
		t.Fatalf("scores = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("scores = %v, want %v", got, want)
		}
	}
}

func TestRecordTiesKeepEarlierFirst(t *testing.T) {
	s := New(storage.NewMemKV(), WithClock(tickingClock(0)))
	first, _ := s.Record(10)
	second, _ := s.Record(10)
	entries := s.Entries()
	if entries[0].TS != first.TS || entries[1].TS != second.TS {
		t.Fatalf("tie order = %+v, want earlier timestamp first", entries)
	}
}

func TestRecordCapsAtMaxEntries(t *testing.T) {
	kv := storage.NewMemKV()
	full := make([]Entry, 0, MaxEntries)
	for i := 0; i < MaxEntries; i++ {
		full = append(full, Entry{Score: 5 + i, TS: int64(i + 1)})
	}
	Sort(full)
	b, _ := json.Marshal(full)
	kv.Set(BoardKey, string(b))

	s := New(kv, WithClock(tickingClock(10_000)))
	e, stored := s.Record(10)
	if !stored {
		t.Fatalf("record not stored")
	}
	entries := s.Entries()
	if len(entries) != MaxEntries {
		t.Fatalf("table size = %d, want %d", len(entries), MaxEntries)
	}
	for _, x := range entries {
		if x.Score == 5 {
			t.Fatalf("lowest score survived the cap")
		}
	}
	if s.Rank(e.TS) < 0 {
		t.Fatalf("new entry %+v missing from table", e)
	}
}

func TestRecordAlwaysOrderedAndCapped(t *testing.T) {
	// A frozen clock forces timestamp collisions.
	frozen := func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	s := New(storage.NewMemKV(), WithClock(frozen))
	r := rand.New(rand.NewSource(1))
	seen := make(map[int64]bool)
	for i := 0; i < 250; i++ {
		e, _ := s.Record(r.Intn(500))
		if seen[e.TS] {
			t.Fatalf("timestamp %d reused", e.TS)
		}
		seen[e.TS] = true
		checkOrdered(t, s.Entries())
	}
}

func TestRenameUpdatesOnlyThatEntry(t *testing.T) {
	s := New(storage.NewMemKV(), WithClock(tickingClock(0)))
	for _, sc := range []int{30, 90, 60} {
		s.Record(sc)
	}
	e, _ := s.Record(90)
	before := s.Entries()

	s.Rename(e.TS, "Ada")

	after := s.Entries()
	if len(after) != len(before) {
		t.Fatalf("rename changed table size")
	}
	renamed := 0
	for i := range after {
		if after[i].Score != before[i].Score || after[i].TS != before[i].TS {
			t.Fatalf("rename changed entry %d: %+v -> %+v", i, before[i], after[i])
		}
		if after[i].Name != before[i].Name {
			renamed++
			if after[i].TS != e.TS || after[i].Name != "Ada" {
				t.Fatalf("wrong entry renamed: %+v", after[i])
			}
		}
	}
	if renamed != 1 {
		t.Fatalf("renamed %d entries, want 1", renamed)
	}
}

func TestRenameUnknownIsNoop(t *testing.T) {
	kv := storage.NewMemKV()
	s := New(kv, WithClock(tickingClock(0)))
	s.Record(10)
	raw, _ := kv.Get(BoardKey)
	s.Rename(999_999, "ghost")
	if again, _ := kv.Get(BoardKey); again != raw {
		t.Fatalf("unknown rename rewrote table: %s", again)
	}
}

func TestCorruptTableReadsEmpty(t *testing.T) {
	kv := storage.NewMemKV()
	kv.Set(BoardKey, "{not json")
	var hooked []error
	s := New(kv, WithErrorHook(func(err error) { hooked = append(hooked, err) }))
	if got := s.Entries(); len(got) != 0 {
		t.Fatalf("corrupt table read as %+v", got)
	}
	if len(hooked) == 0 {
		t.Fatalf("corruption not reported to hook")
	}
	e, stored := s.Record(42)
	if !stored || s.Rank(e.TS) != 0 {
		t.Fatalf("record over corrupt table failed: stored=%v rank=%d", stored, s.Rank(e.TS))
	}
}

func TestUnavailableStorageIsSwallowed(t *testing.T) {
	kv := storage.NewMemKV()
	s := New(kv)
	s.Record(10)
	kv.FailWrites = true
	e, stored := s.Record(20)
	if stored {
		t.Fatalf("write to failing store reported as stored")
	}
	if e.Score != 20 {
		t.Fatalf("entry = %+v, want score 20", e)
	}
	s.Rename(e.TS, "x")
	s.SaveBest(20)
	s.Clear()

	kv.FailWrites = false
	kv.FailReads = true
	if s.Entries() != nil || s.Best() != 0 || s.Rank(e.TS) != -1 {
		t.Fatalf("unreadable store did not degrade to empty")
	}
}

func TestUnreadableTableIsNotOverwritten(t *testing.T) {
	kv := storage.NewMemKV()
	s := New(kv, WithClock(tickingClock(1000)))
	for _, sc := range []int{50, 200, 75} {
		s.Record(sc)
	}
	before, _ := kv.Get(BoardKey)

	kv.FailReads = true
	e, stored := s.Record(10)
	if stored {
		t.Fatalf("record over unreadable table reported as stored")
	}
	if e.Score != 10 {
		t.Fatalf("entry = %+v, want score 10", e)
	}
	s.Rename(e.TS, "x")
	kv.FailReads = false

	if after, _ := kv.Get(BoardKey); after != before {
		t.Fatalf("table rewritten during read failure:\n got %s\nwant %s", after, before)
	}
	if got := scores(s.Entries()); len(got) != 3 || got[0] != 200 || got[1] != 75 || got[2] != 50 {
		t.Fatalf("scores = %v, want [200 75 50]", got)
	}
}

func TestBestScore(t *testing.T) {
	kv := storage.NewMemKV()
	s := New(kv)
	if s.Best() != 0 {
		t.Fatalf("best on empty store = %d", s.Best())
	}
	s.SaveBest(1234)
	if s.Best() != 1234 {
		t.Fatalf("best = %d, want 1234", s.Best())
	}
	kv.Set(BestKey, "lots")
	if s.Best() != 0 {
		t.Fatalf("corrupt best = %d, want 0", s.Best())
	}
}

func TestClearKeepsBest(t *testing.T) {
	s := New(storage.NewMemKV())
	s.Record(5)
	s.SaveBest(5)
	s.Clear()
	if len(s.Entries()) != 0 || s.Best() != 5 {
		t.Fatalf("after clear entries=%v best=%d", s.Entries(), s.Best())
	}
}

func TestTop(t *testing.T) {
	s := New(storage.NewMemKV(), WithClock(tickingClock(0)))
	for i := 0; i < 15; i++ {
		s.Record(i)
	}
	top := s.Top(TopN)
	if len(top) != TopN || top[0].Score != 14 || top[TopN-1].Score != 5 {
		t.Fatalf("top = %v", scores(top))
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"  Ada  ":                      "Ada",
		"":                             DefaultName,
		"   ":                          DefaultName,
		strings.Repeat("z", 30):        strings.Repeat("z", MaxNameLen),
		"ÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅ": "ÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅ",
	}
	for in, want := range cases {
		if got := SanitizeName(in); got != want {
			t.Errorf("SanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEntryJSONShape(t *testing.T) {
	b, _ := json.Marshal([]Entry{{Score: 7, TS: 99}, {Score: 3, TS: 100, Name: "Bo"}})
	want := `[{"score":7,"ts":99},{"score":3,"ts":100,"name":"Bo"}]`
	if string(b) != want {
		t.Fatalf("json = %s, want %s", b, want)
	}
}
