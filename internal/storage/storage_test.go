package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileKVRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile")
	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}
	if _, err := kv.Get("best"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store = %v, want ErrNotFound", err)
	}
	if err := kv.Set("best", "120"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set("best", "360"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, err := kv.Get("best")
	if err != nil || got != "360" {
		t.Fatalf("Get = %q, %v; want 360", got, err)
	}

	if _, err := os.Stat(filepath.Join(dir, "best.dat")); err != nil {
		t.Fatalf("value file missing: %v", err)
	}
	leftovers, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}

	if err := kv.Delete("best"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := kv.Get("best"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := kv.Delete("best"); err != nil {
		t.Fatalf("Delete of missing key: %v", err)
	}
}

func TestFileKVRejectsBadKeys(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}
	for _, key := range []string{"", "../escape", "UPPER", "a/b"} {
		if err := kv.Set(key, "x"); err == nil {
			t.Errorf("Set(%q) accepted", key)
		}
	}
}

func TestMemKVFailSwitches(t *testing.T) {
	kv := NewMemKV()
	if err := kv.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	kv.FailWrites = true
	if err := kv.Set("k", "w"); err == nil {
		t.Fatalf("Set succeeded with FailWrites")
	}
	if err := kv.Delete("k"); err == nil {
		t.Fatalf("Delete succeeded with FailWrites")
	}
	if v, _ := kv.Get("k"); v != "v" {
		t.Fatalf("failed write changed value to %q", v)
	}
	kv.FailReads = true
	if _, err := kv.Get("k"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("Get with FailReads = %v, want unavailable", err)
	}
}

func TestDefaultDirUsesProfile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("RACER_PROFILE", "Second Seat!")
	dir, err := DefaultDir()
	if err != nil {
		t.Fatalf("DefaultDir: %v", err)
	}
	if filepath.Base(dir) != "second_seat" {
		t.Fatalf("profile dir = %q, want second_seat", filepath.Base(dir))
	}
	if filepath.Base(filepath.Dir(dir)) != "TopdownRacer" {
		t.Fatalf("app dir = %q", filepath.Dir(dir))
	}
}

func TestSanitizeMakesValidKeys(t *testing.T) {
	for in, want := range map[string]string{
		"":             "default",
		"  Ada  ":      "ada",
		"Second Seat!": "second_seat",
		"../etc":       "..etc",
		"åäö":          "default",
	} {
		got := sanitize(in)
		if got != want {
			t.Fatalf("sanitize(%q) = %q, want %q", in, got, want)
		}
		if !validKey.MatchString(got) {
			t.Fatalf("sanitize(%q) = %q is not a valid key", in, got)
		}
	}
}
