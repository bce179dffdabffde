package cache

import (
	"testing"
	"time"
)

func TestRoundtrip(t *testing.T) {
	c, err := New(t.TempDir(), 24, true)
	if err != nil {
		t.Fatal(err)
	}

	content := []byte("fn foo() {}")
	hash := HashBytes(content)
	payload := []byte(`{"functions":[]}`)

	if _, ok := c.Get("src/foo.rs", hash); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	if err := c.Set("src/foo.rs", hash, payload); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := c.Get("src/foo.rs", hash)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(got) != string(payload) {
		t.Errorf("got %q, want %q", got, payload)
	}
}

func TestHashMismatchMisses(t *testing.T) {
	c, err := New(t.TempDir(), 24, true)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set("src/foo.rs", HashBytes([]byte("old content")), []byte("data")); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get("src/foo.rs", HashBytes([]byte("new content"))); ok {
		t.Error("stale entry must not be returned after the file changed")
	}
}

func TestExpiredEntryMisses(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	if err != nil {
		t.Fatal(err)
	}
	c.ttl = -time.Second // force every entry to look expired

	hash := HashBytes([]byte("x"))
	if err := c.Set("k", hash, []byte("data")); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("k", hash); ok {
		t.Error("expired entry must not be returned")
	}
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	c, err := New("", 0, false)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set("k", "h", []byte("data")); err != nil {
		t.Errorf("Set on disabled cache errored: %v", err)
	}
	if _, ok := c.Get("k", "h"); ok {
		t.Error("disabled cache returned a hit")
	}
	if err := c.Clear(); err != nil {
		t.Errorf("Clear on disabled cache errored: %v", err)
	}
}

func TestClear(t *testing.T) {
	c, err := New(t.TempDir(), 24, true)
	if err != nil {
		t.Fatal(err)
	}

	hash := HashBytes([]byte("x"))
	if err := c.Set("a", hash, []byte("1")); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("a", hash); ok {
		t.Error("entry survived Clear")
	}
}

func TestHashBytesIsStable(t *testing.T) {
	a := HashBytes([]byte("same"))
	b := HashBytes([]byte("same"))
	if a != b {
		t.Errorf("hash not deterministic: %s vs %s", a, b)
	}
	if a == HashBytes([]byte("different")) {
		t.Error("distinct content hashed identically")
	}
	if len(a) != 64 {
		t.Errorf("hex hash length = %d, want 64", len(a))
	}
}
