package lru

import (
	"errors"
	"testing"
)

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a to be cached")
	}
	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("expected a=1, got %d, %v", v, ok)
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("expected c=3, got %d, %v", v, ok)
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", c.Len())
	}
}

func TestCachePutRefreshes(t *testing.T) {
	c := New[int, string](2)
	c.Put(1, "one")
	c.Put(2, "two")
	c.Put(1, "uno")
	c.Put(3, "three")

	if v, _ := c.Get(1); v != "uno" {
		t.Errorf("expected updated value, got %q", v)
	}
	if _, ok := c.Get(2); ok {
		t.Error("expected 2 to be evicted after 1 was refreshed")
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[string, int](4)
	calls := 0
	create := func() (int, error) {
		calls++
		return 42, nil
	}

	for range 3 {
		v, err := c.GetOrCreate("k", create)
		if err != nil || v != 42 {
			t.Fatalf("expected 42, got %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("expected create once, got %d", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrCreate("bad", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Errorf("expected create error, got %v", err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("expected failed creation not to be cached")
	}

	s := c.Stats()
	if s.Hits != 2 || s.Len != 1 || s.Capacity != 4 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := New[int, int](8)
	for i := range 6 {
		c.Put(i, i*i)
	}
	if !c.Delete(0) || c.Delete(0) {
		t.Error("expected Delete to report presence once")
	}
	if n := c.DeleteFunc(func(k int) bool { return k%2 == 0 }); n != 2 {
		t.Errorf("expected 2 even keys removed, got %d", n)
	}
	if c.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d", c.Len())
	}
	c.Put(9, 81)
	if v, ok := c.Get(9); !ok || v != 81 {
		t.Error("expected cache usable after Clear")
	}
}

func TestCapacityFloor(t *testing.T) {
	c := New[int, int](0)
	c.Put(1, 1)
	c.Put(2, 2)
	if c.Len() != 1 {
		t.Errorf("expected capacity 1, got %d entries", c.Len())
	}
}
