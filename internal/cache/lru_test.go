package cache

import (
	"testing"
	"time"
)

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a should be present")
	}
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted as least recently used")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("a = %v, %v", v, ok)
	}
	if c.Size() != 2 {
		t.Errorf("size = %d, want 2", c.Size())
	}
}

func TestLRUCache_TTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRUCache[int](10, time.Minute)
	c.clock = func() time.Time { return now }

	c.Set("row", 7)
	now = now.Add(30 * time.Second)
	if _, ok := c.Get("row"); !ok {
		t.Fatal("entry should still be fresh")
	}
	now = now.Add(31 * time.Second)
	if _, ok := c.Get("row"); ok {
		t.Fatal("entry should have expired")
	}

	c.Set("x", 1)
	c.Set("y", 2)
	now = now.Add(2 * time.Minute)
	if n := c.CleanExpired(); n != 2 {
		t.Errorf("CleanExpired removed %d, want 2", n)
	}
}

func TestLRUCache_ReadDoesNotExtendDeadline(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRUCache[int](10, time.Minute)
	c.clock = func() time.Time { return now }

	c.Set("row", 2)
	now = now.Add(50 * time.Second)
	c.Get("row")
	now = now.Add(20 * time.Second)
	if _, ok := c.Get("row"); ok {
		t.Fatal("read should not have refreshed the deadline")
	}
	if c.Size() != 0 {
		t.Errorf("expired key kept: size = %d", c.Size())
	}
}

func TestLRUCache_OverwriteRefreshesRecency(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Errorf("a = %v, %v, want 10", v, ok)
	}
}

func TestLRUCache_NoCapacityMeansUnbounded(t *testing.T) {
	c := NewLRUCache[int](0, time.Minute)
	for i := 0; i < 100; i++ {
		c.Set(string(rune('a'+i%26))+string(rune('0'+i/26)), i)
	}
	if c.Size() != 100 {
		t.Errorf("size = %d, want 100", c.Size())
	}
}

func TestLRUCache_DeleteAndClear(t *testing.T) {
	c := NewLRUCache[string](10, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("a should be deleted")
	}
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("size after Clear = %d", c.Size())
	}
	c.Set("c", "3")
	if v, ok := c.Get("c"); !ok || v != "3" {
		t.Error("cache unusable after Clear")
	}
}

func TestManager_CleanNowAndStop(t *testing.T) {
	c := NewLRUCache[int](10, time.Millisecond)
	c.Set("a", 1)
	m := NewManager()
	m.Register(c)
	time.Sleep(5 * time.Millisecond)

	if n := m.CleanNow(); n != 1 {
		t.Errorf("CleanNow = %d, want 1", n)
	}

	m.StartCleanup(time.Millisecond)
	m.Stop()
	m.Stop()
}

func TestManager_StopWithoutStart(t *testing.T) {
	NewManager().Stop()
}
