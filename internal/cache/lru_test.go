package cache

import "testing"

func TestLRUBasics(t *testing.T) {
	c := New(2)

	c.Add("a", 1)
	c.Add("b", 2)
	if v, ok := c.Get("a"); !ok || v.(int) != 1 {
		t.Fatalf("Get(a) = %v, %v", v, ok)
	}

	// "b" is now least recently used; adding "c" must evict it.
	c.Add("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("recently used entry evicted")
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
}

func TestLRUOverwrite(t *testing.T) {
	c := New(2)
	c.Add("a", 1)
	c.Add("a", 10)

	if v, _ := c.Get("a"); v.(int) != 10 {
		t.Fatalf("Get(a) = %v, want 10", v)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
}
