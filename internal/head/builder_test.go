package head

import (
	"strings"
	"testing"
)

func TestBuilderTitle(t *testing.T) {
	b := New()
	if got := b.Title(); got != "" {
		t.Fatalf("empty builder Title = %q", got)
	}

	b.SetTitle("First")
	b.SetTitle("Dashboard & Co")
	got := string(b.Title())
	if !strings.Contains(got, "Dashboard &amp; Co") {
		t.Errorf("Title = %q, want escaped last-set title", got)
	}
}

func TestBuilderDedup(t *testing.T) {
	b := New()
	b.Meta(`<meta charset="utf-8">`)
	b.Meta(`<meta charset="utf-8">`)
	b.Link(`<link rel="icon" href="/favicon.ico">`)

	if got := string(b.Metas()); strings.Count(got, "charset") != 1 {
		t.Errorf("duplicate meta emitted: %q", got)
	}
	if got := string(b.Links()); !strings.Contains(got, "favicon") {
		t.Errorf("Links = %q", got)
	}
}
