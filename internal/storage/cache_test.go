package storage

import (
	"testing"
	"time"

	"github.com/lagsuite/ghosthq/internal/models"
)

func TestCache(t *testing.T) {
	c := NewCache(time.Minute)
	s := &models.ProjectStructure{ID: "novela"}

	if _, ok := c.Get("/p/novela"); ok {
		t.Error("expected a miss on an empty cache")
	}

	c.Set("/p/novela", s)
	if got, ok := c.Get("/p/novela"); !ok || got != s {
		t.Error("expected a hit after Set")
	}

	c.Invalidate("/p/novela")
	if _, ok := c.Get("/p/novela"); ok {
		t.Error("expected a miss after Invalidate")
	}

	c.Set("/p/novela", s)
	c.Set("/p/otra", s)
	c.InvalidateAll()
	if _, ok := c.Get("/p/novela"); ok {
		t.Error("expected a miss after InvalidateAll")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)
	c.Set("/p/novela", &models.ProjectStructure{ID: "novela"})

	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("/p/novela"); ok {
		t.Error("expected the entry to expire")
	}
}
