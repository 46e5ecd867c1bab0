package storage

import "testing"

func TestProgressStore_UpdateAndGet(t *testing.T) {
	p := NewProgressStore()

	if got := p.Get("libros/novela"); got != nil {
		t.Errorf("expected no progress yet, got %+v", got)
	}

	p.Update("libros/novela", 5, 5, 20, 0.8, "first batch")
	pr := p.Get("GHOST_Proyectos/libros/novela")
	if pr == nil {
		t.Fatal("expected progress under the prefixed spelling too")
	}
	if pr.CurrentGenerated != 5 || pr.LastNumber != 5 || pr.TargetCount != 20 {
		t.Errorf("unexpected progress %+v", pr)
	}
	if len(pr.Notes) != 1 || pr.Notes[0] != "first batch" {
		t.Errorf("unexpected notes %v", pr.Notes)
	}
	if pr.Updated.IsZero() {
		t.Error("expected an update timestamp")
	}

	// A second batch accumulates the count and replaces the marker.
	p.Update("libros/novela", 5, 10, 0, 0.9, "")
	pr = p.Get("libros/novela")
	if pr.CurrentGenerated != 10 || pr.LastNumber != 10 || pr.TargetCount != 20 {
		t.Errorf("unexpected progress after second batch %+v", pr)
	}
	if len(pr.Notes) != 1 {
		t.Errorf("empty note should not accumulate, got %v", pr.Notes)
	}
}

func TestProgressStore_GetReturnsCopy(t *testing.T) {
	p := NewProgressStore()
	p.Update("libros/novela", 1, 1, 10, 0, "nota")

	pr := p.Get("libros/novela")
	pr.CurrentGenerated = 999
	pr.Notes[0] = "mutated"

	fresh := p.Get("libros/novela")
	if fresh.CurrentGenerated != 1 || fresh.Notes[0] != "nota" {
		t.Errorf("stored progress was mutated through the returned copy: %+v", fresh)
	}
}

func TestProgressStore_CanGenerate(t *testing.T) {
	p := NewProgressStore()

	if !p.CanGenerate("libros/novela", 100) {
		t.Error("untracked projects can always generate")
	}

	p.Update("libros/novela", 18, 18, 20, 0, "")
	if !p.CanGenerate("libros/novela", 2) {
		t.Error("expected a batch that exactly reaches the target to be allowed")
	}
	if p.CanGenerate("libros/novela", 3) {
		t.Error("expected a batch over the target to be rejected")
	}

	// No target means no cap.
	p.Update("scripts/video", 1000, 1000, 0, 0, "")
	if !p.CanGenerate("scripts/video", 1000) {
		t.Error("expected projects without a target to be uncapped")
	}
}

func TestProgressStore_Reset(t *testing.T) {
	p := NewProgressStore()
	p.Update("libros/a", 1, 1, 10, 0, "")
	p.Update("libros/b", 1, 1, 10, 0, "")

	p.Reset("libros/a")
	if p.Get("libros/a") != nil {
		t.Error("expected progress for a to be cleared")
	}
	if p.Get("libros/b") == nil {
		t.Error("expected progress for b to survive")
	}

	p.ResetAll()
	if p.Get("libros/b") != nil {
		t.Error("expected all progress to be cleared")
	}
}
