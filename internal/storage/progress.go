package storage

import (
	"sync"
	"time"

	"github.com/lagsuite/ghosthq/internal/models"
)

// ProgressStore tracks batch content-generation progress per project.
//
// The generator itself lives outside this service; it reports progress
// here and queries it before starting a new batch. State is in-memory
// only and not persisted across restarts; the generator re-derives
// progress from the project files themselves.
type ProgressStore struct {
	mu       sync.RWMutex
	progress map[string]*models.GenerationProgress
}

// NewProgressStore initializes an empty progress store.
func NewProgressStore() *ProgressStore {
	return &ProgressStore{progress: make(map[string]*models.GenerationProgress)}
}

// Get returns the progress for a project, or nil if none was recorded.
func (p *ProgressStore) Get(projectPath string) *models.GenerationProgress {
	p.mu.RLock()
	defer p.mu.RUnlock()
	pr, ok := p.progress[StripRootPrefix(projectPath)]
	if !ok {
		return nil
	}
	cp := *pr
	cp.Notes = append([]string(nil), pr.Notes...)
	return &cp
}

// Update records a completed batch: generated is added to the running
// count, lastNumber and quality replace the previous values.
func (p *ProgressStore) Update(projectPath string, generated, lastNumber, targetCount int, quality float64, note string) *models.GenerationProgress {
	key := StripRootPrefix(projectPath)
	p.mu.Lock()
	defer p.mu.Unlock()
	pr, ok := p.progress[key]
	if !ok {
		pr = &models.GenerationProgress{ProjectPath: key}
		p.progress[key] = pr
	}
	pr.CurrentGenerated += generated
	pr.LastNumber = lastNumber
	if targetCount > 0 {
		pr.TargetCount = targetCount
	}
	pr.Quality = quality
	if note != "" {
		pr.Notes = append(pr.Notes, note)
	}
	pr.Updated = time.Now()
	cp := *pr
	cp.Notes = append([]string(nil), pr.Notes...)
	return &cp
}

// CanGenerate reports whether another batch of the given size fits under
// the project's target count. A project without recorded progress or
// without a target can always generate.
func (p *ProgressStore) CanGenerate(projectPath string, batchSize int) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	pr, ok := p.progress[StripRootPrefix(projectPath)]
	if !ok || pr.TargetCount <= 0 {
		return true
	}
	return pr.CurrentGenerated+batchSize <= pr.TargetCount
}

// Reset clears the progress for one project.
func (p *ProgressStore) Reset(projectPath string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.progress, StripRootPrefix(projectPath))
}

// ResetAll clears all recorded progress.
func (p *ProgressStore) ResetAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress = make(map[string]*models.GenerationProgress)
}
