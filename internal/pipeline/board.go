package pipeline

import (
	"sync"

	"github.com/ppiankov/trendscope/internal/model"
)

// Board holds the single published AnalysisBatch.
// Only the newest begun run may publish; older runs are dropped.
type Board struct {
	mu        sync.RWMutex
	latestRun uint64
	current   *model.AnalysisBatch
	loading   bool
}

// NewBoard creates an empty board
func NewBoard() *Board {
	return &Board{}
}

// Begin marks runID as the newest run and clears the published view
func (b *Board) Begin(runID uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if runID <= b.latestRun {
		return
	}
	b.latestRun = runID
	b.current = nil
	b.loading = true
}

// Publish replaces the published batch if it belongs to the newest run.
// It reports whether the batch was accepted.
func (b *Board) Publish(batch *model.AnalysisBatch) bool {
	if batch == nil {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if batch.RunID != b.latestRun {
		return false
	}
	b.current = batch
	b.loading = false
	return true
}

// Snapshot returns the published batch (nil before the first publish)
// and whether a newer run is still in progress
func (b *Board) Snapshot() (*model.AnalysisBatch, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current, b.loading
}

// LatestRun returns the newest begun run id
func (b *Board) LatestRun() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latestRun
}
