package workers

import (
	"context"
	"sync"
	"time"

	"jobmatch_backend/internal/logger"
	"jobmatch_backend/internal/services"
)

// SimilarityWorker refreshes user-user similarity rows off the request
// path. Tracking hooks enqueue a candidate ID; the worker drains the
// queue and coalesces duplicates so a burst of views for one user
// costs a single recompute.
type SimilarityWorker struct {
	collaborative services.CollaborativeScorer
	queue         chan string

	mu      sync.Mutex
	pending map[string]struct{}
}

func NewSimilarityWorker(collaborative services.CollaborativeScorer, queueLen int) *SimilarityWorker {
	if queueLen <= 0 {
		queueLen = 256
	}
	return &SimilarityWorker{
		collaborative: collaborative,
		queue:         make(chan string, queueLen),
		pending:       make(map[string]struct{}),
	}
}

// Enqueue schedules a refresh for the candidate. Returns false when
// the queue is full; the caller falls back to a synchronous update.
// Duplicate IDs already waiting are absorbed.
func (w *SimilarityWorker) Enqueue(candidateID string) bool {
	w.mu.Lock()
	if _, waiting := w.pending[candidateID]; waiting {
		w.mu.Unlock()
		return true
	}

	select {
	case w.queue <- candidateID:
		w.pending[candidateID] = struct{}{}
		w.mu.Unlock()
		return true
	default:
		w.mu.Unlock()
		return false
	}
}

// Start runs the drain loop until ctx is cancelled.
func (w *SimilarityWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *SimilarityWorker) run(ctx context.Context) {
	logger.WorkerLog("similarity", "started", nil)
	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("similarity", "stopped", nil)
			return
		case candidateID := <-w.queue:
			w.mu.Lock()
			delete(w.pending, candidateID)
			w.mu.Unlock()

			start := time.Now()
			err := w.collaborative.UpdateSimilarity(candidateID)
			logger.WorkerLog("similarity", "refresh "+candidateID, err)
			if err == nil {
				logger.Debug("similarity refreshed",
					"candidate_id", candidateID,
					"duration_ms", time.Since(start).Milliseconds())
			}
		}
	}
}
