package scoring

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-relevance/internal/types"
)

// defaultBatchWorkers is the worker-pool size when none is configured.
const defaultBatchWorkers = 4

// BatchEntry is the outcome for one resume within a batch. Exactly one of
// Evaluation and Err is set: either the resume was scored (possibly
// degraded) or it failed in isolation.
type BatchEntry struct {
	ResumeID   uuid.UUID
	Evaluation *types.Evaluation
	Err        error
}

// ProgressFunc is invoked after each completed unit of batch work. It may
// be called from multiple worker goroutines, serialized by the evaluator.
type ProgressFunc func(completed, total int, resumeID uuid.UUID)

// BatchOptions configures batch evaluation.
type BatchOptions struct {
	Workers  int
	Progress ProgressFunc
}

// EvaluateBatch evaluates every resume against one job description using a
// worker pool. Each resume is an independent unit: failures and missing
// embeddings are isolated to their entry and never abort siblings. Scored
// entries come first, ordered by relevance score descending with ties
// broken by ascending resume id; failed entries follow, ordered by id.
// On cancellation the entries completed so far are returned together with
// the context error; no partial evaluation is ever included.
func (e *Engine) EvaluateBatch(
	ctx context.Context,
	resumes []*types.Profile,
	jd *types.Profile,
	embeddings map[uuid.UUID][]float64,
	jdVector []float64,
	opts *BatchOptions,
) ([]BatchEntry, error) {
	if jd == nil {
		return nil, &IncompleteProfileError{Field: "job profile"}
	}
	if jd.Skills == nil {
		return nil, &IncompleteProfileError{ProfileID: jd.ID, Field: "skills"}
	}
	if len(resumes) == 0 {
		return []BatchEntry{}, nil
	}

	workers := defaultBatchWorkers
	if opts != nil && opts.Workers > 0 {
		workers = opts.Workers
	}
	if workers > len(resumes) {
		workers = len(resumes)
	}

	results := make([]BatchEntry, len(resumes))
	done := make([]bool, len(resumes))

	work := make(chan int, len(resumes))
	for i := range resumes {
		work <- i
	}
	close(work)

	var progressMu sync.Mutex
	completed := 0
	reportProgress := func(resumeID uuid.UUID) {
		progressMu.Lock()
		defer progressMu.Unlock()
		completed++
		if opts != nil && opts.Progress != nil {
			opts.Progress(completed, len(resumes), resumeID)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range work {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				results[i] = e.batchEntry(resumes[i], jd, embeddings, jdVector)
				done[i] = true
				reportProgress(results[i].ResumeID)
			}
			return nil
		})
	}

	waitErr := g.Wait()

	entries := make([]BatchEntry, 0, len(resumes))
	for i, ok := range done {
		if ok {
			entries = append(entries, results[i])
		}
	}
	sortEntries(entries)

	if waitErr != nil {
		return entries, waitErr
	}
	return entries, nil
}

// batchEntry evaluates one resume, converting any failure into the
// entry's error marker.
func (e *Engine) batchEntry(
	resume *types.Profile,
	jd *types.Profile,
	embeddings map[uuid.UUID][]float64,
	jdVector []float64,
) BatchEntry {
	if resume == nil {
		return BatchEntry{Err: &IncompleteProfileError{Field: "resume profile"}}
	}

	entry := BatchEntry{ResumeID: resume.ID}
	eval, err := e.Evaluate(resume, jd, embeddings[resume.ID], jdVector)
	if err != nil {
		entry.Err = err
		return entry
	}
	entry.Evaluation = eval
	return entry
}

// sortEntries orders scored entries by score descending then id
// ascending, with failed entries after all scored ones.
func sortEntries(entries []BatchEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.Evaluation != nil && b.Evaluation != nil:
			if a.Evaluation.RelevanceScore != b.Evaluation.RelevanceScore {
				return a.Evaluation.RelevanceScore > b.Evaluation.RelevanceScore
			}
			return bytes.Compare(a.ResumeID[:], b.ResumeID[:]) < 0
		case a.Evaluation != nil:
			return true
		case b.Evaluation != nil:
			return false
		default:
			return bytes.Compare(a.ResumeID[:], b.ResumeID[:]) < 0
		}
	})
}
