package evaluation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lehigh-university-libraries/callno/internal/callno"
	"github.com/lehigh-university-libraries/callno/internal/marc"
)

// Observer is notified of every construction, e.g. to record metrics.
type Observer func(lib callno.Library, res *callno.Result, err error, elapsed time.Duration)

// Runner constructs call numbers for dataset items concurrently.
type Runner struct {
	constructor *callno.Constructor
	library     callno.Library
	concurrency int
	observer    Observer
}

// NewRunner creates a Runner. Items without a library use library.
func NewRunner(constructor *callno.Constructor, library callno.Library, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{constructor: constructor, library: library, concurrency: concurrency}
}

// WithObserver sets the construction observer.
func (r *Runner) WithObserver(o Observer) *Runner {
	r.observer = o
	return r
}

// Run evaluates every item. Results keep the dataset order. Items not yet
// started when ctx is done are recorded with the context error.
func (r *Runner) Run(ctx context.Context, dataset *Dataset) []Result {
	results := make([]Result, len(dataset.Items))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, r.concurrency)

	for i, item := range dataset.Items {
		wg.Add(1)
		go func(idx int, item DatasetItem) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			if err := ctx.Err(); err != nil {
				results[idx] = Result{ID: item.ID, Expected: item.Expected, Error: err.Error()}
				return
			}

			slog.Debug("Processing item", "id", item.ID, "progress", fmt.Sprintf("%d/%d", idx+1, len(dataset.Items)))
			results[idx] = r.Evaluate(item)
		}(i, item)
	}

	wg.Wait()
	return results
}

// Evaluate constructs and scores one item.
func (r *Runner) Evaluate(item DatasetItem) Result {
	result := Result{
		ID:       item.ID,
		Library:  item.Library,
		CallType: item.CallType,
		Expected: item.Expected,
	}
	if result.Library == "" {
		result.Library = string(r.library)
	}
	if result.CallType == "" {
		result.CallType = string(callno.CallTypeAuto)
	}

	lib, err := callno.ParseLibrary(result.Library)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	ct, err := callno.ParseCallType(result.CallType)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	records, err := marc.DecodeRecords([]byte(item.MARC))
	if err != nil {
		result.Error = fmt.Sprintf("failed to parse MARC: %v", err)
		return result
	}
	if len(records) == 0 {
		result.Error = "no MARC record"
		return result
	}

	start := time.Now()
	res, err := r.constructor.Construct(records[0], callno.Request{Library: lib, CallType: ct})
	if r.observer != nil {
		r.observer(lib, res, err, time.Since(start))
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Resolved = string(res.CallType)
	result.State = string(res.State)
	result.Reason = res.Reason
	result.Actual = res.CallNumber.String()
	result.Comparison = Compare(item.Expected, result.Actual)
	return result
}
