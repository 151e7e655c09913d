package service

import (
	"context"
	"sync"

	"github.com/chigarow/maps-to-waze-app/internal/models"
)

type batchJob struct {
	idx    int
	rawURL string
}

// ResolveBatch resolves every URL with a pool of cfg.Workers workers and returns one
// result per input, in input order. Inputs left unprocessed when ctx is cancelled
// are reported as NotFound.
func (rs *ResolutionService) ResolveBatch(ctx context.Context, urls []string) []models.Result {
	results := make([]models.Result, len(urls))
	if len(urls) == 0 {
		return results
	}

	numWorkers := min(rs.cfg.Workers, len(urls))
	rs.log.InfoContext(ctx, "Starting worker pool", "jobs", len(urls), "num_workers", numWorkers)

	jobs := make(chan batchJob, len(urls))
	var wgr sync.WaitGroup

	for i := 1; i <= numWorkers; i++ {
		wgr.Add(1)
		go rs.worker(ctx, i, &wgr, jobs, results)
	}

	for idx, rawURL := range urls {
		jobs <- batchJob{idx: idx, rawURL: rawURL}
	}
	close(jobs)

	wgr.Wait()
	rs.log.InfoContext(ctx, "Processing batch finished", "jobs", len(urls))

	return results
}

// worker resolves jobs until the channel is drained. Each job writes only its own
// slot of results.
func (rs *ResolutionService) worker(
	ctx context.Context,
	idx int,
	wg *sync.WaitGroup,
	jobs <-chan batchJob,
	results []models.Result,
) {
	defer wg.Done()
	for job := range jobs {
		if ctx.Err() != nil {
			results[job.idx] = models.NotFound()
			continue
		}

		rs.metrics.ActiveWorkers.Inc()
		rs.log.DebugContext(ctx, "Processing URL", "worker", idx, "job", job.idx)

		results[job.idx] = rs.Resolve(ctx, job.rawURL)

		rs.metrics.ActiveWorkers.Dec()
	}
}
