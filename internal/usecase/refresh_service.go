package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
)

const (
	refreshStatusSuccess = "success"
	refreshStatusFailed  = "failed"
)

// RefreshTaskResult reports one refreshed dataset.
type RefreshTaskResult struct {
	Dataset    string
	Status     string
	Message    string
	DurationMs int64
}

// RefreshResult is the outcome of a full cache refresh.
type RefreshResult struct {
	Tasks        []RefreshTaskResult
	SuccessCount int
	FailedCount  int
}

// RefreshService re-fetches the cached reference datasets on demand over a
// small worker pool. Refreshing lives here, outside the read path: the
// loader itself never reaches for the network once the cache is populated.
type RefreshService struct {
	refData *RefDataService
	workers int
	logger  *logging.Logger
}

func NewRefreshService(refData *RefDataService, workers int, logger *logging.Logger) *RefreshService {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RefreshService{refData: refData, workers: workers, logger: logger}
}

// RefreshAll re-fetches every dataset. Partial failure is reported per
// task rather than aborting the batch.
func (s *RefreshService) RefreshAll(ctx context.Context) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.RefreshAll")
	defer span.End()

	tasks := []struct {
		dataset string
		run     func(context.Context) error
	}{
		{dataset: "bootstrap", run: s.refData.RefreshBootstrap},
		{dataset: "fixtures", run: s.refData.RefreshFixtures},
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan RefreshTaskResult, len(tasks))
	var workers sync.WaitGroup
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RefreshTaskResult{Dataset: task.dataset, Status: refreshStatusSuccess}
			if err := task.run(ctx); err != nil {
				row.Status = refreshStatusFailed
				row.Message = err.Error()
			}
			row.DurationMs = time.Since(start).Milliseconds()
			results <- row
		}); err != nil {
			workers.Done()
			return RefreshResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	var result RefreshResult
	for row := range results {
		result.Tasks = append(result.Tasks, row)
		if row.Status == refreshStatusSuccess {
			result.SuccessCount++
		} else {
			result.FailedCount++
		}
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].Dataset < result.Tasks[j].Dataset
	})

	s.logger.InfoContext(ctx, "cache refresh finished",
		"success", result.SuccessCount,
		"failed", result.FailedCount)
	return result, nil
}
