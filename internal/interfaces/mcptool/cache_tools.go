package mcptool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerCacheTools() {
	addTool(s, &mcp.Tool{
		Name:        "refresh_static_data",
		Description: "Force a re-fetch of the cached reference data (players, teams, gameweeks, fixtures)",
	}, func(ctx context.Context, _ emptyArgs) (string, error) {
		result, err := s.services.Refresh.RefreshAll(ctx)
		if err != nil {
			return "", err
		}

		r := newReport().heading("Reference data refresh")
		for _, task := range result.Tasks {
			if task.Message != "" {
				r.bulletf("%s: %s (%dms) — %s", task.Dataset, task.Status, task.DurationMs, task.Message)
			} else {
				r.bulletf("%s: %s (%dms)", task.Dataset, task.Status, task.DurationMs)
			}
		}
		r.blank().linef("%d succeeded, %d failed.", result.SuccessCount, result.FailedCount)
		return r.String(), nil
	})

	addTool(s, &mcp.Tool{
		Name:        "get_cache_status",
		Description: "Age and freshness of the cached reference datasets",
	}, func(ctx context.Context, _ emptyArgs) (string, error) {
		r := newReport().heading("Cache status")
		for _, key := range []string{"bootstrap.json", "fixtures.json"} {
			info, ok := s.services.RefData.CacheInfo(key)
			if !ok {
				r.bulletf("%s: not cached yet", key)
				continue
			}
			state := "fresh"
			if info.Expired {
				state = "stale"
			}
			r.bulletf("%s: %s — updated %s, TTL %dh, %d bytes",
				key, state, info.LastUpdated.Format("2006-01-02 15:04:05 MST"), info.TTLHours, info.SizeBytes)
		}
		return r.String(), nil
	})
}
