package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/riskibarqy/fpl-assistant/internal/domain/nameindex"
	"github.com/riskibarqy/fpl-assistant/internal/domain/refdata"
	"github.com/riskibarqy/fpl-assistant/internal/platform/diskcache"
	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
	"github.com/riskibarqy/fpl-assistant/internal/platform/resilience"
)

const (
	cacheKeyBootstrap = "bootstrap.json"
	cacheKeyFixtures  = "fixtures.json"
)

// RefDataService owns the reference snapshot: cached bootstrap + fixtures
// payloads, the parsed entity graph, and the name index built over it.
//
// Reads prefer whatever the cache holds, stale included; the network is hit
// only when the cache has never been populated. Explicit refreshes go
// through Refresh, which always fetches.
type RefDataService struct {
	cache   *diskcache.Store
	gateway Gateway
	logger  *logging.Logger
	flight  resilience.SingleFlight

	mu        sync.RWMutex
	bootstrap *refdata.Bootstrap
	index     *nameindex.Index
	fixtures  []refdata.Fixture
}

func NewRefDataService(cache *diskcache.Store, gateway Gateway, logger *logging.Logger) *RefDataService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RefDataService{
		cache:   cache,
		gateway: gateway,
		logger:  logger,
	}
}

// Bootstrap returns the loaded reference snapshot, loading it on first use.
func (s *RefDataService) Bootstrap(ctx context.Context) (*refdata.Bootstrap, error) {
	s.mu.RLock()
	if s.bootstrap != nil {
		b := s.bootstrap
		s.mu.RUnlock()
		return b, nil
	}
	s.mu.RUnlock()

	if err := s.loadBootstrap(ctx, false); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bootstrap, nil
}

// Index returns the name index for the loaded snapshot.
func (s *RefDataService) Index(ctx context.Context) (*nameindex.Index, error) {
	if _, err := s.Bootstrap(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index, nil
}

// Fixtures returns the season fixture list, loading it on first use.
func (s *RefDataService) Fixtures(ctx context.Context) ([]refdata.Fixture, error) {
	s.mu.RLock()
	if s.fixtures != nil {
		f := s.fixtures
		s.mu.RUnlock()
		return f, nil
	}
	s.mu.RUnlock()

	if err := s.loadFixtures(ctx, false); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fixtures, nil
}

// RefreshBootstrap fetches a fresh bootstrap payload, rewrites the cache
// entry, and rebuilds the snapshot and name index wholesale.
func (s *RefDataService) RefreshBootstrap(ctx context.Context) error {
	return s.loadBootstrap(ctx, true)
}

// RefreshFixtures fetches a fresh fixtures payload and rewrites the cache.
func (s *RefDataService) RefreshFixtures(ctx context.Context) error {
	return s.loadFixtures(ctx, true)
}

// CacheInfo reports the cache entry state for diagnostics.
func (s *RefDataService) CacheInfo(key string) (diskcache.EntryInfo, bool) {
	return s.cache.Info(key)
}

func (s *RefDataService) loadBootstrap(ctx context.Context, force bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefDataService.loadBootstrap")
	defer span.End()

	_, err, _ := s.flight.Do(cacheKeyBootstrap, func() (any, error) {
		raw, err := s.payload(ctx, cacheKeyBootstrap, s.gateway.FetchBootstrap, force)
		if err != nil {
			return nil, err
		}

		parsed, err := refdata.ParseBootstrap(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		index := nameindex.Build(parsed.Players)

		s.mu.Lock()
		s.bootstrap = parsed
		s.index = index
		s.mu.Unlock()

		s.logger.InfoContext(ctx, "reference data loaded",
			"players", len(parsed.Players),
			"teams", len(parsed.Teams),
			"events", len(parsed.Events),
			"forced", force)
		return nil, nil
	})

	return err
}

func (s *RefDataService) loadFixtures(ctx context.Context, force bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefDataService.loadFixtures")
	defer span.End()

	_, err, _ := s.flight.Do(cacheKeyFixtures, func() (any, error) {
		raw, err := s.payload(ctx, cacheKeyFixtures, s.gateway.FetchFixtures, force)
		if err != nil {
			return nil, err
		}

		fixtures, err := refdata.ParseFixtures(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}

		s.mu.Lock()
		s.fixtures = fixtures
		s.mu.Unlock()

		s.logger.InfoContext(ctx, "fixtures loaded", "fixtures", len(fixtures), "forced", force)
		return nil, nil
	})

	return err
}

// payload reads a cached payload, stale-but-present preferred; on a full
// cache miss (or a forced refresh) it fetches from the gateway and rewrites
// the cache entry. A failed cache write is logged but does not fail the
// load, since the fetched bytes are already in hand.
func (s *RefDataService) payload(ctx context.Context, key string, fetch func(context.Context) ([]byte, error), force bool) ([]byte, error) {
	if !force {
		var cached json.RawMessage
		if s.cache.GetStale(key, &cached) {
			return cached, nil
		}
	}

	raw, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if err := s.cache.Set(key, json.RawMessage(raw)); err != nil {
		s.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}

	return raw, nil
}
