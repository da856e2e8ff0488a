package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"opening_arena/internal/bootstrap"
	arenadom "opening_arena/internal/domain/arena"
	"opening_arena/internal/errors"
)

const defaultExplorerSpeeds = "blitz,rapid,classical"

// ExplorerRepository queries the opening explorer service for the empirical
// result distribution of a position. Responses are cached in redis: the
// explorer is the only slow collaborator in the pipeline and a final position
// repeats across duels with shared repertoires.
type ExplorerRepository struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	redis  *redis.Client
	client *http.Client
}

func NewExplorerRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redisClient *redis.Client) *ExplorerRepository {
	return &ExplorerRepository{
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (e *ExplorerRepository) Lookup(ctx context.Context, fen string, ratings []int) (arenadom.ExplorerStats, error) {
	cacheKey := e.cacheKey(fen, ratings)

	if stats, ok := e.fromCache(ctx, cacheKey); ok {
		return stats, nil
	}

	stats, err := e.fetch(ctx, fen, ratings)
	if err != nil {
		return arenadom.ExplorerStats{}, err
	}

	e.toCache(ctx, cacheKey, stats)
	return stats, nil
}

func (e *ExplorerRepository) fetch(ctx context.Context, fen string, ratings []int) (arenadom.ExplorerStats, error) {
	speeds := e.cfg.ExplorerSpeeds
	if speeds == "" {
		speeds = defaultExplorerSpeeds
	}

	params := url.Values{}
	params.Set("variant", "standard")
	params.Set("speeds", speeds)
	params.Set("fen", fen)
	if len(ratings) > 0 {
		params.Set("ratings", joinRatings(ratings))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.cfg.ExplorerUrl+"?"+params.Encode(), nil)
	if err != nil {
		return arenadom.ExplorerStats{}, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return arenadom.ExplorerStats{}, fmt.Errorf("%w: %v", errors.ErrExplorerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return arenadom.ExplorerStats{}, fmt.Errorf("%w: status %d", errors.ErrExplorerUnavailable, resp.StatusCode)
	}

	var stats arenadom.ExplorerStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return arenadom.ExplorerStats{}, fmt.Errorf("explorer response decode: %w", err)
	}
	return stats, nil
}

func (e *ExplorerRepository) cacheKey(fen string, ratings []int) string {
	return "explorer:" + fen + "|" + joinRatings(ratings)
}

func (e *ExplorerRepository) fromCache(ctx context.Context, key string) (arenadom.ExplorerStats, bool) {
	if e.redis == nil {
		return arenadom.ExplorerStats{}, false
	}
	raw, err := e.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			e.log.Warnw("explorer cache read failed", "key", key, "error", err)
		}
		return arenadom.ExplorerStats{}, false
	}
	var stats arenadom.ExplorerStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		e.log.Warnw("explorer cache entry corrupt", "key", key, "error", err)
		return arenadom.ExplorerStats{}, false
	}
	return stats, true
}

func (e *ExplorerRepository) toCache(ctx context.Context, key string, stats arenadom.ExplorerStats) {
	if e.redis == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	ttl := time.Duration(e.cfg.ExplorerCacheTTLSec) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	if err := e.redis.Set(ctx, key, raw, ttl).Err(); err != nil {
		e.log.Warnw("explorer cache write failed", "key", key, "error", err)
	}
}

func joinRatings(ratings []int) string {
	parts := make([]string, 0, len(ratings))
	for _, r := range ratings {
		parts = append(parts, strconv.Itoa(r))
	}
	return strings.Join(parts, ",")
}
