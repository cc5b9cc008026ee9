package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkravets/go-task-api/internal/models"
)

// TaskCache is an advisory key-value store for task read results.
// A nil, nil return means cache miss.
type TaskCache interface {
	GetTasks(ctx context.Context, key string) ([]*models.Task, error)
	SetTasks(ctx context.Context, key string, tasks []*models.Task, ttl time.Duration) error
}

type RedisTaskCache struct {
	rdb *redis.Client
}

func NewRedisTaskCache(rdb *redis.Client) *RedisTaskCache {
	return &RedisTaskCache{rdb: rdb}
}

func (c *RedisTaskCache) GetTasks(ctx context.Context, key string) ([]*models.Task, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var tasks []*models.Task
	if err := json.Unmarshal([]byte(val), &tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (c *RedisTaskCache) SetTasks(ctx context.Context, key string, tasks []*models.Task, ttl time.Duration) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, key, data, ttl).Err()
}

// listTasksCacheKey builds the cache key for a list request. It embeds
// the owner ID and every normalized parameter so two requests share an
// entry only when they would produce the same rows for the same user.
func listTasksCacheKey(p normalizedListParams) string {
	return strings.Join([]string{
		"tasks:list",
		p.UserID,
		"skip=" + strconv.Itoa(p.Skip),
		"limit=" + strconv.Itoa(p.Limit),
		"sort=" + p.SortCol,
		"order=" + p.SortDir,
		"search=" + p.Search,
		"status=" + p.Status,
	}, ":")
}

func topPriorityCacheKey(userID string, n int) string {
	return "tasks:top:" + userID + ":n=" + strconv.Itoa(n)
}
