package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mkravets/go-task-api/internal/models"
)

// TaskEventRecorder publishes task lifecycle events. Implementations
// must be fire-and-forget: a failed publish never fails the operation.
type TaskEventRecorder interface {
	TaskCreated(ctx context.Context, task *models.Task)
}

type taskServiceImpl struct {
	logger   zerolog.Logger
	pgPool   *pgxpool.Pool
	cache    TaskCache
	events   TaskEventRecorder
	limits   queryLimits
	cacheTTL time.Duration
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	cache TaskCache,
	events TaskEventRecorder,
	defaultPageSize int,
	maxPageSize int,
	cacheTTL time.Duration,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
		cache:  cache,
		events: events,
		limits: queryLimits{
			defaultLimit: defaultPageSize,
			maxLimit:     maxPageSize,
		},
		cacheTTL: cacheTTL,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	task := &models.Task{
		UserID:      params.UserID,
		Title:       params.Title,
		Description: params.Description,
		Status:      params.Status,
		Priority:    models.DefaultPriority,
		CreatedAt:   time.Now(),
	}

	if task.Status == "" {
		task.Status = models.StatusPending
	} else if !models.IsValidStatus(task.Status) {
		s.logger.Error().
			Str("status", task.Status).
			Msg("invalid task status")
		return nil, ErrInvalidTaskStatus
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}

	const insertTaskQuery = `
INSERT INTO tasks (user_id,
                   title,
                   description,
                   status,
                   priority,
                   created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`
	err := s.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.CreatedAt,
	).Scan(&task.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("inserted task")

	if s.events != nil {
		s.events.TaskCreated(ctx, task)
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, params ListTasksParams) ([]*models.Task, error) {
	normalized := normalizeListParams(params, s.limits)
	cacheKey := listTasksCacheKey(normalized)

	if tasks, ok := s.cacheLookup(ctx, cacheKey); ok {
		return tasks, nil
	}

	query, args := listTasksQuery(normalized)
	tasks, err := s.selectTasks(ctx, normalized.UserID, query, args)
	if err != nil {
		return nil, err
	}

	s.cacheStore(ctx, cacheKey, tasks)

	s.logger.Info().
		Int("count", len(tasks)).
		Str("user_id", normalized.UserID).
		Msg("listed tasks")
	return tasks, nil
}

func (s *taskServiceImpl) TopPriorityTasks(ctx context.Context, userID string, n int) ([]*models.Task, error) {
	if n < 0 {
		n = 0
	}
	if n > s.limits.maxLimit {
		n = s.limits.maxLimit
	}
	cacheKey := topPriorityCacheKey(userID, n)

	if tasks, ok := s.cacheLookup(ctx, cacheKey); ok {
		return tasks, nil
	}

	// Ties on priority fall back to id, which is a serial and therefore
	// insertion order.
	const selectTopPriorityTasksQuery = `
SELECT id,
       title,
       description,
       status,
       priority,
       created_at
FROM tasks
WHERE user_id = $1
ORDER BY priority DESC, id ASC
LIMIT $2
`
	tasks, err := s.selectTasks(ctx, userID, selectTopPriorityTasksQuery, []any{userID, n})
	if err != nil {
		return nil, err
	}

	s.cacheStore(ctx, cacheKey, tasks)

	s.logger.Info().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("listed top priority tasks")
	return tasks, nil
}

func (s *taskServiceImpl) selectTasks(ctx context.Context, userID, query string, args []any) ([]*models.Task, error) {
	rows, err := s.pgPool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{UserID: userID}
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.Priority,
			&task.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	return tasks, nil
}

func (s *taskServiceImpl) cacheLookup(ctx context.Context, key string) ([]*models.Task, bool) {
	if s.cache == nil {
		return nil, false
	}

	tasks, err := s.cache.GetTasks(ctx, key)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", key).
			Msg("cache lookup failed")
		return nil, false
	}
	if tasks == nil {
		return nil, false
	}

	s.logger.Debug().
		Str("key", key).
		Int("count", len(tasks)).
		Msg("cache hit")
	return tasks, true
}

func (s *taskServiceImpl) cacheStore(ctx context.Context, key string, tasks []*models.Task) {
	if s.cache == nil {
		return
	}

	err := s.cache.SetTasks(ctx, key, tasks, s.cacheTTL)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", key).
			Msg("cache store failed")
	}
}
