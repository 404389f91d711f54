// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"taskboard/internal/feature/tasks/domain/entity"
	"taskboard/internal/feature/tasks/usecase"
)

// CachingTaskRepository decorates a TaskRepository with Redis caching of
// per-user task lists. It implements the decorator pattern, transparently
// adding caching without modifying the underlying repository. Single-task
// lookups pass through; every write invalidates the owner's list entry.
type CachingTaskRepository struct {
	inner     usecase.TaskRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure CachingTaskRepository implements TaskRepository.
var _ usecase.TaskRepository = (*CachingTaskRepository)(nil)

// NewCachingTaskRepository decorates a TaskRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "tasks".
func NewCachingTaskRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TaskRepository, namespace string) *CachingTaskRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "tasks"
	}
	return &CachingTaskRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// listKey generates the cache key for a user's task list.
func (c *CachingTaskRepository) listKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", c.namespace, userID)
}

// invalidate drops a user's cached list. Best effort: cache deletion failures
// must not fail the write that triggered them.
func (c *CachingTaskRepository) invalidate(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.listKey(userID)).Err()
}

// Create inserts the task and invalidates the owner's cached list.
func (c *CachingTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	if err := c.inner.Create(ctx, task); err != nil {
		return err
	}
	c.invalidate(ctx, task.UserID)
	return nil
}

// FindByID passes through to the underlying repository.
func (c *CachingTaskRepository) FindByID(ctx context.Context, id uint) (*entity.Task, error) {
	return c.inner.FindByID(ctx, id)
}

// FindByUserID retrieves a user's tasks, checking cache first then falling
// back to the database.
func (c *CachingTaskRepository) FindByUserID(ctx context.Context, userID uint) ([]*entity.Task, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByUserID(ctx, userID)
	}

	key := c.listKey(userID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []*entity.Task
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Update saves the task and invalidates the owner's cached list.
func (c *CachingTaskRepository) Update(ctx context.Context, task *entity.Task) error {
	if err := c.inner.Update(ctx, task); err != nil {
		return err
	}
	c.invalidate(ctx, task.UserID)
	return nil
}

// Delete removes the task and invalidates the owner's cached list.
// The owner is looked up first; by the time the delete lands the row is gone.
func (c *CachingTaskRepository) Delete(ctx context.Context, id uint) error {
	var ownerID uint
	if task, err := c.inner.FindByID(ctx, id); err == nil {
		ownerID = task.UserID
	}
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	if ownerID != 0 {
		c.invalidate(ctx, ownerID)
	}
	return nil
}
