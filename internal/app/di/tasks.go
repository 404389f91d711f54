package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	taskadapters "taskboard/internal/feature/tasks/adapters"
	"taskboard/internal/feature/tasks/usecase"
	"taskboard/internal/platform/cache"
)

// NewTaskRepository creates the task repository, wrapped in the Redis
// read-through cache when Redis is available.
func NewTaskRepository(rdb *redis.Client, db *gorm.DB) usecase.TaskRepository {
	repo := taskadapters.NewTaskPostgres(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingTaskRepository(rdb, 5*time.Minute, repo, "tasks")
}
