package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"taskboard/internal/app/di"
	"taskboard/internal/app/router"
	authadapters "taskboard/internal/feature/auth/adapters"
	authhandler "taskboard/internal/feature/auth/transport/handler"
	authusecase "taskboard/internal/feature/auth/usecase"
	taskhandler "taskboard/internal/feature/tasks/transport/handler"
	taskusecase "taskboard/internal/feature/tasks/usecase"
	"taskboard/internal/platform/csrf"
	infradb "taskboard/internal/platform/db"
	infraredis "taskboard/internal/platform/redis"
	"taskboard/internal/shared/ratelimiter"
)

func main() {
	// .env is optional; containers inject real env vars directly
	_ = godotenv.Load()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Sessions fall back to Postgres; task cache disabled.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	taskRepo := di.NewTaskRepository(rdb, db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, 0, 0)
	tasksUC := taskusecase.NewTasksUsecase(taskRepo)

	// Handler
	loginLimiter := ratelimiter.NewAttemptLimiter(10, time.Minute)
	authH := authhandler.NewAuthHandler(authUC, loginLimiter)
	taskH := taskhandler.NewTaskHandler(tasksUC)

	// CSRF keys: persistent keys keep tokens valid across restarts
	hashKey := []byte(os.Getenv("CSRF_HASH_KEY"))
	if len(hashKey) == 0 {
		slog.Warn("CSRF_HASH_KEY is not set; using a random key, tokens reset on restart")
		hashKey = securecookie.GenerateRandomKey(32)
	}
	var blockKey []byte
	if k := os.Getenv("CSRF_BLOCK_KEY"); k != "" {
		blockKey = []byte(k)
	}
	protection := csrf.New(hashKey, blockKey)

	h := router.NewRouter(authH, taskH, authUC, protection)

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	slog.Info("server listening", "addr", addr)
	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal(err)
	}
}
