package service

import (
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tripify-backend/internal/cache"
	"tripify-backend/internal/config"
	"tripify-backend/internal/db"
	"tripify-backend/internal/quiz"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open(&config.APIConfig{
		Context: config.ContextConfig{TimeZone: "UTC"},
		DB: config.DBConfig{
			Driver: "sqlite",
			Names:  config.DBNames{TRIPIFY: ":memory:"},
			Pool:   config.DBPoolConfig{MaxOpenConns: 1},
		},
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func newTestCache(t *testing.T) (*cache.MoodCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewMoodCache(client, time.Hour), server
}

// steppingClock returns a time source that advances one minute per call.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	next := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

func newTestEngine(t *testing.T) *quiz.Engine {
	t.Helper()
	engine, err := quiz.NewEngineFromFile("", quiz.WithClock(steppingClock()))
	require.NoError(t, err)
	return engine
}

func uniformAnswers(option int) quiz.AnswerSet {
	answers := quiz.AnswerSet{}
	for id := 1; id <= 10; id++ {
		answers[id] = option
	}
	return answers
}
