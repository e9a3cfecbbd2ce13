package config

import (
	"log"

	"github.com/redis/rueidis"

	"task-manager.com/task-manager/internal/sessions"
)

func NewRedisClient(addr string) rueidis.Client {
	redisClient, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress: []string{addr},
		},
	)
	if err != nil {
		log.Fatalf("failed to create redis client: %v", err)
	}

	return redisClient
}

// NewSessionStore builds the configured session backend and a function that
// releases it.
func NewSessionStore(cfg Config) (sessions.Store, func()) {
	if cfg.SessionBackend == SessionBackendMemory {
		log.Println("session store: in-memory, revocations are lost on restart")
		return sessions.NewMemoryStore(), func() {}
	}

	client := NewRedisClient(cfg.RedisAddr)
	return sessions.NewRedisStore(client, cfg.SessionKeyPrefix), client.Close
}
