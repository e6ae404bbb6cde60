package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

// NewRedis opens a Redis client against the instance specified by the
// TEST_REDIS_URL environment variable.
//
// The test is skipped automatically if TEST_REDIS_URL is not set, mirroring
// NewPool. Tests should namespace their keys (e.g. with t.Name()) rather
// than flushing the shared instance. The client is closed automatically
// when the test finishes.
func NewRedis(t *testing.T) redis.UniversalClient {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set; skipping integration test")
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("testutil.NewRedis: parse url: %v", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		t.Fatalf("testutil.NewRedis: ping: %v", err)
	}

	t.Cleanup(func() { _ = client.Close() })
	return client
}
