package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// This test runs only when RUN_REDIS_INTEGRATION=true and a server is reachable
// at REDIS_URL (default redis://localhost:6379/15).
func TestRedisStore_Integration(t *testing.T) {
	if os.Getenv("RUN_REDIS_INTEGRATION") != "true" {
		t.Skip("skipping redis integration test; set RUN_REDIS_INTEGRATION=true to run")
	}

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/15"
	}

	ctx := context.Background()
	client, err := NewRedisClient(ctx, url)
	require.NoError(t, err)
	defer client.Close()

	exerciseStore(t, NewRedisStore(client, time.Minute))
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not a url")
	require.Error(t, err)
}
