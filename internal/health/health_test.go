package health

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCheckAll(t *testing.T) {
	r := NewRegistry(time.Second)
	down := errors.New("down")

	r.Register("fixtures", CheckFunc(func(context.Context) error { return nil }))
	r.Register("redis", CheckFunc(func(context.Context) error { return down }))

	assert.Equal(t, []string{"fixtures", "redis"}, r.List())

	results := r.CheckAll(context.Background())
	require.Len(t, results, 2)
	assert.NoError(t, results["fixtures"])
	assert.ErrorIs(t, results["redis"], down)
	assert.False(t, Healthy(results))

	r.Unregister("redis")
	assert.True(t, Healthy(r.CheckAll(context.Background())))
}

func TestRegistryAppliesTimeout(t *testing.T) {
	r := NewRegistry(10 * time.Millisecond)
	r.Register("slow", CheckFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	results := r.CheckAll(context.Background())
	assert.ErrorIs(t, results["slow"], context.DeadlineExceeded)
}

func TestEmptyRegistryIsHealthy(t *testing.T) {
	assert.True(t, Healthy(NewRegistry(0).CheckAll(context.Background())))
}

// TestPostgresChecker runs against a real database when TEST_DATABASE_DSN is set
func TestPostgresChecker(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping")
	}

	ctx := context.Background()
	p, err := NewPostgresChecker(ctx, dsn)
	require.NoError(t, err)
	defer p.Close()

	assert.NoError(t, p.HealthCheck(ctx))
}
