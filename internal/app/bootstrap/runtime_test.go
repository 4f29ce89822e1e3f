package bootstrap

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	appconfig "github.com/tukang-design/studio-api/internal/config"
)

func TestBuildRedisClientDisabled(t *testing.T) {
	if c := BuildRedisClient(context.Background(), &appconfig.Config{}, nil, true); c != nil {
		t.Error("expected nil client without an address")
	}
	if c := BuildRedisClient(context.Background(), nil, nil, true); c != nil {
		t.Error("expected nil client without config")
	}
}

func TestBuildRedisClientVerifies(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &appconfig.Config{RedisAddr: mr.Addr()}
	client := BuildRedisClient(context.Background(), cfg, nil, true)
	if client == nil {
		t.Fatal("expected a client for a reachable server")
	}
	defer client.Close()

	// An unreachable server with verify on degrades to nil.
	mr.Close()
	if c := BuildRedisClient(context.Background(), cfg, nil, true); c != nil {
		t.Error("expected nil client when ping fails")
	}
}

func TestBuildPgxPoolDisabled(t *testing.T) {
	if p := BuildPgxPool(context.Background(), &appconfig.Config{}, nil); p != nil {
		t.Error("expected nil pool without a database url")
	}
}
