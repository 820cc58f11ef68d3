package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"whisky-sommelier/internal/infrastructure/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         3,
			TTL:             time.Hour,
			CleanupInterval: time.Hour,
		},
	}
}

func TestManagerGetSet(t *testing.T) {
	m := NewManager(testConfig())
	defer m.Close()
	ctx := context.Background()

	t.Run("寫入後可讀回", func(t *testing.T) {
		if err := m.Set(ctx, "key-a", "value-a"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		got, err := m.Get(ctx, "key-a")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "value-a" {
			t.Errorf("Get() = %q, want value-a", got)
		}
	})

	t.Run("未寫入的鍵回傳未命中", func(t *testing.T) {
		if _, err := m.Get(ctx, "missing"); err == nil {
			t.Error("Get() error = nil, want cache miss")
		}
	})
}

func TestManagerTTLExpiry(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.TTL = 10 * time.Millisecond
	m := NewManager(cfg)
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "short-lived", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := m.Get(ctx, "short-lived"); err == nil {
		t.Error("Get() after TTL = nil error, want miss")
	}
}

func TestManagerLRUEviction(t *testing.T) {
	m := NewManager(testConfig())
	defer m.Close()
	ctx := context.Background()

	// 填滿容量後再寫入會觸發 LRU 淘汰而不是報錯
	for i := 0; i < 3; i++ {
		if err := m.Set(ctx, fmt.Sprintf("key-%d", i), "v"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	// 提升 key-1、key-2 的訪問次數，key-0 成為淘汰候選
	m.Get(ctx, "key-1")
	m.Get(ctx, "key-2")

	if err := m.Set(ctx, "key-3", "v"); err != nil {
		t.Fatalf("Set() after eviction error = %v", err)
	}
	if _, err := m.Get(ctx, "key-0"); err == nil {
		t.Error("Get(key-0) = nil error, want evicted")
	}
	if _, err := m.Get(ctx, "key-3"); err != nil {
		t.Errorf("Get(key-3) error = %v, want hit", err)
	}
}
