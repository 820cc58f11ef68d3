package cache

import (
	"context"
	"fmt"

	"whisky-sommelier/internal/infrastructure/config"
)

// Store 快取後端介面，值為序列化後的正規化響應
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// NewStore 依設定選擇快取後端。快取關閉時回傳 (nil, nil)，
// 呼叫端以 nil 判斷略過快取。
func NewStore(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	switch cfg.Cache.Backend {
	case "redis":
		return NewRedisStore(cfg)
	case "memory":
		return NewManager(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}
