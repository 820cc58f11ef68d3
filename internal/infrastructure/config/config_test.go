package config

import (
	"reflect"
	"testing"
	"time"
)

func TestEndpointList(t *testing.T) {
	tests := []struct {
		name      string
		endpoints string
		want      []string
	}{
		{
			"單一端點",
			"https://api.example.com/v1/messages",
			[]string{"https://api.example.com/v1/messages"},
		},
		{
			"多端點保留順序",
			"https://a.example.com,https://b.example.com,https://c.example.com",
			[]string{"https://a.example.com", "https://b.example.com", "https://c.example.com"},
		},
		{
			"去除空白與空項",
			" https://a.example.com , ,https://b.example.com ",
			[]string{"https://a.example.com", "https://b.example.com"},
		},
		{
			"空字串",
			"",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SommelierConfig{Endpoints: tt.endpoints}
			if got := s.EndpointList(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EndpointList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080},
			Sommelier: SommelierConfig{
				APIKey:    "test-key",
				Endpoints: "https://api.example.com",
				Model:     "test-model",
			},
			Cache: CacheConfig{
				Enabled:         true,
				Backend:         "memory",
				MaxSize:         100,
				TTL:             time.Hour,
				CleanupInterval: time.Minute,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"完整設定通過", func(c *Config) {}, false},
		{"缺 API Key", func(c *Config) { c.Sommelier.APIKey = "" }, true},
		{"缺端點", func(c *Config) { c.Sommelier.Endpoints = " , " }, true},
		{"缺模型", func(c *Config) { c.Sommelier.Model = "" }, true},
		{"缺埠號", func(c *Config) { c.Server.Port = 0 }, true},
		{"未知快取後端", func(c *Config) { c.Cache.Backend = "etcd" }, true},
		{"快取關閉時不檢查後端", func(c *Config) { c.Cache.Enabled = false; c.Cache.Backend = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
