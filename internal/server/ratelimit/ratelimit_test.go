package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  5,
		DefaultWindow: time.Minute,
		Whitelist:     make(map[string]bool),
		Blacklist:     make(map[string]bool),
		EndpointConfigs: []EndpointConfig{
			{Path: "/profiles/", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
		},
	}
}

func TestLimiter_DefaultLimit(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/documents/abc", "GET")
		assert.True(t, allowed, "request %d should be allowed", i)
	}

	allowed, info := l.Allow("1.2.3.4", "/documents/abc", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 5, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_EndpointBudget(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	allowed, _ := l.Allow("1.2.3.4", "/profiles/abc/generate", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/profiles/abc/generate", "POST")
	assert.True(t, allowed)
	allowed, info := l.Allow("1.2.3.4", "/profiles/abc/generate", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 2, info.Limit)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	l.Allow("1.1.1.1", "/profiles/abc/generate", "POST")
	l.Allow("1.1.1.1", "/profiles/abc/generate", "POST")
	blocked, _ := l.Allow("1.1.1.1", "/profiles/abc/generate", "POST")
	assert.False(t, blocked)

	allowed, _ := l.Allow("2.2.2.2", "/profiles/abc/generate", "POST")
	assert.True(t, allowed, "a different client has its own bucket")
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/health", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/profiles/abc/generate", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	cfg := testConfig()
	cfg.Whitelist["9.9.9.9"] = true
	cfg.Blacklist["6.6.6.6"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 20; i++ {
		allowed, _ := l.Allow("9.9.9.9", "/profiles/abc/generate", "POST")
		assert.True(t, allowed)
	}

	allowed, _ := l.Allow("6.6.6.6", "/health", "POST")
	assert.False(t, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/ingest-job", Method: "POST", Limit: 10},
		{Path: "/profiles/", Method: "POST", Limit: 2},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{"exact match", "/ingest-job", "POST", 10, false},
		{"prefix match", "/profiles/abc/generate", "POST", 2, false},
		{"method mismatch", "/profiles/abc", "GET", 0, true},
		{"no match", "/documents/abc", "DELETE", 0, true},
		{"health special case", "/health", "GET", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			assert.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}
