package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moviecatalog/pkg/api"
	"moviecatalog/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0, Mode: "test", ShutdownTimeout: time.Second},
		Store:  config.StoreConfig{Driver: driver, DSN: ":memory:"},
		Log:    config.LogConfig{Level: "error", Format: "json"},
	}
}

func TestBuildHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, driver := range []string{config.StoreMemory, config.StoreSQLite} {
		t.Run(driver, func(t *testing.T) {
			handler, err := buildHandler(testConfig(driver))
			require.NoError(t, err)

			w := httptest.NewRecorder()
			api.NewRouter(handler).ServeHTTP(w, httptest.NewRequest("GET", "/manage/health", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}

	_, err := buildHandler(testConfig("postgres"))
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(config.StoreMemory)
	handler, err := buildHandler(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, api.NewRouter(handler)) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
