package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"catalog/internal/auth"
	"catalog/internal/config"
	"catalog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(driver, dsn string) *config.Config {
	return &config.Config{
		AppPort:     ":0",
		Environment: "test",
		LogLevel:    "error",
		Database: config.DatabaseConfig{
			Driver:   driver,
			DSN:      dsn,
			LogLevel: "silent",
		},
		JWTSecret:   "test_jwt_secret",
		JWTTTL:      time.Hour,
		RabbitMQ:    config.RabbitMQConfig{Exchange: "catalog"},
		SeedOnStart: true,
		Policy:      auth.DefaultPolicy(),
	}
}

func TestBuildAppSeedsAndServes(t *testing.T) {
	for _, driver := range []string{config.DriverMemory, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := testConfig(driver, filepath.Join(t.TempDir(), "catalog.db"))
			app, cleanup, err := buildApp(context.Background(), cfg, zap.NewNop())
			require.NoError(t, err)
			defer cleanup()

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			creds, _ := json.Marshal(map[string]string{"email": "test1@google.com", "password": "Abc123"})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(creds))
			req.Header.Set("Content-Type", "application/json")
			resp, err = app.Test(req, -1)
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var login struct {
				Token string `json:"token"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))

			req = httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=50", nil)
			req.Header.Set("Authorization", "Bearer "+login.Token)
			resp, err = app.Test(req, -1)
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var products []models.Product
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
			assert.Len(t, products, 6)
		})
	}
}

func TestBuildAppFailsOnUnreachableDatabase(t *testing.T) {
	cfg := testConfig(config.DriverSQLite, filepath.Join(t.TempDir(), "missing", "dir", "catalog.db"))

	_, cleanup, err := buildApp(context.Background(), cfg, zap.NewNop())
	defer cleanup()
	assert.Error(t, err)
}
