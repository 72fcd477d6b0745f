package integration_test

import (
	"os"
	"sync"
	"testing"

	"jobportal_backend/test/helpers"
)

var (
	globalTestServer *helpers.TestServer
	serverOnce       sync.Once
)

// GetTestServer returns the shared test server, creating it on first use.
func GetTestServer(t *testing.T) *helpers.TestServer {
	serverOnce.Do(func() {
		os.Setenv("SERVER_ENV", "test")
		os.Setenv("SERVER_PORT", "4001")
		// The value only switches config into env mode; tests open their
		// own sqlite database.
		os.Setenv("DATABASE_URL", "sqlite::memory:")
		os.Setenv("JWT_SECRET", "integration_test_secret_12345")
		// All requests share one client IP, so the per-IP limits must not
		// interfere across tests.
		os.Setenv("RATE_LIMIT_OTP", "10000")
		os.Setenv("RATE_LIMIT_RESET", "10000")

		globalTestServer = helpers.NewTestServer(t)
	})
	return globalTestServer
}

func TestMain(m *testing.M) {
	code := m.Run()
	if globalTestServer != nil {
		globalTestServer.Close()
	}
	os.Exit(code)
}
