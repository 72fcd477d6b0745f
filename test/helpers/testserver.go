package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobportal_backend/database"
	"jobportal_backend/internal/app"
	"jobportal_backend/internal/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
}

// NewTestServer builds the full router on an in-memory sqlite database.
// Expects config to come from environment variables (DATABASE_URL set).
func NewTestServer(t *testing.T) *TestServer {
	config.LoadConfig()
	cfg := config.GetConfig()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	// A shared in-memory database disappears when its last connection
	// closes; one connection also sidesteps sqlite write contention.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get *sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	router, _ := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)

	return &TestServer{
		Server: server,
		DB:     db,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// ClearTables wipes all rows so a test can assert on exact counts.
func (ts *TestServer) ClearTables(t *testing.T) {
	for _, table := range []string{"applications", "jobs", "otps", "password_resets", "users"} {
		if err := ts.DB.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to clear table %s: %v", table, err)
		}
	}
}

// SendRequest performs a JSON request against the test server and returns
// the response plus its body as a string.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("failed to send request: %v", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return res, string(resBody)
}
