package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperengineering/statefacts/internal/api"
	"github.com/hyperengineering/statefacts/internal/reference"
	"github.com/hyperengineering/statefacts/internal/states"
	"github.com/hyperengineering/statefacts/internal/store"
)

// testEnv is a running server backed by a SQLite file.
type testEnv struct {
	server *httptest.Server
	store  *store.SQLiteStore
	path   string
}

// startServer serves the full router over a fresh SQLite database at path.
// An empty path creates one in a temp dir.
func startServer(t *testing.T, path string) *testEnv {
	t.Helper()
	if path == "" {
		path = filepath.Join(t.TempDir(), "statefacts.db")
	}

	refs, err := reference.Load()
	if err != nil {
		t.Fatalf("reference.Load() error = %v", err)
	}
	db, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}

	svc := states.NewService(refs, store.NewOverlays(db), nil)
	router := api.NewRouter(api.NewHandler(svc, "e2e"), 10000, time.Millisecond)
	srv := httptest.NewServer(router)

	env := &testEnv{server: srv, store: db, path: path}
	t.Cleanup(env.stop)
	return env
}

// stop closes the server and the database. Safe to call twice.
func (e *testEnv) stop() {
	if e.server != nil {
		e.server.Close()
		e.server = nil
	}
	if e.store != nil {
		e.store.Close()
		e.store = nil
	}
}

// call sends a request with an optional JSON body and decodes the response
// into out when out is non-nil.
func (e *testEnv) call(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}
