package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reelscribe/internal/core/domain"
	"reelscribe/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// blockingRunner holds each run open until release is closed, so tests
// can observe the in-progress state deterministically.
type blockingRunner struct {
	started chan service.RunRequest
	release chan struct{}

	reportPath string
	err        error
}

func newBlockingRunner() *blockingRunner {
	return &blockingRunner{
		started: make(chan service.RunRequest, 1),
		release: make(chan struct{}),
	}
}

func (r *blockingRunner) Run(ctx context.Context, req service.RunRequest, status *service.Status) (*domain.Report, string, error) {
	r.started <- req
	<-r.release
	if r.err != nil {
		status.Fail(r.err)
		return nil, "", r.err
	}
	status.Complete(r.reportPath)
	return &domain.Report{}, r.reportPath, nil
}

func newTestServer(runner Runner) *Server {
	return New(runner, 10, zap.NewNop().Sugar())
}

func postStart(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/start_processing", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func waitForStatus(t *testing.T, router *gin.Engine, id, want string) service.StatusSnapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)

		var snap service.StatusSnapshot
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
		if string(snap.State) == want {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("session %s never reached status %q", id, want)
	return service.StatusSnapshot{}
}

func TestStartRequiresURL(t *testing.T) {
	router := newTestServer(newBlockingRunner()).Router()

	w := postStart(t, router, `{"limit": 5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Instagram URL is required")
}

func TestStartRejectsBadJSON(t *testing.T) {
	router := newTestServer(newBlockingRunner()).Router()

	w := postStart(t, router, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartAppliesDefaultLimit(t *testing.T) {
	runner := newBlockingRunner()
	router := newTestServer(runner).Router()

	w := postStart(t, router, `{"url": "https://instagram.com/testuser"}`)
	require.Equal(t, http.StatusOK, w.Code)

	req := <-runner.started
	assert.Equal(t, 10, req.Limit)
	assert.Equal(t, "https://instagram.com/testuser", req.Target)
	close(runner.release)
}

func TestConcurrentStartConflicts(t *testing.T) {
	runner := newBlockingRunner()
	router := newTestServer(runner).Router()

	first := postStart(t, router, `{"url": "https://instagram.com/testuser"}`)
	require.Equal(t, http.StatusOK, first.Code)
	<-runner.started

	second := postStart(t, router, `{"url": "https://instagram.com/other"}`)
	assert.Equal(t, http.StatusConflict, second.Code)

	close(runner.release)
}

func TestStatusUnknownSession(t *testing.T) {
	router := newTestServer(newBlockingRunner()).Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestSessionLifecycle(t *testing.T) {
	reportPath := filepath.Join(t.TempDir(), "results_20240315_093045.json")
	require.NoError(t, os.WriteFile(reportPath, []byte(`{"summary":{}}`), 0o644))

	runner := newBlockingRunner()
	runner.reportPath = reportPath
	router := newTestServer(runner).Router()

	w := postStart(t, router, `{"url": "https://instagram.com/testuser", "limit": 3}`)
	require.Equal(t, http.StatusOK, w.Code)
	id := sessionID(t, w)
	<-runner.started

	// Report is not downloadable while the run is in flight.
	dl := httptest.NewRecorder()
	router.ServeHTTP(dl, httptest.NewRequest(http.MethodGet, "/download/"+id, nil))
	assert.Equal(t, http.StatusNotFound, dl.Code)

	close(runner.release)
	snap := waitForStatus(t, router, id, string(service.StateCompleted))
	assert.Equal(t, 100, snap.Progress)
	assert.Equal(t, reportPath, snap.ReportPath)

	dl = httptest.NewRecorder()
	router.ServeHTTP(dl, httptest.NewRequest(http.MethodGet, "/download/"+id, nil))
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Contains(t, dl.Header().Get("Content-Disposition"), "results.json")
	assert.Equal(t, `{"summary":{}}`, dl.Body.String())
}

func TestSecondRunAllowedAfterFirstFinishes(t *testing.T) {
	runner := newBlockingRunner()
	router := newTestServer(runner).Router()

	w := postStart(t, router, `{"url": "https://instagram.com/testuser"}`)
	require.Equal(t, http.StatusOK, w.Code)
	id := sessionID(t, w)
	<-runner.started
	close(runner.release)
	waitForStatus(t, router, id, string(service.StateCompleted))

	// The session goroutine clears the active flag just after the status
	// turns completed, so allow a brief window for the next start.
	runner.release = make(chan struct{})
	deadline := time.Now().Add(2 * time.Second)
	for {
		second := postStart(t, router, `{"url": "https://instagram.com/testuser"}`)
		if second.Code == http.StatusOK {
			break
		}
		require.Equal(t, http.StatusConflict, second.Code)
		if !time.Now().Before(deadline) {
			t.Fatal("server never accepted a second run")
		}
		time.Sleep(5 * time.Millisecond)
	}
	<-runner.started
	close(runner.release)
}

func TestFailedRunReportsError(t *testing.T) {
	runner := newBlockingRunner()
	runner.err = domain.ErrSourceUnavailable
	router := newTestServer(runner).Router()

	w := postStart(t, router, `{"url": "https://instagram.com/testuser"}`)
	require.Equal(t, http.StatusOK, w.Code)
	id := sessionID(t, w)
	<-runner.started
	close(runner.release)

	snap := waitForStatus(t, router, id, string(service.StateError))
	assert.Contains(t, snap.Error, "source unavailable")

	dl := httptest.NewRecorder()
	router.ServeHTTP(dl, httptest.NewRequest(http.MethodGet, "/download/"+id, nil))
	assert.Equal(t, http.StatusNotFound, dl.Code)
}

func TestDownloadMissingFile(t *testing.T) {
	runner := newBlockingRunner()
	runner.reportPath = filepath.Join(t.TempDir(), "results_gone.json")
	router := newTestServer(runner).Router()

	w := postStart(t, router, `{"url": "https://instagram.com/testuser"}`)
	require.Equal(t, http.StatusOK, w.Code)
	id := sessionID(t, w)
	<-runner.started
	close(runner.release)
	waitForStatus(t, router, id, string(service.StateCompleted))

	dl := httptest.NewRecorder()
	router.ServeHTTP(dl, httptest.NewRequest(http.MethodGet, "/download/"+id, nil))
	assert.Equal(t, http.StatusNotFound, dl.Code)
	assert.Contains(t, dl.Body.String(), "results file missing")
}

func TestHealth(t *testing.T) {
	router := newTestServer(newBlockingRunner()).Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
