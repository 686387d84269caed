package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/STEPPE/internal/benchmark/synthetic"
	"github.com/copyleftdev/STEPPE/internal/config"
	"github.com/copyleftdev/STEPPE/internal/logging"
)

func testServer(t *testing.T) (*Server, *chi.Mux) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Runner.Iterations = 100
	cfg.Server.MaxIterations = 10000

	logger := logging.New(logging.ErrorLevel, io.Discard)
	srv := New(cfg, logger, synthetic.Suite(), NewMetrics(prometheus.NewRegistry()))

	r := chi.NewRouter()
	srv.RegisterRoutes(r)
	return srv, r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}

func TestListBenchmarks(t *testing.T) {
	_, r := testServer(t)

	rec := doJSON(t, r, http.MethodGet, "/api/v1/benchmarks", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Benchmarks []struct {
			Name       string   `json:"name"`
			Dims       int      `json:"dims"`
			Optimum    *float64 `json:"optimum"`
			Parameters []struct {
				Name string `json:"name"`
				Kind string `json:"kind"`
			} `json:"parameters"`
		} `json:"benchmarks"`
	}
	decodeBody(t, rec, &body)

	require.NotEmpty(t, body.Benchmarks)
	byName := map[string]int{}
	for i, b := range body.Benchmarks {
		byName[b.Name] = i
	}

	easom := body.Benchmarks[byName["easom"]]
	assert.Equal(t, 2, easom.Dims)
	require.NotNil(t, easom.Optimum)
	assert.Equal(t, -1.0, *easom.Optimum)
	require.Len(t, easom.Parameters, 2)
	assert.Equal(t, "uniform", easom.Parameters[0].Kind)
}

func TestListAlgorithms(t *testing.T) {
	_, r := testServer(t)

	rec := doJSON(t, r, http.MethodGet, "/api/v1/algorithms", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Algorithms []string `json:"algorithms"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, []string{"grid_search", "random_search"}, body.Algorithms)
}

func TestCreateRunLifecycle(t *testing.T) {
	srv, r := testServer(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/runs", map[string]interface{}{
		"benchmark":  "matyas",
		"algorithm":  "random_search",
		"iterations": 50,
		"seed":       42,
	})
	require.Equal(t, http.StatusAccepted, rec.Code)

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeBody(t, rec, &created)
	require.NotEmpty(t, created.ID)

	// Wait for the background run to finish before inspecting it.
	srv.wg.Wait()

	rec = doJSON(t, r, http.MethodGet, "/api/v1/runs/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var run RunState
	decodeBody(t, rec, &run)
	assert.Equal(t, "completed", run.Status)
	assert.Equal(t, "matyas", run.Benchmark)
	require.Len(t, run.Trace, 50)
	assert.Equal(t, run.Trace[run.BestIteration], run.Best)
	require.NotNil(t, run.EndTime)
}

func TestCreateRunValidation(t *testing.T) {
	_, r := testServer(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/runs", map[string]interface{}{
		"benchmark": "no-such-function",
		"algorithm": "random_search",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/v1/runs", map[string]interface{}{
		"benchmark": "matyas",
		"algorithm": "simulated_annealing",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/v1/runs", map[string]interface{}{
		"benchmark":  "matyas",
		"algorithm":  "random_search",
		"iterations": 10001,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "iterations above the configured cap are rejected")
}

func TestGridRejectionIsRecorded(t *testing.T) {
	srv, r := testServer(t)

	// Grid search cannot enumerate the continuous synthetic spaces; the run
	// fails and records the error instead of crashing the server.
	rec := doJSON(t, r, http.MethodPost, "/api/v1/runs", map[string]interface{}{
		"benchmark":  "booth",
		"algorithm":  "grid_search",
		"iterations": 10,
	})
	require.Equal(t, http.StatusAccepted, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &created)
	srv.wg.Wait()

	rec = doJSON(t, r, http.MethodGet, "/api/v1/runs/"+created.ID, nil)
	var run RunState
	decodeBody(t, rec, &run)
	assert.Equal(t, "failed", run.Status)
	assert.Contains(t, run.Error, "unsupported_kind")
	assert.Nil(t, run.Trace)
}

func TestListRuns(t *testing.T) {
	srv, r := testServer(t)

	for i := 0; i < 2; i++ {
		rec := doJSON(t, r, http.MethodPost, "/api/v1/runs", map[string]interface{}{
			"benchmark":  "booth",
			"algorithm":  "random_search",
			"iterations": 10,
		})
		require.Equal(t, http.StatusAccepted, rec.Code)
	}
	srv.wg.Wait()

	rec := doJSON(t, r, http.MethodGet, "/api/v1/runs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Runs []runSummary `json:"runs"`
	}
	decodeBody(t, rec, &body)
	require.Len(t, body.Runs, 2)
	assert.Equal(t, "run_1", body.Runs[0].ID)
	assert.Equal(t, "run_2", body.Runs[1].ID)
}

func TestGetRunNotFound(t *testing.T) {
	_, r := testServer(t)

	rec := doJSON(t, r, http.MethodGet, "/api/v1/runs/run_404", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelFinishedRunConflicts(t *testing.T) {
	srv, r := testServer(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/runs", map[string]interface{}{
		"benchmark":  "booth",
		"algorithm":  "random_search",
		"iterations": 5,
	})
	require.Equal(t, http.StatusAccepted, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &created)
	srv.wg.Wait()

	rec = doJSON(t, r, http.MethodDelete, "/api/v1/runs/"+created.ID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/api/v1/runs/run_404", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClose(t *testing.T) {
	srv, r := testServer(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/runs", map[string]interface{}{
		"benchmark":  "ackley1",
		"algorithm":  "random_search",
		"iterations": 50,
	})
	require.Equal(t, http.StatusAccepted, rec.Code)

	require.NoError(t, srv.Close())
}
