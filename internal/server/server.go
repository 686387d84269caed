// Package server exposes the benchmark registry and the optimizer control
// loop over REST, so runs can be driven and inspected remotely. The core loop
// itself stays cancellation-free; the server checks for cancellation between
// trials.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"gonum.org/v1/gonum/floats"

	"github.com/copyleftdev/STEPPE/internal/benchmark"
	"github.com/copyleftdev/STEPPE/internal/config"
	"github.com/copyleftdev/STEPPE/internal/logging"
	"github.com/copyleftdev/STEPPE/internal/optimization"
	"github.com/copyleftdev/STEPPE/internal/optimization/gridsearch"
	"github.com/copyleftdev/STEPPE/internal/optimization/randomsearch"
	"github.com/copyleftdev/STEPPE/internal/space"
)

// Logger defines the logging interface used by the server.
type Logger interface {
	Debug(msg string, fields ...map[string]interface{})
	Info(msg string, fields ...map[string]interface{})
	Warn(msg string, fields ...map[string]interface{})
	Error(msg string, fields ...map[string]interface{})
	WithFields(fields map[string]interface{}) *logging.Logger
}

// AlgorithmFactory builds a fresh optimizer instance for one run.
type AlgorithmFactory func(seed uint64) optimization.Optimizer

// DefaultAlgorithms returns the built-in algorithm set.
func DefaultAlgorithms() map[string]AlgorithmFactory {
	return map[string]AlgorithmFactory{
		randomsearch.Name: func(seed uint64) optimization.Optimizer { return randomsearch.New(seed) },
		gridsearch.Name:   func(uint64) optimization.Optimizer { return gridsearch.New() },
	}
}

// RunState tracks one remotely requested run. Fields are guarded by the
// server's run mutex.
type RunState struct {
	ID         string     `json:"id"`
	Benchmark  string     `json:"benchmark"`
	Algorithm  string     `json:"algorithm"`
	Iterations int        `json:"iterations"`
	Status     string     `json:"status"` // pending, running, completed, failed, cancelled
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"`

	Trace         []float64 `json:"trace,omitempty"`
	Best          float64   `json:"best"`
	BestIteration int       `json:"best_iteration"`
	Error         string    `json:"error,omitempty"`

	cancel context.CancelFunc
}

// Server manages run state and serves the REST API.
type Server struct {
	cfg        *config.Config
	logger     Logger
	registry   *benchmark.Registry
	algorithms map[string]AlgorithmFactory
	metrics    *Metrics

	runsMu sync.RWMutex
	runs   map[string]*RunState
	seq    int

	wg sync.WaitGroup
}

// New creates a server over the given registry with the built-in algorithms.
func New(cfg *config.Config, logger Logger, registry *benchmark.Registry, metrics *Metrics) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		registry:   registry,
		algorithms: DefaultAlgorithms(),
		metrics:    metrics,
		runs:       make(map[string]*RunState),
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/benchmarks", s.handleListBenchmarks)
		r.Get("/algorithms", s.handleListAlgorithms)
		r.Post("/runs", s.handleCreateRun)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Delete("/runs/{id}", s.handleCancelRun)
	})
}

// Close cancels every unfinished run and waits for their goroutines.
func (s *Server) Close() error {
	s.runsMu.Lock()
	for _, run := range s.runs {
		if run.cancel != nil {
			run.cancel()
		}
	}
	s.runsMu.Unlock()

	s.wg.Wait()
	return nil
}

// paramInfo describes one search-space parameter in API responses.
type paramInfo struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Lower   *float64 `json:"lower,omitempty"`
	Upper   *float64 `json:"upper,omitempty"`
	Q       *float64 `json:"q,omitempty"`
	Options int      `json:"options,omitempty"`
}

func describeSpace(ss space.Space) []paramInfo {
	fp := func(v float64) *float64 { return &v }

	infos := make([]paramInfo, 0, len(ss))
	for _, p := range ss {
		info := paramInfo{Name: p.Name()}
		switch sp := p.(type) {
		case *space.Categorical[int]:
			info.Kind = "categorical_int"
			info.Options = sp.Count()
		case *space.Categorical[float64]:
			info.Kind = "categorical_float"
			info.Options = sp.Count()
		case *space.Categorical[string]:
			info.Kind = "categorical_str"
			info.Options = sp.Count()
		case *space.RandInt:
			info.Kind = "randint"
			info.Lower = fp(float64(sp.Lower()))
			info.Upper = fp(float64(sp.Upper()))
		case *space.Uniform:
			info.Kind = "uniform"
			info.Lower = fp(sp.Lower())
			info.Upper = fp(sp.Upper())
		case *space.QUniform:
			info.Kind = "quniform"
			info.Lower = fp(sp.Lower())
			info.Upper = fp(sp.Upper())
			info.Q = fp(sp.Q())
		case *space.LogUniform:
			info.Kind = "loguniform"
			info.Lower = fp(sp.Lower())
			info.Upper = fp(sp.Upper())
		case *space.QLogUniform:
			info.Kind = "qloguniform"
			info.Lower = fp(sp.Lower())
			info.Upper = fp(sp.Upper())
			info.Q = fp(sp.Q())
		case *space.Normal:
			info.Kind = "normal"
		case *space.QNormal:
			info.Kind = "qnormal"
			info.Q = fp(sp.Q())
		case *space.LogNormal:
			info.Kind = "lognormal"
		case *space.QLogNormal:
			info.Kind = "qlognormal"
			info.Q = fp(sp.Q())
		case *space.Choice:
			info.Kind = "choice"
			info.Options = sp.Count()
		}
		infos = append(infos, info)
	}
	return infos
}

type benchmarkInfo struct {
	Name       string      `json:"name"`
	Dims       int         `json:"dims"`
	Optimum    *float64    `json:"optimum,omitempty"`
	Parameters []paramInfo `json:"parameters"`
}

func (s *Server) handleListBenchmarks(w http.ResponseWriter, r *http.Request) {
	all := s.registry.All()
	infos := make([]benchmarkInfo, 0, len(all))
	for _, b := range all {
		ss := b.SearchSpace()
		info := benchmarkInfo{
			Name:       b.Name(),
			Dims:       len(ss),
			Parameters: describeSpace(ss),
		}
		if ref, ok := b.(benchmark.Reference); ok {
			v := ref.OptimumValue()
			info.Optimum = &v
		}
		infos = append(infos, info)
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"benchmarks": infos})
}

func (s *Server) handleListAlgorithms(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(s.algorithms))
	for name := range s.algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"algorithms": names})
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Benchmark  string `json:"benchmark"`
		Algorithm  string `json:"algorithm"`
		Iterations int    `json:"iterations"`
		Seed       uint64 `json:"seed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	bench, ok := s.registry.Get(req.Benchmark)
	if !ok {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown benchmark %q", req.Benchmark))
		return
	}
	factory, ok := s.algorithms[req.Algorithm]
	if !ok {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown algorithm %q", req.Algorithm))
		return
	}

	iterations := req.Iterations
	if iterations <= 0 {
		iterations = s.cfg.Runner.Iterations
	}
	if iterations > s.cfg.Server.MaxIterations {
		s.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("iterations %d exceeds the configured maximum %d", iterations, s.cfg.Server.MaxIterations))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	s.runsMu.Lock()
	s.seq++
	state := &RunState{
		ID:         fmt.Sprintf("run_%d", s.seq),
		Benchmark:  req.Benchmark,
		Algorithm:  req.Algorithm,
		Iterations: iterations,
		Status:     "pending",
		StartTime:  time.Now(),
		cancel:     cancel,
	}
	s.runs[state.ID] = state
	s.runsMu.Unlock()

	s.logger.Info("run accepted", map[string]interface{}{
		"run_id":     state.ID,
		"benchmark":  state.Benchmark,
		"algorithm":  state.Algorithm,
		"iterations": iterations,
	})

	s.wg.Add(1)
	go s.execute(ctx, state, bench, factory(req.Seed))

	s.respondJSON(w, http.StatusAccepted, map[string]string{
		"id":     state.ID,
		"status": state.Status,
	})
}

// execute drives one run, checking ctx between trials so DELETE can stop a
// run the core loop would otherwise carry to its budget.
func (s *Server) execute(ctx context.Context, state *RunState, bench benchmark.Benchmark, opt optimization.Optimizer) {
	defer s.wg.Done()
	defer state.cancel()

	s.setStatus(state, "running")
	s.metrics.RunsStarted.Inc()
	start := time.Now()

	trace := make([]float64, state.Iterations)
	status := "completed"
	var runErr error

	if err := opt.UpdateSearchSpace(bench.SearchSpace()); err != nil {
		runErr = err
	} else {
		for i := 0; i < state.Iterations; i++ {
			if ctx.Err() != nil {
				status = "cancelled"
				break
			}
			value, ok, err := optimization.Step(bench, opt, i)
			if err != nil {
				runErr = err
				break
			}
			if !ok {
				break
			}
			trace[i] = value
			s.metrics.Trials.WithLabelValues(state.Benchmark, state.Algorithm).Inc()
		}
		opt.Clear()
	}
	if runErr != nil {
		status = "failed"
	}

	now := time.Now()
	s.runsMu.Lock()
	if state.Status != "cancelled" {
		state.Status = status
	} else {
		status = "cancelled"
	}
	if runErr != nil {
		state.Error = runErr.Error()
	} else {
		state.Trace = trace
		state.BestIteration = floats.MinIdx(trace)
		state.Best = trace[state.BestIteration]
	}
	state.EndTime = &now
	s.runsMu.Unlock()

	s.metrics.RunsFinished.WithLabelValues(status).Inc()
	s.metrics.RunDuration.Observe(time.Since(start).Seconds())

	fields := map[string]interface{}{
		"run_id": state.ID,
		"status": status,
	}
	if runErr != nil {
		fields["error"] = runErr.Error()
		s.logger.Error("run failed", fields)
		return
	}
	s.logger.Info("run finished", fields)
}

func (s *Server) setStatus(state *RunState, status string) {
	s.runsMu.Lock()
	defer s.runsMu.Unlock()
	if state.Status == "cancelled" {
		return
	}
	state.Status = status
}

// runSummary is the trace-free view used by the run list.
type runSummary struct {
	ID        string `json:"id"`
	Benchmark string `json:"benchmark"`
	Algorithm string `json:"algorithm"`
	Status    string `json:"status"`
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	s.runsMu.RLock()
	summaries := make([]runSummary, 0, len(s.runs))
	for _, run := range s.runs {
		summaries = append(summaries, runSummary{
			ID:        run.ID,
			Benchmark: run.Benchmark,
			Algorithm: run.Algorithm,
			Status:    run.Status,
		})
	}
	s.runsMu.RUnlock()

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"runs": summaries})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.runsMu.RLock()
	run, ok := s.runs[id]
	var snapshot RunState
	if ok {
		snapshot = *run
	}
	s.runsMu.RUnlock()

	if !ok {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("unknown run %q", id))
		return
	}
	s.respondJSON(w, http.StatusOK, &snapshot)
}

func (s *Server) handleCancelRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.runsMu.Lock()
	run, ok := s.runs[id]
	if !ok {
		s.runsMu.Unlock()
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("unknown run %q", id))
		return
	}

	switch run.Status {
	case "completed", "failed", "cancelled":
		status := run.Status
		s.runsMu.Unlock()
		s.respondError(w, http.StatusConflict, fmt.Sprintf("run %q already %s", id, status))
		return
	}

	run.Status = "cancelled"
	if run.cancel != nil {
		run.cancel()
	}
	s.runsMu.Unlock()

	s.logger.Info("run cancelled", map[string]interface{}{"run_id": id})
	s.respondJSON(w, http.StatusOK, map[string]string{
		"id":     id,
		"status": "cancelled",
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.logger.Warn("request rejected", map[string]interface{}{
		"status":  status,
		"message": message,
	})
	s.respondJSON(w, status, map[string]string{"error": message})
}
