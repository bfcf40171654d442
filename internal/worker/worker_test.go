package worker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"mini-spark/internal/common"
	"mini-spark/internal/config"
)

// fakeMaster is a minimal stand-in for the master's HTTP surface, just
// enough to drive registration, one dispatched task, and completion.
type fakeMaster struct {
	jobID        string
	job          common.Job
	dispatched   int32
	completedOK  chan bool
	registration chan string
}

func newFakeMaster(job common.Job) *fakeMaster {
	return &fakeMaster{
		job:          job,
		completedOK:  make(chan bool, 1),
		registration: make(chan string, 1),
	}
}

func (f *fakeMaster) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/workers/register", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(common.RegisterResponse{WorkerID: "worker-1"})
		f.registration <- "worker-1"
	})
	mux.HandleFunc("POST /api/v1/workers/heartbeat", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(common.OKResponse{OK: true})
	})
	mux.HandleFunc("GET /api/v1/jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.job)
	})
	mux.HandleFunc("POST /api/v1/tasks/next", func(w http.ResponseWriter, r *http.Request) {
		if atomic.CompareAndSwapInt32(&f.dispatched, 0, 1) {
			task := common.Task{
				ID: "task-1", JobID: f.job.ID, NodeID: "read",
				InputPath: f.job.InputGlob, OutputPath: f.job.OutputDir + "/out.tsv",
				Parallelism: 1,
			}
			json.NewEncoder(w).Encode(common.NextTaskResponse{Task: &task})
			return
		}
		json.NewEncoder(w).Encode(common.NextTaskResponse{Task: nil})
	})
	mux.HandleFunc("POST /api/v1/tasks/complete", func(w http.ResponseWriter, r *http.Request) {
		var req common.CompleteTaskRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(common.OKResponse{OK: true})
		f.completedOK <- req.Success
	})
	return mux
}

func TestWorkerRegistersPollsAndCompletesATask(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(input, []byte("hello world\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	job := common.Job{
		ID:        "job-1",
		Status:    common.JobRunning,
		InputGlob: input,
		OutputDir: dir,
		DAG: common.DAG{
			Nodes: []common.DAGNode{{ID: "read", Op: "read_text"}},
		},
	}
	fm := newFakeMaster(job)
	srv := httptest.NewServer(fm.handler())
	defer srv.Close()

	cfg := config.WorkerConfig{
		MasterURL:    srv.URL,
		Hostname:     "test-worker",
		Concurrency:  1,
		TmpDir:       filepath.Join(dir, "tmp"),
		MaxInMemKeys: 100,
	}
	w := New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	select {
	case <-fm.registration:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never registered")
	}

	select {
	case success := <-fm.completedOK:
		if !success {
			t.Fatal("expected the task to complete successfully")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("worker never reported task completion")
	}
}
