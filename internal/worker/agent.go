/*
Nombre del archivo: agent.go
Descripcion: Agente de comunicacion del nodo Worker con el Master.
             A diferencia del modelo anterior por push, el worker pide
             tareas activamente (POST /api/v1/tasks/next) en lugar de
             exponer un endpoint para recibirlas. Maneja registro
             inicial con reintento, heartbeats periodicos con metricas
             de runtime, y el loop de sondeo que respeta el limite de
             concurrencia local.
*/

package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"mini-spark/internal/common"
	"mini-spark/internal/config"
	"mini-spark/internal/logx"
)

const (
	registerRetryInterval = 2 * time.Second
	heartbeatInterval     = 3 * time.Second
	emptyPollInterval     = 500 * time.Millisecond
)

// Worker representa un nodo trabajador pull-based del cluster.
type Worker struct {
	id          string
	cfg         config.WorkerConfig
	client      *http.Client
	activeTasks int32

	jobCacheMu sync.Mutex
	jobCache   map[string]common.Job
}

// New crea un Worker sin registrar todavia en el Master.
func New(cfg config.WorkerConfig) *Worker {
	if cfg.Hostname == "" {
		if h, err := os.Hostname(); err == nil {
			cfg.Hostname = h
		} else {
			cfg.Hostname = "worker"
		}
	}
	return &Worker{
		cfg:      cfg,
		client:   &http.Client{Timeout: 30 * time.Second},
		jobCache: make(map[string]common.Job),
	}
}

// Run registra el worker, arranca el loop de heartbeats y bloquea
// sondeando tareas hasta que ctx se cancele.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.registerWithRetry(ctx); err != nil {
		return err
	}

	go w.heartbeatLoop(ctx)
	w.pollLoop(ctx)
	return nil
}

func (w *Worker) registerWithRetry(ctx context.Context) error {
	for {
		if err := w.register(); err != nil {
			logx.Warn("fallo registrando worker, reintentando", map[string]interface{}{"error": err.Error()})
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(registerRetryInterval):
				continue
			}
		}
		logx.Info("worker registrado en master", map[string]interface{}{"worker_id": w.id})
		return nil
	}
}

func (w *Worker) register() error {
	req := common.RegisterRequest{Hostname: w.cfg.Hostname, MaxConcurrency: w.cfg.Concurrency}
	var resp common.RegisterResponse
	if err := w.postJSON("/api/v1/workers/register", req, &resp); err != nil {
		return err
	}
	w.id = resp.WorkerID
	return nil
}

func (w *Worker) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sendHeartbeat()
		}
	}
}

func (w *Worker) sendHeartbeat() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	cpu := float64(runtime.NumGoroutine())
	memBytes := mem.Alloc

	req := common.HeartbeatRequest{WorkerID: w.id, CPUPercent: &cpu, MemBytes: &memBytes}
	var resp common.OKResponse
	if err := w.postJSON("/api/v1/workers/heartbeat", req, &resp); err != nil {
		logx.Warn("fallo enviando heartbeat", map[string]interface{}{"error": err.Error()})
	}
}

// pollLoop pide tareas mientras haya cupo de concurrencia local. Una
// respuesta sin tarea espera emptyPollInterval antes de reintentar.
func (w *Worker) pollLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if int(atomic.LoadInt32(&w.activeTasks)) >= w.cfg.Concurrency {
			time.Sleep(emptyPollInterval)
			continue
		}

		task, err := w.fetchNextTask()
		if err != nil {
			logx.Warn("fallo pidiendo tarea", map[string]interface{}{"error": err.Error()})
			time.Sleep(emptyPollInterval)
			continue
		}
		if task == nil {
			time.Sleep(emptyPollInterval)
			continue
		}

		atomic.AddInt32(&w.activeTasks, 1)
		go func(t common.Task) {
			defer atomic.AddInt32(&w.activeTasks, -1)
			w.runTask(t)
		}(*task)
	}
}

func (w *Worker) fetchNextTask() (*common.Task, error) {
	req := common.NextTaskRequest{WorkerID: w.id}
	var resp common.NextTaskResponse
	if err := w.postJSON("/api/v1/tasks/next", req, &resp); err != nil {
		return nil, err
	}
	return resp.Task, nil
}

func (w *Worker) postJSON(path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := w.client.Post(w.cfg.MasterURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeOrError(resp, out)
}

func (w *Worker) getJSON(path string, out interface{}) error {
	resp, err := w.client.Get(w.cfg.MasterURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeOrError(resp, out)
}

func decodeOrError(resp *http.Response, out interface{}) error {
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("master respondio %d: %s", resp.StatusCode, string(b))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
