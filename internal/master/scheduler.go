/*
Nombre del archivo: scheduler.go
Descripcion: Planificador pull-based del nodo Master. Los workers piden
             tareas (DispatchTask) en lugar de recibirlas empujadas;
             el Master solo limita cuantas tareas en vuelo tiene cada
             worker contra su max_concurrency declarado. CompleteTask
             aplica la politica de reintentos y cierra el job cuando
             ya no quedan tareas pendientes ni en vuelo. SweepDeadWorkers
             es el barrido periodico de tolerancia a fallos.
*/

package master

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"mini-spark/internal/common"
	"mini-spark/internal/logx"
)

// RegisterWorker da de alta un worker nuevo y devuelve su id asignado.
func (m *Master) RegisterWorker(req common.RegisterRequest) string {
	id := uuid.New().String()
	maxConcurrency := req.MaxConcurrency
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	m.workers.put(&common.WorkerMeta{
		ID:             id,
		Hostname:       req.Hostname,
		LastHeartbeat:  m.now(),
		MaxConcurrency: maxConcurrency,
	})
	logx.Info("worker registrado", map[string]interface{}{"worker_id": id, "hostname": req.Hostname})
	return id
}

// Heartbeat refresca el timestamp y las metricas opcionales de un
// worker. Devuelve ErrNotFound si el worker no esta registrado.
func (m *Master) Heartbeat(req common.HeartbeatRequest) error {
	now := m.now()
	ok := m.workers.touch(req.WorkerID, func(w *common.WorkerMeta) {
		w.LastHeartbeat = now
		w.Dead = false
		if req.CPUPercent != nil {
			w.LastCPUPercent = req.CPUPercent
		}
		if req.MemBytes != nil {
			w.LastMemBytes = req.MemBytes
		}
	})
	if !ok {
		return fmt.Errorf("%w: worker %s", common.ErrNotFound, req.WorkerID)
	}
	return nil
}

// DispatchTask entrega la siguiente tarea disponible a workerID, o nil
// si la cola esta vacia o el worker ya esta en su limite de
// concurrencia. Devuelve ErrNotFound si el worker no esta registrado.
func (m *Master) DispatchTask(workerID string) (*common.Task, error) {
	worker, ok := m.workers.get(workerID)
	if !ok {
		return nil, fmt.Errorf("%w: worker %s", common.ErrNotFound, workerID)
	}
	if worker.Dead {
		return nil, fmt.Errorf("%w: worker %s muerto", common.ErrNotFound, workerID)
	}
	if m.inFlight.countForWorker(workerID) >= worker.MaxConcurrency {
		return nil, nil
	}

	task, ok := m.queue.popFront()
	if !ok {
		return nil, nil
	}

	now := m.now()
	m.inFlight.put(common.InFlight{Task: task, WorkerID: workerID, StartedAt: now})
	m.workers.touch(workerID, func(w *common.WorkerMeta) { w.TasksStarted++ })
	m.jobs.withLock(task.JobID, func(e *jobEntry) {
		if e.job.Status == common.JobAccepted {
			e.job.Status = common.JobRunning
			e.job.StartedAt = &now
		}
	})

	return &task, nil
}

// CompleteTask registra el resultado reportado por un worker. En caso
// de fallo, reencola la tarea con un nuevo intento hasta agotar
// MaxTaskAttempts, momento en el cual el job entero pasa a FAILED.
func (m *Master) CompleteTask(taskID string, success bool) error {
	entry, ok := m.inFlight.take(taskID)
	if !ok {
		return fmt.Errorf("%w: tarea %s no esta en vuelo", common.ErrNotFound, taskID)
	}
	task := entry.Task
	elapsed := m.now().Sub(entry.StartedAt)

	m.workers.touch(entry.WorkerID, func(w *common.WorkerMeta) {
		w.TotalTaskTimeMs += elapsed.Milliseconds()
		if success {
			w.TasksSucceeded++
		} else {
			w.TasksFailed++
		}
	})

	if !success {
		m.retryOrFail(task)
		return nil
	}

	m.jobs.withLock(task.JobID, func(e *jobEntry) {
		e.job.CompletedTasks++
		e.outputs = append(e.outputs, task.OutputPath)
	})
	m.maybeFinishJob(task.JobID)
	return nil
}

// retryOrFail reencola la tarea con un intento adicional, o marca el
// job como FAILED si ya agoto MaxTaskAttempts.
func (m *Master) retryOrFail(task common.Task) {
	if task.Attempt+1 < common.MaxTaskAttempts {
		task.Attempt++
		m.queue.pushBack(task)
		m.jobs.withLock(task.JobID, func(e *jobEntry) { e.job.Retries++ })
		logx.Warn("tarea reencolada tras fallo", map[string]interface{}{
			"task_id": task.ID, "job_id": task.JobID, "attempt": task.Attempt,
		})
		return
	}

	now := m.now()
	m.jobs.withLock(task.JobID, func(e *jobEntry) {
		e.job.FailedTasks++
		e.job.Status = common.JobFailed
		e.job.FinishedAt = &now
	})
	logx.Error("tarea agoto sus intentos, job marcado FAILED", map[string]interface{}{
		"task_id": task.ID, "job_id": task.JobID,
	})
}

// maybeFinishJob marca el job SUCCEEDED si ya no quedan tareas
// pendientes ni en vuelo y el job no fallo previamente.
func (m *Master) maybeFinishJob(jobID string) {
	if m.queue.countForJob(jobID) > 0 || m.inFlight.countForJob(jobID) > 0 {
		return
	}
	now := m.now()
	m.jobs.withLock(jobID, func(e *jobEntry) {
		if e.job.Status == common.JobFailed || e.job.Status == common.JobSucceeded {
			return
		}
		e.job.Status = common.JobSucceeded
		e.job.FinishedAt = &now
	})
}

// heartbeatTimeout deriva el umbral de muerte de un worker de la
// configuracion cargada, cayendo al valor por defecto del paquete
// common si HeartbeatTimeoutMs no fue fijado (cero o negativo).
func (m *Master) heartbeatTimeout() time.Duration {
	if m.cfg.HeartbeatTimeoutMs <= 0 {
		return common.WorkerHeartbeatTimeout
	}
	return time.Duration(m.cfg.HeartbeatTimeoutMs) * time.Millisecond
}

// SweepDeadWorkers se ejecuta periodicamente (ver scheduler de cron en
// cmd/master). Marca muertos a los workers sin heartbeat reciente y
// reencola sus tareas en vuelo como si hubieran fallado.
func (m *Master) SweepDeadWorkers() {
	timeout := m.heartbeatTimeout()
	now := m.now()
	for _, w := range m.workers.snapshot() {
		if w.Dead || now.Sub(w.LastHeartbeat) <= timeout {
			continue
		}
		m.workers.touch(w.ID, func(meta *common.WorkerMeta) { meta.Dead = true })
		logx.Warn("worker marcado muerto por falta de heartbeat", map[string]interface{}{
			"worker_id": w.ID, "last_heartbeat": w.LastHeartbeat.Format(time.RFC3339),
		})
	}

	for _, entry := range m.inFlight.snapshot() {
		worker, ok := m.workers.get(entry.WorkerID)
		if !ok || !worker.Dead {
			continue
		}
		if _, ok := m.inFlight.take(entry.Task.ID); !ok {
			continue
		}
		m.retryOrFail(entry.Task)
	}
}

// WorkerMetrics proyecta el estado de todos los workers registrados.
func (m *Master) WorkerMetrics() []common.WorkerMetrics {
	now := m.now()
	workers := m.workers.snapshot()
	out := make([]common.WorkerMetrics, 0, len(workers))
	for _, w := range workers {
		active := m.inFlight.countForWorker(w.ID)
		avgMs := float64(w.TotalTaskTimeMs) / float64(max(w.TasksSucceeded, 1))
		out = append(out, common.WorkerMetrics{
			ID:                   w.ID,
			Hostname:             w.Hostname,
			Dead:                 w.Dead,
			MaxConcurrency:       w.MaxConcurrency,
			ActiveTasks:          active,
			TasksStarted:         w.TasksStarted,
			TasksSucceeded:       w.TasksSucceeded,
			TasksFailed:          w.TasksFailed,
			AvgTaskMs:            avgMs,
			LastHeartbeatSecsAgo: now.Sub(w.LastHeartbeat).Seconds(),
			LastCPUPercent:       w.LastCPUPercent,
			LastMemBytes:         w.LastMemBytes,
		})
	}
	return out
}
