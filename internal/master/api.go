/*
Nombre del archivo: api.go
Descripcion: Superficie HTTP del nodo Master. Cada handler toma y
             libera los candados de las tablas de estado a traves de
             los metodos de Master; ningun handler los retiene
             directamente.
*/

package master

import (
	"encoding/json"
	"errors"
	"net/http"

	"mini-spark/internal/common"
	"mini-spark/internal/logx"
)

// Routes construye el mux HTTP con la superficie publica del master.
func (m *Master) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", m.handleHealth)
	mux.HandleFunc("POST /api/v1/jobs", m.handleSubmitJob)
	mux.HandleFunc("GET /api/v1/jobs/{id}", m.handleGetJob)
	mux.HandleFunc("GET /api/v1/jobs/{id}/results", m.handleGetJobResults)
	mux.HandleFunc("GET /api/v1/workers", m.handleListWorkers)
	mux.HandleFunc("POST /api/v1/workers/register", m.handleRegisterWorker)
	mux.HandleFunc("POST /api/v1/workers/heartbeat", m.handleHeartbeat)
	mux.HandleFunc("POST /api/v1/tasks/next", m.handleNextTask)
	mux.HandleFunc("POST /api/v1/tasks/complete", m.handleCompleteTask)
	return mux
}

func (m *Master) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, common.OKResponse{OK: true})
}

func (m *Master) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	var req common.JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "cuerpo JSON invalido", http.StatusBadRequest)
		return
	}
	job, err := m.AdmitJob(req)
	if err != nil {
		if errors.Is(err, common.ErrMalformedInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (m *Master) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, ok := m.GetJob(r.PathValue("id"))
	if !ok {
		http.Error(w, "job no encontrado", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (m *Master) handleGetJobResults(w http.ResponseWriter, r *http.Request) {
	results, ok := m.GetJobResults(r.PathValue("id"))
	if !ok {
		http.Error(w, "job no encontrado", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (m *Master) handleListWorkers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, m.WorkerMetrics())
}

func (m *Master) handleRegisterWorker(w http.ResponseWriter, r *http.Request) {
	var req common.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "cuerpo JSON invalido", http.StatusBadRequest)
		return
	}
	id := m.RegisterWorker(req)
	writeJSON(w, http.StatusOK, common.RegisterResponse{WorkerID: id})
}

func (m *Master) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	var req common.HeartbeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "cuerpo JSON invalido", http.StatusBadRequest)
		return
	}
	if err := m.Heartbeat(req); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, common.OKResponse{OK: true})
}

func (m *Master) handleNextTask(w http.ResponseWriter, r *http.Request) {
	var req common.NextTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "cuerpo JSON invalido", http.StatusBadRequest)
		return
	}
	task, err := m.DispatchTask(req.WorkerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, common.NextTaskResponse{Task: task})
}

func (m *Master) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	var req common.CompleteTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "cuerpo JSON invalido", http.StatusBadRequest)
		return
	}
	if err := m.CompleteTask(req.TaskID, req.Success); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, common.OKResponse{OK: true})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Error("error escribiendo respuesta JSON", map[string]interface{}{"error": err.Error()})
	}
}
