/*
Nombre del archivo: types.go
Descripcion: Definiciones de tipos y estructuras compartidas entre
             todos los componentes de Mini-Spark. Incluye modelos
             de datos para Jobs, DAGs, Tareas, Workers y los mensajes
             de coordinacion (registro, heartbeat, resultados) que
             viajan por el plano de control HTTP.
*/

package common

import "time"

// Constantes de planificacion y tolerancia a fallos.
const (
	// MaxTaskAttempts es el numero maximo de intentos (incluyendo el
	// primero) antes de que una tarea se considere agotada.
	MaxTaskAttempts = 3

	// WorkerHeartbeatTimeout es el tiempo sin heartbeat tras el cual
	// un worker se marca como muerto.
	WorkerHeartbeatTimeout = 20 * time.Second

	// FailoverSweepInterval es la periodicidad del barrido que detecta
	// workers muertos y reencola sus tareas en vuelo.
	FailoverSweepInterval = 3 * time.Second
)

// JobStatus enumera el ciclo de vida de un Job. Las transiciones son
// monotonas: ACCEPTED -> RUNNING -> {SUCCEEDED, FAILED}, sin retrocesos.
type JobStatus string

const (
	JobAccepted  JobStatus = "ACCEPTED"
	JobRunning   JobStatus = "RUNNING"
	JobSucceeded JobStatus = "SUCCEEDED"
	JobFailed    JobStatus = "FAILED"
)

// DAGNode representa una operacion individual del grafo de ejecucion.
type DAGNode struct {
	ID         string `json:"id"`
	Op         string `json:"op"`                  // read_text|read_csv|read_jsonl|map|filter|flat_map|reduce_by_key
	Path       string `json:"path,omitempty"`       // glob de entrada (nodos read_*)
	Partitions int    `json:"partitions,omitempty"` // parallelism hint (nodos read_*)
	FnName     string `json:"fn_name,omitempty"`    // referencia simbolica a UDF registrada
	Key        string `json:"key,omitempty"`        // campo clave (reduce_by_key/join_by_key)
}

// DAG es un grafo dirigido aciclico de nodos y aristas. Cada arista es
// un par [from, to].
type DAG struct {
	Nodes []DAGNode   `json:"nodes"`
	Edges [][2]string `json:"edges"`
}

// FindReadNode localiza el primer nodo cuyo Op comienza con "read_".
func (d DAG) FindReadNode() (DAGNode, bool) {
	for _, n := range d.Nodes {
		if len(n.Op) >= 5 && n.Op[:5] == "read_" {
			return n, true
		}
	}
	return DAGNode{}, false
}

// NodeByID busca un nodo por su identificador.
func (d DAG) NodeByID(id string) (DAGNode, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return DAGNode{}, false
}

// Successors devuelve, en el orden en que aparecen las aristas, los
// nodos alcanzables directamente desde nodeID.
func (d DAG) Successors(nodeID string) []DAGNode {
	var out []DAGNode
	for _, e := range d.Edges {
		if e[0] == nodeID {
			if n, ok := d.NodeByID(e[1]); ok {
				out = append(out, n)
			}
		}
	}
	return out
}

// JobRequest es el cuerpo JSON enviado por el cliente al someter un job.
type JobRequest struct {
	Name        string `json:"name"`
	DAG         DAG    `json:"dag"`
	Parallelism int    `json:"parallelism"`
	InputGlob   string `json:"input_glob"`
}

// Job es el registro interno y volatil de un trabajo admitido. JobInfo
// es su proyeccion publica devuelta por la API (mismo tipo: no hay
// campos internos que esconder).
type Job struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Status         JobStatus  `json:"status"`
	DAG            DAG        `json:"dag"`
	Parallelism    int        `json:"parallelism"`
	InputGlob      string     `json:"input_glob"`
	OutputDir      string     `json:"output_dir"`
	SubmittedAt    time.Time  `json:"submitted_at"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	TotalTasks     int        `json:"total_tasks"`
	CompletedTasks int        `json:"completed_tasks"`
	FailedTasks    int        `json:"failed_tasks"`
	Retries        int        `json:"retries"`
}

// Task es una unidad de ejecucion para exactamente un archivo de
// entrada dentro de un job.
type Task struct {
	ID          string `json:"id"`
	JobID       string `json:"job_id"`
	NodeID      string `json:"node_id"`
	Attempt     int    `json:"attempt"`
	Stage       string `json:"stage"`
	Partition   int    `json:"partition"`
	Parallelism int    `json:"parallelism"`
	InputPath   string `json:"input_path"`
	OutputPath  string `json:"output_path"`
}

// WorkerMeta es el registro que el Master mantiene de cada worker.
type WorkerMeta struct {
	ID              string    `json:"id"`
	Hostname        string    `json:"hostname"`
	LastHeartbeat   time.Time `json:"last_heartbeat"`
	Dead            bool      `json:"dead"`
	MaxConcurrency  int       `json:"max_concurrency"`
	TasksStarted    int       `json:"tasks_started"`
	TasksSucceeded  int       `json:"tasks_succeeded"`
	TasksFailed     int       `json:"tasks_failed"`
	TotalTaskTimeMs int64     `json:"total_task_time_ms"`
	LastCPUPercent  *float64  `json:"last_cpu_percent,omitempty"`
	LastMemBytes    *uint64   `json:"last_mem_bytes,omitempty"`
}

// WorkerMetrics es la proyeccion devuelta por GET /api/v1/workers.
type WorkerMetrics struct {
	ID                   string   `json:"id"`
	Hostname             string   `json:"hostname"`
	Dead                 bool     `json:"dead"`
	MaxConcurrency       int      `json:"max_concurrency"`
	ActiveTasks          int      `json:"active_tasks"`
	TasksStarted         int      `json:"tasks_started"`
	TasksSucceeded       int      `json:"tasks_succeeded"`
	TasksFailed          int      `json:"tasks_failed"`
	AvgTaskMs            float64  `json:"avg_task_ms"`
	LastHeartbeatSecsAgo float64  `json:"last_heartbeat_secs_ago"`
	LastCPUPercent       *float64 `json:"last_cpu_percent,omitempty"`
	LastMemBytes         *uint64  `json:"last_mem_bytes,omitempty"`
}

// InFlight registra una tarea despachada pendiente de completar.
type InFlight struct {
	Task      Task      `json:"task"`
	WorkerID  string    `json:"worker_id"`
	StartedAt time.Time `json:"started_at"`
}

// --- Mensajes del plano de control ---

// RegisterRequest es enviado por el worker al registrarse.
type RegisterRequest struct {
	Hostname       string `json:"hostname"`
	MaxConcurrency int    `json:"max_concurrency"`
}

// RegisterResponse devuelve el id asignado al worker.
type RegisterResponse struct {
	WorkerID string `json:"worker_id"`
}

// HeartbeatRequest es enviado periodicamente por el worker.
type HeartbeatRequest struct {
	WorkerID   string   `json:"worker_id"`
	CPUPercent *float64 `json:"cpu_percent,omitempty"`
	MemBytes   *uint64  `json:"mem_bytes,omitempty"`
}

// OKResponse es la respuesta generica de exito {"ok": true}.
type OKResponse struct {
	OK bool `json:"ok"`
}

// NextTaskRequest solicita una tarea para un worker.
type NextTaskRequest struct {
	WorkerID string `json:"worker_id"`
}

// NextTaskResponse devuelve la tarea asignada, si la hay.
type NextTaskResponse struct {
	Task *Task `json:"task"`
}

// CompleteTaskRequest reporta el resultado de ejecutar una tarea.
type CompleteTaskRequest struct {
	TaskID  string `json:"task_id"`
	Success bool   `json:"success"`
}

// JobResults lista los archivos de salida finales de un job.
type JobResults struct {
	JobID   string   `json:"job_id"`
	Outputs []string `json:"outputs"`
}
