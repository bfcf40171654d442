/*
Nombre del archivo: master.go
Descripcion: Construccion del nodo Master y admision de jobs. Expande
             input_glob a un archivo por tarea, encola las tareas
             resultantes y marca el job SUCCEEDED de inmediato si el
             glob no empareja ningun archivo.
*/

package master

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"mini-spark/internal/common"
	"mini-spark/internal/config"
	"mini-spark/internal/logx"
)

// Master es el nodo coordinador central: mantiene las cuatro tablas de
// estado y la configuracion de ejecucion compartida con las tareas que
// despacha a los workers.
type Master struct {
	jobs     *jobTable
	queue    *taskQueue
	inFlight *inFlightTable
	workers  *workerTable
	cfg      config.MasterConfig
	now      clock
}

// NewMaster crea un Master vacio con la configuracion dada.
func NewMaster(cfg config.MasterConfig) *Master {
	return &Master{
		jobs:     newJobTable(),
		queue:    newTaskQueue(),
		inFlight: newInFlightTable(),
		workers:  newWorkerTable(),
		cfg:      cfg,
		now:      realClock,
	}
}

// AdmitJob valida y registra un nuevo job, expandiendo InputGlob a una
// tarea por archivo regular emparejado (las coincidencias que son
// directorios se descartan en silencio). Un glob sin coincidencias de
// archivo produce un job SUCCEEDED sin tareas, no un error.
func (m *Master) AdmitJob(req common.JobRequest) (common.Job, error) {
	if req.InputGlob == "" {
		return common.Job{}, fmt.Errorf("%w: input_glob vacio", common.ErrMalformedInput)
	}
	if _, ok := req.DAG.FindReadNode(); !ok {
		return common.Job{}, fmt.Errorf("%w: dag sin nodo read_*", common.ErrMalformedInput)
	}

	parallelism := req.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	globMatches, err := filepath.Glob(req.InputGlob)
	if err != nil {
		return common.Job{}, fmt.Errorf("%w: input_glob invalido: %v", common.ErrMalformedInput, err)
	}

	matches := make([]string, 0, len(globMatches))
	for _, path := range globMatches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		matches = append(matches, path)
	}

	jobID := uuid.New().String()
	now := m.now()
	job := common.Job{
		ID:          jobID,
		Name:        req.Name,
		Status:      common.JobAccepted,
		DAG:         req.DAG,
		Parallelism: parallelism,
		InputGlob:   req.InputGlob,
		OutputDir:   filepath.Join(m.cfg.BaseOutputDir, jobID),
		SubmittedAt: now,
		TotalTasks:  len(matches),
	}

	readNode, _ := req.DAG.FindReadNode()
	tasks := make([]common.Task, 0, len(matches))
	for i, inputPath := range matches {
		taskID := uuid.New().String()
		tasks = append(tasks, common.Task{
			ID:          taskID,
			JobID:       jobID,
			NodeID:      readNode.ID,
			Attempt:     0,
			Stage:       taskID,
			Partition:   i % parallelism,
			Parallelism: parallelism,
			InputPath:   inputPath,
			OutputPath:  filepath.Join(job.OutputDir, filepath.Base(inputPath)),
		})
	}

	if len(tasks) == 0 {
		job.Status = common.JobSucceeded
		finished := now
		job.FinishedAt = &finished
	}

	m.jobs.put(&jobEntry{job: job})
	for _, t := range tasks {
		m.queue.pushBack(t)
	}

	logx.Info("job admitido", map[string]interface{}{
		"job_id": jobID, "name": req.Name, "total_tasks": job.TotalTasks,
	})
	return job, nil
}

// GetJob devuelve una copia del job registrado, o false si no existe.
func (m *Master) GetJob(jobID string) (common.Job, bool) {
	e, ok := m.jobs.get(jobID)
	if !ok {
		return common.Job{}, false
	}
	return e.job, true
}

// GetJobResults devuelve las rutas de salida acumuladas por un job.
func (m *Master) GetJobResults(jobID string) (common.JobResults, bool) {
	e, ok := m.jobs.get(jobID)
	if !ok {
		return common.JobResults{}, false
	}
	outputs := make([]string, len(e.outputs))
	copy(outputs, e.outputs)
	return common.JobResults{JobID: jobID, Outputs: outputs}, true
}
