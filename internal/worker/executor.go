/*
Nombre del archivo: executor.go
Descripcion: Motor de ejecucion de tareas del Worker. Resuelve el DAG
             del job al que pertenece la tarea (cacheado localmente,
             ya que el DAG no cambia durante la vida del job) y delega
             la ejecucion sobre el archivo de entrada al interprete de
             internal/dag. Reporta exito o fallo al Master.
*/

package worker

import (
	"fmt"

	"mini-spark/internal/common"
	"mini-spark/internal/dag"
	"mini-spark/internal/logx"
)

// runTask ejecuta una tarea de principio a fin: resuelve el job,
// corre el DAG sobre el archivo de entrada, y reporta el resultado.
func (w *Worker) runTask(task common.Task) {
	job, err := w.jobByID(task.JobID)
	if err != nil {
		logx.Error("no se pudo obtener el job de la tarea", map[string]interface{}{
			"task_id": task.ID, "job_id": task.JobID, "error": err.Error(),
		})
		w.reportCompletion(task.ID, false)
		return
	}

	err = dag.Run(job.DAG, dag.RunOptions{
		InputPath:         task.InputPath,
		TmpDir:            w.cfg.TmpDir,
		DefaultPartitions: task.Parallelism,
		OutputPath:        task.OutputPath,
		StageID:           task.Stage,
		SpillThreshold:    w.cfg.MaxInMemKeys,
	})
	if err != nil {
		logx.Error("tarea fallida", map[string]interface{}{
			"task_id": task.ID, "job_id": task.JobID, "error": err.Error(),
		})
	}
	w.reportCompletion(task.ID, err == nil)
}

// jobByID devuelve el Job completo (incluyendo su DAG), consultando el
// Master solo la primera vez que se ve un job dado.
func (w *Worker) jobByID(jobID string) (common.Job, error) {
	w.jobCacheMu.Lock()
	if job, ok := w.jobCache[jobID]; ok {
		w.jobCacheMu.Unlock()
		return job, nil
	}
	w.jobCacheMu.Unlock()

	var job common.Job
	if err := w.getJSON(fmt.Sprintf("/api/v1/jobs/%s", jobID), &job); err != nil {
		return common.Job{}, err
	}

	w.jobCacheMu.Lock()
	w.jobCache[jobID] = job
	w.jobCacheMu.Unlock()
	return job, nil
}

func (w *Worker) reportCompletion(taskID string, success bool) {
	req := common.CompleteTaskRequest{TaskID: taskID, Success: success}
	var resp common.OKResponse
	if err := w.postJSON("/api/v1/tasks/complete", req, &resp); err != nil {
		logx.Error("fallo reportando finalizacion de tarea", map[string]interface{}{
			"task_id": taskID, "error": err.Error(),
		})
	}
}
