/*
Nombre del archivo: partition.go
Descripcion: Particionador hash y estructuras de particion del
             subsistema de shuffle. partition_id = hash(key) mod N,
             usando xxhash (rapido, no criptografico, de distribucion
             uniforme) para que el mismo hash se use en ambos lados de
             un shuffle o join particionado.
*/

package shuffle

import (
	"fmt"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// Partition identifica un archivo de particion materializado en disco.
type Partition struct {
	ID   uint32 `json:"id"`
	Path string `json:"path"`
}

// PartitionID calcula hash(key) mod numPartitions. numPartitions debe
// ser >= 1.
func PartitionID(key string, numPartitions int) uint32 {
	if numPartitions < 1 {
		numPartitions = 1
	}
	return uint32(xxhash.Sum64String(key) % uint64(numPartitions))
}

// PartitionPath construye la ruta convencional de un archivo de
// particion dentro del directorio de un stage.
func PartitionPath(stageDir string, id uint32) string {
	return filepath.Join(stageDir, fmt.Sprintf("part-%d.jsonl", id))
}

// StageDir construye la ruta del directorio de un stage bajo el
// directorio base de shuffle scratch. El identificador de stage debe
// ser unico entre tareas concurrentes que comparten baseDir; el
// llamador lo construye a partir del id de tarea.
func StageDir(baseDir, stageID string) string {
	return filepath.Join(baseDir, stageID)
}

// SpillDir construye el directorio sibling donde el agregador de
// derrame de un stage escribe sus archivos.
func SpillDir(stageDir string) string {
	return filepath.Join(stageDir, "spill_reduce")
}
