/*
Nombre del archivo: writer.go
Descripcion: Escritor particionado por hash (shuffle_to_partitions).
             Crea <base_dir>/<stage_id>/ y N archivos part-<i>.jsonl;
             cada registro de entrada se enruta a la particion
             computada a partir del valor string en key_field (ausente
             o no-string se trata como cadena vacia). Se hace flush al
             terminar.
*/

package shuffle

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"mini-spark/internal/record"
)

// ShuffleToPartitions particiona recs por hash del campo keyField en
// numPartitions archivos bajo stageDir, devolviendo las particiones
// ordenadas por id.
func ShuffleToPartitions(recs []record.Record, keyField string, numPartitions int, stageDir string) ([]Partition, error) {
	if numPartitions < 1 {
		numPartitions = 1
	}
	if err := os.MkdirAll(stageDir, 0o755); err != nil {
		return nil, fmt.Errorf("shuffle mkdir %s: %w", stageDir, err)
	}

	files := make([]*os.File, numPartitions)
	writers := make([]*bufio.Writer, numPartitions)
	for i := 0; i < numPartitions; i++ {
		path := PartitionPath(stageDir, uint32(i))
		f, err := os.Create(path)
		if err != nil {
			closeAll(files)
			return nil, fmt.Errorf("shuffle create %s: %w", path, err)
		}
		files[i] = f
		writers[i] = bufio.NewWriter(f)
	}
	defer closeAll(files)

	for _, r := range recs {
		key, _ := record.StringField(r, keyField)
		id := PartitionID(key, numPartitions)
		enc := json.NewEncoder(writers[id])
		if err := enc.Encode(map[string]interface{}(r)); err != nil {
			return nil, fmt.Errorf("shuffle encode into partition %d: %w", id, err)
		}
	}

	parts := make([]Partition, numPartitions)
	for i := 0; i < numPartitions; i++ {
		if err := writers[i].Flush(); err != nil {
			return nil, fmt.Errorf("shuffle flush partition %d: %w", i, err)
		}
		parts[i] = Partition{ID: uint32(i), Path: PartitionPath(stageDir, uint32(i))}
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].ID < parts[j].ID })
	return parts, nil
}

func closeAll(files []*os.File) {
	for _, f := range files {
		if f != nil {
			f.Close()
		}
	}
}
