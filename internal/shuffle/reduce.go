/*
Nombre del archivo: reduce.go
Descripcion: Reductor sobre particiones: acumula key->sum(value) a
             traves de todas las particiones dadas usando el agregador
             con derrame, y escribe el archivo final de dos columnas.
             Una lista de particiones vacia produce un archivo de
             salida vacio. Tambien implementa el join particionado
             (shuffled join), que empareja particiones por id y aplica
             join_by_key a cada par.
*/

package shuffle

import (
	"fmt"
	"os"
	"path/filepath"

	"mini-spark/internal/ioformat"
	"mini-spark/internal/operators"
	"mini-spark/internal/record"
)

// ReducePartitionsToFile acumula key->sum(value) sobre todas las
// particiones dadas y escribe el resultado ordenado a outputPath. Crea
// los directorios padre de outputPath si hacen falta.
func ReducePartitionsToFile(partitions []Partition, keyField, valueField string, spillDir string, spillThreshold int, outputPath string) error {
	if len(partitions) == 0 {
		if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			return fmt.Errorf("reduce mkdir %s: %w", outputPath, err)
		}
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("reduce create empty %s: %w", outputPath, err)
		}
		return f.Close()
	}

	agg := NewAggregator(spillDir, spillThreshold)
	for _, p := range partitions {
		recs, err := ReadPartition(p.Path)
		if err != nil {
			return err
		}
		for _, r := range recs {
			key, ok := record.StringField(r, keyField)
			if !ok {
				continue
			}
			value, ok := record.Uint64Field(r, valueField)
			if !ok {
				continue
			}
			if err := agg.Add(key, value); err != nil {
				return err
			}
		}
	}
	return agg.Finalize(outputPath)
}

// ShuffledJoin empareja las particiones izquierda y derecha por id (que
// deben compartir num_partitions) y aplica join_by_key a cada par,
// escribiendo el resultado combinado como JSON-lines en outputPath.
func ShuffledJoin(left, right []Partition, keyField, outputPath string) error {
	byID := make(map[uint32]Partition, len(right))
	for _, p := range right {
		byID[p.ID] = p
	}

	var joined []record.Record
	for _, lp := range left {
		rp, ok := byID[lp.ID]
		if !ok {
			continue
		}
		leftRecs, err := ReadPartition(lp.Path)
		if err != nil {
			return err
		}
		rightRecs, err := ReadPartition(rp.Path)
		if err != nil {
			return err
		}
		joined = append(joined, operators.JoinByKey(leftRecs, rightRecs, keyField)...)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("shuffled join mkdir %s: %w", outputPath, err)
	}
	return ioformat.WriteJSONLines(outputPath, joined)
}
