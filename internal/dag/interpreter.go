/*
Nombre del archivo: interpreter.go
Descripcion: Interprete del DAG a nivel de archivo. Dado un DAG, un
             archivo de entrada y un directorio temporal, localiza el
             nodo read_*, elige el
             formato de lectura, recorre los nodos sucesores aplicando
             los operadores registrados, y - al llegar a un nodo
             reduce_by_key - hace shuffle por clave y reduce a un
             archivo de salida de dos columnas ordenado.
*/

package dag

import (
	"fmt"
	"path/filepath"
	"strings"

	"mini-spark/internal/common"
	"mini-spark/internal/ioformat"
	"mini-spark/internal/operators"
	"mini-spark/internal/record"
	"mini-spark/internal/shuffle"
)

// RunOptions agrupa los parametros de ejecucion de una tarea de
// archivo individual.
type RunOptions struct {
	InputPath         string
	TmpDir            string
	DefaultPartitions int
	OutputPath        string
	StageID           string // unico entre tareas concurrentes
	SpillThreshold    int
}

// Run ejecuta el DAG contra un unico archivo de entrada y escribe el
// resultado final en opts.OutputPath.
func Run(graph common.DAG, opts RunOptions) error {
	readNode, ok := graph.FindReadNode()
	if !ok {
		return fmt.Errorf("%w: dag sin nodo read_*", common.ErrMalformedInput)
	}

	partitions := readNode.Partitions
	if partitions < 1 {
		partitions = opts.DefaultPartitions
	}
	if partitions < 1 {
		partitions = 1
	}

	recs, err := readInput(readNode, opts.InputPath)
	if err != nil {
		return err
	}

	cur := recs
	node := readNode
	for {
		successors := graph.Successors(node.ID)
		if len(successors) == 0 {
			break
		}
		next := successors[0]
		switch next.Op {
		case "map":
			fn, err := operators.LookupMapFn(next.FnName)
			if err != nil {
				return fmt.Errorf("%w: %v", common.ErrTaskFailed, err)
			}
			cur = operators.Map(cur, fn)
		case "filter":
			fn, err := operators.LookupFilterFn(next.FnName)
			if err != nil {
				return fmt.Errorf("%w: %v", common.ErrTaskFailed, err)
			}
			cur = operators.Filter(cur, fn)
		case "flat_map":
			fn, err := operators.LookupFlatMapFn(next.FnName)
			if err != nil {
				return fmt.Errorf("%w: %v", common.ErrTaskFailed, err)
			}
			cur = operators.FlatMap(cur, fn)
		case "reduce_by_key":
			return runReduce(cur, next, partitions, opts)
		default:
			return fmt.Errorf("%w: operacion desconocida %q", common.ErrTaskFailed, next.Op)
		}
		node = next
	}

	// Un DAG sin nodo reduce_by_key terminal escribe directamente su
	// ultima secuencia de registros como JSON-lines.
	return ioformat.WriteJSONLines(opts.OutputPath, cur)
}

func readInput(readNode common.DAGNode, inputPath string) ([]record.Record, error) {
	switch format(readNode, inputPath) {
	case "csv":
		return ioformat.ReadCSV(inputPath)
	case "jsonl":
		return ioformat.ReadJSONLines(inputPath)
	default:
		return ioformat.ReadText(inputPath)
	}
}

// format elige el formato de lectura: primero por el operador read_*
// explicito, luego por la extension del archivo.
func format(readNode common.DAGNode, inputPath string) string {
	switch readNode.Op {
	case "read_csv":
		return "csv"
	case "read_jsonl", "read_json":
		return "jsonl"
	case "read_text":
		return "text"
	}
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".csv":
		return "csv"
	case ".json", ".jsonl":
		return "jsonl"
	default:
		return "text"
	}
}

func runReduce(cur []record.Record, reduceNode common.DAGNode, partitions int, opts RunOptions) error {
	keyField := reduceNode.Key
	if keyField == "" {
		keyField = "token"
	}
	valueField := "count"

	stageDir := shuffle.StageDir(opts.TmpDir, opts.StageID)
	parts, err := shuffle.ShuffleToPartitions(cur, keyField, partitions, stageDir)
	if err != nil {
		return err
	}

	spillDir := shuffle.SpillDir(stageDir)
	return shuffle.ReducePartitionsToFile(parts, keyField, valueField, spillDir, opts.SpillThreshold, opts.OutputPath)
}
