/*
Nombre del archivo: aggregator.go
Descripcion: Agregador con derrame a disco (spilling aggregator):
             acumula key->sum en memoria hasta un umbral configurable,
             derramando el exceso a archivos hermanos y fusionando todo
             en finalize. Acota la cardinalidad de claves residentes en
             memoria a threshold+1.
*/

package shuffle

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"mini-spark/internal/ioformat"
)

// DefaultSpillThreshold es el umbral por defecto de MAX_IN_MEM_KEYS,
// overrideable por variable de entorno en el punto de construccion
// del agregador.
const DefaultSpillThreshold = 100_000

type spillEntry struct {
	K string `json:"k"`
	V uint64 `json:"v"`
}

// Aggregator acumula sumas por clave con derrame a disco cuando el
// numero de claves en memoria alcanza threshold.
type Aggregator struct {
	threshold int
	spillDir  string
	pid       int
	seq       int
	inMem     map[string]uint64
	spills    []string
}

// NewAggregator crea un agregador que derrama bajo spillDir cuando el
// numero de claves en memoria alcanza threshold. Los nombres de archivo
// de derrame incluyen el pid del proceso y un contador propio del
// agregador para que agregadores concurrentes no colisionen.
func NewAggregator(spillDir string, threshold int) *Aggregator {
	if threshold < 1 {
		threshold = DefaultSpillThreshold
	}
	return &Aggregator{
		threshold: threshold,
		spillDir:  spillDir,
		pid:       os.Getpid(),
		inMem:     make(map[string]uint64),
	}
}

// Add acumula value bajo key, derramando a disco si el mapa alcanza el
// umbral configurado.
func (a *Aggregator) Add(key string, value uint64) error {
	a.inMem[key] += value
	if len(a.inMem) >= a.threshold {
		return a.spill()
	}
	return nil
}

func (a *Aggregator) spill() error {
	if err := os.MkdirAll(a.spillDir, 0o755); err != nil {
		return fmt.Errorf("aggregator spill mkdir %s: %w", a.spillDir, err)
	}
	path := fmt.Sprintf("%s/spill-%d-%d.jsonl", a.spillDir, a.pid, a.seq)
	a.seq++

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("aggregator spill create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for k, v := range a.inMem {
		if err := enc.Encode(spillEntry{K: k, V: v}); err != nil {
			return fmt.Errorf("aggregator spill write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("aggregator spill flush %s: %w", path, err)
	}

	a.spills = append(a.spills, path)
	a.inMem = make(map[string]uint64)
	return nil
}

// SpillCount reports how many spill files currently exist on disk for
// this aggregator. Useful for tests that assert spilling occurred.
func (a *Aggregator) SpillCount() int {
	return len(a.spills)
}

// Finalize funde el mapa residente y todos los archivos de derrame en
// un acumulador limpio, y escribe las filas "clave,valor" ordenadas
// lexicograficamente por clave a outputPath. El resultado es
// independiente del orden y numero de derrames.
func (a *Aggregator) Finalize(outputPath string) error {
	final := make(map[string]uint64, len(a.inMem))
	for k, v := range a.inMem {
		final[k] += v
	}

	for _, path := range a.spills {
		if err := mergeSpillFile(path, final); err != nil {
			return err
		}
	}

	keys := make([]string, 0, len(final))
	for k := range final {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]ioformat.KV, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, ioformat.KV{Key: k, Value: final[k]})
	}
	return ioformat.WriteTwoColumn(outputPath, rows)
}

func mergeSpillFile(path string, into map[string]uint64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("aggregator merge open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry spillEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return fmt.Errorf("aggregator merge %s: malformed line: %w", path, err)
		}
		into[entry.K] += entry.V
	}
	return scanner.Err()
}
