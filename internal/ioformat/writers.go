/*
Nombre del archivo: writers.go
Descripcion: Codificadores de secuencias de Record a disco: JSON-lines
             (un registro por linea) y texto de dos columnas (usado
             solo por el reductor), con reemplazo completo del archivo
             para que los reintentos sean idempotentes.
*/

package ioformat

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mini-spark/internal/record"
)

// WriteJSONLines escribe un registro por linea, sin coma final ni
// corchetes de arreglo. Crea los directorios padre de path si hacen
// falta y reemplaza el archivo por completo.
func WriteJSONLines(path string, recs []record.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write jsonl %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write jsonl %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, r := range recs {
		if err := enc.Encode(map[string]interface{}(r)); err != nil {
			return fmt.Errorf("write jsonl %s: %w", path, err)
		}
	}
	return w.Flush()
}

// KV es un par clave/valor de salida para el escritor de dos columnas.
type KV struct {
	Key   string
	Value uint64
}

// WriteTwoColumn escribe filas "<key>,<value>" sin encabezado, en el
// orden recibido (se espera que el llamador ya las haya ordenado
// lexicograficamente por clave). Crea los directorios padre de path si
// hacen falta. Una lista vacia produce (o trunca) un archivo de cero
// bytes.
func WriteTwoColumn(path string, rows []KV) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write two-column %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write two-column %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s,%d\n", row.Key, row.Value); err != nil {
			return fmt.Errorf("write two-column %s: %w", path, err)
		}
	}
	return w.Flush()
}
