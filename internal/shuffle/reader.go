/*
Nombre del archivo: reader.go
Descripcion: Lector de particiones (read_partition): transmite un
             archivo part-<i>.jsonl como una secuencia de registros,
             saltando lineas en blanco y fallando ante JSON malformado.
*/

package shuffle

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"mini-spark/internal/record"
)

// ReadPartition decodifica un archivo de particion a una secuencia de
// registros.
func ReadPartition(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read partition %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var out []record.Record
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(line))
		dec.UseNumber()
		var rec record.Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("read partition %s: malformed line: %w", path, err)
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read partition %s: %w", path, err)
	}
	return out, nil
}
