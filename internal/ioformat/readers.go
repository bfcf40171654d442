/*
Nombre del archivo: readers.go
Descripcion: Decodificadores de archivos de entrada a secuencias de
             Record: texto plano (una linea = un registro), CSV con
             fila de encabezado, y JSON-lines. Una linea malformada
             aborta la lectura con un error que identifica el archivo
             ofensor.
*/

package ioformat

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"mini-spark/internal/record"
)

// ReadText decodifica un archivo de texto: un registro {"text": linea}
// por linea no vacia.
func ReadText(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read text %s: %w", path, err)
	}
	defer f.Close()

	var out []record.Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, record.Record{"text": line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read text %s: %w", path, err)
	}
	return out, nil
}

// ReadCSV decodifica un archivo CSV: la primera linea no vacia es el
// encabezado (separado por comas, cada campo recortado y sin BOM); cada
// linea subsiguiente no vacia se separa por comas y se combina con el
// encabezado. Los campos finales ausentes se rellenan con cadena vacia.
// Todos los valores son strings.
func ReadCSV(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var header []string
	var out []record.Record
	for scanner.Scan() {
		line := scanner.Text()
		if header == nil {
			line = strings.TrimPrefix(line, string(rune(0xFEFF)))
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitCSVLine(line)
		if header == nil {
			header = make([]string, len(fields))
			for i, h := range fields {
				header[i] = strings.TrimSpace(h)
			}
			continue
		}
		rec := make(record.Record, len(header))
		for i, h := range header {
			if i < len(fields) {
				rec[h] = fields[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	return out, nil
}

func splitCSVLine(line string) []string {
	return strings.Split(line, ",")
}

// ReadJSONLines decodifica un archivo JSON-lines: un registro por
// linea no vacia; cada linea debe parsear como un unico objeto JSON.
func ReadJSONLines(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read jsonl %s: %w", path, err)
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
		rec, err := decodeRecordLine(line)
		if err != nil {
			return nil, fmt.Errorf("read jsonl %s: malformed line: %w", path, err)
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read jsonl %s: %w", path, err)
	}
	return out, nil
}

func decodeRecordLine(line string) (record.Record, error) {
	dec := json.NewDecoder(strings.NewReader(line))
	dec.UseNumber()
	var rec record.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	return rec, nil
}
