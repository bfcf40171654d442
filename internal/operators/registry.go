/*
Nombre del archivo: registry.go
Descripcion: Registro cerrado de funciones simbolicas (fn_name) que un
             DAGNode puede referenciar. Un fn_name desconocido es un
             error de ejecucion de tarea, no de admision del job.
*/

package operators

import (
	"fmt"
	"strings"
	"unicode"

	"mini-spark/internal/record"
)

// MapFunctions son las UDFs registradas para nodos "map".
var MapFunctions = map[string]func(record.Record) record.Record{
	"to_lower": func(r record.Record) record.Record {
		out := r.Clone()
		if s, ok := record.StringField(r, "text"); ok {
			out["text"] = strings.ToLower(s)
		}
		if s, ok := record.StringField(r, "token"); ok {
			out["token"] = strings.ToLower(s)
		}
		return out
	},
}

// FlatMapFunctions son las UDFs registradas para nodos "flat_map".
var FlatMapFunctions = map[string]func(record.Record) []record.Record{
	// tokenize divide el campo "text" en palabras (alfanumerico y
	// guion bajo, en minusculas) y emite un registro {token, count:1}
	// por token.
	"tokenize": func(r record.Record) []record.Record {
		text, ok := record.StringField(r, "text")
		if !ok {
			return nil
		}
		tokens := Tokenize(text)
		out := make([]record.Record, 0, len(tokens))
		for _, t := range tokens {
			out = append(out, record.Record{"token": t, "count": uint64(1)})
		}
		return out
	},
}

// FilterFunctions son las UDFs registradas para nodos "filter".
var FilterFunctions = map[string]func(record.Record) bool{
	"long_words": func(r record.Record) bool {
		s, ok := record.StringField(r, "token")
		if !ok {
			s, ok = record.StringField(r, "text")
		}
		return ok && len(s) > 4
	},
}

// Tokenize divide s en palabras: separa por espacios en blanco, retiene
// solo caracteres alfanumericos y guion bajo, pasa a minusculas y
// descarta tokens vacios.
func Tokenize(s string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			b.WriteRune(unicode.ToLower(r))
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '\v', r == '\f':
			flush()
		default:
			// puntuacion y demas simbolos actuan como separadores,
			// igual que el espacio en blanco
			flush()
		}
	}
	flush()
	return tokens
}

// LookupMapFn resuelve un fn_name de nodo "map" en el registro.
func LookupMapFn(name string) (func(record.Record) record.Record, error) {
	fn, ok := MapFunctions[name]
	if !ok {
		return nil, fmt.Errorf("fn map no encontrada: %s", name)
	}
	return fn, nil
}

// LookupFlatMapFn resuelve un fn_name de nodo "flat_map" en el registro.
func LookupFlatMapFn(name string) (func(record.Record) []record.Record, error) {
	fn, ok := FlatMapFunctions[name]
	if !ok {
		return nil, fmt.Errorf("fn flat_map no encontrada: %s", name)
	}
	return fn, nil
}

// LookupFilterFn resuelve un fn_name de nodo "filter" en el registro.
func LookupFilterFn(name string) (func(record.Record) bool, error) {
	fn, ok := FilterFunctions[name]
	if !ok {
		return nil, fmt.Errorf("fn filter no encontrada: %s", name)
	}
	return fn, nil
}
