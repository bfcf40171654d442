/*
Nombre del archivo: operators.go
Descripcion: Operadores puros sobre secuencias de registros, en el
             espiritu de Spark: Map, Filter, FlatMap, ReduceByKey y
             JoinByKey. Ninguno muta su entrada; cada uno construye una
             secuencia de salida nueva. Las funciones de usuario (UDFs)
             simbolicas referenciadas por fn_name en el DAG viven en un
             registro cerrado (ver registry.go).
*/

package operators

import (
	"sort"

	"mini-spark/internal/record"
)

// Map aplica fn a cada registro de entrada, preservando el orden.
// Ningun registro se descarta.
func Map(recs []record.Record, fn func(record.Record) record.Record) []record.Record {
	out := make([]record.Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, fn(r))
	}
	return out
}

// Filter conserva los registros para los que pred es verdadero,
// preservando el orden.
func Filter(recs []record.Record, pred func(record.Record) bool) []record.Record {
	out := make([]record.Record, 0, len(recs))
	for _, r := range recs {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// FlatMap aplica fn a cada registro; fn puede devolver cero o mas
// registros. Las salidas se concatenan en el orden de entrada.
func FlatMap(recs []record.Record, fn func(record.Record) []record.Record) []record.Record {
	out := make([]record.Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, fn(r)...)
	}
	return out
}

// ReduceByKey agrupa por el valor string en keyField y suma los valores
// enteros no negativos en valueField, emitiendo un registro
// {keyField: k, valueField: sum} por clave. Los registros a los que les
// falta algun campo, con clave no-string o valor no entero, se omiten
// en silencio. La salida esta ordenada lexicograficamente por clave.
func ReduceByKey(recs []record.Record, keyField, valueField string) []record.Record {
	sums := make(map[string]uint64)
	order := make([]string, 0)
	for _, r := range recs {
		k, ok := record.StringField(r, keyField)
		if !ok {
			continue
		}
		v, ok := record.Uint64Field(r, valueField)
		if !ok {
			continue
		}
		if _, seen := sums[k]; !seen {
			order = append(order, k)
		}
		sums[k] += v
	}
	sort.Strings(order)
	out := make([]record.Record, 0, len(order))
	for _, k := range order {
		out = append(out, record.Record{keyField: k, valueField: sums[k]})
	}
	return out
}

// JoinByKey realiza un inner join N×M entre left y right por el valor
// string en keyField. Los campos de left ganan en caso de colision; los
// campos de right que colisionan (salvo la propia clave) se re-nombran
// con el prefijo "right_". La clave aparece una sola vez en el
// resultado. Los registros sin el campo clave se omiten.
func JoinByKey(left, right []record.Record, keyField string) []record.Record {
	rightByKey := make(map[string][]record.Record)
	for _, r := range right {
		k, ok := record.StringField(r, keyField)
		if !ok {
			continue
		}
		rightByKey[k] = append(rightByKey[k], r)
	}

	var out []record.Record
	for _, l := range left {
		k, ok := record.StringField(l, keyField)
		if !ok {
			continue
		}
		matches, ok := rightByKey[k]
		if !ok {
			continue
		}
		for _, r := range matches {
			merged := l.Clone()
			for field, v := range r {
				if field == keyField {
					continue
				}
				if _, collides := merged[field]; collides {
					merged["right_"+field] = v
					continue
				}
				merged[field] = v
			}
			out = append(out, merged)
		}
	}
	return out
}
