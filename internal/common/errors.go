package common

import "errors"

// Categorias de error del sistema. Los paquetes de mas alto nivel
// envuelven estos sentinels con contexto via fmt.Errorf("...: %w", err)
// en lugar de inventar tipos nuevos.
var (
	// ErrNotFound cubre job, tarea o worker desconocidos.
	ErrNotFound = errors.New("not found")

	// ErrMalformedInput cubre lineas CSV/JSON ilegibles o un DAG sin
	// nodo read_*.
	ErrMalformedInput = errors.New("malformed input")

	// ErrIOError cubre fallos de apertura/lectura/escritura de archivos.
	ErrIOError = errors.New("io error")

	// ErrTaskFailed cubre un error de ejecucion no nulo devuelto por el
	// motor local.
	ErrTaskFailed = errors.New("task failed")

	// ErrAttemptsExhausted cubre una tarea que agoto sus reintentos.
	ErrAttemptsExhausted = errors.New("attempts exhausted")
)
