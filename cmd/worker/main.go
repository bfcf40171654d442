/*
Nombre del archivo: main.go (worker)
Descripcion: Nodo trabajador de Mini-Spark. Se registra ante el Master,
             envia heartbeats periodicos, y sondea por tareas hasta
             alcanzar su limite de concurrencia local configurado.
*/

package main

import (
	"context"
	"os/signal"
	"strconv"
	"syscall"

	"mini-spark/internal/config"
	"mini-spark/internal/logx"
	"mini-spark/internal/worker"
)

func main() {
	cfg, err := config.LoadWorkerConfig(logx.GetEnv("WORKER_CONFIG_FILE", ""))
	if err != nil {
		logx.Error("no se pudo cargar configuracion", map[string]interface{}{"error": err.Error()})
		return
	}
	cfg.MasterURL = logx.GetEnv("MASTER_BASE_URL", logx.GetEnv("MASTER_URL", cfg.MasterURL))
	cfg.Hostname = logx.GetEnv("WORKER_HOSTNAME", cfg.Hostname)
	cfg.TmpDir = logx.GetEnv("WORKER_TMP_DIR", cfg.TmpDir)
	if v := logx.GetEnv("WORKER_CONCURRENCY", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Concurrency = n
		}
	}
	if v := logx.GetEnv("MAX_IN_MEM_KEYS", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxInMemKeys = n
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := worker.New(cfg)
	logx.Info("worker iniciando", map[string]interface{}{"master_url": cfg.MasterURL, "concurrency": cfg.Concurrency})
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		logx.Error("worker detenido con error", map[string]interface{}{"error": err.Error()})
	}
}
