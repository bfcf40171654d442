/*
Nombre del archivo: main.go (master)
Descripcion: Nodo coordinador principal de Mini-Spark. Admite jobs,
             despacha tareas a los workers que las piden, y corre un
             barrido periodico de tolerancia a fallos via cron para
             detectar workers muertos y reencolar sus tareas en vuelo.
*/

package main

import (
	"fmt"
	"net/http"

	"github.com/robfig/cron/v3"

	"mini-spark/internal/config"
	"mini-spark/internal/logx"
	"mini-spark/internal/master"
)

func main() {
	cfg, err := config.LoadMasterConfig(logx.GetEnv("MASTER_CONFIG_FILE", ""))
	if err != nil {
		logx.Error("no se pudo cargar configuracion", map[string]interface{}{"error": err.Error()})
		return
	}
	cfg.Addr = logx.GetEnv("MASTER_ADDR", cfg.Addr)
	cfg.BaseOutputDir = logx.GetEnv("MASTER_BASE_OUTPUT_DIR", cfg.BaseOutputDir)
	cfg.TmpDir = logx.GetEnv("MASTER_TMP_DIR", cfg.TmpDir)

	m := master.NewMaster(cfg)

	sweeper := cron.New(cron.WithSeconds())
	spec := fmt.Sprintf("@every %dms", cfg.SweepIntervalMs)
	if _, err := sweeper.AddFunc(spec, m.SweepDeadWorkers); err != nil {
		logx.Error("no se pudo programar el barrido de failover", map[string]interface{}{"error": err.Error()})
		return
	}
	sweeper.Start()
	defer sweeper.Stop()

	logx.Info("master iniciado", map[string]interface{}{"addr": cfg.Addr})
	if err := http.ListenAndServe(cfg.Addr, m.Routes()); err != nil {
		logx.Error("master detenido", map[string]interface{}{"error": err.Error()})
	}
}
