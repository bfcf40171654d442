/*
Nombre del archivo: config.go
Descripcion: Carga opcional de configuracion YAML para master y worker.
             Las variables de entorno (ver internal/logx.GetEnv) siguen
             siendo la fuente de verdad: un archivo de configuracion solo
             rellena los valores que el entorno no fije.
*/

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MasterConfig agrupa los parametros de arranque del coordinador.
type MasterConfig struct {
	Addr               string `yaml:"addr"`
	BaseOutputDir      string `yaml:"base_output_dir"`
	TmpDir             string `yaml:"tmp_dir"`
	MaxInMemKeys       int    `yaml:"max_in_mem_keys"`
	HeartbeatTimeoutMs int    `yaml:"heartbeat_timeout_ms"`
	SweepIntervalMs    int    `yaml:"sweep_interval_ms"`
}

// WorkerConfig agrupa los parametros de arranque de un worker.
type WorkerConfig struct {
	MasterURL    string `yaml:"master_url"`
	Hostname     string `yaml:"hostname"`
	Concurrency  int    `yaml:"concurrency"`
	TmpDir       string `yaml:"tmp_dir"`
	MaxInMemKeys int    `yaml:"max_in_mem_keys"`
}

// DefaultMasterConfig devuelve los valores por defecto de arranque.
func DefaultMasterConfig() MasterConfig {
	return MasterConfig{
		Addr:               ":8080",
		BaseOutputDir:      "output",
		TmpDir:             "/tmp/mini-spark",
		MaxInMemKeys:       100_000,
		HeartbeatTimeoutMs: 20_000,
		SweepIntervalMs:    3_000,
	}
}

// DefaultWorkerConfig devuelve los valores por defecto de arranque.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MasterURL:    "http://localhost:8080",
		Concurrency:  2,
		TmpDir:       "/tmp/mini-spark",
		MaxInMemKeys: 100_000,
	}
}

// LoadMasterConfig parte de DefaultMasterConfig y, si path existe, la
// sobreescribe con los campos presentes en el YAML. Un path vacio o
// inexistente no es un error: simplemente no hay overrides de archivo.
func LoadMasterConfig(path string) (MasterConfig, error) {
	cfg := DefaultMasterConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// LoadWorkerConfig es el analogo de LoadMasterConfig para workers.
func LoadWorkerConfig(path string) (WorkerConfig, error) {
	cfg := DefaultWorkerConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}
