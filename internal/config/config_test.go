package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMasterConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadMasterConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultMasterConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadMasterConfigEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadMasterConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultMasterConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadMasterConfigOverridesOnlyFieldsPresentInYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "master.yaml")
	yamlBody := "addr: \":9090\"\nmax_in_mem_keys: 500\n"
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMasterConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("expected overridden addr, got %q", cfg.Addr)
	}
	if cfg.MaxInMemKeys != 500 {
		t.Fatalf("expected overridden max_in_mem_keys, got %d", cfg.MaxInMemKeys)
	}
	want := DefaultMasterConfig()
	if cfg.BaseOutputDir != want.BaseOutputDir || cfg.TmpDir != want.TmpDir || cfg.SweepIntervalMs != want.SweepIntervalMs {
		t.Fatalf("expected untouched fields to keep their defaults, got %+v", cfg)
	}
}

func TestLoadMasterConfigMalformedYAMLIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "master.yaml")
	if err := os.WriteFile(path, []byte("addr: [not, closed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMasterConfig(path); err == nil {
		t.Fatal("expected an error for malformed yaml")
	}
}

func TestLoadWorkerConfigOverridesOnlyFieldsPresentInYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "worker.yaml")
	yamlBody := "concurrency: 8\nhostname: \"worker-7\"\n"
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWorkerConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Concurrency != 8 || cfg.Hostname != "worker-7" {
		t.Fatalf("expected overridden fields, got %+v", cfg)
	}
	want := DefaultWorkerConfig()
	if cfg.MasterURL != want.MasterURL || cfg.TmpDir != want.TmpDir || cfg.MaxInMemKeys != want.MaxInMemKeys {
		t.Fatalf("expected untouched fields to keep their defaults, got %+v", cfg)
	}
}

func TestLoadWorkerConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadWorkerConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultWorkerConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}
