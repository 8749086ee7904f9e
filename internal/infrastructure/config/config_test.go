package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
device:
  url: "http://192.168.1.40/api/record/live"
  timeout: 3
  poll_interval: 5
database:
  path: "/tmp/test.db"
  wal_mode: true
  busy_timeout: 5
mqtt:
  enabled: true
  broker:
    host: "broker.local"
    port: 1883
    client_id: "test-client"
  qos: 1
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Device.URL != "http://192.168.1.40/api/record/live" {
		t.Errorf("Device.URL = %q, want %q", cfg.Device.URL, "http://192.168.1.40/api/record/live")
	}
	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/test.db")
	}
	if cfg.MQTT.Broker.Host != "broker.local" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "broker.local")
	}
	if got := cfg.GetPollInterval(); got != 5*time.Second {
		t.Errorf("GetPollInterval() = %v, want %v", got, 5*time.Second)
	}
	if got := cfg.GetDeviceTimeout(); got != 3*time.Second {
		t.Errorf("GetDeviceTimeout() = %v, want %v", got, 3*time.Second)
	}
}

func TestLoad_Defaults(t *testing.T) {
	// An empty file should yield pure defaults.
	cfg, err := Load(writeConfig(t, "{}"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Device.PollInterval != 1 {
		t.Errorf("Device.PollInterval = %d, want 1", cfg.Device.PollInterval)
	}
	if cfg.Device.Timeout != 5 {
		t.Errorf("Device.Timeout = %d, want 5", cfg.Device.Timeout)
	}
	if !cfg.Database.WALMode {
		t.Error("Database.WALMode = false, want true")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
device:
  url: ""
  poll_interval: 0
database:
  path: ""
`
	_, err := Load(writeConfig(t, content))
	if err == nil {
		t.Fatal("Load() expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "device.url is required") {
		t.Errorf("error %q does not mention device.url", err)
	}
	if !strings.Contains(err.Error(), "database.path is required") {
		t.Errorf("error %q does not mention database.path", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SOLWATCH_DEVICE_URL", "http://override/api/record/live")
	t.Setenv("SOLWATCH_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("SOLWATCH_INFLUXDB_TOKEN", "secret-token")

	cfg, err := Load(writeConfig(t, "{}"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Device.URL != "http://override/api/record/live" {
		t.Errorf("Device.URL = %q, want env override", cfg.Device.URL)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.InfluxDB.Token != "secret-token" {
		t.Errorf("InfluxDB.Token = %q, want env override", cfg.InfluxDB.Token)
	}
}

func TestValidate_QoSRange(t *testing.T) {
	tests := []struct {
		name    string
		qos     int
		wantErr bool
	}{
		{"qos 0", 0, false},
		{"qos 1", 1, false},
		{"qos 2", 2, false},
		{"qos 3", 3, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.MQTT.QoS = tt.qos
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
