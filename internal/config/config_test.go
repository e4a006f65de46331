// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("QRSHARE_HOST", "")
	t.Setenv("QRSHARE_ID", "")
	t.Setenv("QRSHARE_AUTH", "")
	t.Setenv("QRSHARE_FOLLOW", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if cfg.Timeout() != 2500*time.Millisecond {
		t.Fatalf("timeout: got=%v", cfg.Timeout())
	}
	if cfg.PollInterval() != 500*time.Millisecond {
		t.Fatalf("interval: got=%v", cfg.PollInterval())
	}
	if cfg.CheckPeriod() != 5*time.Minute {
		t.Fatalf("check period: got=%v", cfg.CheckPeriod())
	}
	if cfg.Configured() {
		t.Fatalf("empty config must not be configured")
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	t.Setenv("QRSHARE_HOST", "")
	t.Setenv("QRSHARE_ID", "")
	t.Setenv("QRSHARE_AUTH", "")
	t.Setenv("QRSHARE_FOLLOW", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  host: 10.0.0.5:8000
  timeout_ms: 1000
identity:
  id: "40001"
  auth: abc
download:
  follow_user_id: 40002
  interval_ms: 750
  follow_users:
    40002: desk
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if cfg.Server.Host != "10.0.0.5:8000" || cfg.Server.TimeoutMs != 1000 {
		t.Fatalf("server: %+v", cfg.Server)
	}
	if cfg.Download.FollowUserID != 40002 || cfg.PollInterval() != 750*time.Millisecond {
		t.Fatalf("download: %+v", cfg.Download)
	}
	if cfg.FollowName(40002) != "desk" {
		t.Fatalf("follow name: got=%q", cfg.FollowName(40002))
	}
	if !cfg.Configured() {
		t.Fatalf("expected configured")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QRSHARE_HOST", "env-host:9000")
	t.Setenv("QRSHARE_ID", "7")
	t.Setenv("QRSHARE_AUTH", "tok")
	t.Setenv("QRSHARE_FOLLOW", "8")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if cfg.Server.Host != "env-host:9000" || cfg.Identity.ID != "7" || cfg.Identity.Auth != "tok" {
		t.Fatalf("env not applied: %+v %+v", cfg.Server, cfg.Identity)
	}
	if cfg.Download.FollowUserID != 8 {
		t.Fatalf("follow: got=%d", cfg.Download.FollowUserID)
	}
}

func TestSave_RoundTripFollowList(t *testing.T) {
	t.Setenv("QRSHARE_HOST", "")
	t.Setenv("QRSHARE_ID", "")
	t.Setenv("QRSHARE_AUTH", "")
	t.Setenv("QRSHARE_FOLLOW", "")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := valid()
	if err := cfg.AddFollow(40003, "kiosk"); err != nil {
		t.Fatalf("AddFollow err=%v", err)
	}
	if err := cfg.AddFollow(40002, "desk"); err != nil {
		t.Fatalf("AddFollow err=%v", err)
	}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save err=%v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}

	list := got.FollowList()
	if len(list) != 2 || list[0].ID != 40002 || list[1].Name != "kiosk" {
		t.Fatalf("unexpected follow list: %+v", list)
	}
}

func TestFollow_RemoveAndUnknownName(t *testing.T) {
	cfg := valid()
	_ = cfg.AddFollow(5, "five")

	if !cfg.RemoveFollow(5) {
		t.Fatalf("expected removal")
	}
	if cfg.RemoveFollow(5) {
		t.Fatalf("second removal must report false")
	}
	if cfg.FollowName(5) != "custom" {
		t.Fatalf("expected custom name, got %q", cfg.FollowName(5))
	}
	if err := cfg.AddFollow(0, "zero"); err == nil {
		t.Fatalf("expected id error")
	}
	if err := cfg.UseFollow(-1); err == nil {
		t.Fatalf("expected id error")
	}
}
