package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("SECRETLAUNCH_AWS_REGION", "")
	t.Setenv("SECRETLAUNCH_AWS_PROFILE", "")
	t.Setenv("SECRETLAUNCH_TIMEOUT", "")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFromDir() returned error: %v", err)
	}
	if cfg.AWS.Region != "" {
		t.Errorf("expected empty region, got %q", cfg.AWS.Region)
	}
	if cfg.AWS.Profile != "" {
		t.Errorf("expected empty profile, got %q", cfg.AWS.Profile)
	}
	if cfg.Timeout != "" {
		t.Errorf("expected empty timeout, got %q", cfg.Timeout)
	}
}

func TestLoadFromEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRETLAUNCH_AWS_REGION", "ap-northeast-1")
	t.Setenv("SECRETLAUNCH_AWS_PROFILE", "myprofile")
	t.Setenv("SECRETLAUNCH_TIMEOUT", "45s")

	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFromDir() returned error: %v", err)
	}
	if cfg.AWS.Region != "ap-northeast-1" {
		t.Errorf("region = %q, want ap-northeast-1", cfg.AWS.Region)
	}
	if cfg.AWS.Profile != "myprofile" {
		t.Errorf("profile = %q, want myprofile", cfg.AWS.Profile)
	}
	if cfg.Timeout != "45s" {
		t.Errorf("timeout = %q, want 45s", cfg.Timeout)
	}
}

func TestEnvOverridesAWSVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("SECRETLAUNCH_AWS_REGION", "eu-west-1")

	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFromDir() returned error: %v", err)
	}
	if cfg.AWS.Region != "eu-west-1" {
		t.Errorf("SECRETLAUNCH_AWS_REGION must win over AWS_REGION, got %q", cfg.AWS.Region)
	}
}

func TestLoadFromProjectConfig(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()

	content := "[aws]\nregion = \"eu-central-1\"\nprofile = \"prod\"\n"
	if err := os.WriteFile(filepath.Join(tmpDir, ".secretlaunch.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("LoadFromDir() returned error: %v", err)
	}
	if cfg.AWS.Region != "eu-central-1" {
		t.Errorf("region = %q, want eu-central-1", cfg.AWS.Region)
	}
	if cfg.AWS.Profile != "prod" {
		t.Errorf("profile = %q, want prod", cfg.AWS.Profile)
	}
}

func TestProjectOverridesGlobal(t *testing.T) {
	clearEnv(t)
	projectDir := t.TempDir()
	globalDir := t.TempDir()

	global := "timeout = \"2m\"\n[aws]\nregion = \"us-west-1\"\n"
	if err := os.WriteFile(filepath.Join(globalDir, "config.toml"), []byte(global), 0o644); err != nil {
		t.Fatal(err)
	}
	project := "[aws]\nregion = \"us-west-2\"\n"
	if err := os.WriteFile(filepath.Join(projectDir, ".secretlaunch.toml"), []byte(project), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWithGlobalDir(projectDir, globalDir)
	if err != nil {
		t.Fatalf("LoadWithGlobalDir() returned error: %v", err)
	}
	if cfg.AWS.Region != "us-west-2" {
		t.Errorf("project config must win, region = %q", cfg.AWS.Region)
	}
	if cfg.Timeout != "2m" {
		t.Errorf("global timeout must survive, got %q", cfg.Timeout)
	}
}

func TestApplyCLIOverrides(t *testing.T) {
	cfg := &Config{}
	cfg.AWS.Region = "us-east-1"

	ApplyCLIOverrides(cfg, "eu-north-1", "", 45*time.Second)
	if cfg.AWS.Region != "eu-north-1" {
		t.Errorf("region = %q, want eu-north-1", cfg.AWS.Region)
	}
	if cfg.AWS.Profile != "" {
		t.Errorf("empty flag must not clobber profile, got %q", cfg.AWS.Profile)
	}
	if cfg.Timeout != "45s" {
		t.Errorf("timeout = %q, want 45s", cfg.Timeout)
	}
}

func TestResolveTimeout(t *testing.T) {
	cfg := &Config{}
	d, err := cfg.ResolveTimeout()
	if err != nil || d != DefaultTimeout {
		t.Errorf("ResolveTimeout() = %v, %v; want default", d, err)
	}

	cfg.Timeout = "90s"
	d, err = cfg.ResolveTimeout()
	if err != nil || d != 90*time.Second {
		t.Errorf("ResolveTimeout() = %v, %v; want 90s", d, err)
	}

	cfg.Timeout = "banana"
	if _, err = cfg.ResolveTimeout(); err == nil {
		t.Error("expected error for malformed timeout")
	}

	cfg.Timeout = "-5s"
	if _, err = cfg.ResolveTimeout(); err == nil {
		t.Error("expected error for negative timeout")
	}
}
