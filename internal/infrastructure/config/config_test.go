package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "inboxassist.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
	if cfg.Worker.Count != 5 || cfg.Worker.QueueSize != 100 || cfg.Worker.DrainTimeout != 30*time.Second {
		t.Errorf("worker = %+v", cfg.Worker)
	}
	if cfg.Gmail.Enabled {
		t.Error("gmail must be off by default")
	}
	if !cfg.Inbox.CreateTasks {
		t.Error("task creation should default to on")
	}
}

func TestLoad_LegacyEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_PATH", "/tmp/x.db")
	t.Setenv("MODEL_NAME", "gpt-test")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "proj")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "/tmp/x.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
	if cfg.OpenAI.Model != "gpt-test" {
		t.Errorf("model = %q", cfg.OpenAI.Model)
	}
	if cfg.PubSub.TopicName != "projects/proj/topics/gmail-topic" {
		t.Errorf("topic = %q", cfg.PubSub.TopicName)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := "worker:\n  count: 2\ninbox:\n  create_tasks: false\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Worker.Count != 2 {
		t.Errorf("worker count = %d, want 2", cfg.Worker.Count)
	}
	if cfg.Inbox.CreateTasks {
		t.Error("create_tasks should be off from the file")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database:   DatabaseConfig{Path: "x.db"},
			Worker:     WorkerConfig{Count: 1},
			HTTPServer: HTTPServerConfig{Enabled: true, Port: 8080},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"no database", func(c *Config) { c.Database.Path = "" }, true},
		{"polish without key", func(c *Config) { c.OpenAI.PolishDrafts = true }, true},
		{"polish with key", func(c *Config) { c.OpenAI.PolishDrafts = true; c.OpenAI.APIKey = "k" }, false},
		{"gmail without project", func(c *Config) { c.Gmail.Enabled = true }, true},
		{"gmail without subscription", func(c *Config) { c.Gmail.Enabled = true; c.PubSub.Project = "p" }, true},
		{"gmail complete", func(c *Config) {
			c.Gmail.Enabled = true
			c.PubSub.Project = "p"
			c.PubSub.SubscriptionID = "s"
		}, false},
		{"zero workers", func(c *Config) { c.Worker.Count = 0 }, true},
		{"http without port", func(c *Config) { c.HTTPServer.Port = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
