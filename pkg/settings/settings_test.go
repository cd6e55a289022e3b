package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	s := New(viper.New(), filepath.Join(t.TempDir(), ".moodlog.yaml"))
	got := s.Load()
	if got != Defaults() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestSetPersists(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".moodlog.yaml")
	s := New(viper.New(), file)

	got, err := s.Set("Sounds", "false")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if got.Sounds || !got.Notifications {
		t.Fatalf("unexpected settings %+v", got)
	}
	if _, err := s.Set("language", "Deutsch"); err != nil {
		t.Fatalf("set language: %v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "Deutsch") {
		t.Fatalf("expected language in config file, got:\n%s", data)
	}

	v := viper.New()
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("reread: %v", err)
	}
	reloaded := New(v, file).Load()
	if reloaded.Sounds || reloaded.Language != "Deutsch" {
		t.Fatalf("settings not persisted: %+v", reloaded)
	}
}

func TestSetRejectsBadInput(t *testing.T) {
	s := New(viper.New(), filepath.Join(t.TempDir(), ".moodlog.yaml"))
	if _, err := s.Set("sounds", "loud"); err == nil {
		t.Fatalf("expected bool parse error")
	}
	if _, err := s.Set("theme", "dark"); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if _, err := s.Set("language", "  "); err == nil {
		t.Fatalf("expected empty language error")
	}
}
