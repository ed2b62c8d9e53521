package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("WINSHELL_CONFIG_PATH", filepath.Join(t.TempDir(), "config.enc"))

	cfg := &Config{
		Tooltip: "hover text",
		Items: []MenuItem{
			{ID: "a", Type: MenuItemText, Label: "hello"},
			{ID: "b", Type: MenuItemCommand, Label: "run", Command: "notepad", Arguments: []string{"x"}},
		},
		Notifications: NotificationDefaults{Title: "demo", NoSound: true},
	}

	if err := Save(cfg, "passphrase"); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load("passphrase")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Tooltip != cfg.Tooltip {
		t.Fatalf("tooltip = %q, want %q", loaded.Tooltip, cfg.Tooltip)
	}
	if len(loaded.Items) != 2 || loaded.Items[1].Command != "notepad" {
		t.Fatalf("items did not survive the round trip: %#v", loaded.Items)
	}
	if !loaded.Notifications.NoSound {
		t.Fatal("notification defaults did not survive the round trip")
	}
}

func TestLoadWrongPassphrase(t *testing.T) {
	t.Setenv("WINSHELL_CONFIG_PATH", filepath.Join(t.TempDir(), "config.enc"))

	if err := Save(&Config{Tooltip: "x"}, "right"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := Load("wrong"); err == nil {
		t.Fatal("expected decryption failure with wrong passphrase")
	}
}

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	t.Setenv("WINSHELL_CONFIG_PATH", filepath.Join(t.TempDir(), "config.enc"))

	cfg, err := Load("passphrase")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Items) != 0 {
		t.Fatalf("expected empty config, got %d items", len(cfg.Items))
	}
}

func TestFileAtRestIsNotPlaintext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.enc")
	t.Setenv("WINSHELL_CONFIG_PATH", path)

	if err := Save(&Config{Tooltip: "supersecret"}, "passphrase"); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(raw) < saltSize+nonceSize {
		t.Fatal("ciphertext shorter than header")
	}
	if string(raw) == "supersecret" || containsSubstring(raw, "supersecret") {
		t.Fatal("plaintext leaked into the stored file")
	}
}

func containsSubstring(data []byte, s string) bool {
	for i := 0; i+len(s) <= len(data); i++ {
		if string(data[i:i+len(s)]) == s {
			return true
		}
	}
	return false
}
