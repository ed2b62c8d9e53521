package main

import (
	"testing"

	"github.com/example/winshell/internal/config"
)

func TestParseGlobalFlagsStripsDebug(t *testing.T) {
	filtered, debug := parseGlobalFlags([]string{"add", "--debug", "-label", "x"})
	if !debug {
		t.Fatal("expected debug flag to be detected")
	}
	if len(filtered) != 3 || filtered[0] != "add" {
		t.Fatalf("unexpected filtered args: %#v", filtered)
	}
}

func TestParseGlobalFlagsNoDebug(t *testing.T) {
	filtered, debug := parseGlobalFlags([]string{"list"})
	if debug {
		t.Fatal("debug flag should not be set")
	}
	if len(filtered) != 1 || filtered[0] != "list" {
		t.Fatalf("unexpected filtered args: %#v", filtered)
	}
}

func TestValidateItem(t *testing.T) {
	tests := []struct {
		name    string
		item    config.MenuItem
		wantErr bool
	}{
		{"text with label", config.MenuItem{Type: config.MenuItemText, Label: "hi"}, false},
		{"text without label", config.MenuItem{Type: config.MenuItemText}, true},
		{"command complete", config.MenuItem{Type: config.MenuItemCommand, Label: "run", Command: "notepad"}, false},
		{"command missing command", config.MenuItem{Type: config.MenuItemCommand, Label: "run"}, true},
		{"url complete", config.MenuItem{Type: config.MenuItemURL, Label: "site", URL: "https://example.com"}, false},
		{"url missing url", config.MenuItem{Type: config.MenuItemURL, Label: "site"}, true},
		{"submenu with label", config.MenuItem{Type: config.MenuItemMenu, Label: "more"}, false},
		{"divider", config.MenuItem{Type: config.MenuItemDivider}, false},
		{"unknown type", config.MenuItem{Type: "bogus"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateItem(tc.item)
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 20); got != "short" {
		t.Fatalf("truncate(short) = %q", got)
	}
	if got := truncate("a very long label indeed", 10); got != "a very ..." {
		t.Fatalf("truncate long = %q", got)
	}
}

func TestParseList(t *testing.T) {
	got := parseList(" a, b ,,c ")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("parseList = %#v", got)
	}
	if parseList("") != nil {
		t.Fatal("empty input should yield nil")
	}
}
