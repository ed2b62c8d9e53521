package winshell

import (
	"testing"

	"github.com/example/winshell/internal/idreg"
)

func TestMenuTokensUnique(t *testing.T) {
	m := newPopupMenu(new(idreg.TokenSource))
	m.AddEntry("one")
	m.AddSeparator()
	_, sub := m.AddSubmenu("more")
	sub.AddEntry("two")
	sub.AddEntry("three")

	seen := make(map[Token]bool)
	m.walk(func(mi *MenuItem) {
		if mi.token == NoToken {
			t.Fatal("item without token")
		}
		if seen[mi.token] {
			t.Fatalf("token %d assigned twice", mi.token)
		}
		seen[mi.token] = true
	})
	if len(seen) != 5 {
		t.Fatalf("expected 5 items, walked %d", len(seen))
	}
}

func TestSetDefaultReplacesPrevious(t *testing.T) {
	m := newPopupMenu(new(idreg.TokenSource))
	a := m.AddEntry("a")
	b := m.AddEntry("b")

	m.SetDefault(a.Token())
	m.SetDefault(b.Token())

	if m.defItem != b.Token() {
		t.Fatalf("default is %d, want %d", m.defItem, b.Token())
	}
	if err := m.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestSetDefaultForeignTokenFailsValidation(t *testing.T) {
	m := newPopupMenu(new(idreg.TokenSource))
	m.AddEntry("a")
	_, sub := m.AddSubmenu("more")
	nested := sub.AddEntry("b")

	// The entry belongs to the submenu, not this level.
	m.SetDefault(nested.Token())
	if err := m.validate(); err == nil {
		t.Fatal("expected validation error for foreign default token")
	}
}

func TestSetDefaultSeparatorFailsValidation(t *testing.T) {
	m := newPopupMenu(new(idreg.TokenSource))
	m.AddEntry("a")
	m.AddSeparator()
	sep := m.items[1]

	m.SetDefault(sep.token)
	if err := m.validate(); err == nil {
		t.Fatal("expected validation error for separator default")
	}
}
