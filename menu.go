package winshell

import (
	"fmt"

	"github.com/example/winshell/internal/idreg"
)

type menuItemKind int

const (
	menuEntry menuItemKind = iota
	menuSeparator
	menuSubmenu
)

// PopupMenu is a menu being assembled for a tray area. It is not safe for
// concurrent use; build the tree on one goroutine and hand it over via
// Build or Sender.AddArea.
type PopupMenu struct {
	tokens  *idreg.TokenSource
	items   []*MenuItem
	defItem Token
}

func newPopupMenu(tokens *idreg.TokenSource) *PopupMenu {
	return &PopupMenu{tokens: tokens}
}

// MenuItem is one node of a popup menu tree.
type MenuItem struct {
	token    Token
	kind     menuItemKind
	label    string
	checked  bool
	disabled bool
	submenu  *PopupMenu
}

// Token returns the item's process-unique token. Use it to match
// MenuItemClicked events and to address UpdateMenuItem.
func (mi *MenuItem) Token() Token {
	return mi.token
}

// Checked sets the initial check mark and returns the item for chaining.
func (mi *MenuItem) Checked(v bool) *MenuItem {
	mi.checked = v
	return mi
}

// Disabled greys the item out initially and returns it for chaining.
func (mi *MenuItem) Disabled(v bool) *MenuItem {
	mi.disabled = v
	return mi
}

// AddEntry appends a clickable entry with the given label.
func (m *PopupMenu) AddEntry(label string) *MenuItem {
	mi := &MenuItem{
		token: Token(m.tokens.Next()),
		kind:  menuEntry,
		label: label,
	}
	m.items = append(m.items, mi)
	return mi
}

// AddSeparator appends a separator line.
func (m *PopupMenu) AddSeparator() {
	m.items = append(m.items, &MenuItem{
		token: Token(m.tokens.Next()),
		kind:  menuSeparator,
	})
}

// AddSubmenu appends an item that opens a nested menu. The returned
// MenuItem is the parent node, the returned PopupMenu the nested tree.
func (m *PopupMenu) AddSubmenu(label string) (*MenuItem, *PopupMenu) {
	sub := newPopupMenu(m.tokens)
	mi := &MenuItem{
		token:   Token(m.tokens.Next()),
		kind:    menuSubmenu,
		label:   label,
		submenu: sub,
	}
	m.items = append(m.items, mi)
	return mi, sub
}

// SetDefault marks the entry with token t as this menu level's default
// (rendered bold, activated on double-click). A later call replaces the
// previous default. The token must belong to an entry of this menu;
// violations are reported by Build.
func (m *PopupMenu) SetDefault(t Token) {
	m.defItem = t
}

// validate checks default markers across the whole tree.
func (m *PopupMenu) validate() error {
	if m.defItem != NoToken {
		found := false
		for _, mi := range m.items {
			if mi.token == m.defItem && mi.kind == menuEntry {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("default token %d is not an entry of its menu", m.defItem)
		}
	}
	for _, mi := range m.items {
		if mi.kind == menuSubmenu {
			if err := mi.submenu.validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// walk visits every item depth-first in insertion order.
func (m *PopupMenu) walk(fn func(*MenuItem)) {
	for _, mi := range m.items {
		fn(mi)
		if mi.kind == menuSubmenu {
			mi.submenu.walk(fn)
		}
	}
}
