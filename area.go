package winshell

import "github.com/example/winshell/internal/idreg"

// Area describes one notification-area icon: its image, tooltip and
// optional popup menu. Create areas through Builder.NewArea before Build,
// or through Sender.NewArea at runtime followed by Sender.AddArea.
type Area struct {
	token   Token
	tokens  *idreg.TokenSource
	iconID  IconID
	hasIcon bool
	tooltip string
	menu    *PopupMenu
}

func newArea(tokens *idreg.TokenSource) *Area {
	return &Area{
		token:  Token(tokens.Next()),
		tokens: tokens,
	}
}

// Token returns the area's process-unique token.
func (a *Area) Token() Token {
	return a.token
}

// Icon selects the image shown for this area.
func (a *Area) Icon(id IconID) *Area {
	a.iconID = id
	a.hasIcon = true
	return a
}

// Tooltip sets the hover text.
func (a *Area) Tooltip(s string) *Area {
	a.tooltip = s
	return a
}

// PopupMenu returns the menu opened on a secondary click, creating it on
// first use.
func (a *Area) PopupMenu() *PopupMenu {
	if a.menu == nil {
		a.menu = newPopupMenu(a.tokens)
	}
	return a.menu
}
