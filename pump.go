package winshell

import (
	"fmt"
	"runtime"

	"github.com/example/winshell/internal/idreg"
	"github.com/example/winshell/internal/logging"
)

type pumpState int

const (
	stateNotStarted pumpState = iota
	stateRunning
	stateShuttingDown
	stateStopped
)

// menuRef locates one realized menu item for updates.
type menuRef struct {
	handle uintptr
	native uint32
}

// areaState is the pump-side record of one installed tray area.
type areaState struct {
	token  Token
	native uint32
	menu   *PopupMenu
	// menus holds every realized menu handle in creation order; root is
	// the top-level one shown on right-click.
	menus []uintptr
	root  uintptr
	items []Token
}

// pump owns all shell state. Everything except the mailbox and the event
// channel is confined to the single locked OS thread running run.
type pump struct {
	cfg    windowConfig
	be     backend
	reg    *idreg.Registry
	tokens *idreg.TokenSource
	mail   *mailbox
	sink   *eventSink

	icons       []iconBuffer
	iconHandles []uintptr

	initial []*Area
	areas   map[Token]*areaState
	order   []Token
	itemRef map[Token]menuRef
	tracker *notifyTracker

	state   pumpState
	started chan error
}

func newPump(cfg windowConfig, be backend, tokens *idreg.TokenSource, sink *eventSink, icons []iconBuffer, initial []*Area) *pump {
	p := &pump{
		cfg:     cfg,
		be:      be,
		reg:     idreg.New(tokens),
		tokens:  tokens,
		mail:    &mailbox{wake: be.wake},
		sink:    sink,
		icons:   icons,
		initial: initial,
		areas:   make(map[Token]*areaState),
		itemRef: make(map[Token]menuRef),
		tracker: newNotifyTracker(),
		started: make(chan error, 1),
	}
	return p
}

// run is the pump thread. It performs all window/icon/menu setup, reports
// the result on started, then loops until shutdown.
func (p *pump) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := p.setup(); err != nil {
		p.teardown()
		p.started <- err
		return
	}

	p.state = stateRunning
	p.started <- nil

	for p.state == stateRunning {
		msg, ok := p.be.getMessage()
		if !ok {
			logging.Debugf("window destroyed, shutting down")
			p.state = stateShuttingDown
			break
		}
		p.drainCommands()
		if p.state != stateRunning {
			break
		}
		p.dispatch(msg)
	}

	p.teardown()
	p.state = stateStopped
	p.sink.terminal(ShutdownComplete{})
}

func (p *pump) setup() error {
	if err := p.be.start(p.cfg); err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	for i, buf := range p.icons {
		h, err := p.be.createIcon(buf)
		if err != nil {
			return fmt.Errorf("load icon %d: %w", i, err)
		}
		p.iconHandles = append(p.iconHandles, h)
	}
	for _, a := range p.initial {
		if err := p.installArea(a); err != nil {
			return err
		}
	}
	return nil
}

// installArea binds native IDs, realizes the menu tree and adds the tray
// icon. Used both for build-time areas and runtime AddArea commands.
func (p *pump) installArea(a *Area) error {
	if a.hasIcon && (a.iconID < 0 || int(a.iconID) >= len(p.iconHandles)) {
		return fmt.Errorf("icon %d not registered", a.iconID)
	}

	native, err := p.reg.Bind(idreg.Icons, uint32(a.token))
	if err != nil {
		return fmt.Errorf("bind area: %w", err)
	}

	st := &areaState{token: a.token, native: native, menu: a.menu}
	if a.menu != nil {
		root, err := p.realizeMenu(st, a.menu)
		if err != nil {
			for i := len(st.menus) - 1; i >= 0; i-- {
				_ = p.be.destroyMenu(st.menus[i])
			}
			p.releaseArea(st)
			return err
		}
		st.root = root
	}

	var icon uintptr
	if a.hasIcon {
		icon = p.iconHandles[a.iconID]
	}
	if err := p.be.addTrayIcon(native, icon, a.tooltip); err != nil {
		for i := len(st.menus) - 1; i >= 0; i-- {
			_ = p.be.destroyMenu(st.menus[i])
		}
		p.releaseArea(st)
		return fmt.Errorf("add tray icon: %w", err)
	}

	p.areas[a.token] = st
	p.order = append(p.order, a.token)
	return nil
}

// realizeMenu builds the native menu for m depth-first, binding a native
// ID for every node including separators and submenu parents.
func (p *pump) realizeMenu(st *areaState, m *PopupMenu) (uintptr, error) {
	h, err := p.be.createMenu()
	if err != nil {
		return 0, fmt.Errorf("create menu: %w", err)
	}
	st.menus = append(st.menus, h)

	for _, mi := range m.items {
		native, err := p.reg.Bind(idreg.MenuItems, uint32(mi.token))
		if err != nil {
			return 0, fmt.Errorf("bind menu item: %w", err)
		}
		st.items = append(st.items, mi.token)

		switch mi.kind {
		case menuEntry:
			def := m.defItem == mi.token
			err = p.be.addMenuEntry(h, native, mi.label, mi.checked, mi.disabled, def)
		case menuSeparator:
			err = p.be.addMenuSeparator(h, native)
		case menuSubmenu:
			var sub uintptr
			sub, err = p.realizeMenu(st, mi.submenu)
			if err == nil {
				err = p.be.addSubmenu(h, native, mi.label, sub, mi.disabled)
			}
		}
		if err != nil {
			return 0, fmt.Errorf("add menu item %q: %w", mi.label, err)
		}
		p.itemRef[mi.token] = menuRef{handle: h, native: native}
	}
	return h, nil
}

// drainCommands executes every queued command. Commands queued behind a
// shutdown in the same batch are discarded.
func (p *pump) drainCommands() {
	for _, c := range p.mail.drain() {
		if p.state != stateRunning {
			return
		}
		p.execute(c)
	}
}

func (p *pump) execute(c command) {
	switch c := c.(type) {
	case addAreaCmd:
		if err := p.installArea(c.area); err != nil {
			p.fail("add area", err)
		}
	case updateIconCmd:
		st, ok := p.areas[c.area]
		if !ok {
			p.fail("update icon", ErrUnknownToken)
			return
		}
		if int(c.icon) >= len(p.iconHandles) || c.icon < 0 {
			p.fail("update icon", fmt.Errorf("icon %d not registered", c.icon))
			return
		}
		if err := p.be.setTrayIcon(st.native, p.iconHandles[c.icon]); err != nil {
			p.fail("update icon", err)
		}
	case updateTooltipCmd:
		st, ok := p.areas[c.area]
		if !ok {
			p.fail("update tooltip", ErrUnknownToken)
			return
		}
		if err := p.be.setTrayTooltip(st.native, c.tooltip); err != nil {
			p.fail("update tooltip", err)
		}
	case removeAreaCmd:
		st, ok := p.areas[c.area]
		if !ok {
			p.fail("remove area", ErrUnknownToken)
			return
		}
		p.destroyArea(st)
		delete(p.areas, c.area)
		for i, tok := range p.order {
			if tok == c.area {
				p.order = append(p.order[:i], p.order[i+1:]...)
				break
			}
		}
	case updateMenuItemCmd:
		ref, ok := p.itemRef[c.item]
		if !ok {
			p.fail("update menu item", ErrUnknownToken)
			return
		}
		if err := p.be.updateMenuItem(ref.handle, ref.native, c.mod); err != nil {
			p.fail("update menu item", err)
		}
	case notifyCmd:
		st, ok := p.areas[c.area]
		if !ok {
			p.fail("notify", ErrUnknownToken)
			return
		}
		if _, err := p.reg.Bind(idreg.Notifications, uint32(c.id)); err != nil {
			p.fail("notify", err)
			return
		}
		if p.tracker.enqueue(c.area, c.id, c.n) {
			p.showNotification(st, c.id, c.n)
		}
	case writeClipboardCmd:
		if err := p.be.writeClipboardText(c.data); err != nil {
			p.fail("write clipboard", err)
		}
	case sendCopyDataCmd:
		if err := p.be.sendCopyData(c.targetClass, c.ty, c.data); err != nil {
			p.fail("send copy data", err)
		}
	case shutdownCmd:
		p.state = stateShuttingDown
	}
}

// showNotification displays a balloon whose in-flight slot is already
// claimed. On failure the slot is released and the next queued request
// gets its turn.
func (p *pump) showNotification(st *areaState, id Token, n Notification) {
	if err := p.be.showNotification(st.native, n); err != nil {
		p.fail("show notification", err)
		p.reg.Release(uint32(id))
		if _, next, ok := p.tracker.resolve(st.token); ok && next != nil {
			p.showNotification(st, next.id, next.n)
		}
		return
	}
	p.sink.publish(NotificationShown{Area: st.token, ID: id})
}

func (p *pump) dispatch(msg message) {
	switch msg.kind {
	case msgWake:
		// drained already

	case msgMenuCommand:
		tok, ok := p.reg.Token(idreg.MenuItems, msg.item)
		if !ok {
			logging.Debugf("menu command for unknown id %d", msg.item)
			return
		}
		p.sink.publish(MenuItemClicked{Item: Token(tok)})

	case msgIconLeftClick:
		tok, ok := p.reg.Token(idreg.Icons, msg.icon)
		if !ok {
			logging.Debugf("click for unknown icon id %d", msg.icon)
			return
		}
		p.sink.publish(IconClicked{Area: Token(tok)})

	case msgIconRightClick:
		tok, ok := p.reg.Token(idreg.Icons, msg.icon)
		if !ok {
			logging.Debugf("menu request for unknown icon id %d", msg.icon)
			return
		}
		st := p.areas[Token(tok)]
		if st == nil || st.root == 0 {
			return
		}
		if err := p.be.showMenu(st.root); err != nil {
			p.fail("show menu", err)
		}

	case msgBalloonClicked:
		p.resolveNotification(msg.icon, true)

	case msgBalloonDismissed:
		p.resolveNotification(msg.icon, false)

	case msgClipboardUpdated:
		p.sink.publish(ClipboardChanged{})

	case msgCopyData:
		p.sink.publish(CopyDataReceived{Sender: msg.sender, Type: msg.ty, Data: msg.data})
	}
}

func (p *pump) resolveNotification(iconNative uint32, clicked bool) {
	tok, ok := p.reg.Token(idreg.Icons, iconNative)
	if !ok {
		logging.Debugf("balloon callback for unknown icon id %d", iconNative)
		return
	}
	area := Token(tok)
	id, next, ok := p.tracker.resolve(area)
	if !ok {
		logging.Debugf("stale balloon callback for area %d", area)
		return
	}
	p.reg.Release(uint32(id))

	if clicked {
		p.sink.publish(NotificationClicked{Area: area, ID: id})
	} else {
		p.sink.publish(NotificationDismissed{Area: area, ID: id})
	}

	if next != nil {
		if st := p.areas[area]; st != nil {
			p.showNotification(st, next.id, next.n)
		}
	}
}

// destroyArea removes an area's native state: tray icon, menus in reverse
// creation order, registry entries, queued notifications.
func (p *pump) destroyArea(st *areaState) {
	for _, id := range p.tracker.drop(st.token) {
		p.reg.Release(uint32(id))
	}
	if err := p.be.removeTrayIcon(st.native); err != nil {
		p.fail("remove tray icon", err)
	}
	for i := len(st.menus) - 1; i >= 0; i-- {
		if err := p.be.destroyMenu(st.menus[i]); err != nil {
			p.fail("destroy menu", err)
		}
	}
	p.releaseArea(st)
}

// releaseArea drops the registry and item-lookup entries for st.
func (p *pump) releaseArea(st *areaState) {
	for _, tok := range st.items {
		delete(p.itemRef, tok)
		p.reg.Release(uint32(tok))
	}
	p.reg.Release(uint32(st.token))
}

// teardown destroys everything in reverse creation order: areas (menus
// then tray icons), icon images, then the window and class.
func (p *pump) teardown() {
	for i := len(p.order) - 1; i >= 0; i-- {
		if st := p.areas[p.order[i]]; st != nil {
			p.destroyArea(st)
			delete(p.areas, p.order[i])
		}
	}
	p.order = nil
	for i := len(p.iconHandles) - 1; i >= 0; i-- {
		_ = p.be.destroyIcon(p.iconHandles[i])
	}
	p.iconHandles = nil
	if err := p.be.destroy(); err != nil {
		logging.Debugf("destroy window: %v", err)
	}
}

func (p *pump) fail(op string, err error) {
	logging.Debugf("%s: %v", op, err)
	p.sink.publish(OperationFailed{Op: op, Err: err})
}
