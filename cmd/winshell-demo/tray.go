package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/example/winshell"
	"github.com/example/winshell/internal/config"
	"github.com/example/winshell/internal/logging"
	"github.com/example/winshell/internal/protocol"
	"github.com/example/winshell/internal/security"
)

const (
	windowClassName   = "winshell.demo.window"
	instanceMutexName = "winshell-demo-single-instance"
)

// trayApp is the running tray instance: the sender plus the mapping from
// menu item tokens back to configured actions.
type trayApp struct {
	secret       string
	channelToken string
	instanceID   string
	sender       *winshell.Sender

	mu       sync.Mutex
	area     winshell.Token
	quit     winshell.Token
	actions  map[winshell.Token]config.MenuItem
	tooltip  string
	defaults config.NotificationDefaults
}

func runTray(cfg *config.Config, secret string) error {
	mutex, acquired, err := winshell.CreateAcquiredMutex(instanceMutexName)
	if err != nil {
		if errors.Is(err, winshell.ErrUnsupported) {
			return err
		}
		return fmt.Errorf("single instance guard: %w", err)
	}
	if !acquired {
		log.Print("another instance is running, asking it to reload")
		return forwardToRunning(secret, protocol.CommandReload, "")
	}
	defer mutex.Release()

	app := &trayApp{
		secret:       secret,
		channelToken: security.ResolveChannelToken(secret),
		instanceID:   uuid.NewString(),
	}

	builder := winshell.CreateWindow(windowClassName).
		WindowName("winshell demo").
		ClipboardEvents(true)

	var iconID winshell.IconID
	hasIcon := false
	if path := os.Getenv("WINSHELL_ICON"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read tray icon %s: %w", path, err)
		}
		iconID = builder.Icons().AddBuffer(data, 32, 32)
		hasIcon = true
	}

	area := builder.NewArea().Tooltip(tooltipFor(cfg))
	if hasIcon {
		area.Icon(iconID)
	}
	app.populateMenu(area.PopupMenu(), cfg)
	app.area = area.Token()
	app.tooltip = tooltipFor(cfg)
	app.defaults = cfg.Notifications

	sender, events, err := builder.Build()
	if err != nil {
		return err
	}
	app.sender = sender

	configPath, err := config.Path()
	if err != nil {
		sender.Shutdown()
		return err
	}
	watcher, err := app.watchConfig(configPath)
	if err != nil {
		logging.Debugf("config watcher unavailable: %v", err)
	} else {
		defer watcher.Close()
	}

	log.Print("winshell demo running")
	for e := range events {
		app.handleEvent(e)
	}
	return nil
}

// populateMenu builds the popup tree from the configured items and swaps
// in the fresh token-to-action table.
func (a *trayApp) populateMenu(menu *winshell.PopupMenu, cfg *config.Config) {
	actions := make(map[winshell.Token]config.MenuItem)

	items := append([]config.MenuItem(nil), cfg.Items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })

	submenus := make(map[string]*winshell.PopupMenu)
	place := func(m *winshell.PopupMenu, item config.MenuItem) {
		switch item.Type {
		case config.MenuItemDivider:
			m.AddSeparator()
		case config.MenuItemMenu:
			_, sub := m.AddSubmenu(item.Label)
			submenus[item.ID] = sub
		default:
			entry := m.AddEntry(item.Label)
			if item.Type == config.MenuItemText {
				entry.Disabled(true)
			}
			if item.Checked {
				entry.Checked(true)
			}
			if item.Default {
				m.SetDefault(entry.Token())
			}
			actions[entry.Token()] = item
		}
	}

	for _, item := range items {
		if item.ParentID == "" {
			place(menu, item)
		}
	}
	for _, item := range items {
		if item.ParentID == "" {
			continue
		}
		parent, ok := submenus[item.ParentID]
		if !ok {
			logging.Debugf("item %s references unknown parent %s, placing at top level", item.ID, item.ParentID)
			parent = menu
		}
		place(parent, item)
	}

	if len(items) > 0 {
		menu.AddSeparator()
	}
	quit := menu.AddEntry("Quit")

	a.mu.Lock()
	a.quit = quit.Token()
	a.actions = actions
	a.mu.Unlock()
}

func (a *trayApp) handleEvent(e winshell.Event) {
	switch e := e.(type) {
	case winshell.MenuItemClicked:
		a.mu.Lock()
		quit := a.quit
		item, ok := a.actions[e.Item]
		a.mu.Unlock()
		if e.Item == quit {
			log.Print("quit requested")
			a.sender.Shutdown()
			return
		}
		if ok {
			a.runItem(item)
		}

	case winshell.IconClicked:
		logging.Debugf("tray icon clicked")

	case winshell.ClipboardChanged:
		text, ok, err := winshell.ReadClipboardText()
		if err != nil {
			logging.Debugf("read clipboard: %v", err)
			return
		}
		if ok {
			logging.Debugf("clipboard now holds %d characters", len(text))
		}

	case winshell.CopyDataReceived:
		a.handleCopyData(e)

	case winshell.NotificationClicked:
		logging.Debugf("notification %d clicked", e.ID)

	case winshell.NotificationDismissed:
		logging.Debugf("notification %d dismissed", e.ID)

	case winshell.OperationFailed:
		log.Printf("operation %s failed: %v", e.Op, e.Err)

	case winshell.ShutdownComplete:
		log.Print("tray torn down")
	}
}

func (a *trayApp) runItem(item config.MenuItem) {
	switch item.Type {
	case config.MenuItemURL:
		if err := winshell.OpenURL(item.URL); err != nil {
			a.notify("Open failed", err.Error(), winshell.NotificationError)
		}
	case config.MenuItemCommand:
		cmd := exec.Command(item.Command, item.Arguments...)
		cmd.Dir = item.WorkingDir
		if err := cmd.Start(); err != nil {
			a.notify("Command failed", err.Error(), winshell.NotificationError)
			return
		}
		logging.Debugf("started %s (pid %d)", item.Command, cmd.Process.Pid)
	}
}

func (a *trayApp) handleCopyData(e winshell.CopyDataReceived) {
	if e.Type != protocol.CopyDataType {
		logging.Debugf("ignoring copy-data payload of type %#x", e.Type)
		return
	}
	req, err := protocol.Decode(e.Data)
	if err != nil {
		logging.Debugf("bad copy-data request: %v", err)
		return
	}
	if req.Token != a.channelToken {
		log.Printf("rejecting copy-data request with token %s", logging.MaskIdentifier(req.Token))
		return
	}

	switch req.Command {
	case protocol.CommandNotify:
		a.notify("", req.Body, winshell.NotificationInfo)
	case protocol.CommandReload:
		a.reload()
	default:
		logging.Debugf("unknown copy-data command %q", req.Command)
	}
}

func (a *trayApp) notify(title, body string, kind winshell.NotificationKind) {
	a.mu.Lock()
	area := a.area
	defaults := a.defaults
	a.mu.Unlock()

	if title == "" {
		title = defaults.Title
	}
	if title == "" {
		title = "winshell demo"
	}
	if defaults.Kind == "warning" && kind == winshell.NotificationInfo {
		kind = winshell.NotificationWarning
	}
	a.sender.Notify(area, winshell.Notification{
		Title:   title,
		Body:    body,
		Kind:    kind,
		NoSound: defaults.NoSound,
		Timeout: 10 * time.Second,
	})
}

// reload re-reads the configuration and replaces the tray area with a
// freshly built one.
func (a *trayApp) reload() {
	cfg, err := config.Load(a.secret)
	if err != nil {
		log.Printf("reload failed: %v", err)
		return
	}

	area := a.sender.NewArea().Tooltip(tooltipFor(cfg))
	a.populateMenu(area.PopupMenu(), cfg)
	if err := a.sender.AddArea(area); err != nil {
		log.Printf("reload failed: %v", err)
		return
	}

	a.mu.Lock()
	old := a.area
	a.area = area.Token()
	a.tooltip = tooltipFor(cfg)
	a.defaults = cfg.Notifications
	a.mu.Unlock()

	a.sender.RemoveArea(old)
	log.Print("configuration reloaded")
}

// watchConfig reloads when the configuration file is rewritten on disk.
func (a *trayApp) watchConfig(path string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	go func() {
		var lastReload time.Time
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				// Saves land as a temp-file write plus a rename; collapse
				// the burst into one reload.
				if time.Since(lastReload) < 500*time.Millisecond {
					continue
				}
				lastReload = time.Now()
				logging.Debugf("configuration changed on disk")
				a.reload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Debugf("config watcher: %v", err)
			}
		}
	}()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}
	return watcher, nil
}

// forwardToRunning delivers a request to the instance owning the tray.
func forwardToRunning(secret, command, body string) error {
	target, ok := winshell.FindWindowByClass(windowClassName)
	if !ok {
		return errors.New("no running winshell-demo instance found")
	}
	req := protocol.Request{
		Token:    security.ResolveChannelToken(secret),
		Instance: uuid.NewString(),
		Command:  command,
		Body:     body,
	}
	data, err := req.Encode()
	if err != nil {
		return err
	}
	if err := target.CopyData(protocol.CopyDataType, data); err != nil {
		return fmt.Errorf("forward %s: %w", command, err)
	}
	return nil
}

func handleAutostart(args []string) error {
	fs := newFlagSet("autostart")
	enable := fs.Bool("enable", false, "launch at login")
	disable := fs.Bool("disable", false, "stop launching at login")
	if err := fs.Parse(args); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	auto := &winshell.AutoStart{Name: "winshell-demo", Exe: exe}

	switch {
	case *enable:
		if err := auto.Install(); err != nil {
			return err
		}
		fmt.Println("Autostart enabled")
	case *disable:
		if err := auto.Uninstall(); err != nil {
			return err
		}
		fmt.Println("Autostart disabled")
	default:
		installed, err := auto.IsInstalled()
		if err != nil {
			return err
		}
		fmt.Printf("Autostart enabled: %v\n", installed)
	}
	return nil
}

func tooltipFor(cfg *config.Config) string {
	if cfg.Tooltip != "" {
		return cfg.Tooltip
	}
	return "winshell demo"
}
