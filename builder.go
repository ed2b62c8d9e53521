package winshell

import (
	"errors"
	"fmt"

	"github.com/example/winshell/internal/idreg"
)

// defaultEventBuffer is the event channel capacity. When the consumer
// falls this far behind, the oldest pending event is dropped.
const defaultEventBuffer = 64

// Builder assembles the window, icon table and tray areas before the
// pump starts. Obtain one with CreateWindow.
type Builder struct {
	className  string
	windowName string
	clipboard  bool
	icons      Icons
	areas      []*Area
	tokens     *idreg.TokenSource
	eventBuf   int

	// backend overrides the platform backend, for tests.
	backend backend
}

// CreateWindow starts a builder for a hidden message window with the
// given class name. The class name is how other processes find this
// window for copy-data messaging, so pick something unique.
func CreateWindow(className string) *Builder {
	return &Builder{
		className: className,
		tokens:    new(idreg.TokenSource),
		eventBuf:  defaultEventBuffer,
	}
}

// WindowName sets the window title. Invisible, but it shows up in
// tooling that enumerates windows.
func (b *Builder) WindowName(name string) *Builder {
	b.windowName = name
	return b
}

// ClipboardEvents subscribes the window to clipboard-change
// notifications, delivered as ClipboardChanged events.
func (b *Builder) ClipboardEvents(v bool) *Builder {
	b.clipboard = v
	return b
}

// Icons returns the icon table. Register every image before Build.
func (b *Builder) Icons() *Icons {
	return &b.icons
}

// NewArea adds a tray area to the initial configuration and returns it
// for further setup.
func (b *Builder) NewArea() *Area {
	a := newArea(b.tokens)
	b.areas = append(b.areas, a)
	return a
}

// EventBuffer overrides the event channel capacity.
func (b *Builder) EventBuffer(n int) *Builder {
	b.eventBuf = n
	return b
}

// Build validates the configuration, spawns the pump thread and performs
// all window, icon and menu setup on it. On success it returns the
// command sender and the event channel. On failure the thread is torn
// down and no shell state remains.
func (b *Builder) Build() (*Sender, <-chan Event, error) {
	if err := b.validate(); err != nil {
		return nil, nil, err
	}

	be := b.backend
	if be == nil {
		be = newPlatformBackend()
	}

	cfg := windowConfig{
		className:  b.className,
		windowName: b.windowName,
		clipboard:  b.clipboard,
	}
	sink := newEventSink(b.eventBuf)
	p := newPump(cfg, be, b.tokens, sink, b.icons.buffers, b.areas)

	go p.run()
	if err := <-p.started; err != nil {
		return nil, nil, fmt.Errorf("winshell: setup: %w", err)
	}

	s := &Sender{mail: p.mail, tokens: b.tokens}
	return s, sink.ch, nil
}

func (b *Builder) validate() error {
	if b.className == "" {
		return errors.New("winshell: window class name is empty")
	}
	if len(b.className) > 256 {
		return errors.New("winshell: window class name is longer than 256 characters")
	}
	for i, buf := range b.icons.buffers {
		if buf.data == nil {
			return fmt.Errorf("winshell: icon %d is not a usable image", i)
		}
	}
	for _, a := range b.areas {
		if a.hasIcon {
			if _, ok := b.icons.get(a.iconID); !ok {
				return fmt.Errorf("winshell: area %d refers to unregistered icon %d", a.token, a.iconID)
			}
		}
		if a.menu != nil {
			if err := a.menu.validate(); err != nil {
				return fmt.Errorf("winshell: %w", err)
			}
		}
	}
	return nil
}
