// Package protocol defines the copy-data payload exchanged between demo
// instances.
package protocol

import (
	"encoding/json"
	"fmt"
)

// CopyDataType discriminates demo requests among WM_COPYDATA payloads.
const CopyDataType = 0x77735243

const (
	// CommandNotify asks the running instance to show a balloon with the
	// request body.
	CommandNotify = "notify"
	// CommandReload asks the running instance to re-read its
	// configuration and rebuild the menu.
	CommandReload = "menu.reload"
)

// Request is the payload forwarded from a second demo invocation to the
// instance that owns the tray icon.
type Request struct {
	Token    string `json:"token"`
	Instance string `json:"instance,omitempty"`
	Command  string `json:"command"`
	Body     string `json:"body,omitempty"`
}

// Encode serializes the request for transport.
func (r Request) Encode() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return data, nil
}

// Decode parses a transported request.
func Decode(data []byte) (Request, error) {
	var r Request
	if err := json.Unmarshal(data, &r); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	return r, nil
}
