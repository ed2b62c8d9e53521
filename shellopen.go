package winshell

import (
	"errors"
	"net/url"
)

// OpenURL opens the URL in the user's default handler. The URL is
// validated before anything is launched.
func OpenURL(raw string) error {
	if raw == "" {
		return errors.New("winshell: empty url")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return err
	}
	return shellOpen(raw)
}

// OpenDir opens the directory in the platform file browser.
func OpenDir(path string) error {
	if path == "" {
		return errors.New("winshell: empty path")
	}
	return shellOpen(path)
}
