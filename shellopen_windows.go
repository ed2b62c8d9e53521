//go:build windows

package winshell

import "os/exec"

func shellOpen(target string) error {
	return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
}
