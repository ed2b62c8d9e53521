//go:build !windows && !darwin

package winshell

import "os/exec"

func shellOpen(target string) error {
	return exec.Command("xdg-open", target).Start()
}
