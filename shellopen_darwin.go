//go:build darwin

package winshell

import "os/exec"

func shellOpen(target string) error {
	return exec.Command("open", target).Start()
}
