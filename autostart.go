package winshell

import "strings"

// AutoStart configures launching an executable at user login.
type AutoStart struct {
	// Name is the registry value name identifying this entry.
	Name string
	// Exe is the path of the executable to launch.
	Exe string
	// Args are appended to the quoted executable path.
	Args []string
}

// commandLine renders the registered command: quoted executable followed
// by the arguments, arguments with spaces quoted.
func (a *AutoStart) commandLine() string {
	var sb strings.Builder
	sb.WriteByte('"')
	sb.WriteString(a.Exe)
	sb.WriteByte('"')
	for _, arg := range a.Args {
		sb.WriteByte(' ')
		if strings.ContainsAny(arg, " \t") {
			sb.WriteByte('"')
			sb.WriteString(arg)
			sb.WriteByte('"')
		} else {
			sb.WriteString(arg)
		}
	}
	return sb.String()
}
