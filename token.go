// Package winshell integrates a windowless process with the Windows
// desktop shell: notification-area icons with popup menus, balloon
// notifications, clipboard-change monitoring and WM_COPYDATA messaging.
//
// All shell state is owned by a single OS thread running a blocking
// message pump. Callers talk to it through a Sender (commands) and an
// event channel, both returned by Build.
package winshell

// Token identifies a menu item, tray area or notification issued by this
// process. Tokens are opaque, comparable, process-unique and never
// reused. The zero value means "no token".
type Token uint32

// NoToken is the zero Token.
const NoToken Token = 0
