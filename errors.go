package winshell

import "errors"

var (
	// ErrUnsupported is returned by Build and the standalone helpers on
	// platforms without the Windows shell.
	ErrUnsupported = errors.New("winshell: not supported on this platform")

	// ErrUnknownToken reports a command that referenced an entity which
	// no longer exists. It surfaces inside OperationFailed events.
	ErrUnknownToken = errors.New("winshell: unknown token")
)
