// Package security derives the shared token that authenticates copy-data
// requests between demo instances.
package security

import (
	"encoding/hex"
	"os"
	"strings"

	"golang.org/x/crypto/scrypt"

	"github.com/example/winshell/internal/config"
)

const channelTokenSalt = "winshell-demo|channel"

// ResolveChannelToken returns the configured messaging token, deriving a
// stable value from the application secret when no explicit token is
// provided.
func ResolveChannelToken(secret string) string {
	if compiled := strings.TrimSpace(config.CompiledSecret); compiled != "" {
		return DeriveChannelToken(compiled)
	}

	token := strings.TrimSpace(os.Getenv("WINSHELL_CHANNEL_TOKEN"))
	if token != "" {
		return token
	}

	return DeriveChannelToken(secret)
}

// DeriveChannelToken stretches the provided secret into a deterministic
// token.
func DeriveChannelToken(secret string) string {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return ""
	}
	key, err := scrypt.Key([]byte(secret), []byte(channelTokenSalt), 1<<15, 8, 1, 32)
	if err != nil {
		return ""
	}
	return hex.EncodeToString(key)
}
