// Package idreg maps opaque application tokens to the compact numeric
// identifiers the Windows shell understands. Tokens are process-unique and
// never reused; native IDs are scoped to an ID-space and may be reused once
// the owning entity has been released.
package idreg

import (
	"errors"
	"sync/atomic"
)

// Space is an independent numbering domain. A native ID value may exist in
// two spaces at once without colliding.
type Space uint8

const (
	MenuItems Space = iota
	Icons
	Notifications

	spaceCount
)

// MaxNativeID bounds allocation. Menu command identifiers are WORD-sized on
// the wire, so every space sticks to that width.
const MaxNativeID = 0xFFFF

var ErrSpaceExhausted = errors.New("idreg: no native ids left in space")

// TokenSource issues process-unique tokens. It is safe for concurrent use
// and is shared between the builder, the sender, and the registry so that a
// token minted anywhere never collides with one minted elsewhere.
type TokenSource struct {
	next atomic.Uint32
}

// Next returns a fresh token. Tokens start at 1; zero means "no token".
func (s *TokenSource) Next() uint32 {
	return s.next.Add(1)
}

type entry struct {
	space  Space
	native uint32
}

// Registry is the bidirectional token/native-ID index. It is not
// synchronized: before the pump starts it belongs to the builder, afterwards
// to the pump thread exclusively.
type Registry struct {
	tokens   *TokenSource
	byToken  map[uint32]entry
	byNative [spaceCount]map[uint32]uint32
}

func New(tokens *TokenSource) *Registry {
	r := &Registry{
		tokens:  tokens,
		byToken: make(map[uint32]entry),
	}
	for i := range r.byNative {
		r.byNative[i] = make(map[uint32]uint32)
	}
	return r
}

// Allocate mints a new token and binds it to the smallest unused native ID
// in the space.
func (r *Registry) Allocate(space Space) (token, native uint32, err error) {
	token = r.tokens.Next()
	native, err = r.Bind(space, token)
	return token, native, err
}

// Bind associates an externally minted token with the smallest unused native
// ID in the space. Binding an already bound token returns its existing
// native ID.
func (r *Registry) Bind(space Space, token uint32) (uint32, error) {
	if e, ok := r.byToken[token]; ok {
		return e.native, nil
	}

	live := r.byNative[space]
	native := uint32(1)
	for {
		if native > MaxNativeID {
			return 0, ErrSpaceExhausted
		}
		if _, taken := live[native]; !taken {
			break
		}
		native++
	}

	r.byToken[token] = entry{space: space, native: native}
	live[native] = token
	return native, nil
}

// Release removes the mapping for token, freeing its native ID for reuse.
// Releasing an unknown token is a no-op so teardown stays idempotent.
func (r *Registry) Release(token uint32) {
	e, ok := r.byToken[token]
	if !ok {
		return
	}
	delete(r.byToken, token)
	delete(r.byNative[e.space], e.native)
}

// Native resolves a token to its native ID. A miss means the entity has
// already been removed and is not an error.
func (r *Registry) Native(token uint32) (uint32, bool) {
	e, ok := r.byToken[token]
	if !ok {
		return 0, false
	}
	return e.native, true
}

// Token resolves a native ID within a space back to its token.
func (r *Registry) Token(space Space, native uint32) (uint32, bool) {
	token, ok := r.byNative[space][native]
	return token, ok
}
