package webauthnhandler

import (
	"crypto/rand"
	"encoding/hex"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/intinc/platformexplorer/internal/errors"
)

// userHandleSize is the maximum WebAuthn user handle length.
const userHandleSize = 64

// user is an anonymous passkey holder. Accounts carry no profile data, so the display name is derived from the
// handle and only helps people tell passkeys apart in their authenticator.
type user struct {
	id          []byte
	displayName string
	credentials []webauthn.Credential
}

func newRandomUser() (*user, error) {
	id := make([]byte, userHandleSize)
	if _, err := rand.Read(id); err != nil {
		return nil, errors.Wrap(err, "generate user handle")
	}
	return &user{id: id, displayName: "Platform Explorer " + hex.EncodeToString(id[:4])}, nil
}

func (u *user) WebAuthnID() []byte {
	return u.id
}

func (u *user) WebAuthnName() string {
	return u.displayName
}

func (u *user) WebAuthnDisplayName() string {
	return u.displayName
}

func (u *user) WebAuthnCredentials() []webauthn.Credential {
	return u.credentials
}
