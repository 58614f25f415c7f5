package webauthnhandler

import (
	"encoding/gob"
	"github.com/go-webauthn/webauthn/webauthn"
)

func init() {
	gob.Register(webauthn.SessionData{})
}

type sessionKey string

const webAuthnSessionKey = sessionKey("webauthn")
const userIDSessionKey = sessionKey("userID")
