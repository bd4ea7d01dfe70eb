package domain

// SessionContext identifies the authenticated principal for one request. It
// is built by the transport layer from the session cookie and passed
// explicitly into flows that authorize against it; a nil *SessionContext
// means no active session.
type SessionContext struct {
	ProfileID ProfileID
}
