package core

// SessionID identifies the session that owns a room. The room never
// interprets it.
type SessionID string
