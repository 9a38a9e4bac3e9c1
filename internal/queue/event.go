// Package queue defines the messages exchanged over the broker and the
// consumer that turns them into audit log lines.
package queue

import "time"

// SessionEventsQueue is the durable queue every capacity mutation is
// published to, on the default exchange.
const SessionEventsQueue = "session.events"

// Event types carried in SessionEvent.Type.
const (
    EventSessionCreated   = "session.created"
    EventSessionJoined    = "session.joined"
    EventSessionLeft      = "session.left"
    EventSessionCancelled = "session.cancelled"
    EventSessionDeleted   = "session.deleted"
)

// SessionEvent is published after a capacity mutation commits.  It
// carries enough context for the audit trail without querying the
// store; for deletions it is the only record of the reason.
type SessionEvent struct {
    EventID      string    `json:"event_id"`
    Type         string    `json:"type"`
    SessionID    uint64    `json:"session_id"`
    SessionTitle string    `json:"session_title"`
    ActorID      uint64    `json:"actor_id"`
    ActorRole    string    `json:"actor_role"`
    Reason       string    `json:"reason,omitempty"`
    Participants int       `json:"participants"`
    OccurredAt   time.Time `json:"occurred_at"`
}
