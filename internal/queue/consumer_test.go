package queue

import (
    "encoding/json"
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/rs/zerolog"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestFormatLine(t *testing.T) {
    ev := SessionEvent{
        EventID:      "e-1",
        Type:         EventSessionDeleted,
        SessionID:    7,
        SessionTitle: "Friday \"pickup\"",
        ActorID:      2,
        ActorRole:    "admin",
        Reason:       "venue closed",
        Participants: 3,
        OccurredAt:   time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC),
    }
    assert.Equal(t,
        `[2030-01-02T03:04:05Z] session.deleted | event_id=e-1 | session_id=7 | title="Friday \"pickup\"" | actor_id=2 | role=admin | participants=3 | reason="venue closed"`+"\n",
        FormatLine(ev))

    ev.Reason = ""
    assert.NotContains(t, FormatLine(ev), "reason=")
}

func TestHandleMessageAppends(t *testing.T) {
    path := filepath.Join(t.TempDir(), "logs", "audit.log")
    c := NewAuditConsumer("amqp://unused", path, zerolog.Nop())

    for _, typ := range []string{EventSessionJoined, EventSessionLeft} {
        body, err := json.Marshal(SessionEvent{EventID: "x", Type: typ, SessionID: 1, OccurredAt: time.Now()})
        require.NoError(t, err)
        require.NoError(t, c.HandleMessage(body))
    }

    raw, err := os.ReadFile(path)
    require.NoError(t, err)
    assert.Contains(t, string(raw), "session.joined")
    assert.Contains(t, string(raw), "session.left")
}

func TestHandleMessageRejectsMalformed(t *testing.T) {
    c := NewAuditConsumer("amqp://unused", filepath.Join(t.TempDir(), "audit.log"), zerolog.Nop())
    assert.Error(t, c.HandleMessage([]byte("{not json")))
    assert.Error(t, c.HandleMessage([]byte(`{"type":""}`)))
}
