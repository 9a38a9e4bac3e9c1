package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/rs/zerolog"
)

// AuditConsumer drains SessionEventsQueue and appends one line per event
// to LogPath.  Malformed payloads are rejected without requeue so a bad
// message cannot wedge the queue.
type AuditConsumer struct {
    URL     string
    LogPath string
    Log     zerolog.Logger

    mu sync.Mutex // serializes writes to LogPath
}

// NewAuditConsumer returns a consumer for the broker at url.
func NewAuditConsumer(url, logPath string, log zerolog.Logger) *AuditConsumer {
    return &AuditConsumer{URL: url, LogPath: logPath, Log: log}
}

// Run connects and consumes until ctx is cancelled, reconnecting with
// exponential backoff (capped at 30s) whenever the broker goes away.
func (c *AuditConsumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        if ctx.Err() != nil {
            return ctx.Err()
        }
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            c.Log.Warn().Err(err).Dur("retry_in", backoff).Msg("audit consumer: dial failed")
            if !sleepCtx(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = c.consume(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        c.Log.Warn().Err(err).Msg("audit consumer: consume loop ended; reconnecting")
        if !sleepCtx(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

func (c *AuditConsumer) consume(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        c.Log.Warn().Err(err).Msg("audit consumer: set QoS failed")
    }
    if _, err := ch.QueueDeclare(SessionEventsQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.ConsumeWithContext(ctx, SessionEventsQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }
    c.Log.Info().Str("queue", SessionEventsQueue).Msg("audit consumer: consuming")

    for d := range msgs {
        if err := c.HandleMessage(d.Body); err != nil {
            c.Log.Error().Err(err).Msg("audit consumer: handle message failed")
            _ = d.Nack(false, false)
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

// HandleMessage decodes one payload and appends its audit line.
func (c *AuditConsumer) HandleMessage(body []byte) error {
    var ev SessionEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.Type == "" || ev.SessionID == 0 {
        return errors.New("event missing type or session_id")
    }

    c.mu.Lock()
    defer c.mu.Unlock()
    if err := os.MkdirAll(filepath.Dir(c.LogPath), 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()
    if _, err := f.WriteString(FormatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// FormatLine renders ev as a single newline-terminated audit line.
func FormatLine(ev SessionEvent) string {
    var b strings.Builder
    fmt.Fprintf(&b, "[%s] %s | event_id=%s | session_id=%d | title=%q | actor_id=%d | role=%s | participants=%d",
        ev.OccurredAt.UTC().Format(time.RFC3339), ev.Type, ev.EventID, ev.SessionID,
        ev.SessionTitle, ev.ActorID, ev.ActorRole, ev.Participants)
    if ev.Reason != "" {
        fmt.Fprintf(&b, " | reason=%q", ev.Reason)
    }
    b.WriteByte('\n')
    return b.String()
}
