package model

import "time"

// Session status values stored in sessions.status.
const (
    SessionActive    = "active"
    SessionCancelled = "cancelled"
)

// Layouts used for the calendar date and time-of-day columns.
const (
    DateLayout = "2006-01-02"
    TimeLayout = "15:04:05"
)

// Session is a scheduled sports activity with a capacity-limited
// participant list.  CurrentParticipants is a denormalized count of the
// session_participants rows that reference the session; it only
// changes together with a membership row inside one transaction.
//
// SportName and CreatedByName are read-side annotations filled by
// listing queries.  Participants always encodes as an array; only
// ListSessions fills in names.
type Session struct {
    ID                  uint64    `json:"id"`
    SportID             uint64    `json:"sport_id"`
    SportName           string    `json:"sport_name,omitempty"`
    Title               string    `json:"title"`
    Description         string    `json:"description"`
    Venue               string    `json:"venue"`
    Date                string    `json:"date"` // YYYY-MM-DD
    Time                string    `json:"time"` // HH:MM:SS
    TeamA               string    `json:"team_a"`
    TeamB               string    `json:"team_b"`
    MaxParticipants     int       `json:"max_participants"`
    CurrentParticipants int       `json:"current_participants"`
    CreatedBy           uint64    `json:"created_by"`
    CreatedByName       string    `json:"created_by_name,omitempty"`
    Status              string    `json:"status"`
    CancellationReason  *string   `json:"cancellation_reason,omitempty"`
    CreatedAt           time.Time `json:"created_at"`
    Participants        []string  `json:"participants"`
}

// IsFull reports whether the stored counter has reached the cap.
func (s *Session) IsFull() bool { return s.CurrentParticipants >= s.MaxParticipants }

// Participant is the public view of a member of a session.
type Participant struct {
    ID    uint64 `json:"id"`
    Name  string `json:"name"`
    Email string `json:"email"`
}
