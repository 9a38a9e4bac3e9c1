package model

import "time"

// Sport is an activity type defined by an administrator.  Sessions
// reference exactly one sport.
type Sport struct {
    ID          uint64    `json:"id"`
    Name        string    `json:"name"`
    Description string    `json:"description"`
    MaxPlayers  int       `json:"max_players"`
    CreatedBy   *uint64   `json:"created_by"`
    CreatedAt   time.Time `json:"created_at"`
}
