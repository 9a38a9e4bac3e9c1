package model

// DateRange bounds report queries by session date.  Empty bounds are
// open; both ends are inclusive.
type DateRange struct {
    From string // YYYY-MM-DD or ""
    To   string // YYYY-MM-DD or ""
}

// Stats is the dashboard summary returned by /api/reports/stats.
type Stats struct {
    TotalSessions     int `json:"total_sessions"`
    CompletedSessions int `json:"completed_sessions"`
    CancelledSessions int `json:"cancelled_sessions"`
    UpcomingSessions  int `json:"upcoming_sessions"`
    TotalParticipants int `json:"total_participants"`
    TotalSports       int `json:"total_sports"`
}

// SportPopularity is the number of sessions scheduled for one sport.
type SportPopularity struct {
    SportID uint64 `json:"sport_id"`
    Name    string `json:"name"`
    Count   int    `json:"count"`
}

// DateCount is the number of sessions scheduled on one date.
type DateCount struct {
    Date  string `json:"date"`
    Count int    `json:"count"`
}
