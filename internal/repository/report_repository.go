package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/sports-session-scheduler/internal/model"
)

// ReportRepo computes the aggregates shown on the reports dashboard.
type ReportRepo struct {
    db *sql.DB
}

// NewReportRepo returns a ReportRepo bound to db.
func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{db: db} }

// rangeCond appends inclusive bounds on col for whichever ends of rng
// are set.
func rangeCond(col string, rng model.DateRange, args []interface{}) (string, []interface{}) {
    cond := ""
    if rng.From != "" {
        cond += " AND " + col + " >= ?"
        args = append(args, rng.From)
    }
    if rng.To != "" {
        cond += " AND " + col + " <= ?"
        args = append(args, rng.To)
    }
    return cond, args
}

// Stats counts sessions by state within rng.  A session is upcoming when
// it is active and starts strictly after (nowDate, nowTime), completed
// when it is active and does not.
func (r *ReportRepo) Stats(ctx context.Context, rng model.DateRange, nowDate, nowTime string) (model.Stats, error) {
    var st model.Stats
    args := []interface{}{nowDate, nowDate, nowTime, model.SessionActive, model.SessionCancelled, nowDate, nowDate, nowTime, model.SessionActive}
    cond, args := rangeCond("s.date", rng, args)
    q := `SELECT COUNT(*),
                 COALESCE(SUM(CASE WHEN NOT ` + futureCond + ` AND s.status = ? THEN 1 ELSE 0 END), 0),
                 COALESCE(SUM(CASE WHEN s.status = ? THEN 1 ELSE 0 END), 0),
                 COALESCE(SUM(CASE WHEN ` + futureCond + ` AND s.status = ? THEN 1 ELSE 0 END), 0)
          FROM sessions s
          WHERE 1=1` + cond
    if err := r.db.QueryRowContext(ctx, q, args...).Scan(
        &st.TotalSessions, &st.CompletedSessions, &st.CancelledSessions, &st.UpcomingSessions,
    ); err != nil {
        return st, err
    }

    cond, args = rangeCond("s.date", rng, nil)
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM session_participants p JOIN sessions s ON s.id = p.session_id WHERE 1=1`+cond,
        args...).Scan(&st.TotalParticipants); err != nil {
        return st, err
    }

    if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sports`).Scan(&st.TotalSports); err != nil {
        return st, err
    }
    return st, nil
}

// SportPopularity returns every sport with its session count in rng,
// zero counts included, most popular first.
func (r *ReportRepo) SportPopularity(ctx context.Context, rng model.DateRange) ([]model.SportPopularity, error) {
    cond, args := rangeCond("s.date", rng, nil)
    q := `SELECT sp.id, sp.name, COUNT(s.id) AS session_count
          FROM sports sp
          LEFT JOIN sessions s ON s.sport_id = sp.id` + cond + `
          GROUP BY sp.id, sp.name
          ORDER BY session_count DESC, sp.name ASC`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.SportPopularity, 0)
    for rows.Next() {
        var p model.SportPopularity
        if err := rows.Scan(&p.SportID, &p.Name, &p.Count); err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    return out, rows.Err()
}

// SessionsByDate returns the number of sessions per date in rng, oldest
// first.
func (r *ReportRepo) SessionsByDate(ctx context.Context, rng model.DateRange) ([]model.DateCount, error) {
    cond, args := rangeCond("s.date", rng, nil)
    q := `SELECT s.date, COUNT(*) FROM sessions s WHERE 1=1` + cond + `
          GROUP BY s.date
          ORDER BY s.date ASC`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.DateCount, 0)
    for rows.Next() {
        var d model.DateCount
        if err := rows.Scan(dateCol{&d.Date}, &d.Count); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}
