package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/sports-session-scheduler/internal/model"
)

// SessionRepo provides persistence for sessions.  Mutations that must
// stay consistent with the membership table are exposed as *Tx methods
// and are composed by the capacity manager inside Store.WithTx.
//
// Date and time columns are compared against caller-supplied "now"
// strings (YYYY-MM-DD and HH:MM:SS in the application time zone) so the
// same SQL runs on MySQL and SQLite and follows the injected clock.
type SessionRepo struct {
    db *sql.DB
}

// NewSessionRepo returns a SessionRepo bound to db.
func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

// sessionSelect joins the sport and creator names onto every row.
const sessionSelect = `SELECT s.id, s.sport_id, sp.name, s.title, s.description, s.venue,
                              s.date, s.time, s.team_a, s.team_b,
                              s.max_participants, s.current_participants,
                              s.created_by, u.name, s.status, s.cancellation_reason, s.created_at
                       FROM sessions s
                       JOIN sports sp ON sp.id = s.sport_id
                       JOIN users u ON u.id = s.created_by`

// futureCond matches sessions whose (date, time) is strictly after the
// three bound parameters (date, date, time).
const futureCond = `(s.date > ? OR (s.date = ? AND s.time > ?))`

func scanSession(rs rowScanner) (*model.Session, error) {
    var (
        s      model.Session
        reason sql.NullString
    )
    err := rs.Scan(
        &s.ID, &s.SportID, &s.SportName, &s.Title, &s.Description, &s.Venue,
        dateCol{&s.Date}, timeCol{&s.Time}, &s.TeamA, &s.TeamB,
        &s.MaxParticipants, &s.CurrentParticipants,
        &s.CreatedBy, &s.CreatedByName, &s.Status, &reason, &s.CreatedAt,
    )
    if err != nil {
        return nil, err
    }
    if reason.Valid {
        r := reason.String
        s.CancellationReason = &r
    }
    s.Participants = []string{}
    return &s, nil
}

func (r *SessionRepo) list(ctx context.Context, q string, args ...interface{}) ([]*model.Session, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*model.Session, 0)
    for rows.Next() {
        s, err := scanSession(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

// CreateTx inserts an active session with zero participants and fills
// in the generated ID.
func (r *SessionRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.Session) error {
    const q = `INSERT INTO sessions (sport_id, title, description, venue, date, time, team_a, team_b,
                                     max_participants, current_participants, created_by, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`
    res, err := tx.ExecContext(ctx, q,
        s.SportID, s.Title, s.Description, s.Venue, s.Date, s.Time, s.TeamA, s.TeamB,
        s.MaxParticipants, s.CreatedBy, model.SessionActive)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    s.ID = uint64(id)
    return nil
}

// GetByID returns one session with sport and creator names, or
// ErrNotFound.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
    s, err := scanSession(r.db.QueryRowContext(ctx, sessionSelect+` WHERE s.id = ?`, id))
    return s, notFound(err)
}

// GetByIDTx is GetByID inside tx.
func (r *SessionRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Session, error) {
    s, err := scanSession(tx.QueryRowContext(ctx, sessionSelect+` WHERE s.id = ?`, id))
    return s, notFound(err)
}

// GetJoinableTx loads a session that is active and starts strictly after
// (nowDate, nowTime).  Anything else yields ErrNotFound.
func (r *SessionRepo) GetJoinableTx(ctx context.Context, tx *sql.Tx, id uint64, nowDate, nowTime string) (*model.Session, error) {
    q := sessionSelect + ` WHERE s.id = ? AND s.status = ? AND ` + futureCond
    s, err := scanSession(tx.QueryRowContext(ctx, q, id, model.SessionActive, nowDate, nowDate, nowTime))
    return s, notFound(err)
}

// IncrementIfRoomTx adds one participant when the session is active and
// below its cap.  It reports false, with no change, otherwise.
// Concurrent callers serialize on the row lock taken by this UPDATE.
func (r *SessionRepo) IncrementIfRoomTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
    res, err := tx.ExecContext(ctx,
        `UPDATE sessions SET current_participants = current_participants + 1
         WHERE id = ? AND status = ? AND current_participants < max_participants`,
        id, model.SessionActive)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    return n == 1, err
}

// DecrementTx removes one participant, never going below zero.
func (r *SessionRepo) DecrementTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE sessions SET current_participants = current_participants - 1
         WHERE id = ? AND current_participants > 0`, id)
    return err
}

// CancelByCreator marks the session cancelled with reason, provided it
// was created by creatorID.  It returns ErrNotFound when no such session
// exists for that creator.
func (r *SessionRepo) CancelByCreator(ctx context.Context, id, creatorID uint64, reason string) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE sessions SET status = ?, cancellation_reason = ? WHERE id = ? AND created_by = ?`,
        model.SessionCancelled, reason, id, creatorID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}

// DeleteTx removes the session row.  Membership rows must already be
// gone.
func (r *SessionRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err != nil {
        return err
    } else if n == 0 {
        return ErrNotFound
    }
    return nil
}

// ListAll returns every session ordered by date and time.
func (r *SessionRepo) ListAll(ctx context.Context) ([]*model.Session, error) {
    return r.list(ctx, sessionSelect+` ORDER BY s.date ASC, s.time ASC, s.id ASC`)
}

// ListByCreator returns the sessions created by userID.
func (r *SessionRepo) ListByCreator(ctx context.Context, userID uint64) ([]*model.Session, error) {
    return r.list(ctx, sessionSelect+` WHERE s.created_by = ? ORDER BY s.date ASC, s.time ASC, s.id ASC`, userID)
}

// ListJoinedBy returns the sessions userID holds a membership in.
func (r *SessionRepo) ListJoinedBy(ctx context.Context, userID uint64) ([]*model.Session, error) {
    return r.list(ctx, sessionSelect+`
        JOIN session_participants p ON p.session_id = s.id
        WHERE p.user_id = ?
        ORDER BY s.date ASC, s.time ASC, s.id ASC`, userID)
}

// ReconcileCounters rewrites current_participants for every session whose
// counter differs from its membership count and returns how many rows
// were repaired.
func (r *SessionRepo) ReconcileCounters(ctx context.Context) (int64, error) {
    const q = `UPDATE sessions
               SET current_participants = (
                   SELECT COUNT(*) FROM session_participants p WHERE p.session_id = sessions.id)
               WHERE current_participants <> (
                   SELECT COUNT(*) FROM session_participants p WHERE p.session_id = sessions.id)`
    res, err := r.db.ExecContext(ctx, q)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}
