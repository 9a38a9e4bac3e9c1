package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/sports-session-scheduler/internal/model"
)

// ParticipantRepo manages session_participants, the membership table.
// The (session_id, user_id) pair is unique, so a racing duplicate join
// surfaces as ErrDuplicate from InsertTx.
type ParticipantRepo struct {
    db *sql.DB
}

// NewParticipantRepo returns a ParticipantRepo bound to db.
func NewParticipantRepo(db *sql.DB) *ParticipantRepo { return &ParticipantRepo{db: db} }

// ExistsTx reports whether userID is a member of sessionID.
func (r *ParticipantRepo) ExistsTx(ctx context.Context, tx *sql.Tx, sessionID, userID uint64) (bool, error) {
    var one int
    err := tx.QueryRowContext(ctx,
        `SELECT 1 FROM session_participants WHERE session_id = ? AND user_id = ?`,
        sessionID, userID).Scan(&one)
    if err == sql.ErrNoRows {
        return false, nil
    }
    return err == nil, err
}

// InsertTx adds a membership row.
func (r *ParticipantRepo) InsertTx(ctx context.Context, tx *sql.Tx, sessionID, userID uint64) error {
    _, err := tx.ExecContext(ctx,
        `INSERT INTO session_participants (session_id, user_id) VALUES (?, ?)`,
        sessionID, userID)
    if err != nil && isDuplicate(err) {
        return ErrDuplicate
    }
    return err
}

// DeleteTx removes userID's membership and returns the number of rows
// removed (0 or 1).
func (r *ParticipantRepo) DeleteTx(ctx context.Context, tx *sql.Tx, sessionID, userID uint64) (int64, error) {
    res, err := tx.ExecContext(ctx,
        `DELETE FROM session_participants WHERE session_id = ? AND user_id = ?`,
        sessionID, userID)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// DeleteAllTx removes every membership of sessionID and returns how many
// were removed.
func (r *ParticipantRepo) DeleteAllTx(ctx context.Context, tx *sql.Tx, sessionID uint64) (int64, error) {
    res, err := tx.ExecContext(ctx, `DELETE FROM session_participants WHERE session_id = ?`, sessionID)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// Count returns the number of membership rows for sessionID.
func (r *ParticipantRepo) Count(ctx context.Context, sessionID uint64) (int, error) {
    var n int
    err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM session_participants WHERE session_id = ?`, sessionID).Scan(&n)
    return n, err
}

// ListBySession returns the members of sessionID ordered by name.  An
// unknown session yields an empty slice.
func (r *ParticipantRepo) ListBySession(ctx context.Context, sessionID uint64) ([]model.Participant, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT u.id, u.name, u.email
         FROM session_participants p
         JOIN users u ON u.id = p.user_id
         WHERE p.session_id = ?
         ORDER BY u.name ASC, u.id ASC`, sessionID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Participant, 0)
    for rows.Next() {
        var p model.Participant
        if err := rows.Scan(&p.ID, &p.Name, &p.Email); err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    return out, rows.Err()
}

// NamesBySessions loads participant names for many sessions in a single
// query.  Names within a session are ordered ascending.
func (r *ParticipantRepo) NamesBySessions(ctx context.Context, sessionIDs []uint64) (map[uint64][]string, error) {
    out := make(map[uint64][]string, len(sessionIDs))
    if len(sessionIDs) == 0 {
        return out, nil
    }
    placeholders := strings.TrimSuffix(strings.Repeat("?,", len(sessionIDs)), ",")
    args := make([]interface{}, len(sessionIDs))
    for i, id := range sessionIDs {
        args[i] = id
    }
    q := `SELECT p.session_id, u.name
          FROM session_participants p
          JOIN users u ON u.id = p.user_id
          WHERE p.session_id IN (` + placeholders + `)
          ORDER BY p.session_id, u.name ASC, u.id ASC`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var (
            sid  uint64
            name string
        )
        if err := rows.Scan(&sid, &name); err != nil {
            return nil, err
        }
        out[sid] = append(out[sid], name)
    }
    return out, rows.Err()
}
