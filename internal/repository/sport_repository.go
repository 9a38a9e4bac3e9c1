package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/sports-session-scheduler/internal/model"
)

// SportRepo manages the sports catalogue.
type SportRepo struct {
    db *sql.DB
}

// NewSportRepo returns a SportRepo bound to db.
func NewSportRepo(db *sql.DB) *SportRepo { return &SportRepo{db: db} }

const sportCols = "id, name, description, max_players, created_by, created_at"

type rowScanner interface {
    Scan(dest ...interface{}) error
}

func scanSport(rs rowScanner) (model.Sport, error) {
    var (
        sp        model.Sport
        createdBy sql.NullInt64
    )
    if err := rs.Scan(&sp.ID, &sp.Name, &sp.Description, &sp.MaxPlayers, &createdBy, &sp.CreatedAt); err != nil {
        return sp, err
    }
    if createdBy.Valid {
        id := uint64(createdBy.Int64)
        sp.CreatedBy = &id
    }
    return sp, nil
}

// List returns sports newest first.  When createdBy is non-nil only the
// sports created by that user are returned.
func (r *SportRepo) List(ctx context.Context, createdBy *uint64) ([]model.Sport, error) {
    q := "SELECT " + sportCols + " FROM sports"
    var args []interface{}
    if createdBy != nil {
        q += " WHERE created_by = ?"
        args = append(args, *createdBy)
    }
    q += " ORDER BY created_at DESC, id DESC"
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Sport, 0)
    for rows.Next() {
        sp, err := scanSport(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, sp)
    }
    return out, rows.Err()
}

// GetByID returns one sport or ErrNotFound.
func (r *SportRepo) GetByID(ctx context.Context, id uint64) (model.Sport, error) {
    sp, err := scanSport(r.db.QueryRowContext(ctx, "SELECT "+sportCols+" FROM sports WHERE id = ?", id))
    return sp, notFound(err)
}

// ExistsTx reports whether a sport with id exists, inside tx.
func (r *SportRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
    var one int
    err := tx.QueryRowContext(ctx, "SELECT 1 FROM sports WHERE id = ?", id).Scan(&one)
    if err == sql.ErrNoRows {
        return false, nil
    }
    return err == nil, err
}

// Create inserts sp and fills in its ID and CreatedAt.
func (r *SportRepo) Create(ctx context.Context, sp *model.Sport) error {
    res, err := r.db.ExecContext(ctx,
        "INSERT INTO sports (name, description, max_players, created_by) VALUES (?, ?, ?, ?)",
        strings.TrimSpace(sp.Name), sp.Description, sp.MaxPlayers, sp.CreatedBy)
    if err != nil {
        if isDuplicate(err) {
            return ErrSportExists
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    created, err := r.GetByID(ctx, uint64(id))
    if err != nil {
        return err
    }
    *sp = created
    return nil
}

// Update overwrites name, description and max_players of sp.ID.
func (r *SportRepo) Update(ctx context.Context, sp *model.Sport) error {
    res, err := r.db.ExecContext(ctx,
        "UPDATE sports SET name = ?, description = ?, max_players = ? WHERE id = ?",
        strings.TrimSpace(sp.Name), sp.Description, sp.MaxPlayers, sp.ID)
    if err != nil {
        if isDuplicate(err) {
            return ErrSportExists
        }
        return err
    }
    if n, err := res.RowsAffected(); err != nil {
        return err
    } else if n == 0 {
        return ErrNotFound
    }
    updated, err := r.GetByID(ctx, sp.ID)
    if err != nil {
        return err
    }
    *sp = updated
    return nil
}
