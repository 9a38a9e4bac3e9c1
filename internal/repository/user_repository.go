package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/sports-session-scheduler/internal/model"
)

// UserRepo persists accounts in the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with an already hashed password and returns its
// ID.  The email is lower-cased and trimmed before insertion.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash, name, role string) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO users (email, password_hash, name, role) VALUES (?,?,?,?)",
        email, passwordHash, strings.TrimSpace(name), role)
    if err != nil {
        if isDuplicate(err) {
            return 0, ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

const userCols = "id,email,password_hash,name,role,created_at"

func scanUser(row *sql.Row) (model.User, error) {
    var u model.User
    err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt)
    return u, notFound(err)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    return scanUser(r.DB.QueryRowContext(ctx,
        "SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    return scanUser(r.DB.QueryRowContext(ctx,
        "SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
}
