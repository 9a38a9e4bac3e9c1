package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/sports-session-scheduler/internal/model"
	"github.com/iliyamo/sports-session-scheduler/internal/utils"
)

// Seed describes the starter data loaded by cmd/initdb and, when
// SEED_FILE is set, by the server on startup.
type Seed struct {
	Admin  *SeedUser   `yaml:"admin"`
	Sports []SeedSport `yaml:"sports"`
}

type SeedUser struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type SeedSport struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	MaxPlayers  int    `yaml:"max_players"`
}

// LoadSeed parses a YAML seed file.
func LoadSeed(path string) (Seed, error) {
	var s Seed
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read seed: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("parse seed: %w", err)
	}
	return s, nil
}

// Apply inserts the admin account if its email is unused and the sports
// only when the sports table is empty, so repeated runs change nothing.
func (s Seed) Apply(ctx context.Context, db *sql.DB, bcryptCost int) error {
	if s.Admin != nil && s.Admin.Email != "" {
		email := strings.ToLower(strings.TrimSpace(s.Admin.Email))
		var id uint64
		err := db.QueryRowContext(ctx, "SELECT id FROM users WHERE email=?", email).Scan(&id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			hash, err := utils.HashPassword(s.Admin.Password, bcryptCost)
			if err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
			if _, err := db.ExecContext(ctx,
				"INSERT INTO users (email, password_hash, name, role) VALUES (?,?,?,?)",
				email, hash, s.Admin.Name, model.RoleAdmin); err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
		case err != nil:
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sports").Scan(&n); err != nil {
		return fmt.Errorf("seed sports: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, sp := range s.Sports {
		if sp.MaxPlayers <= 0 {
			return fmt.Errorf("seed sport %q: max_players must be positive", sp.Name)
		}
		if _, err := db.ExecContext(ctx,
			"INSERT INTO sports (name, description, max_players) VALUES (?,?,?)",
			sp.Name, sp.Description, sp.MaxPlayers); err != nil {
			return fmt.Errorf("seed sport %q: %w", sp.Name, err)
		}
	}
	return nil
}
