package repository

import (
    "database/sql"
    "errors"

    "github.com/go-sql-driver/mysql"
    "github.com/mattn/go-sqlite3"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// isDuplicate reports whether err is a unique-key violation on either
// supported driver.
func isDuplicate(err error) bool {
    var me *mysql.MySQLError
    if errors.As(err, &me) {
        return me.Number == mysqlDuplicateEntry
    }
    var se sqlite3.Error
    if errors.As(err, &se) {
        return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
            se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
    }
    return false
}

// notFound maps sql.ErrNoRows to ErrNotFound and passes other errors
// through.
func notFound(err error) error {
    if errors.Is(err, sql.ErrNoRows) {
        return ErrNotFound
    }
    return err
}
