// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow the service layer to
// distinguish between different failure scenarios without inspecting
// driver errors.
package repository

import "errors"

// ErrNotFound is returned when a lookup or conditional write matches no
// row.  Repositories translate sql.ErrNoRows into it.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique key, such
// as a second membership row for the same (session, user) pair.
var ErrDuplicate = errors.New("duplicate")

// ErrEmailExists is returned by UserRepo.Create for a taken email.
var ErrEmailExists = errors.New("email already exists")

// ErrSportExists is returned when a sport name is already in use.
var ErrSportExists = errors.New("sport name already exists")
