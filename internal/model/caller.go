package model

// Caller is the authenticated identity performing an operation, as
// extracted from the access token by the JWT middleware.
type Caller struct {
    ID   uint64
    Role string
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }

// Owns reports whether the caller created the session.
func (c Caller) Owns(s *Session) bool { return s != nil && s.CreatedBy == c.ID }

// CanManage is the single capability check for creator-or-admin
// operations: deleting a session and joining one's own session.
func (c Caller) CanManage(s *Session) bool { return c.Owns(s) || c.IsAdmin() }
