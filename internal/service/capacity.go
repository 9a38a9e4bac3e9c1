// Package service holds the session capacity manager, the read-side
// query service and the counter reconciler.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/iliyamo/sports-session-scheduler/internal/model"
	"github.com/iliyamo/sports-session-scheduler/internal/queue"
	"github.com/iliyamo/sports-session-scheduler/internal/repository"
)

// Options carries the collaborators shared by the services.  Zero values
// fall back to a real clock, UTC, a no-op publisher and a disabled
// logger.
type Options struct {
	Clock    clockwork.Clock
	Location *time.Location
	Events   EventPublisher
	Metrics  *Metrics
	Log      zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Events == nil {
		o.Events = NopPublisher{}
	}
	return o
}

// now returns the current wall-clock date and time in the application
// time zone, formatted for comparison with the date and time columns.
func (o Options) now() (date, clock string) {
	t := o.Clock.Now().In(o.Location)
	return t.Format(model.DateLayout), t.Format(model.TimeLayout)
}

// CapacityManager performs the session mutations that must keep
// current_participants equal to the number of membership rows: create,
// join, leave, cancel and delete.  Each mutation runs in a single
// transaction; events are published only after commit.
type CapacityManager struct {
	store        *repository.Store
	sessions     *repository.SessionRepo
	participants *repository.ParticipantRepo
	sports       *repository.SportRepo
	opts         Options
}

// NewCapacityManager wires the manager to db.
func NewCapacityManager(db *sql.DB, opts Options) *CapacityManager {
	return &CapacityManager{
		store:        repository.NewStore(db),
		sessions:     repository.NewSessionRepo(db),
		participants: repository.NewParticipantRepo(db),
		sports:       repository.NewSportRepo(db),
		opts:         opts.withDefaults(),
	}
}

// Create validates in and inserts an active session owned by caller.
func (m *CapacityManager) Create(ctx context.Context, in CreateSessionInput, caller model.Caller) (s *model.Session, err error) {
	defer func() { m.opts.Metrics.observe("create", err) }()

	s, err = in.toSession(caller.ID)
	if err != nil {
		return nil, err
	}
	err = m.store.WithTx(ctx, func(tx *sql.Tx) error {
		ok, err := m.sports.ExistsTx(ctx, tx, s.SportID)
		if err != nil {
			return fmt.Errorf("lookup sport: %w", err)
		}
		if !ok {
			return ErrUnknownSport
		}
		if err := m.sessions.CreateTx(ctx, tx, s); err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	created, err := m.sessions.GetByID(ctx, s.ID)
	if err != nil {
		return nil, fmt.Errorf("reload session: %w", err)
	}
	m.publish(ctx, queue.EventSessionCreated, created, caller, "", 0)
	return created, nil
}

// Join adds caller to the session.  The checks run in order: the session
// must be active and in the future, the creator may not join unless an
// admin, the session must have room, and the caller must not already be
// a member.  Room is re-checked by the conditional increment, which is
// where concurrent joins serialize.
func (m *CapacityManager) Join(ctx context.Context, sessionID uint64, caller model.Caller) (err error) {
	defer func() { m.opts.Metrics.observe("join", err) }()

	var joined *model.Session
	nowDate, nowTime := m.opts.now()
	err = m.store.WithTx(ctx, func(tx *sql.Tx) error {
		s, err := m.sessions.GetJoinableTx(ctx, tx, sessionID, nowDate, nowTime)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotJoinable
		}
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		if caller.Owns(s) && !caller.IsAdmin() {
			return ErrSelfJoin
		}
		if s.IsFull() {
			return ErrSessionFull
		}
		member, err := m.participants.ExistsTx(ctx, tx, sessionID, caller.ID)
		if err != nil {
			return fmt.Errorf("check membership: %w", err)
		}
		if member {
			return ErrAlreadyJoined
		}
		ok, err := m.sessions.IncrementIfRoomTx(ctx, tx, sessionID)
		if err != nil {
			return fmt.Errorf("increment participants: %w", err)
		}
		if !ok {
			return ErrSessionFull
		}
		if err := m.participants.InsertTx(ctx, tx, sessionID, caller.ID); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrAlreadyJoined
			}
			return fmt.Errorf("insert membership: %w", err)
		}
		s.CurrentParticipants++
		joined = s
		return nil
	})
	if err != nil {
		return err
	}
	m.publish(ctx, queue.EventSessionJoined, joined, caller, "", joined.CurrentParticipants)
	return nil
}

// Leave removes caller's membership.  The counter is decremented only
// when a row was actually removed, so leaving a session one never
// joined is a no-op.  left reports whether a membership existed.
func (m *CapacityManager) Leave(ctx context.Context, sessionID uint64, caller model.Caller) (left bool, err error) {
	defer func() { m.opts.Metrics.observe("leave", err) }()

	var s *model.Session
	err = m.store.WithTx(ctx, func(tx *sql.Tx) error {
		n, err := m.participants.DeleteTx(ctx, tx, sessionID, caller.ID)
		if err != nil {
			return fmt.Errorf("delete membership: %w", err)
		}
		if n != 1 {
			return nil
		}
		if err := m.sessions.DecrementTx(ctx, tx, sessionID); err != nil {
			return fmt.Errorf("decrement participants: %w", err)
		}
		left = true
		s, err = m.sessions.GetByIDTx(ctx, tx, sessionID)
		if err != nil {
			return fmt.Errorf("reload session: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if left {
		m.publish(ctx, queue.EventSessionLeft, s, caller, "", s.CurrentParticipants)
	}
	return left, nil
}

// Cancel marks a session cancelled.  Only the creator may cancel; any
// other caller sees the same not-found outcome as a missing session.
// Memberships and the counter are left untouched.
func (m *CapacityManager) Cancel(ctx context.Context, sessionID uint64, caller model.Caller, reason string) (s *model.Session, err error) {
	defer func() { m.opts.Metrics.observe("cancel", err) }()

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrCancelReason
	}
	if err := m.sessions.CancelByCreator(ctx, sessionID, caller.ID, reason); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCancelNotFound
		}
		return nil, fmt.Errorf("cancel session: %w", err)
	}
	s, err = m.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("reload session: %w", err)
	}
	m.publish(ctx, queue.EventSessionCancelled, s, caller, reason, s.CurrentParticipants)
	return s, nil
}

// Delete removes a session and all of its memberships.  The creator or
// an admin may delete.  The reason is required but only travels on the
// published event.
func (m *CapacityManager) Delete(ctx context.Context, sessionID uint64, caller model.Caller, reason string) (err error) {
	defer func() { m.opts.Metrics.observe("delete", err) }()

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrDeleteReason
	}
	var (
		s        *model.Session
		expelled int64
	)
	err = m.store.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		s, err = m.sessions.GetByIDTx(ctx, tx, sessionID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		if !caller.CanManage(s) {
			return ErrDeleteNotAuthorized
		}
		if expelled, err = m.participants.DeleteAllTx(ctx, tx, sessionID); err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := m.sessions.DeleteTx(ctx, tx, sessionID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	m.opts.Log.Info().
		Uint64("session_id", sessionID).
		Uint64("actor_id", caller.ID).
		Int64("expelled", expelled).
		Str("reason", reason).
		Msg("session deleted")
	m.publish(ctx, queue.EventSessionDeleted, s, caller, reason, int(expelled))
	return nil
}

// publish emits an event outside of any transaction.  Failures are
// logged and swallowed.
func (m *CapacityManager) publish(ctx context.Context, typ string, s *model.Session, caller model.Caller, reason string, participants int) {
	ev := queue.SessionEvent{
		EventID:      uuid.NewString(),
		Type:         typ,
		SessionID:    s.ID,
		SessionTitle: s.Title,
		ActorID:      caller.ID,
		ActorRole:    caller.Role,
		Reason:       reason,
		Participants: participants,
		OccurredAt:   m.opts.Clock.Now().UTC(),
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := m.opts.Events.Publish(pctx, ev); err != nil {
		m.opts.Log.Warn().Err(err).Str("type", typ).Uint64("session_id", s.ID).Msg("publish session event failed")
	}
}
