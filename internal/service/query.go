package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/sports-session-scheduler/internal/model"
	"github.com/iliyamo/sports-session-scheduler/internal/repository"
)

// QueryService answers the read-only session listings and reports.
type QueryService struct {
	sessions     *repository.SessionRepo
	participants *repository.ParticipantRepo
	reports      *repository.ReportRepo
	opts         Options
}

// NewQueryService wires the query service to db.
func NewQueryService(db *sql.DB, opts Options) *QueryService {
	return &QueryService{
		sessions:     repository.NewSessionRepo(db),
		participants: repository.NewParticipantRepo(db),
		reports:      repository.NewReportRepo(db),
		opts:         opts.withDefaults(),
	}
}

// ListSessions returns every session ordered by date and time with the
// names of its participants attached.
func (q *QueryService) ListSessions(ctx context.Context) ([]*model.Session, error) {
	list, err := q.sessions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	ids := make([]uint64, len(list))
	for i, s := range list {
		ids[i] = s.ID
	}
	names, err := q.participants.NamesBySessions(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load participant names: %w", err)
	}
	for _, s := range list {
		if n := names[s.ID]; n != nil {
			s.Participants = n
		} else {
			s.Participants = []string{}
		}
	}
	return list, nil
}

// ListCreatedBy returns the sessions userID created.
func (q *QueryService) ListCreatedBy(ctx context.Context, userID uint64) ([]*model.Session, error) {
	list, err := q.sessions.ListByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list created sessions: %w", err)
	}
	return list, nil
}

// ListJoinedBy returns the sessions userID joined.
func (q *QueryService) ListJoinedBy(ctx context.Context, userID uint64) ([]*model.Session, error) {
	list, err := q.sessions.ListJoinedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list joined sessions: %w", err)
	}
	return list, nil
}

// ListParticipants returns the members of a session ordered by name.
func (q *QueryService) ListParticipants(ctx context.Context, sessionID uint64) ([]model.Participant, error) {
	list, err := q.participants.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return list, nil
}

// Stats summarizes sessions in rng relative to the current time.
func (q *QueryService) Stats(ctx context.Context, rng model.DateRange) (model.Stats, error) {
	nowDate, nowTime := q.opts.now()
	st, err := q.reports.Stats(ctx, rng, nowDate, nowTime)
	if err != nil {
		return st, fmt.Errorf("stats: %w", err)
	}
	return st, nil
}

// SportPopularity counts sessions per sport in rng.
func (q *QueryService) SportPopularity(ctx context.Context, rng model.DateRange) ([]model.SportPopularity, error) {
	out, err := q.reports.SportPopularity(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("sport popularity: %w", err)
	}
	return out, nil
}

// SessionsByDate counts sessions per date in rng.
func (q *QueryService) SessionsByDate(ctx context.Context, rng model.DateRange) ([]model.DateCount, error) {
	out, err := q.reports.SessionsByDate(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("sessions by date: %w", err)
	}
	return out, nil
}

// ParseDateRange validates the optional start_date and end_date query
// values.  Each bound is applied on its own when present.
func ParseDateRange(start, end string) (model.DateRange, error) {
	rng := model.DateRange{From: strings.TrimSpace(start), To: strings.TrimSpace(end)}
	if rng.From != "" {
		if _, err := time.Parse(model.DateLayout, rng.From); err != nil {
			return rng, invalidf("start_date must be YYYY-MM-DD")
		}
	}
	if rng.To != "" {
		if _, err := time.Parse(model.DateLayout, rng.To); err != nil {
			return rng, invalidf("end_date must be YYYY-MM-DD")
		}
	}
	return rng, nil
}
