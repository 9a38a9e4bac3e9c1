package service

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/sports-session-scheduler/internal/model"
	"github.com/iliyamo/sports-session-scheduler/internal/repository"
)

// FlexUint decodes from a JSON number or a numeric JSON string.  Browser
// forms post <select> values as strings.
type FlexUint uint64

func (n *FlexUint) UnmarshalJSON(b []byte) error {
	raw, err := numericLiteral(b)
	if err != nil || raw == "" {
		return err
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("expected a non-negative integer, got %s", b)
	}
	*n = FlexUint(v)
	return nil
}

// FlexInt is the signed counterpart of FlexUint.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	raw, err := numericLiteral(b)
	if err != nil || raw == "" {
		return err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("expected an integer, got %s", b)
	}
	*n = FlexInt(v)
	return nil
}

// numericLiteral strips the quotes of a JSON string.  null and "" yield
// an empty literal, which leaves the target at zero.
func numericLiteral(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		return strings.TrimSpace(string(b[1 : len(b)-1])), nil
	}
	if len(b) == 0 {
		return "", errors.New("empty number")
	}
	return string(b), nil
}

// CreateSessionInput is the caller-supplied part of a new session.  The
// validate tags are enforced by the HTTP layer on the raw body and again
// by Create on the trimmed values.
type CreateSessionInput struct {
	SportID         FlexUint `json:"sport_id" validate:"required"`
	Title           string   `json:"title" validate:"required,max=200"`
	Description     string   `json:"description"`
	Venue           string   `json:"venue" validate:"required,max=200"`
	Date            string   `json:"date" validate:"required"`
	Time            string   `json:"time" validate:"required"`
	TeamA           string   `json:"team_a" validate:"required,max=100"`
	TeamB           string   `json:"team_b" validate:"required,max=100"`
	MaxParticipants FlexInt  `json:"max_participants" validate:"required,min=1"`
}

var inputValidator = validator.New(validator.WithRequiredStructEnabled())

func (in CreateSessionInput) trimmed() CreateSessionInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Venue = strings.TrimSpace(in.Venue)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.TeamA = strings.TrimSpace(in.TeamA)
	in.TeamB = strings.TrimSpace(in.TeamB)
	return in
}

// check maps the first failed validate tag onto the error taxonomy.
func (in CreateSessionInput) check() error {
	err := inputValidator.Struct(in)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return invalidf("invalid session input")
	}
	switch fe := ve[0]; fe.Tag() {
	case "required":
		return ErrMissingFields
	case "min":
		return invalidf("max_participants must be positive")
	default:
		return invalidf(strings.ToLower(fe.Field()) + " is too long")
	}
}

func (in CreateSessionInput) toSession(creator uint64) (*model.Session, error) {
	in = in.trimmed()
	if err := in.check(); err != nil {
		return nil, err
	}
	if _, err := time.Parse(model.DateLayout, in.Date); err != nil {
		return nil, invalidf("date must be YYYY-MM-DD")
	}
	tm, err := repository.NormalizeTime(in.Time)
	if err != nil {
		return nil, invalidf("time must be HH:MM or HH:MM:SS")
	}
	return &model.Session{
		SportID:         uint64(in.SportID),
		Title:           in.Title,
		Description:     in.Description,
		Venue:           in.Venue,
		Date:            in.Date,
		Time:            tm,
		TeamA:           in.TeamA,
		TeamB:           in.TeamB,
		MaxParticipants: int(in.MaxParticipants),
		CreatedBy:       creator,
		Status:          model.SessionActive,
	}, nil
}
