package repository

import (
    "fmt"
    "strings"
    "time"

    "github.com/iliyamo/sports-session-scheduler/internal/model"
)

// dateCol scans a DATE column into a YYYY-MM-DD string.  MySQL (with
// parseTime) and SQLite both hand back time.Time for DATE columns, but
// expressions and text affinity can surface as []byte or string.
type dateCol struct{ dst *string }

func (d dateCol) Scan(v interface{}) error {
    switch x := v.(type) {
    case nil:
        *d.dst = ""
    case time.Time:
        *d.dst = x.Format(model.DateLayout)
    case []byte:
        return d.Scan(string(x))
    case string:
        s := strings.TrimSpace(x)
        if len(s) >= len(model.DateLayout) {
            s = s[:len(model.DateLayout)]
        }
        if _, err := time.Parse(model.DateLayout, s); err != nil {
            return fmt.Errorf("scan date %q: %w", x, err)
        }
        *d.dst = s
    default:
        return fmt.Errorf("scan date: unsupported type %T", v)
    }
    return nil
}

// timeCol scans a TIME column into an HH:MM:SS string.
type timeCol struct{ dst *string }

func (t timeCol) Scan(v interface{}) error {
    switch x := v.(type) {
    case nil:
        *t.dst = ""
    case time.Time:
        *t.dst = x.Format(model.TimeLayout)
    case []byte:
        return t.Scan(string(x))
    case string:
        s, err := NormalizeTime(x)
        if err != nil {
            return fmt.Errorf("scan time %q: %w", x, err)
        }
        *t.dst = s
    default:
        return fmt.Errorf("scan time: unsupported type %T", v)
    }
    return nil
}

// NormalizeTime accepts HH:MM or HH:MM:SS and returns HH:MM:SS.
func NormalizeTime(s string) (string, error) {
    s = strings.TrimSpace(s)
    for _, layout := range []string{model.TimeLayout, "15:04"} {
        if t, err := time.Parse(layout, s); err == nil {
            return t.Format(model.TimeLayout), nil
        }
    }
    return "", fmt.Errorf("invalid time %q", s)
}
