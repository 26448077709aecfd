package models

import (
	"encoding/json"
	"time"
)

// epoch is the instant that missing or unrecognized boundary values
// resolve to.
var epoch = time.Unix(0, 0).UTC()

type timestampKind int

const (
	timestampAbsent timestampKind = iota
	timestampInstant
	timestampSeconds
	timestampISO
)

// Timestamp is a creation instant as observed at the store boundary.
// Depending on backend and record age the store hands back a native time
// value, a {seconds: n} object, or an ISO-8601 string; records whose
// server timestamp has not been assigned yet carry no value at all.
// The raw encoding is kept and resolved in exactly one place, Resolve,
// so no caller ever inspects it ad hoc.
type Timestamp struct {
	kind    timestampKind
	instant time.Time
	seconds int64
	iso     string
}

// AbsentTimestamp returns the timestamp of a record the server has not
// stamped yet.
func AbsentTimestamp() Timestamp {
	return Timestamp{kind: timestampAbsent}
}

// InstantTimestamp wraps a native time value.
func InstantTimestamp(t time.Time) Timestamp {
	return Timestamp{kind: timestampInstant, instant: t}
}

// SecondsTimestamp wraps a raw seconds-since-epoch count.
func SecondsTimestamp(s int64) Timestamp {
	return Timestamp{kind: timestampSeconds, seconds: s}
}

// ISOTimestamp wraps an ISO-8601 string.
func ISOTimestamp(s string) Timestamp {
	return Timestamp{kind: timestampISO, iso: s}
}

// TimestampFromValue classifies a raw boundary value into the matching
// encoding. Anything it does not recognize becomes Absent and therefore
// resolves to epoch zero.
func TimestampFromValue(v interface{}) Timestamp {
	switch val := v.(type) {
	case nil:
		return AbsentTimestamp()
	case Timestamp:
		return val
	case time.Time:
		return InstantTimestamp(val)
	case *time.Time:
		if val == nil {
			return AbsentTimestamp()
		}
		return InstantTimestamp(*val)
	case string:
		if val == "" {
			return AbsentTimestamp()
		}
		return ISOTimestamp(val)
	case map[string]interface{}:
		if secs, ok := numericValue(val["seconds"]); ok {
			return SecondsTimestamp(secs)
		}
		return AbsentTimestamp()
	default:
		if secs, ok := numericValue(v); ok {
			return SecondsTimestamp(secs)
		}
		return AbsentTimestamp()
	}
}

func numericValue(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// IsAbsent reports whether the server has assigned a timestamp yet.
func (t Timestamp) IsAbsent() bool {
	return t.kind == timestampAbsent
}

// Resolve normalizes the timestamp to a concrete instant. Absent values
// and unparseable ISO strings resolve to epoch zero so that sorting
// remains total.
func (t Timestamp) Resolve() time.Time {
	switch t.kind {
	case timestampInstant:
		return t.instant
	case timestampSeconds:
		return time.Unix(t.seconds, 0).UTC()
	case timestampISO:
		parsed, err := time.Parse(time.RFC3339, t.iso)
		if err != nil {
			return epoch
		}
		return parsed
	default:
		return epoch
	}
}

// MarshalJSON emits the resolved instant, or null when absent.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsAbsent() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Resolve())
}

// UnmarshalJSON accepts any of the boundary encodings.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = TimestampFromValue(raw)
	return nil
}

// FormatCreatedAt renders a creation instant for display: a time of day
// while the record is younger than 24 hours, a calendar date afterwards,
// and an empty string when the server has not stamped the record yet.
func FormatCreatedAt(t Timestamp, now time.Time) string {
	if t.IsAbsent() {
		return ""
	}
	resolved := t.Resolve()
	if now.Sub(resolved) < 24*time.Hour {
		return resolved.Format("15:04")
	}
	return resolved.Format("2006-01-02")
}
