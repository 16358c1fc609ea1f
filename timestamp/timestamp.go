// Package timestamp provides a wall-clock timestamp with second granularity and
// the canonical "yyyy-MM-dd HH:mm:ss" text format used in the transaction log.
package timestamp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the format used to represent timestamps as strings.
const Layout = "2006-01-02 15:04:05"

// Timestamp represents a local wall-clock instant truncated to the second.
type Timestamp struct {
	y, mo, d int
	h, mi, s int
}

// time returns a time.Time that is a canonical representation of that instant (UTC based, no zone).
func (t Timestamp) time() time.Time {
	return time.Date(t.y, time.Month(t.mo), t.d, t.h, t.mi, t.s, 0, time.UTC)
}

// New returns a normalized Timestamp.
func New(year int, month time.Month, day, hour, min, sec int) Timestamp {
	return From(time.Date(year, month, day, hour, min, sec, 0, time.UTC))
}

// From truncates a time.Time to a Timestamp, keeping its wall clock.
func From(t time.Time) Timestamp {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return Timestamp{y, int(mo), d, h, mi, s}
}

// Clock returns the current time. Tests replace it to get stable transaction logs.
type Clock func() time.Time

// Now returns the current local timestamp.
func Now() Timestamp { return From(time.Now()) }

// Now reads the clock, falling back to the system clock if c is nil.
func (c Clock) Now() Timestamp {
	if c == nil {
		return Now()
	}
	return From(c())
}

// Fixed returns a clock that always reads t.
func Fixed(t Timestamp) Clock { return func() time.Time { return t.time() } }

// IsZero reports whether t is the zero Timestamp.
func (t Timestamp) IsZero() bool { return t == Timestamp{} }

// Before reports whether t is before x.
func (t Timestamp) Before(x Timestamp) bool { return t.time().Before(x.time()) }

// After reports whether t is after x.
func (t Timestamp) After(x Timestamp) bool { return t.time().After(x.time()) }

// Add returns t shifted by d, truncated to the second.
func (t Timestamp) Add(d time.Duration) Timestamp { return From(t.time().Add(d)) }

// String formats the timestamp in its canonical format.
func (t Timestamp) String() string { return t.time().Format(Layout) }

// Parse parses a Timestamp in the canonical format.
func Parse(str string) (Timestamp, error) {
	on, err := time.Parse(Layout, str)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q want format %q: %w", str, Layout, err)
	}
	return From(on), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Timestamp {
	t, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// UnmarshalJSON implements the json specific way to unmarshall a timestamp from a json string.
func (t *Timestamp) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	str := t.String()
	return json.Marshal(&str)
}

// check that a Timestamp pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Timestamp)(nil)
var _ json.Unmarshaler = (*Timestamp)(nil)
