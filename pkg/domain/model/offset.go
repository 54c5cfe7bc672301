package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

const (
	minOffsetHours = -12
	maxOffsetHours = 14
)

// Offset is a UTC offset in seconds east of UTC
type Offset struct {
	seconds int
}

// UTC is the zero offset
var UTC = Offset{}

// NewOffset creates an Offset from a number of seconds east of UTC
func NewOffset(seconds int) Offset {
	return Offset{seconds: seconds}
}

// OffsetOf returns the offset of t in its own location
func OffsetOf(t time.Time) Offset {
	_, sec := t.Zone()
	return Offset{seconds: sec}
}

// NewOffsetFromPair creates an Offset from hours and minutes. Hours must be
// in [-12, 14] and minutes in [0, 59]. Minutes take the sign of hours.
func NewOffsetFromPair(hours, minutes int) (Offset, error) {
	if hours < minOffsetHours || hours > maxOffsetHours {
		return UTC, goerr.Wrap(ErrInvalidOffsetHours, "offset hours out of range", goerr.V("hours", hours))
	}
	if minutes < 0 || minutes > 59 {
		return UTC, goerr.Wrap(ErrInvalidOffsetMinutes, "offset minutes out of range", goerr.V("minutes", minutes))
	}

	sec := hours*3600 + minutes*60
	if hours < 0 {
		sec = hours*3600 - minutes*60
	}
	return Offset{seconds: sec}, nil
}

// ParseOffset parses [sign]HH[:]MM such as +0900, -09:30 or 1000.
// Surrounding whitespace and newlines are ignored.
func ParseOffset(input string) (Offset, error) {
	s := strings.TrimSpace(input)
	invalid := func() (Offset, error) {
		return UTC, goerr.Wrap(ErrInvalidOffsetString, "unable to parse offset string", goerr.V("input", input))
	}

	sign := 1
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		sign = -1
		s = s[1:]
	}

	if len(s) == 5 && s[2] == ':' {
		s = s[:2] + s[3:]
	}
	if len(s) != 4 {
		return invalid()
	}

	hh, ok := parseTwoDigits(s[:2])
	if !ok || hh > 23 {
		return invalid()
	}
	mm, ok := parseTwoDigits(s[2:])
	if !ok || mm > 59 {
		return invalid()
	}

	return Offset{seconds: sign * (hh*3600 + mm*60)}, nil
}

func parseTwoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	return v, err == nil
}

// Seconds returns the offset in seconds east of UTC
func (o Offset) Seconds() int {
	return o.seconds
}

// WholeMinutes returns the offset truncated to minutes
func (o Offset) WholeMinutes() int {
	return o.seconds / 60
}

// IsUTC reports whether the offset is zero
func (o Offset) IsUTC() bool {
	return o.seconds == 0
}

// String renders the offset as ±HH:MM with a mandatory sign
func (o Offset) String() string {
	sign := '+'
	sec := o.seconds
	if sec < 0 {
		sign = '-'
		sec = -sec
	}
	return fmt.Sprintf("%c%02d:%02d", sign, sec/3600, (sec%3600)/60)
}

// Location returns a fixed zone for the offset
func (o Offset) Location() *time.Location {
	if o.IsUTC() {
		return time.UTC
	}
	return time.FixedZone(o.String(), o.seconds)
}

// MarshalText implements encoding.TextMarshaler
func (o Offset) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (o *Offset) UnmarshalText(b []byte) error {
	parsed, err := ParseOffset(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
