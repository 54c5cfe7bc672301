// Package stamp produces local timestamps such as 2024-03-01T09:15:00+09:00
// using a process-wide UTC offset.
//
// The offset is either set explicitly with one of the TrySetGlobalOffset
// functions or detected on first use. The package level functions detect
// from the local zone; a Store can be given any detector. Detection falls
// back to UTC, and failures along the way are returned as Warnings instead
// of errors.
package stamp

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/localstamp/pkg/domain/model"
)

// Layout is the format of every timestamp produced by this package
const Layout = "2006-01-02T15:04:05-07:00"

var defaultStore = NewStore(WithDetector(localZone{}))

// localZone reports the offset of time.Local. Callers that also want the
// system time command wire a chain from infra/source with WithDetector.
type localZone struct{}

func (localZone) Name() string { return "local" }

func (localZone) Offset(ctx context.Context) (model.Offset, error) {
	if time.Local == nil {
		return model.UTC, goerr.New("local zone is not available")
	}
	return model.OffsetOf(time.Now().In(time.Local)), nil
}

// Default returns the Store backing the package level functions
func Default() *Store {
	return defaultStore
}

// GlobalOffset returns the global offset or model.ErrUninitialized
func GlobalOffset() (model.Offset, error) {
	return defaultStore.GlobalOffset()
}

// TrySetGlobalOffset sets the global offset without waiting for the lock
func TrySetGlobalOffset(o model.Offset) error {
	return defaultStore.TrySetGlobalOffset(o)
}

// TrySetGlobalOffsetFromString sets the global offset from input such as
// +0900, -0930, 1000, +09:00, -09:30 or 10:00
func TrySetGlobalOffsetFromString(input string) error {
	return defaultStore.TrySetGlobalOffsetFromString(input)
}

// TrySetGlobalOffsetFromPair sets the global offset from hours in [-12, 14]
// and minutes in [0, 59]
func TrySetGlobalOffsetFromPair(hours, minutes int) error {
	return defaultStore.TrySetGlobalOffsetFromPair(hours, minutes)
}

// UTCOffset resolves and caches the global offset
func UTCOffset(ctx context.Context) (model.Offset, Warnings) {
	return defaultStore.UTCOffset(ctx)
}

// LocalTimestamp returns the current time in the global offset
func LocalTimestamp(ctx context.Context) (string, Warnings, error) {
	return defaultStore.LocalTimestamp(ctx)
}

// TimestampFromOffset returns the current time in the given offset
func TimestampFromOffset(o model.Offset) (string, error) {
	return defaultStore.TimestampFromOffset(o)
}

// Format renders t in offset o. Years outside 0000-9999 cannot be
// represented and return model.ErrDatetimeOverflow.
func Format(t time.Time, o model.Offset) (string, error) {
	local := t.In(o.Location())
	if y := local.Year(); y < 0 || y > 9999 {
		return "", goerr.Wrap(model.ErrDatetimeOverflow, "timestamp out of range",
			goerr.V("year", y),
			goerr.V("offset", o.String()),
		)
	}
	return local.Format(Layout), nil
}
