package stamp

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/localstamp/pkg/domain/interfaces"
	"github.com/m-mizutani/localstamp/pkg/domain/model"
)

// Store holds a UTC offset shared by every timestamp it produces
type Store struct {
	mu          sync.RWMutex
	offset      model.Offset
	initialized bool

	detector interfaces.OffsetSource
	now      func() time.Time
}

// Option is a functional option for Store configuration
type Option func(*Store)

// WithDetector sets the source used when no offset has been stored yet
func WithDetector(src interfaces.OffsetSource) Option {
	return func(s *Store) {
		s.detector = src
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty Store. Without WithDetector, UTCOffset falls
// back to UTC with a model.ErrNoSource warning until an offset is set.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GlobalOffset returns the stored offset or model.ErrUninitialized. It
// waits for the read lock.
func (s *Store) GlobalOffset() (model.Offset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return model.UTC, goerr.Wrap(model.ErrUninitialized, "global offset is not set")
	}
	return s.offset, nil
}

// TrySetGlobalOffset stores o without waiting. It fails with
// model.ErrWriteLock while any other reader or writer holds the lock.
func (s *Store) TrySetGlobalOffset(o model.Offset) error {
	if !s.mu.TryLock() {
		return goerr.Wrap(model.ErrWriteLock, "global offset is busy", goerr.V("offset", o.String()))
	}
	defer s.mu.Unlock()

	s.offset = o
	s.initialized = true
	return nil
}

// TrySetGlobalOffsetFromString parses input as [sign]HH[:]MM and stores it
func (s *Store) TrySetGlobalOffsetFromString(input string) error {
	o, err := model.ParseOffset(input)
	if err != nil {
		return err
	}
	return s.TrySetGlobalOffset(o)
}

// TrySetGlobalOffsetFromPair validates hours in [-12, 14] and minutes in
// [0, 59] and stores the result
func (s *Store) TrySetGlobalOffsetFromPair(hours, minutes int) error {
	o, err := model.NewOffsetFromPair(hours, minutes)
	if err != nil {
		return err
	}
	return s.TrySetGlobalOffset(o)
}

// UTCOffset returns the stored offset, detecting and caching it on first
// use. It never fails: detection failures fall back to UTC and are reported
// as warnings together with any failure to cache the result.
func (s *Store) UTCOffset(ctx context.Context) (model.Offset, Warnings) {
	var warns Warnings
	if o, err := s.GlobalOffset(); err == nil {
		return o, warns
	}

	o, err := s.detect(ctx)
	if err != nil {
		warns = append(warns, err)
		o = model.UTC
	}

	if err := s.TrySetGlobalOffset(o); err != nil {
		warns = append(warns, err)
	}

	return o, warns
}

// Detect runs detection without touching the stored offset
func (s *Store) Detect(ctx context.Context) (model.Offset, error) {
	return s.detect(ctx)
}

func (s *Store) detect(ctx context.Context) (model.Offset, error) {
	if s.detector == nil {
		return model.UTC, goerr.Wrap(model.ErrNoSource, "no detector")
	}

	o, err := s.detector.Offset(ctx)
	if err != nil {
		return model.UTC, goerr.Wrap(err, "failed to detect local offset")
	}

	ctxlog.From(ctx).Debug("Detected local offset",
		"source", s.detector.Name(),
		"offset", o.String(),
	)
	return o, nil
}

// LocalTimestamp formats the current time in the offset resolved by
// UTCOffset. The error is only set when formatting fails.
func (s *Store) LocalTimestamp(ctx context.Context) (string, Warnings, error) {
	o, warns := s.UTCOffset(ctx)
	ts, err := s.TimestampFromOffset(o)
	if err != nil {
		return "", warns, err
	}
	return ts, warns, nil
}

// TimestampFromOffset formats the current time in the given offset
func (s *Store) TimestampFromOffset(o model.Offset) (string, error) {
	return Format(s.now(), o)
}
