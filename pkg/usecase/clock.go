package usecase

import (
	"context"
	"sync/atomic"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/localstamp/pkg/domain/model"
	"github.com/m-mizutani/localstamp/pkg/stamp"
)

type clockUseCase struct {
	store *stamp.Store

	// explicit is set once SetOffset or SetOffsetPair succeeds. Refresh
	// leaves an explicitly set offset alone.
	explicit atomic.Bool
}

// NewClock creates a new instance of ClockUseCase backed by store
func NewClock(store *stamp.Store) *clockUseCase {
	return &clockUseCase{store: store}
}

// Now returns the current timestamp in the resolved global offset
func (uc *clockUseCase) Now(ctx context.Context) (*model.Timestamp, error) {
	logger := ctxlog.From(ctx)

	o, warns := uc.store.UTCOffset(ctx)
	for _, w := range warns {
		logger.Debug("Offset resolution warning", "error", w)
	}

	ts, err := uc.store.TimestampFromOffset(o)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to format timestamp", goerr.V("offset", o.String()))
	}

	return &model.Timestamp{
		Value:    ts,
		Offset:   o,
		Warnings: warns.Strings(),
	}, nil
}

// NowIn returns the current timestamp in the given offset
func (uc *clockUseCase) NowIn(ctx context.Context, offset model.Offset) (*model.Timestamp, error) {
	ts, err := uc.store.TimestampFromOffset(offset)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to format timestamp", goerr.V("offset", offset.String()))
	}
	return &model.Timestamp{Value: ts, Offset: offset}, nil
}

// Status returns the cached global offset
func (uc *clockUseCase) Status(ctx context.Context) *model.OffsetStatus {
	o, err := uc.store.GlobalOffset()
	return &model.OffsetStatus{
		Offset:      o,
		Initialized: err == nil,
	}
}

// SetOffset parses and stores a new global offset
func (uc *clockUseCase) SetOffset(ctx context.Context, offset string) (model.Offset, error) {
	o, err := model.ParseOffset(offset)
	if err != nil {
		return model.UTC, err
	}
	return o, uc.setExplicit(ctx, o)
}

// SetOffsetPair validates and stores a new global offset
func (uc *clockUseCase) SetOffsetPair(ctx context.Context, hours, minutes int) (model.Offset, error) {
	o, err := model.NewOffsetFromPair(hours, minutes)
	if err != nil {
		return model.UTC, err
	}
	return o, uc.setExplicit(ctx, o)
}

// Refresh re-runs detection and overwrites the global offset. The stored
// offset is left untouched when detection fails or when it was set
// explicitly with SetOffset or SetOffsetPair.
func (uc *clockUseCase) Refresh(ctx context.Context) (model.Offset, error) {
	if uc.explicit.Load() {
		o, err := uc.store.GlobalOffset()
		if err == nil {
			ctxlog.From(ctx).Debug("Skip refresh of explicitly set offset", "offset", o.String())
			return o, nil
		}
	}

	o, err := uc.store.Detect(ctx)
	if err != nil {
		return model.UTC, goerr.Wrap(err, "failed to refresh offset")
	}

	prev, prevErr := uc.store.GlobalOffset()
	if uc.explicit.Load() && prevErr == nil {
		// an explicit set landed while detecting
		return prev, nil
	}
	if err := uc.set(ctx, o); err != nil {
		return model.UTC, err
	}

	if prevErr != nil || prev != o {
		ctxlog.From(ctx).Info("Global offset changed",
			"from", prev.String(),
			"to", o.String(),
		)
	}
	return o, nil
}

func (uc *clockUseCase) setExplicit(ctx context.Context, o model.Offset) error {
	if err := uc.set(ctx, o); err != nil {
		return err
	}
	uc.explicit.Store(true)
	return nil
}

func (uc *clockUseCase) set(ctx context.Context, o model.Offset) error {
	if err := uc.store.TrySetGlobalOffset(o); err != nil {
		return goerr.Wrap(err, "failed to set global offset")
	}
	ctxlog.From(ctx).Debug("Set global offset", "offset", o.String())
	return nil
}
