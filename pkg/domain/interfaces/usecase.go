package interfaces

import (
	"context"

	"github.com/m-mizutani/localstamp/pkg/domain/model"
)

// ClockUseCase produces local timestamps and manages the global offset
type ClockUseCase interface {
	// Now returns the current timestamp in the resolved global offset
	Now(ctx context.Context) (*model.Timestamp, error)

	// NowIn returns the current timestamp in the given offset
	NowIn(ctx context.Context, offset model.Offset) (*model.Timestamp, error)

	// Status returns the cached global offset
	Status(ctx context.Context) *model.OffsetStatus

	// SetOffset parses and stores a new global offset
	SetOffset(ctx context.Context, offset string) (model.Offset, error)

	// SetOffsetPair validates and stores a new global offset
	SetOffsetPair(ctx context.Context, hours, minutes int) (model.Offset, error)

	// Refresh re-runs detection and overwrites the global offset
	Refresh(ctx context.Context) (model.Offset, error)
}
