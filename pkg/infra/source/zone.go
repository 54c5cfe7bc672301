package source

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/localstamp/pkg/domain/model"
)

// Zone reports the offset of the current instant in a location
type Zone struct {
	loc *time.Location
	now func() time.Time
}

// NewZone creates a Zone source for loc
func NewZone(loc *time.Location) *Zone {
	return &Zone{loc: loc, now: time.Now}
}

// Name implements interfaces.OffsetSource
func (z *Zone) Name() string {
	return "zone"
}

// Offset implements interfaces.OffsetSource
func (z *Zone) Offset(ctx context.Context) (model.Offset, error) {
	if z.loc == nil {
		return model.UTC, goerr.New("local zone is not available")
	}
	return model.OffsetOf(z.now().In(z.loc)), nil
}
